package extract

import "regexp"

// NewWalla makes extractor for walla.co.il
func NewWalla(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "walla",
		fetcher: f,
		sel: Selectors{
			Content:    ".article-content, .article_content, article",
			Subtitle:   ".subtitle, h2.article-subtitle",
			AuthorPath: regexp.MustCompile(`/(?:author|writer)s?/`),
			Caption:    ".image-credit, .credit, figcaption",
			Breadcrumb: ".breadcrumbs a, nav.breadcrumb a",
			Category:   ".category-name, .section-name",
			HomeLabels: []string{"וואלה", "walla", "וואלה!"},
		},
	}
}
