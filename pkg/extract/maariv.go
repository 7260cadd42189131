package extract

import "regexp"

// NewMaariv makes extractor for maariv.co.il
func NewMaariv(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "maariv",
		fetcher: f,
		sel: Selectors{
			Content:    ".article-body, .article-content",
			Subtitle:   ".article-sub-title, .article-subtitle",
			AuthorPath: regexp.MustCompile(`/(?:journalists?|authors?)/`),
			Caption:    ".image-credit, figcaption",
			Breadcrumb: ".breadcrumbs a, .breadcrumb a",
			Category:   ".article-category a",
			HomeLabels: []string{"מעריב", "maariv"},
		},
	}
}
