package extract

import "regexp"

// NewGlobes makes extractor for globes.co.il
func NewGlobes(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "globes",
		fetcher: f,
		sel: Selectors{
			Content:    "#F_Content, .articleInner, article",
			Subtitle:   "#coteret_subCoteret, h2.subtitle",
			AuthorPath: regexp.MustCompile(`/(?:writer|author)s?/|writerid=`),
			Caption:    ".picture_credit, .caption, figcaption",
			Breadcrumb: "#breadcrumbs a, .breadcrumbs a",
			Category:   ".articleCategory a",
			HomeLabels: []string{"גלובס", "globes"},
		},
	}
}
