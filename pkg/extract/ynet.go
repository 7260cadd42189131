package extract

import "regexp"

// NewYnet makes extractor for ynet.co.il
func NewYnet(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "ynet",
		fetcher: f,
		sel: Selectors{
			Content:    "#ArticleBodyComponent, .article-body",
			Subtitle:   ".subTitle, .sub-title",
			AuthorPath: regexp.MustCompile(`/(?:topics|authors?)/`),
			Caption:    ".imageCredit, .ArticleImageCaption, figcaption",
			Breadcrumb: ".breadcrumbs a, nav.breadcrumbs a",
			Category:   ".category a, .categoryName",
			HomeLabels: []string{"ynet", "ידיעות אחרונות"},
		},
	}
}
