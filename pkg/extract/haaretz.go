package extract

import "regexp"

// NewHaaretz makes extractor for haaretz.co.il. Its DOM is rendered client side,
// a page without structured articleBody has nothing usable.
func NewHaaretz(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "haaretz",
		fetcher: f,
		sel: Selectors{
			Content:    `section[data-test="articleBody"], article`,
			Subtitle:   `p[data-test="articleSubtitle"], h2`,
			AuthorPath: regexp.MustCompile(`/ty-WRITER/|/writers?/`),
			Caption:    `figcaption, [data-test="imageCaption"]`,
			Breadcrumb: `nav[aria-label="breadcrumbs"] a, [data-test="breadcrumbs"] a`,
			Category:   `[data-test="sectionLabel"]`,
			HomeLabels: []string{"הארץ", "haaretz"},
		},
		requireArticleBody: true,
	}
}
