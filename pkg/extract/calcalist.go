package extract

import (
	"regexp"
	"strings"

	"github.com/umputun/newsdigest/pkg/domain"
)

// NewCalcalist makes extractor for calcalist.co.il. The site ends its breadcrumb
// with the article's own title, that crumb is not a category.
func NewCalcalist(f *Fetcher) Extractor {
	return &providerExtractor{
		name:    "calcalist",
		fetcher: f,
		sel: Selectors{
			Content:    "#ArticleBodyComponent, .article-body",
			Subtitle:   ".subTitle, h2.sub-title",
			AuthorPath: regexp.MustCompile(`/(?:topics|authors?)/`),
			Caption:    ".imageCredit, figcaption",
			Breadcrumb: ".breadcrumbs a, nav[aria-label] ol li",
			Category:   ".categoryName, .category a",
			HomeLabels: []string{"כלכליסט", "calcalist"},
		},
		postProcess: dropTitleCrumb,
	}
}

// dropTitleCrumb removes the last category when it repeats the article title
func dropTitleCrumb(res *domain.Extracted) {
	n := len(res.Categories)
	if n == 0 {
		return
	}
	if strings.EqualFold(cleanText(res.Categories[n-1]), cleanText(res.Title)) {
		res.Categories = res.Categories[:n-1]
	}
}
