package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsdigest/pkg/domain"
)

const untitled = "Untitled"

// creditMarker is the photography credit phrase used by local providers
const creditMarker = "צילום"

// commonHomeLabels are breadcrumb labels pointing to a site root
var commonHomeLabels = []string{"ראשי", "דף הבית", "עמוד ראשי", "home", "homepage"}

// Selectors are provider-specific DOM hooks used when structured data is missing
type Selectors struct {
	Content      string         // container of article paragraphs
	Subtitle     string         // subtitle-like element
	AuthorPath   *regexp.Regexp // href pattern of author pages
	Caption      string         // image caption elements
	CreditMarker string         // phrase marking a photo credit inside a caption
	Breadcrumb   string         // breadcrumb links
	Category     string         // category labels
	HomeLabels   []string       // site root labels dropped from categories
}

var textPolicy = bluemonday.StrictPolicy()

var blockBreaks = strings.NewReplacer("</p>", "</p>\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</div>", "</div>\n", "</h2>", "</h2>\n", "</h3>", "</h3>\n", "</li>", "</li>\n")

// extractFields runs all field chains over the page. Fields are independent,
// each falls through its own sources down to a default.
func extractFields(p *Page, sel Selectors) *domain.Extracted {
	return &domain.Extracted{
		Title:      titleChain(p),
		Subtitle:   subtitleChain(p, sel),
		Content:    contentChain(p, sel),
		Author:     authorChain(p, sel),
		Image:      imageChain(p, sel),
		Categories: categoriesChain(p, sel),
	}
}

func titleChain(p *Page) string {
	return firstOf(
		p.LD.headline,
		func() string { return metaProperty(p.Doc, "og:title") },
		func() string { return cleanText(p.Doc.Find("title").First().Text()) },
		func() string { return cleanText(p.Doc.Find("h1").First().Text()) },
		func() string { return untitled },
	)
}

func subtitleChain(p *Page, sel Selectors) string {
	return firstOf(
		p.LD.description,
		func() string { return metaName(p.Doc, "description") },
		func() string { return metaProperty(p.Doc, "og:description") },
		func() string {
			if sel.Subtitle == "" {
				return ""
			}
			return cleanText(p.Doc.Find(sel.Subtitle).First().Text())
		},
	)
}

func contentChain(p *Page, sel Selectors) string {
	return firstOf(
		func() string { return bodyText(p.LD.articleBody()) },
		func() string {
			if sel.Content == "" {
				return ""
			}
			return paragraphs(p.Doc.Find(sel.Content).Find("p"))
		},
		func() string { return paragraphs(p.Doc.Find("p")) },
	)
}

func authorChain(p *Page, sel Selectors) string {
	return firstOf(
		func() string { return strings.Join(p.LD.authors(), ", ") },
		func() string { return metaName(p.Doc, "author") },
		func() string { return metaProperty(p.Doc, "article:author") },
		func() string {
			if sel.AuthorPath == nil {
				return ""
			}
			var name string
			p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				href, _ := s.Attr("href")
				if sel.AuthorPath.MatchString(href) {
					if name = cleanText(s.Text()); name != "" {
						return false
					}
				}
				return true
			})
			return name
		},
	)
}

func imageChain(p *Page, sel Selectors) *domain.Image {
	src := firstOf(
		p.LD.image,
		func() string { return metaProperty(p.Doc, "og:image") },
	)
	if src == "" {
		return nil
	}
	return &domain.Image{URL: p.resolve(src), Credit: imageCredit(p.Doc, sel)}
}

// imageCredit looks for a caption containing the credit marker and returns the text after it
func imageCredit(doc *goquery.Document, sel Selectors) string {
	marker := sel.CreditMarker
	if marker == "" {
		marker = creditMarker
	}
	captions := sel.Caption
	if captions == "" {
		captions = "figcaption"
	}

	var credit string
	doc.Find(captions).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		txt := cleanText(s.Text())
		idx := strings.Index(txt, marker)
		if idx < 0 {
			return true
		}
		credit = strings.TrimSpace(strings.TrimLeft(txt[idx+len(marker):], ": -"))
		if credit == "" {
			credit = txt
		}
		return false
	})
	return credit
}

func categoriesChain(p *Page, sel Selectors) []string {
	home := append(append([]string{}, commonHomeLabels...), sel.HomeLabels...)
	sources := []func() []string{
		p.LD.breadcrumbs,
		func() []string { return texts(p.Doc, sel.Breadcrumb) },
		func() []string { return texts(p.Doc, sel.Category) },
	}
	for _, src := range sources {
		if cats := filterCategories(src(), home); len(cats) > 0 {
			return cats
		}
	}
	return []string{}
}

// filterCategories trims labels and drops empty, duplicate and home entries
func filterCategories(labels, home []string) []string {
	res := make([]string, 0, len(labels))
	seen := map[string]bool{}
	for _, l := range labels {
		l = cleanText(l)
		if l == "" || seen[l] || isHomeLabel(l, home) {
			continue
		}
		seen[l] = true
		res = append(res, l)
	}
	return res
}

func isHomeLabel(label string, home []string) bool {
	for _, h := range home {
		if strings.EqualFold(label, h) {
			return true
		}
	}
	return false
}

func texts(doc *goquery.Document, selector string) []string {
	if selector == "" {
		return nil
	}
	return doc.Find(selector).Map(func(_ int, s *goquery.Selection) string { return s.Text() })
}

// paragraphs joins trimmed non-empty paragraph texts with a blank line
func paragraphs(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if txt := strings.TrimSpace(s.Text()); txt != "" {
			parts = append(parts, txt)
		}
	})
	return strings.Join(parts, "\n\n")
}

// bodyText turns structured articleBody, which may carry markup and entities, into plain paragraphs
func bodyText(raw string) string {
	if raw == "" {
		return ""
	}
	return splitParagraphs(html.UnescapeString(textPolicy.Sanitize(blockBreaks.Replace(raw))))
}

// splitParagraphs normalizes line separated text to paragraphs divided by a blank line
func splitParagraphs(s string) string {
	lines := strings.Split(s, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, "\n\n")
}

func metaProperty(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return cleanText(v)
}

func metaName(doc *goquery.Document, name string) string {
	v, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return cleanText(v)
}

var spaces = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs into single spaces
func cleanText(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// firstOf returns the first non-empty value produced by sources, evaluated lazily in order
func firstOf(sources ...func() string) string {
	for _, src := range sources {
		if v := src(); v != "" {
			return v
		}
	}
	return ""
}
