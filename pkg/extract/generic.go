package extract

import (
	"bytes"
	"context"
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/umputun/newsdigest/pkg/domain"
)

// GenericProvider is the key of the extractor for arbitrary pages added manually
const GenericProvider = "generic"

// Generic extracts articles from pages of unknown layout. Body text comes from
// trafilatura, other fields use the shared chains without provider selectors.
type Generic struct {
	fetcher *Fetcher
}

// NewGeneric makes generic extractor
func NewGeneric(f *Fetcher) *Generic {
	return &Generic{fetcher: f}
}

// Provider returns provider key
func (g *Generic) Provider() string { return GenericProvider }

// Fetch downloads the page
func (g *Generic) Fetch(ctx context.Context, url string) (*Page, error) {
	return g.fetcher.Fetch(ctx, url)
}

// ExtractFields runs the shared chains, the body is taken from trafilatura when it finds one
func (g *Generic) ExtractFields(p *Page) (*domain.Extracted, error) {
	res := extractFields(p, Selectors{})

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
		IncludeLinks:    false,
		Deduplicate:     true,
		OriginalURL:     p.URL,
	}
	tr, err := trafilatura.Extract(bytes.NewReader(p.Raw), opts)
	if err != nil || tr == nil {
		return res, nil //nolint:nilerr // chains already produced a result, trafilatura only improves it
	}

	if body := splitParagraphs(tr.ContentText); body != "" && bodyText(p.LD.articleBody()) == "" {
		res.Content = body
	}
	if res.Title == untitled && strings.TrimSpace(tr.Metadata.Title) != "" {
		res.Title = strings.TrimSpace(tr.Metadata.Title)
	}
	if res.Author == "" {
		res.Author = strings.TrimSpace(tr.Metadata.Author)
	}
	if res.Subtitle == "" {
		res.Subtitle = strings.TrimSpace(tr.Metadata.Description)
	}
	return res, nil
}
