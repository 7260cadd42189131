package extract

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/umputun/newsdigest/pkg/domain"
)

// ErrMissingArticleBody is returned by providers which require structured articleBody
var ErrMissingArticleBody = errors.New("structured articleBody not found")

// Extractor fetches a provider page and pulls article fields out of it
type Extractor interface {
	Provider() string
	Fetch(ctx context.Context, url string) (*Page, error)
	ExtractFields(p *Page) (*domain.Extracted, error)
}

// Dispatcher selects extractor by provider key
type Dispatcher struct {
	extractors map[string]Extractor
}

// NewDispatcher makes a dispatcher for the given extractors, later ones replace earlier with the same key
func NewDispatcher(extractors ...Extractor) *Dispatcher {
	d := &Dispatcher{extractors: make(map[string]Extractor, len(extractors))}
	for _, e := range extractors {
		d.extractors[e.Provider()] = e
	}
	return d
}

// NewDefaultDispatcher registers all supported providers plus the generic extractor
func NewDefaultDispatcher(f *Fetcher) *Dispatcher {
	return NewDispatcher(
		NewYnet(f),
		NewCalcalist(f),
		NewGlobes(f),
		NewHaaretz(f),
		NewMaariv(f),
		NewWalla(f),
		NewGeneric(f),
	)
}

// Extract fetches the url with the provider's extractor and returns extracted fields
func (d *Dispatcher) Extract(ctx context.Context, provider, url string) (*domain.Extracted, error) {
	e, ok := d.extractors[provider]
	if !ok {
		return nil, fmt.Errorf("extract %s: %q: %w", url, provider, domain.ErrUnsupportedProvider)
	}

	page, err := e.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s page: %w", provider, err)
	}

	res, err := e.ExtractFields(page)
	if err != nil {
		return nil, fmt.Errorf("extract %s page %s: %w", provider, url, err)
	}
	return res, nil
}

// Supports checks if provider has a registered extractor
func (d *Dispatcher) Supports(provider string) bool {
	_, ok := d.extractors[provider]
	return ok
}

// Providers returns sorted keys of registered extractors
func (d *Dispatcher) Providers() []string {
	res := make([]string, 0, len(d.extractors))
	for k := range d.extractors {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// providerExtractor is the shared implementation behind all news providers
type providerExtractor struct {
	name    string
	fetcher *Fetcher
	sel     Selectors

	requireArticleBody bool
	postProcess        func(res *domain.Extracted)
}

// Provider returns provider key
func (e *providerExtractor) Provider() string { return e.name }

// Fetch downloads the page
func (e *providerExtractor) Fetch(ctx context.Context, url string) (*Page, error) {
	return e.fetcher.Fetch(ctx, url)
}

// ExtractFields runs the field chains with provider selectors
func (e *providerExtractor) ExtractFields(p *Page) (*domain.Extracted, error) {
	if e.requireArticleBody && bodyText(p.LD.articleBody()) == "" {
		return nil, ErrMissingArticleBody
	}
	res := extractFields(p, e.sel)
	if e.postProcess != nil {
		e.postProcess(res)
	}
	return res, nil
}
