// Package extract pulls article fields out of provider pages. Every provider
// shares the same per-field fallback chains, structured data first and DOM
// selectors second, and differs only by selectors and small post-processing rules.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/umputun/newsdigest/pkg/domain"
)

const maxPageSize = 8 << 20

// Page is a fetched and parsed article page
type Page struct {
	URL *url.URL
	Raw []byte // utf-8 html
	Doc *goquery.Document
	LD  *jsonLD
}

// NewPage parses utf-8 html of the page at pageURL
func NewPage(pageURL string, raw []byte) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", pageURL, err)
	}
	doc.Url = u
	return &Page{URL: u, Raw: raw, Doc: doc, LD: parseJSONLD(doc)}, nil
}

// resolve makes a possibly relative link absolute against the page url
func (p *Page) resolve(ref string) string {
	if ref == "" || p.URL == nil {
		return ref
	}
	u, err := p.URL.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// Fetcher downloads article pages, requests to the same host are rate limited
type Fetcher struct {
	client    *http.Client
	userAgent string
	hostRate  rate.Limit
	hostBurst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewFetcher makes a fetcher with the given request timeout
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		hostRate:  rate.Limit(2),
		hostBurst: 4,
		limiters:  map[string]*rate.Limiter{},
	}
}

// WithHostRate sets allowed requests per second to a single host, zero disables the limit
func (f *Fetcher) WithHostRate(perSecond float64, burst int) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hostRate, f.hostBurst = rate.Limit(perSecond), burst
	if perSecond <= 0 {
		f.hostRate = rate.Inf
	}
	if f.hostBurst < 1 {
		f.hostBurst = 1
	}
	f.limiters = map[string]*rate.Limiter{}
	return f
}

func (f *Fetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.limiters[host]
	if !ok {
		l = rate.NewLimiter(f.hostRate, f.hostBurst)
		f.limiters[host] = l
	}
	return l
}

// Fetch retrieves the page, converts it to utf-8 and parses it
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", pageURL)
	}

	if err := f.limiter(u.Host).Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", u.Host, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, fmt.Errorf("status code %d for URL %s: %w", resp.StatusCode, pageURL, domain.ErrPageGone)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, pageURL)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset of %s: %w", pageURL, err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", pageURL, err)
	}

	return NewPage(resp.Request.URL.String(), raw)
}
