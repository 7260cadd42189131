package feed

import (
	"math/rand"
	"net/http"
)

// acceptLanguages contains Accept-Language values of local readers, some
// providers serve a trimmed feed to foreign locales
var acceptLanguages = []string{
	"he-IL,he;q=0.9,en-US;q=0.8,en;q=0.7",
	"he-IL,he;q=0.9",
	"he,en-US;q=0.9,en;q=0.8",
	"en-US,en;q=0.9,he;q=0.8",
}

// addBrowserHeaders adds browser-like headers for feed fetching
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Connection", "keep-alive")
}
