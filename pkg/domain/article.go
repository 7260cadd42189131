package domain

import (
	"strings"
	"time"
)

// ScrapingStatus is the extraction state of an article
type ScrapingStatus string

// scraping statuses
const (
	ScrapingPending   ScrapingStatus = "PENDING"
	ScrapingCompleted ScrapingStatus = "COMPLETED"
	ScrapingFailed    ScrapingStatus = "FAILED"
)

// Article represents an ingested news article
type Article struct {
	ID             int64
	URL            string
	Source         string // provider key
	ExternalID     string // dedup key, "<provider>-<guid-or-link>"
	ScrapingStatus ScrapingStatus
	Title          string
	Subtitle       string
	Content        string
	Author         string
	Image          *Image
	Categories     []string
	Enrichment     map[string]any
	Embeddings     []float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastScrapedAt  *time.Time
	ScrapingError  string
}

// Image is an article's lead image with an optional credit line
type Image struct {
	URL    string `json:"url"`
	Credit string `json:"credit,omitempty"`
}

// Extracted holds the fields produced by a provider extractor
type Extracted struct {
	Title      string
	Subtitle   string
	Content    string
	Author     string
	Image      *Image
	Categories []string
}

// Enrichable reports whether all fields required by the enrichment service are present
func (e *Extracted) Enrichable() bool {
	return strings.TrimSpace(e.Title) != "" && strings.TrimSpace(e.Subtitle) != "" && strings.TrimSpace(e.Content) != ""
}

// Enrichment is the result of the external enrichment call with the vector split out
type Enrichment struct {
	Attributes map[string]any
	Embeddings []float64
}

// ExternalID composes the provider scoped dedup key for an article.
// guid is preferred, link is used when guid is empty.
func ExternalID(provider, guid, link string) string {
	key := strings.TrimSpace(guid)
	if key == "" {
		key = strings.TrimSpace(link)
	}
	if key == "" {
		return ""
	}
	return provider + "-" + key
}
