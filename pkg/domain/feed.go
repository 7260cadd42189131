package domain

import "time"

// Feed represents a syndication source polled on its own cadence
type Feed struct {
	ID             int64
	URL            string
	Provider       string
	Name           string
	Language       string
	CadenceMinutes int // <= 0 means no active schedule
	Active         bool
	LastPolledAt   *time.Time
	LastError      string
	CreatedAt      time.Time
}

// Scheduled reports whether the feed should own a recurring poll job
func (f *Feed) Scheduled() bool {
	return f.Active && f.CadenceMinutes > 0
}

// Cadence returns the poll interval
func (f *Feed) Cadence() time.Duration {
	return time.Duration(f.CadenceMinutes) * time.Minute
}

// ParsedFeed represents a fetched and parsed syndication document
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Language    string
	Items       []ParsedItem
}

// ParsedItem represents a single item of a parsed feed
type ParsedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Published   time.Time
}
