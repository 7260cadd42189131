package domain

import "time"

// DigestStatus is the delivery state of a digest record
type DigestStatus string

// digest statuses, SENT and FAILED are terminal
const (
	DigestPending DigestStatus = "PENDING"
	DigestSent    DigestStatus = "SENT"
	DigestFailed  DigestStatus = "FAILED"
)

// DigestRecord is a generated per-user per-day digest
type DigestRecord struct {
	ID          int64
	UserID      int64
	Date        string // YYYY-MM-DD in the delivery time zone
	Content     DigestContent
	Status      DigestStatus
	ChannelSent Channel
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DigestContent is the payload returned by the digest generation service
type DigestContent struct {
	Sections []Section `json:"sections"`
	Teaser   string    `json:"teaser"`
	Date     string    `json:"date"`
	ReadTime string    `json:"readTime"`
}

// Section is a single topical block of a digest
type Section struct {
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Teaser       string   `json:"teaser"`
	Highlights   []string `json:"highlights"`
	Body         []string `json:"body"`
	ArticleLinks []string `json:"articleLinks"`
	ImageURL     string   `json:"imageUrl"`
	ReadTime     string   `json:"readTime,omitempty"`
	Mood         string   `json:"mood,omitempty"`
}

// DateLayout is the layout of DigestRecord.Date
const DateLayout = "2006-01-02"
