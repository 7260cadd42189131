package domain

// queue names
const (
	QueueFeedScraping     = "feed-scraping"
	QueueArticleScraping  = "article-scraping"
	QueueDigestGeneration = "digest-generation"
	QueueDigestDelivery   = "digest-delivery"
	QueueMaintenance      = "maintenance"
)

// job names
const (
	JobPollFeed        = "poll-feed"
	JobExtractArticle  = "extract-article"
	JobGenerateDigests = "generate-digests"
	JobGenerateDigest  = "generate-digest"
	JobDispatchDigests = "dispatch-digests"
	JobDeliverDigest   = "deliver-digest"
)

// FeedPollJob asks a worker to poll a single feed
type FeedPollJob struct {
	FeedID   int64  `json:"feedId"`
	URL      string `json:"url"`
	Provider string `json:"provider"`
}

// ArticleExtractionJob asks a worker to extract and enrich an article
type ArticleExtractionJob struct {
	ArticleID int64  `json:"articleId"`
	URL       string `json:"url"`
}

// DigestGenerationJob asks a worker to generate today's digest for a user
type DigestGenerationJob struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date,omitempty"`
}

// DigestDeliveryJob asks a worker to deliver a user's pending digest
type DigestDeliveryJob struct {
	UserID int64  `json:"userId"`
	Date   string `json:"date,omitempty"`
}

// DigestFanOutJob is fired by a daily generation scheduler, Slot is its HH:MM time
type DigestFanOutJob struct {
	Slot string `json:"slot"`
}
