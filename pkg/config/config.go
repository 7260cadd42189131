package config

import (
	"fmt"
	"os"
	"regexp"
	"time"
	_ "time/tzdata" // embedded zone database for minimal containers

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Operator API server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdigest.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Redis struct {
		URL    string `yaml:"url" json:"url" jsonschema:"default=redis://localhost:6379/0,description=Redis connection URL for the job queue"`
		Prefix string `yaml:"prefix" json:"prefix" jsonschema:"default=newsdigest,description=Key prefix for all queue keys"`
	} `yaml:"redis" json:"redis" jsonschema:"description=Job queue backend configuration"`

	Queues QueuesConfig `yaml:"queues" json:"queues" jsonschema:"description=Per-queue worker configuration"`

	Feeds FeedsConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Feed polling configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article content extraction configuration"`

	Enrichment EnrichmentConfig `yaml:"enrichment" json:"enrichment" jsonschema:"description=Enrichment and digest generation service"`

	Digest DigestConfig `yaml:"digest" json:"digest" jsonschema:"description=Digest generation and delivery schedule"`

	Notification NotificationConfig `yaml:"notification" json:"notification" jsonschema:"description=Notification channels"`
}

// QueueConfig holds worker settings for a single queue
type QueueConfig struct {
	Concurrency int           `yaml:"concurrency" json:"concurrency" jsonschema:"description=Maximum concurrent jobs"`
	Attempts    int           `yaml:"attempts" json:"attempts" jsonschema:"description=Maximum attempts before a job is moved to failed"`
	Backoff     time.Duration `yaml:"backoff" json:"backoff" jsonschema:"default=5s,description=Initial exponential backoff delay"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2m,description=Per-job execution timeout"`
}

// QueuesConfig holds per-queue settings and shared retention
type QueuesConfig struct {
	FeedScraping     QueueConfig   `yaml:"feed_scraping" json:"feed_scraping"`
	ArticleScraping  QueueConfig   `yaml:"article_scraping" json:"article_scraping"`
	DigestGeneration QueueConfig   `yaml:"digest_generation" json:"digest_generation"`
	DigestDelivery   QueueConfig   `yaml:"digest_delivery" json:"digest_delivery"`
	Maintenance      QueueConfig   `yaml:"maintenance" json:"maintenance"`
	PollInterval     time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=500ms,description=Interval between empty queue polls"`
	FailedRetention  time.Duration `yaml:"failed_retention" json:"failed_retention" jsonschema:"default=24h,description=How long failed jobs are kept for inspection"`
}

// FeedsConfig holds feed polling settings
type FeedsConfig struct {
	DefaultCadence int           `yaml:"default_cadence" json:"default_cadence" jsonschema:"default=30,description=Default poll cadence in minutes for new feeds"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed fetch timeout"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdigest/1.0,description=User agent for feed requests"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Page fetch timeout per article"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Newsdigest/1.0),description=User agent for page requests"`
	HostRate  float64       `yaml:"host_rate" json:"host_rate" jsonschema:"default=2,description=Requests per second to a single provider host, negative disables the limit"`
	HostBurst int           `yaml:"host_burst" json:"host_burst" jsonschema:"default=4,description=Burst of requests allowed to a single provider host"`
}

// EnrichmentConfig holds the external enrichment service settings
type EnrichmentConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"required,description=Base URL of the enrichment and digest service"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
}

// DigestConfig holds digest schedule settings
type DigestConfig struct {
	TimeZone        string   `yaml:"time_zone" json:"time_zone" jsonschema:"default=Asia/Jerusalem,description=Time zone used for generation times and delivery hours"`
	GenerationTimes []string `yaml:"generation_times" json:"generation_times" jsonschema:"description=Daily HH:MM times when digests are generated"`
}

// NotificationConfig holds channel settings
type NotificationConfig struct {
	WhatsApp WhatsAppConfig `yaml:"whatsapp" json:"whatsapp" jsonschema:"description=WhatsApp channel"`
	Attempts int            `yaml:"attempts" json:"attempts" jsonschema:"default=1,description=In-call send attempts, each queue attempt of digest delivery makes up to this many sends"`
}

// WhatsAppConfig holds WhatsApp cloud API settings
type WhatsAppConfig struct {
	BaseURL       string        `yaml:"base_url" json:"base_url" jsonschema:"default=https://graph.facebook.com/v19.0,description=Cloud API base URL"`
	PhoneNumberID string        `yaml:"phone_number_id" json:"phone_number_id" jsonschema:"description=Sender phone number id"`
	Token         string        `yaml:"token" json:"token" jsonschema:"description=Access token (can use environment variable)"`
	Template      string        `yaml:"template" json:"template" jsonschema:"default=daily_digest,description=Message template name"`
	Language      string        `yaml:"language" json:"language" jsonschema:"default=he,description=Template language code"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Request timeout"`
}

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newsdigest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Redis.URL == "" {
		cfg.Redis.URL = "redis://localhost:6379/0"
	}
	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "newsdigest"
	}

	// scraping queues retry a small fixed number of times, delivery up to 5
	queueDefaults(&cfg.Queues.FeedScraping, 5, 3)
	queueDefaults(&cfg.Queues.ArticleScraping, 5, 3)
	queueDefaults(&cfg.Queues.DigestGeneration, 5, 3)
	queueDefaults(&cfg.Queues.DigestDelivery, 5, 5)
	queueDefaults(&cfg.Queues.Maintenance, 1, 3)
	if cfg.Queues.PollInterval == 0 {
		cfg.Queues.PollInterval = 500 * time.Millisecond
	}
	if cfg.Queues.FailedRetention == 0 {
		cfg.Queues.FailedRetention = 24 * time.Hour
	}

	if cfg.Feeds.DefaultCadence == 0 {
		cfg.Feeds.DefaultCadence = 30
	}
	if cfg.Feeds.Timeout == 0 {
		cfg.Feeds.Timeout = 30 * time.Second
	}
	if cfg.Feeds.UserAgent == "" {
		cfg.Feeds.UserAgent = "Newsdigest/1.0"
	}

	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Mozilla/5.0 (compatible; Newsdigest/1.0)"
	}
	if cfg.Extraction.HostRate == 0 {
		cfg.Extraction.HostRate = 2
	}
	if cfg.Extraction.HostBurst == 0 {
		cfg.Extraction.HostBurst = 4
	}

	if cfg.Enrichment.Timeout == 0 {
		cfg.Enrichment.Timeout = 60 * time.Second
	}

	if cfg.Digest.TimeZone == "" {
		cfg.Digest.TimeZone = "Asia/Jerusalem"
	}
	if len(cfg.Digest.GenerationTimes) == 0 {
		cfg.Digest.GenerationTimes = []string{"06:00", "12:00", "18:00"}
	}

	if cfg.Notification.Attempts == 0 {
		cfg.Notification.Attempts = 1 // delivery queue owns retries
	}
	wa := &cfg.Notification.WhatsApp
	if wa.BaseURL == "" {
		wa.BaseURL = "https://graph.facebook.com/v19.0"
	}
	if wa.Template == "" {
		wa.Template = "daily_digest"
	}
	if wa.Language == "" {
		wa.Language = "he"
	}
	if wa.Timeout == 0 {
		wa.Timeout = 15 * time.Second
	}
}

func queueDefaults(q *QueueConfig, concurrency, attempts int) {
	if q.Concurrency == 0 {
		q.Concurrency = concurrency
	}
	if q.Attempts == 0 {
		q.Attempts = attempts
	}
	if q.Backoff == 0 {
		q.Backoff = 5 * time.Second
	}
	if q.Timeout == 0 {
		q.Timeout = 2 * time.Minute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Enrichment.BaseURL == "" {
		return fmt.Errorf("enrichment.base_url is required")
	}

	if _, err := time.LoadLocation(cfg.Digest.TimeZone); err != nil {
		return fmt.Errorf("digest.time_zone %q: %w", cfg.Digest.TimeZone, err)
	}
	for _, t := range cfg.Digest.GenerationTimes {
		if !hhmm.MatchString(t) {
			return fmt.Errorf("digest.generation_times: invalid time %q, expected HH:MM", t)
		}
	}

	queues := map[string]QueueConfig{
		"feed_scraping":     cfg.Queues.FeedScraping,
		"article_scraping":  cfg.Queues.ArticleScraping,
		"digest_generation": cfg.Queues.DigestGeneration,
		"digest_delivery":   cfg.Queues.DigestDelivery,
		"maintenance":       cfg.Queues.Maintenance,
	}
	for name, q := range queues {
		if q.Concurrency < 1 {
			return fmt.Errorf("queues.%s.concurrency must be at least 1", name)
		}
		if q.Attempts < 1 {
			return fmt.Errorf("queues.%s.attempts must be at least 1", name)
		}
	}

	if cfg.Notification.Attempts < 1 {
		return fmt.Errorf("notification.attempts must be at least 1")
	}

	if cfg.Feeds.DefaultCadence < 0 {
		return fmt.Errorf("feeds.default_cadence must be non-negative")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Location returns the digest time zone, UTC if it can't be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Digest.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
