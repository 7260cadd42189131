// Package scheduler wires the pipeline stages onto job queues. Feed polls, article
// extraction, digest generation and delivery all run as queue jobs, recurring work
// is registered with upsert-by-key schedulers so restarts and cadence changes are safe.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/notify"
	"github.com/umputun/newsdigest/pkg/queue"
)

//go:generate moq -out mocks/feed_store.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/digest_store.go -pkg mocks -skip-ensure -fmt goimports . DigestStore
//go:generate moq -out mocks/user_reader.go -pkg mocks -skip-ensure -fmt goimports . UserReader
//go:generate moq -out mocks/parser.go -pkg mocks -skip-ensure -fmt goimports . Parser
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure -fmt goimports . Enricher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// FeedStore is the feed persistence used by polling and scheduling
type FeedStore interface {
	CreateFeed(ctx context.Context, feed *domain.Feed) error
	GetFeed(ctx context.Context, id int64) (*domain.Feed, error)
	GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error)
	UpdateFeedPolled(ctx context.Context, feedID int64, polledAt time.Time) error
	UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error
	UpdateFeedStatus(ctx context.Context, feedID int64, active bool) error
	UpdateFeedCadence(ctx context.Context, feedID int64, cadenceMinutes int) error
}

// ArticleStore is the article persistence with external id dedup
type ArticleStore interface {
	CreateArticle(ctx context.Context, article *domain.Article) error
	Exists(ctx context.Context, externalID string) (bool, error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	GetArticleByExternalID(ctx context.Context, externalID string) (*domain.Article, error)
	UpdateExtracted(ctx context.Context, id int64, ex *domain.Extracted) error
	UpdateEnrichment(ctx context.Context, id int64, en *domain.Enrichment) error
	UpdateStatus(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error
}

// DigestStore is the digest record persistence
type DigestStore interface {
	Exists(ctx context.Context, userID int64, date string) (bool, error)
	CreatePending(ctx context.Context, rec *domain.DigestRecord) (bool, error)
	GetDigest(ctx context.Context, userID int64, date string) (*domain.DigestRecord, error)
	MarkSent(ctx context.Context, id int64, channel domain.Channel) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
	StreamPendingForHour(ctx context.Context, date string, hour int, fn func(*domain.DigestRecord) error) error
}

// UserReader gives read-only access to digest readers
type UserReader interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	StreamActiveUsers(ctx context.Context, fn func(*domain.User) error) error
}

// Parser fetches and parses a syndication feed
type Parser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// Extractor pulls article fields from a provider page
type Extractor interface {
	Extract(ctx context.Context, provider, url string) (*domain.Extracted, error)
	Supports(provider string) bool
}

// Enricher is the external AI service
type Enricher interface {
	IngestArticle(ctx context.Context, title, subtitle, content string) (*domain.Enrichment, error)
	GenerateDigest(ctx context.Context, userID int64) (*domain.DigestContent, error)
}

// Notifier delivers a notification over the user's channel
type Notifier interface {
	Send(ctx context.Context, user *domain.User, msg notify.Message) (domain.Channel, error)
}

// Runner drains job queues until ctx is canceled
type Runner interface {
	Run(ctx context.Context) error
}

// Queues holds the named queues jobs are dispatched to
type Queues struct {
	Feeds       *queue.Queue
	Articles    *queue.Queue
	Generation  *queue.Queue
	Delivery    *queue.Queue
	Maintenance *queue.Queue
}

// Params defines all dependencies of the scheduler
type Params struct {
	Feeds     FeedStore
	Articles  ArticleStore
	Digests   DigestStore
	Users     UserReader
	Parser    Parser
	Extractor Extractor
	Enricher  Enricher
	Notifier  Notifier

	Queues Queues
	Runner Runner // usually the broker owning Queues

	Location        *time.Location // digest time zone
	GenerationTimes []string       // HH:MM daily generation times
	DefaultCadence  int            // poll cadence in minutes for feeds created without one
}

// Scheduler owns the pipeline handlers and the lifecycle of queue workers
type Scheduler struct {
	*FeedProcessor
	*FeedScheduler
	*DigestProcessor

	queues Queues
	runner Runner
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// New makes a scheduler and registers all job handlers on their queues
func New(p Params) *Scheduler {
	s := &Scheduler{queues: p.Queues, runner: p.Runner}
	s.FeedProcessor = NewFeedProcessor(FeedProcessorParams{
		Feeds: p.Feeds, Articles: p.Articles, Parser: p.Parser, Extractor: p.Extractor,
		Enricher: p.Enricher, Queue: p.Queues.Articles,
	})
	s.FeedScheduler = NewFeedScheduler(FeedSchedulerParams{
		Feeds: p.Feeds, Parser: p.Parser, Extractor: p.Extractor, Queue: p.Queues.Feeds, DefaultCadence: p.DefaultCadence,
	})
	s.DigestProcessor = NewDigestProcessor(DigestProcessorParams{
		Users: p.Users, Digests: p.Digests, Enricher: p.Enricher, Notifier: p.Notifier,
		Generation: p.Queues.Generation, Delivery: p.Queues.Delivery, Maintenance: p.Queues.Maintenance,
		Location: p.Location, GenerationTimes: p.GenerationTimes,
	})
	s.register()
	return s
}

// register binds job names to handlers, each queue gets only its own jobs
func (s *Scheduler) register() {
	s.queues.Feeds.Handle(domain.JobPollFeed, handle(func(ctx context.Context, job domain.FeedPollJob) error {
		_, err := s.PollFeed(ctx, job)
		return err
	}))

	s.queues.Articles.Handle(domain.JobExtractArticle, handle(func(ctx context.Context, job domain.ArticleExtractionJob) error {
		return s.IngestArticle(ctx, job.ArticleID)
	}))
	s.queues.Articles.OnFailed(s.onArticleFailed)

	s.queues.Maintenance.Handle(domain.JobGenerateDigests, handle(func(ctx context.Context, job domain.DigestFanOutJob) error {
		_, err := s.FanOut(ctx, job.Slot)
		return err
	}))
	s.queues.Maintenance.Handle(domain.JobDispatchDigests, func(ctx context.Context, job *queue.Job) error {
		var from time.Time
		if job.ScheduledAt != nil {
			from = *job.ScheduledAt
		}
		_, err := s.DispatchDue(ctx, from)
		return err
	})

	s.queues.Generation.Handle(domain.JobGenerateDigest, handle(s.GenerateForUser))

	s.queues.Delivery.Handle(domain.JobDeliverDigest, handle(s.Deliver))
	s.queues.Delivery.OnFailed(s.onDeliveryFailed)
}

// Start syncs recurring jobs and starts queue workers in background
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.SyncAll(ctx); err != nil {
		lgr.Printf("[WARN] feed schedule sync incomplete: %v", err)
	}
	if err := s.ScheduleDigests(ctx); err != nil {
		return err
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.runner.Run(ctx); err != nil {
			lgr.Printf("[ERROR] queue workers stopped: %v", err)
		}
	}()

	lgr.Printf("[INFO] scheduler started")
	return nil
}

// Stop gracefully stops queue workers, interrupted jobs are recovered on next start
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// handle adapts a typed job function to queue.Handler
func handle[T any](fn func(ctx context.Context, payload T) error) queue.Handler {
	return func(ctx context.Context, job *queue.Job) error {
		var payload T
		if err := job.Decode(&payload); err != nil {
			return err
		}
		return fn(ctx, payload)
	}
}
