package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
)

const feedKeyPrefix = "feed-poll:"

// RecurringQueue is a queue with upsert-by-key schedulers
type RecurringQueue interface {
	Enqueuer
	UpsertScheduler(ctx context.Context, key string, trigger queue.Trigger, jobName string, payload any) error
	RemoveScheduler(ctx context.Context, key string) error
	Schedulers(ctx context.Context) ([]queue.SchedulerInfo, error)
}

// FeedScheduler keeps exactly one recurring poll job per active feed
type FeedScheduler struct {
	feeds          FeedStore
	parser         Parser
	extractor      Extractor
	queue          RecurringQueue
	defaultCadence int
}

// FeedSchedulerParams holds dependencies of FeedScheduler
type FeedSchedulerParams struct {
	Feeds          FeedStore
	Parser         Parser
	Extractor      Extractor
	Queue          RecurringQueue // feed-scraping queue
	DefaultCadence int
}

// NewFeedScheduler makes a feed scheduler
func NewFeedScheduler(p FeedSchedulerParams) *FeedScheduler {
	if p.DefaultCadence == 0 {
		p.DefaultCadence = 30
	}
	return &FeedScheduler{feeds: p.Feeds, parser: p.Parser, extractor: p.Extractor, queue: p.Queue,
		defaultCadence: p.DefaultCadence}
}

func feedKey(id int64) string { return feedKeyPrefix + strconv.FormatInt(id, 10) }

// Schedule upserts the recurring poll job of the feed with its cadence.
// Inactive feeds and feeds without cadence are unscheduled instead.
func (fs *FeedScheduler) Schedule(ctx context.Context, feed *domain.Feed) error {
	if !feed.Scheduled() {
		return fs.Unschedule(ctx, feed.ID)
	}
	job := domain.FeedPollJob{FeedID: feed.ID, URL: feed.URL, Provider: feed.Provider}
	if err := fs.queue.UpsertScheduler(ctx, feedKey(feed.ID), queue.Every{Interval: feed.Cadence()}, domain.JobPollFeed, job); err != nil {
		return fmt.Errorf("schedule feed %d: %w", feed.ID, err)
	}
	lgr.Printf("[DEBUG] feed %d scheduled every %v", feed.ID, feed.Cadence())
	return nil
}

// Unschedule removes the recurring poll job of the feed, missing job is not an error
func (fs *FeedScheduler) Unschedule(ctx context.Context, feedID int64) error {
	if err := fs.queue.RemoveScheduler(ctx, feedKey(feedID)); err != nil {
		return fmt.Errorf("unschedule feed %d: %w", feedID, err)
	}
	return nil
}

// SyncAll aligns poll jobs with stored feeds: active feeds get scheduled, inactive
// ones and schedulers of deleted feeds are removed. A failing feed doesn't stop the sync.
func (fs *FeedScheduler) SyncAll(ctx context.Context) error {
	feeds, err := fs.feeds.GetFeeds(ctx, false)
	if err != nil {
		return fmt.Errorf("get feeds: %w", err)
	}

	known := make(map[string]bool, len(feeds))
	failed, scheduled := 0, 0
	for _, f := range feeds {
		known[feedKey(f.ID)] = true
		if err := fs.Schedule(ctx, f); err != nil {
			lgr.Printf("[WARN] %v", err)
			failed++
			continue
		}
		if f.Scheduled() {
			scheduled++
		}
	}

	existing, err := fs.queue.Schedulers(ctx)
	if err != nil {
		return fmt.Errorf("list schedulers: %w", err)
	}
	for _, s := range existing {
		if !strings.HasPrefix(s.Key, feedKeyPrefix) || known[s.Key] {
			continue
		}
		if err := fs.queue.RemoveScheduler(ctx, s.Key); err != nil {
			lgr.Printf("[WARN] failed to remove stale scheduler %s: %v", s.Key, err)
			failed++
			continue
		}
		lgr.Printf("[INFO] removed stale scheduler %s", s.Key)
	}

	lgr.Printf("[INFO] feed schedules synced, %d of %d feeds scheduled", scheduled, len(feeds))
	if failed > 0 {
		return fmt.Errorf("sync feeds: %d failures", failed)
	}
	return nil
}

// CreateFeed parses the feed once to get its name and language, stores it and schedules polling.
// Zero cadence is replaced with the default one.
func (fs *FeedScheduler) CreateFeed(ctx context.Context, url, provider string, cadenceMinutes int) (*domain.Feed, error) {
	if !fs.extractor.Supports(provider) {
		return nil, fmt.Errorf("create feed %s: %w: %q", url, domain.ErrUnsupportedProvider, provider)
	}
	parsed, err := fs.parser.Parse(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create feed %s: %w", url, err)
	}
	if cadenceMinutes == 0 {
		cadenceMinutes = fs.defaultCadence
	}

	feed := &domain.Feed{
		URL:            url,
		Provider:       provider,
		Name:           parsed.Title,
		Language:       parsed.Language,
		CadenceMinutes: cadenceMinutes,
		Active:         true,
	}
	if err := fs.feeds.CreateFeed(ctx, feed); err != nil {
		return nil, err
	}
	if err := fs.Schedule(ctx, feed); err != nil {
		return feed, err
	}
	lgr.Printf("[INFO] feed %d created: %s (%s), every %d minutes", feed.ID, feed.Name, feed.URL, feed.CadenceMinutes)
	return feed, nil
}

// SetFeedActive activates or deactivates the feed and adds or removes its poll job
func (fs *FeedScheduler) SetFeedActive(ctx context.Context, feedID int64, active bool) (*domain.Feed, error) {
	if err := fs.feeds.UpdateFeedStatus(ctx, feedID, active); err != nil {
		return nil, err
	}
	return fs.reschedule(ctx, feedID)
}

// SetFeedCadence changes poll cadence and replaces the poll job trigger
func (fs *FeedScheduler) SetFeedCadence(ctx context.Context, feedID int64, cadenceMinutes int) (*domain.Feed, error) {
	if err := fs.feeds.UpdateFeedCadence(ctx, feedID, cadenceMinutes); err != nil {
		return nil, err
	}
	return fs.reschedule(ctx, feedID)
}

func (fs *FeedScheduler) reschedule(ctx context.Context, feedID int64) (*domain.Feed, error) {
	feed, err := fs.feeds.GetFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	if err := fs.Schedule(ctx, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// PollNow enqueues a one-off poll of the feed regardless of its schedule, returns the job id
func (fs *FeedScheduler) PollNow(ctx context.Context, feedID int64) (string, error) {
	feed, err := fs.feeds.GetFeed(ctx, feedID)
	if err != nil {
		return "", err
	}
	id, err := fs.queue.Enqueue(ctx, domain.JobPollFeed, domain.FeedPollJob{FeedID: feed.ID, URL: feed.URL, Provider: feed.Provider})
	if err != nil {
		return "", fmt.Errorf("enqueue poll of feed %d: %w", feed.ID, err)
	}
	return id, nil
}
