package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
	"github.com/umputun/newsdigest/pkg/scheduler/mocks"
)

func schedulerKeys(t *testing.T, q *queue.Queue) map[string]queue.SchedulerInfo {
	t.Helper()
	list, err := q.Schedulers(context.Background())
	require.NoError(t, err)
	res := make(map[string]queue.SchedulerInfo, len(list))
	for _, s := range list {
		res[s.Key] = s
	}
	return res
}

func TestFeedScheduler_Schedule(t *testing.T) {
	q := newTestQueue(t, domain.QueueFeedScraping)
	fs := NewFeedScheduler(FeedSchedulerParams{Queue: q})
	ctx := context.Background()

	feed := &domain.Feed{ID: 5, URL: "https://www.ynet.co.il/rss", Provider: "ynet", CadenceMinutes: 15, Active: true}
	require.NoError(t, fs.Schedule(ctx, feed))
	require.NoError(t, fs.Schedule(ctx, feed), "repeated upsert keeps a single job")

	keys := schedulerKeys(t, q)
	require.Len(t, keys, 1)
	s := keys["feed-poll:5"]
	assert.Equal(t, "every:15m0s", s.Trigger)
	assert.Equal(t, domain.JobPollFeed, s.Job)
	assert.JSONEq(t, `{"feedId":5,"url":"https://www.ynet.co.il/rss","provider":"ynet"}`, string(s.Payload))
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), s.Next, time.Minute)

	feed.CadenceMinutes = 60
	require.NoError(t, fs.Schedule(ctx, feed))
	keys = schedulerKeys(t, q)
	require.Len(t, keys, 1)
	assert.Equal(t, "every:1h0m0s", keys["feed-poll:5"].Trigger)

	feed.Active = false
	require.NoError(t, fs.Schedule(ctx, feed))
	assert.Empty(t, schedulerKeys(t, q))

	// zero cadence means no schedule even for active feed
	require.NoError(t, fs.Schedule(ctx, &domain.Feed{ID: 6, Active: true}))
	assert.Empty(t, schedulerKeys(t, q))
}

func TestFeedScheduler_SyncAll(t *testing.T) {
	q := newTestQueue(t, domain.QueueFeedScraping)
	ctx := context.Background()

	// left over from a deleted feed
	require.NoError(t, q.UpsertScheduler(ctx, "feed-poll:9", queue.Every{Interval: time.Minute}, domain.JobPollFeed, nil))
	// unrelated scheduler on the same queue is kept
	require.NoError(t, q.UpsertScheduler(ctx, "other", queue.Every{Interval: time.Minute}, "other-job", nil))

	feeds := &mocks.FeedStoreMock{
		GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
			assert.False(t, activeOnly)
			return []*domain.Feed{
				{ID: 1, URL: "https://a/rss", Provider: "ynet", CadenceMinutes: 10, Active: true},
				{ID: 2, URL: "https://b/rss", Provider: "walla", CadenceMinutes: 20, Active: false},
				{ID: 3, URL: "https://c/rss", Provider: "maariv", CadenceMinutes: 30, Active: true},
			}, nil
		},
	}
	fs := NewFeedScheduler(FeedSchedulerParams{Feeds: feeds, Queue: q})
	require.NoError(t, fs.SyncAll(ctx))

	keys := schedulerKeys(t, q)
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, "feed-poll:1")
	assert.Contains(t, keys, "feed-poll:3")
	assert.Contains(t, keys, "other")
	assert.NotContains(t, keys, "feed-poll:2")
	assert.NotContains(t, keys, "feed-poll:9")

	feeds.GetFeedsFunc = func(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
		return nil, errors.New("db locked")
	}
	require.Error(t, fs.SyncAll(ctx))
}

func TestFeedScheduler_CreateFeed(t *testing.T) {
	q := newTestQueue(t, domain.QueueFeedScraping)
	feeds := &mocks.FeedStoreMock{
		CreateFeedFunc: func(ctx context.Context, feed *domain.Feed) error {
			feed.ID = 12
			return nil
		},
	}
	parser := &mocks.ParserMock{
		ParseFunc: func(ctx context.Context, url string) (*domain.ParsedFeed, error) {
			if url == "https://bad/rss" {
				return nil, errors.New("not a feed")
			}
			return &domain.ParsedFeed{Title: "Globes", Language: "he"}, nil
		},
	}
	extractor := &mocks.ExtractorMock{SupportsFunc: func(provider string) bool { return provider == "globes" }}
	fs := NewFeedScheduler(FeedSchedulerParams{Feeds: feeds, Parser: parser, Extractor: extractor, Queue: q, DefaultCadence: 45})
	ctx := context.Background()

	feed, err := fs.CreateFeed(ctx, "https://www.globes.co.il/rss", "globes", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), feed.ID)
	assert.Equal(t, "Globes", feed.Name)
	assert.Equal(t, "he", feed.Language)
	assert.Equal(t, 45, feed.CadenceMinutes)
	assert.True(t, feed.Active)
	assert.Equal(t, "every:45m0s", schedulerKeys(t, q)["feed-poll:12"].Trigger)

	_, err = fs.CreateFeed(ctx, "https://bbc/rss", "bbc", 10)
	require.ErrorIs(t, err, domain.ErrUnsupportedProvider)

	_, err = fs.CreateFeed(ctx, "https://bad/rss", "globes", 10)
	require.Error(t, err)
	assert.Len(t, feeds.CreateFeedCalls(), 1)
}

func TestFeedScheduler_SetFeedActiveAndCadence(t *testing.T) {
	q := newTestQueue(t, domain.QueueFeedScraping)
	stored := &domain.Feed{ID: 3, URL: "https://c/rss", Provider: "maariv", CadenceMinutes: 30, Active: true}
	feeds := &mocks.FeedStoreMock{
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) {
			if id != stored.ID {
				return nil, domain.ErrNotFound
			}
			f := *stored
			return &f, nil
		},
		UpdateFeedStatusFunc: func(ctx context.Context, feedID int64, active bool) error {
			if feedID != stored.ID {
				return domain.ErrNotFound
			}
			stored.Active = active
			return nil
		},
		UpdateFeedCadenceFunc: func(ctx context.Context, feedID int64, cadenceMinutes int) error {
			stored.CadenceMinutes = cadenceMinutes
			return nil
		},
	}
	fs := NewFeedScheduler(FeedSchedulerParams{Feeds: feeds, Queue: q})
	ctx := context.Background()

	f, err := fs.SetFeedCadence(ctx, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, f.CadenceMinutes)
	assert.Equal(t, "every:5m0s", schedulerKeys(t, q)["feed-poll:3"].Trigger)

	f, err = fs.SetFeedActive(ctx, 3, false)
	require.NoError(t, err)
	assert.False(t, f.Active)
	assert.Empty(t, schedulerKeys(t, q))

	_, err = fs.SetFeedActive(ctx, 3, true)
	require.NoError(t, err)
	assert.Contains(t, schedulerKeys(t, q), "feed-poll:3")

	_, err = fs.SetFeedActive(ctx, 99, true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFeedScheduler_PollNow(t *testing.T) {
	q := newTestQueue(t, domain.QueueFeedScraping)
	feeds := &mocks.FeedStoreMock{
		GetFeedFunc: func(ctx context.Context, id int64) (*domain.Feed, error) {
			if id != 3 {
				return nil, domain.ErrNotFound
			}
			return &domain.Feed{ID: 3, URL: "https://c/rss", Provider: "maariv"}, nil
		},
	}
	fs := NewFeedScheduler(FeedSchedulerParams{Feeds: feeds, Queue: q})

	id, err := fs.PollNow(context.Background(), 3)
	require.NoError(t, err)
	job, err := q.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPollFeed, job.Name)
	assert.JSONEq(t, `{"feedId":3,"url":"https://c/rss","provider":"maariv"}`, string(job.Payload))

	_, err = fs.PollNow(context.Background(), 4)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
