package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
	"github.com/umputun/newsdigest/pkg/scheduler/mocks"
)

// enqueued is a job recorded by jobRecorder
type enqueued struct {
	name    string
	payload any
}

// jobRecorder is an Enqueuer keeping jobs in memory
type jobRecorder struct {
	mu   sync.Mutex
	jobs []enqueued
	err  error
}

func (r *jobRecorder) Enqueue(_ context.Context, jobName string, payload any, _ ...queue.EnqueueOption) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.jobs = append(r.jobs, enqueued{name: jobName, payload: payload})
	return "job-id", nil
}

func (r *jobRecorder) all() []enqueued {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]enqueued(nil), r.jobs...)
}

func newTestQueue(t *testing.T, name string) *queue.Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return queue.New(client, "test", name, queue.Options{Attempts: 3})
}

// memArticles is an ArticleStoreMock backed by a map keyed by external id
func memArticles() (*mocks.ArticleStoreMock, map[string]*domain.Article) {
	var mu sync.Mutex
	byExternalID := map[string]*domain.Article{}
	nextID := int64(0)
	m := &mocks.ArticleStoreMock{
		ExistsFunc: func(ctx context.Context, externalID string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			_, ok := byExternalID[externalID]
			return ok, nil
		},
		CreateArticleFunc: func(ctx context.Context, article *domain.Article) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := byExternalID[article.ExternalID]; ok {
				return domain.ErrDuplicate
			}
			nextID++
			article.ID = nextID
			byExternalID[article.ExternalID] = article
			return nil
		},
		UpdateStatusFunc: func(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error {
			return nil
		},
	}
	return m, byExternalID
}

func TestFeedProcessor_PollFeed(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		UpdateFeedPolledFunc: func(ctx context.Context, feedID int64, polledAt time.Time) error { return nil },
	}
	parser := &mocks.ParserMock{
		ParseFunc: func(ctx context.Context, url string) (*domain.ParsedFeed, error) {
			assert.Equal(t, "https://x.example.com/rss", url)
			return &domain.ParsedFeed{Items: []domain.ParsedItem{
				{GUID: "guid1", Title: "Old", Link: "https://x.example.com/1"},
				{GUID: "guid2", Title: "New", Link: "https://x.example.com/2"},
			}}, nil
		},
	}
	articles := &mocks.ArticleStoreMock{
		ExistsFunc: func(ctx context.Context, externalID string) (bool, error) {
			return externalID == "x-guid1", nil
		},
		CreateArticleFunc: func(ctx context.Context, article *domain.Article) error {
			article.ID = 77
			return nil
		},
	}
	jobs := &jobRecorder{}

	fp := NewFeedProcessor(FeedProcessorParams{Feeds: feeds, Articles: articles, Parser: parser, Queue: jobs})
	res, err := fp.PollFeed(context.Background(), domain.FeedPollJob{FeedID: 5, URL: "https://x.example.com/rss", Provider: "x"})
	require.NoError(t, err)
	assert.Equal(t, PollResult{Processed: 2, New: 1}, res)

	require.Len(t, articles.CreateArticleCalls(), 1)
	created := articles.CreateArticleCalls()[0].Article
	assert.Equal(t, "x-guid2", created.ExternalID)
	assert.Equal(t, "x", created.Source)
	assert.Equal(t, "New", created.Title)
	assert.Equal(t, "https://x.example.com/2", created.URL)
	assert.Equal(t, domain.ScrapingPending, created.ScrapingStatus)

	require.Len(t, jobs.all(), 1)
	assert.Equal(t, domain.JobExtractArticle, jobs.all()[0].name)
	assert.Equal(t, domain.ArticleExtractionJob{ArticleID: 77, URL: "https://x.example.com/2"}, jobs.all()[0].payload)

	require.Len(t, feeds.UpdateFeedPolledCalls(), 1)
	assert.Equal(t, int64(5), feeds.UpdateFeedPolledCalls()[0].FeedID)
}

func TestFeedProcessor_PollFeedIdempotent(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		UpdateFeedPolledFunc: func(ctx context.Context, feedID int64, polledAt time.Time) error { return nil },
	}
	parser := &mocks.ParserMock{
		ParseFunc: func(ctx context.Context, url string) (*domain.ParsedFeed, error) {
			return &domain.ParsedFeed{Items: []domain.ParsedItem{
				{GUID: "a", Link: "https://y/1"},
				{Link: "https://y/2"}, // no guid, link is the key
				{Title: "no keys"},
			}}, nil
		},
	}
	articles, stored := memArticles()
	jobs := &jobRecorder{}
	fp := NewFeedProcessor(FeedProcessorParams{Feeds: feeds, Articles: articles, Parser: parser, Queue: jobs})

	job := domain.FeedPollJob{FeedID: 1, URL: "https://y/rss", Provider: "ynet"}
	res, err := fp.PollFeed(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, PollResult{Processed: 3, New: 2}, res)

	res, err = fp.PollFeed(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, PollResult{Processed: 3, New: 0}, res)

	assert.Len(t, stored, 2)
	assert.Contains(t, stored, "ynet-a")
	assert.Contains(t, stored, "ynet-https://y/2")
	assert.Len(t, jobs.all(), 2, "one extraction job per new article only")
}

func TestFeedProcessor_PollFeedParseError(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		UpdateFeedErrorFunc: func(ctx context.Context, feedID int64, errMsg string) error { return nil },
	}
	parser := &mocks.ParserMock{
		ParseFunc: func(ctx context.Context, url string) (*domain.ParsedFeed, error) {
			return nil, errors.New("status code 502")
		},
	}
	fp := NewFeedProcessor(FeedProcessorParams{Feeds: feeds, Parser: parser, Queue: &jobRecorder{}})

	_, err := fp.PollFeed(context.Background(), domain.FeedPollJob{FeedID: 3, URL: "https://z/rss", Provider: "z"})
	require.Error(t, err)
	assert.False(t, queue.IsPermanent(err), "fetch errors are retried")

	require.Len(t, feeds.UpdateFeedErrorCalls(), 1)
	assert.Equal(t, int64(3), feeds.UpdateFeedErrorCalls()[0].FeedID)
	assert.Equal(t, "status code 502", feeds.UpdateFeedErrorCalls()[0].ErrMsg)
}

func TestFeedProcessor_PollFeedEnqueueFailure(t *testing.T) {
	feeds := &mocks.FeedStoreMock{
		UpdateFeedPolledFunc: func(ctx context.Context, feedID int64, polledAt time.Time) error { return nil },
	}
	parser := &mocks.ParserMock{
		ParseFunc: func(ctx context.Context, url string) (*domain.ParsedFeed, error) {
			return &domain.ParsedFeed{Items: []domain.ParsedItem{{GUID: "g1", Link: "https://w/1"}}}, nil
		},
	}
	articles, _ := memArticles()
	fp := NewFeedProcessor(FeedProcessorParams{Feeds: feeds, Articles: articles, Parser: parser,
		Queue: &jobRecorder{err: errors.New("redis down")}})

	res, err := fp.PollFeed(context.Background(), domain.FeedPollJob{FeedID: 1, URL: "https://w/rss", Provider: "walla"})
	require.NoError(t, err, "item failures don't fail the poll")
	assert.Equal(t, PollResult{Processed: 1, New: 0}, res)

	require.Len(t, articles.UpdateStatusCalls(), 1)
	call := articles.UpdateStatusCalls()[0]
	assert.Equal(t, int64(1), call.ID)
	assert.Equal(t, domain.ScrapingFailed, call.Status)
	assert.Equal(t, "redis down", call.ErrMsg)
}

func TestFeedProcessor_IngestArticle(t *testing.T) {
	full := &domain.Extracted{Title: "T", Subtitle: "S", Content: "C", Categories: []string{"news"}}
	noSubtitle := &domain.Extracted{Title: "T", Content: "C"}

	tbl := []struct {
		name      string
		extracted *domain.Extracted
		enriched  bool
	}{
		{name: "all fields present", extracted: full, enriched: true},
		{name: "missing subtitle skips enrichment", extracted: noSubtitle, enriched: false},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			articles := &mocks.ArticleStoreMock{
				GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
					return &domain.Article{ID: id, URL: "https://www.ynet.co.il/a/1", Source: "ynet"}, nil
				},
				UpdateExtractedFunc: func(ctx context.Context, id int64, ex *domain.Extracted) error { return nil },
				UpdateStatusFunc: func(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error {
					return nil
				},
				UpdateEnrichmentFunc: func(ctx context.Context, id int64, en *domain.Enrichment) error { return nil },
			}
			extractor := &mocks.ExtractorMock{
				ExtractFunc: func(ctx context.Context, provider, url string) (*domain.Extracted, error) {
					assert.Equal(t, "ynet", provider)
					assert.Equal(t, "https://www.ynet.co.il/a/1", url)
					return tt.extracted, nil
				},
			}
			enricher := &mocks.EnricherMock{
				IngestArticleFunc: func(ctx context.Context, title, subtitle, content string) (*domain.Enrichment, error) {
					return &domain.Enrichment{Attributes: map[string]any{"topic": "x"}, Embeddings: []float64{1, 2}}, nil
				},
			}

			fp := NewFeedProcessor(FeedProcessorParams{Articles: articles, Extractor: extractor, Enricher: enricher})
			require.NoError(t, fp.IngestArticle(context.Background(), 9))

			require.Len(t, articles.UpdateExtractedCalls(), 1)
			assert.Equal(t, tt.extracted, articles.UpdateExtractedCalls()[0].Ex)
			require.Len(t, articles.UpdateStatusCalls(), 1)
			assert.Equal(t, domain.ScrapingCompleted, articles.UpdateStatusCalls()[0].Status)

			if !tt.enriched {
				assert.Empty(t, enricher.IngestArticleCalls())
				assert.Empty(t, articles.UpdateEnrichmentCalls())
				return
			}
			require.Len(t, enricher.IngestArticleCalls(), 1)
			assert.Equal(t, "S", enricher.IngestArticleCalls()[0].Subtitle)
			require.Len(t, articles.UpdateEnrichmentCalls(), 1)
			assert.Equal(t, []float64{1, 2}, articles.UpdateEnrichmentCalls()[0].En.Embeddings)
		})
	}
}

func TestFeedProcessor_IngestArticleErrors(t *testing.T) {
	articles := &mocks.ArticleStoreMock{
		GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
			if id == 404 {
				return nil, domain.ErrNotFound
			}
			if id == 410 {
				return &domain.Article{ID: id, URL: "https://u/gone", Source: "ynet"}, nil
			}
			return &domain.Article{ID: id, URL: "https://u/1", Source: map[int64]string{1: "ynet", 2: "bbc", 3: "ynet"}[id]}, nil
		},
		UpdateExtractedFunc: func(ctx context.Context, id int64, ex *domain.Extracted) error { return nil },
		UpdateStatusFunc:    func(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error { return nil },
	}
	extractor := &mocks.ExtractorMock{
		ExtractFunc: func(ctx context.Context, provider, url string) (*domain.Extracted, error) {
			switch {
			case provider == "bbc":
				return nil, domain.ErrUnsupportedProvider
			case url == "https://u/gone":
				return nil, fmt.Errorf("fetch ynet page: status code 404 for URL %s: %w", url, domain.ErrPageGone)
			}
			return nil, errors.New("fetch failed")
		},
	}
	fp := NewFeedProcessor(FeedProcessorParams{Articles: articles, Extractor: extractor})

	err := fp.IngestArticle(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, queue.IsPermanent(err))
	assert.Empty(t, articles.UpdateStatusCalls(), "status is not touched on extraction errors")

	err = fp.IngestArticle(context.Background(), 2)
	require.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	assert.True(t, queue.IsPermanent(err))

	err = fp.IngestArticle(context.Background(), 404)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, queue.IsPermanent(err))

	err = fp.IngestArticle(context.Background(), 410)
	require.ErrorIs(t, err, domain.ErrPageGone)
	assert.True(t, queue.IsPermanent(err), "removed page is not retried")

	t.Run("enrichment error is retried", func(t *testing.T) {
		extractor.ExtractFunc = func(ctx context.Context, provider, url string) (*domain.Extracted, error) {
			return &domain.Extracted{Title: "T", Subtitle: "S", Content: "C"}, nil
		}
		fp.enricher = &mocks.EnricherMock{
			IngestArticleFunc: func(ctx context.Context, title, subtitle, content string) (*domain.Enrichment, error) {
				return nil, errors.New("service unavailable")
			},
		}
		err := fp.IngestArticle(context.Background(), 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service unavailable")
		assert.False(t, queue.IsPermanent(err))
	})
}

func TestFeedProcessor_AddArticle(t *testing.T) {
	articles, stored := memArticles()
	articles.GetArticleByExternalIDFunc = func(ctx context.Context, externalID string) (*domain.Article, error) {
		if a, ok := stored[externalID]; ok {
			return a, nil
		}
		return nil, domain.ErrNotFound
	}
	extractor := &mocks.ExtractorMock{
		SupportsFunc: func(provider string) bool { return provider != "bbc" },
	}
	jobs := &jobRecorder{}
	fp := NewFeedProcessor(FeedProcessorParams{Articles: articles, Extractor: extractor, Queue: jobs})
	ctx := context.Background()

	a, queued, err := fp.AddArticle(ctx, "globes", "https://www.globes.co.il/news/1", false)
	require.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, "globes-https://www.globes.co.il/news/1", a.ExternalID)
	assert.Len(t, jobs.all(), 1)

	again, queued, err := fp.AddArticle(ctx, "globes", "https://www.globes.co.il/news/1", false)
	require.NoError(t, err)
	assert.False(t, queued, "known article without force is a no-op")
	assert.Equal(t, a.ID, again.ID)
	assert.Len(t, jobs.all(), 1)

	forced, queued, err := fp.AddArticle(ctx, "globes", "https://www.globes.co.il/news/1", true)
	require.NoError(t, err)
	assert.True(t, queued)
	assert.Equal(t, domain.ScrapingPending, forced.ScrapingStatus)
	assert.Len(t, jobs.all(), 2)
	require.Len(t, articles.UpdateStatusCalls(), 1)
	assert.Equal(t, domain.ScrapingPending, articles.UpdateStatusCalls()[0].Status)
	assert.Len(t, articles.CreateArticleCalls(), 1)

	_, _, err = fp.AddArticle(ctx, "bbc", "https://bbc.co.uk/1", false)
	require.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestFeedProcessor_OnArticleFailed(t *testing.T) {
	articles := &mocks.ArticleStoreMock{
		UpdateStatusFunc: func(ctx context.Context, id int64, status domain.ScrapingStatus, errMsg string) error { return nil },
	}
	fp := NewFeedProcessor(FeedProcessorParams{Articles: articles})

	job := &queue.Job{ID: "j1", Payload: []byte(`{"articleId":12,"url":"https://u/12"}`)}
	fp.onArticleFailed(context.Background(), job, errors.New("structured articleBody not found"))

	require.Len(t, articles.UpdateStatusCalls(), 1)
	call := articles.UpdateStatusCalls()[0]
	assert.Equal(t, int64(12), call.ID)
	assert.Equal(t, domain.ScrapingFailed, call.Status)
	assert.Equal(t, "structured articleBody not found", call.ErrMsg)
}
