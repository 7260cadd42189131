package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
	"github.com/umputun/newsdigest/server/mocks"
)

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServer_createFeedHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		CreateFeedFunc: func(ctx context.Context, url, provider string, cadenceMinutes int) (*domain.Feed, error) {
			if provider == "bbc" {
				return nil, fmt.Errorf("create feed: %w: %q", domain.ErrUnsupportedProvider, provider)
			}
			return &domain.Feed{ID: 7, URL: url, Provider: provider, Name: "Ynet", CadenceMinutes: 30, Active: true}, nil
		},
	}
	srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.JobsMock{}, "test", false)

	w := serve(srv, http.MethodPost, "/api/v1/feeds", `{"url":" https://www.ynet.co.il/rss ","provider":"YNET"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	feed := decodeBody[feedResponse](t, w)
	assert.Equal(t, int64(7), feed.ID)
	assert.Equal(t, "Ynet", feed.Name)
	assert.True(t, feed.Active)

	require.Len(t, sched.CreateFeedCalls(), 1)
	call := sched.CreateFeedCalls()[0]
	assert.Equal(t, "https://www.ynet.co.il/rss", call.URL)
	assert.Equal(t, "ynet", call.Provider)
	assert.Equal(t, 0, call.CadenceMinutes)

	tbl := []struct {
		name string
		body string
		code int
	}{
		{name: "bad json", body: `{`, code: http.StatusBadRequest},
		{name: "no url", body: `{"provider":"ynet"}`, code: http.StatusBadRequest},
		{name: "negative cadence", body: `{"url":"https://a","provider":"ynet","cadenceMinutes":-1}`, code: http.StatusBadRequest},
		{name: "unsupported provider", body: `{"url":"https://a","provider":"bbc"}`, code: http.StatusBadRequest},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(srv, http.MethodPost, "/api/v1/feeds", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.NotEmpty(t, decodeBody[map[string]string](t, w)["error"])
		})
	}
}

func TestServer_feedActiveAndCadence(t *testing.T) {
	sched := &mocks.SchedulerMock{
		SetFeedActiveFunc: func(ctx context.Context, feedID int64, active bool) (*domain.Feed, error) {
			if feedID == 404 {
				return nil, domain.ErrNotFound
			}
			return &domain.Feed{ID: feedID, Active: active, CadenceMinutes: 30}, nil
		},
		SetFeedCadenceFunc: func(ctx context.Context, feedID int64, cadenceMinutes int) (*domain.Feed, error) {
			return &domain.Feed{ID: feedID, Active: true, CadenceMinutes: cadenceMinutes}, nil
		},
	}
	srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.JobsMock{}, "test", false)

	w := serve(srv, http.MethodPut, "/api/v1/feeds/3/active", `{"active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decodeBody[feedResponse](t, w).Active)
	require.Len(t, sched.SetFeedActiveCalls(), 1)
	assert.Equal(t, int64(3), sched.SetFeedActiveCalls()[0].FeedID)

	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPut, "/api/v1/feeds/3/active", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPut, "/api/v1/feeds/abc/active", `{"active":true}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPut, "/api/v1/feeds/404/active", `{"active":true}`).Code)

	w = serve(srv, http.MethodPut, "/api/v1/feeds/3/cadence", `{"cadenceMinutes":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decodeBody[feedResponse](t, w).CadenceMinutes)

	w = serve(srv, http.MethodPut, "/api/v1/feeds/3/cadence", `{"cadenceMinutes":0}`)
	require.Equal(t, http.StatusOK, w.Code, "zero cadence stops polling")

	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPut, "/api/v1/feeds/3/cadence", `{"cadenceMinutes":-5}`).Code)
	assert.Len(t, sched.SetFeedCadenceCalls(), 2)
}

func TestServer_pollAndDeleteFeed(t *testing.T) {
	sched := &mocks.SchedulerMock{
		PollNowFunc: func(ctx context.Context, feedID int64) (string, error) {
			if feedID == 9 {
				return "", domain.ErrNotFound
			}
			return "job-1", nil
		},
		UnscheduleFunc: func(ctx context.Context, feedID int64) error { return nil },
	}
	store := &mocks.StoreMock{
		DeleteFeedFunc: func(ctx context.Context, id int64) error { return nil },
		GetFeedsFunc: func(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
			return []*domain.Feed{{ID: 1, Active: true}}, nil
		},
	}
	srv := New(testConfig(), store, sched, &mocks.JobsMock{}, "test", false)

	w := serve(srv, http.MethodPost, "/api/v1/feeds/2/poll", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"jobId":"job-1"}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/api/v1/feeds/9/poll", "").Code)

	w = serve(srv, http.MethodDelete, "/api/v1/feeds/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, sched.UnscheduleCalls(), 1)
	require.Len(t, store.DeleteFeedCalls(), 1)
	assert.Equal(t, int64(2), store.DeleteFeedCalls()[0].ID)

	w = serve(srv, http.MethodGet, "/api/v1/feeds?active=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]feedResponse](t, w), 1)
	assert.True(t, store.GetFeedsCalls()[0].ActiveOnly)
}

func TestServer_addArticleHandler(t *testing.T) {
	sched := &mocks.SchedulerMock{
		AddArticleFunc: func(ctx context.Context, provider, url string, force bool) (*domain.Article, bool, error) {
			a := &domain.Article{ID: 5, URL: url, Source: provider, ExternalID: provider + "-" + url,
				ScrapingStatus: domain.ScrapingCompleted}
			if force {
				a.ScrapingStatus = domain.ScrapingPending
				return a, true, nil
			}
			return a, false, nil
		},
	}
	srv := New(testConfig(), &mocks.StoreMock{}, sched, &mocks.JobsMock{}, "test", false)

	w := serve(srv, http.MethodPost, "/api/v1/articles", `{"url":"https://www.themarker.com/a/1","provider":"themarker"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody[struct {
		Article articleResponse `json:"article"`
		Queued  bool            `json:"queued"`
	}](t, w)
	assert.False(t, res.Queued)
	assert.Equal(t, domain.ScrapingCompleted, res.Article.ScrapingStatus)

	w = serve(srv, http.MethodPost, "/api/v1/articles", `{"url":"https://www.themarker.com/a/1","provider":"themarker","force":true}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, sched.AddArticleCalls(), 2)
	assert.True(t, sched.AddArticleCalls()[1].Force)

	assert.Equal(t, http.StatusBadRequest, serve(srv, http.MethodPost, "/api/v1/articles", `{"url":"x"}`).Code)
}

func TestServer_getAndDeleteArticle(t *testing.T) {
	store := &mocks.StoreMock{
		GetArticleFunc: func(ctx context.Context, id int64) (*domain.Article, error) {
			if id != 5 {
				return nil, domain.ErrNotFound
			}
			return &domain.Article{ID: 5, Title: "Title", Embeddings: []float64{0.1, 0.2},
				Enrichment: map[string]any{"topic": "economy"}}, nil
		},
		DeleteArticleFunc: func(ctx context.Context, id int64) error {
			if id != 5 {
				return domain.ErrNotFound
			}
			return nil
		},
	}
	srv := New(testConfig(), store, &mocks.SchedulerMock{}, &mocks.JobsMock{}, "test", false)

	w := serve(srv, http.MethodGet, "/api/v1/articles/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	a := decodeBody[map[string]any](t, w)
	assert.Equal(t, "Title", a["title"])
	assert.Equal(t, true, a["enriched"])
	assert.NotContains(t, a, "embeddings")

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/v1/articles/6", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(srv, http.MethodDelete, "/api/v1/articles/5", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodDelete, "/api/v1/articles/6", "").Code)
}

func TestServer_failedJobsHandler(t *testing.T) {
	jobs := &mocks.JobsMock{
		FailedFunc: func(ctx context.Context, name string) ([]*queue.Job, error) {
			switch name {
			case domain.QueueDigestDelivery:
				return []*queue.Job{{ID: "deliver:1:2026-03-05", Name: domain.JobDeliverDigest, Attempt: 3, LastError: "rejected"}}, nil
			case domain.QueueMaintenance:
				return nil, nil
			}
			return nil, errors.New("queue is not registered")
		},
	}
	srv := New(testConfig(), &mocks.StoreMock{}, &mocks.SchedulerMock{}, jobs, "test", false)

	w := serve(srv, http.MethodGet, "/api/v1/queues/digest-delivery/failed", "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody[[]queue.Job](t, w)
	require.Len(t, res, 1)
	assert.Equal(t, "rejected", res[0].LastError)

	w = serve(srv, http.MethodGet, "/api/v1/queues/maintenance/failed", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodGet, "/api/v1/queues/nope/failed", "").Code)
}
