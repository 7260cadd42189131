package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdigest/pkg/queue"
	"github.com/umputun/newsdigest/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
	}
}

func healthyJobs() *mocks.JobsMock {
	return &mocks.JobsMock{
		PingFunc: func(ctx context.Context) error { return nil },
		StatsFunc: func(ctx context.Context) (map[string]queue.Stats, error) {
			return map[string]queue.Stats{"feed-scraping": {Waiting: 2, Schedulers: 5}}, nil
		},
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(), &mocks.StoreMock{}, &mocks.SchedulerMock{}, &mocks.JobsMock{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
		},
	}
	store := &mocks.StoreMock{PingFunc: func(ctx context.Context) error { return nil }}
	srv := New(cfg, store, &mocks.SchedulerMock{}, healthyJobs(), "1.0.0", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get(base + "/api/v1/status")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"version":"1.0.0"`)
	assert.Equal(t, "newsdigest", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_statusHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		store := &mocks.StoreMock{PingFunc: func(ctx context.Context) error { return nil }}
		srv := New(testConfig(), store, &mocks.SchedulerMock{}, healthyJobs(), "1.2.3", false)

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		status := decodeBody[map[string]any](t, w)
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "1.2.3", status["version"])
		assert.NotEmpty(t, status["time"])
		queues, ok := status["queues"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, queues, "feed-scraping")
	})

	t.Run("redis down", func(t *testing.T) {
		store := &mocks.StoreMock{PingFunc: func(ctx context.Context) error { return nil }}
		jobs := &mocks.JobsMock{PingFunc: func(ctx context.Context) error { return errors.New("connection refused") }}
		srv := New(testConfig(), store, &mocks.SchedulerMock{}, jobs, "1.2.3", false)

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		status := decodeBody[map[string]any](t, w)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "connection refused", status["queue"])
		assert.Empty(t, jobs.StatsCalls())
	})
}

func TestServer_metrics(t *testing.T) {
	srv := New(testConfig(), &mocks.StoreMock{}, &mocks.SchedulerMock{}, &mocks.JobsMock{}, "test", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), nil, http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())
}
