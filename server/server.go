package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/queue"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/jobs.go -pkg mocks -skip-ensure -fmt goimports . Jobs

// Server represents the operator HTTP API
type Server struct {
	config    ConfigProvider
	store     Store
	scheduler Scheduler
	jobs      Jobs
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store is the persistence used by the API directly
type Store interface {
	GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// Scheduler is the pipeline surface for operator actions
type Scheduler interface {
	CreateFeed(ctx context.Context, url, provider string, cadenceMinutes int) (*domain.Feed, error)
	SetFeedActive(ctx context.Context, feedID int64, active bool) (*domain.Feed, error)
	SetFeedCadence(ctx context.Context, feedID int64, cadenceMinutes int) (*domain.Feed, error)
	Unschedule(ctx context.Context, feedID int64) error
	PollNow(ctx context.Context, feedID int64) (string, error)
	AddArticle(ctx context.Context, provider, url string, force bool) (*domain.Article, bool, error)
}

// Jobs gives access to queue state
type Jobs interface {
	Stats(ctx context.Context) (map[string]queue.Stats, error)
	Failed(ctx context.Context, name string) ([]*queue.Job, error)
	Ping(ctx context.Context) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, scheduler Scheduler, jobs Jobs, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		store:     store,
		scheduler: scheduler,
		jobs:      jobs,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdigest", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("POST /feeds", s.createFeedHandler)
		r.HandleFunc("PUT /feeds/{id}/active", s.feedActiveHandler)
		r.HandleFunc("PUT /feeds/{id}/cadence", s.feedCadenceHandler)
		r.HandleFunc("POST /feeds/{id}/poll", s.pollFeedHandler)
		r.HandleFunc("DELETE /feeds/{id}", s.deleteFeedHandler)

		r.HandleFunc("POST /articles", s.addArticleHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)
		r.HandleFunc("DELETE /articles/{id}", s.deleteArticleHandler)

		r.HandleFunc("GET /queues/{name}/failed", s.failedJobsHandler)
	})

	s.router.Handle("GET /metrics", promhttp.Handler())
}
