package server

import (
	"context"

	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Store interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// GetFeeds returns stored feeds
func (r *RepositoryAdapter) GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
	return r.repos.Feed.GetFeeds(ctx, activeOnly)
}

// DeleteFeed removes a feed
func (r *RepositoryAdapter) DeleteFeed(ctx context.Context, id int64) error {
	return r.repos.Feed.DeleteFeed(ctx, id)
}

// GetArticle returns article by id
func (r *RepositoryAdapter) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	return r.repos.Article.GetArticle(ctx, id)
}

// DeleteArticle removes an article
func (r *RepositoryAdapter) DeleteArticle(ctx context.Context, id int64) error {
	return r.repos.Article.DeleteArticle(ctx, id)
}

// Ping verifies the database connection
func (r *RepositoryAdapter) Ping(ctx context.Context) error {
	return r.repos.Ping(ctx)
}
