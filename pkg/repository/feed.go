package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdigest/pkg/domain"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db *sqlx.DB
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID             int64      `db:"id"`
	URL            string     `db:"url"`
	Provider       string     `db:"provider"`
	Name           string     `db:"name"`
	Language       string     `db:"language"`
	CadenceMinutes int        `db:"cadence_minutes"`
	Active         bool       `db:"active"`
	LastPolledAt   *time.Time `db:"last_polled_at"`
	LastError      string     `db:"last_error"`
	CreatedAt      time.Time  `db:"created_at"`
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(database *sqlx.DB) *FeedRepository {
	return &FeedRepository{db: database}
}

// CreateFeed inserts a new feed, url must be unique
func (r *FeedRepository) CreateFeed(ctx context.Context, feed *domain.Feed) error {
	sqlFeed := &feedSQL{
		URL:            feed.URL,
		Provider:       feed.Provider,
		Name:           feed.Name,
		Language:       feed.Language,
		CadenceMinutes: feed.CadenceMinutes,
		Active:         feed.Active,
	}

	query := `
		INSERT INTO feeds (url, provider, name, language, cadence_minutes, active)
		VALUES (:url, :provider, :name, :language, :cadence_minutes, :active)
	`
	result, err := r.db.NamedExecContext(ctx, query, sqlFeed)
	if err != nil {
		if isUniqueError(err) {
			return fmt.Errorf("create feed %s: %w", feed.URL, domain.ErrDuplicate)
		}
		return fmt.Errorf("create feed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}

	feed.ID = id
	return nil
}

// GetFeed retrieves a feed by ID
func (r *FeedRepository) GetFeed(ctx context.Context, id int64) (*domain.Feed, error) {
	var sqlFeed feedSQL
	err := r.db.GetContext(ctx, &sqlFeed, "SELECT * FROM feeds WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feed %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return r.toDomainFeed(&sqlFeed), nil
}

// GetFeeds retrieves feeds with optional filtering
func (r *FeedRepository) GetFeeds(ctx context.Context, activeOnly bool) ([]*domain.Feed, error) {
	query := "SELECT * FROM feeds"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY id"

	var sqlFeeds []feedSQL
	if err := r.db.SelectContext(ctx, &sqlFeeds, query); err != nil {
		return nil, fmt.Errorf("get feeds: %w", err)
	}

	feeds := make([]*domain.Feed, len(sqlFeeds))
	for i := range sqlFeeds {
		feeds[i] = r.toDomainFeed(&sqlFeeds[i])
	}
	return feeds, nil
}

// UpdateFeedPolled records a successful poll and clears the last error
func (r *FeedRepository) UpdateFeedPolled(ctx context.Context, feedID int64, polledAt time.Time) error {
	return withLockRetry(ctx, func() error {
		query := `UPDATE feeds SET last_polled_at = ?, last_error = '' WHERE id = ?`
		if _, err := r.db.ExecContext(ctx, query, polledAt.UTC(), feedID); err != nil {
			return fmt.Errorf("update feed polled: %w", err)
		}
		return nil
	})
}

// UpdateFeedError records the error of a failed poll
func (r *FeedRepository) UpdateFeedError(ctx context.Context, feedID int64, errMsg string) error {
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "UPDATE feeds SET last_error = ? WHERE id = ?", errMsg, feedID); err != nil {
			return fmt.Errorf("update feed error: %w", err)
		}
		return nil
	})
}

// UpdateFeedStatus activates or deactivates a feed
func (r *FeedRepository) UpdateFeedStatus(ctx context.Context, feedID int64, active bool) error {
	return r.updateFeed(ctx, "UPDATE feeds SET active = ? WHERE id = ?", active, feedID)
}

// UpdateFeedCadence changes the poll cadence of a feed
func (r *FeedRepository) UpdateFeedCadence(ctx context.Context, feedID int64, cadenceMinutes int) error {
	return r.updateFeed(ctx, "UPDATE feeds SET cadence_minutes = ? WHERE id = ?", cadenceMinutes, feedID)
}

// DeleteFeed removes a feed, articles are kept
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) error {
	return r.updateFeed(ctx, "DELETE FROM feeds WHERE id = ?", id)
}

func (r *FeedRepository) updateFeed(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update feed: %w", domain.ErrNotFound)
	}
	return nil
}

// toDomainFeed converts feedSQL to domain.Feed
func (r *FeedRepository) toDomainFeed(sqlFeed *feedSQL) *domain.Feed {
	return &domain.Feed{
		ID:             sqlFeed.ID,
		URL:            sqlFeed.URL,
		Provider:       sqlFeed.Provider,
		Name:           sqlFeed.Name,
		Language:       sqlFeed.Language,
		CadenceMinutes: sqlFeed.CadenceMinutes,
		Active:         sqlFeed.Active,
		LastPolledAt:   sqlFeed.LastPolledAt,
		LastError:      sqlFeed.LastError,
		CreatedAt:      sqlFeed.CreatedAt,
	}
}
