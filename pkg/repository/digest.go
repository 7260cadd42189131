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

// DigestRepository handles digest record operations
type DigestRepository struct {
	db *sqlx.DB
}

// digestSQL represents a digest record for SQL operations
type digestSQL struct {
	ID          int64                         `db:"id"`
	UserID      int64                         `db:"user_id"`
	Date        string                        `db:"date"`
	Content     jsonSQL[domain.DigestContent] `db:"content"`
	Status      string                        `db:"status"`
	ChannelSent string                        `db:"channel_sent"`
	Error       string                        `db:"error"`
	CreatedAt   time.Time                     `db:"created_at"`
	UpdatedAt   time.Time                     `db:"updated_at"`
}

// NewDigestRepository creates a new digest repository
func NewDigestRepository(database *sqlx.DB) *DigestRepository {
	return &DigestRepository{db: database}
}

// CreatePending inserts a PENDING record unless one already exists for (user, date).
// Returns false if the record was already there.
func (r *DigestRepository) CreatePending(ctx context.Context, rec *domain.DigestRecord) (bool, error) {
	query := `
		INSERT INTO digests (user_id, date, content, status)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO NOTHING
	`
	var created bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, rec.UserID, rec.Date,
			jsonSQL[domain.DigestContent]{V: rec.Content}, string(domain.DigestPending))
		if err != nil {
			return fmt.Errorf("create digest: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return nil
		}
		created = true
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if created {
		rec.Status = domain.DigestPending
	}
	return created, nil
}

// Exists checks whether a record exists for the user and date
func (r *DigestRepository) Exists(ctx context.Context, userID int64, date string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM digests WHERE user_id = ? AND date = ?)", userID, date)
	if err != nil {
		return false, fmt.Errorf("check digest exists: %w", err)
	}
	return exists, nil
}

// GetDigest retrieves the record of a user for a date
func (r *DigestRepository) GetDigest(ctx context.Context, userID int64, date string) (*domain.DigestRecord, error) {
	var rec digestSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM digests WHERE user_id = ? AND date = ?", userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get digest for user %d on %s: %w", userID, date, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get digest: %w", err)
	}
	return rec.toDomain(), nil
}

// MarkSent moves a PENDING record to SENT
func (r *DigestRepository) MarkSent(ctx context.Context, id int64, channel domain.Channel) error {
	query := `UPDATE digests SET status = ?, channel_sent = ?, error = '', updated_at = ? WHERE id = ? AND status = ?`
	return r.transition(ctx, query, string(domain.DigestSent), string(channel), time.Now().UTC(), id, string(domain.DigestPending))
}

// MarkFailed moves a PENDING record to FAILED
func (r *DigestRepository) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	query := `UPDATE digests SET status = ?, error = ?, updated_at = ? WHERE id = ? AND status = ?`
	return r.transition(ctx, query, string(domain.DigestFailed), errMsg, time.Now().UTC(), id, string(domain.DigestPending))
}

func (r *DigestRepository) transition(ctx context.Context, query string, args ...any) error {
	return withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update digest status: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("digest is not pending: %w", domain.ErrNotFound)
		}
		return nil
	})
}

// StreamPendingForHour iterates PENDING records of the date whose owner's digest
// hour equals hour. Rows are read through a cursor, fn errors stop the iteration.
func (r *DigestRepository) StreamPendingForHour(ctx context.Context, date string, hour int, fn func(*domain.DigestRecord) error) error {
	query := `
		SELECT d.* FROM digests d
		JOIN users u ON u.id = d.user_id
		WHERE d.status = ? AND d.date = ? AND u.active = 1
		AND CAST(substr(u.digest_time, 1, instr(u.digest_time, ':') - 1) AS INTEGER) = ?
		ORDER BY d.id
	`
	rows, err := r.db.QueryxContext(ctx, query, string(domain.DigestPending), date, hour)
	if err != nil {
		return fmt.Errorf("query pending digests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec digestSQL
		if err := rows.StructScan(&rec); err != nil {
			return fmt.Errorf("scan digest: %w", err)
		}
		if err := fn(rec.toDomain()); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate pending digests: %w", err)
	}
	return nil
}

func (d *digestSQL) toDomain() *domain.DigestRecord {
	return &domain.DigestRecord{
		ID:          d.ID,
		UserID:      d.UserID,
		Date:        d.Date,
		Content:     d.Content.V,
		Status:      domain.DigestStatus(d.Status),
		ChannelSent: domain.Channel(d.ChannelSent),
		Error:       d.Error,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
