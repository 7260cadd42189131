package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdigest/pkg/domain"
)

// UserRepository reads digest readers. Users are owned by the user management
// service, this repository never writes them.
type UserRepository struct {
	db *sqlx.DB
}

type userSQL struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	DigestTime    string `db:"digest_time"`
	DigestChannel string `db:"digest_channel"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	Active        bool   `db:"active"`
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *sqlx.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetUser retrieves a user by ID
func (r *UserRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var rec userSQL
	err := r.db.GetContext(ctx, &rec, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return rec.toDomain(), nil
}

// StreamActiveUsers iterates all active users through a cursor without loading
// the whole set, fn errors stop the iteration
func (r *UserRepository) StreamActiveUsers(ctx context.Context, fn func(*domain.User) error) error {
	rows, err := r.db.QueryxContext(ctx, "SELECT * FROM users WHERE active = 1 ORDER BY id")
	if err != nil {
		return fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec userSQL
		if err := rows.StructScan(&rec); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		if err := fn(rec.toDomain()); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate users: %w", err)
	}
	return nil
}

func (u *userSQL) toDomain() *domain.User {
	return &domain.User{
		ID:            u.ID,
		Name:          u.Name,
		DigestTime:    u.DigestTime,
		DigestChannel: domain.Channel(u.DigestChannel),
		Phone:         u.Phone,
		Email:         u.Email,
		Active:        u.Active,
	}
}
