package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ndhoang/authgate/internal/core/domain"
)

// PgxSessionRepository implements domain.SessionRepository using pgx.
type PgxSessionRepository struct {
	db DB
}

// NewSessionRepository creates a new PgxSessionRepository.
func NewSessionRepository(db DB) *PgxSessionRepository {
	return &PgxSessionRepository{db: db}
}

// Create inserts a new session row under the given opaque identifier.
func (r *PgxSessionRepository) Create(ctx context.Context, id, name, email string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (id, name, email, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, id, name, email, expiresAt)
	return err
}

// Get looks up the session by identifier. Expired rows are filtered in SQL,
// so a row past its expiry reads the same as one that never existed.
// Returns (nil, nil) when absent.
func (r *PgxSessionRepository) Get(ctx context.Context, id string) (*domain.SessionRow, error) {
	query := `SELECT id, name, email, expires_at FROM sessions WHERE id = $1 AND expires_at > now()`

	var row domain.SessionRow
	err := r.db.QueryRow(ctx, query, id).Scan(
		&row.ID, &row.Name, &row.Email, &row.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

// Refresh re-persists the session's expiry. Refreshing an absent row is a
// no-op. Last write wins under concurrency.
func (r *PgxSessionRepository) Refresh(ctx context.Context, id string, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, expiresAt)
	return err
}

// Delete removes the session row. Idempotent: deleting an absent row
// succeeds.
func (r *PgxSessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// DeleteExpired removes rows past their expiry and reports how many went.
func (r *PgxSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM sessions WHERE expires_at <= now()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
