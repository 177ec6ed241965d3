package repository

import (
	"context"

	"github.com/ndhoang/authgate/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgx.
type PgxUserRepository struct {
	db DB
}

// NewUserRepository creates a new PgxUserRepository.
func NewUserRepository(db DB) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Insert appends a new credential record. No uniqueness check: the table
// carries no unique constraint on email and none is enforced here.
func (r *PgxUserRepository) Insert(ctx context.Context, name, email, passwordHash string) error {
	query := `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, name, email, passwordHash)
	return err
}

// FindByEmail returns the record matching the given email.
// Returns (nil, nil) unless exactly one row matches; duplicate emails are
// ambiguous and reported the same as no match at all.
func (r *PgxUserRepository) FindByEmail(ctx context.Context, email string) (*domain.UserRow, error) {
	query := `SELECT id, name, email, password_hash FROM users WHERE email = $1`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.UserRow
	for rows.Next() {
		var row domain.UserRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Email, &row.PasswordHash); err != nil {
			return nil, err
		}
		matches = append(matches, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(matches) != 1 {
		return nil, nil
	}
	return &matches[0], nil
}
