package domain

import "context"

// UserRow represents a credential record returned from the database.
// It includes the password hash so the Logic layer can verify credentials;
// the hash never leaves that layer.
type UserRow struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
}

// UserRepository defines the data-access contract for credential records.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only — never on SQL or pgx directly.
type UserRepository interface {
	// Insert appends a new credential record. It performs no uniqueness
	// check on email: a second signup with the same address stores a
	// second row, and lookup behavior for that case is defined on
	// FindByEmail.
	Insert(ctx context.Context, name, email, passwordHash string) error

	// FindByEmail returns the record matching the given email.
	// Returns (nil, nil) unless exactly one row matches: both zero and
	// multiple matches are surfaced as not-found, so an ambiguous
	// duplicate can never be authenticated against.
	FindByEmail(ctx context.Context, email string) (*UserRow, error)
}
