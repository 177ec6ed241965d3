package domain

import (
	"context"
	"time"
)

// SessionRow is a server-side session record. Name and Email are a
// denormalized snapshot of the user taken when the session was established;
// they are display data, not a reference back to the credential record.
type SessionRow struct {
	ID        string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// SessionRepository defines the data-access contract for session records.
// Implementations live in internal/core/repository (Core layer).
type SessionRepository interface {
	// Create inserts a new session row under the given opaque identifier.
	Create(ctx context.Context, id, name, email string, expiresAt time.Time) error

	// Get looks up the session by identifier.
	// Returns (nil, nil) when the row is absent or already expired.
	Get(ctx context.Context, id string) (*SessionRow, error)

	// Refresh re-persists the session's expiry. Concurrent refreshes for
	// the same identifier race last-write-wins.
	Refresh(ctx context.Context, id string, expiresAt time.Time) error

	// Delete removes the session row. Deleting an absent row is not an
	// error, so invalidation is idempotent.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes rows past their expiry and reports how many
	// were deleted. Hygiene only: Get already hides expired rows.
	DeleteExpired(ctx context.Context) (int64, error)
}
