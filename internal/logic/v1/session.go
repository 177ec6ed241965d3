package v1

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndhoang/authgate/internal/core/domain"
)

// SessionTTL is the absolute session lifetime, renewed on every write.
// Because Read re-persists the row (the store is written on every request),
// any authenticated request pushes the expiry a full hour out.
const SessionTTL = time.Hour

// SessionManager owns the session lifecycle. The authoritative record lives
// in the backing store; the caller only ever holds the opaque identifier.
type SessionManager struct {
	sessions domain.SessionRepository
	now      func() time.Time
}

// NewSessionManager creates a SessionManager over the given repository.
func NewSessionManager(sessions domain.SessionRepository) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		now:      time.Now,
	}
}

// Establish creates a new session for the given user snapshot and returns
// the opaque session identifier.
func (m *SessionManager) Establish(ctx context.Context, name, email string) (string, error) {
	id := uuid.NewString()
	expiresAt := m.now().Add(SessionTTL)
	if err := m.sessions.Create(ctx, id, name, email, expiresAt); err != nil {
		return "", wrapStorage("create session", err)
	}
	return id, nil
}

// Read returns the session for the given identifier, or (nil, nil) when it
// is absent or expired — indistinguishable from an anonymous visitor. A hit
// re-persists the row with a fresh expiry; that refresh is best-effort and
// never fails the read.
func (m *SessionManager) Read(ctx context.Context, id string) (*domain.SessionRow, error) {
	if id == "" {
		return nil, nil
	}

	row, err := m.sessions.Get(ctx, id)
	if err != nil {
		return nil, wrapStorage("read session", err)
	}
	if row == nil {
		return nil, nil
	}

	expiresAt := m.now().Add(SessionTTL)
	if err := m.sessions.Refresh(ctx, id, expiresAt); err != nil {
		log.Warn().Err(err).Msg("Session refresh failed")
	} else {
		row.ExpiresAt = expiresAt
	}

	return row, nil
}

// Invalidate removes the session record. Idempotent: invalidating an absent
// or already-invalidated session succeeds.
func (m *SessionManager) Invalidate(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.sessions.Delete(ctx, id); err != nil {
		return wrapStorage("delete session", err)
	}
	return nil
}

// ReapExpired deletes expired session rows on the given interval until ctx
// is canceled. Hygiene only: Get already hides expired rows.
func (m *SessionManager) ReapExpired(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.sessions.DeleteExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Session reap failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("Expired sessions reaped")
			}
		}
	}
}
