package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ndhoang/authgate/internal/core/domain"
	"github.com/ndhoang/authgate/middleware"
)

// AuthService implements the authentication business rules: signup, login,
// logout, and session lookup for the protected area. It depends on the
// injected repository interfaces and hasher and MUST NOT access the database
// or SQL directly.
//
// All authentication failures are negative results reported to the caller;
// only storage faults (ErrStorageUnavailable) are infrastructure errors.
type AuthService struct {
	users    domain.UserRepository
	sessions *SessionManager
	hasher   Hasher
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions *SessionManager, hasher Hasher) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
	}
}

// Signup validates the input, persists a new credential record, and
// establishes a session. On validation failure nothing is persisted and the
// returned ValidationError names the failed field.
//
// Insert and session establishment are two independent, non-atomic steps; a
// failure between them leaves a valid credential record with no session,
// which the user recovers from by logging in.
func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.signup", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	if verr := ValidateSignup(req); verr != nil {
		span.SetAttributes(attribute.Bool("signup.success", false))
		span.AddEvent("validation.failed")
		return "", fmt.Errorf("validate signup: %w", verr)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.Insert(ctx, req.Name, req.Email, passwordHash); err != nil {
		span.RecordError(err)
		return "", wrapStorage("insert user", err)
	}

	sessionID, err := s.sessions.Establish(ctx, req.Name, req.Email)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("establish session: %w", err)
	}

	span.SetAttributes(attribute.Bool("signup.success", true))
	span.AddEvent("user.registered")

	return sessionID, nil
}

// Login validates the email, looks up the credential record, verifies the
// password, and establishes a session. A missing record is ErrUserNotFound;
// a failed verification is ErrInvalidCredentials. Either way the caller
// stays anonymous.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("email", req.Email),
	))
	defer span.End()

	if verr := ValidateLogin(req); verr != nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("validation.failed")
		return "", fmt.Errorf("validate login: %w", verr)
	}

	row, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return "", wrapStorage("find user by email", err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate %q: %w", req.Email, ErrUserNotFound)
	}

	if !s.hasher.Verify(req.Password, row.PasswordHash) {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate %q: %w", req.Email, ErrInvalidCredentials)
	}

	sessionID, err := s.sessions.Establish(ctx, row.Name, row.Email)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("establish session: %w", err)
	}

	span.SetAttributes(attribute.Bool("auth.success", true))
	span.AddEvent("user.authenticated")

	return sessionID, nil
}

// Logout invalidates the session unconditionally. Safe to call for an
// identifier that no longer (or never) matched a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	ctx, span := middleware.StartSpan(ctx, "auth.logout", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if err := s.sessions.Invalidate(ctx, sessionID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("invalidate session: %w", err)
	}

	span.AddEvent("session.invalidated")
	return nil
}

// CurrentUser returns the session snapshot for the given identifier, or
// (nil, nil) when the caller is anonymous (no session, expired, or
// invalidated).
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.SessionRow, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.current_user", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	row, err := s.sessions.Read(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read session: %w", err)
	}

	span.SetAttributes(attribute.Bool("session.valid", row != nil))
	return row, nil
}
