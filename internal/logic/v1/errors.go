// Package v1 provides the authentication business logic.
//
// Error Handling:
// This package defines sentinel errors for the common authentication
// failures plus a ValidationError type that carries the offending field.
// Business logic methods wrap them with context using fmt.Errorf("%w");
// handlers recover them with errors.Is / errors.As and turn them into a
// user-visible message or redirect. Only storage faults are allowed to
// reach the generic 500 path.
package v1

import (
	"errors"
	"fmt"
)

// Sentinel errors for authentication operations.
var (
	// ErrUserNotFound indicates no credential record matched the email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the password did not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionNotFound indicates the session identifier matched no
	// live session (absent, expired, or invalidated).
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageUnavailable indicates the backing store failed. This is
	// an infrastructure fault, not a negative authentication result.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationKind distinguishes the two ways input can be rejected.
type ValidationKind int

const (
	// EmptyField: a required field was absent or the empty string.
	// Checked before any schema rule; the first empty field wins.
	EmptyField ValidationKind = iota

	// SchemaViolation: the field was present but failed its schema rule.
	SchemaViolation
)

// ValidationError reports which field failed and how.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyField:
		return fmt.Sprintf("required field %q is empty", e.Field)
	default:
		return fmt.Sprintf("field %q failed validation", e.Field)
	}
}

// wrapStorage marks a repository failure as infrastructure-level while
// keeping the underlying error in the chain.
func wrapStorage(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStorageUnavailable, err))
}
