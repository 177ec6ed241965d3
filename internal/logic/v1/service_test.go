package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhoang/authgate/internal/core/domain"
)

func newTestService() (*AuthService, *fakeUserRepo, *fakeSessionRepo) {
	users := &fakeUserRepo{}
	sessions := newFakeSessionRepo()
	svc := NewAuthService(users, NewSessionManager(sessions), fakeHasher{})
	return svc, users, sessions
}

func TestAuthService_SignupSuccess(t *testing.T) {
	svc, users, _ := newTestService()

	req := domain.SignupRequest{Name: "alice", Email: "alice@example.com", Password: "secret1"}
	sessionID, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	require.Len(t, users.rows, 1)
	assert.Equal(t, "alice", users.rows[0].Name)
	assert.Equal(t, "alice@example.com", users.rows[0].Email)
	assert.NotEqual(t, "secret1", users.rows[0].PasswordHash)

	snapshot, err := svc.CurrentUser(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "alice", snapshot.Name)
}

func TestAuthService_SignupValidationPersistsNothing(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.SignupRequest
		wantKind ValidationKind
	}{
		{
			name:     "empty name",
			req:      domain.SignupRequest{Name: "", Email: "alice@example.com", Password: "secret1"},
			wantKind: EmptyField,
		},
		{
			name:     "empty password",
			req:      domain.SignupRequest{Name: "alice", Email: "alice@example.com", Password: ""},
			wantKind: EmptyField,
		},
		{
			name:     "non-alphanumeric name",
			req:      domain.SignupRequest{Name: "al-ice", Email: "alice@example.com", Password: "secret1"},
			wantKind: SchemaViolation,
		},
		{
			name:     "email without at sign",
			req:      domain.SignupRequest{Name: "alice", Email: "alice.example.com", Password: "secret1"},
			wantKind: SchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, sessions := newTestService()

			_, err := svc.Signup(context.Background(), tt.req)
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantKind, verr.Kind)

			assert.Empty(t, users.rows, "no record may be persisted")
			assert.Empty(t, sessions.rows, "no session may be established")
		})
	}
}

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), domain.SignupRequest{
		Name: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	sessionID, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	snapshot, err := svc.CurrentUser(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, "alice", snapshot.Name)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _, sessions := newTestService()

	_, err := svc.Signup(context.Background(), domain.SignupRequest{
		Name: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	established := len(sessions.rows)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, sessions.rows, established, "no new session on failed login")
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _, sessions := newTestService()

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "nobody@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, sessions.rows)
}

func TestAuthService_LoginDuplicateEmailReadsAsNotFound(t *testing.T) {
	svc, users, _ := newTestService()

	// Two signups with the same email both persist; the record is then
	// ambiguous and lookup reports not-found.
	for range 2 {
		_, err := svc.Signup(context.Background(), domain.SignupRequest{
			Name: "alice", Email: "alice@example.com", Password: "secret1",
		})
		require.NoError(t, err)
	}
	require.Len(t, users.rows, 2)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_LoginMalformedEmail(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "not-an-email", Password: "secret1",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, SchemaViolation, verr.Kind)
	assert.Equal(t, "email", verr.Field)
}

func TestAuthService_LogoutThenAnonymous(t *testing.T) {
	svc, _, _ := newTestService()

	sessionID, err := svc.Signup(context.Background(), domain.SignupRequest{
		Name: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sessionID))

	snapshot, err := svc.CurrentUser(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	// Logging out again, or with no session at all, still succeeds.
	require.NoError(t, svc.Logout(context.Background(), sessionID))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthService_StorageFaults(t *testing.T) {
	t.Run("user insert", func(t *testing.T) {
		svc, users, _ := newTestService()
		users.insertErr = errors.New("connection refused")

		_, err := svc.Signup(context.Background(), domain.SignupRequest{
			Name: "alice", Email: "alice@example.com", Password: "secret1",
		})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("user lookup", func(t *testing.T) {
		svc, users, _ := newTestService()
		users.findErr = errors.New("connection refused")

		_, err := svc.Login(context.Background(), domain.LoginRequest{
			Email: "alice@example.com", Password: "secret1",
		})
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("session read", func(t *testing.T) {
		svc, _, sessions := newTestService()
		sessions.getErr = errors.New("connection refused")

		_, err := svc.CurrentUser(context.Background(), "some-session")
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
