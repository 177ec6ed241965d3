package v1

import (
	"context"
	"time"

	"github.com/ndhoang/authgate/internal/core/domain"
)

// --- in-memory test doubles for the repository interfaces ---

type fakeUserRepo struct {
	rows      []domain.UserRow
	insertErr error
	findErr   error
}

func (f *fakeUserRepo) Insert(_ context.Context, name, email, passwordHash string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, domain.UserRow{
		ID:           len(f.rows) + 1,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	return nil
}

// FindByEmail mirrors the production contract: anything but exactly one
// match reads as not-found.
func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var matches []domain.UserRow
	for _, r := range f.rows {
		if r.Email == email {
			matches = append(matches, r)
		}
	}
	if len(matches) != 1 {
		return nil, nil
	}
	return &matches[0], nil
}

type fakeSessionRepo struct {
	rows      map[string]domain.SessionRow
	now       func() time.Time
	createErr error
	getErr    error
	deleteErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		rows: make(map[string]domain.SessionRow),
		now:  time.Now,
	}
}

func (f *fakeSessionRepo) Create(_ context.Context, id, name, email string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[id] = domain.SessionRow{ID: id, Name: name, Email: email, ExpiresAt: expiresAt}
	return nil
}

// Get hides expired rows, like the SQL filter does in production.
func (f *fakeSessionRepo) Get(_ context.Context, id string) (*domain.SessionRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[id]
	if !ok || !row.ExpiresAt.After(f.now()) {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeSessionRepo) Refresh(_ context.Context, id string, expiresAt time.Time) error {
	if row, ok := f.rows[id]; ok {
		row.ExpiresAt = expiresAt
		f.rows[id] = row
	}
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for id, row := range f.rows {
		if !row.ExpiresAt.After(f.now()) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

// fakeHasher keeps logic tests fast; the real bcrypt hasher has its own
// tests.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (fakeHasher) Verify(plaintext, hashed string) bool { return hashed == "hashed:"+plaintext }
