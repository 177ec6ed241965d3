package v1

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashing. Chosen once at
// process start; deliberately expensive so brute-forcing stored hashes is
// slow.
const BcryptCost = 12

// Hasher is a one-way salted password hasher with verification.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}

// BcryptHasher implements Hasher with bcrypt. It holds no mutable state and
// is safe for concurrent use.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher at the fixed cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: BcryptCost}
}

// Hash produces a salted bcrypt hash of the plaintext. It does not fail for
// well-formed input; an error here means something is wrong with the process
// itself.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. Any mismatch,
// including a malformed stored hash, is false — verification failure is a
// normal outcome, never an error.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
