package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost keeps interactive login latency acceptable while staying
// expensive for offline brute force.
const bcryptCost = 10

var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher hashes and verifies passwords with bcrypt. The per-call random salt
// is embedded in the digest, so two hashes of the same password differ.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the default cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcryptCost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches digest. It reveals nothing about
// why a mismatch happened.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
