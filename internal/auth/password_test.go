package auth

import (
	"errors"
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	digest, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "pw1" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !h.Verify("pw1", digest) {
		t.Fatalf("Verify should match the original password")
	}
	if h.Verify("pw2", digest) {
		t.Fatalf("Verify should reject a wrong password")
	}
}

func TestHasher_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	d1, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	d2, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !h.Verify("same", d1) || !h.Verify("same", d2) {
		t.Fatalf("both digests must verify")
	}
}

func TestHasher_EmptyPassword(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	_, err := h.Hash("")
	if !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}
