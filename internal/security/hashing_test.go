package security

import (
	"context"
	"strings"
	"testing"

	"auth-service/internal/user/domain"
)

func mustPassword(t *testing.T, s string) domain.Password {
	t.Helper()
	p, err := domain.ParsePassword(s)
	if err != nil {
		t.Fatalf("ParsePassword(%q): %v", s, err)
	}
	return p
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(1)
	ctx := context.Background()
	password := mustPassword(t, "secret123")

	hash, err := h.Hash(ctx, password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(string(hash), "$argon2id$") {
		t.Fatalf("hash = %q, want PHC argon2id format", hash)
	}

	ok, err := h.Verify(ctx, hash, password)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify with the same password should succeed")
	}
}

func TestHasher_VerifyWrongPassword(t *testing.T) {
	h := NewHasher(1)
	ctx := context.Background()

	hash, err := h.Hash(ctx, mustPassword(t, "secret123"))
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	ok, err := h.Verify(ctx, hash, mustPassword(t, "wrongpass"))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Fatal("Verify with a different password should fail")
	}
}

func TestHasher_SaltUniqueness(t *testing.T) {
	h := NewHasher(1)
	ctx := context.Background()
	password := mustPassword(t, "secret123")

	h1, err := h.Hash(ctx, password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := h.Hash(ctx, password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password should never be identical")
	}
}

func TestHasher_MalformedHashIsError(t *testing.T) {
	h := NewHasher(1)
	ctx := context.Background()

	for _, bad := range []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=15360,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=15360,t=2,p=1$!!!$aGFzaA",
	} {
		if _, err := h.Verify(ctx, domain.PasswordHash(bad), mustPassword(t, "secret123")); err == nil {
			t.Errorf("Verify(%q) should return an error, not a mismatch", bad)
		}
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	h := NewHasher(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, mustPassword(t, "secret123")); err == nil {
		t.Fatal("Hash with cancelled context should fail")
	}
}
