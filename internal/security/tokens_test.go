package security

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"auth-service/internal/user/domain"
)

// memRevocations is a minimal in-memory RevocationStore for token tests.
type memRevocations struct {
	mu sync.RWMutex
	m  map[string]bool
}

func newMemRevocations() *memRevocations {
	return &memRevocations{m: make(map[string]bool)}
}

func (s *memRevocations) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = true
	return nil
}

func (s *memRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[token], nil
}

func mustEmail(t *testing.T, s string) domain.Email {
	t.Helper()
	e, err := domain.ParseEmail(s)
	if err != nil {
		t.Fatalf("ParseEmail(%q): %v", s, err)
	}
	return e
}

func TestTokenProvider_IssueAndVerify(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), 10*time.Minute)
	email := mustEmail(t, "test@example.com")

	token, cookie, err := p.Issue(email)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token = %q, want three JWT segments", token)
	}
	if cookie.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, CookieName)
	}
	if cookie.Value != token {
		t.Error("cookie value should carry the token")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Errorf("cookie transport attributes wrong: %+v", cookie)
	}

	claims, err := p.Verify(context.Background(), token, newMemRevocations())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "test@example.com" {
		t.Errorf("subject = %q, want the email", claims.Subject)
	}
	if !claims.ExpiresAt.After(time.Now().Add(9 * time.Minute)) {
		t.Error("expiry should be about TTL from now")
	}
}

func TestTokenProvider_VerifyGarbage(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), 10*time.Minute)
	if _, err := p.Verify(context.Background(), "not.a.token", newMemRevocations()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenProvider([]byte("secret-one"), 10*time.Minute)
	verifier := NewTokenProvider([]byte("secret-two"), 10*time.Minute)

	token, _, err := issuer.Issue(mustEmail(t, "test@example.com"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token, newMemRevocations()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_VerifyExpired(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), -time.Minute)
	token, _, err := p.Issue(mustEmail(t, "test@example.com"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Verify(context.Background(), token, newMemRevocations()); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_RevokeThenVerify(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), 10*time.Minute)
	revoked := newMemRevocations()
	ctx := context.Background()

	token, _, err := p.Issue(mustEmail(t, "test@example.com"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := p.Revoke(ctx, token, revoked); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := p.Verify(ctx, token, revoked); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("err = %v, want ErrTokenRevoked", err)
	}
}

func TestTokenProvider_RevokeExpiredIsNoop(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), -time.Minute)
	revoked := newMemRevocations()

	token, _, err := p.Issue(mustEmail(t, "test@example.com"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := p.Revoke(context.Background(), token, revoked); err != nil {
		t.Fatalf("Revoke of an expired token should be a no-op, got %v", err)
	}
	if len(revoked.m) != 0 {
		t.Error("expired token should not be stored in the revocation registry")
	}
}
