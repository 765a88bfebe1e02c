package repository

import (
	"context"
	"errors"
	"testing"

	"auth-service/internal/security"
	"auth-service/internal/user/domain"
)

func newTestStore(t *testing.T) (*MemoryStore, *security.Hasher) {
	t.Helper()
	h := security.NewHasher(1)
	return NewMemoryStore(h), h
}

func addUser(t *testing.T, store *MemoryStore, h *security.Hasher, email, password string, requires2FA bool) *domain.User {
	t.Helper()
	ctx := context.Background()
	e, err := domain.ParseEmail(email)
	if err != nil {
		t.Fatalf("ParseEmail: %v", err)
	}
	p, err := domain.ParsePassword(password)
	if err != nil {
		t.Fatalf("ParsePassword: %v", err)
	}
	hash, err := h.Hash(ctx, p)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	u := &domain.User{Email: e, PasswordHash: hash, RequiresTwoFactor: requires2FA}
	if err := store.Add(ctx, u); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return u
}

func TestMemoryStore_AddAndGet(t *testing.T) {
	store, h := newTestStore(t)
	u := addUser(t, store, h, "a@example.com", "password123", true)

	got, err := store.Get(context.Background(), u.Email)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != u.Email {
		t.Error("stored email should match")
	}
	if !got.RequiresTwoFactor {
		t.Error("RequiresTwoFactor should be preserved")
	}
}

func TestMemoryStore_AddDuplicate(t *testing.T) {
	store, h := newTestStore(t)
	u := addUser(t, store, h, "a@example.com", "password123", false)

	if err := store.Add(context.Background(), u); !errors.Is(err, ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store, _ := newTestStore(t)
	e, _ := domain.ParseEmail("missing@example.com")

	if _, err := store.Get(context.Background(), e); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestMemoryStore_Validate(t *testing.T) {
	store, h := newTestStore(t)
	u := addUser(t, store, h, "a@example.com", "password123", false)
	ctx := context.Background()

	right, _ := domain.ParsePassword("password123")
	if err := store.Validate(ctx, u.Email, right); err != nil {
		t.Fatalf("Validate with the right password: %v", err)
	}

	wrong, _ := domain.ParsePassword("wrongpass1")
	if err := store.Validate(ctx, u.Email, wrong); !errors.Is(err, ErrIncorrectCredentials) {
		t.Fatalf("err = %v, want ErrIncorrectCredentials", err)
	}

	missing, _ := domain.ParseEmail("missing@example.com")
	if err := store.Validate(ctx, missing, right); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
