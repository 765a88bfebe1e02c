package repository

import (
	"context"
	"sync"

	"auth-service/internal/security"
	"auth-service/internal/user/domain"
)

// MemoryStore is an in-memory Repository for tests and single-process runs.
// The lock covers map access only; password verification runs outside it.
type MemoryStore struct {
	mu     sync.RWMutex
	m      map[domain.Email]domain.User
	hasher *security.Hasher
}

// NewMemoryStore returns an empty in-memory user store verifying passwords
// with hasher.
func NewMemoryStore(hasher *security.Hasher) *MemoryStore {
	return &MemoryStore{
		m:      make(map[domain.Email]domain.User),
		hasher: hasher,
	}
}

// Add persists u. Returns ErrUserExists when the email is already registered.
func (s *MemoryStore) Add(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[u.Email]; ok {
		return ErrUserExists
	}
	s.m[u.Email] = *u
	return nil
}

// Get returns the user for email, or ErrUserNotFound.
func (s *MemoryStore) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	s.mu.RLock()
	u, ok := s.m[email]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// Validate verifies password against the stored hash.
func (s *MemoryStore) Validate(ctx context.Context, email domain.Email, password domain.Password) error {
	u, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	ok, err := s.hasher.Verify(ctx, u.PasswordHash, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectCredentials
	}
	return nil
}
