package repository

import (
	"context"
	"sync"
	"time"

	mfadomain "auth-service/internal/mfa/domain"
	userdomain "auth-service/internal/user/domain"
)

type memoryEntry struct {
	challenge mfadomain.Challenge
	expiresAt time.Time
}

// MemoryStore is an in-memory Repository for tests and single-process runs.
// Expiry is checked on read.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]memoryEntry
	ttl  time.Duration
	nowF func() time.Time
}

// NewMemoryStore returns an empty in-memory challenge store whose entries
// expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]memoryEntry),
		ttl:  ttl,
		nowF: time.Now,
	}
}

// Put stores ch for email, replacing any prior challenge.
func (s *MemoryStore) Put(ctx context.Context, email userdomain.Email, ch mfadomain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[email.Address()] = memoryEntry{challenge: ch, expiresAt: s.nowF().Add(s.ttl)}
	return nil
}

// Get returns the live challenge for email.
func (s *MemoryStore) Get(ctx context.Context, email userdomain.Email) (mfadomain.Challenge, error) {
	s.mu.RLock()
	e, ok := s.m[email.Address()]
	s.mu.RUnlock()
	if !ok {
		return mfadomain.Challenge{}, ErrChallengeNotFound
	}
	if !e.expiresAt.After(s.nowF()) {
		s.mu.Lock()
		delete(s.m, email.Address())
		s.mu.Unlock()
		return mfadomain.Challenge{}, ErrChallengeNotFound
	}
	return e.challenge, nil
}

// Remove deletes the challenge for email, if any.
func (s *MemoryStore) Remove(ctx context.Context, email userdomain.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, email.Address())
	return nil
}
