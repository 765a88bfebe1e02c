package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Repository for tests and single-process runs.
// Entries live for the process lifetime; the TTL is recorded but expiry is
// only checked on read.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]time.Time
	nowF func() time.Time
}

// NewMemoryStore returns an empty in-memory revoked-token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]time.Time),
		nowF: time.Now,
	}
}

// Revoke marks token unusable until ttl from now.
func (s *MemoryStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[token] = s.nowF().Add(ttl)
	return nil
}

// IsRevoked reports whether token is present and its entry has not lapsed.
func (s *MemoryStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiresAt, ok := s.m[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !expiresAt.After(s.nowF()) {
		s.mu.Lock()
		delete(s.m, token)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
