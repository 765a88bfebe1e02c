package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const bannedTokenPrefix = "banned_token:"

// RedisStore is a Repository backed by Redis. Entries are written with SET EX,
// so Redis expiry is the only removal path; nothing ever deletes entries early.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a revoked-token store using the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke stores token with the given ttl.
func (s *RedisStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, bannedTokenPrefix+token, "", ttl).Err()
}

// IsRevoked reports whether token is present and not yet expired.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, bannedTokenPrefix+token).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
