package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	mfadomain "auth-service/internal/mfa/domain"
	userdomain "auth-service/internal/user/domain"
)

const twoFACodePrefix = "two_fa_code:"

// challengeRecord is the wire form stored in Redis: challenge id and code.
type challengeRecord struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// RedisStore is a Repository backed by Redis. Put overwrites via plain SET
// with TTL, so a superseding login attempt replaces the prior challenge and
// entries expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a challenge store using the given client, with
// entries expiring after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Put stores ch for email, replacing any prior challenge.
func (s *RedisStore) Put(ctx context.Context, email userdomain.Email, ch mfadomain.Challenge) error {
	raw, err := json.Marshal(challengeRecord{ID: ch.ID.String(), Code: ch.Code.Expose()})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, challengeKey(email), raw, s.ttl).Err()
}

// Get returns the live challenge for email.
func (s *RedisStore) Get(ctx context.Context, email userdomain.Email) (mfadomain.Challenge, error) {
	raw, err := s.client.Get(ctx, challengeKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return mfadomain.Challenge{}, ErrChallengeNotFound
		}
		return mfadomain.Challenge{}, err
	}
	var rec challengeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return mfadomain.Challenge{}, fmt.Errorf("decode challenge record: %w", err)
	}
	id, err := mfadomain.ParseChallengeID(rec.ID)
	if err != nil {
		return mfadomain.Challenge{}, fmt.Errorf("stored challenge id: %w", err)
	}
	code, err := mfadomain.ParseTwoFactorCode(rec.Code)
	if err != nil {
		return mfadomain.Challenge{}, fmt.Errorf("stored challenge code: %w", err)
	}
	return mfadomain.Challenge{ID: id, Code: code}, nil
}

// Remove deletes the challenge for email, if any.
func (s *RedisStore) Remove(ctx context.Context, email userdomain.Email) error {
	return s.client.Del(ctx, challengeKey(email)).Err()
}

func challengeKey(email userdomain.Email) string {
	return twoFACodePrefix + email.Address()
}
