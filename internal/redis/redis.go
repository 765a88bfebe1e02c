// Package redis opens the shared Redis client used by the banned-token and 2FA code stores.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Open connects to Redis at addr (host:port) and verifies the connection with a ping.
// Caller must call Close when done.
func Open(addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis: addr must not be empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
