// Package repository persists revoked session tokens until their natural expiry.
package repository

import (
	"context"
	"time"
)

// Repository is the revoked-token registry. A stored token must be reported
// revoked regardless of its cryptographic validity. Entries carry a TTL equal
// to the token's remaining lifetime, so the registry is self-pruning.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Revoke marks token unusable for ttl.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	// IsRevoked reports whether token has been revoked and not yet expired.
	IsRevoked(ctx context.Context, token string) (bool, error)
}
