// Package repository persists pending second-factor challenges, at most one per email.
package repository

import (
	"context"
	"errors"

	mfadomain "auth-service/internal/mfa/domain"
	userdomain "auth-service/internal/user/domain"
)

// ErrChallengeNotFound is returned by Get when no live challenge exists for the email.
var ErrChallengeNotFound = errors.New("challenge not found")

// Repository stores pending challenges keyed by email. Put overwrites any
// existing challenge for that email; entries expire after the configured
// window whether or not consumed. Implementations must be safe for
// concurrent use.
type Repository interface {
	Put(ctx context.Context, email userdomain.Email, ch mfadomain.Challenge) error
	// Get returns the live challenge for email, or ErrChallengeNotFound.
	Get(ctx context.Context, email userdomain.Email) (mfadomain.Challenge, error)
	Remove(ctx context.Context, email userdomain.Email) error
}
