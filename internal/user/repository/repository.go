// Package repository persists user records keyed by email.
package repository

import (
	"context"
	"errors"

	"auth-service/internal/user/domain"
)

// Sentinel errors; the auth service maps them to protocol errors at its boundary.
var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
)

// Repository defines persistence for users. Implementations must be safe for
// concurrent use.
type Repository interface {
	// Add persists u. Returns ErrUserExists when the email is already registered.
	Add(ctx context.Context, u *domain.User) error
	// Get returns the user for email, or ErrUserNotFound.
	Get(ctx context.Context, email domain.Email) (*domain.User, error)
	// Validate checks password against the stored hash through the hashing
	// subsystem. Returns ErrUserNotFound for unknown emails and
	// ErrIncorrectCredentials on mismatch; hashes are never compared directly.
	Validate(ctx context.Context, email domain.Email, password domain.Password) error
}
