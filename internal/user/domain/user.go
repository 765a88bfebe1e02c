// Package domain holds the user entity and its credential value types.
package domain

import "errors"

// PasswordHash is the self-describing PHC-encoded hash stored in place of a
// password. Opaque to everything but the hashing subsystem.
type PasswordHash string

// User is the core user entity, keyed by email. Immutable after signup.
type User struct {
	Email             Email
	PasswordHash      PasswordHash
	RequiresTwoFactor bool
}

// Validate validates the user for persistence.
func (u *User) Validate() error {
	if u.Email.IsZero() {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
