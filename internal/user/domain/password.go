package domain

import "errors"

// MinPasswordLength is the minimum accepted password length in bytes.
const MinPasswordLength = 8

// ErrInvalidPassword is returned by ParsePassword for too-short candidates.
var ErrInvalidPassword = errors.New("password must be at least 8 characters")

// Password wraps a plaintext password. It is never persisted; the user record
// stores a PasswordHash instead. String and GoString redact the secret, and
// there is deliberately no Equal method: comparison goes through the hashing
// subsystem only.
type Password struct {
	secret string
}

// ParsePassword validates s as a password (length >= MinPasswordLength).
func ParsePassword(s string) (Password, error) {
	if len(s) < MinPasswordLength {
		return Password{}, ErrInvalidPassword
	}
	return Password{secret: s}, nil
}

// Expose returns the plaintext for hashing and verification. Callers must not
// log or persist the returned value.
func (p Password) Expose() string {
	return p.secret
}

// String redacts the secret so passwords do not leak through logs or error text.
func (p Password) String() string {
	return "[redacted password]"
}

// GoString redacts the secret in %#v output as well.
func (p Password) GoString() string {
	return "domain.Password{}"
}
