// Package domain holds the second-factor challenge value types.
package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidChallengeID is returned by ParseChallengeID for non-UUID input.
	ErrInvalidChallengeID = errors.New("invalid challenge id")
	// ErrInvalidTwoFactorCode is returned by ParseTwoFactorCode for anything
	// but six ASCII digits.
	ErrInvalidTwoFactorCode = errors.New("invalid 2FA code")
)

const codeDigits = 6

// ChallengeID names one pending second-factor attempt. UUID-formatted.
type ChallengeID struct {
	id uuid.UUID
}

// NewChallengeID returns a fresh random ChallengeID.
func NewChallengeID() ChallengeID {
	return ChallengeID{id: uuid.New()}
}

// ParseChallengeID validates s as a UUID.
func ParseChallengeID(s string) (ChallengeID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return ChallengeID{}, ErrInvalidChallengeID
	}
	return ChallengeID{id: id}, nil
}

// String returns the canonical UUID form. ChallengeIDs are not secret; they
// travel back to the client in the login response.
func (c ChallengeID) String() string {
	return c.id.String()
}

// TwoFactorCode is a six-digit numeric secret delivered out-of-band.
type TwoFactorCode struct {
	code string
}

// GenerateTwoFactorCode returns a fresh random code of six independent digits,
// drawn from crypto/rand.
func GenerateTwoFactorCode() (TwoFactorCode, error) {
	b := make([]byte, codeDigits)
	if _, err := rand.Read(b); err != nil {
		return TwoFactorCode{}, err
	}
	s := make([]byte, codeDigits)
	for i := 0; i < codeDigits; i++ {
		s[i] = '0' + (b[i] % 10)
	}
	return TwoFactorCode{code: string(s)}, nil
}

// ParseTwoFactorCode trims whitespace and validates exactly six ASCII digits.
func ParseTwoFactorCode(s string) (TwoFactorCode, error) {
	s = strings.TrimSpace(s)
	if len(s) != codeDigits {
		return TwoFactorCode{}, ErrInvalidTwoFactorCode
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return TwoFactorCode{}, ErrInvalidTwoFactorCode
		}
	}
	return TwoFactorCode{code: s}, nil
}

// Equal compares codes in constant time.
func (c TwoFactorCode) Equal(other TwoFactorCode) bool {
	return subtle.ConstantTimeCompare([]byte(c.code), []byte(other.code)) == 1
}

// Expose returns the digits for delivery and storage. Callers must not log
// the returned value.
func (c TwoFactorCode) Expose() string {
	return c.code
}

// String redacts the code so it does not leak through logs or error text.
func (c TwoFactorCode) String() string {
	return "[redacted 2FA code]"
}

// Challenge is the pending second-factor state for one login attempt.
type Challenge struct {
	ID   ChallengeID
	Code TwoFactorCode
}
