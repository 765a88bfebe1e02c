package domain

import (
	"errors"
	"net/mail"
	"strings"
)

// ErrInvalidEmail is returned by ParseEmail for syntactically invalid addresses.
var ErrInvalidEmail = errors.New("invalid email address")

// Email is a validated email address. The zero value is invalid; construct via
// ParseEmail. Equality is case-sensitive over the parsed string, so Email values
// are usable as map keys.
type Email struct {
	addr string
}

// ParseEmail validates s as an email address. It rejects empty strings,
// addresses without exactly one @, empty local or domain parts, and domains
// without a dot. The returned error never contains the candidate address.
func ParseEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Email{}, ErrInvalidEmail
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return Email{}, ErrInvalidEmail
	}
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Email{}, ErrInvalidEmail
	}
	for _, r := range domain {
		// Hostname labels only; RFC atext would also allow &, ! and friends.
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '.') {
			return Email{}, ErrInvalidEmail
		}
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		// mail.ParseAddress accepts display names ("A <a@b.c>"); only bare addresses are valid here.
		return Email{}, ErrInvalidEmail
	}
	return Email{addr: s}, nil
}

// Address returns the validated address string.
func (e Email) Address() string {
	return e.addr
}

// IsZero reports whether e is the unparsed zero value.
func (e Email) IsZero() bool {
	return e.addr == ""
}

// String redacts the address so emails do not leak through logs or error text.
func (e Email) String() string {
	return "[redacted email]"
}
