package security

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"auth-service/internal/user/domain"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "jwt"

var (
	// ErrInvalidToken is returned when a token is malformed, unsigned, expired,
	// or signed with the wrong secret.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenRevoked is returned when the token is present in the revocation store.
	ErrTokenRevoked = errors.New("token revoked")
)

// SessionClaims is the signed payload of a session token: subject (email) and expiry.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// RevocationStore is the banned-token registry consulted by Verify and written
// by Revoke. Implementations must be safe for concurrent use.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenProvider issues and verifies HS256-signed session tokens. The signing
// secret is process-wide and loaded once at startup; changing it invalidates
// every previously issued token.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret, issuing tokens
// valid for ttl.
func NewTokenProvider(secret []byte, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, ttl: ttl}
}

// TTL returns the lifetime of newly issued tokens.
func (p *TokenProvider) TTL() time.Duration {
	return p.ttl
}

// Issue signs a session token for email and returns it with its transport
// cookie (HttpOnly, SameSite=Lax, path /).
func (p *TokenProvider) Issue(email domain.Email) (string, *http.Cookie, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email.Address(),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", nil, err
	}
	return token, p.cookie(token, int(p.ttl.Seconds())), nil
}

// ClearCookie returns a cookie that removes the session cookie from the client.
func (p *TokenProvider) ClearCookie() *http.Cookie {
	return p.cookie("", -1)
}

func (p *TokenProvider) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Verify checks token against the revocation store first (fails fast with
// ErrTokenRevoked), then decodes and validates signature and expiry.
func (p *TokenProvider) Verify(ctx context.Context, token string, revoked RevocationStore) (*SessionClaims, error) {
	banned, err := revoked.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, ErrTokenRevoked
	}
	return p.decode(token)
}

// Revoke inserts token into the revocation store with a TTL equal to its
// remaining lifetime. Tokens already past expiry are not stored; revoking one
// is a no-op, not an error.
func (p *TokenProvider) Revoke(ctx context.Context, token string, revoked RevocationStore) error {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{},
		func(t *jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return revoked.Revoke(ctx, token, remaining)
}

func (p *TokenProvider) decode(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{},
		func(t *jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
