// Package service implements the authentication protocol: signup, login with
// an optional second factor, challenge completion, logout, and token
// verification.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	mfadomain "auth-service/internal/mfa/domain"
	mfarepo "auth-service/internal/mfa/repository"
	"auth-service/internal/security"
	userdomain "auth-service/internal/user/domain"
	userrepo "auth-service/internal/user/repository"
)

// Protocol errors; the handler maps them to HTTP status codes. Store and
// crypto failures never surface raw: they collapse to ErrUnexpected with the
// cause attached for logging only.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrChallengeNotFound    = errors.New("challenge not found")
	ErrMissingToken         = errors.New("missing token")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnexpected           = errors.New("unexpected error")
)

// twoFactorSubject is the subject line for 2FA code delivery.
const twoFactorSubject = "2FA Code"

func unexpected(err error) error {
	return fmt.Errorf("%w: %w", ErrUnexpected, err)
}

// UserStore is the minimal user persistence needed by the auth service.
type UserStore interface {
	Add(ctx context.Context, u *userdomain.User) error
	Get(ctx context.Context, email userdomain.Email) (*userdomain.User, error)
	Validate(ctx context.Context, email userdomain.Email, password userdomain.Password) error
}

// ChallengeStore is the pending-challenge registry needed by the auth service.
type ChallengeStore interface {
	Put(ctx context.Context, email userdomain.Email, ch mfadomain.Challenge) error
	Get(ctx context.Context, email userdomain.Email) (mfadomain.Challenge, error)
	Remove(ctx context.Context, email userdomain.Email) error
}

// EmailClient delivers 2FA codes out-of-band.
type EmailClient interface {
	Send(ctx context.Context, recipient userdomain.Email, subject, content string) error
}

// Service orchestrates the authentication protocol over the injected stores
// and crypto subsystems. Safe for concurrent use.
type Service struct {
	users       UserStore
	challenges  ChallengeStore
	revocations security.RevocationStore
	mail        EmailClient
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	log         zerolog.Logger
}

// New returns a Service with the given dependencies.
func New(
	users UserStore,
	challenges ChallengeStore,
	revocations security.RevocationStore,
	mail EmailClient,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	log zerolog.Logger,
) *Service {
	return &Service{
		users:       users,
		challenges:  challenges,
		revocations: revocations,
		mail:        mail,
		hasher:      hasher,
		tokens:      tokens,
		log:         log,
	}
}

// LoginResult is the outcome of Login or CompleteChallenge. Either a session
// was issued (Token and Cookie set) or a second factor is pending
// (TwoFactorRequired with the ChallengeID to echo back; the code itself never
// leaves the server except by mail).
type LoginResult struct {
	TwoFactorRequired bool
	ChallengeID       string
	Token             string
	Cookie            *http.Cookie
}

// Signup registers a new user. Parse failures map to ErrInvalidCredentials
// and a taken email to ErrUserAlreadyExists.
func (s *Service) Signup(ctx context.Context, email, password string, requiresTwoFactor bool) error {
	addr, err := userdomain.ParseEmail(email)
	if err != nil {
		return ErrInvalidCredentials
	}
	pass, err := userdomain.ParsePassword(password)
	if err != nil {
		return ErrInvalidCredentials
	}

	if _, err := s.users.Get(ctx, addr); err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return s.fail("signup: get user", err)
	}

	hash, err := s.hasher.Hash(ctx, pass)
	if err != nil {
		return s.fail("signup: hash password", err)
	}
	u := &userdomain.User{Email: addr, PasswordHash: hash, RequiresTwoFactor: requiresTwoFactor}
	if err := s.users.Add(ctx, u); err != nil {
		if errors.Is(err, userrepo.ErrUserExists) {
			return ErrUserAlreadyExists
		}
		return s.fail("signup: add user", err)
	}
	return nil
}

// Login checks credentials and either issues a session or opens a 2FA
// challenge, depending on the user's RequiresTwoFactor flag.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	addr, err := userdomain.ParseEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	pass, err := userdomain.ParsePassword(password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.Validate(ctx, addr, pass); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, userrepo.ErrIncorrectCredentials):
			return nil, ErrIncorrectCredentials
		default:
			return nil, s.fail("login: validate", err)
		}
	}

	u, err := s.users.Get(ctx, addr)
	if err != nil {
		return nil, s.fail("login: get user", err)
	}

	if !u.RequiresTwoFactor {
		token, cookie, err := s.tokens.Issue(addr)
		if err != nil {
			return nil, s.fail("login: issue token", err)
		}
		return &LoginResult{Token: token, Cookie: cookie}, nil
	}

	code, err := mfadomain.GenerateTwoFactorCode()
	if err != nil {
		return nil, s.fail("login: generate code", err)
	}
	ch := mfadomain.Challenge{ID: mfadomain.NewChallengeID(), Code: code}
	if err := s.challenges.Put(ctx, addr, ch); err != nil {
		return nil, s.fail("login: store challenge", err)
	}
	// A send failure aborts the attempt but does not roll back the challenge;
	// the entry lapses on its TTL or is overwritten by the next attempt.
	if err := s.mail.Send(ctx, addr, twoFactorSubject, code.Expose()); err != nil {
		return nil, s.fail("login: send code", err)
	}
	return &LoginResult{TwoFactorRequired: true, ChallengeID: ch.ID.String()}, nil
}

// CompleteChallenge finishes a pending 2FA login. The supplied challenge id
// and code must both match the stored pair; the challenge is consumed on
// success and a session is issued.
func (s *Service) CompleteChallenge(ctx context.Context, email, challengeID, code string) (*LoginResult, error) {
	addr, err := userdomain.ParseEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	id, err := mfadomain.ParseChallengeID(challengeID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	supplied, err := mfadomain.ParseTwoFactorCode(code)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	ch, err := s.challenges.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, mfarepo.ErrChallengeNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, s.fail("verify-2fa: get challenge", err)
	}
	if ch.ID.String() != id.String() || !ch.Code.Equal(supplied) {
		return nil, ErrIncorrectCredentials
	}
	if err := s.challenges.Remove(ctx, addr); err != nil {
		return nil, s.fail("verify-2fa: remove challenge", err)
	}

	token, cookie, err := s.tokens.Issue(addr)
	if err != nil {
		return nil, s.fail("verify-2fa: issue token", err)
	}
	return &LoginResult{Token: token, Cookie: cookie}, nil
}

// Logout verifies the presented session token, revokes it for its remaining
// lifetime, and returns the cookie that clears it from the client.
func (s *Service) Logout(ctx context.Context, token string) (*http.Cookie, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if _, err := s.tokens.Verify(ctx, token, s.revocations); err != nil {
		switch {
		case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrTokenRevoked):
			return nil, ErrInvalidToken
		default:
			return nil, s.fail("logout: verify token", err)
		}
	}
	if err := s.tokens.Revoke(ctx, token, s.revocations); err != nil {
		if errors.Is(err, security.ErrInvalidToken) {
			return nil, ErrInvalidToken
		}
		return nil, s.fail("logout: revoke token", err)
	}
	return s.tokens.ClearCookie(), nil
}

// VerifyToken checks a token presented by another service: revocation first,
// then signature and expiry.
func (s *Service) VerifyToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if _, err := s.tokens.Verify(ctx, token, s.revocations); err != nil {
		switch {
		case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrTokenRevoked):
			return ErrInvalidToken
		default:
			return s.fail("verify-token", err)
		}
	}
	return nil
}

// fail logs the diagnostic cause and returns it wrapped in ErrUnexpected.
// Callers above the protocol boundary must not render the cause to users.
func (s *Service) fail(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("unexpected auth failure")
	return unexpected(err)
}
