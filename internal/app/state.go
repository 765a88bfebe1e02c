// Package app assembles the service's stores and crypto subsystems from
// configuration.
package app

import (
	"github.com/rs/zerolog"

	"auth-service/internal/auth/service"
	bannedrepo "auth-service/internal/bannedtoken/repository"
	"auth-service/internal/config"
	"auth-service/internal/db"
	"auth-service/internal/email"
	mfarepo "auth-service/internal/mfa/repository"
	"auth-service/internal/redis"
	"auth-service/internal/security"
	userrepo "auth-service/internal/user/repository"
)

// State holds the assembled dependency graph. Postgres backs the user store
// when DATABASE_URL is set and Redis backs the token and challenge stores when
// REDIS_ADDR is set; otherwise the in-memory stores are used.
type State struct {
	Service *service.Service

	closers []func() error
}

// New builds the State from cfg.
func New(cfg *config.Config, log zerolog.Logger) (*State, error) {
	st := &State{}

	hasher := security.NewHasher(cfg.HashWorkerCount())
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.TokenTTL())

	var users service.UserStore
	if cfg.DatabaseURL != "" {
		pg, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pg.Close)
		users = userrepo.NewPostgresStore(pg, hasher)
	} else {
		log.Warn().Msg("DATABASE_URL not set; using in-memory user store")
		users = userrepo.NewMemoryStore(hasher)
	}

	var revocations security.RevocationStore
	var challenges service.ChallengeStore
	if cfg.RedisAddr != "" {
		client, err := redis.Open(cfg.RedisAddr)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.closers = append(st.closers, client.Close)
		revocations = bannedrepo.NewRedisStore(client)
		challenges = mfarepo.NewRedisStore(client, cfg.ChallengeTTL())
	} else {
		log.Warn().Msg("REDIS_ADDR not set; using in-memory token and challenge stores")
		revocations = bannedrepo.NewMemoryStore()
		challenges = mfarepo.NewMemoryStore(cfg.ChallengeTTL())
	}

	mail := email.NewHTTPClient(cfg.EmailAPIKey, cfg.EmailBaseURL, cfg.EmailSender)

	st.Service = service.New(users, challenges, revocations, mail, hasher, tokens, log)
	return st, nil
}

// Close releases the State's connections in reverse acquisition order.
func (s *State) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
