// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :3000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; when empty the in-memory user store is used.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// RedisAddr is the Redis host:port for the banned-token and 2FA code stores;
	// when empty the in-memory stores are used.
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	// RedisHostName is an alias accepted for compatibility: a bare host that
	// overrides the host part of RedisAddr on the default port.
	RedisHostName string `mapstructure:"REDIS_HOST_NAME"`
	// JWTSecret is the HS256 signing secret for session tokens. Required, never rotated mid-process.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTTL is the session token lifetime (e.g. "10m").
	JWTTTL string `mapstructure:"JWT_TTL"`
	// TwoFATTL is how long a pending 2FA challenge stays valid (e.g. "10m").
	TwoFATTL string `mapstructure:"TWO_FA_TTL"`
	// HashWorkers bounds concurrent Argon2id hashing; 0 means NumCPU.
	HashWorkers int `mapstructure:"HASH_WORKERS"`
	// EmailAPIKey is the API key for the outbound mail provider (2FA code delivery).
	EmailAPIKey string `mapstructure:"EMAIL_API_KEY"`
	// EmailBaseURL is the mail provider endpoint.
	EmailBaseURL string `mapstructure:"EMAIL_BASE_URL"`
	// EmailSender is the From address for outbound mail.
	EmailSender string `mapstructure:"EMAIL_SENDER"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":3000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("REDIS_HOST_NAME", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "10m")
	v.SetDefault("TWO_FA_TTL", "10m")
	v.SetDefault("HASH_WORKERS", 0)
	v.SetDefault("EMAIL_API_KEY", "")
	v.SetDefault("EMAIL_BASE_URL", "")
	v.SetDefault("EMAIL_SENDER", "no-reply@example.com")
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.RedisHostName != "" {
		cfg.RedisAddr = cfg.RedisHostName + ":6379"
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must be set")
	}
	if cfg.HashWorkers < 0 {
		return nil, errors.New("config: HASH_WORKERS must not be negative")
	}

	return &cfg, nil
}

// TokenTTL parses JWTTTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// ChallengeTTL parses TwoFATTL as a time.Duration. Returns 10m if unset or invalid.
func (c *Config) ChallengeTTL() time.Duration {
	d, err := time.ParseDuration(c.TwoFATTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// HashWorkerCount returns the hashing worker pool size, defaulting to NumCPU.
func (c *Config) HashWorkerCount() int {
	if c.HashWorkers > 0 {
		return c.HashWorkers
	}
	return runtime.NumCPU()
}
