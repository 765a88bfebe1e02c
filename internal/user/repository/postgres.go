package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"auth-service/internal/security"
	"auth-service/internal/user/domain"
)

// PostgresStore is a Repository backed by the users table. Email uniqueness is
// enforced by the primary key; duplicate inserts map to ErrUserExists.
type PostgresStore struct {
	db     *sql.DB
	hasher *security.Hasher
}

// NewPostgresStore returns a user repository that uses the given db for
// persistence and hasher for password verification.
func NewPostgresStore(db *sql.DB, hasher *security.Hasher) *PostgresStore {
	return &PostgresStore{db: db, hasher: hasher}
}

// Add persists u. Returns ErrUserExists when the email is already registered.
func (s *PostgresStore) Add(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`,
		u.Email.Address(), string(u.PasswordHash), u.RequiresTwoFactor,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// Get returns the user for email, or ErrUserNotFound.
func (s *PostgresStore) Get(ctx context.Context, email domain.Email) (*domain.User, error) {
	var (
		addr        string
		hash        string
		requires2FA bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`,
		email.Address(),
	).Scan(&addr, &hash, &requires2FA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	stored, err := domain.ParseEmail(addr)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Email:             stored,
		PasswordHash:      domain.PasswordHash(hash),
		RequiresTwoFactor: requires2FA,
	}, nil
}

// Validate verifies password against the stored hash.
func (s *PostgresStore) Validate(ctx context.Context, email domain.Email, password domain.Password) error {
	u, err := s.Get(ctx, email)
	if err != nil {
		return err
	}
	ok, err := s.hasher.Verify(ctx, u.PasswordHash, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrIncorrectCredentials
	}
	return nil
}
