// Package security implements the password hashing and session token subsystems.
package security

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"auth-service/internal/user/domain"
)

// Argon2id cost parameters. These land around 100-300ms per hash on commodity
// hardware; verification re-reads parameters from the stored hash, so changing
// them only affects newly created hashes.
const (
	argon2Memory  = 15 * 1024 // KiB
	argon2Time    = 2
	argon2Threads = 1
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// ErrMalformedHash is returned by Verify when the stored hash cannot be parsed.
// A malformed hash is an unexpected error, not a failed verification.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher computes and verifies Argon2id password hashes on a bounded worker
// pool, so CPU-heavy hashing cannot starve the goroutines serving I/O.
// Callers block until their hash completes; other requests proceed unimpeded.
type Hasher struct {
	workers *semaphore.Weighted
}

// NewHasher returns a Hasher running at most workers concurrent hashes.
// workers <= 0 means NumCPU.
func NewHasher(workers int) *Hasher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Hasher{workers: semaphore.NewWeighted(int64(workers))}
}

// Hash derives an Argon2id hash of password with a fresh random salt and
// returns it in PHC string format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
func (h *Hasher) Hash(ctx context.Context, password domain.Password) (domain.PasswordHash, error) {
	out, err := h.run(ctx, func() (string, error) {
		salt := make([]byte, argon2SaltLen)
		if _, err := rand.Read(salt); err != nil {
			return "", err
		}
		key := argon2.IDKey([]byte(password.Expose()), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
		encoded := fmt.Sprintf(
			"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version,
			argon2Memory,
			argon2Time,
			argon2Threads,
			base64.RawStdEncoding.EncodeToString(salt),
			base64.RawStdEncoding.EncodeToString(key),
		)
		return encoded, nil
	})
	return domain.PasswordHash(out), err
}

// Verify recomputes the hash of candidate using the parameters embedded in the
// stored hash and compares in constant time. Returns (false, nil) on mismatch
// and an error only for malformed hashes or cancellation.
func (h *Hasher) Verify(ctx context.Context, hash domain.PasswordHash, candidate domain.Password) (bool, error) {
	salt, key, time, memory, threads, err := decodeHash(string(hash))
	if err != nil {
		return false, err
	}
	out, err := h.run(ctx, func() (string, error) {
		computed := argon2.IDKey([]byte(candidate.Expose()), salt, time, memory, threads, uint32(len(key)))
		if subtle.ConstantTimeCompare(computed, key) == 1 {
			return "ok", nil
		}
		return "", nil
	})
	if err != nil {
		return false, err
	}
	return out == "ok", nil
}

type hashResult struct {
	out string
	err error
}

// run executes fn on the worker pool and waits for the result or ctx.
func (h *Hasher) run(ctx context.Context, fn func() (string, error)) (string, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return "", err
	}
	ch := make(chan hashResult, 1)
	go func() {
		defer h.workers.Release(1)
		out, err := fn()
		ch <- hashResult{out: out, err: err}
	}()
	select {
	case r := <-ch:
		return r.out, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func decodeHash(encoded string) (salt, key []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	var p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &p); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if p == 0 || p > 255 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	threads = uint8(p)
	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	return salt, key, time, memory, threads, nil
}
