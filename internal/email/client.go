// Package email delivers out-of-band messages (2FA codes) to users.
package email

import (
	"context"

	"auth-service/internal/user/domain"
)

// Client sends a message to recipient. The auth service awaits completion;
// a send failure aborts the login attempt that triggered it.
type Client interface {
	Send(ctx context.Context, recipient domain.Email, subject, content string) error
}
