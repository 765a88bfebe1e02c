package email

import (
	"context"
	"sync"

	"auth-service/internal/user/domain"
)

// SentMessage records one Send call on the MockClient.
type SentMessage struct {
	Recipient domain.Email
	Subject   string
	Content   string
}

// MockClient is a Client that records messages instead of sending them.
// Safe for concurrent use.
type MockClient struct {
	mu   sync.Mutex
	sent []SentMessage
	// Err, when set, is returned by every Send.
	Err error
}

// NewMockClient returns an empty recording client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Send records the message, or returns Err when set.
func (c *MockClient) Send(ctx context.Context, recipient domain.Email, subject, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.sent = append(c.sent, SentMessage{Recipient: recipient, Subject: subject, Content: content})
	return nil
}

// Sent returns a copy of the recorded messages.
func (c *MockClient) Sent() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}
