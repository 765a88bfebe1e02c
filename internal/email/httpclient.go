package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"auth-service/internal/user/domain"
)

const defaultTimeout = 15 * time.Second

// HTTPClient sends mail through a JSON-over-HTTP mail provider API.
type HTTPClient struct {
	APIKey     string
	BaseURL    string
	Sender     string
	HTTPClient *http.Client
}

// NewHTTPClient returns a client that posts to baseURL with the given API key
// and From address.
func NewHTTPClient(apiKey, baseURL, sender string) *HTTPClient {
	return &HTTPClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Sender:     sender,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts the message to the provider. Does not log or echo the content;
// 2FA codes pass through here.
func (c *HTTPClient) Send(ctx context.Context, recipient domain.Email, subject, content string) error {
	if c.APIKey == "" {
		return fmt.Errorf("email: API key not configured")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("email: base URL not configured")
	}
	body := map[string]string{
		"from":    c.Sender,
		"to":      recipient.Address(),
		"subject": subject,
		"text":    content,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("email: request failed status=%d", resp.StatusCode)
	}
	return nil
}
