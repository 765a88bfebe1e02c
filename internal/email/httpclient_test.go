package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auth-service/internal/user/domain"
)

func TestHTTPClient_Send(t *testing.T) {
	var got map[string]string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient("test-key", srv.URL, "no-reply@example.com")
	recipient, _ := domain.ParseEmail("a@example.com")

	if err := c.Send(context.Background(), recipient, "2FA Code", "123456"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if got["to"] != "a@example.com" || got["subject"] != "2FA Code" || got["text"] != "123456" {
		t.Errorf("request body = %v", got)
	}
}

func TestHTTPClient_SendNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient("test-key", srv.URL, "no-reply@example.com")
	recipient, _ := domain.ParseEmail("a@example.com")

	if err := c.Send(context.Background(), recipient, "2FA Code", "123456"); err == nil {
		t.Fatal("Send should fail on a non-200 response")
	}
}

func TestHTTPClient_SendWithoutAPIKey(t *testing.T) {
	c := NewHTTPClient("", "http://example.invalid", "no-reply@example.com")
	recipient, _ := domain.ParseEmail("a@example.com")

	if err := c.Send(context.Background(), recipient, "subject", "content"); err == nil {
		t.Fatal("Send without an API key should fail")
	}
}
