package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_RevokeAndIsRevoked(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Revoke(ctx, "token-1", 10*time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, err := store.IsRevoked(ctx, "token-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatal("IsRevoked should report true after Revoke")
	}
}

func TestMemoryStore_IsRevoked_Missing(t *testing.T) {
	store := NewMemoryStore()

	revoked, err := store.IsRevoked(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatal("IsRevoked should report false for an unknown token")
	}
}

func TestMemoryStore_EntryLapses(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Revoke(ctx, "token-1", time.Minute); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	store.nowF = func() time.Time { return time.Now().Add(2 * time.Minute) }

	revoked, err := store.IsRevoked(ctx, "token-1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if revoked {
		t.Fatal("IsRevoked should report false after the entry's TTL lapses")
	}
}
