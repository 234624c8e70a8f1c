package memory

import (
	"context"
	"errors"
	"testing"

	"studymate-service/internal/domain"
)

func TestUserStoreCreateAndLookup(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Username != "alice" {
		t.Fatalf("unexpected user %+v", created)
	}

	found, err := store.ByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" {
		t.Fatalf("unexpected lookup result %+v", found)
	}
}

func TestUserStoreDuplicateUsername(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, "alice", "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "alice", "other"); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserStoreUnknownUsername(t *testing.T) {
	store := NewUserStore()

	_, err := store.ByUsername(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
