package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coolvent/fieldops/internal/domain"
)

func TestSessionStoreSaveAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domain.Session{
		IsAuthenticated: true,
		UserID:          "user-1",
		Username:        "dana@coolvent.example",
		Role:            domain.RoleManager,
	}

	if err := store.Save(ctx, "tok-1", session, time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != session {
		t.Fatalf("expected %+v, got %+v", session, got)
	}
}

func TestSessionStoreGetMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)

	got, err := store.Get(context.Background(), "absent")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if got.IsAuthenticated {
		t.Fatalf("expected anonymous session, got %+v", got)
	}
}

func TestSessionStoreGetCorruptValue(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	if err := client.Set(ctx, store.prefix+"tok-bad", "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	got, err := store.Get(ctx, "tok-bad")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for corrupt value, got %v", err)
	}
	if got.IsAuthenticated {
		t.Fatalf("expected anonymous session, got %+v", got)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleAdmin}
	if err := store.Save(ctx, "tok-1", session, time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domain.Session{IsAuthenticated: true, UserID: "user-1", Role: domain.RoleCSR}
	if err := store.Save(ctx, "tok-1", session, time.Second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}
