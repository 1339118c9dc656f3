package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestSessionCreateAndRevoke(t *testing.T) {
	svc := NewSessionService(newTestRedis(t))
	ctx := context.Background()

	if err := svc.Create(ctx, "sess-1", 42, time.Hour); err != nil {
		t.Fatalf("Create: %v", err)
	}

	active, err := svc.IsActive(ctx, "sess-1")
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if !active {
		t.Error("expected session to be active")
	}

	active, err = svc.IsActive(ctx, "sess-2")
	if err != nil {
		t.Fatalf("IsActive unknown: %v", err)
	}
	if active {
		t.Error("unknown session reported active")
	}

	if err := svc.Revoke(ctx, "sess-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	active, err = svc.IsActive(ctx, "sess-1")
	if err != nil {
		t.Fatalf("IsActive after revoke: %v", err)
	}
	if active {
		t.Error("revoked session reported active")
	}
}

func TestSessionExpiresWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewSessionService(client)
	ctx := context.Background()

	if err := svc.Create(ctx, "sess-ttl", 7, time.Minute); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	active, err := svc.IsActive(ctx, "sess-ttl")
	if err != nil {
		t.Fatalf("IsActive: %v", err)
	}
	if active {
		t.Error("session should have expired with its TTL")
	}
}
