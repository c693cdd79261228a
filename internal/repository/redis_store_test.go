package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	store := NewRedisStore(rdb, "ledger")

	if _, err := store.Get(ctx, "passes:user-1"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := store.Set(ctx, "passes:user-1", []byte(`[]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, err := mr.Get("ledger:passes:user-1")
	if err != nil {
		t.Fatalf("expected prefixed key in redis: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected [], got %q", raw)
	}
	if mr.TTL("ledger:passes:user-1") != 0 {
		t.Fatalf("expected no expiry on ledger keys")
	}

	got, err := store.Get(ctx, "passes:user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestRedisStore_NoPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewRedisStore(rdb, "")
	if err := store.Set(context.Background(), "bookings:user-9", []byte(`[{"classId":"c","passId":"p"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("bookings:user-9") {
		t.Fatalf("expected unprefixed key to exist")
	}
}
