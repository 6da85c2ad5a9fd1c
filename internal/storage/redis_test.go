package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedis_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	s := NewRedis(client, "evtariff:")
	defer s.Close()

	if got := s.key("tariffs"); got != "evtariff:tariffs" {
		t.Fatalf("unexpected key %q", got)
	}
	if s.Driver() != "redis" {
		t.Fatalf("unexpected driver %q", s.Driver())
	}

	bare := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	defer bare.Close()
	if got := bare.key("usageAssumptions"); got != "usageAssumptions" {
		t.Fatalf("empty prefix should keep original key names, got %q", got)
	}
}

func TestOpenRedis_BadURL(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "http://localhost:6379", ""); err == nil {
		t.Fatal("expected error for non-redis URL")
	}
}

func newMiniRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0", "evtariff:")
	if err != nil {
		t.Fatalf("OpenRedis failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniRedis(t)

	if _, ok, err := s.Get(ctx, "tariffs"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "tariffs", `[]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok, err := s.Get(ctx, "tariffs"); err != nil || !ok || v != `[]` {
		t.Fatalf("Get returned %q ok=%v err=%v", v, ok, err)
	}
	if v, _ := mr.Get("evtariff:tariffs"); v != `[]` {
		t.Fatalf("value not stored under prefixed key, got %q", v)
	}
	if mr.TTL("evtariff:tariffs") != 0 {
		t.Fatal("values must not expire")
	}
}

func TestRedis_TryLock(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniRedis(t)

	unlock, ok, err := s.TryLock(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("first TryLock: ok=%v err=%v", ok, err)
	}
	if !mr.Exists("evtariff:lock:7") {
		t.Fatal("lock key not written")
	}
	if ttl := mr.TTL("evtariff:lock:7"); ttl != redisLockTTL {
		t.Fatalf("unexpected lock ttl %v", ttl)
	}

	if _, ok, err := s.TryLock(ctx, 7); err != nil || ok {
		t.Fatalf("second TryLock must fail while held: ok=%v err=%v", ok, err)
	}
	otherUnlock, ok, err := s.TryLock(ctx, 8)
	if err != nil || !ok {
		t.Fatalf("independent key: ok=%v err=%v", ok, err)
	}
	if err := otherUnlock(ctx); err != nil {
		t.Fatal(err)
	}

	if err := unlock(ctx); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if mr.Exists("evtariff:lock:7") {
		t.Fatal("unlock did not delete the lock key")
	}
	again, ok, err := s.TryLock(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("TryLock after unlock: ok=%v err=%v", ok, err)
	}
	if err := again(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestRedis_ExpiredHolderCannotReleaseNewLock(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniRedis(t)

	stale, ok, err := s.TryLock(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	mr.FastForward(redisLockTTL + time.Second)

	current, ok, err := s.TryLock(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("lock should be free after ttl: ok=%v err=%v", ok, err)
	}
	if err := stale(ctx); err != nil {
		t.Fatalf("stale unlock failed: %v", err)
	}
	if !mr.Exists("evtariff:lock:7") {
		t.Fatal("stale holder released the current holder's lock")
	}
	if _, ok, _ := s.TryLock(ctx, 7); ok {
		t.Fatal("lock must still be held by the current holder")
	}
	if err := current(ctx); err != nil {
		t.Fatal(err)
	}
	if mr.Exists("evtariff:lock:7") {
		t.Fatal("current holder could not release its lock")
	}
}
