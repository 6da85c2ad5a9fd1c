package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_GetMissingKey(t *testing.T) {
	m := NewMemory()
	defer m.Close()

	v, ok, err := m.Get(context.Background(), "tariffs")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got ok=%v v=%q", ok, v)
	}
}

func TestMemory_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryWithValues(map[string]string{"preferences": `{"activeTab":"a"}`})

	if err := m.Set(ctx, "preferences", `{"activeTab":"b"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := m.Get(ctx, "preferences")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if v != `{"activeTab":"b"}` {
		t.Fatalf("last write should win, got %q", v)
	}
}

func TestMemory_ClosedRejectsCalls(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Close()

	if err := m.Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Set, got %v", err)
	}
	if _, _, err := m.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Get, got %v", err)
	}
	if err := m.Ping(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Ping, got %v", err)
	}
}
