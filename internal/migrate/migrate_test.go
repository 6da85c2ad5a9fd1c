package migrate

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRunner_SQLiteUpStatusDown(t *testing.T) {
	ctx := context.Background()
	r, err := Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	applied, err := r.Up(ctx)
	if err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if len(applied) != 1 || applied[0] != 1 {
		t.Fatalf("expected version 1 applied, got %v", applied)
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO kv_store (key, value) VALUES ('tariffs', '[]')`); err != nil {
		t.Fatalf("kv_store not created: %v", err)
	}

	status, err := r.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if len(status) != 1 || !status[0].Applied {
		t.Fatalf("unexpected status %+v", status)
	}

	again, err := r.Up(ctx)
	if err != nil || len(again) != 0 {
		t.Fatalf("second Up should be a no-op, got %v %v", again, err)
	}

	v, err := r.Down(ctx)
	if err != nil || v != 1 {
		t.Fatalf("Down failed: v=%d err=%v", v, err)
	}
	status, _ = r.Status(ctx)
	if status[0].Applied {
		t.Fatalf("migration should be pending after Down")
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	for _, d := range []string{"redis", "memory", ""} {
		if _, err := Open(d, ""); err == nil {
			t.Errorf("expected error for driver %q", d)
		}
	}
}

func TestUp_Convenience(t *testing.T) {
	if err := Up(context.Background(), "sqlite", filepath.Join(t.TempDir(), "x.db")); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
}
