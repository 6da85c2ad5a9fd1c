package cron

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bher20/evtariff/internal/household"
	"github.com/bher20/evtariff/internal/metrics"
	"github.com/bher20/evtariff/internal/notification"
	"github.com/bher20/evtariff/internal/storage"
	"github.com/bher20/evtariff/internal/tariff"
)

type recorder struct {
	events []notification.CheapestChanged
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Send(_ context.Context, e notification.CheapestChanged) error {
	r.events = append(r.events, e)
	return nil
}

func newReporter(t *testing.T) (*Reporter, *household.Service, *storage.MemoryStorage, *recorder) {
	t.Helper()
	st := storage.NewMemory()
	t.Cleanup(func() { st.Close() })
	svc := household.NewService(st, tariff.DefaultVehicle(), nil)
	rec := &recorder{}
	return NewReporter(svc, st, notification.NewNotifier(nil, rec), nil), svc, st, rec
}

func TestRunOnce_NotifiesOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	r, svc, st, rec := newReporter(t)

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if len(rec.events) != 1 || rec.events[0].Current.ID != "5" || rec.events[0].Previous != nil {
		t.Fatalf("expected first-run notification for tariff 5, got %+v", rec.events)
	}
	if v, _, _ := st.Get(ctx, KeyCheapest); v != "5" {
		t.Fatalf("cheapest id not stored, got %q", v)
	}

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("second RunOnce failed: %v", err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("unchanged ranking must not notify, got %d events", len(rec.events))
	}

	list := tariff.DefaultTariffs()
	list[0].UnitRate = 5
	if err := svc.ReplaceTariffs(ctx, list); err != nil {
		t.Fatal(err)
	}
	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("third RunOnce failed: %v", err)
	}
	if len(rec.events) != 2 {
		t.Fatalf("expected a second notification, got %d", len(rec.events))
	}
	got := rec.events[1]
	if got.Current.ID != "1" || got.Previous == nil || got.Previous.ID != "5" {
		t.Fatalf("unexpected change event: current=%s previous=%+v", got.Current.ID, got.Previous)
	}
}

func TestRunOnce_PublishesCosts(t *testing.T) {
	r, _, _, _ := newReporter(t)
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	v := testutil.ToFloat64(metrics.TariffAnnualCostPounds.WithLabelValues("5", "So Chestnut One Year"))
	if v < 1107 || v > 1108 {
		t.Fatalf("unexpected gauge value %v", v)
	}
}

func TestRunOnce_EmptyTariffList(t *testing.T) {
	ctx := context.Background()
	r, svc, _, rec := newReporter(t)
	if err := svc.ReplaceTariffs(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("no tariffs means nothing to notify, got %d", len(rec.events))
	}
}

func TestNormalizeSchedule(t *testing.T) {
	tests := map[string]string{
		"":            "@every 1h",
		"300":         "@every 300s",
		"@every 15m":  "@every 15m",
		" 0 * * * * ": "0 * * * *",
	}
	for in, want := range tests {
		if got := NormalizeSchedule(in); got != want {
			t.Errorf("NormalizeSchedule(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRun_InvalidSchedule(t *testing.T) {
	r, _, _, _ := newReporter(t)
	err := r.Run(context.Background(), "every tuesday")
	if err == nil || !strings.Contains(err.Error(), "invalid report schedule") {
		t.Fatalf("expected schedule error, got %v", err)
	}
}

// lockingStore is a memory store whose lock outcome is fixed by the test.
type lockingStore struct {
	*storage.MemoryStorage
	grant   bool
	keys    []int64
	unlocks int
}

func (l *lockingStore) TryLock(_ context.Context, key int64) (func(context.Context) error, bool, error) {
	l.keys = append(l.keys, key)
	if !l.grant {
		return nil, false, nil
	}
	return func(context.Context) error {
		l.unlocks++
		return nil
	}, true, nil
}

func newLockingReporter(t *testing.T, grant bool) (*Reporter, *lockingStore, *recorder) {
	t.Helper()
	st := &lockingStore{MemoryStorage: storage.NewMemory(), grant: grant}
	t.Cleanup(func() { st.Close() })
	svc := household.NewService(st, tariff.DefaultVehicle(), nil)
	rec := &recorder{}
	return NewReporter(svc, st, notification.NewNotifier(nil, rec), nil), st, rec
}

func TestRunOnce_SkipsWhenLockHeldElsewhere(t *testing.T) {
	ctx := context.Background()
	r, st, rec := newLockingReporter(t, false)

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if len(st.keys) != 1 {
		t.Fatalf("expected one lock attempt, got %d", len(st.keys))
	}
	if len(rec.events) != 0 {
		t.Fatalf("worker without the lock must not notify, got %d events", len(rec.events))
	}
	if _, ok, _ := st.Get(ctx, KeyCheapest); ok {
		t.Fatal("worker without the lock must not record the cheapest tariff")
	}
}

func TestRunOnce_ReleasesLockOnce(t *testing.T) {
	ctx := context.Background()
	r, st, rec := newLockingReporter(t, true)

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if st.unlocks != 1 {
		t.Fatalf("expected unlock to be called once, got %d", st.unlocks)
	}
	if len(rec.events) != 1 {
		t.Fatalf("lock holder should notify, got %d events", len(rec.events))
	}
	if v, _, _ := st.Get(ctx, KeyCheapest); v != "5" {
		t.Fatalf("cheapest id not stored, got %q", v)
	}

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("second RunOnce failed: %v", err)
	}
	if st.unlocks != 2 {
		t.Fatalf("unchanged run should still release the lock, got %d unlocks", st.unlocks)
	}
}

func TestJobLockKey(t *testing.T) {
	r, st, _ := newLockingReporter(t, true)
	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(st.keys) != 1 || st.keys[0] != jobLockKey(JobName) {
		t.Fatalf("unexpected lock key %v", st.keys)
	}
	if jobLockKey(JobName) == 42 || jobLockKey(JobName) == jobLockKey("other_job") {
		t.Fatalf("lock key %d is not scoped to the job", jobLockKey(JobName))
	}
}
