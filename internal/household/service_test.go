package household

import (
	"context"
	"errors"
	"testing"

	"github.com/bher20/evtariff/internal/storage"
	"github.com/bher20/evtariff/internal/tariff"
)

func newService(t *testing.T) (*Service, *storage.MemoryStorage) {
	t.Helper()
	st := storage.NewMemory()
	t.Cleanup(func() { st.Close() })
	return NewService(st, tariff.DefaultVehicle(), nil), st
}

func TestTariffs_InitializesDefaultsOnFirstRead(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	list, err := svc.Tariffs(ctx)
	if err != nil {
		t.Fatalf("Tariffs failed: %v", err)
	}
	if len(list) != len(tariff.DefaultTariffs()) {
		t.Fatalf("expected default tariffs, got %d", len(list))
	}
	if _, ok, _ := st.Get(ctx, KeyTariffs); !ok {
		t.Fatalf("defaults should be persisted on first read")
	}

	u, err := svc.Usage(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if u != tariff.DefaultUsageAssumptions() {
		t.Fatalf("unexpected usage defaults: %+v", u)
	}
	p, err := svc.Preferences(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.ActiveTab != "ev-charging" {
		t.Fatalf("unexpected preference defaults: %+v", p)
	}
}

func TestTariffs_ReadsStoredJSON(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryWithValues(map[string]string{
		KeyTariffs: `[{"id":"x","name":"Octopus Go","unitRate":24.5,"evRate":8.5,"standingCharge":47.9,"tariffType":"Variable","offPeakStart":"00:30","offPeakEnd":"04:30"}]`,
	})
	svc := NewService(st, tariff.DefaultVehicle(), nil)

	list, err := svc.Tariffs(ctx)
	if err != nil {
		t.Fatalf("Tariffs failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "x" || list[0].EVRate == nil || *list[0].EVRate != 8.5 {
		t.Fatalf("unexpected decode: %+v", list)
	}
}

func TestTariffs_CorruptJSONIsReported(t *testing.T) {
	st := storage.NewMemoryWithValues(map[string]string{KeyTariffs: `{not json`})
	svc := NewService(st, tariff.DefaultVehicle(), nil)
	if _, err := svc.Tariffs(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReplaceUsage_Validates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	err := svc.ReplaceUsage(ctx, tariff.UsageAssumptions{HouseholdUsage: 0})
	if !errors.Is(err, tariff.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	want := tariff.UsageAssumptions{HouseholdUsage: 2500, EVUsage: 2000, EVOffPeakPercentage: 80}
	if err := svc.ReplaceUsage(ctx, want); err != nil {
		t.Fatalf("ReplaceUsage failed: %v", err)
	}
	got, err := svc.Usage(ctx)
	if err != nil || got != want {
		t.Fatalf("want %+v got %+v (err %v)", want, got, err)
	}
}

func TestReplaceTariffs_AssignsIDsAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	list := []tariff.Tariff{
		{Name: "Flat A", UnitRate: 20, StandingCharge: 50, TariffType: tariff.Variable},
		{ID: "b", Name: "Flat B", UnitRate: 21, StandingCharge: 40, TariffType: tariff.Fixed, FixedTerm: "24 months"},
	}
	if err := svc.ReplaceTariffs(ctx, list); err != nil {
		t.Fatalf("ReplaceTariffs failed: %v", err)
	}
	got, _ := svc.Tariffs(ctx)
	if len(got) != 2 || got[0].ID == "" || got[1].ID != "b" {
		t.Fatalf("unexpected stored list: %+v", got)
	}

	dup := []tariff.Tariff{
		{ID: "z", Name: "One", UnitRate: 1, TariffType: tariff.Variable},
		{ID: "z", Name: "Two", UnitRate: 1, TariffType: tariff.Variable},
	}
	if err := svc.ReplaceTariffs(ctx, dup); !errors.Is(err, tariff.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}
}

func TestReplaceTariffs_LeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	list := []tariff.Tariff{
		{Name: "Flat A", UnitRate: 20, StandingCharge: 50, TariffType: tariff.Variable},
		{Name: "x", UnitRate: 21, StandingCharge: 40, TariffType: tariff.Variable},
	}
	if err := svc.ReplaceTariffs(ctx, list); !errors.Is(err, tariff.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if list[0].ID != "" {
		t.Fatalf("rejected list was modified: %+v", list[0])
	}
	got, _ := svc.Tariffs(ctx)
	if len(got) != len(tariff.DefaultTariffs()) {
		t.Fatalf("rejected list must not be stored, got %d tariffs", len(got))
	}

	list[1].Name = "Flat B"
	if err := svc.ReplaceTariffs(ctx, list); err != nil {
		t.Fatalf("ReplaceTariffs failed: %v", err)
	}
	if list[0].ID != "" || list[1].ID != "" {
		t.Fatalf("ids must be assigned on the stored copy only: %+v", list)
	}
	got, _ = svc.Tariffs(ctx)
	if len(got) != 2 || got[0].ID == "" || got[1].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("unexpected stored list: %+v", got)
	}
}

func TestAddUpdateDeleteTariff(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	added, err := svc.AddTariff(ctx, tariff.Tariff{
		ID: "ignored", Name: "Intelligent Go", UnitRate: 25, EVRate: tariff.Rate(7.5),
		StandingCharge: 50, TariffType: tariff.Variable,
	})
	if err != nil {
		t.Fatalf("AddTariff failed: %v", err)
	}
	if added.ID == "" || added.ID == "ignored" {
		t.Fatalf("expected a generated id, got %q", added.ID)
	}

	upd := added
	upd.ID = "something-else"
	upd.UnitRate = 26
	got, err := svc.UpdateTariff(ctx, added.ID, upd)
	if err != nil {
		t.Fatalf("UpdateTariff failed: %v", err)
	}
	if got.ID != added.ID || got.UnitRate != 26 {
		t.Fatalf("id must be immutable and rate updated: %+v", got)
	}

	if _, err := svc.UpdateTariff(ctx, "missing", upd); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteTariff(ctx, added.ID); err != nil {
		t.Fatalf("DeleteTariff failed: %v", err)
	}
	list, _ := svc.Tariffs(ctx)
	if len(list) != len(tariff.DefaultTariffs()) {
		t.Fatalf("expected tariff removed, have %d", len(list))
	}
	if err := svc.DeleteTariff(ctx, added.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDeleteTariff_MovesSelection(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if err := svc.ReplacePreferences(ctx, tariff.Preferences{SelectedTariffForView: "1", ActiveTab: "usage"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteTariff(ctx, "1"); err != nil {
		t.Fatalf("DeleteTariff failed: %v", err)
	}
	p, _ := svc.Preferences(ctx)
	if p.SelectedTariffForView != "2" {
		t.Fatalf("expected selection to move to first remaining tariff, got %q", p.SelectedTariffForView)
	}
	if p.ActiveTab != "usage" {
		t.Fatalf("active tab should be preserved, got %q", p.ActiveTab)
	}
}

func TestComparison_Ranked(t *testing.T) {
	svc, _ := newService(t)
	list, err := svc.Comparison(context.Background())
	if err != nil {
		t.Fatalf("Comparison failed: %v", err)
	}
	if len(list) != 5 || list[0].ID != "5" {
		t.Fatalf("unexpected ranking: %+v", list)
	}
}

func TestEstimates_UsesSelectionAndRepairsStaleOne(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if err := svc.ReplacePreferences(ctx, tariff.Preferences{SelectedTariffForView: "2"}); err != nil {
		t.Fatal(err)
	}
	est, err := svc.Estimates(ctx, "")
	if err != nil {
		t.Fatalf("Estimates failed: %v", err)
	}
	if est.TariffID != "2" {
		t.Fatalf("expected selected tariff 2, got %q", est.TariffID)
	}

	if err := svc.ReplacePreferences(ctx, tariff.Preferences{SelectedTariffForView: "gone"}); err != nil {
		t.Fatal(err)
	}
	est, err = svc.Estimates(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if est.TariffID != "1" {
		t.Fatalf("expected fallback to first tariff, got %q", est.TariffID)
	}
	p, _ := svc.Preferences(ctx)
	if p.SelectedTariffForView != "1" {
		t.Fatalf("stale selection should be repaired, got %q", p.SelectedTariffForView)
	}

	if _, err := svc.Estimates(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
