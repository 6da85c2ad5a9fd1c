package household

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/metrics"
	"github.com/bher20/evtariff/internal/storage"
	"github.com/bher20/evtariff/internal/tariff"
)

// Keys under which the three records are stored.
const (
	KeyTariffs     = "tariffs"
	KeyUsage       = "usageAssumptions"
	KeyPreferences = "preferences"
)

// ErrNotFound is returned when a tariff id does not exist.
var ErrNotFound = errors.New("not found")

// Service reads and writes the household records, creating defaults on
// first read.
type Service struct {
	store   storage.Storage
	vehicle tariff.Vehicle
	log     *zap.Logger
}

func NewService(st storage.Storage, vehicle tariff.Vehicle, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, vehicle: vehicle, log: log}
}

// Vehicle returns the vehicle used for charging estimates.
func (s *Service) Vehicle() tariff.Vehicle { return s.vehicle }

// load decodes key into out. When the key is absent, def is stored and
// copied into out.
func load[T any](ctx context.Context, s *Service, key string, out *T, def T) error {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if ok && raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	s.log.Info("initializing record with defaults", zap.String("key", key))
	if err := save(ctx, s, key, def); err != nil {
		return err
	}
	*out = def
	return nil
}

func save[T any](ctx context.Context, s *Service, key string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Service) Tariffs(ctx context.Context) ([]tariff.Tariff, error) {
	var list []tariff.Tariff
	if err := load(ctx, s, KeyTariffs, &list, tariff.DefaultTariffs()); err != nil {
		return nil, err
	}
	if list == nil {
		list = []tariff.Tariff{}
	}
	return list, nil
}

func (s *Service) Usage(ctx context.Context) (tariff.UsageAssumptions, error) {
	var u tariff.UsageAssumptions
	err := load(ctx, s, KeyUsage, &u, tariff.DefaultUsageAssumptions())
	return u, err
}

func (s *Service) Preferences(ctx context.Context) (tariff.Preferences, error) {
	var p tariff.Preferences
	err := load(ctx, s, KeyPreferences, &p, tariff.DefaultPreferences())
	return p, err
}

// ReplaceTariffs validates and stores the whole list. Tariffs without an id
// are given one; duplicate ids are rejected.
func (s *Service) ReplaceTariffs(ctx context.Context, list []tariff.Tariff) error {
	for i := range list {
		if err := tariff.ValidateTariff(list[i]); err != nil {
			return fmt.Errorf("tariff %d: %w", i, err)
		}
	}

	out := make([]tariff.Tariff, len(list))
	copy(out, list)
	seen := make(map[string]bool, len(out))
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if seen[out[i].ID] {
			return fmt.Errorf("%w: duplicate tariff id %q", tariff.ErrInvalidInput, out[i].ID)
		}
		seen[out[i].ID] = true
	}
	return save(ctx, s, KeyTariffs, out)
}

func (s *Service) ReplaceUsage(ctx context.Context, u tariff.UsageAssumptions) error {
	if err := tariff.ValidateUsage(u); err != nil {
		return err
	}
	return save(ctx, s, KeyUsage, u)
}

func (s *Service) ReplacePreferences(ctx context.Context, p tariff.Preferences) error {
	return save(ctx, s, KeyPreferences, p)
}

// AddTariff appends t under a freshly generated id and returns the stored
// tariff.
func (s *Service) AddTariff(ctx context.Context, t tariff.Tariff) (tariff.Tariff, error) {
	if err := tariff.ValidateTariff(t); err != nil {
		return tariff.Tariff{}, err
	}
	list, err := s.Tariffs(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}
	t.ID = uuid.NewString()
	list = append(list, t)
	if err := save(ctx, s, KeyTariffs, list); err != nil {
		return tariff.Tariff{}, err
	}
	return t, nil
}

// UpdateTariff replaces the tariff with the given id. The id itself never
// changes.
func (s *Service) UpdateTariff(ctx context.Context, id string, t tariff.Tariff) (tariff.Tariff, error) {
	if err := tariff.ValidateTariff(t); err != nil {
		return tariff.Tariff{}, err
	}
	list, err := s.Tariffs(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return tariff.Tariff{}, fmt.Errorf("tariff %q: %w", id, ErrNotFound)
	}
	t.ID = id
	list[idx] = t
	if err := save(ctx, s, KeyTariffs, list); err != nil {
		return tariff.Tariff{}, err
	}
	return t, nil
}

// DeleteTariff removes a tariff. If it was the tariff selected for viewing,
// the selection moves to the first remaining tariff.
func (s *Service) DeleteTariff(ctx context.Context, id string) error {
	list, err := s.Tariffs(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("tariff %q: %w", id, ErrNotFound)
	}
	list = append(list[:idx], list[idx+1:]...)
	if err := save(ctx, s, KeyTariffs, list); err != nil {
		return err
	}

	prefs, err := s.Preferences(ctx)
	if err != nil {
		return err
	}
	if prefs.SelectedTariffForView != id {
		return nil
	}
	prefs.SelectedTariffForView = ""
	if len(list) > 0 {
		prefs.SelectedTariffForView = list[0].ID
	}
	return save(ctx, s, KeyPreferences, prefs)
}

// Comparison returns every tariff with its annual cost, cheapest first.
func (s *Service) Comparison(ctx context.Context) ([]tariff.TariffWithCost, error) {
	list, err := s.Tariffs(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.Usage(ctx)
	if err != nil {
		return nil, err
	}
	withCosts, err := tariff.WithCosts(list, u)
	if err != nil {
		metrics.CalculationErrorsTotal.WithLabelValues("annual_cost").Inc()
		return nil, err
	}
	return tariff.Rank(withCosts), nil
}

// Estimates returns charging estimates for the tariff with the given id. An
// empty id uses the tariff selected in preferences, or the first tariff if
// that selection no longer exists.
func (s *Service) Estimates(ctx context.Context, id string) (tariff.ChargingEstimates, error) {
	list, err := s.Tariffs(ctx)
	if err != nil {
		return tariff.ChargingEstimates{}, err
	}
	if len(list) == 0 {
		return tariff.ChargingEstimates{}, fmt.Errorf("no tariffs: %w", ErrNotFound)
	}

	var t tariff.Tariff
	if id != "" {
		idx := indexOf(list, id)
		if idx < 0 {
			return tariff.ChargingEstimates{}, fmt.Errorf("tariff %q: %w", id, ErrNotFound)
		}
		t = list[idx]
	} else {
		t, err = s.selected(ctx, list)
		if err != nil {
			return tariff.ChargingEstimates{}, err
		}
	}

	u, err := s.Usage(ctx)
	if err != nil {
		return tariff.ChargingEstimates{}, err
	}
	est, err := tariff.Estimates(t, u, s.vehicle)
	if err != nil {
		metrics.CalculationErrorsTotal.WithLabelValues("charging").Inc()
	}
	return est, err
}

// selected resolves the preferred tariff, repairing a stale selection.
func (s *Service) selected(ctx context.Context, list []tariff.Tariff) (tariff.Tariff, error) {
	prefs, err := s.Preferences(ctx)
	if err != nil {
		return tariff.Tariff{}, err
	}
	if idx := indexOf(list, prefs.SelectedTariffForView); idx >= 0 {
		return list[idx], nil
	}
	prefs.SelectedTariffForView = list[0].ID
	if err := save(ctx, s, KeyPreferences, prefs); err != nil {
		s.log.Warn("could not persist repaired tariff selection", zap.Error(err))
	}
	return list[0], nil
}

func indexOf(list []tariff.Tariff, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}
