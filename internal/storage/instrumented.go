package storage

import (
	"context"
	"time"

	"github.com/bher20/evtariff/internal/metrics"
)

// Instrumented records prometheus metrics for every call to the wrapped
// Storage.
type Instrumented struct {
	Storage
}

// Instrument wraps st with metrics collection.
func Instrument(st Storage) *Instrumented {
	return &Instrumented{Storage: st}
}

func (s *Instrumented) observe(op string, started time.Time, err error) {
	metrics.ObserveStorageOp(s.Storage.Driver(), op, started, err)
}

func (s *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	started := time.Now()
	v, ok, err := s.Storage.Get(ctx, key)
	s.observe("get", started, err)
	return v, ok, err
}

func (s *Instrumented) Set(ctx context.Context, key, value string) error {
	started := time.Now()
	err := s.Storage.Set(ctx, key, value)
	s.observe("set", started, err)
	return err
}

func (s *Instrumented) Unwrap() Storage { return s.Storage }

// TryLock delegates to the wrapped backend when it supports locking.
func (s *Instrumented) TryLock(ctx context.Context, key int64) (func(context.Context) error, bool, error) {
	l, ok := s.Storage.(Locker)
	if !ok {
		return noopUnlock, true, nil
	}
	return l.TryLock(ctx, key)
}
