package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage: closed")

// Storage is a flat key-value store holding JSON documents. Writes replace
// the whole value; the last write wins.
type Storage interface {
	// Get returns the value for key. ok is false when the key has never been
	// set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error

	Ping(ctx context.Context) error
	// Driver names the backend, e.g. "memory" or "redis".
	Driver() string
	// Close releases any resources (no-op for in-memory).
	Close() error
}

// Locker is implemented by backends that can coordinate a job across
// replicas. TryLock returns ok=false when another holder has the lock; the
// returned unlock func must be called once the job is done.
type Locker interface {
	TryLock(ctx context.Context, key int64) (unlock func(context.Context) error, ok bool, err error)
}

func noopUnlock(context.Context) error { return nil }

// Unwrap returns the backend underneath any wrappers.
func Unwrap(st Storage) Storage {
	for {
		w, ok := st.(interface{ Unwrap() Storage })
		if !ok {
			return st
		}
		st = w.Unwrap()
	}
}
