package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Config controls how the storage backend is opened.
type Config struct {
	Driver string
	DSN    string
	// KeyPrefix namespaces keys on shared backends (redis only).
	KeyPrefix string
	Logger    *zap.Logger
}

// Open constructs a Storage based on the given configuration. SQL backends
// are migrated before they are returned.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	drv := cfg.Driver
	if drv == "" {
		drv = "memory"
	}
	switch drv {
	case "memory":
		log.Info("storage: using in-memory backend")
		return NewMemory(), nil

	case "sqlite", "postgres":
		log.Info("storage: using gorm backend", zap.String("driver", drv))
		st, err := NewGormStorage(drv, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("storage migrate: %w", err)
		}
		return st, nil

	case "postgrespool":
		log.Info("storage: using pgx pool backend")
		st, err := OpenPostgresPool(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, fmt.Errorf("storage migrate: %w", err)
		}
		return st, nil

	case "redis":
		log.Info("storage: using redis backend", zap.String("prefix", cfg.KeyPrefix))
		return OpenRedis(ctx, cfg.DSN, cfg.KeyPrefix)

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", drv)
	}
}

// OpenOrFallback opens the configured backend and, if that fails, logs the
// error and returns an in-memory store so the application stays usable.
func OpenOrFallback(ctx context.Context, cfg Config) Storage {
	st, err := Open(ctx, cfg)
	if err == nil {
		return st
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Warn("storage: open failed, falling back to in-memory backend",
		zap.String("driver", cfg.Driver), zap.Error(err))
	return NewMemory()
}
