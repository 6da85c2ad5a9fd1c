package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	// Same "sqlite" database/sql driver the gorm backend links in.
	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

//go:embed migrations
var embedMigrations embed.FS

// target describes how to reach one storage driver's schema.
type target struct {
	sqlDriver string
	dialect   database.Dialect
	dir       string
}

var targets = map[string]target{
	"sqlite":       {sqlDriver: "sqlite", dialect: database.DialectSQLite3, dir: "migrations/sqlite"},
	"postgres":     {sqlDriver: "pgx", dialect: database.DialectPostgres, dir: "migrations/postgres"},
	"postgrespool": {sqlDriver: "pgx", dialect: database.DialectPostgres, dir: "migrations/postgres"},
}

// Runner applies the embedded kv_store migrations to one database.
type Runner struct {
	db       *sql.DB
	provider *goose.Provider
}

// Open connects to the database behind a storage driver name. An empty dsn
// uses the same defaults as the storage backends.
func Open(driver, dsn string) (*Runner, error) {
	t, ok := targets[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver for migrations: %q", driver)
	}
	if dsn == "" {
		if t.sqlDriver == "pgx" {
			dsn = "postgres://localhost:5432/evtariff?sslmode=disable"
		} else {
			dsn = "evtariff.db"
		}
	}

	sub, err := fs.Sub(embedMigrations, t.dir)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(t.sqlDriver, dsn)
	if err != nil {
		return nil, err
	}
	p, err := goose.NewProvider(t.dialect, db, sub)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return &Runner{db: db, provider: p}, nil
}

func (r *Runner) Close() error { return r.db.Close() }

// Up applies every pending migration and returns the applied versions.
func (r *Runner) Up(ctx context.Context) ([]int64, error) {
	results, err := r.provider.Up(ctx)
	versions := make([]int64, 0, len(results))
	for _, res := range results {
		versions = append(versions, res.Source.Version)
	}
	return versions, err
}

// Down rolls back the most recent migration.
func (r *Runner) Down(ctx context.Context) (int64, error) {
	res, err := r.provider.Down(ctx)
	if err != nil {
		return 0, err
	}
	return res.Source.Version, nil
}

// MigrationStatus is one row of Status.
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

func (r *Runner) Status(ctx context.Context) ([]MigrationStatus, error) {
	rows, err := r.provider.Status(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(rows))
	for _, s := range rows {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Up is a convenience for opening a Runner and applying all migrations.
func Up(ctx context.Context, driver, dsn string) error {
	r, err := Open(driver, dsn)
	if err != nil {
		return err
	}
	defer r.Close()
	_, err = r.Up(ctx)
	return err
}
