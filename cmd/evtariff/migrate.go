package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/migrate"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the SQL schema migrations",
	}

	// withRunner opens a migration runner for the configured storage driver.
	withRunner := func(fn func(cmd *cobra.Command, r *migrate.Runner, log *zap.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()
			if !sqlDriver(cfg.Storage.Driver) {
				return fmt.Errorf("storage driver %q has no SQL schema", cfg.Storage.Driver)
			}
			r, err := migrate.Open(cfg.Storage.Driver, cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer r.Close()
			return fn(cmd, r, log)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(cmd *cobra.Command, r *migrate.Runner, log *zap.Logger) error {
			applied, err := r.Up(cmd.Context())
			log.Info("migrations applied", zap.Int64s("versions", applied))
			return err
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(cmd *cobra.Command, r *migrate.Runner, log *zap.Logger) error {
			v, err := r.Down(cmd.Context())
			if err != nil {
				return err
			}
			log.Info("migration rolled back", zap.Int64("version", v))
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: withRunner(func(cmd *cobra.Command, r *migrate.Runner, _ *zap.Logger) error {
			rows, err := r.Status(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
			for _, s := range rows {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
			}
			return tw.Flush()
		}),
	})
	return cmd
}
