package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/config"
	"github.com/bher20/evtariff/internal/household"
	"github.com/bher20/evtariff/internal/logging"
	"github.com/bher20/evtariff/internal/migrate"
	"github.com/bher20/evtariff/internal/storage"
	"github.com/bher20/evtariff/internal/tariff"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "evtariff",
		Short: "Compare electricity tariffs and estimate EV charging costs",
		Long: `evtariff ranks electricity tariffs by estimated annual cost for a
household with an electric vehicle, and estimates what each charging
scenario costs and how long it takes.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(chargingCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every command needs once config is loaded.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	store storage.Storage
	svc   *household.Service
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.New(), cfgFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// setup loads config and opens storage. When strict is false a failing
// backend falls back to memory.
func setup(ctx context.Context, strict bool) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate && sqlDriver(cfg.Storage.Driver) {
		if err := migrate.Up(ctx, cfg.Storage.Driver, cfg.Storage.DSN); err != nil {
			log.Warn("auto-migration failed", zap.Error(err))
		}
	}

	scfg := storage.Config{
		Driver:    cfg.Storage.Driver,
		DSN:       cfg.Storage.DSN,
		KeyPrefix: cfg.Storage.KeyPrefix,
		Logger:    log,
	}
	var st storage.Storage
	if strict {
		if st, err = storage.Open(ctx, scfg); err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
	} else {
		st = storage.OpenOrFallback(ctx, scfg)
	}
	st = storage.Instrument(st)

	vehicle := tariff.Vehicle{
		Model:       cfg.Vehicle.Model,
		BatteryKWh:  cfg.Vehicle.BatteryKWh,
		MilesPerKWh: cfg.Vehicle.MilesPerKWh,
		RangeMiles:  cfg.Vehicle.RangeMiles,
	}
	return &app{
		cfg:   cfg,
		log:   log,
		store: st,
		svc:   household.NewService(st, vehicle, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}

func sqlDriver(driver string) bool {
	switch driver {
	case "sqlite", "postgres", "postgrespool":
		return true
	}
	return false
}
