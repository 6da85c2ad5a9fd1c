package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// EVTARIFF_STORAGE_DRIVER=redis.
const EnvPrefix = "EVTARIFF"

type Config struct {
	Addr        string        `mapstructure:"addr"`
	AutoMigrate bool          `mapstructure:"auto_migrate"`
	Log         LogConfig     `mapstructure:"log"`
	Storage     StorageConfig `mapstructure:"storage"`
	Vehicle     VehicleConfig `mapstructure:"vehicle"`
	Report      ReportConfig  `mapstructure:"report"`
	Notify      NotifyConfig  `mapstructure:"notify"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	// Driver is one of memory, sqlite, postgres, postgrespool, redis.
	Driver    string `mapstructure:"driver"`
	DSN       string `mapstructure:"dsn"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type VehicleConfig struct {
	Model       string  `mapstructure:"model"`
	BatteryKWh  float64 `mapstructure:"battery_kwh"`
	MilesPerKWh float64 `mapstructure:"miles_per_kwh"`
	RangeMiles  float64 `mapstructure:"range_miles"`
}

type ReportConfig struct {
	// Schedule is a cron spec or descriptor such as "@every 1h".
	Schedule string `mapstructure:"schedule"`
}

type NotifyConfig struct {
	WebhookURL  string      `mapstructure:"webhook_url"`
	WebhookType string      `mapstructure:"webhook_type"`
	Email       EmailConfig `mapstructure:"email"`
}

type EmailConfig struct {
	// Provider is "sendgrid" or "smtp"; empty disables email.
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	Encryption  string `mapstructure:"encryption"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	To          string `mapstructure:"to"`
}

// SetDefaults registers every key with its default so environment overrides
// are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8000")
	v.SetDefault("auto_migrate", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.key_prefix", "")
	v.SetDefault("vehicle.model", "2021 Vauxhall Mokka-e")
	v.SetDefault("vehicle.battery_kwh", 50.0)
	v.SetDefault("vehicle.miles_per_kwh", 3.6)
	v.SetDefault("vehicle.range_miles", 201.0)
	v.SetDefault("report.schedule", "@every 1h")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.webhook_type", "")
	v.SetDefault("notify.email.provider", "")
	v.SetDefault("notify.email.api_key", "")
	v.SetDefault("notify.email.host", "")
	v.SetDefault("notify.email.port", 587)
	v.SetDefault("notify.email.username", "")
	v.SetDefault("notify.email.password", "")
	v.SetDefault("notify.email.encryption", "tls")
	v.SetDefault("notify.email.from_address", "")
	v.SetDefault("notify.email.from_name", "evtariff")
	v.SetDefault("notify.email.to", "")
}

// Load reads the optional config file and environment into a Config.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Vehicle.BatteryKWh <= 0 {
		return errors.New("config: vehicle.battery_kwh must be > 0")
	}
	switch c.Storage.Driver {
	case "", "memory", "sqlite", "postgres", "postgrespool", "redis":
	default:
		return fmt.Errorf("config: unsupported storage.driver %q", c.Storage.Driver)
	}
	switch c.Notify.Email.Provider {
	case "", "sendgrid", "smtp":
	default:
		return fmt.Errorf("config: unsupported notify.email.provider %q", c.Notify.Email.Provider)
	}
	return nil
}
