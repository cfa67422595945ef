package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// Persisted storage: a Postgres URL when set, otherwise a JSON file.
	DatabaseURL string `env:"DATABASE_URL"`
	StorePath   string `env:"STORE_PATH" envDefault:"data/storefront.json"`

	JWTSecret string `env:"JWT_SECRET,required" validate:"required,min=32"`

	CatalogBaseURL    string `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com" validate:"required,url"`
	CatalogTimeoutSec int    `env:"CATALOG_TIMEOUT_SEC" envDefault:"10" validate:"min=1,max=120"`
	FeaturedLimit     int    `env:"FEATURED_LIMIT" envDefault:"6" validate:"min=1,max=20"`

	// RefreshCron re-primes featured products and the search source;
	// empty disables the refresher.
	RefreshCron string `env:"REFRESH_CRON"`

	AlertTTLSec int `env:"ALERT_TTL_SEC" envDefault:"3" validate:"min=1,max=60"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
	ContactTo    string `env:"CONTACT_TO"     validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
