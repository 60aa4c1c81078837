package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// ReconcileInterval is the period of the background snapshot
	// refresh that catches missed change signals.
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" default:"5m"`

	// WriteRateLimit caps feedback submissions per client IP per second.
	WriteRateLimit float64 `env:"WRITE_RATE_LIMIT" default:"5"`

	MaxWebSocketConnections int `env:"MAX_WEBSOCKET_CONNECTIONS" default:"10000"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.ReconcileInterval <= 0 {
		return fmt.Errorf("RECONCILE_INTERVAL must be positive, got %s", cfg.ReconcileInterval)
	}
	if cfg.WriteRateLimit <= 0 {
		return fmt.Errorf("WRITE_RATE_LIMIT must be positive, got %v", cfg.WriteRateLimit)
	}
	if cfg.MaxWebSocketConnections <= 0 {
		return fmt.Errorf("MAX_WEBSOCKET_CONNECTIONS must be positive, got %d", cfg.MaxWebSocketConnections)
	}

	if cfg.AppEnv == "production" {
		lowered := strings.ToLower(cfg.DatabaseURL)
		for _, mode := range []string{"sslmode=disable", "sslmode=allow"} {
			if strings.Contains(lowered, mode) {
				return fmt.Errorf("DATABASE_URL uses %s which is not allowed in production", mode)
			}
		}
	}

	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
