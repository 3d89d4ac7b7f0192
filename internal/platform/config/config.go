// Package config loads application configuration from the environment.
//
// A .env file is read first when present (godotenv); values are then mapped onto
// Config via go-simpler/env struct tags and validated.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const minSessionSecretLen = 32

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"5000"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	AuthUsername string `env:"AUTH_USERNAME" default:"admin"`
	AuthPassword string `env:"AUTH_PASSWORD" default:"changeme"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" default:"24h"`

	IPCBackend        string        `env:"IPC_BACKEND" default:"posix"`
	IPCQueueName      string        `env:"IPC_QUEUE_NAME" default:"/epdtext_ipc"`
	IPCSendTimeout    time.Duration `env:"IPC_SEND_TIMEOUT" default:"10ms"`
	IPCMemoryCapacity int           `env:"IPC_MEMORY_CAPACITY" default:"10"`
	IPCOpenAttempts   int           `env:"IPC_OPEN_ATTEMPTS" default:"5"`
	IPCOpenBackoff    time.Duration `env:"IPC_OPEN_BACKOFF" default:"200ms"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"5"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"10"`
}

// IsProduction reports whether APP_ENV selects production hardening.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
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
	if cfg.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(cfg.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSessionSecretLen)
	}

	if cfg.AuthUsername == "" || cfg.AuthPassword == "" {
		return errors.New("AUTH_USERNAME and AUTH_PASSWORD must not be empty")
	}
	if cfg.IsProduction() && cfg.AuthPassword == "changeme" {
		return errors.New("AUTH_PASSWORD must be changed from the default in production")
	}

	switch cfg.IPCBackend {
	case "posix", "memory":
	default:
		return fmt.Errorf("IPC_BACKEND must be 'posix' or 'memory', got %q", cfg.IPCBackend)
	}
	if cfg.IPCQueueName == "" || cfg.IPCQueueName[0] != '/' {
		return fmt.Errorf("IPC_QUEUE_NAME must start with '/', got %q", cfg.IPCQueueName)
	}
	if cfg.IPCSendTimeout <= 0 || cfg.IPCSendTimeout > time.Second {
		return fmt.Errorf("IPC_SEND_TIMEOUT must be between 1ns and 1s, got %s", cfg.IPCSendTimeout)
	}
	if cfg.IPCMemoryCapacity < 1 {
		return errors.New("IPC_MEMORY_CAPACITY must be at least 1")
	}
	if cfg.IPCOpenAttempts < 1 {
		return errors.New("IPC_OPEN_ATTEMPTS must be at least 1")
	}

	if cfg.RateLimitPerSecond <= 0 || cfg.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}

	return nil
}
