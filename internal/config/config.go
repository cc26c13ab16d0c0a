// Package config loads settings from NEWSBOARD_* environment variables,
// with a .env file in the working directory loaded first when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// loads .env into the process environment before Load reads it
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	ServiceName = "newsboard"
	envPrefix   = "NEWSBOARD_"
)

type Config struct {
	Env             string        `koanf:"env" validate:"required,oneof=development production test"`
	Addr            string        `koanf:"addr" validate:"required"`
	DiagAddr        string        `koanf:"diag_addr" validate:"required"`
	DB              string        `koanf:"db" validate:"required"`
	Seed            bool          `koanf:"seed"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Default returns the settings used when no variable overrides them.
func Default() Config {
	return Config{
		Env:             "production",
		Addr:            ":3333",
		DiagAddr:        ":9999",
		DB:              "newsboard.db",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load overlays NEWSBOARD_* variables on Default and validates the result.
// NEWSBOARD_DIAG_ADDR maps to diag_addr.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
