// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ServerEnv is the server's environment configuration
type ServerEnv struct {
	Port       int    `env:"PLAYERBASE_PORT" envDefault:"8080"`
	Storage    string `env:"PLAYERBASE_STORAGE" envDefault:"memory"`
	RedisURL   string `env:"PLAYERBASE_REDIS_URL" envDefault:"redis://localhost:6379"`
	SQLitePath string `env:"PLAYERBASE_SQLITE_PATH" envDefault:"playerbase.db"`
	SQLLog     bool   `env:"PLAYERBASE_SQL_LOG"`
	LogLevel   string `env:"PLAYERBASE_LOG_LEVEL" envDefault:"info"`
}

// LoadServerEnv parses ServerEnv and checks its values
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := ParseEnv(&cfg); err != nil {
		return ServerEnv{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return ServerEnv{}, fmt.Errorf("PLAYERBASE_PORT out of range: %d", cfg.Port)
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return ServerEnv{}, err
	}
	return cfg, nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error")
func (e ServerEnv) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return 0, fmt.Errorf("PLAYERBASE_LOG_LEVEL: %w", err)
	}
	return level, nil
}
