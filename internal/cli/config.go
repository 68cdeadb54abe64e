package cli

import (
	"github.com/mcoot/playerbase/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string `env:"PLAYERCTL_SERVER" envDefault:"http://localhost:8080"`
	Output    string `env:"PLAYERCTL_OUTPUT" envDefault:"text"`
}

// DefaultConfig returns a Config with environment overrides applied
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
