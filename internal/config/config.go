// Package config loads runtime settings from SECAWARE_* environment
// variables. Command-line flags override these values in cmd.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/secaware/internal/progress"
)

// Config holds the runtime settings.
type Config struct {
	ContentFile string `env:"SECAWARE_CONTENT"`
	ScorePolicy string `env:"SECAWARE_SCORE_POLICY" envDefault:"sum"`
	LogFile     string `env:"SECAWARE_LOG_FILE"`
	NoWelcome   bool   `env:"SECAWARE_NO_WELCOME" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Policy returns the parsed score policy.
func (c Config) Policy() (progress.ScorePolicy, error) {
	p, err := progress.ParseScorePolicy(c.ScorePolicy)
	if err != nil {
		return "", fmt.Errorf("score policy: %w", err)
	}
	return p, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	_, err := c.Policy()
	return err
}
