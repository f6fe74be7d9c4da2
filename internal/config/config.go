// Package config resolves vikunjactl settings from flags, environment,
// config file and the ~/.zshrc fallback, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Defaults matching the board the skill was written for.
const (
	DefaultProject = "Internal TODO"
	DefaultView    = "Kanban"
	DefaultBucket  = "Idé"

	defaultHTTPTimeout = 30 * time.Second
)

// Config holds everything needed to talk to a Vikunja instance.
type Config struct {
	BaseURL     string        `mapstructure:"base_url"`
	Token       string        `mapstructure:"token"`
	Project     string        `mapstructure:"project"`
	View        string        `mapstructure:"view"`
	Bucket      string        `mapstructure:"bucket"`
	ProjectID   int64         `mapstructure:"project_id"`
	ViewID      int64         `mapstructure:"view_id"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// Load builds the config from viper state, falling back to ~/.zshrc exports
// for values the environment and config file left unset.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyZshrcFallback(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults sets default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Project == "" {
		cfg.Project = DefaultProject
	}
	if cfg.View == "" {
		cfg.View = DefaultView
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
}

// Validate checks that the fields every API command needs are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("missing Vikunja base URL (set VIKUNJA_BASE_URL or --base-url)")
	}
	if c.Token == "" {
		return fmt.Errorf("missing Vikunja API token (set VIKUNJA_API_TOKEN or --token)")
	}
	return nil
}
