// Copyright 2026 The Driftline Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the driftline CLI configuration.
type Config struct {
	// Token is the OAuth bearer token used for API calls.
	Token string `yaml:"token"`

	// BaseURL overrides the production API root, e.g. for staging.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each HTTP request. Zero means the client
	// default.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RequestsPerSecond enables client-side throttling when positive.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// MaxRetries bounds retries after network failures. Zero means the
	// client default; negative disables retrying.
	MaxRetries int `yaml:"max_retries"`

	// OAuth holds the registered application credentials, used by the
	// login flow only.
	OAuth OAuthConfig `yaml:"oauth"`
}

// OAuthConfig identifies a registered Driftline application.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// Load loads configuration from the DRIFTLINE_CONFIG environment
// variable. There are no search paths: if DRIFTLINE_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("DRIFTLINE_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("DRIFTLINE_CONFIG environment variable not set; " +
			"set it to the path of your driftline.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The
// DRIFTLINE_TOKEN environment variable, when set, overrides the file's
// token value.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if token := os.Getenv("DRIFTLINE_TOKEN"); token != "" {
		cfg.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable for API calls.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required (set it in the config file or via DRIFTLINE_TOKEN)")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %g", c.RequestsPerSecond)
	}
	return nil
}
