// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the top-level inkbrush configuration.
type Config struct {
	// API holds the generative image API settings.
	API APIConfig `toml:"api"`

	// Export holds the /export command settings.
	Export ExportConfig `toml:"export"`

	// UI holds terminal interface settings.
	UI UIConfig `toml:"ui"`
}

// APIConfig configures the generateContent endpoint.
type APIConfig struct {
	// BaseURL is the API host, without the model path.
	BaseURL string `toml:"base_url"`

	// Model is the generative model identifier.
	Model string `toml:"model"`

	// Key is the API key. Prefer the GEMINI_API_KEY environment
	// variable over committing this to disk.
	Key string `toml:"key"`

	// TimeoutSecs bounds a single generation request.
	TimeoutSecs int `toml:"timeout_secs"`

	// RequestsPerMinute throttles outbound calls.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// ExportConfig configures image export.
type ExportConfig struct {
	// Dir is where /export writes when no path is given.
	Dir string `toml:"dir"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// ShowTimestamps toggles per-message timestamps in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`

	// CompactMode reduces message spacing.
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://generativelanguage.googleapis.com",
			Model:             "gemini-2.0-flash-exp",
			TimeoutSecs:       120,
			RequestsPerMinute: 10,
		},
		Export: ExportConfig{
			Dir: "./exports",
		},
		UI: UIConfig{
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the inkbrush configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".inkbrush"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads configuration from the default config file, applies
// environment overrides, and validates the result. A missing config
// file is not an error; defaults are used.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from an explicit file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables over file values.
// GEMINI_API_KEY matches the variable the official SDKs read;
// INKBRUSH_API_KEY wins when both are set.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.API.Key = key
	}
	if key := os.Getenv("INKBRUSH_API_KEY"); key != "" {
		c.API.Key = key
	}
	if url := os.Getenv("INKBRUSH_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if model := os.Getenv("INKBRUSH_MODEL"); model != "" {
		c.API.Model = model
	}
	if dir := os.Getenv("INKBRUSH_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that would fail at
// request time.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://, got %q", c.API.BaseURL)
	}
	if c.API.Model == "" {
		return fmt.Errorf("api.model must not be empty")
	}
	if c.API.TimeoutSecs <= 0 {
		return fmt.Errorf("api.timeout_secs must be positive, got %d", c.API.TimeoutSecs)
	}
	if c.API.RequestsPerMinute <= 0 {
		return fmt.Errorf("api.requests_per_minute must be positive, got %d", c.API.RequestsPerMinute)
	}
	return nil
}
