// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.API.Model != Default().API.Model {
		t.Errorf("Model = %q, want default %q", cfg.API.Model, Default().API.Model)
	}
}

func TestLoadFromPathReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
model = "gemini-exp-custom"
timeout_secs = 30

[export]
dir = "/tmp/out"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.API.Model != "gemini-exp-custom" {
		t.Errorf("Model = %q", cfg.API.Model)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.API.TimeoutSecs)
	}
	if cfg.Export.Dir != "/tmp/out" {
		t.Errorf("Export.Dir = %q", cfg.Export.Dir)
	}
	// Values absent from the file keep their defaults.
	if cfg.API.BaseURL != Default().API.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.API.BaseURL)
	}
}

func TestLoadFromPathBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("INKBRUSH_MODEL", "gemini-override")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.Key != "gem-key" {
		t.Errorf("Key = %q, want %q", cfg.API.Key, "gem-key")
	}
	if cfg.API.Model != "gemini-override" {
		t.Errorf("Model = %q, want %q", cfg.API.Model, "gemini-override")
	}
}

func TestInkbrushKeyWinsOverGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("INKBRUSH_API_KEY", "ink-key")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.Key != "ink-key" {
		t.Errorf("Key = %q, want %q", cfg.API.Key, "ink-key")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"non-http base url", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"empty model", func(c *Config) { c.API.Model = "" }},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }},
		{"negative rate limit", func(c *Config) { c.API.RequestsPerMinute = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
