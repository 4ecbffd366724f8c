// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads inkbrush configuration from TOML files and
// environment variables.
//
// Configuration is resolved in order of precedence:
//   - environment variables (INKBRUSH_*, GEMINI_API_KEY)
//   - ~/.inkbrush/config.toml
//   - built-in defaults
package config
