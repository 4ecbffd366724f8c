// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the main conversation view.
//
// The view owns the transcript viewport, the input line, and the slash
// command machinery. Generation runs as a single in-flight request;
// input is disabled while a request is pending.
package chat
