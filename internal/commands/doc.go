// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI: parsing
// of /command input lines and the registry of reference-management and
// staging commands.
//
// Commands are the explicit dispatch layer between the UI and the
// orchestrator core: each handler performs one core operation (save a
// reference, stage a file, open the mask editor, export an output) and
// reports the outcome as a Bubble Tea message for the chat model to render.
// The handlers never touch the viewport or any other rendering state.
package commands
