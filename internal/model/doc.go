// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript:
// messages, roles, and the append-only conversation.
//
// The transcript is process-lifetime state only. Nothing in this package
// persists across restarts; that is a deliberate design boundary, not an
// oversight.
package model
