// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "github.com/jeranaias/inkbrush-tui/internal/genai"

// =============================================================================
// GENERATION MESSAGES
// =============================================================================

// GenerateResultMsg carries a completed generation.
type GenerateResultMsg struct {
	Result *genai.Result
}

// GenerateErrorMsg carries a failed generation.
type GenerateErrorMsg struct {
	Err error
}

// RefreshMsg tells the view that the conversation was modified outside
// its own update loop and the transcript must be re-rendered.
type RefreshMsg struct{}
