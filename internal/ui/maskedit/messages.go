// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package maskedit

import "github.com/jeranaias/inkbrush-tui/internal/canvas"

// =============================================================================
// EDITOR MESSAGES
// =============================================================================

// SavedMsg is emitted when the user saves the drawn mask.
type SavedMsg struct {
	Result canvas.MaskResult
}

// CancelledMsg is emitted when the user leaves the editor without saving.
type CancelledMsg struct{}

// FailedMsg is emitted when mask finalization fails.
type FailedMsg struct {
	Err error
}
