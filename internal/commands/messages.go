// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "github.com/jeranaias/inkbrush-tui/internal/refstore"

// =============================================================================
// COMMAND OUTCOME MESSAGES
// =============================================================================
//
// Handlers report outcomes through these Bubble Tea messages. The chat model
// renders each as a system (or error) line; none of them mutate UI state
// directly.

// UsageErrorMsg reports malformed command arguments.
type UsageErrorMsg struct {
	Usage string
}

// UnknownCommandMsg reports an unrecognized /command.
type UnknownCommandMsg struct {
	Name string
}

// HelpRequestedMsg triggers the command help display.
type HelpRequestedMsg struct{}

// RefListMsg delivers the (possibly filtered) reference listing.
type RefListMsg struct {
	Filter  string
	Entries []refstore.Entry
}

// RefSavedMsg reports the outcome of /saveref.
type RefSavedMsg struct {
	Key string
	Err error
}

// RefDeletedMsg reports the outcome of /delref.
type RefDeletedMsg struct {
	Key string
	Err error
}

// RefRenamedMsg reports the outcome of /rename.
type RefRenamedMsg struct {
	OldKey string
	NewKey string
	Err    error
}

// StagedFileMsg reports the outcome of /attach.
type StagedFileMsg struct {
	Path string
	Err  error
}

// UnstagedMsg reports that the staged image was removed.
type UnstagedMsg struct {
	WasStaged bool
}

// OpenMaskEditorMsg asks the application to open the mask editor over the
// staged image.
type OpenMaskEditorMsg struct{}

// RestagedMsg reports the outcome of /edit: the n-th output image of the
// last response was staged for further editing.
type RestagedMsg struct {
	Index int
	Err   error
}

// ExportCompleteMsg reports the outcome of /export.
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// ClearChatMsg asks the chat model to start a fresh transcript.
type ClearChatMsg struct{}
