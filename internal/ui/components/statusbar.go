// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
	"github.com/jeranaias/inkbrush-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusGenerating
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusGenerating:
		return "Generating..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar renders the bottom status line.
type StatusBar struct {
	theme *styles.Theme

	// Status is the current activity state.
	Status Status

	// Model is the configured model identifier.
	Model string

	// RefCount is the number of saved references.
	RefCount int

	// Staged indicates whether an image is staged, and Masked whether
	// it carries a mask.
	Staged bool
	Masked bool
}

// NewStatusBar creates a status bar bound to a theme.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// Render draws the status bar at the given width.
func (s *StatusBar) Render(width int) string {
	if width < 1 {
		return ""
	}

	var parts []string

	switch s.Status {
	case StatusGenerating:
		parts = append(parts, s.theme.BusyBadge.Render(s.Status.String()))
	case StatusError:
		parts = append(parts, s.theme.ErrorText.Render(s.Status.String()))
	default:
		parts = append(parts, s.theme.StatusValue.Render(s.Status.String()))
	}

	if s.Model != "" {
		parts = append(parts, s.theme.StatusValue.Render(util.TruncateWidth(s.Model, 28)))
	}

	parts = append(parts, s.theme.StatusValue.Render(fmt.Sprintf("refs: %d", s.RefCount)))

	if s.Staged {
		badge := "staged"
		if s.Masked {
			badge = "staged+mask"
		}
		parts = append(parts, s.theme.StagedBadge.Render(badge))
	}

	line := strings.Join(parts, s.theme.StatusValue.Render(" │ "))
	return s.theme.StatusBar.Width(width).MaxWidth(width).Render(line)
}
