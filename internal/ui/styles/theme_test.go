// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Spot-check that load-bearing styles render without panicking and
	// actually style their input.
	out := theme.UserLabel.Render("You")
	if out == "" {
		t.Error("UserLabel rendered empty string")
	}
	if theme.ErrorText.GetBold() != true {
		t.Error("ErrorText should be bold")
	}
	if theme.ToolActive.GetUnderline() != true {
		t.Error("ToolActive should be underlined")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize stored %dx%d, want 120x40", theme.Width, theme.Height)
	}
}
