// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package maskedit

import (
	"image"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inkbrush-tui/internal/canvas"
	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
)

func newModel(t *testing.T) Model {
	t.Helper()
	session, err := canvas.NewSession(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	m := New(session, styles.NewTheme())
	m.SetSize(80, 30)
	return m
}

func TestToolKeys(t *testing.T) {
	tests := []struct {
		key  string
		want canvas.Tool
	}{
		{"b", canvas.ToolBrush},
		{"e", canvas.ToolEraser},
		{"r", canvas.ToolRect},
		{"c", canvas.ToolCircle},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newModel(t)
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if got := m.session.Tool(); got != tt.want {
				t.Errorf("tool = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorKeys(t *testing.T) {
	m := newModel(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if got := m.session.ColorIndex(); got != 2 {
		t.Errorf("color index = %d, want 2", got)
	}
	// Out-of-palette digit is ignored.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	if got := m.session.ColorIndex(); got != 2 {
		t.Errorf("color index = %d after '9', want 2", got)
	}
}

func TestEscEmitsCancelled(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Fatalf("msg = %T, want CancelledMsg", cmd())
	}
}

func TestSaveEmitsMaskResult(t *testing.T) {
	m := newModel(t)

	// Draw a stroke so the mask has content.
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 10, Y: 5})
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseMotion, X: 20, Y: 5})
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseRelease, X: 20, Y: 5})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	saved, ok := cmd().(SavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want SavedMsg", cmd())
	}
	if saved.Result.Mask.IsZero() || saved.Result.Preview.IsZero() {
		t.Error("mask result should carry mask and preview images")
	}
}

func TestMouseDrawChangesSurface(t *testing.T) {
	m := newModel(t)

	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 10, Y: 5})
	if !m.session.Drawing() {
		t.Fatal("expected stroke in progress after press")
	}
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseRelease, X: 12, Y: 5})
	if m.session.Drawing() {
		t.Fatal("expected stroke committed after release")
	}
	if m.session.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2 (pristine + stroke)", m.session.HistoryLen())
	}
}

func TestMousePressOutsideCanvasIgnored(t *testing.T) {
	m := newModel(t)
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 0, Y: 0})
	if m.session.Drawing() {
		t.Error("press on toolbar should not start a stroke")
	}
}

func TestReleaseOutsideCanvasCommitsStroke(t *testing.T) {
	m := newModel(t)
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 10, Y: 5})
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseRelease, X: 500, Y: 500})
	if m.session.Drawing() {
		t.Error("stroke should be committed even when released off-canvas")
	}
	if m.session.HistoryLen() != 2 {
		t.Errorf("HistoryLen = %d, want 2", m.session.HistoryLen())
	}
}

func TestUndoKey(t *testing.T) {
	m := newModel(t)
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseLeft, X: 10, Y: 5})
	m, _ = m.Update(tea.MouseMsg{Type: tea.MouseRelease, X: 12, Y: 5})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	if m.session.HistoryLen() != 1 {
		t.Errorf("HistoryLen = %d after undo, want 1", m.session.HistoryLen())
	}
}

func TestViewRenders(t *testing.T) {
	m := newModel(t)
	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty string")
	}
}

func TestCellToPixelMapsProportionally(t *testing.T) {
	m := newModel(t)

	p, ok := m.cellToPixel(canvasOriginX, canvasOriginY)
	if !ok {
		t.Fatal("top-left canvas cell should map")
	}
	if p.X != 0 || p.Y != 0 {
		t.Errorf("top-left cell = %v, want (0,0)", p)
	}

	if _, ok := m.cellToPixel(canvasOriginX-1, canvasOriginY); ok {
		t.Error("cell left of canvas should not map")
	}
}
