// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package maskedit

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/inkbrush-tui/internal/canvas"
	"github.com/jeranaias/inkbrush-tui/internal/ui/components"
	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
)

// =============================================================================
// LAYOUT CONSTANTS
// =============================================================================

// The canvas sits inside a rounded frame below the toolbar. These
// offsets map terminal mouse coordinates back onto the frame interior.
const (
	canvasOriginX = 1 // left frame border
	canvasOriginY = 2 // toolbar row + top frame border
	chromeRows    = 4 // toolbar + two frame borders + help line
	chromeCols    = 2 // left and right frame borders
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the mask editor view.
type Model struct {
	session *canvas.Session
	theme   *styles.Theme
	view    *components.ImageView

	width  int
	height int

	// Rendered canvas size in cells, recomputed on resize.
	cols int
	rows int
}

// New creates a mask editor over a drawing session.
func New(session *canvas.Session, theme *styles.Theme) Model {
	return Model{
		session: session,
		theme:   theme,
		view:    components.NewImageView(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize updates the layout for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	bounds := m.session.Bounds()
	m.cols, m.rows = components.FitCells(
		bounds.Dx(), bounds.Dy(),
		max(width-chromeCols, 1),
		max(height-chromeRows, 1),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleKey processes tool selection, undo, save, and cancel.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "q":
		return m, func() tea.Msg { return CancelledMsg{} }

	case "s", "ctrl+s":
		result, err := m.session.Finalize()
		if err != nil {
			return m, func() tea.Msg { return FailedMsg{Err: err} }
		}
		return m, func() tea.Msg { return SavedMsg{Result: result} }

	case "u":
		m.session.Undo()

	case "b":
		m.session.SetTool(canvas.ToolBrush)
	case "e":
		m.session.SetTool(canvas.ToolEraser)
	case "r":
		m.session.SetTool(canvas.ToolRect)
	case "c":
		m.session.SetTool(canvas.ToolCircle)

	case "+", "=":
		m.session.AdjustBrushSize(2)
	case "-", "_":
		m.session.AdjustBrushSize(-2)

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '8' {
			m.session.SetColor(int(key[0] - '1'))
		}
	}
	return m, nil
}

// handleMouse routes pointer events into the drawing session.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	p, ok := m.cellToPixel(msg.X, msg.Y)

	switch msg.Type {
	case tea.MouseLeft:
		if !ok {
			return m, nil
		}
		if m.session.Drawing() {
			m.session.PointerMove(p)
		} else {
			m.session.PointerDown(p)
		}

	case tea.MouseMotion:
		if ok && m.session.Drawing() {
			m.session.PointerMove(p)
		}

	case tea.MouseRelease:
		if m.session.Drawing() {
			// Release outside the canvas still commits the stroke at
			// the last clamped position.
			if !ok {
				p = clampToBounds(msg.X, msg.Y, m)
			}
			m.session.PointerUp(p)
		}

	case tea.MouseWheelUp:
		m.session.AdjustBrushSize(2)
	case tea.MouseWheelDown:
		m.session.AdjustBrushSize(-2)
	}
	return m, nil
}

// cellToPixel maps a terminal cell coordinate to an image pixel.
func (m Model) cellToPixel(x, y int) (image.Point, bool) {
	if m.cols < 1 || m.rows < 1 {
		return image.Point{}, false
	}
	col := x - canvasOriginX
	row := y - canvasOriginY
	if col < 0 || col >= m.cols || row < 0 || row >= m.rows {
		return image.Point{}, false
	}

	bounds := m.session.Bounds()
	return image.Point{
		X: col * bounds.Dx() / m.cols,
		Y: row * bounds.Dy() / m.rows,
	}, true
}

// clampToBounds maps an out-of-canvas cell to the nearest canvas pixel.
func clampToBounds(x, y int, m Model) image.Point {
	col := min(max(x-canvasOriginX, 0), m.cols-1)
	row := min(max(y-canvasOriginY, 0), m.rows-1)

	bounds := m.session.Bounds()
	return image.Point{
		X: col * bounds.Dx() / m.cols,
		Y: row * bounds.Dy() / m.rows,
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.toolbar())
	b.WriteString("\n")

	surface := m.view.RenderSurface(m.session.Surface(), m.cols, m.rows)
	b.WriteString(m.theme.EditorFrame.Render(surface))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

// toolbar renders tool, palette, and brush size indicators.
func (m Model) toolbar() string {
	var parts []string

	for tool := canvas.ToolBrush; tool <= canvas.ToolCircle; tool++ {
		label := tool.String()
		if tool == m.session.Tool() {
			parts = append(parts, m.theme.ToolActive.Render(label))
		} else {
			parts = append(parts, m.theme.ToolInactive.Render(label))
		}
	}

	parts = append(parts, m.swatches())
	parts = append(parts, fmt.Sprintf("brush %d", m.session.BrushSize()))

	return m.theme.EditorToolbar.Width(m.width).MaxWidth(m.width).
		Render(strings.Join(parts, "  "))
}

// swatches renders the color palette with the active color underlined.
func (m Model) swatches() string {
	var b strings.Builder
	for i, c := range canvas.Palette {
		hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		if i == m.session.ColorIndex() {
			style = style.Underline(true).Bold(true)
		}
		b.WriteString(style.Render("■"))
	}
	return b.String()
}

// helpLine renders the key bindings hint.
func (m Model) helpLine() string {
	bindings := []struct{ key, desc string }{
		{"b/e/r/c", "tool"},
		{"1-8", "color"},
		{"+/-", "brush"},
		{"u", "undo"},
		{"s", "save"},
		{"esc", "cancel"},
	}

	var parts []string
	for _, bind := range bindings {
		parts = append(parts,
			m.theme.ShortcutKey.Render(bind.key)+" "+m.theme.ShortcutDesc.Render(bind.desc))
	}
	return strings.Join(parts, "  ")
}
