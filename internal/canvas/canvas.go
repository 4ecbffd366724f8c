// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"errors"
	"image"
	"image/color"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// TOOLS
// =============================================================================

// Tool identifies the active drawing tool. Exactly one tool is active at a
// time.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolRect
	ToolCircle
)

// String returns the display name of the tool.
func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolRect:
		return "rectangle"
	case ToolCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the fixed set of stroke colors. The eraser ignores the active
// color entirely; it clears pixels to transparent instead of painting.
var Palette = []color.RGBA{
	{R: 0xEF, G: 0x44, B: 0x44, A: 0xFF}, // red
	{R: 0xF9, G: 0x73, B: 0x16, A: 0xFF}, // orange
	{R: 0xEA, G: 0xB3, B: 0x08, A: 0xFF}, // yellow
	{R: 0x22, G: 0xC5, B: 0x5E, A: 0xFF}, // green
	{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF}, // blue
	{R: 0xA8, G: 0x55, B: 0xF7, A: 0xFF}, // purple
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // white
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // black
}

// PaletteNames mirror Palette by index for the toolbar display.
var PaletteNames = []string{
	"red", "orange", "yellow", "green", "blue", "purple", "white", "black",
}

// Brush size bounds in pixels (diameter).
const (
	MinBrushSize     = 2
	MaxBrushSize     = 80
	DefaultBrushSize = 16
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoImage indicates an attempt to open a session without an image.
	ErrNoImage = errors.New("no image to edit")
)

// =============================================================================
// SESSION
// =============================================================================

// Session is a single mask-editing session over one staged image. It owns
// the live surface buffer and the snapshot history. Snapshot 0 is always the
// pristine copy of the source image and is never discarded.
//
// Session is not safe for concurrent use; all mutation happens on the UI
// event loop.
type Session struct {
	surface   *image.RGBA
	snapshots []*image.RGBA

	tool      Tool
	colorIdx  int
	brushSize int

	// Pointer state while a stroke or shape is in progress.
	drawing bool
	anchor  image.Point
	last    image.Point
}

// NewSession opens an editing session over src. The surface is loaded at the
// image's native pixel dimensions and snapshot 0 is pushed immediately.
func NewSession(src *image.RGBA) (*Session, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrNoImage
	}
	surface := imaging.CloneRGBA(src)
	return &Session{
		surface:   surface,
		snapshots: []*image.RGBA{imaging.CloneRGBA(surface)},
		tool:      ToolBrush,
		brushSize: DefaultBrushSize,
	}, nil
}

// Bounds returns the pixel bounds of the drawing surface.
func (s *Session) Bounds() image.Rectangle {
	return s.surface.Bounds()
}

// Surface returns the live pixel buffer. Callers must treat it as read-only;
// all mutation goes through the pointer methods.
func (s *Session) Surface() *image.RGBA {
	return s.surface
}

// Tool returns the active tool.
func (s *Session) Tool() Tool {
	return s.tool
}

// SetTool selects the active tool. Switching tools mid-stroke aborts the
// stroke without committing a snapshot.
func (s *Session) SetTool(t Tool) {
	if s.drawing {
		s.abortStroke()
	}
	s.tool = t
}

// ColorIndex returns the index of the active palette color.
func (s *Session) ColorIndex() int {
	return s.colorIdx
}

// SetColor selects a palette color by index. Out-of-range indexes are
// ignored.
func (s *Session) SetColor(idx int) {
	if idx >= 0 && idx < len(Palette) {
		s.colorIdx = idx
	}
}

// BrushSize returns the brush diameter in pixels.
func (s *Session) BrushSize() int {
	return s.brushSize
}

// AdjustBrushSize grows or shrinks the brush, clamped to the fixed bounds.
func (s *Session) AdjustBrushSize(delta int) {
	s.brushSize += delta
	if s.brushSize < MinBrushSize {
		s.brushSize = MinBrushSize
	}
	if s.brushSize > MaxBrushSize {
		s.brushSize = MaxBrushSize
	}
}

// Drawing reports whether a stroke or shape is in progress.
func (s *Session) Drawing() bool {
	return s.drawing
}

// HistoryLen returns the number of snapshots, including the pristine one.
func (s *Session) HistoryLen() int {
	return len(s.snapshots)
}

// =============================================================================
// POINTER EVENTS
// =============================================================================

// PointerDown begins a stroke (brush/eraser) or records the shape anchor
// (rectangle/circle). Points outside the surface are clamped to its edge so
// a drag that starts at the border behaves like the HTML-canvas original.
func (s *Session) PointerDown(p image.Point) {
	p = s.clamp(p)
	s.drawing = true
	s.anchor = p
	s.last = p

	switch s.tool {
	case ToolBrush:
		s.stampDisc(p, s.color())
	case ToolEraser:
		s.eraseDisc(p)
	}
	// Shapes draw nothing on pointer down; only the anchor is recorded.
}

// PointerMove extends the stroke or updates the live shape preview.
func (s *Session) PointerMove(p image.Point) {
	if !s.drawing {
		return
	}
	p = s.clamp(p)

	switch s.tool {
	case ToolBrush:
		s.strokeSegment(s.last, p, s.color())
	case ToolEraser:
		s.eraseSegment(s.last, p)
	case ToolRect:
		s.restoreLastSnapshot()
		s.fillRect(s.anchor, p, s.color())
	case ToolCircle:
		s.restoreLastSnapshot()
		s.fillCircle(s.anchor, p, s.color())
	}
	s.last = p
}

// PointerUp finalizes the stroke or shape at the release point and pushes a
// new snapshot. Pointer leaving the surface is treated identically by the
// caller (finalize at the last known point).
func (s *Session) PointerUp(p image.Point) {
	if !s.drawing {
		return
	}
	p = s.clamp(p)

	switch s.tool {
	case ToolBrush:
		s.strokeSegment(s.last, p, s.color())
	case ToolEraser:
		s.eraseSegment(s.last, p)
	case ToolRect:
		s.restoreLastSnapshot()
		s.fillRect(s.anchor, p, s.color())
	case ToolCircle:
		s.restoreLastSnapshot()
		s.fillCircle(s.anchor, p, s.color())
	}

	s.drawing = false
	s.snapshots = append(s.snapshots, imaging.CloneRGBA(s.surface))
}

// Undo discards the most recent snapshot and restores the surface to the one
// before it. Undoing past the pristine snapshot is a no-op; the history never
// shrinks below one entry. Returns true if a snapshot was removed.
func (s *Session) Undo() bool {
	if s.drawing {
		s.abortStroke()
	}
	if len(s.snapshots) <= 1 {
		return false
	}
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	s.restoreLastSnapshot()
	return true
}

// =============================================================================
// INTERNAL
// =============================================================================

// color returns the active palette color.
func (s *Session) color() color.RGBA {
	return Palette[s.colorIdx]
}

// clamp constrains a point to the surface bounds.
func (s *Session) clamp(p image.Point) image.Point {
	b := s.surface.Bounds()
	if p.X < b.Min.X {
		p.X = b.Min.X
	}
	if p.X > b.Max.X-1 {
		p.X = b.Max.X - 1
	}
	if p.Y < b.Min.Y {
		p.Y = b.Min.Y
	}
	if p.Y > b.Max.Y-1 {
		p.Y = b.Max.Y - 1
	}
	return p
}

// restoreLastSnapshot copies the most recent snapshot back onto the surface.
// Used to erase live shape previews and to implement undo.
func (s *Session) restoreLastSnapshot() {
	latest := s.snapshots[len(s.snapshots)-1]
	copy(s.surface.Pix, latest.Pix)
}

// abortStroke cancels an in-progress stroke, restoring the last committed
// state without pushing a snapshot.
func (s *Session) abortStroke() {
	s.drawing = false
	s.restoreLastSnapshot()
}
