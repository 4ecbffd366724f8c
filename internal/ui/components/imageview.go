// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"image"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// HALF-BLOCK IMAGE RENDERER
// =============================================================================

// halfBlock is rendered with the top pixel as foreground and the bottom
// pixel as background, packing two image rows into one terminal row.
const halfBlock = "▀"

// ImageView renders pixel data into terminal cells.
type ImageView struct {
	profile termenv.Profile
}

// NewImageView creates a renderer for the current terminal's color profile.
func NewImageView() *ImageView {
	return &ImageView{profile: termenv.ColorProfile()}
}

// NewImageViewWithProfile creates a renderer with an explicit profile.
// Tests use Ascii to get deterministic output.
func NewImageViewWithProfile(profile termenv.Profile) *ImageView {
	return &ImageView{profile: profile}
}

// Render draws an encoded image into at most maxCols x maxRows terminal
// cells, preserving aspect ratio. Returns "" when the image cannot be
// decoded; image display is best-effort and never blocks the transcript.
func (v *ImageView) Render(img imaging.Image, maxCols, maxRows int) string {
	surface, err := imaging.Decode(img)
	if err != nil {
		return ""
	}
	return v.RenderSurface(surface, maxCols, maxRows)
}

// RenderSurface draws decoded pixel data into terminal cells.
func (v *ImageView) RenderSurface(surface *image.RGBA, maxCols, maxRows int) string {
	if maxCols < 1 || maxRows < 1 {
		return ""
	}

	cols, rows := FitCells(surface.Bounds().Dx(), surface.Bounds().Dy(), maxCols, maxRows)
	if cols < 1 || rows < 1 {
		return ""
	}

	// One cell holds two vertical pixels.
	scaled := imaging.Scale(surface, cols, rows*2)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := scaled.RGBAAt(col, row*2)
			bottom := scaled.RGBAAt(col, row*2+1)
			cell := termenv.String(halfBlock).
				Foreground(v.profile.FromColor(top)).
				Background(v.profile.FromColor(bottom))
			b.WriteString(cell.String())
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FitCells scales pixel dimensions into a cell box, preserving aspect
// ratio. A cell is one column wide and two pixel rows tall.
func FitCells(pxWidth, pxHeight, maxCols, maxRows int) (cols, rows int) {
	if pxWidth < 1 || pxHeight < 1 {
		return 0, 0
	}

	// Never upscale: tiny images render at native cell size.
	if maxCols > pxWidth {
		maxCols = pxWidth
	}
	if maxRows > (pxHeight+1)/2 {
		maxRows = (pxHeight + 1) / 2
	}

	cols = maxCols
	// Pixel rows available: two per cell row.
	height := pxHeight * cols / pxWidth
	rows = (height + 1) / 2
	if rows > maxRows {
		rows = maxRows
		cols = pxWidth * (rows * 2) / pxHeight
		if cols > maxCols {
			cols = maxCols
		}
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}
