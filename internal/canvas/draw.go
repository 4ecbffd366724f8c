// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"image"
	"image/color"
	"math"
)

// =============================================================================
// DRAWING PRIMITIVES
// =============================================================================
//
// All primitives write directly into the surface buffer. Brush strokes are
// built from discs stamped along the segment between consecutive pointer
// positions, which gives the round-cap, round-join look of a canvas stroke
// with lineCap=round without a path rasterizer.

// stampDisc fills a disc of the current brush radius centered at p.
func (s *Session) stampDisc(p image.Point, c color.RGBA) {
	s.forEachDiscPixel(p, float64(s.brushSize)/2, func(x, y int) {
		s.surface.SetRGBA(x, y, c)
	})
}

// eraseDisc clears a disc of the current brush radius to transparent.
// This mirrors the destination-out compositing of the eraser tool: the
// source pixel is removed, not painted over.
func (s *Session) eraseDisc(p image.Point) {
	s.forEachDiscPixel(p, float64(s.brushSize)/2, func(x, y int) {
		s.surface.SetRGBA(x, y, color.RGBA{})
	})
}

// strokeSegment stamps discs along the segment from a to b so fast pointer
// motion still produces a continuous stroke.
func (s *Session) strokeSegment(a, b image.Point, c color.RGBA) {
	forEachSegmentStep(a, b, func(p image.Point) {
		s.stampDisc(p, c)
	})
}

// eraseSegment is strokeSegment for the eraser.
func (s *Session) eraseSegment(a, b image.Point) {
	forEachSegmentStep(a, b, func(p image.Point) {
		s.eraseDisc(p)
	})
}

// fillRect fills the axis-aligned rectangle spanned by anchor and p. The
// drag direction is unconstrained; negative spans are normalized.
func (s *Session) fillRect(anchor, p image.Point, c color.RGBA) {
	r := image.Rect(anchor.X, anchor.Y, p.X, p.Y).Canon()
	// Canon() produces an exclusive Max; the drag endpoint is inclusive.
	r.Max.X++
	r.Max.Y++
	r = r.Intersect(s.surface.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.surface.SetRGBA(x, y, c)
		}
	}
}

// fillCircle fills a disc centered at the anchor with radius equal to the
// Euclidean distance from anchor to p.
func (s *Session) fillCircle(anchor, p image.Point, c color.RGBA) {
	dx := float64(p.X - anchor.X)
	dy := float64(p.Y - anchor.Y)
	radius := math.Hypot(dx, dy)
	s.forEachDiscPixel(anchor, radius, func(x, y int) {
		s.surface.SetRGBA(x, y, c)
	})
}

// forEachDiscPixel visits every surface pixel within radius of center.
func (s *Session) forEachDiscPixel(center image.Point, radius float64, fn func(x, y int)) {
	if radius < 0.5 {
		radius = 0.5
	}
	b := s.surface.Bounds()
	ri := int(math.Ceil(radius))
	r2 := radius * radius

	minX := max(center.X-ri, b.Min.X)
	maxX := min(center.X+ri, b.Max.X-1)
	minY := max(center.Y-ri, b.Min.Y)
	maxY := min(center.Y+ri, b.Max.Y-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x - center.X)
			dy := float64(y - center.Y)
			if dx*dx+dy*dy <= r2 {
				fn(x, y)
			}
		}
	}
}

// forEachSegmentStep interpolates integer points from a to b, stepping one
// pixel at a time along the longer axis.
func forEachSegmentStep(a, b image.Point, fn func(image.Point)) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		fn(b)
		return
	}
	for i := 1; i <= steps; i++ {
		fn(image.Point{
			X: a.X + dx*i/steps,
			Y: a.Y + dy*i/steps,
		})
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
