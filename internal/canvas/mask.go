// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canvas

import (
	"image"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// MASK SYNTHESIS
// =============================================================================

// MaskResult is the output of finalizing a session: the binary mask the
// model consumes plus the colorized composite shown to the user.
type MaskResult struct {
	// Mask is pure black/white, opaque, same dimensions as the source.
	// White marks the region to edit.
	Mask imaging.Image

	// Preview is the surface as drawn (source image plus colored strokes),
	// used in place of the raw staged image when rendering the outgoing
	// message.
	Preview imaging.Image
}

// Finalize synthesizes the binary mask by diffing the pristine snapshot
// against the current surface. A pixel whose four channels all match is
// black; any difference makes it white. A session with no strokes therefore
// yields an all-black mask, which is returned as-is rather than being
// special-cased into "no mask".
func (s *Session) Finalize() (MaskResult, error) {
	if s.drawing {
		s.abortStroke()
	}

	mask := DiffMask(s.snapshots[0], s.surface)

	maskImg, err := imaging.EncodePNG(mask)
	if err != nil {
		return MaskResult{}, err
	}
	previewImg, err := imaging.EncodePNG(s.surface)
	if err != nil {
		return MaskResult{}, err
	}
	return MaskResult{Mask: maskImg, Preview: previewImg}, nil
}

// DiffMask produces the black/white difference mask between a pristine
// buffer and a drawn buffer of the same dimensions. Both buffers must share
// bounds; the session guarantees this by construction.
func DiffMask(pristine, drawn *image.RGBA) *image.RGBA {
	b := pristine.Bounds()
	mask := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for i := 0; i < len(pristine.Pix); i += 4 {
		changed := pristine.Pix[i] != drawn.Pix[i] ||
			pristine.Pix[i+1] != drawn.Pix[i+1] ||
			pristine.Pix[i+2] != drawn.Pix[i+2] ||
			pristine.Pix[i+3] != drawn.Pix[i+3]

		if changed {
			mask.Pix[i] = 0xFF
			mask.Pix[i+1] = 0xFF
			mask.Pix[i+2] = 0xFF
		}
		mask.Pix[i+3] = 0xFF
	}
	return mask
}
