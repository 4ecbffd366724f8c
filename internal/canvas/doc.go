// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canvas implements the mask-editing surface: a bounded pixel buffer
// with freehand and shape tools, an undo history of full-buffer snapshots,
// and diff-based mask synthesis.
//
// # State machine
//
// A Session is created over a pristine copy of the staged image (snapshot 0).
// Pointer events drive drawing:
//
//	PointerDown -> begin a stroke (brush/eraser) or record a shape anchor
//	PointerMove -> extend the stroke incrementally, or redraw a live shape
//	              preview on top of the last committed snapshot
//	PointerUp   -> commit the stroke/shape and push a new snapshot
//
// Undo pops the most recent snapshot but never removes snapshot 0, so the
// visible buffer can always be walked back to the pristine image.
//
// # Mask synthesis
//
// Finalize compares snapshot 0 against the current surface pixel by pixel.
// Any pixel whose four channels are not identical in both buffers becomes
// opaque white in the mask (the region to edit); identical pixels become
// opaque black. The colorized surface itself is kept as the human-viewable
// preview composite. A session finalized without any strokes yields an
// all-black mask; callers receive it as-is and decide what that means.
//
// The package has no rendering or terminal dependency. The UI layer maps
// terminal mouse cells to pixel coordinates and calls the pointer methods.
package canvas
