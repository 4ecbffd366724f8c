// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package maskedit implements the full-screen mask drawing view.
//
// The staged image is rendered into terminal cells with half-block
// characters and the user paints over it with the mouse. Strokes are
// recorded on a canvas session; saving synthesizes a black-and-white
// edit mask from the difference between the pristine and drawn pixels.
package maskedit
