// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package imaging provides image payload handling shared by the canvas,
// the reference store, and the model client: decode/encode, base64 and
// data-URL boundaries, and dimension-safe downscaling.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/draw"
	_ "image/gif"  // register decoder for image.Decode
	_ "image/jpeg" // register decoder for image.Decode
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidEncoding indicates image bytes that could not be decoded.
	ErrInvalidEncoding = errors.New("invalid image encoding")

	// ErrEmptyImage indicates an image with no payload bytes.
	ErrEmptyImage = errors.New("empty image payload")

	// ErrTooLarge indicates an image exceeding MaxDimension on either axis.
	ErrTooLarge = errors.New("image dimensions exceed maximum")
)

// MaxDimension is the maximum allowed width or height for a staged or
// reference image (4K). Larger inputs are rejected rather than silently
// resized so the mask always matches the source pixel-for-pixel.
const MaxDimension = 4096

// =============================================================================
// IMAGE PAYLOAD
// =============================================================================

// Image is an encoded image payload plus its mime type. This is the unit
// stored in the reference store, staged for requests, and carried on chat
// messages. The payload is the raw encoded bytes (PNG, JPEG, ...), never a
// base64 string or data URL; those exist only at the wire boundary.
type Image struct {
	Data     []byte
	MimeType string
}

// IsZero reports whether the image carries no payload.
func (i Image) IsZero() bool {
	return len(i.Data) == 0
}

// MimeToExt maps a mime type to a file extension for exports.
func MimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// =============================================================================
// DECODE / ENCODE
// =============================================================================

// Decode decodes an image payload into an RGBA pixel buffer. The returned
// buffer is always *image.RGBA with its origin at (0,0), regardless of the
// source format, so the canvas can index pixels directly.
func Decode(img Image) (*image.RGBA, error) {
	if img.IsZero() {
		return nil, ErrEmptyImage
	}
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, errors.Join(ErrInvalidEncoding, err)
	}
	b := src.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return nil, ErrTooLarge
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// EncodePNG encodes a pixel buffer as a PNG payload.
func EncodePNG(m image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return Image{}, err
	}
	return Image{Data: buf.Bytes(), MimeType: "image/png"}, nil
}

// =============================================================================
// WIRE BOUNDARY (base64 / data URL)
// =============================================================================

// ToBase64 returns the bare base64 payload for the wire. Data-URL envelopes
// never appear here; the model API wants the raw encoded payload only.
func ToBase64(img Image) string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// FromBase64 decodes a base64 payload (optionally wrapped in a data-URL
// envelope) into an Image. Returns ErrInvalidEncoding on malformed input.
func FromBase64(data, mimeType string) (Image, error) {
	payload, embeddedMime := StripDataURL(data)
	if embeddedMime != "" {
		mimeType = embeddedMime
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, errors.Join(ErrInvalidEncoding, err)
	}
	if len(raw) == 0 {
		return Image{}, ErrEmptyImage
	}
	return Image{Data: raw, MimeType: mimeType}, nil
}

// StripDataURL removes a "data:<mime>;base64," envelope if present and
// returns the bare payload plus the embedded mime type (empty if none).
func StripDataURL(s string) (payload, mimeType string) {
	if !strings.HasPrefix(s, "data:") {
		return s, ""
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return s, ""
	}
	header := s[len("data:"):comma]
	mimeType = strings.TrimSuffix(header, ";base64")
	return s[comma+1:], mimeType
}

// =============================================================================
// SCALING
// =============================================================================

// Scale resamples src to exactly w x h using bilinear interpolation.
// Used by the terminal renderer to fit images into the cell grid.
func Scale(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// CloneRGBA returns a deep copy of an RGBA buffer. Snapshots in the canvas
// history rely on this being a full pixel copy, never a shared backing array.
func CloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
