// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
	"github.com/jeranaias/inkbrush-tui/internal/model"
	"github.com/jeranaias/inkbrush-tui/internal/prompt"
	"github.com/jeranaias/inkbrush-tui/internal/refstore"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNothingStaged indicates an action that needs a staged image.
	ErrNothingStaged = errors.New("no image is staged")

	// ErrNoOutputs indicates an image action against an assistant message
	// without attachments (or no assistant message at all).
	ErrNoOutputs = errors.New("the last response has no images")

	// ErrBadImageIndex indicates an out-of-range output image index.
	ErrBadImageIndex = errors.New("no image with that number in the last response")
)

// =============================================================================
// STAGED IMAGE
// =============================================================================

// StagedImage is the image attached to the next outgoing request, with the
// optional mask pair produced by the canvas. At most one exists at a time;
// it is owned by the Session and replaced wholesale.
type StagedImage struct {
	// Source is the image being edited.
	Source imaging.Image

	// Mask is the black/white region mask, if one was drawn.
	Mask *imaging.Image

	// MaskPreview is the colorized composite rendered in place of Source
	// when showing the outgoing message to the user.
	MaskPreview *imaging.Image
}

// DisplayImage returns the image to render for this staged attachment: the
// mask preview composite when present, otherwise the raw source.
func (si *StagedImage) DisplayImage() imaging.Image {
	if si.MaskPreview != nil {
		return *si.MaskPreview
	}
	return si.Source
}

// HasMask reports whether a mask is attached.
func (si *StagedImage) HasMask() bool {
	return si.Mask != nil
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the orchestrator state: reference store, transcript, staged
// image, and the resolver wired over the store. All mutation happens on the
// UI event loop in direct response to user actions; no locking is needed.
type Session struct {
	Store        *refstore.Store
	Conversation *model.Conversation

	resolver *prompt.Resolver
	staged   *StagedImage
}

// New creates a session with an empty store and transcript.
func New() *Session {
	store := refstore.New()
	return &Session{
		Store:        store,
		Conversation: model.NewConversation(),
		resolver:     prompt.NewResolver(store),
	}
}

// =============================================================================
// STAGING
// =============================================================================

// Stage attaches an image to the next outgoing request, replacing any
// previously staged image (and its mask). The payload is decoded up front so
// malformed data fails here, not inside the mask editor or the request.
func (s *Session) Stage(img imaging.Image) error {
	if _, err := imaging.Decode(img); err != nil {
		return err
	}
	s.staged = &StagedImage{Source: img}
	return nil
}

// StageOutput re-stages the n-th (1-based) image of the most recent
// assistant message for further editing.
func (s *Session) StageOutput(n int) error {
	img, err := s.OutputImage(n)
	if err != nil {
		return err
	}
	return s.Stage(img)
}

// Staged returns the currently staged image, or nil.
func (s *Session) Staged() *StagedImage {
	return s.staged
}

// ClearStaged removes the staged image and any mask attached to it.
func (s *Session) ClearStaged() {
	s.staged = nil
}

// StagedSurface decodes the staged image into the pixel buffer the mask
// editor draws on. Fails with ErrNothingStaged when no image is staged,
// which callers treat as "refuse to open the editor".
func (s *Session) StagedSurface() (*image.RGBA, error) {
	if s.staged == nil {
		return nil, ErrNothingStaged
	}
	return imaging.Decode(s.staged.Source)
}

// AttachMask attaches a finalized mask pair to the staged image. A second
// mask replaces the first; the next request carries the latest pair only.
func (s *Session) AttachMask(mask, preview imaging.Image) error {
	if s.staged == nil {
		return ErrNothingStaged
	}
	s.staged.Mask = &mask
	s.staged.MaskPreview = &preview
	return nil
}

// =============================================================================
// OUTPUT IMAGE ACTIONS
// =============================================================================

// OutputImage returns the n-th (1-based) image attached to the most recent
// assistant message.
func (s *Session) OutputImage(n int) (imaging.Image, error) {
	last := s.Conversation.LastAssistant()
	if last == nil || !last.HasImages() {
		return imaging.Image{}, ErrNoOutputs
	}
	if n < 1 || n > len(last.Images) {
		return imaging.Image{}, fmt.Errorf("%w (have %d)", ErrBadImageIndex, len(last.Images))
	}
	return last.Images[n-1], nil
}

// SaveOutputAsReference saves the n-th output image of the last assistant
// message into the reference store under key.
func (s *Session) SaveOutputAsReference(n int, key string) error {
	img, err := s.OutputImage(n)
	if err != nil {
		return err
	}
	return s.Store.Save(key, img)
}

// =============================================================================
// RESPONSE HANDLING
// =============================================================================

// Fallback phrases used when the model response carries no text.
const (
	fallbackWithImages = "Here is the generated image."
	fallbackNoContent  = "No response."
)

// ApplyResult appends the model response to the transcript, substituting the
// fixed fallback phrase when the response carried no text.
func (s *Session) ApplyResult(text string, images []imaging.Image) *model.Message {
	if strings.TrimSpace(text) == "" {
		if len(images) > 0 {
			text = fallbackWithImages
		} else {
			text = fallbackNoContent
		}
	}
	return s.Conversation.AddAssistantMessage(text, images...)
}

// ApplyError appends a single error message describing a failed model call.
// The transcript is otherwise untouched; the failure never corrupts history.
func (s *Session) ApplyError(err error) *model.Message {
	return s.Conversation.AddErrorMessage("Generation failed: " + err.Error())
}
