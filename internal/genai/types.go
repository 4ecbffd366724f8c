// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the HTTP client for a Gemini-style multimodal
// generateContent API.
package genai

import (
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// PARTS
// =============================================================================

// Part is one unit of a multimodal request or response: either a text
// segment or an inline image payload. Exactly one field is set.
//
// The order of parts is load-bearing: the model distinguishes the edit
// subject from the mask (and both from reference images) purely by position,
// so callers must never reorder an assembled part list.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries an inline image as bare base64 plus its mime type. Data-URL
// envelopes never appear on the wire.
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart builds an inline image part from a raw payload, base64-encoding
// it for the wire and carrying the mime type verbatim.
func ImagePart(img imaging.Image) Part {
	return Part{InlineData: &Blob{
		MimeType: img.MimeType,
		Data:     imaging.ToBase64(img),
	}}
}

// IsImage reports whether the part carries an image payload.
func (p Part) IsImage() bool {
	return p.InlineData != nil
}

// =============================================================================
// RESULT
// =============================================================================

// Result is a model response split into its text and image components: all
// text segments concatenated in order, and the output images in response
// order as raw payloads.
type Result struct {
	Text   string
	Images []imaging.Image
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// content is one turn of a generateContent conversation.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// generationConfig requests the response modalities.
type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// generateRequest is the request body for models/{model}:generateContent.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// generateResponse is the response body for models/{model}:generateContent.
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// apiError is the error envelope returned by the API on failure.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// splitResult converts a response candidate into a Result. Text segments are
// concatenated; image payloads are decoded from base64.
func splitResult(resp *generateResponse) (*Result, error) {
	if len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	result := &Result{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
		if part.InlineData != nil {
			img, err := imaging.FromBase64(part.InlineData.Data, part.InlineData.MimeType)
			if err != nil {
				return nil, &ClientError{
					Type:    ErrTypeInvalidResponse,
					Message: "malformed image in response",
					Cause:   err,
				}
			}
			result.Images = append(result.Images, img)
		}
	}
	result.Text = text.String()
	return result, nil
}
