// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/jeranaias/inkbrush-tui/internal/genai"

// defaultInstruction is the text sent when an image is staged but the user
// typed no prompt.
const defaultInstruction = "Edit the attached image."

// assemble builds the ordered part list for a request. The ordering is the
// one piece of the wire format that must be reproduced exactly:
//
//	[text] [subject, mask] [reference...]
//
// The model distinguishes "subject" from "region of interest" purely by
// position, so the subject image always precedes the mask, and references
// always follow both, in resolution order.
func (s *Session) assemble(text string, staged *StagedImage, resolvedKeys []string) []genai.Part {
	if text == "" && staged == nil {
		return nil
	}

	var parts []genai.Part

	if text == "" && staged != nil {
		text = defaultInstruction
	}
	if text != "" {
		parts = append(parts, genai.TextPart(text))
	}

	if staged != nil {
		parts = append(parts, genai.ImagePart(staged.Source))
		if staged.Mask != nil {
			parts = append(parts, genai.ImagePart(*staged.Mask))
		}
	}

	for _, key := range resolvedKeys {
		img, err := s.Store.Get(key)
		if err != nil {
			// Resolution ran just before assembly on the same store; a
			// missing key here would be a programming error, not user input.
			continue
		}
		parts = append(parts, genai.ImagePart(img))
	}
	return parts
}
