// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/genai"
	"github.com/jeranaias/inkbrush-tui/internal/prompt"
)

// =============================================================================
// SUBMIT PIPELINE
// =============================================================================

// Outcome classifies what a submit produced.
type Outcome int

const (
	// OutcomeNoop: nothing to do; no message was appended.
	OutcomeNoop Outcome = iota

	// OutcomeHelp: the help short-circuit fired; one assistant message was
	// appended and no model call happens.
	OutcomeHelp

	// OutcomeMissingRefs: the prompt references unknown keys; the user
	// message and one error message were appended and no model call happens.
	OutcomeMissingRefs

	// OutcomeRequest: the user message was appended, staged state was
	// consumed, and Parts is ready to send.
	OutcomeRequest
)

// Submission is the result of preparing a submit action.
type Submission struct {
	Outcome Outcome

	// Parts is the assembled request, set for OutcomeRequest. Its order is
	// the wire contract: text, [subject, mask], references.
	Parts []genai.Part

	// Missing lists the unresolved keys for OutcomeMissingRefs.
	Missing []string
}

// HelpText is the static instructional message shown by the help command.
const HelpText = `**inkbrush help**

Type a prompt and press enter to generate an image. Commands:

- Attach an image with ` + "`/attach <path>`" + `, then optionally draw a mask with ` + "`/mask`" + ` to restrict the edit region.
- Reference saved images inline as ` + "`@key`" + ` (save one with ` + "`/saveref <n> <key>`" + `).
- Manage references with ` + "`/refs`" + `, ` + "`/rename <old> <new>`" + `, ` + "`/delref <key>`" + `.
- Re-edit a result with ` + "`/edit <n>`" + `, export it with ` + "`/export <n>`" + `.

Type ` + "`/help`" + ` for the full command list.`

// Submit runs the orchestrator pipeline over the input text:
//
//  1. The literal word "help" (case-insensitive, trimmed) short-circuits to
//     the static help message without touching the resolver, the assembler,
//     or the staged image.
//  2. An empty prompt with nothing staged is ignored entirely.
//  3. Otherwise the user message is appended (showing the mask preview
//     composite when present), the staged image is consumed, references are
//     resolved, and the request parts are assembled.
//
// Submit never performs the model call; the caller sends Parts and routes
// the outcome through ApplyResult or ApplyError.
func (s *Session) Submit(input string) Submission {
	text := strings.TrimSpace(input)

	if strings.EqualFold(text, "help") {
		s.Conversation.AddAssistantMessage(HelpText)
		return Submission{Outcome: OutcomeHelp}
	}

	staged := s.staged
	if text == "" && staged == nil {
		return Submission{Outcome: OutcomeNoop}
	}

	// Render the user's message immediately and clear staged state before
	// the asynchronous call begins.
	if staged != nil {
		s.Conversation.AddUserMessage(text, staged.DisplayImage())
	} else {
		s.Conversation.AddUserMessage(text)
	}
	s.ClearStaged()

	resolution := s.resolver.Resolve(text)
	if len(resolution.Missing) > 0 {
		err := &prompt.MissingReferencesError{Keys: resolution.Missing}
		s.Conversation.AddErrorMessage(err.Error())
		return Submission{Outcome: OutcomeMissingRefs, Missing: resolution.Missing}
	}

	parts := s.assemble(text, staged, resolution.Resolved)
	if len(parts) == 0 {
		return Submission{Outcome: OutcomeNoop}
	}
	return Submission{Outcome: OutcomeRequest, Parts: parts}
}
