// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the append-only chat transcript. Rendering order is
// chronological send order; messages are never edited or removed, only
// appended (Clear starts a fresh transcript).
type Conversation struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// Append adds a message to the transcript.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// AddUserMessage appends a user message and returns it.
func (c *Conversation) AddUserMessage(content string, images ...imaging.Image) *Message {
	msg := NewUserMessage(content, images...)
	c.Append(msg)
	return msg
}

// AddAssistantMessage appends an assistant message and returns it.
func (c *Conversation) AddAssistantMessage(content string, images ...imaging.Image) *Message {
	msg := NewAssistantMessage(content, images...)
	c.Append(msg)
	return msg
}

// AddSystemMessage appends a system message and returns it.
func (c *Conversation) AddSystemMessage(content string) *Message {
	msg := NewSystemMessage(content)
	c.Append(msg)
	return msg
}

// AddErrorMessage appends a system message flagged as an error.
func (c *Conversation) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	c.Append(msg)
	return msg
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// Last returns the most recent message, or nil for an empty transcript.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// LastAssistant returns the most recent assistant message, or nil if none
// exists. Image action commands (/edit, /saveref, /export) index into its
// attachments.
func (c *Conversation) LastAssistant() *Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i]
		}
	}
	return nil
}

// Clear starts a fresh transcript.
func (c *Conversation) Clear() {
	c.Messages = make([]*Message, 0)
	c.UpdatedAt = time.Now()
}
