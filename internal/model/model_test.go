// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_Identity(t *testing.T) {
	a := NewUserMessage("hello")
	b := NewUserMessage("hello")

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("message IDs not unique: %q vs %q", a.ID, b.ID)
	}
	if a.Role != RoleUser {
		t.Errorf("Role = %v, want user", a.Role)
	}
}

func TestMessage_Preview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"short content unchanged", "hi", 10, "hi"},
		{"long content truncated", "this is a long message", 10, "this is..."},
		{"unicode safe", "héllo wörld über", 8, "héllo..."},
		{"tiny budget", "abcdef", 2, "ab"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := NewUserMessage(tc.content)
			if got := msg.Preview(tc.maxLen); got != tc.want {
				t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestMessage_IsEmpty(t *testing.T) {
	if !NewUserMessage("").IsEmpty() {
		t.Error("empty message should be empty")
	}
	withImage := NewUserMessage("", imaging.Image{Data: []byte{1}, MimeType: "image/png"})
	if withImage.IsEmpty() {
		t.Error("message with attachment should not be empty")
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendOnlyOrder(t *testing.T) {
	c := NewConversation()
	c.AddUserMessage("first")
	c.AddAssistantMessage("second")
	c.AddSystemMessage("third")

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	want := []string{"first", "second", "third"}
	for i, msg := range c.Messages {
		if msg.Content != want[i] {
			t.Errorf("Messages[%d] = %q, want %q", i, msg.Content, want[i])
		}
	}
}

func TestConversation_LastAssistant(t *testing.T) {
	c := NewConversation()
	if c.LastAssistant() != nil {
		t.Error("LastAssistant() on empty transcript should be nil")
	}

	c.AddAssistantMessage("old")
	c.AddUserMessage("question")
	c.AddAssistantMessage("new")
	c.AddSystemMessage("note")

	if got := c.LastAssistant(); got == nil || got.Content != "new" {
		t.Errorf("LastAssistant() = %v, want the newest assistant message", got)
	}
}

func TestConversation_ErrorMessagesFlagged(t *testing.T) {
	c := NewConversation()
	c.AddErrorMessage("boom")
	if last := c.Last(); !last.IsError || last.Role != RoleSystem {
		t.Errorf("AddErrorMessage() produced %+v", last)
	}
}
