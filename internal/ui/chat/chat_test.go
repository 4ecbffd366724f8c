// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"image"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inkbrush-tui/internal/genai"
	"github.com/jeranaias/inkbrush-tui/internal/imaging"
	"github.com/jeranaias/inkbrush-tui/internal/model"
	"github.com/jeranaias/inkbrush-tui/internal/session"
	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
)

func newModelForTest(t *testing.T) Model {
	t.Helper()
	client := genai.NewClient(&genai.ClientConfig{
		BaseURL: "http://127.0.0.1:0",
		Model:   "test-model",
		APIKey:  "test-key",
	})
	m := New(styles.NewTheme(), session.New(), client, "test-model", t.TempDir())
	m.SetSize(80, 24)
	return m
}

func pressEnter(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func testPNG(t *testing.T) imaging.Image {
	t.Helper()
	img, err := imaging.EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	return img
}

func TestSubmitTextStartsGeneration(t *testing.T) {
	m := newModelForTest(t)
	m, cmd := pressEnter(t, m, "draw a fox")

	if !m.Busy() {
		t.Error("expected busy after submitting text")
	}
	if cmd == nil {
		t.Error("expected generation command")
	}
	if m.session.Conversation.Len() != 1 {
		t.Errorf("conversation len = %d, want 1 user message", m.session.Conversation.Len())
	}
}

func TestSubmitBlockedWhileBusy(t *testing.T) {
	m := newModelForTest(t)
	m, _ = pressEnter(t, m, "first")
	before := m.session.Conversation.Len()

	m, cmd := pressEnter(t, m, "second")
	if cmd != nil {
		t.Error("expected no command while busy")
	}
	if m.session.Conversation.Len() != before {
		t.Error("busy submit should not touch the transcript")
	}
}

func TestGenerateResultAppliesResponse(t *testing.T) {
	m := newModelForTest(t)
	m, _ = pressEnter(t, m, "draw a fox")

	m, _ = m.Update(GenerateResultMsg{Result: &genai.Result{Text: "here you go"}})

	if m.Busy() {
		t.Error("busy should clear after a result")
	}
	last := m.session.Conversation.Last()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatal("expected an assistant message")
	}
	if last.Content != "here you go" {
		t.Errorf("Content = %q", last.Content)
	}
}

func TestGenerateErrorAppliesError(t *testing.T) {
	m := newModelForTest(t)
	m, _ = pressEnter(t, m, "draw a fox")

	m, _ = m.Update(GenerateErrorMsg{Err: errors.New("boom")})

	if m.Busy() {
		t.Error("busy should clear after an error")
	}
	last := m.session.Conversation.Last()
	if last == nil || !last.IsError {
		t.Fatal("expected an error message")
	}
	if !strings.Contains(last.Content, "boom") {
		t.Errorf("Content = %q, want underlying error text", last.Content)
	}
}

func TestHelpDoesNotStartGeneration(t *testing.T) {
	m := newModelForTest(t)
	m, _ = pressEnter(t, m, "help")

	if m.Busy() {
		t.Error("help must not start a request")
	}
	last := m.session.Conversation.Last()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatal("expected help rendered as a single assistant message")
	}
}

func TestMissingReferenceReportsOneMessage(t *testing.T) {
	m := newModelForTest(t)
	m, cmd := pressEnter(t, m, "use @nope here")

	if m.Busy() || cmd != nil {
		t.Error("missing reference must not start a request")
	}
	last := m.session.Conversation.Last()
	if last == nil || !last.IsError {
		t.Fatal("expected an error message")
	}
	if !strings.Contains(last.Content, "@nope") {
		t.Errorf("Content = %q, want missing key named", last.Content)
	}
}

func TestSlashCommandRouted(t *testing.T) {
	m := newModelForTest(t)
	m, cmd := pressEnter(t, m, "/refs")
	if cmd == nil {
		t.Fatal("expected a command for /refs")
	}

	m, _ = m.Update(cmd())
	last := m.session.Conversation.Last()
	if last == nil || last.Role != model.RoleSystem {
		t.Fatal("expected a system message from /refs")
	}
	if !strings.Contains(last.Content, "No saved references") {
		t.Errorf("Content = %q", last.Content)
	}
}

func TestUnknownCommandMessage(t *testing.T) {
	m := newModelForTest(t)
	m, cmd := pressEnter(t, m, "/bogus")
	m, _ = m.Update(cmd())

	last := m.session.Conversation.Last()
	if last == nil || !strings.Contains(last.Content, "/bogus") {
		t.Fatal("expected unknown command named in transcript")
	}
}

func TestClearChatEmptiesTranscript(t *testing.T) {
	m := newModelForTest(t)
	m.session.Conversation.AddUserMessage("hi")

	m, cmd := pressEnter(t, m, "/clear")
	m, _ = m.Update(cmd())

	if m.session.Conversation.Len() != 0 {
		t.Errorf("conversation len = %d, want 0", m.session.Conversation.Len())
	}
}

func TestTabCompletesReference(t *testing.T) {
	m := newModelForTest(t)
	if err := m.session.Store.Save("hero", testPNG(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	m.input.SetValue("blend with @he")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "blend with @hero" {
		t.Errorf("input = %q, want %q", got, "blend with @hero")
	}
}

func TestTabWithoutMentionIsNoop(t *testing.T) {
	m := newModelForTest(t)
	m.input.SetValue("plain text")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != "plain text" {
		t.Errorf("input = %q, want unchanged", got)
	}
}

func TestViewRendersTranscript(t *testing.T) {
	m := newModelForTest(t)
	m.session.ApplyResult("response text", []imaging.Image{testPNG(t)})
	m.refreshViewport()

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty string")
	}
}
