// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inkbrush-tui/internal/commands"
	"github.com/jeranaias/inkbrush-tui/internal/genai"
	"github.com/jeranaias/inkbrush-tui/internal/session"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GenerateResultMsg:
		m.busy = false
		m.session.ApplyResult(msg.Result.Text, msg.Result.Images)
		m.refreshViewport()
		return m, nil

	case GenerateErrorMsg:
		m.busy = false
		m.session.ApplyError(msg.Err)
		m.refreshViewport()
		return m, nil

	case RefreshMsg:
		m.refreshViewport()
		return m, nil
	}

	if cmd, handled := m.handleCommandMsg(msg); handled {
		m.refreshViewport()
		return m, cmd
	}

	// Scrolling and other component messages.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		if m.busy {
			return m, nil
		}
		return m.handleSubmit()

	case "tab":
		if !m.busy {
			m.completeReference()
		}
		return m, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.busy {
		// Single in-flight request: the input line is frozen until the
		// response lands.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes the input line to the command registry or the
// generation pipeline.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := m.input.Value()
	m.input.Reset()

	if commands.IsCommand(text) {
		result := m.parser.Parse(text)
		return m, commands.Execute(result, m.cmdCtx)
	}

	sub := m.session.Submit(text)
	m.refreshViewport()

	switch sub.Outcome {
	case session.OutcomeRequest:
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.generateCmd(sub.Parts), textinput.Blink)
	default:
		// Noop, help, and missing-reference outcomes only touch the
		// transcript.
		return m, nil
	}
}

// completeReference expands a trailing @prefix in the input line to the
// first saved reference key that starts with it, in insertion order.
func (m *Model) completeReference() {
	text := m.input.Value()
	at := strings.LastIndexByte(text, '@')
	if at < 0 {
		return
	}
	prefix := text[at+1:]
	if strings.ContainsAny(prefix, " \t") {
		return
	}

	for _, entry := range m.session.Store.List() {
		if strings.HasPrefix(entry.Key, prefix) && entry.Key != prefix {
			m.input.SetValue(text[:at+1] + entry.Key)
			m.input.CursorEnd()
			return
		}
	}
}

// generateCmd issues the API call off the UI loop.
func (m Model) generateCmd(parts []genai.Part) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Generate(context.Background(), parts)
		if err != nil {
			return GenerateErrorMsg{Err: err}
		}
		return GenerateResultMsg{Result: result}
	}
}

// =============================================================================
// COMMAND OUTCOME HANDLING
// =============================================================================

// handleCommandMsg renders slash command outcomes into the transcript.
// Each command produces exactly one system message.
func (m *Model) handleCommandMsg(msg tea.Msg) (tea.Cmd, bool) {
	conv := m.session.Conversation

	switch msg := msg.(type) {
	case commands.UnknownCommandMsg:
		conv.AddSystemMessage(fmt.Sprintf("Unknown command %s. Try /help.", msg.Name))

	case commands.UsageErrorMsg:
		conv.AddSystemMessage("Usage: " + msg.Usage)

	case commands.HelpRequestedMsg:
		conv.AddSystemMessage(m.registry.HelpText())

	case commands.RefListMsg:
		conv.AddSystemMessage(formatRefList(msg))

	case commands.RefSavedMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Could not save reference: %v", msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Saved reference @%s.", msg.Key))
		}

	case commands.RefDeletedMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Could not delete reference: %v", msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Deleted reference @%s.", msg.Key))
		}

	case commands.RefRenamedMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Could not rename reference: %v", msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Renamed @%s to @%s.", msg.OldKey, msg.NewKey))
		}

	case commands.StagedFileMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Could not stage %s: %v", msg.Path, msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Staged %s for the next message.", msg.Path))
		}

	case commands.UnstagedMsg:
		if msg.WasStaged {
			conv.AddSystemMessage("Removed the staged image.")
		} else {
			conv.AddSystemMessage("Nothing is staged.")
		}

	case commands.RestagedMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Could not stage output %d: %v", msg.Index, msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Staged output image %d for editing.", msg.Index))
		}

	case commands.ExportCompleteMsg:
		if msg.Err != nil {
			conv.AddErrorMessage(fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			conv.AddSystemMessage(fmt.Sprintf("Exported to %s.", msg.Path))
		}

	case commands.ClearChatMsg:
		conv.Clear()

	default:
		return nil, false
	}
	return nil, true
}

// formatRefList renders /refs output.
func formatRefList(msg commands.RefListMsg) string {
	if len(msg.Entries) == 0 {
		if msg.Filter != "" {
			return fmt.Sprintf("No references match %q.", msg.Filter)
		}
		return "No saved references. Use /saveref to create one."
	}

	var b strings.Builder
	b.WriteString("**Saved references**\n\n")
	for _, entry := range msg.Entries {
		fmt.Fprintf(&b, "- @%s (%s, %d bytes)\n", entry.Key, entry.Image.MimeType, len(entry.Image.Data))
	}
	return b.String()
}
