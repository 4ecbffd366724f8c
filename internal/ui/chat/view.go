// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/model"
	"github.com/jeranaias/inkbrush-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// Maximum cell box for inline image previews in the transcript.
const (
	previewMaxCols = 48
	previewMaxRows = 12
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.inputLine())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// inputLine renders the prompt or the busy spinner.
func (m Model) inputLine() string {
	if m.busy {
		return m.theme.InputContainer.Width(m.width).
			Render(m.spinner.View() + " Generating...")
	}
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// statusLine renders the bottom status bar.
func (m Model) statusLine() string {
	m.statusBar.Model = m.modelName
	m.statusBar.RefCount = m.session.Store.Len()

	staged := m.session.Staged()
	m.statusBar.Staged = staged != nil
	m.statusBar.Masked = staged != nil && staged.HasMask()

	if m.busy {
		m.statusBar.Status = components.StatusGenerating
	} else {
		m.statusBar.Status = components.StatusReady
	}
	return m.statusBar.Render(m.width)
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders every message in the conversation.
func (m *Model) renderTranscript() string {
	var b strings.Builder
	for i, msg := range m.session.Conversation.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage renders a single message with label, body, and any
// attached images.
func (m *Model) renderMessage(msg *model.Message) string {
	var b strings.Builder

	switch {
	case msg.Role == model.RoleUser:
		b.WriteString(m.theme.UserLabel.Render(msg.Role.DisplayName()))
	case msg.IsError:
		b.WriteString(m.theme.ErrorText.Render(msg.Role.DisplayName()))
	case msg.Role == model.RoleSystem:
		b.WriteString(m.theme.SystemLabel.Render(msg.Role.DisplayName()))
	default:
		b.WriteString(m.theme.ModelLabel.Render(msg.Role.DisplayName()))
	}
	b.WriteString(" ")
	b.WriteString(m.theme.Timestamp.Render(msg.Timestamp.Format("15:04:05")))
	b.WriteString("\n")

	body := m.renderBody(msg)
	switch {
	case msg.IsError:
		b.WriteString(m.theme.SystemBubble.Render(m.theme.ErrorText.Render(body)))
	case msg.Role == model.RoleUser:
		b.WriteString(m.theme.UserBubble.Render(body))
	case msg.Role == model.RoleSystem:
		b.WriteString(m.theme.SystemBubble.Render(body))
	default:
		b.WriteString(m.theme.ModelBubble.Render(body))
	}

	for i, img := range msg.Images {
		b.WriteString("\n")
		rendered := m.imageView.Render(img, previewMaxCols, previewMaxRows)
		if rendered == "" {
			b.WriteString(m.theme.ImageCaption.Render(fmt.Sprintf("[image %d: %s]", i+1, img.MimeType)))
			continue
		}
		b.WriteString(rendered)
		b.WriteString("\n")
		b.WriteString(m.theme.ImageCaption.Render(fmt.Sprintf("image %d (%s)", i+1, img.MimeType)))
	}
	return b.String()
}

// renderBody renders message text, with markdown for model responses.
func (m *Model) renderBody(msg *model.Message) string {
	if msg.Content == "" {
		return ""
	}
	if msg.Role == model.RoleAssistant && !msg.IsError && m.markdown != nil {
		if rendered, err := m.markdown.Render(msg.Content); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	if msg.Role == model.RoleSystem && m.markdown != nil {
		if rendered, err := m.markdown.Render(msg.Content); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return msg.Content
}
