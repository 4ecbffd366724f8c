// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/inkbrush-tui/internal/commands"
	"github.com/jeranaias/inkbrush-tui/internal/genai"
	"github.com/jeranaias/inkbrush-tui/internal/session"
	"github.com/jeranaias/inkbrush-tui/internal/ui/components"
	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Orchestration
	session *session.Session
	client  *genai.Client

	// Slash commands
	registry *commands.Registry
	parser   *commands.Parser
	cmdCtx   *commands.Context

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	statusBar *components.StatusBar
	imageView *components.ImageView

	// Markdown rendering for model text. Nil falls back to plain text.
	markdown *glamour.TermRenderer

	// busy is true while a generation request is in flight. Input is
	// rejected until the response lands; there is never more than one
	// outstanding request.
	busy bool

	modelName string
}

// New creates a chat model bound to a session and API client.
func New(theme *styles.Theme, sess *session.Session, client *genai.Client, modelName, exportDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe an edit, @key to reference, / for commands..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		markdown = nil
	}

	registry := commands.NewRegistry()

	return Model{
		theme:     theme,
		session:   sess,
		client:    client,
		registry:  registry,
		parser:    commands.NewParser(registry),
		cmdCtx:    &commands.Context{Session: sess, ExportDir: exportDir},
		viewport:  vp,
		input:     ti,
		spinner:   sp,
		statusBar: components.NewStatusBar(theme),
		imageView: components.NewImageView(),
		markdown:  markdown,
		modelName: modelName,
	}
}

// Session exposes the orchestrator core for the application model.
func (m Model) Session() *session.Session {
	return m.session
}

// Busy reports whether a generation request is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the layout for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Input line, its border, and the status bar sit below the viewport.
	viewportHeight := height - 3
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.input.Width = width - 4
	m.refreshViewport()
}
