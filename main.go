// inkbrush - A terminal chat client for conversational image editing.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/inkbrush-tui/internal/canvas"
	"github.com/jeranaias/inkbrush-tui/internal/commands"
	"github.com/jeranaias/inkbrush-tui/internal/config"
	"github.com/jeranaias/inkbrush-tui/internal/genai"
	"github.com/jeranaias/inkbrush-tui/internal/session"
	"github.com/jeranaias/inkbrush-tui/internal/ui/chat"
	"github.com/jeranaias/inkbrush-tui/internal/ui/maskedit"
	"github.com/jeranaias/inkbrush-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		configPath  = flag.String("config", "", "path to config file")
		modelName   = flag.String("model", "", "override the configured model")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("inkbrush %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "inkbrush requires an interactive terminal")
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *modelName != "" {
		cfg.API.Model = *modelName
	}

	client := genai.NewClient(&genai.ClientConfig{
		BaseURL:           cfg.API.BaseURL,
		Model:             cfg.API.Model,
		APIKey:            cfg.API.Key,
		Timeout:           time.Duration(cfg.API.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.API.RequestsPerMinute,
	})

	theme := styles.NewTheme()
	sess := session.New()
	app := newApp(theme, sess, chat.New(theme, sess, client, cfg.API.Model, cfg.Export.Dir))

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse drives the mask editor
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running inkbrush: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// viewState selects the active full-screen view.
type viewState int

const (
	viewChat viewState = iota
	viewMaskEdit
)

// app is the top-level Bubble Tea model. It owns view switching between
// the chat transcript and the mask editor.
type app struct {
	state  viewState
	theme  *styles.Theme
	sess   *session.Session
	chat   chat.Model
	editor maskedit.Model

	width  int
	height int
}

func newApp(theme *styles.Theme, sess *session.Session, chatModel chat.Model) *app {
	return &app{
		state: viewChat,
		theme: theme,
		sess:  sess,
		chat:  chatModel,
	}
}

// Init implements tea.Model.
func (a *app) Init() tea.Cmd {
	return a.chat.Init()
}

// Update implements tea.Model.
func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.theme.SetSize(msg.Width, msg.Height)
		a.chat.SetSize(msg.Width, msg.Height)
		if a.state == viewMaskEdit {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case commands.OpenMaskEditorMsg:
		return a.openMaskEditor()

	case maskedit.SavedMsg:
		a.state = viewChat
		if err := a.sess.AttachMask(msg.Result.Mask, msg.Result.Preview); err != nil {
			a.sess.Conversation.AddErrorMessage(fmt.Sprintf("Could not attach mask: %v", err))
		} else {
			a.sess.Conversation.AddSystemMessage("Mask attached to the staged image.")
		}
		return a.forwardToChat(nil)

	case maskedit.CancelledMsg:
		a.state = viewChat
		a.sess.Conversation.AddSystemMessage("Mask editing cancelled.")
		return a.forwardToChat(nil)

	case maskedit.FailedMsg:
		a.state = viewChat
		a.sess.Conversation.AddErrorMessage(fmt.Sprintf("Mask synthesis failed: %v", msg.Err))
		return a.forwardToChat(nil)
	}

	if a.state == viewMaskEdit {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.chat, cmd = a.chat.Update(msg)
	return a, cmd
}

// openMaskEditor switches to the mask editor over the staged image.
// Refused when nothing is staged.
func (a *app) openMaskEditor() (tea.Model, tea.Cmd) {
	surface, err := a.sess.StagedSurface()
	if err != nil {
		a.sess.Conversation.AddErrorMessage("Nothing is staged. Use /attach or /edit first.")
		return a.forwardToChat(nil)
	}

	drawing, err := canvas.NewSession(surface)
	if err != nil {
		a.sess.Conversation.AddErrorMessage(fmt.Sprintf("Could not open mask editor: %v", err))
		return a.forwardToChat(nil)
	}

	a.editor = maskedit.New(drawing, a.theme)
	a.editor.SetSize(a.width, a.height)
	a.state = viewMaskEdit
	return a, nil
}

// forwardToChat nudges the chat view to re-render its transcript after
// the app model touched the conversation directly.
func (a *app) forwardToChat(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	var chatCmd tea.Cmd
	a.chat, chatCmd = a.chat.Update(chat.RefreshMsg{})
	return a, tea.Batch(cmd, chatCmd)
}

// View implements tea.Model.
func (a *app) View() string {
	if a.state == viewMaskEdit {
		return a.editor.View()
	}
	return a.chat.View()
}
