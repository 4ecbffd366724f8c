// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/refs")
	Name string

	// Aliases are alternative names (e.g., "/r")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/saveref <n> <key>")
	Usage string

	// MinArgs is the minimum number of arguments required
	MinArgs int

	// Handler executes the command
	Handler func(ctx *Context, args []string) tea.Cmd
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns every registered command sorted by name, for help display.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// HelpText renders the command list for the /help display.
func (r *Registry) HelpText() string {
	var b strings.Builder
	b.WriteString("**Commands**\n\n")
	for _, cmd := range r.All() {
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		b.WriteString("- `")
		b.WriteString(usage)
		b.WriteString("` — ")
		b.WriteString(cmd.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute runs a parsed command against the application context. Unknown
// commands and argument-count violations are reported as messages rather
// than errors so the chat view renders them like any other outcome.
func Execute(result ParseResult, ctx *Context) tea.Cmd {
	if result.Command == nil {
		name := result.CommandName
		return func() tea.Msg { return UnknownCommandMsg{Name: name} }
	}
	if len(result.Args) < result.Command.MinArgs {
		usage := result.Command.Usage
		return func() tea.Msg { return UsageErrorMsg{Usage: usage} }
	}
	return result.Command.Handler(ctx, result.Args)
}

// registerBuiltins registers the built-in command set.
func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
		Handler:     handleHelp,
	})
	r.Register(&Command{
		Name:        "/refs",
		Aliases:     []string{"/references"},
		Description: "List saved references, optionally filtered",
		Usage:       "/refs [filter]",
		Handler:     handleRefs,
	})
	r.Register(&Command{
		Name:        "/saveref",
		Description: "Save an output image of the last response as @key",
		Usage:       "/saveref <n> <key>",
		MinArgs:     2,
		Handler:     handleSaveRef,
	})
	r.Register(&Command{
		Name:        "/delref",
		Description: "Delete a saved reference",
		Usage:       "/delref <key>",
		MinArgs:     1,
		Handler:     handleDelRef,
	})
	r.Register(&Command{
		Name:        "/rename",
		Description: "Rename a saved reference",
		Usage:       "/rename <old> <new>",
		MinArgs:     2,
		Handler:     handleRename,
	})
	r.Register(&Command{
		Name:        "/attach",
		Aliases:     []string{"/upload"},
		Description: "Stage an image file for the next message",
		Usage:       "/attach <path>",
		MinArgs:     1,
		Handler:     handleAttach,
	})
	r.Register(&Command{
		Name:        "/unstage",
		Aliases:     []string{"/detach"},
		Description: "Remove the staged image",
		Handler:     handleUnstage,
	})
	r.Register(&Command{
		Name:        "/mask",
		Aliases:     []string{"/draw"},
		Description: "Draw an edit mask over the staged image",
		Handler:     handleMask,
	})
	r.Register(&Command{
		Name:        "/edit",
		Description: "Stage an output image of the last response for editing",
		Usage:       "/edit <n>",
		MinArgs:     1,
		Handler:     handleEdit,
	})
	r.Register(&Command{
		Name:        "/export",
		Aliases:     []string{"/save"},
		Description: "Export an output image of the last response to disk",
		Usage:       "/export <n> [path]",
		MinArgs:     1,
		Handler:     handleExport,
	})
	r.Register(&Command{
		Name:        "/clear",
		Description: "Clear the chat transcript",
		Handler:     handleClear,
	})
	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/exit", "/q"},
		Description: "Quit",
		Handler:     handleQuit,
	})
}
