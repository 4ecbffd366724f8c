// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
	"github.com/jeranaias/inkbrush-tui/internal/session"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newContext(t *testing.T) *Context {
	t.Helper()
	return &Context{Session: session.New(), ExportDir: t.TempDir()}
}

func pngImage(t *testing.T) imaging.Image {
	t.Helper()
	img, err := imaging.EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	return img
}

// runCmd executes a tea.Cmd synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParserParse(t *testing.T) {
	parser := NewParser(NewRegistry())

	tests := []struct {
		name        string
		input       string
		isCommand   bool
		commandName string
		wantArgs    []string
		matched     bool
	}{
		{
			name:  "plain text",
			input: "make the sky pink",
		},
		{
			name:        "bare help",
			input:       "/help",
			isCommand:   true,
			commandName: "/help",
			matched:     true,
		},
		{
			name:        "alias resolves",
			input:       "/q",
			isCommand:   true,
			commandName: "/q",
			matched:     true,
		},
		{
			name:        "args split on whitespace",
			input:       "/saveref 2 hero",
			isCommand:   true,
			commandName: "/saveref",
			wantArgs:    []string{"2", "hero"},
			matched:     true,
		},
		{
			name:        "quoted path stays whole",
			input:       `/attach "my photos/cat 1.png"`,
			isCommand:   true,
			commandName: "/attach",
			wantArgs:    []string{"my photos/cat 1.png"},
			matched:     true,
		},
		{
			name:        "unknown command",
			input:       "/bogus",
			isCommand:   true,
			commandName: "/bogus",
		},
		{
			name:        "leading whitespace trimmed",
			input:       "   /clear  ",
			isCommand:   true,
			commandName: "/clear",
			matched:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse(tt.input)
			if result.IsCommand != tt.isCommand {
				t.Errorf("IsCommand = %v, want %v", result.IsCommand, tt.isCommand)
			}
			if result.CommandName != tt.commandName {
				t.Errorf("CommandName = %q, want %q", result.CommandName, tt.commandName)
			}
			if (result.Command != nil) != tt.matched {
				t.Errorf("Command matched = %v, want %v", result.Command != nil, tt.matched)
			}
			if len(result.Args) != len(tt.wantArgs) {
				t.Fatalf("Args = %v, want %v", result.Args, tt.wantArgs)
			}
			for i, arg := range tt.wantArgs {
				if result.Args[i] != arg {
					t.Errorf("Args[%d] = %q, want %q", i, result.Args[i], arg)
				}
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	if !IsCommand("  /help") {
		t.Error("IsCommand should tolerate leading whitespace")
	}
	if IsCommand("help") {
		t.Error("plain text is not a command")
	}
}

// =============================================================================
// EXECUTION TESTS
// =============================================================================

func TestExecuteUnknownCommand(t *testing.T) {
	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/frobnicate"), newContext(t)))

	unknown, ok := msg.(UnknownCommandMsg)
	if !ok {
		t.Fatalf("msg = %T, want UnknownCommandMsg", msg)
	}
	if unknown.Name != "/frobnicate" {
		t.Errorf("Name = %q, want %q", unknown.Name, "/frobnicate")
	}
}

func TestExecuteTooFewArgs(t *testing.T) {
	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/saveref 1"), newContext(t)))

	usage, ok := msg.(UsageErrorMsg)
	if !ok {
		t.Fatalf("msg = %T, want UsageErrorMsg", msg)
	}
	if usage.Usage != "/saveref <n> <key>" {
		t.Errorf("Usage = %q", usage.Usage)
	}
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestHandleRefsFilters(t *testing.T) {
	ctx := newContext(t)
	img := pngImage(t)
	for _, key := range []string{"cat", "catalog", "dog"} {
		if err := ctx.Session.Store.Save(key, img); err != nil {
			t.Fatalf("Save(%q) error = %v", key, err)
		}
	}

	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/refs cat"), ctx))

	list, ok := msg.(RefListMsg)
	if !ok {
		t.Fatalf("msg = %T, want RefListMsg", msg)
	}
	if list.Filter != "cat" {
		t.Errorf("Filter = %q, want %q", list.Filter, "cat")
	}
	if len(list.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(list.Entries))
	}
}

func TestHandleAttachStagesFile(t *testing.T) {
	ctx := newContext(t)
	img := pngImage(t)
	path := filepath.Join(t.TempDir(), "subject.png")
	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/attach "+path), ctx))

	staged, ok := msg.(StagedFileMsg)
	if !ok {
		t.Fatalf("msg = %T, want StagedFileMsg", msg)
	}
	if staged.Err != nil {
		t.Fatalf("Err = %v", staged.Err)
	}
	if ctx.Session.Staged() == nil {
		t.Error("expected an image staged after /attach")
	}
}

func TestHandleAttachMissingFile(t *testing.T) {
	parser := NewParser(NewRegistry())
	ctx := newContext(t)
	msg := runCmd(t, Execute(parser.Parse("/attach /no/such/file.png"), ctx))

	staged, ok := msg.(StagedFileMsg)
	if !ok {
		t.Fatalf("msg = %T, want StagedFileMsg", msg)
	}
	if staged.Err == nil {
		t.Error("expected an error for missing file")
	}
	if ctx.Session.Staged() != nil {
		t.Error("nothing should be staged on failure")
	}
}

func TestHandleUnstage(t *testing.T) {
	ctx := newContext(t)
	if err := ctx.Session.Stage(pngImage(t)); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/unstage"), ctx))

	unstaged := msg.(UnstagedMsg)
	if !unstaged.WasStaged {
		t.Error("WasStaged = false, want true")
	}
	if ctx.Session.Staged() != nil {
		t.Error("staged image should be gone")
	}

	msg = runCmd(t, Execute(parser.Parse("/unstage"), ctx))
	if msg.(UnstagedMsg).WasStaged {
		t.Error("second /unstage should report nothing staged")
	}
}

func TestHandleSaveRefBadIndex(t *testing.T) {
	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/saveref zero hero"), newContext(t)))

	saved, ok := msg.(RefSavedMsg)
	if !ok {
		t.Fatalf("msg = %T, want RefSavedMsg", msg)
	}
	if saved.Err == nil {
		t.Error("expected an error for non-numeric index")
	}
}

func TestHandleExportWritesFile(t *testing.T) {
	ctx := newContext(t)
	ctx.Session.ApplyResult("done", []imaging.Image{pngImage(t)})

	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/export 1"), ctx))

	exported, ok := msg.(ExportCompleteMsg)
	if !ok {
		t.Fatalf("msg = %T, want ExportCompleteMsg", msg)
	}
	if exported.Err != nil {
		t.Fatalf("Err = %v", exported.Err)
	}
	if _, err := os.Stat(exported.Path); err != nil {
		t.Errorf("expected exported file at %q: %v", exported.Path, err)
	}
}

func TestHandleExportNoOutputs(t *testing.T) {
	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/export 1"), newContext(t)))

	exported := msg.(ExportCompleteMsg)
	if exported.Err == nil {
		t.Error("expected an error when no response has images")
	}
}

func TestHandleMaskEmitsOpenMsg(t *testing.T) {
	parser := NewParser(NewRegistry())
	msg := runCmd(t, Execute(parser.Parse("/mask"), newContext(t)))
	if _, ok := msg.(OpenMaskEditorMsg); !ok {
		t.Fatalf("msg = %T, want OpenMaskEditorMsg", msg)
	}
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	registry := NewRegistry()
	help := registry.HelpText()
	for _, cmd := range registry.All() {
		if !strings.Contains(help, cmd.Name) {
			t.Errorf("help text missing %s", cmd.Name)
		}
	}
}
