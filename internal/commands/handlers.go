// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/inkbrush-tui/internal/export"
	"github.com/jeranaias/inkbrush-tui/internal/imaging"
	"github.com/jeranaias/inkbrush-tui/internal/session"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Context provides command handlers access to application state.
type Context struct {
	// Session is the orchestrator core.
	Session *session.Session

	// ExportDir is the directory for /export without an explicit path.
	ExportDir string
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(_ *Context, _ []string) tea.Cmd {
	return func() tea.Msg { return HelpRequestedMsg{} }
}

func handleRefs(ctx *Context, args []string) tea.Cmd {
	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	entries := ctx.Session.Store.Find(filter)
	return func() tea.Msg { return RefListMsg{Filter: filter, Entries: entries} }
}

func handleSaveRef(ctx *Context, args []string) tea.Cmd {
	n, err := parseIndex(args[0])
	key := args[1]
	if err == nil {
		err = ctx.Session.SaveOutputAsReference(n, key)
	}
	return func() tea.Msg { return RefSavedMsg{Key: key, Err: err} }
}

func handleDelRef(ctx *Context, args []string) tea.Cmd {
	key := args[0]
	err := ctx.Session.Store.Delete(key)
	return func() tea.Msg { return RefDeletedMsg{Key: key, Err: err} }
}

func handleRename(ctx *Context, args []string) tea.Cmd {
	oldKey, newKey := args[0], args[1]
	err := ctx.Session.Store.Rename(oldKey, newKey)
	return func() tea.Msg { return RefRenamedMsg{OldKey: oldKey, NewKey: newKey, Err: err} }
}

func handleAttach(ctx *Context, args []string) tea.Cmd {
	path := args[0]
	return func() tea.Msg {
		img, err := readImageFile(path)
		if err == nil {
			err = ctx.Session.Stage(img)
		}
		return StagedFileMsg{Path: path, Err: err}
	}
}

func handleUnstage(ctx *Context, _ []string) tea.Cmd {
	wasStaged := ctx.Session.Staged() != nil
	ctx.Session.ClearStaged()
	return func() tea.Msg { return UnstagedMsg{WasStaged: wasStaged} }
}

func handleMask(_ *Context, _ []string) tea.Cmd {
	return func() tea.Msg { return OpenMaskEditorMsg{} }
}

func handleEdit(ctx *Context, args []string) tea.Cmd {
	n, err := parseIndex(args[0])
	if err == nil {
		err = ctx.Session.StageOutput(n)
	}
	return func() tea.Msg { return RestagedMsg{Index: n, Err: err} }
}

func handleExport(ctx *Context, args []string) tea.Cmd {
	n, err := parseIndex(args[0])
	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	exportDir := ctx.ExportDir
	sess := ctx.Session
	return func() tea.Msg {
		if err != nil {
			return ExportCompleteMsg{Err: err}
		}
		img, err := sess.OutputImage(n)
		if err != nil {
			return ExportCompleteMsg{Err: err}
		}
		written, err := export.WriteImage(img, path, exportDir)
		return ExportCompleteMsg{Path: written, Err: err}
	}
}

func handleClear(_ *Context, _ []string) tea.Cmd {
	return func() tea.Msg { return ClearChatMsg{} }
}

func handleQuit(_ *Context, _ []string) tea.Cmd {
	return tea.Quit
}

// =============================================================================
// HELPERS
// =============================================================================

// parseIndex parses a 1-based image index argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("expected an image number, got %q", arg)
	}
	return n, nil
}

// readImageFile loads an image payload from disk, inferring the mime type
// from the file extension.
func readImageFile(path string) (imaging.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return imaging.Image{}, err
	}
	return imaging.Image{Data: data, MimeType: mimeFromExt(path)}, nil
}

// mimeFromExt maps a file extension to the mime type sent to the model.
func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
