// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes generated images to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// DefaultDir is used when no export directory is configured.
const DefaultDir = "./exports"

// WriteImage saves an image to disk and returns the path written.
//
// When path is empty a timestamped filename is generated under exportDir
// (created if needed), with the extension derived from the image MIME type.
// When path names an existing directory, the generated filename is placed
// inside it. Image bytes are written verbatim, never re-encoded.
func WriteImage(img imaging.Image, path, exportDir string) (string, error) {
	if img.IsZero() {
		return "", fmt.Errorf("export: no image data")
	}

	outputPath, err := resolvePath(img, path, exportDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	if err := os.WriteFile(outputPath, img.Data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return outputPath, nil
}

// resolvePath chooses the output path for an image.
func resolvePath(img imaging.Image, path, exportDir string) (string, error) {
	ext := imaging.MimeToExt(img.MimeType)

	if path == "" {
		if exportDir == "" {
			exportDir = DefaultDir
		}
		return filepath.Join(exportDir, generatedName(ext)), nil
	}

	// An existing directory gets a generated filename inside it.
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, generatedName(ext)), nil
	}

	// Explicit file path: add the extension if the user left it off.
	if filepath.Ext(path) == "" {
		path += ext
	}
	return path, nil
}

// generatedName builds a timestamped filename like inkbrush_20250115_143052.png.
func generatedName(ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("inkbrush_%s%s", timestamp, strings.ToLower(ext))
}
