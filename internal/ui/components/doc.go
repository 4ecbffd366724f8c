// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for inkbrush.
//
// Components are pure view helpers: they take state and dimensions and
// return rendered strings. The half-block image renderer draws pixel
// data into terminal cells, two vertical pixels per cell.
package components
