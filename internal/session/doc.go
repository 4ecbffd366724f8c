// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the orchestrator core of the application: the
// state object that owns the transcript, the reference store, the staged
// image, and the submit pipeline (help short-circuit, reference resolution,
// request assembly, response handling).
//
// The package has no rendering or terminal dependency. The UI layer is
// purely a caller: it feeds Submit with the input text, carries the returned
// part list to the model client, and feeds the result back through
// ApplyResult/ApplyError. Every transition the UI needs to render is
// expressed in the returned values, which keeps the whole pipeline testable
// headlessly.
//
// Lifecycle rules:
//   - At most one image is staged at a time; staging a new one replaces it.
//   - The staged image (and its mask) is consumed by Submit: it is attached
//     to the outgoing request and cleared before the asynchronous model call
//     begins.
//   - The reference store and transcript live for the process lifetime.
package session
