// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt provides the @key reference system for prompts. A token of
// @ followed by one or more word characters names a saved reference image;
// any other use of @ is inert.
package prompt

import (
	"regexp"
	"strings"
)

// referencePattern matches a maximal @key token.
var referencePattern = regexp.MustCompile(`@(\w+)`)

// =============================================================================
// RESOLVER
// =============================================================================

// Lookup answers key-membership queries. *refstore.Store satisfies it.
type Lookup interface {
	Has(key string) bool
}

// Result is the outcome of resolving a prompt against the store. A key
// appears in exactly one of the two lists, in first-occurrence order, and
// each distinct key appears at most once.
type Result struct {
	// Resolved are the referenced keys present in the store.
	Resolved []string

	// Missing are the referenced keys absent from the store. A non-empty
	// Missing list means the request must be aborted and every missing key
	// surfaced in a single message.
	Missing []string
}

// Resolver validates prompt references against a reference store. It
// performs no mutation; it is purely a validation pass consumed by the
// request assembler.
type Resolver struct {
	store Lookup
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Lookup) *Resolver {
	return &Resolver{store: store}
}

// Resolve extracts every @key token from text, deduplicates by key, and
// partitions the distinct keys by store membership.
func (r *Resolver) Resolve(text string) Result {
	var result Result
	seen := make(map[string]bool)

	for _, match := range referencePattern.FindAllStringSubmatch(text, -1) {
		key := match[1]
		if seen[key] {
			continue
		}
		seen[key] = true

		if r.store.Has(key) {
			result.Resolved = append(result.Resolved, key)
		} else {
			result.Missing = append(result.Missing, key)
		}
	}
	return result
}

// Keys returns the distinct @key tokens in text in first-occurrence order,
// without consulting the store. Used by completion.
func Keys(text string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, match := range referencePattern.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			keys = append(keys, match[1])
		}
	}
	return keys
}

// =============================================================================
// ERRORS
// =============================================================================

// MissingReferencesError reports the @keys in a prompt that are not in the
// store. It carries every missing key so the user sees them all at once.
type MissingReferencesError struct {
	Keys []string
}

func (e *MissingReferencesError) Error() string {
	return "unknown references: @" + strings.Join(e.Keys, ", @")
}
