// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package refstore implements the in-memory store of named reference images.
// References are inserted via explicit save actions and addressed from
// prompts as @key tokens. The store lives for the process lifetime only;
// persistence across sessions is deliberately not provided.
package refstore

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidKey indicates a key that fails the ^\w+$ format rule.
	ErrInvalidKey = errors.New("invalid reference key: use letters, digits, and underscores only")

	// ErrKeyTaken indicates a save or rename onto an existing key.
	ErrKeyTaken = errors.New("reference key already in use")

	// ErrNotFound indicates a lookup of a key that is not in the store.
	ErrNotFound = errors.New("reference not found")
)

// keyPattern is the key validity rule: one or more word characters.
var keyPattern = regexp.MustCompile(`^\w+$`)

// ValidKey reports whether key satisfies the key format rule.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// =============================================================================
// STORE
// =============================================================================

// Entry is one stored reference, returned by List and Find in insertion
// order.
type Entry struct {
	Key   string
	Image imaging.Image
}

// Store maps reference keys to stored images, preserving insertion order for
// deterministic enumeration. It is created empty and mutated only by the
// orchestrator in direct response to user actions; it is not safe for
// concurrent use and does not need to be.
type Store struct {
	keys   []string
	images map[string]imaging.Image
}

// New creates an empty store.
func New() *Store {
	return &Store{images: make(map[string]imaging.Image)}
}

// Len returns the number of stored references.
func (s *Store) Len() int {
	return len(s.keys)
}

// Has reports whether key is present. Used by the prompt resolver.
func (s *Store) Has(key string) bool {
	_, ok := s.images[key]
	return ok
}

// Save stores an image under key. Fails with ErrInvalidKey if the key
// violates the format rule and ErrKeyTaken if the key is already present; in
// both cases the store is unchanged.
func (s *Store) Save(key string, img imaging.Image) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	if _, ok := s.images[key]; ok {
		return ErrKeyTaken
	}
	s.images[key] = img
	s.keys = append(s.keys, key)
	return nil
}

// Get returns the image stored under key.
func (s *Store) Get(key string) (imaging.Image, error) {
	img, ok := s.images[key]
	if !ok {
		return imaging.Image{}, ErrNotFound
	}
	return img, nil
}

// Delete removes the reference stored under key.
func (s *Store) Delete(key string) error {
	if _, ok := s.images[key]; !ok {
		return ErrNotFound
	}
	delete(s.images, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Rename moves the reference from oldKey to newKey atomically: every
// validation runs before any mutation, so a failed rename leaves the entry
// untouched under oldKey and no observer ever sees the key under neither or
// both names. The renamed entry keeps its insertion position.
func (s *Store) Rename(oldKey, newKey string) error {
	img, ok := s.images[oldKey]
	if !ok {
		return ErrNotFound
	}
	if !ValidKey(newKey) {
		return ErrInvalidKey
	}
	if _, ok := s.images[newKey]; ok {
		return ErrKeyTaken
	}

	delete(s.images, oldKey)
	s.images[newKey] = img
	for i, k := range s.keys {
		if k == oldKey {
			s.keys[i] = newKey
			break
		}
	}
	return nil
}

// List returns all references in insertion order.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		entries = append(entries, Entry{Key: k, Image: s.images[k]})
	}
	return entries
}

// Find returns the references whose key contains the filter substring,
// case-insensitively, in insertion order. An empty filter matches
// everything.
func (s *Store) Find(filter string) []Entry {
	filter = strings.ToLower(filter)
	var entries []Entry
	for _, k := range s.keys {
		if strings.Contains(strings.ToLower(k), filter) {
			entries = append(entries, Entry{Key: k, Image: s.images[k]})
		}
	}
	return entries
}
