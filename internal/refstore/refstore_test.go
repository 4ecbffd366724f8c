// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package refstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/inkbrush-tui/internal/imaging"
)

func testImage(tag byte) imaging.Image {
	return imaging.Image{Data: []byte{tag, tag, tag}, MimeType: "image/png"}
}

// =============================================================================
// SAVE / GET
// =============================================================================

func TestSaveThenGet(t *testing.T) {
	s := New()
	img := testImage(1)

	require.NoError(t, s.Save("cat_photo", img))

	got, err := s.Get("cat_photo")
	require.NoError(t, err)
	assert.Equal(t, img, got)
}

func TestSave_InvalidKeys(t *testing.T) {
	s := New()
	for _, key := range []string{"", "has space", "da-sh", "a.b", "@tag", "émoji✨"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, s.Save(key, testImage(1)), ErrInvalidKey)
		})
	}
	assert.Zero(t, s.Len())
}

func TestSave_ValidKeys(t *testing.T) {
	s := New()
	for _, key := range []string{"a", "snake_case", "MixedCase", "x1", "_", "123"} {
		assert.NoError(t, s.Save(key, testImage(1)), "key %q", key)
	}
}

func TestSave_KeyTakenLeavesOriginal(t *testing.T) {
	s := New()
	original := testImage(1)
	require.NoError(t, s.Save("dupe", original))

	assert.ErrorIs(t, s.Save("dupe", testImage(2)), ErrKeyTaken)

	got, err := s.Get("dupe")
	require.NoError(t, err)
	assert.Equal(t, original, got, "failed save must not replace the entry")
}

func TestGet_NotFound(t *testing.T) {
	s := New()
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// =============================================================================
// DELETE
// =============================================================================

func TestDelete(t *testing.T) {
	s := New()
	require.NoError(t, s.Save("gone", testImage(1)))

	require.NoError(t, s.Delete("gone"))
	_, err := s.Get("gone")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, s.Len())

	assert.ErrorIs(t, s.Delete("gone"), ErrNotFound)
}

// =============================================================================
// RENAME
// =============================================================================

func TestRename_RoundTrip(t *testing.T) {
	s := New()
	img := testImage(7)
	require.NoError(t, s.Save("A", img))

	require.NoError(t, s.Rename("A", "B"))

	got, err := s.Get("B")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = s.Get("A")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename_Atomic(t *testing.T) {
	s := New()
	first := testImage(1)
	second := testImage(2)
	require.NoError(t, s.Save("first", first))
	require.NoError(t, s.Save("second", second))

	tests := []struct {
		name    string
		oldKey  string
		newKey  string
		wantErr error
	}{
		{"target taken", "first", "second", ErrKeyTaken},
		{"invalid target", "first", "bad key", ErrInvalidKey},
		{"missing source", "ghost", "third", ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Rename(tc.oldKey, tc.newKey), tc.wantErr)

			// Both original entries must still resolve as before.
			got, err := s.Get("first")
			require.NoError(t, err)
			assert.Equal(t, first, got)
			got, err = s.Get("second")
			require.NoError(t, err)
			assert.Equal(t, second, got)
		})
	}
}

func TestRename_KeepsInsertionPosition(t *testing.T) {
	s := New()
	require.NoError(t, s.Save("a", testImage(1)))
	require.NoError(t, s.Save("b", testImage(2)))
	require.NoError(t, s.Save("c", testImage(3)))

	require.NoError(t, s.Rename("b", "renamed"))

	var keys []string
	for _, e := range s.List() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"a", "renamed", "c"}, keys)
}

// =============================================================================
// LIST / FIND
// =============================================================================

func TestList_InsertionOrder(t *testing.T) {
	s := New()
	for _, key := range []string{"zebra", "apple", "mango"} {
		require.NoError(t, s.Save(key, testImage(1)))
	}

	var keys []string
	for _, e := range s.List() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)
}

func TestFind_CaseInsensitive(t *testing.T) {
	s := New()
	require.NoError(t, s.Save("CatPhoto", testImage(1)))
	require.NoError(t, s.Save("dog", testImage(2)))
	require.NoError(t, s.Save("scattered", testImage(3)))

	var keys []string
	for _, e := range s.Find("CAT") {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"CatPhoto", "scattered"}, keys)

	assert.Len(t, s.Find(""), 3, "empty filter matches everything")
}
