package hotspotstore

import (
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSkipsZeroHotspot(t *testing.T) {
	s := New(t.TempDir())
	s.Record("Arrow", 32, image.Pt(0, 0))
	_, ok := s.Get("arrow", 32)
	assert.False(t, ok)
}

func TestFinalizeOrdersResolutionsHighToLow(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.Record("Arrow", 16, image.Pt(1, 2))
	s.Record("Arrow", 64, image.Pt(3, 4))
	s.Record("Arrow", 32, image.Pt(5, 6))
	require.NoError(t, s.Finalize())

	raw, err := os.ReadFile(filepath.Join(dir, "cursor-hotspots.json"))
	require.NoError(t, err)

	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Contains(t, generic, "Arrow")

	// Confirm key ordering in the raw text itself, since map iteration
	// order would otherwise hide an ordering bug.
	text := string(raw)
	i64 := indexOf(text, `"64"`)
	i32 := indexOf(text, `"32"`)
	i16 := indexOf(text, `"16"`)
	require.True(t, i64 >= 0 && i32 >= 0 && i16 >= 0)
	assert.Less(t, i64, i32)
	assert.Less(t, i32, i16)
}

func TestGetCaseInsensitive(t *testing.T) {
	s := New(t.TempDir())
	s.Record("Arrow", 32, image.Pt(1, 1))
	pt, ok := s.Get("ARROW", 32)
	require.True(t, ok)
	assert.Equal(t, image.Pt(1, 1), pt)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	s.Record("Pointer", 48, image.Pt(7, 9))
	require.NoError(t, s.Finalize())

	loaded, err := Load(dir)
	require.NoError(t, err)
	pt, ok := loaded.Get("pointer", 48)
	require.True(t, ok)
	assert.Equal(t, image.Pt(7, 9), pt)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
