package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex/internal/index"
)

func sampleIndex() *index.Index {
	return &index.Index{
		BuildID: "test-build",
		Created: time.Now().UTC().Truncate(time.Second),
		Root:    "/tmp/project",
		Files: []index.FileRecord{
			{Path: "docs/a.md", Size: 42, Lines: 5, Tokens: 8},
		},
		Sections: []index.Section{
			{
				File:      "docs/a.md",
				Header:    "Intro",
				Content:   "body text that should not persist",
				Tokens:    []string{"body", "text", "intro"},
				LineStart: 1,
				LineEnd:   4,
			},
		},
		IDF:         map[string]float64{"intro": 0.69},
		TotalTokens: 3,
		TotalChars:  42,
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work", ".doc-index.json")
	st := New(path)

	require.NoError(t, st.Save(sampleIndex()))
	assert.True(t, st.Exists())

	loaded := st.Load()
	require.NotNil(t, loaded)

	assert.Equal(t, "test-build", loaded.BuildID)
	assert.Equal(t, "/tmp/project", loaded.Root)
	require.Len(t, loaded.Sections, 1)
	assert.Equal(t, "Intro", loaded.Sections[0].Header)
	assert.Equal(t, []string{"body", "text", "intro"}, loaded.Sections[0].Tokens)
	assert.InDelta(t, 0.69, loaded.IDF["intro"], 1e-9)

	// Section bodies are dropped at save time.
	assert.Empty(t, loaded.Sections[0].Content)
}

func TestStore_SaveDoesNotMutateOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	idx := sampleIndex()

	require.NoError(t, New(path).Save(idx))

	assert.Equal(t, "body text that should not persist", idx.Sections[0].Content)
}

func TestStore_LoadAbsentReturnsNil(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.False(t, st.Exists())
	assert.Nil(t, st.Load())
}

func TestStore_LoadCorruptReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.Nil(t, New(path).Load())
}

func TestStore_LoadToleratesUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	snapshot := `{
  "build_id": "abc",
  "root": "/p",
  "sections": [],
  "idf": {},
  "future_field": {"nested": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	loaded := New(path).Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "abc", loaded.BuildID)
}

func TestStore_SaveOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	st := New(path)

	first := sampleIndex()
	require.NoError(t, st.Save(first))

	second := sampleIndex()
	second.BuildID = "second-build"
	require.NoError(t, st.Save(second))

	loaded := st.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "second-build", loaded.BuildID)
}
