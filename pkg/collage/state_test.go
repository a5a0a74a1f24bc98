package collage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	store := NewFileStore(path)
	state := FolderState{Cursor: 3, Shown: []string{"a.jpg", "b.jpg"}}
	require.NoError(t, store.Put("folder1", state))

	// A fresh store reads the same state back from disk.
	store2 := NewFileStore(path)
	got, ok := store2.Get("folder1")
	require.True(t, ok)
	assert.Equal(t, 3, got.Cursor)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Shown)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))
	_, ok := store.Get("folder1")
	assert.False(t, ok)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	store := NewFileStore(path)
	_, ok := store.Get("folder1")
	assert.False(t, ok)

	// The store stays usable and overwrites the corrupt file.
	require.NoError(t, store.Put("folder1", FolderState{Cursor: 1}))
	store2 := NewFileStore(path)
	got, ok := store2.Get("folder1")
	require.True(t, ok)
	assert.Equal(t, 1, got.Cursor)
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	store := NewFileStore(path)
	require.NoError(t, store.Put("k", FolderState{Cursor: 7}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("k")
	assert.False(t, ok)

	require.NoError(t, store.Put("k", FolderState{Cursor: 2}))
	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got.Cursor)
}

func TestFolderKeyStable(t *testing.T) {
	a := FolderKey("/tmp/wallpapers")
	b := FolderKey("/tmp/wallpapers/")
	assert.Equal(t, a, b)
}
