package form

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Push(t *testing.T) {
	var h History

	for _, q := range []string{"gs=1", "gs=2", "gs=3"} {
		h.Push(q)
	}
	assert.Equal(t, []string{"gs=3", "gs=2", "gs=1"}, h.Entries)

	h.Push("gs=1")
	assert.Equal(t, []string{"gs=1", "gs=3", "gs=2"}, h.Entries, "re-pushing moves to front")

	h.Push("")
	assert.Len(t, h.Entries, 3)
}

func TestHistory_Cap(t *testing.T) {
	var h History
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		h.Push(q)
	}

	assert.Equal(t, []string{"h", "g", "f", "e", "d", "c"}, h.Entries)
}

func TestHistory_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.yaml")

	h := &History{}
	h.Push("gs=5000")
	h.Push("fp=20000&pl=5600")
	require.NoError(t, SaveHistory(path, h))

	loaded, err := LoadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, h.Entries, loaded.Entries)
}

func TestLoadHistory_Missing(t *testing.T) {
	h, err := LoadHistory(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Empty(t, h.Entries)
}

func TestLoadHistory_NormalisesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	content := "entries:\n  - a\n  - b\n  - a\n  - c\n  - d\n  - e\n  - f\n  - g\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	h, err := LoadHistory(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, h.Entries)
}

func TestLoadHistory_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: {"), 0o644))

	_, err := LoadHistory(path)
	assert.Error(t, err)
}
