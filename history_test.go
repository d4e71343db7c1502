package lineedit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryHistoryAddDedupesConsecutive(t *testing.T) {
	h := NewMemoryHistory(0)
	h.Add("one")
	h.Add("one")
	h.Add("two")
	require.Equal(t, 2, h.Len())
}

func TestMemoryHistoryAddIgnoresEmpty(t *testing.T) {
	h := NewMemoryHistory(0)
	h.Add("")
	require.Equal(t, 0, h.Len())
}

func TestMemoryHistoryBounded(t *testing.T) {
	h := NewMemoryHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	require.Equal(t, 2, h.Len())
	require.Equal(t, "b", h.At(0))
	require.Equal(t, "c", h.At(1))
}

func TestMemoryHistorySearch(t *testing.T) {
	h := NewMemoryHistory(0)
	h.Add("select one")
	h.Add("select two")
	h.Add("update three")

	idx := h.Search("select", 2, true)
	require.Equal(t, 1, idx)

	idx = h.Search("select", 0, true)
	require.Equal(t, 0, idx)

	idx = h.Search("missing", 2, true)
	require.Equal(t, -1, idx)
}

func TestMemoryHistoryPrefixSearch(t *testing.T) {
	h := NewMemoryHistory(0)
	h.Add("select one")
	h.Add("update two")
	h.Add("select three")

	idx := h.PrefixSearch("select", 2, true)
	require.Equal(t, 2, idx)
	idx = h.PrefixSearch("select", 1, true)
	require.Equal(t, 0, idx)
}

func TestMemoryHistorySaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	h := NewMemoryHistory(0)
	h.Add("select * from foo where x = 'bar baz'")
	h.Add("line with\ttab")
	require.NoError(t, h.SaveFile(path))

	h2 := NewMemoryHistory(0)
	require.NoError(t, h2.LoadFile(path))
	require.Equal(t, h.Len(), h2.Len())
	for i := 0; i < h.Len(); i++ {
		require.Equal(t, h.At(i), h2.At(i))
	}
}

func TestMemoryHistoryLoadMissingFileIsNotAnError(t *testing.T) {
	h := NewMemoryHistory(0)
	err := h.LoadFile(filepath.Join(t.TempDir(), "nonexistent"))
	require.NoError(t, err)
	require.Equal(t, 0, h.Len())
}

func TestMemoryHistoryLoadSkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	content := "_HiStOrY_V2_\n" + "good\n" + "\\q\n" + "also-good\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	h := NewMemoryHistory(0)
	require.NoError(t, h.LoadFile(path))
	require.Equal(t, 2, h.Len())
	require.Equal(t, "good", h.At(0))
	require.Equal(t, "also-good", h.At(1))
}
