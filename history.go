package lineedit

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// HistoryProvider is the session-wide command history a Prompt mode
// navigates with Up/Down and Ctrl-R, and that History Search and Prefix
// History Search modes search over.
type HistoryProvider interface {
	// Add appends line as the newest entry, unless it is empty or a
	// duplicate of the current newest entry.
	Add(line string)
	// Len returns the number of stored entries.
	Len() int
	// At returns the entry at index i (0 is oldest).
	At(i int) string
	// Search returns the index of the first entry containing substr,
	// starting at fromIdx itself and moving toward older entries if
	// backward is true (newer ones otherwise), or -1 if none match.
	Search(substr string, fromIdx int, backward bool) int
	// PrefixSearch is like Search but matches entries with the given
	// prefix instead of a substring anywhere.
	PrefixSearch(prefix string, fromIdx int, backward bool) int
}

// MemoryHistory is the default in-process HistoryProvider, optionally
// persisted to a file using libedit's vis encoding (vis.go), matching
// petermattis-prompt's own history file format so files remain interchangeable.
type MemoryHistory struct {
	entries []string
	max     int
	path    string
}

// NewMemoryHistory returns an empty history capped at max entries (0 means
// unbounded).
func NewMemoryHistory(max int) *MemoryHistory {
	return &MemoryHistory{max: max}
}

func (h *MemoryHistory) Add(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

func (h *MemoryHistory) Len() int { return len(h.entries) }

func (h *MemoryHistory) At(i int) string {
	if i < 0 || i >= len(h.entries) {
		return ""
	}
	return h.entries[i]
}

func (h *MemoryHistory) Search(substr string, fromIdx int, backward bool) int {
	return h.search(fromIdx, backward, func(e string) bool {
		return strings.Contains(e, substr)
	})
}

func (h *MemoryHistory) PrefixSearch(prefix string, fromIdx int, backward bool) int {
	return h.search(fromIdx, backward, func(e string) bool {
		return strings.HasPrefix(e, prefix)
	})
}

func (h *MemoryHistory) search(fromIdx int, backward bool, match func(string) bool) int {
	if backward {
		for i := fromIdx; i >= 0; i-- {
			if i < len(h.entries) && match(h.entries[i]) {
				return i
			}
		}
		return -1
	}
	for i := fromIdx; i < len(h.entries); i++ {
		if match(h.entries[i]) {
			return i
		}
	}
	return -1
}

// LoadFile reads history entries from a libedit-format history file,
// decoding each line with the vis encoding.
func (h *MemoryHistory) LoadFile(path string) error {
	h.path = path
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "opening history file %q", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "_HiStOrY_V2_") {
			continue
		}
		decoded, err := historyCodec.decode(line)
		if err != nil {
			continue // a corrupt line shouldn't abort loading the rest
		}
		h.Add(decoded)
	}
	return errors.Wrapf(scanner.Err(), "reading history file %q", path)
}

// SaveFile writes the full history to a libedit-format file, vis-encoding
// each entry.
func (h *MemoryHistory) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating history file %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	w.WriteString("_HiStOrY_V2_\n")
	for _, e := range h.entries {
		w.WriteString(historyCodec.encode(e))
		w.WriteByte('\n')
	}
	return errors.Wrapf(w.Flush(), "writing history file %q", path)
}
