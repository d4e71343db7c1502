package lineedit

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// NamedCompletion is one candidate offered by a CompletionProvider, with an
// optional display form distinct from the text actually inserted (e.g. a
// type annotation shown in a columnized list).
type NamedCompletion struct {
	Insert  string
	Display string
}

func (c NamedCompletion) display() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Insert
}

// CompletionProvider supplies both tab-completion candidates and background
// hints for the text to the left of the cursor.
type CompletionProvider interface {
	// Complete returns the candidates for the word spanning [wordStart,
	// wordEnd) in text, the whole line; wordEnd is the cursor position.
	Complete(text []rune, wordStart, wordEnd int) []NamedCompletion
	// Hint returns a suggestion to display past the cursor for the full
	// line so far, or "" for none. Called from the background hint worker;
	// implementations should be reasonably fast or honor ctx cancellation.
	Hint(ctx context.Context, line string) string
}

// simpleCompleter adapts petermattis-prompt's historic completion function
// signature (word-boundary candidates only, no hints) to CompletionProvider.
func simpleCompleter(fn func(text []rune, wordStart, wordEnd int) []string) CompletionProvider {
	return simpleCompleterAdapter{fn: fn}
}

type simpleCompleterAdapter struct {
	fn func(text []rune, wordStart, wordEnd int) []string
}

func (a simpleCompleterAdapter) Complete(text []rune, wordStart, wordEnd int) []NamedCompletion {
	if a.fn == nil {
		return nil
	}
	raw := a.fn(text, wordStart, wordEnd)
	out := make([]NamedCompletion, len(raw))
	for i, s := range raw {
		out[i] = NamedCompletion{Insert: s}
	}
	return out
}

func (a simpleCompleterAdapter) Hint(context.Context, string) string { return "" }

// commonPrefix returns the longest string every candidate starts with.
func commonPrefix(cands []NamedCompletion) string {
	if len(cands) == 0 {
		return ""
	}
	prefix := cands[0].Insert
	for _, c := range cands[1:] {
		prefix = commonPrefixOf(prefix, c.Insert)
		if prefix == "" {
			return ""
		}
	}
	return prefix
}

func commonPrefixOf(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// wordBoundsAt finds [start, end) for the word touching pos in text, using
// the default word-delimiter rule.
func wordBoundsAt(text []rune, pos int) (start, end int) {
	start, end = pos, pos
	for start > 0 && !IsDefaultDelimiter(text[start-1]) {
		start--
	}
	for end < len(text) && !IsDefaultDelimiter(text[end]) {
		end++
	}
	return start, end
}

// ColumnizeCompletions lays candidates out into rows of roughly equal-width
// columns for display, mirroring petermattis-prompt's completion TODO
// sketch for a tabular candidate list.
func ColumnizeCompletions(cands []NamedCompletion, termWidth int) []string {
	if len(cands) == 0 {
		return nil
	}
	maxw := 0
	for _, c := range cands {
		if w := runewidth.StringWidth(c.display()); w > maxw {
			maxw = w
		}
	}
	colWidth := maxw + 2
	if colWidth <= 0 || termWidth <= 0 {
		colWidth = 1
	}
	cols := termWidth / colWidth
	if cols < 1 {
		cols = 1
	}
	var rows []string
	var b strings.Builder
	for i, c := range cands {
		b.WriteString(c.display())
		if (i+1)%cols != 0 && i != len(cands)-1 {
			b.WriteString(strings.Repeat(" ", colWidth-runewidth.StringWidth(c.display())))
		} else {
			rows = append(rows, b.String())
			b.Reset()
		}
	}
	return rows
}

// HintWorker runs a CompletionProvider's Hint method in the background,
// cancelling stale requests by staleness rather than forcibly killing the
// goroutine: each request captures the current value of keystrokeCounter,
// and a result is only applied if the counter has not moved since.
//
// Two mutexes separate concerns: lineMu serializes access to the line text a hint
// request reads, and hintMu serializes hint generation so at most one
// Hint call runs at a time.
type HintWorker struct {
	provider CompletionProvider

	lineMu sync.Mutex
	hintMu sync.Mutex

	keystrokes int64 // n_keys_pressed

	mu      sync.Mutex
	current string

	// OnHintReady, if set, is called after a fresh, non-superseded hint is
	// stored, so the caller can trigger a repaint from the background
	// goroutine. Invoked without h.mu held.
	OnHintReady func()
}

// NewHintWorker builds a worker around provider. A nil provider makes every
// request a no-op, so callers can always construct one unconditionally.
func NewHintWorker(provider CompletionProvider) *HintWorker {
	return &HintWorker{provider: provider}
}

// Current returns the most recently computed, still-fresh hint text.
func (h *HintWorker) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Clear forgets the current hint, e.g. when the cursor moves off the end of
// the buffer.
func (h *HintWorker) Clear() {
	h.mu.Lock()
	h.current = ""
	h.mu.Unlock()
}

// NotifyKeystroke bumps the staleness counter. Call once per accepted
// keystroke, before requesting a new hint for it.
func (h *HintWorker) NotifyKeystroke() int64 {
	return atomic.AddInt64(&h.keystrokes, 1)
}

// Request asynchronously computes a hint for line, applying it only if no
// further keystroke has landed since gen (the value NotifyKeystroke
// returned for this request).
func (h *HintWorker) Request(ctx context.Context, line string, gen int64) {
	if h.provider == nil {
		return
	}
	go func() {
		h.hintMu.Lock()
		defer h.hintMu.Unlock()

		if atomic.LoadInt64(&h.keystrokes) != gen {
			return // superseded before we even started
		}

		h.lineMu.Lock()
		snapshot := line
		h.lineMu.Unlock()

		hint := h.provider.Hint(ctx, snapshot)

		if atomic.LoadInt64(&h.keystrokes) != gen {
			return // superseded while computing; drop the stale result
		}
		h.mu.Lock()
		h.current = hint
		h.mu.Unlock()

		if h.OnHintReady != nil {
			h.OnHintReady()
		}
	}()
}
