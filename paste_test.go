package lineedit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPasteDetectorObservesBursts(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoIndentTimeThreshold = 10 * time.Millisecond
	now := time.Unix(0, 0)
	opts.now = func() time.Time { return now }

	d := newPasteDetector(opts)
	require.False(t, d.Observe(), "first observation is never a paste")

	now = now.Add(1 * time.Millisecond)
	require.True(t, d.Observe(), "rapid second observation looks like a paste")

	now = now.Add(100 * time.Millisecond)
	require.False(t, d.Observe(), "a slow keystroke resets the heuristic")
}

func TestPasteDetectorReset(t *testing.T) {
	opts := DefaultOptions()
	now := time.Unix(0, 0)
	opts.now = func() time.Time { return now }
	d := newPasteDetector(opts)
	d.Observe()
	d.Reset()
	require.False(t, d.Observe())
}

func TestStripPasteIndent(t *testing.T) {
	in := "foo\n  bar\n\tbaz\n"
	out := stripPasteIndent(in)
	require.Equal(t, in, out, "zero common indent (line one has none) leaves text untouched")
}

func TestStripPasteIndentPreservesRelativeNesting(t *testing.T) {
	in := "  if x {\n    y()\n  }\n"
	out := stripPasteIndent(in)
	require.Equal(t, "if x {\n  y()\n}\n", out, "only the shared 2-space indent is removed")
}

func TestStripPasteIndentIgnoresBlankLines(t *testing.T) {
	in := "  a\n\n  b\n"
	out := stripPasteIndent(in)
	require.Equal(t, "a\n\nb\n", out, "a blank line doesn't drag the common indent down to zero")
}

func TestExpandPasteTabs(t *testing.T) {
	out := expandPasteTabs("a\tb", 4)
	require.Equal(t, "a   b", out)
}

func TestNormalizePasteLineEndings(t *testing.T) {
	require.Equal(t, "a\nb\nc", normalizePasteLineEndings("a\r\nb\rc"))
}

func TestReadBracketedPaste(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoIndentBracketedPaste = true
	raw := []byte("line one\r\n  line two\x1b[201~")
	i := 0
	read := func() (byte, error) {
		b := raw[i]
		i++
		return b, nil
	}
	text, err := readBracketedPaste(read, opts)
	require.NoError(t, err)
	require.Equal(t, "line one\n  line two", text, "line one's zero indent makes the common indent zero")
}
