package lineedit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	bytes.Buffer
}

func (f *fakeTerminal) EnterRawMode() (func() error, error) { return func() error { return nil }, nil }
func (f *fakeTerminal) Size() (int, int, error)              { return 80, 24, nil }
func (f *fakeTerminal) HasColor() bool                       { return true }
func (f *fakeTerminal) EnableBracketedPaste()                {}
func (f *fakeTerminal) DisableBracketedPaste()               {}

func TestWrapTextNoWrapNeeded(t *testing.T) {
	rows := wrapText("hello", 80)
	require.Len(t, rows, 1)
	require.Equal(t, "hello", rows[0].text)
}

func TestWrapTextBreaksOnNewline(t *testing.T) {
	rows := wrapText("one\ntwo", 80)
	require.Len(t, rows, 2)
	require.Equal(t, "one", rows[0].text)
	require.Equal(t, "two", rows[1].text)
}

func TestWrapTextWrapsMidLine(t *testing.T) {
	rows := wrapText("abcdefgh", 4)
	require.Len(t, rows, 2)
	require.Equal(t, "abcd", rows[0].text)
	require.Equal(t, "efgh", rows[1].text)
}

func TestDisplayWidthWideRune(t *testing.T) {
	require.Equal(t, 2, displayWidth('世'))
	require.Equal(t, 1, displayWidth('a'))
}

func TestLocateFindsRowAndColumn(t *testing.T) {
	rows := wrapText("abcd\nefgh", 80)
	row, col := locate(rows, 6)
	require.Equal(t, 1, row)
	require.Equal(t, 1, col)
}

func TestLocateAtVeryEnd(t *testing.T) {
	rows := wrapText("abcd", 80)
	row, col := locate(rows, 4)
	require.Equal(t, 0, row)
	require.Equal(t, 4, col)
}

func TestRendererPaintWritesPromptAndBuffer(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{Prompt: "> ", Buf: []byte("hi"), Position: 2})

	out := term.String()
	require.True(t, strings.Contains(out, "> hi"))
}

func TestRendererPaintErasesPreviousOnRepaint(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{Prompt: "> ", Buf: []byte("hi"), Position: 2})
	term.Reset()

	r.Paint(Frame{Prompt: "> ", Buf: []byte("hello"), Position: 5})
	out := term.String()
	// erasePrevious emits clearToEOL before the new content is drawn.
	require.True(t, strings.Contains(out, clearToEOL))
	require.True(t, strings.Contains(out, "> hello"))
}

func TestRendererPaintAppliesReverseVideoForActiveRegion(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{
		Prompt:       "> ",
		Buf:          []byte("hello world"),
		Position:     11,
		RegionLo:     0,
		RegionHi:     5,
		RegionActive: true,
	})
	out := term.String()
	require.True(t, strings.Contains(out, reverseVideo))
	require.True(t, strings.Contains(out, resetAttr))
}

func TestRendererPaintShowsDimHintAtEndOfBuffer(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{Prompt: "> ", Buf: []byte("sel"), Position: 3, Hint: "ect"})
	out := term.String()
	require.True(t, strings.Contains(out, dimAttr))
	require.True(t, strings.Contains(out, "ect"))
}

func TestRendererPaintSuppressesHintWhenCursorNotAtEnd(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{Prompt: "> ", Buf: []byte("sel"), Position: 1, Hint: "ect"})
	out := term.String()
	require.False(t, strings.Contains(out, dimAttr))
}

func TestRendererClearScreenResetsRowTracking(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.Paint(Frame{Prompt: "> ", Buf: []byte("hi"), Position: 2})
	r.ClearScreen()
	require.Equal(t, 0, r.lastRowCount)
}

func TestRendererPaintTruncatesRowsUnderPressure(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 4)
	r.SetHeight(3)

	text := "aaaa\nbbbb\ncccc\ndddd\neeee\nffff\ngggg"
	r.Paint(Frame{Prompt: "", Buf: []byte(text), Position: 4})

	require.LessOrEqual(t, r.lastRowCount, 3,
		"cursor on row 0 keeps only a small window of rows past it")
}

func TestRendererPaintKeepsRowsWhenNoHeightSet(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 4)

	text := "aaaa\nbbbb\ncccc\ndddd\neeee"
	r.Paint(Frame{Prompt: "", Buf: []byte(text), Position: 4})

	require.Equal(t, 5, r.lastRowCount, "height 0 means no centering at all")
}

func TestRendererPaintDropsTrailingNewlineOnOneRowTerminal(t *testing.T) {
	term := &fakeTerminal{}
	r := NewRenderer(term, 80)
	r.SetHeight(1)

	r.Paint(Frame{Prompt: "> ", Buf: []byte("hi\n"), Position: 3})

	require.Equal(t, 1, r.lastRowCount,
		"a trailing newline shouldn't force a second, unreachable row on a 1-row terminal")
}

func TestCursorMoveZeroIsEmpty(t *testing.T) {
	require.Equal(t, "", cursorMove(0, 'A'))
}

func TestItoa(t *testing.T) {
	require.Equal(t, "0", itoa(0))
	require.Equal(t, "123", itoa(123))
}
