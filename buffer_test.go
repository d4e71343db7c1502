package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferWith(s string) *Buffer {
	b := NewBuffer()
	b.Insert(0, []byte(s))
	return b
}

func TestBufferInsertDelete(t *testing.T) {
	b := NewBuffer()
	b.Insert(0, []byte("hello"))
	require.Equal(t, "hello", string(b.Bytes()))
	require.Equal(t, 5, b.Position())

	b.Delete(1, 3)
	require.Equal(t, "hlo", string(b.Bytes()))
	require.Equal(t, 1, b.Position())
}

func TestBufferEditSpliceMarkShift(t *testing.T) {
	b := newBufferWith("abcdef")
	b.SetMark(4)
	b.EditSplice(1, 2, []byte("XY"), true)
	require.Equal(t, "aXYcdef", string(b.Bytes()))
	// mark was at 4 (>= hi=2), shifts by delta=+1.
	require.Equal(t, 5, b.Mark())
}

func TestBufferEditSpliceMarkInsideReplacedRangeRigid(t *testing.T) {
	b := newBufferWith("abcdef")
	b.SetMark(2)
	b.EditSplice(0, 4, nil, true)
	require.Equal(t, 0, b.Mark())
}

func TestBufferEditSpliceMarkInsideReplacedRangeNonRigid(t *testing.T) {
	b := newBufferWith("abcdef")
	b.SetMark(2)
	b.EditSplice(0, 4, []byte("XY"), false)
	require.Equal(t, 2, b.Mark())
}

func TestBufferRegion(t *testing.T) {
	b := newBufferWith("abcdef")
	_, _, ok := b.Region()
	require.False(t, ok)

	b.SetMark(4)
	b.SetPosition(1)
	lo, hi, ok := b.Region()
	require.True(t, ok)
	require.Equal(t, 1, lo)
	require.Equal(t, 4, hi)
}

func TestBufferCharMotionSkipsCombining(t *testing.T) {
	// 'e' + combining acute accent (U+0301) is one character for motion
	// purposes.
	b := newBufferWith("éx")
	end := b.NextCharEnd(0)
	require.Equal(t, len("é"), end)

	start := b.PrevCharStart(len(b.Bytes()))
	require.Equal(t, len("é"), start)
}

func TestBufferLineBoundaries(t *testing.T) {
	b := newBufferWith("ab\ncd\nef")
	require.Equal(t, 0, b.BeginOfLine(1))
	require.Equal(t, 3, b.BeginOfLine(4))
	require.Equal(t, 2, b.EndOfLine(0))
	require.Equal(t, 8, b.EndOfLine(6))
}

func TestBufferWordMotion(t *testing.T) {
	b := newBufferWith("foo bar  baz")
	end := b.NextWordEnd(0, IsDefaultDelimiter)
	require.Equal(t, 3, end)
	end = b.NextWordEnd(3, IsDefaultDelimiter)
	require.Equal(t, 7, end)

	start := b.PrevWordStart(len(b.Bytes()), IsDefaultDelimiter)
	require.Equal(t, 9, start)
}

func TestBufferBackspaceAlign(t *testing.T) {
	b := newBufferWith("        ") // 8 spaces
	lo, hi := b.BackspaceAlign(8)
	require.Equal(t, 4, hi-lo)
	require.Equal(t, 8, hi)
}

func TestBufferBackspaceAlignNonSpacePrefixFallsBackToChar(t *testing.T) {
	b := newBufferWith("ab  ")
	lo, hi := b.BackspaceAlign(4)
	require.Equal(t, 3, lo)
	require.Equal(t, 4, hi)
}

func TestBufferAutoIndentFor(t *testing.T) {
	b := newBufferWith("    foo\n")
	indent := b.AutoIndentFor(7)
	require.Equal(t, "    ", indent)
}

func TestBufferIndentOutdentRegion(t *testing.T) {
	b := newBufferWith("aa\nbb\ncc")
	inserted := b.IndentRegion(0, len(b.Bytes()), 2)
	require.Equal(t, 6, inserted)
	require.Equal(t, "  aa\n  bb\n  cc", string(b.Bytes()))

	removed, ok := b.OutdentRegion(0, len(b.Bytes()), 2)
	require.True(t, ok)
	require.Equal(t, 6, removed)
	require.Equal(t, "aa\nbb\ncc", string(b.Bytes()))
}

func TestBufferOutdentRegionRefusesShortIndent(t *testing.T) {
	b := newBufferWith("  aa\nbb")
	_, ok := b.OutdentRegion(0, len(b.Bytes()), 2)
	require.False(t, ok)
	require.Equal(t, "  aa\nbb", string(b.Bytes()))
}

func TestBufferTransposeChars(t *testing.T) {
	b := newBufferWith("ab")
	b.SetPosition(2)
	ok := b.TransposeChars()
	require.True(t, ok)
	require.Equal(t, "ba", string(b.Bytes()))
}

func TestBufferTransposeWords(t *testing.T) {
	b := newBufferWith("foo bar")
	b.SetPosition(len(b.Bytes()))
	ok := b.TransposeWords(IsDefaultDelimiter)
	require.True(t, ok)
	require.Equal(t, "bar foo", string(b.Bytes()))
}

func TestBufferTransposeLines(t *testing.T) {
	b := newBufferWith("one\ntwo\nthree")
	pos, ok := b.TransposeLines(1, true)
	require.True(t, ok)
	require.Equal(t, "two\none\nthree", string(b.Bytes()))
	require.True(t, pos >= 0)
}

func TestBufferApplyCase(t *testing.T) {
	b := newBufferWith("hello world")
	b.ApplyCase(0, IsDefaultDelimiter, caseUpper)
	require.Equal(t, "HELLO world", string(b.Bytes()))

	b2 := newBufferWith("hello world")
	b2.ApplyCase(0, IsDefaultDelimiter, caseTitle)
	require.Equal(t, "Hello world", string(b2.Bytes()))
}

func TestBufferSnapshotRestore(t *testing.T) {
	b := newBufferWith("hello")
	b.SetMark(1)
	snap := b.Snapshot()

	b.Insert(5, []byte(" world"))
	b.Restore(snap)
	require.Equal(t, "hello", string(b.Bytes()))
	require.Equal(t, 1, b.Mark())
}
