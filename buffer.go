package lineedit

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Buffer is the mutable byte sequence that is the unit of edit. It is
// addressed in bytes but all motion operates in characters: Position and
// Mark always land on a byte that starts a character, never on a
// continuation byte of a multi-byte encoding.
//
// Buffer intentionally knows nothing about rendering or terminals; the
// renderer (render.go) consumes an immutable snapshot of it.
type Buffer struct {
	data     []byte
	position int
	mark     int // -1 when unset
}

// NewBuffer returns an empty buffer with no mark set.
func NewBuffer() *Buffer {
	return &Buffer{mark: -1}
}

// Snapshot is an immutable point-in-time copy of a Buffer's state, used by
// the undo stack and by history's "pending" save-on-navigate behavior.
type Snapshot struct {
	Bytes    []byte
	Position int
	Mark     int
}

// Snapshot captures the current state of the buffer.
func (b *Buffer) Snapshot() Snapshot {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return Snapshot{Bytes: cp, Position: b.position, Mark: b.mark}
}

// Restore replaces the buffer's contents with a previously captured snapshot.
func (b *Buffer) Restore(s Snapshot) {
	b.data = append(b.data[:0], s.Bytes...)
	b.position = s.Position
	b.mark = s.Mark
}

// Bytes returns the buffer's contents. The caller must not modify the
// returned slice.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes ("size" in the data model) in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Position returns the 0-based insertion point.
func (b *Buffer) Position() int { return b.position }

// Mark returns the current mark, or -1 if unset.
func (b *Buffer) Mark() int { return b.mark }

// SetMark sets the mark to pos, or clears it if pos < 0.
func (b *Buffer) SetMark(pos int) {
	if pos < 0 {
		b.mark = -1
		return
	}
	b.mark = clampInt(pos, 0, len(b.data))
}

// SetPosition moves the cursor directly to pos, clamped to the buffer.
func (b *Buffer) SetPosition(pos int) {
	b.position = clampInt(pos, 0, len(b.data))
}

// Region returns the (lo, hi) pair for the current mark/position, and
// whether a mark is set at all.
func (b *Buffer) Region() (lo, hi int, ok bool) {
	if b.mark < 0 {
		return 0, 0, false
	}
	lo, hi = b.mark, b.position
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EditSplice replaces bytes [lo, hi) with ins and returns the removed bytes.
// Position is kept "with the text": if it falls inside the replaced range it
// clamps to lo; if it is at or past hi it shifts by len(ins)-(hi-lo).
//
// Mark follows the same shifting rule outside the replaced range. When mark
// falls strictly inside [lo, hi), or both boundaries of the replacement
// coincide with mark, rigidMark decides whether mark clamps to lo (true) or
// to lo+len(ins) (false). A mark that was unset (-1) stays unset.
func (b *Buffer) EditSplice(lo, hi int, ins []byte, rigidMark bool) []byte {
	if lo < 0 {
		lo = 0
	}
	if hi > len(b.data) {
		hi = len(b.data)
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	removed := append([]byte(nil), b.data[lo:hi]...)

	newData := make([]byte, 0, len(b.data)-(hi-lo)+len(ins))
	newData = append(newData, b.data[:lo]...)
	newData = append(newData, ins...)
	newData = append(newData, b.data[hi:]...)
	b.data = newData

	delta := len(ins) - (hi - lo)
	b.position = spliceAdjust(b.position, lo, hi, delta, lo, lo+len(ins))

	if b.mark >= 0 {
		strictlyInside := b.mark > lo && b.mark < hi
		bothCoincide := lo == hi && b.mark == lo
		if strictlyInside || bothCoincide {
			if rigidMark {
				b.mark = lo
			} else {
				b.mark = lo + len(ins)
			}
		} else {
			b.mark = spliceAdjust(b.mark, lo, hi, delta, lo, lo+len(ins))
		}
	}

	return removed
}

// spliceAdjust shifts a byte offset to account for a [lo,hi)->ins
// replacement of net size delta. Offsets inside the old range clamp to
// clampInside; offsets at or beyond hi shift by delta.
func spliceAdjust(pos, lo, hi, delta, clampInside, _ int) int {
	switch {
	case pos < lo:
		return pos
	case pos >= hi:
		return pos + delta
	default:
		return clampInside
	}
}

// Insert splices text in at the current position and advances the cursor
// past it, as a plain (non-region-rigid) edit.
func (b *Buffer) Insert(pos int, text []byte) {
	b.EditSplice(pos, pos, text, false)
	b.position = pos + len(text)
}

// Delete removes [lo, hi) and leaves the cursor at lo.
func (b *Buffer) Delete(lo, hi int) []byte {
	removed := b.EditSplice(lo, hi, nil, true)
	b.position = lo
	return removed
}

// --- Character motion -------------------------------------------------

// isZeroWidth reports whether r occupies no terminal column, as opposed to
// being a newline (which is handled separately by motion) or an ordinary
// column-advancing character.
func isZeroWidth(r rune) bool {
	return r != '\n' && runewidth.RuneWidth(r) == 0
}

// NextCharEnd returns the byte offset just past the next character at or
// after pos, skipping any zero-width (combining) runes that directly follow
// the first column-advancing rune or newline.
func (b *Buffer) NextCharEnd(pos int) int {
	data := b.data
	if pos >= len(data) {
		return pos
	}
	r, size := utf8.DecodeRune(data[pos:])
	pos += size
	if r == '\n' {
		return pos
	}
	for pos < len(data) {
		r, size := utf8.DecodeRune(data[pos:])
		if r == '\n' || !isZeroWidth(r) {
			break
		}
		pos += size
	}
	return pos
}

// PrevCharStart returns the byte offset of the start of the character
// immediately before pos, skipping back over any zero-width runes first.
func (b *Buffer) PrevCharStart(pos int) int {
	data := b.data
	if pos <= 0 {
		return 0
	}
	p := pos
	for p > 0 {
		r, size := utf8.DecodeLastRune(data[:p])
		p -= size
		if r == '\n' || !isZeroWidth(r) {
			return p
		}
	}
	return p
}

// BeginOfLine returns the offset where the line containing pos starts: just
// past the last newline before pos, or 0 if none.
func (b *Buffer) BeginOfLine(pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if b.data[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// EndOfLine returns the index of the first newline at or after pos, or Len()
// if none.
func (b *Buffer) EndOfLine(pos int) int {
	for i := pos; i < len(b.data); i++ {
		if b.data[i] == '\n' {
			return i
		}
	}
	return len(b.data)
}

// --- Word motion --------------------------------------------------------

const defaultWordPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// IsDefaultDelimiter reports whether r is a delimiter under the default word
// rules: whitespace plus a fixed punctuation set.
func IsDefaultDelimiter(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	for _, p := range defaultWordPunct {
		if p == r {
			return true
		}
	}
	return false
}

// IsWhitespaceDelimiter implements the werase delimiter set (whitespace only).
func IsWhitespaceDelimiter(r rune) bool {
	return unicode.IsSpace(r)
}

// DelimiterFunc classifies a rune as a word-motion delimiter.
type DelimiterFunc func(r rune) bool

// NextWordEnd returns the offset after consuming a run of delimiters
// (per isDelim) followed by a run of non-delimiters, starting at pos.
func (b *Buffer) NextWordEnd(pos int, isDelim DelimiterFunc) int {
	data := b.data
	for pos < len(data) {
		r, size := utf8.DecodeRune(data[pos:])
		if !isDelim(r) {
			break
		}
		pos += size
	}
	for pos < len(data) {
		r, size := utf8.DecodeRune(data[pos:])
		if isDelim(r) {
			break
		}
		pos += size
	}
	return pos
}

// PrevWordStart returns the offset of the start of the word run immediately
// before pos, having first consumed any run of delimiters.
func (b *Buffer) PrevWordStart(pos int, isDelim DelimiterFunc) int {
	data := b.data
	for pos > 0 {
		r, size := utf8.DecodeLastRune(data[:pos])
		if !isDelim(r) {
			break
		}
		pos -= size
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRune(data[:pos])
		if isDelim(r) {
			break
		}
		pos -= size
	}
	return pos
}

// --- Backspace variants --------------------------------------------------

// BackspaceAlign computes the deletion range for an "align" backspace: up to
// four spaces are removed so that the remaining indent lands on a multiple
// of four display columns, measured from the start of the current line.
func (b *Buffer) BackspaceAlign(pos int) (lo, hi int) {
	lineStart := b.BeginOfLine(pos)
	col := pos - lineStart
	// Only applies when everything from lineStart to pos is spaces.
	for i := lineStart; i < pos; i++ {
		if b.data[i] != ' ' {
			return b.PrevCharStart(pos), pos
		}
	}
	n := col % 4
	if n == 0 {
		n = 4
	}
	if n > col {
		n = col
	}
	return pos - n, pos
}

// BackspaceAdjustExtra extends an align-backspace deletion to also eat spaces
// to the right of pos, preserving the relative column of the text that
// follows. adjust is only meaningful paired with align; it returns
// adjustedEnd, the end of the additional [pos, adjustedEnd) range of
// trailing spaces (at most removed of them) to remove.
func (b *Buffer) BackspaceAdjustExtra(pos, removed int) int {
	end := pos
	for i := 0; i < removed && end < len(b.data) && b.data[end] == ' '; i++ {
		end++
	}
	return end
}

// --- Auto-indent ----------------------------------------------------------

// AutoIndentFor computes the indentation string to prefix a newline inserted
// at pos with: the minimum of the leading whitespace of the line above and
// the column position within that line.
func (b *Buffer) AutoIndentFor(pos int) string {
	lineStart := b.BeginOfLine(pos)
	col := pos - lineStart

	leading := 0
	for i := lineStart; i < len(b.data) && b.data[i] == ' '; i++ {
		leading++
	}

	n := leading
	if col < n {
		n = col
	}
	if n <= 0 {
		return ""
	}
	return spaces(n)
}

func spaces(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}

// --- Region indent/outdent -------------------------------------------------

// lineStartsIn returns the byte offsets of the start of every line whose
// range intersects [lo, hi).
func (b *Buffer) lineStartsIn(lo, hi int) []int {
	var starts []int
	pos := b.BeginOfLine(lo)
	for {
		starts = append(starts, pos)
		end := b.EndOfLine(pos)
		if end >= hi || end >= len(b.data) {
			break
		}
		pos = end + 1
	}
	return starts
}

// IndentRegion inserts n spaces at the start of every line intersecting
// [lo, hi). It returns the net number of bytes inserted (for caller cursor
// bookkeeping).
func (b *Buffer) IndentRegion(lo, hi int, n int) int {
	starts := b.lineStartsIn(lo, hi)
	ins := []byte(spaces(n))
	inserted := 0
	// Apply from the last line backwards so earlier offsets stay valid.
	for i := len(starts) - 1; i >= 0; i-- {
		b.EditSplice(starts[i], starts[i], ins, true)
		inserted += n
	}
	return inserted
}

// OutdentRegion removes up to n leading spaces from every line intersecting
// [lo, hi). It refuses (returning ok=false, no mutation) if any line has
// fewer than n leading spaces.
func (b *Buffer) OutdentRegion(lo, hi int, n int) (removed int, ok bool) {
	starts := b.lineStartsIn(lo, hi)
	for _, s := range starts {
		count := 0
		for i := s; i < len(b.data) && b.data[i] == ' ' && count < n; i++ {
			count++
		}
		if count < n {
			return 0, false
		}
	}
	for i := len(starts) - 1; i >= 0; i-- {
		b.EditSplice(starts[i], starts[i]+n, nil, true)
		removed += n
	}
	return removed, true
}

// --- Transpose --------------------------------------------------------

// TransposeChars implements transpose-chars: if at EOF and at least one
// character exists, step left once, then swap the characters at and before
// the cursor. Returns false if there are fewer than two characters available.
func (b *Buffer) TransposeChars() bool {
	pos := b.position
	if pos >= len(b.data) && pos > 0 {
		pos = b.PrevCharStart(pos)
	}
	prevStart := b.PrevCharStart(pos)
	if prevStart == pos {
		return false
	}
	nextEnd := b.NextCharEnd(pos)
	if nextEnd == pos {
		return false
	}
	first := append([]byte(nil), b.data[prevStart:pos]...)
	second := append([]byte(nil), b.data[pos:nextEnd]...)
	swapped := append(append([]byte(nil), second...), first...)
	b.EditSplice(prevStart, nextEnd, swapped, true)
	b.position = nextEnd
	return true
}

// TransposeWords swaps the two words straddling the cursor, as located by
// isDelim, leaving the cursor just after the (now second) word.
func (b *Buffer) TransposeWords(isDelim DelimiterFunc) bool {
	nextWordEnd := b.NextWordEnd(b.position, isDelim)
	nextWordStart := b.PrevWordStart(nextWordEnd, isDelim)
	prevWordStart := b.PrevWordStart(nextWordStart, isDelim)
	prevWordEnd := b.NextWordEnd(prevWordStart, isDelim)
	if prevWordStart == nextWordStart || prevWordEnd > nextWordStart {
		return false
	}

	nextWord := append([]byte(nil), b.data[nextWordStart:nextWordEnd]...)
	gap := append([]byte(nil), b.data[prevWordEnd:nextWordStart]...)
	prevWord := append([]byte(nil), b.data[prevWordStart:prevWordEnd]...)

	replacement := append([]byte(nil), nextWord...)
	replacement = append(replacement, gap...)
	replacement = append(replacement, prevWord...)

	b.EditSplice(prevWordStart, nextWordEnd, replacement, true)
	b.position = prevWordStart + len(replacement)
	return true
}

// TransposeLines swaps the line containing pos with the adjacent line in the
// given direction (down=true moves it below the next line), preserving the
// column of pos within its line. It returns the new cursor position and
// whether the swap happened.
func (b *Buffer) TransposeLines(pos int, down bool) (newPos int, ok bool) {
	col := pos - b.BeginOfLine(pos)
	curStart := b.BeginOfLine(pos)
	curEnd := b.EndOfLine(pos)

	if down {
		if curEnd >= len(b.data) {
			return pos, false
		}
		nextStart := curEnd + 1
		nextEnd := b.EndOfLine(nextStart)
		cur := append([]byte(nil), b.data[curStart:curEnd]...)
		next := append([]byte(nil), b.data[nextStart:nextEnd]...)
		replacement := append(append([]byte(nil), next...), '\n')
		replacement = append(replacement, cur...)
		b.EditSplice(curStart, nextEnd, replacement, true)
		newLineStart := curStart + len(next) + 1
		return clampInt(newLineStart+col, curStart, len(b.data)), true
	}

	if curStart == 0 {
		return pos, false
	}
	prevEnd := curStart - 1
	prevStart := b.BeginOfLine(prevEnd)
	cur := append([]byte(nil), b.data[curStart:curEnd]...)
	prev := append([]byte(nil), b.data[prevStart:prevEnd]...)
	replacement := append(append([]byte(nil), cur...), '\n')
	replacement = append(replacement, prev...)
	b.EditSplice(prevStart, curEnd, replacement, true)
	newLineStart := prevStart
	return clampInt(newLineStart+col, prevStart, len(b.data)), true
}

// --- Case commands --------------------------------------------------------

type caseMode int

const (
	caseUpper caseMode = iota
	caseLower
	caseTitle
)

// ApplyCase transforms the next word to the right of pos (after skipping
// leading delimiters) according to mode, returning the new end-of-word
// position, or pos unchanged if no word follows.
func (b *Buffer) ApplyCase(pos int, isDelim DelimiterFunc, mode caseMode) int {
	data := b.data
	start := pos
	for start < len(data) {
		r, size := utf8.DecodeRune(data[start:])
		if !isDelim(r) {
			break
		}
		start += size
	}
	end := start
	first := true
	var out []byte
	for end < len(data) {
		r, size := utf8.DecodeRune(data[end:])
		if isDelim(r) {
			break
		}
		switch mode {
		case caseUpper:
			r = unicode.ToUpper(r)
		case caseLower:
			r = unicode.ToLower(r)
		case caseTitle:
			if first {
				r = unicode.ToUpper(r)
			} else {
				r = unicode.ToLower(r)
			}
		}
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		out = append(out, tmp[:n]...)
		end += size
		first = false
	}
	if end == start {
		return pos
	}
	b.EditSplice(start, end, out, true)
	return start + len(out)
}
