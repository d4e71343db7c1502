package lineedit

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// ANSI SGR escapes used by the renderer and by the default beep/region
// animation colors in Options.
const (
	fgRed        = "\x1b[31m"
	fgYellow     = "\x1b[33m"
	fgDefault    = "\x1b[39m"
	dimAttr      = "\x1b[2m"
	reverseVideo = "\x1b[7m"
	resetAttr    = "\x1b[0m"
	clearToEOL   = "\x1b[K"
	cursorHome   = "\r"
)

// displayWidth measures the terminal column width of r, folding in East
// Asian wide/fullwidth runes via golang.org/x/text/width in addition to the
// go-runewidth table the buffer's motion code already consults.
func displayWidth(r rune) int {
	p := width.LookupRune(r)
	switch p.Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return runewidth.RuneWidth(r)
}

// visualRow is one wrapped line of screen content: the raw bytes it covers,
// its total display width in columns, and where it starts in the source.
type visualRow struct {
	text   string
	cols   int
	start  int // byte offset into the source text where this row begins
}

// wrapText lays text out into visual rows of at most width columns,
// breaking on '\n' and wrapping mid-line once a rune would overflow.
func wrapText(text string, width int) []visualRow {
	if width <= 0 {
		width = 80
	}
	var rows []visualRow
	rowStart := 0
	col := 0
	var b strings.Builder

	flush := func(nextStart int) {
		rows = append(rows, visualRow{text: b.String(), cols: col, start: rowStart})
		b.Reset()
		col = 0
		rowStart = nextStart
	}

	i := 0
	for i < len(text) {
		r, size := decodeRuneAt(text, i)
		if r == '\n' {
			flush(i + size)
			i += size
			continue
		}
		w := displayWidth(r)
		if col+w > width && col > 0 {
			flush(i)
		}
		b.WriteString(text[i : i+size])
		col += w
		i += size
	}
	rows = append(rows, visualRow{text: b.String(), cols: col, start: rowStart})
	return rows
}

func decodeRuneAt(s string, i int) (rune, int) {
	return utf8.DecodeRuneInString(s[i:])
}

// Renderer repaints the prompt line(s) in place, erasing exactly the rows it
// painted last time before drawing the new frame, matching the
// move-up/clear/redraw cycle petermattis-prompt's screen code used.
type Renderer struct {
	term   Terminal
	width  int
	height int // 0 means unknown/unbounded: no row-pressure centering

	lastRowCount  int
	lastCursorRow int
}

// NewRenderer builds a Renderer that writes to term, wrapping at width
// columns. Height is left unset (no centering) until SetHeight is called;
// most callers know the terminal's height only after construction.
func NewRenderer(term Terminal, width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	return &Renderer{term: term, width: width}
}

// SetWidth updates the wrap width, e.g. on SIGWINCH.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// SetHeight updates the terminal row count used for row-pressure centering,
// e.g. on SIGWINCH.
func (r *Renderer) SetHeight(height int) {
	if height > 0 {
		r.height = height
	}
}

// Frame is everything the renderer needs to paint one prompt line: the
// prompt text, the buffer contents, the active region (if any), and an
// optional hint to display past the cursor when the cursor sits at the end
// of the buffer.
type Frame struct {
	Prompt       string
	Buf          []byte
	Position     int
	RegionLo     int
	RegionHi     int
	RegionActive bool
	Hint         string
}

// Paint erases the previous frame and draws the new one, leaving the
// terminal cursor positioned at the buffer's insertion point.
func (r *Renderer) Paint(f Frame) {
	r.erasePrevious()

	full := f.Prompt + string(f.Buf)
	if r.height == 1 && strings.HasSuffix(full, "\n") {
		// A one-row terminal can't spare a row for a trailing blank line;
		// drop it before paint rather than generalizing the centering
		// logic below to a degenerate single-row case.
		full = full[:len(full)-1]
	}
	rows := wrapText(full, r.width)

	cursorOffset := len(f.Prompt) + f.Position
	if cursorOffset > len(full) {
		cursorOffset = len(full)
	}
	cursorRow, cursorCol := locate(rows, cursorOffset)

	if r.height > 0 && len(rows) > r.height {
		// Row-pressure centering: lines before the cursor are still
		// emitted (they scroll out), but display is truncated after
		// height/2 rows past the cursor.
		if limit := cursorRow + r.height/2 + 1; limit < len(rows) {
			rows = rows[:limit]
		}
	}

	var out strings.Builder
	for i, row := range rows {
		if i > 0 {
			out.WriteString("\r\n")
		}
		r.writeRow(&out, row, f, len(f.Prompt))
	}
	if f.Hint != "" && f.Position == len(f.Buf) {
		out.WriteString(dimAttr)
		out.WriteString(f.Hint)
		out.WriteString(resetAttr)
	}

	r.term.Write([]byte(out.String()))

	// Move cursor up from the last painted row to the cursor's row, then to
	// its column.
	lastRow := len(rows) - 1
	if up := lastRow - cursorRow; up > 0 {
		r.term.Write([]byte(cursorMove(up, 'A')))
	}
	r.term.Write([]byte("\r"))
	if cursorCol > 0 {
		r.term.Write([]byte(cursorMove(cursorCol, 'C')))
	}

	r.lastRowCount = len(rows)
	r.lastCursorRow = cursorRow
}

func cursorMove(n int, dir byte) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + itoa(n) + string(dir)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// writeRow emits one visual row, applying reverse video to the portion of it
// that falls within an active region.
func (r *Renderer) writeRow(out *strings.Builder, row visualRow, f Frame, promptLen int) {
	rowStart := row.start
	rowEnd := rowStart + len(row.text)

	if !f.RegionActive {
		out.WriteString(row.text)
		out.WriteString(clearToEOL)
		return
	}

	loAbs := promptLen + f.RegionLo
	hiAbs := promptLen + f.RegionHi
	lo := clampInt(loAbs, rowStart, rowEnd)
	hi := clampInt(hiAbs, rowStart, rowEnd)
	if lo >= hi {
		out.WriteString(row.text)
		out.WriteString(clearToEOL)
		return
	}

	out.WriteString(row.text[:lo-rowStart])
	out.WriteString(reverseVideo)
	out.WriteString(row.text[lo-rowStart : hi-rowStart])
	out.WriteString(resetAttr)
	out.WriteString(row.text[hi-rowStart:])
	out.WriteString(clearToEOL)
}

// locate finds which row and column an absolute byte offset into the
// original (prompt+buffer) text falls on.
func locate(rows []visualRow, offset int) (row, col int) {
	for i, rv := range rows {
		end := rv.start + len(rv.text)
		if offset <= end || i == len(rows)-1 {
			w := 0
			j := rv.start
			for j < offset && j < end {
				r, size := decodeRuneAt(rv.text, j-rv.start)
				w += displayWidth(r)
				j += size
			}
			return i, w
		}
	}
	return 0, 0
}

// erasePrevious clears every row painted by the previous Paint call before
// redrawing, moving up from wherever the cursor last rested.
func (r *Renderer) erasePrevious() {
	if r.lastRowCount == 0 {
		return
	}
	var out strings.Builder
	if r.lastCursorRow > 0 {
		out.WriteString(cursorMove(r.lastCursorRow, 'A'))
	}
	out.WriteString("\r")
	for i := 0; i < r.lastRowCount; i++ {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(clearToEOL)
	}
	if r.lastRowCount > 1 {
		out.WriteString(cursorMove(r.lastRowCount-1, 'A'))
	}
	out.WriteString("\r")
	r.term.Write([]byte(out.String()))
}

// ClearScreen wipes the whole terminal, as bound to Ctrl-L, and forgets the
// previous paint so the next Paint starts from a blank slate.
func (r *Renderer) ClearScreen() {
	r.term.Write([]byte("\x1b[H\x1b[2J"))
	r.lastRowCount = 0
	r.lastCursorRow = 0
}
