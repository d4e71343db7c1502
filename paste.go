package lineedit

import (
	"strings"
	"time"
)

// pasteDetector implements the time-based paste heuristic: a burst of
// non-space insertions arriving faster than AutoIndentTimeThreshold apart is
// treated as a paste, and the editor suppresses auto-indent (through
// Options.AutoIndentTmpOff) until a slower non-space insertion. It is separate
// from bracketed-paste handling (readBracketedPaste below), which is exact
// rather than heuristic when the terminal supports it.
type pasteDetector struct {
	opts     *Options
	lastTime time.Time
	lastSet  bool
}

func newPasteDetector(opts *Options) *pasteDetector {
	return &pasteDetector{opts: opts}
}

// Observe records a non-space self-insert at the current time and reports
// whether, combined with the previous observation, it looks like a paste.
func (p *pasteDetector) Observe() bool {
	now := p.opts.clock()
	looksLikePaste := false
	if p.lastSet && now.Sub(p.lastTime) < p.opts.AutoIndentTimeThreshold {
		looksLikePaste = true
	}
	p.lastTime = now
	p.lastSet = true
	return looksLikePaste
}

// Reset forgets the last observation; the editor calls it after each
// bracketed paste.
func (p *pasteDetector) Reset() { p.lastSet = false }

// stripPasteIndent removes the indentation shared by every line of a
// bracketed paste, per AutoIndentBracketedPaste, since the pasted text
// already carries its own indentation and the editor's own auto-indent
// would double it up. Only the common prefix is removed, so indentation
// relative to the least-indented line survives intact.
func stripPasteIndent(text string) string {
	lines := strings.Split(text, "\n")
	common := -1
	for _, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			continue // blank lines don't constrain the common indent
		}
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		if common == -1 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return text
	}
	for i, line := range lines {
		n := common
		if n > len(line) {
			n = len(line)
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}

// expandPasteTabs rewrites literal tabs in pasted text to spaces using
// tabWidth, since the buffer/renderer otherwise treats a raw tab as a
// single zero-progress byte rather than an aligning stop.
func expandPasteTabs(text string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	out := make([]byte, 0, len(text))
	col := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\t':
			n := tabWidth - col%tabWidth
			for j := 0; j < n; j++ {
				out = append(out, ' ')
			}
			col += n
		case '\n':
			out = append(out, c)
			col = 0
		default:
			out = append(out, c)
			col++
		}
	}
	return string(out)
}

// normalizePasteLineEndings converts CR and CRLF to LF, since terminals in
// bracketed-paste mode still send the pasted text's original line endings
// verbatim.
func normalizePasteLineEndings(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			c = '\n'
		}
		out = append(out, c)
	}
	return string(out)
}

// readBracketedPaste reads raw bytes from read until the bracketed-paste
// terminator sequence, applying line-ending normalization, tab expansion,
// and (if enabled) indentation stripping before returning the text ready to
// insert as a single edit.
func readBracketedPaste(read func() (byte, error), opts *Options) (string, error) {
	const terminator = "\x1b[201~"
	var raw []byte
	for {
		b, err := read()
		if err != nil {
			return "", err
		}
		raw = append(raw, b)
		if len(raw) >= len(terminator) && string(raw[len(raw)-len(terminator):]) == terminator {
			raw = raw[:len(raw)-len(terminator)]
			break
		}
	}
	text := normalizePasteLineEndings(string(raw))
	text = expandPasteTabs(text, opts.TabWidth)
	if opts.AutoIndentBracketedPaste {
		text = stripPasteIndent(text)
	}
	return text, nil
}
