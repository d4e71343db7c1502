package lineedit

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminal is the abstraction the editor drives: raw-mode control, size
// queries, byte-level I/O and the handful of capability escapes the renderer
// needs. Tests substitute a fake implementation; ttyTerminal wraps
// golang.org/x/term for real sessions.
type Terminal interface {
	io.Reader
	io.Writer
	EnterRawMode() (restore func() error, err error)
	Size() (width, height int, err error)
	HasColor() bool
	EnableBracketedPaste()
	DisableBracketedPaste()
}

// ttyTerminal is the production Terminal, backed by a real tty file
// descriptor through golang.org/x/term, mirroring petermattis-prompt's
// direct syscall-based terminal handling but routed through the
// cross-platform x/term package it already depended on.
type ttyTerminal struct {
	fd     int
	r      io.Reader
	w      io.Writer
	width  int
	height int
}

func newTTYTerminal(fd int) *ttyTerminal {
	return &ttyTerminal{fd: fd}
}

func (t *ttyTerminal) setIO(r io.Reader, w io.Writer) {
	t.r, t.w = r, w
}

func (t *ttyTerminal) setReader(r io.Reader) { t.r = r }
func (t *ttyTerminal) setWriter(w io.Writer) { t.w = w }

func (t *ttyTerminal) Read(p []byte) (int, error) {
	if t.r != nil {
		return t.r.Read(p)
	}
	return os.Stdin.Read(p)
}

func (t *ttyTerminal) Write(p []byte) (int, error) {
	if t.w != nil {
		return t.w.Write(p)
	}
	return os.Stdout.Write(p)
}

func (t *ttyTerminal) EnterRawMode() (func() error, error) {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, errors.Wrap(err, "entering raw mode")
	}
	return func() error { return term.Restore(t.fd, state) }, nil
}

func (t *ttyTerminal) Size() (int, int, error) {
	if t.width > 0 && t.height > 0 {
		return t.width, t.height, nil
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "querying terminal size")
	}
	t.width, t.height = w, h
	return w, h, nil
}

func (t *ttyTerminal) HasColor() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

func (t *ttyTerminal) EnableBracketedPaste() {
	io.WriteString(t, "\x1b[?2004h")
}

func (t *ttyTerminal) DisableBracketedPaste() {
	io.WriteString(t, "\x1b[?2004l")
}

// newBufferedReader wraps a Terminal's Read side with buffering so the input
// decoder can read one byte at a time cheaply; grounded on
// petermattis-prompt's use of bufio for the same purpose.
func newBufferedReader(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, 256)
}
