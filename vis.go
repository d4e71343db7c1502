package lineedit

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// historyLineCodec encodes/decodes a single history entry using libedit's
// "vis" encoding, the format NetBSD's editline (and hence libedit-compatible
// history files) uses to make control and whitespace bytes safe to store
// one-per-line in a plain text file.
type historyLineCodec struct{}

// historyCodec is the stateless codec MemoryHistory's LoadFile/SaveFile use.
var historyCodec historyLineCodec

// encode renders line as a single vis-safe line with no embedded newlines,
// suitable for appending to a history file.
func (historyLineCodec) encode(line string) string {
	var buf strings.Builder
	for len(line) > 0 {
		r, size := utf8.DecodeRuneInString(line)
		line = line[size:]

		switch {
		case unicode.IsSpace(r) || r == '\\':
			fmt.Fprintf(&buf, "\\%03o", int(r))
		case unicode.IsControl(r):
			buf.WriteByte('\\')
			buf.WriteByte('^')
			buf.WriteRune(r + 0x40)
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// decode reverses encode. It does not implement the "%<hex>", "&<amp>", or
// "=<mime>" vis escape forms, which libedit's own history writer never
// produces.
func (historyLineCodec) decode(encoded string) (string, error) {
	var buf strings.Builder
	s := encoded

	for len(s) > 0 {
		meta := byte(0)
		t, ch := s, s[0]
		s = s[1:]

		switch ch {
		case '\\':
			if len(s) == 0 {
				return "", errors.Errorf("truncated vis escape in %q", encoded)
			}
			ch, s = s[0], s[1:]
			switch ch {
			case '0', '1', '2', '3', '4', '5', '6', '7', 'x', '\\', 'a', 'b', 'f', 'n', 'r', 't', 'v':
				r, _, rem, err := strconv.UnquoteChar(t, 0)
				if err != nil {
					return "", errors.Wrapf(err, "decoding vis escape in %q", encoded)
				}
				buf.WriteRune(r)
				s = rem
			case 'M':
				if len(s) == 0 {
					return "", errors.Errorf("truncated \\M escape in %q", encoded)
				}
				meta = 0200
				ch, s = s[0], s[1:]
				switch ch {
				case '-':
					if len(s) == 0 {
						return "", errors.Errorf("truncated \\M- escape in %q", encoded)
					}
					ch, s = s[0], s[1:]
					buf.WriteByte(ch | meta)
					continue
				case '^':
					// Meta+control, fall through to the control case below.
				default:
					return "", errors.Errorf("unexpected %q after \\M in %q", ch, encoded)
				}
				fallthrough
			case '^':
				if len(s) == 0 {
					return "", errors.Errorf("truncated \\^ escape in %q", encoded)
				}
				ch, s = s[0], s[1:]
				if ch == '?' {
					buf.WriteByte(0177 | meta)
				} else {
					buf.WriteByte((ch & 037) | meta)
				}
			case 's':
				buf.WriteByte(' ')
			case 'E':
				buf.WriteByte('\x1b')
			case '\n', '$':
				// Hidden newline or line-continuation marker: skip.
			default:
				return "", errors.Errorf("unknown vis escape %q in %q", ch, encoded)
			}

		default:
			r, size := utf8.DecodeRuneInString(t)
			buf.WriteRune(r)
			s = t[size:]
		}
	}

	return buf.String(), nil
}
