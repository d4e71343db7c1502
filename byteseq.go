package lineedit

import "unicode/utf8"

// Key values. Printable runes are represented directly; everything else
// lives in the range above the UTF-16 surrogate area (which can never occur
// in a decoded UTF-8 stream) or is built from the keyCtrl/keyAlt modifier
// bits layered onto a base rune.
const (
	keyCtrlSpace = 0
	keyCtrlA     = 1
	keyCtrlB     = 2
	keyCtrlC     = 3
	keyCtrlD     = 4
	keyCtrlE     = 5
	keyCtrlF     = 6
	keyCtrlG     = 7
	keyCtrlH     = 8
	keyTab       = 9
	keyCtrlK     = 11
	keyCtrlL     = 12
	keyCtrlN     = 14
	keyCtrlP     = 16
	keyCtrlR     = 18
	keyCtrlS     = 19
	keyCtrlT     = 20
	keyCtrlU     = 21
	keyCtrlW     = 23
	keyCtrlY     = 25
	keyCtrlUnderscore = 31
	keyEnter     = '\r'
	keyEscape    = 27
	keyBackspace = 127
	keyUnknown   = 0xd800 /* UTF-16 surrogate area */ + iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyHome
	keyEnd
	keyPageUp
	keyPageDown
	keyDelete
	keyPasteStart
	keyPasteEnd
	keyCtrl  = 0x20000000
	keyAlt   = 0x40000000
	keyShift = 0x10000000
)

// xtermModifierSeqs maps the CSI "modifier parameter" xterm appends to
// cursor-key sequences (ESC [ 1 ; <param> <letter>) onto the keyCtrl/keyAlt/
// keyShift bits a matched key carries. Param 2 is shift-only, 3 is
// alt-only, 5 is ctrl-only, 6 is ctrl+shift, 9 is the alt encoding some
// terminals (notably iTerm2) emit instead of 3.
var xtermModifierSeqs = map[byte]rune{
	'2': keyShift,
	'3': keyAlt,
	'5': keyCtrl,
	'6': keyCtrl | keyShift,
	'9': keyAlt,
}

// cursorKeyDirs maps the xterm CSI/SS3 final byte for a cursor-block key to
// its base rune, the common part of both its unmodified form ("\x1bOA",
// "\x1b[A", ...) and its modified form ("\x1b[1;<param><letter>").
var cursorKeyDirs = map[byte]rune{
	'A': keyUp,
	'B': keyDown,
	'C': keyRight,
	'D': keyLeft,
	'H': keyHome,
	'F': keyEnd,
}

// buildSupportedSeqs assembles the control sequences to the key value that
// will be reported when they're matched.
//
// Note that we can't specify control sequences to cover the desired key input
// for all terminals because the same control sequence is sometimes used by
// different terminals to represent different keys. The control sequences below
// support 75% of the ~2500 terminals listed in my terminfo database; the
// modifier-parameter form ("\x1b[1;<param><letter>") is generated for every
// cursor key against every modifier xterm defines, rather than hand-listing
// one entry per (key, modifier) pair as terminfo would.
func buildSupportedSeqs() map[string]rune {
	seqs := map[string]rune{
		"\x1b[3~":   keyDelete,
		"\x1b[6~":   keyPageDown,
		"\x1b[5~":   keyPageUp,
		"\x1b[200~": keyPasteStart,
		"\x1b[201~": keyPasteEnd,
		"\x1b[1~":   keyHome,
		"\x1b[7~":   keyHome,
		"\x1b[4~":   keyEnd,
		"\x1b[8~":   keyEnd,

		// SS3 lowercase is the Ctrl-modified form some terminals (old
		// xterm, rxvt) emit for arrow keys instead of the "\x1b[1;5<letter>"
		// parameter form generated below.
		"\x1bOa": keyUp | keyCtrl,
		"\x1bOb": keyDown | keyCtrl,
		"\x1bOc": keyRight | keyCtrl,
		"\x1bOd": keyLeft | keyCtrl,
	}
	for final, base := range cursorKeyDirs {
		seqs["\x1bO"+string(final)] = base
		seqs["\x1b["+string(final)] = base
		for param, mod := range xtermModifierSeqs {
			seqs["\x1b[1;"+string(param)+string(final)] = base | mod
		}
	}
	return seqs
}

var supportedSeqs = buildSupportedSeqs()

type seqTrie struct {
	children []seqTrie
	key      byte
	value    rune
}

func (t *seqTrie) findChild(b byte) *seqTrie {
	for i := range t.children {
		child := &t.children[i]
		if child.key == b {
			return child
		}
	}
	return nil
}

func (t *seqTrie) add(seq []byte, value rune) {
	node := t
	for _, b := range seq {
		child := node.findChild(b)
		if child == nil {
			node.children = append(node.children, seqTrie{key: b})
			child = &node.children[len(node.children)-1]
		}
		node = child
	}
	node.value = value
}

func (t *seqTrie) match(buf, origBuf []byte, mods rune) (rune, []byte) {
	node := t
	for i, b := range buf {
		node = node.findChild(b)
		if node == nil {
			// If we get here then we have a sequence that we don't recognise, or a partial
			// sequence. It's not clear how one should find the end of a sequence without
			// knowing them all, but it seems that [a-zA-Z~] only appears at the end of a
			// sequence.
			for j := i; j < len(buf); j++ {
				b := buf[j]
				if b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '~' {
					return keyUnknown, buf[i+1:]
				}
			}
			return utf8.RuneError, origBuf
		}
		if len(node.children) == 0 {
			// We've reached a leaf node, so return the value.
			//
			// Special case handling for the keyPasteStart and keyPasteEnd sequences: we
			// don't include the supplied modifiers.
			if node.value == keyPasteStart || node.value == keyPasteEnd {
				mods = 0
			}
			return node.value | mods, buf[i+1:]
		}
	}
	// We were matching a sequence but ran out of bytes in the supplied buffer.
	// Return an error so the caller knows to read more and try again.
	return utf8.RuneError, origBuf
}

var seqMatcher = func() *seqTrie {
	t := &seqTrie{}
	for seq, value := range supportedSeqs {
		t.add([]byte(seq), value)
	}
	return t
}()

// parseKey parses a single key from the prefix of the specified byte slice.
// Parsing keys is challenging because the input sequences used by terminals
// differ. Rather than the termcap/terminfo approach of determining the input
// sequences based on the $TERM env var, this code takes the approach of
// handling the most common sequences used by the majority (~75%) of terminals
// and all modern terminals. This is also the approached used by linenoise, and
// libraries inspired by linenoise.
//
// If the input sequence is not recognized, keyUnknown is returned. If a prefix
// of a recognized input sequence is matched but there are insufficient bytes in
// the input, utf8.RuneError is returned. On success, the remaining bytes in the
// input will be returned.
//
// See https://invisible-island.net/xterm/xterm-function-keys.html which
// describes the xterm function keys, and also points to dumping term output
// using infocmp.
//
// See https://en.wikipedia.org/wiki/ANSI_escape_code#Terminal_input_sequences
// which describes the general structure of terminal input sequences.
func parseKey(buf []byte) (rune, []byte) {
	var origBuf = buf
	var mods rune

	for len(buf) >= 2 {
		// An escape that is not the beginning of "\x1bO..." or "\x1b[..." sets the keyAlt
		// modifier.
		if buf[0] != keyEscape || buf[1] == 'O' || buf[1] == '[' {
			break
		}
		mods |= keyAlt
		buf = buf[1:]
	}

	if len(buf) <= 0 {
		return utf8.RuneError, origBuf
	}

	if buf[0] != keyEscape {
		if !utf8.FullRune(buf) {
			return utf8.RuneError, origBuf
		}
		r, l := utf8.DecodeRune(buf)
		return r | mods, buf[l:]
	}

	return seqMatcher.match(buf, origBuf, mods)
}
