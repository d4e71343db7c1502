package lineedit

import "strings"

// Outcome is what the dispatcher should do once an action has run.
type Outcome int

const (
	// OutcomeOK means keep editing in the current mode.
	OutcomeOK Outcome = iota
	// OutcomeIgnore means the input was dropped; nothing changed.
	OutcomeIgnore
	// OutcomeDone means the line is complete and should be returned to the caller.
	OutcomeDone
	// OutcomeAbort means the line should be discarded (Ctrl-C / Ctrl-G style abort).
	OutcomeAbort
	// OutcomeSuspend means the process should suspend itself (Ctrl-Z).
	OutcomeSuspend
)

// KeyAction names one bound behavior. Built-in names are the
// actionXxx constants below; callers may also register their own under
// arbitrary names via WithKeymap bound to a custom ActionFunc through
// RegisterAction.
type KeyAction string

const (
	actionSelfInsert     KeyAction = "self-insert"
	actionForwardChar    KeyAction = "forward-char"
	actionBackwardChar   KeyAction = "backward-char"
	actionForwardWord    KeyAction = "forward-word"
	actionBackwardWord   KeyAction = "backward-word"
	actionBeginningOfLine KeyAction = "beginning-of-line"
	actionEndOfLine      KeyAction = "end-of-line"
	actionUpLine         KeyAction = "up-line"
	actionDownLine       KeyAction = "down-line"

	actionDeleteChar       KeyAction = "delete-char"
	actionBackwardDeleteChar KeyAction = "backward-delete-char"
	actionDeleteWord       KeyAction = "delete-word"
	actionBackwardDeleteWord KeyAction = "backward-delete-word"
	actionKillLine         KeyAction = "kill-line"
	actionKillWholeLine    KeyAction = "kill-whole-line"
	actionBackwardKillLine KeyAction = "backward-kill-line"
	actionKillRegion       KeyAction = "kill-region"
	actionCopyRegion       KeyAction = "copy-region-as-kill"
	actionYank             KeyAction = "yank"
	actionYankPop          KeyAction = "yank-pop"

	actionUndo KeyAction = "undo"
	actionRedo KeyAction = "redo"

	actionSetMark        KeyAction = "set-mark"
	actionExchangePointAndMark KeyAction = "exchange-point-and-mark"
	actionIndentRegion   KeyAction = "indent-region"
	actionOutdentRegion  KeyAction = "outdent-region"

	actionTransposeChars    KeyAction = "transpose-chars"
	actionTransposeWords    KeyAction = "transpose-words"
	actionTransposeLineUp   KeyAction = "transpose-line-up"
	actionTransposeLineDown KeyAction = "transpose-line-down"

	actionUpcaseWord   KeyAction = "upcase-word"
	actionDowncaseWord KeyAction = "downcase-word"
	actionCapitalizeWord KeyAction = "capitalize-word"

	actionClearScreen KeyAction = "clear-screen"
	actionComplete    KeyAction = "complete"
	actionAcceptLine  KeyAction = "accept-line"
	actionNewline     KeyAction = "newline"
	actionAbort       KeyAction = "abort"
	actionInterrupt   KeyAction = "interrupt"
	actionEOF         KeyAction = "send-eof"
	actionSuspend     KeyAction = "suspend"

	// Mode-transition actions: the dispatcher special-cases these by name
	// rather than invoking an ActionFunc, since they swap the active
	// ModeState wholesale.
	actionHistorySearchBackward KeyAction = "history-search-backward"
	actionHistorySearchForward  KeyAction = "history-search-forward"
	actionPrefixHistoryPrev     KeyAction = "prefix-history-search-backward"
	actionPrefixHistoryNext     KeyAction = "prefix-history-search-forward"
	actionHistoryPrev           KeyAction = "previous-history"
	actionHistoryNext           KeyAction = "next-history"
	actionHistoryFirst          KeyAction = "beginning-of-history"
	actionHistoryLast           KeyAction = "end-of-history"
	actionModeAccept            KeyAction = "mode-accept"
	actionModeCancel            KeyAction = "mode-cancel"

	// shift_-prefixed variants of the plain motions: dispatch (region.go)
	// strips the prefix and activates a RegionShift region before running
	// the underlying motion, per the shift-selection rule in §4.5. They are
	// never registered in actionRegistry directly; lookupAction only ever
	// sees the stripped name.
	actionShiftForwardChar    KeyAction = "shift_forward-char"
	actionShiftBackwardChar   KeyAction = "shift_backward-char"
	actionShiftForwardWord    KeyAction = "shift_forward-word"
	actionShiftBackwardWord   KeyAction = "shift_backward-word"
	actionShiftBeginningOfLine KeyAction = "shift_beginning-of-line"
	actionShiftEndOfLine      KeyAction = "shift_end-of-line"
	actionShiftUpLine         KeyAction = "shift_up-line"
	actionShiftDownLine       KeyAction = "shift_down-line"
)

// EditContext is the mutable state one mode's buffer operations act on.
// Prompt, HistorySearch and PrefixHistorySearch each carry their own.
type EditContext struct {
	Buf    *Buffer
	Kill   *KillRing
	Undo   *UndoStack
	Region RegionState
	Opts   *Options

	// KeyRepeats is how many times in a row the key that triggered the
	// action presently running has now been seen, set by the dispatcher
	// before invoking an ActionFunc; consumed by commands that change
	// behavior on repeat (doSetMark).
	KeyRepeats int

	// lastWasKill tracks whether the immediately preceding action was a
	// kill, so consecutive kill commands concatenate into one ring entry.
	lastWasKill bool
}

// NewEditContext builds a ready-to-use context sharing the given options
// and kill ring (the kill ring is shared session-wide; buffer/undo are not).
func NewEditContext(opts *Options, kill *KillRing) *EditContext {
	buf := NewBuffer()
	return &EditContext{
		Buf:  buf,
		Kill: kill,
		Undo: NewUndoStack(buf.Snapshot()),
		Opts: opts,
	}
}

// ActionFunc implements the behavior bound to a KeyAction. key is the
// decoded key that triggered it (actions bound behind a wildcard need it;
// others may ignore it).
type ActionFunc func(ctx *EditContext, key rune) Outcome

// actionRegistry holds the built-in action implementations, keyed by name
// so the keymap trie only ever needs to carry string identifiers.
var actionRegistry = map[KeyAction]ActionFunc{
	actionSelfInsert:     doSelfInsert,
	actionForwardChar:    doForwardChar,
	actionBackwardChar:   doBackwardChar,
	actionForwardWord:    doForwardWord,
	actionBackwardWord:   doBackwardWord,
	actionBeginningOfLine: doBeginningOfLine,
	actionEndOfLine:      doEndOfLine,
	actionUpLine:         doUpLine,
	actionDownLine:       doDownLine,

	actionDeleteChar:         doDeleteChar,
	actionBackwardDeleteChar: doBackwardDeleteChar,
	actionDeleteWord:         doDeleteWord,
	actionBackwardDeleteWord: doBackwardDeleteWord,
	actionKillLine:           doKillLine,
	actionKillWholeLine:      doKillWholeLine,
	actionBackwardKillLine:   doBackwardKillLine,
	actionKillRegion:         doKillRegion,
	actionCopyRegion:         doCopyRegion,
	actionYank:               doYank,
	actionYankPop:            doYankPop,

	actionUndo: doUndo,
	actionRedo: doRedo,

	actionSetMark:              doSetMark,
	actionExchangePointAndMark: doExchangePointAndMark,
	actionIndentRegion:         doIndentRegion,
	actionOutdentRegion:        doOutdentRegion,

	actionTransposeChars:    doTransposeChars,
	actionTransposeWords:    doTransposeWords,
	actionTransposeLineUp:   doTransposeLineUp,
	actionTransposeLineDown: doTransposeLineDown,

	actionUpcaseWord:     doUpcaseWord,
	actionDowncaseWord:   doDowncaseWord,
	actionCapitalizeWord: doCapitalizeWord,

	actionAcceptLine: doAcceptLine,
	actionNewline:    doNewline,
	actionAbort:      doAbort,
	actionInterrupt:  doAbort,
	actionEOF:        doEOF,
	actionSuspend:    doSuspend,
}

// RegisterAction adds or replaces a named action in the global registry,
// letting callers bind their own behaviors through WithKeymap.
func RegisterAction(name KeyAction, fn ActionFunc) { actionRegistry[name] = fn }

func lookupAction(name KeyAction) (ActionFunc, bool) {
	fn, ok := actionRegistry[name]
	return fn, ok
}

func (ctx *EditContext) snapshot() { ctx.Undo.RecordEdit(ctx.Buf.Snapshot()) }

func (ctx *EditContext) wordDelim() DelimiterFunc { return IsDefaultDelimiter }

func doSelfInsert(ctx *EditContext, key rune) Outcome {
	if key < 0 || key > 0x10FFFF {
		return OutcomeIgnore
	}
	ctx.Buf.Insert(ctx.Buf.Position(), []byte(string(key)))
	ctx.snapshot()
	return OutcomeOK
}

func doForwardChar(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.NextCharEnd(ctx.Buf.Position()))
	return OutcomeOK
}

func doBackwardChar(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.PrevCharStart(ctx.Buf.Position()))
	return OutcomeOK
}

func doForwardWord(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.NextWordEnd(ctx.Buf.Position(), ctx.wordDelim()))
	return OutcomeOK
}

func doBackwardWord(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.PrevWordStart(ctx.Buf.Position(), ctx.wordDelim()))
	return OutcomeOK
}

func doBeginningOfLine(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.BeginOfLine(ctx.Buf.Position()))
	return OutcomeOK
}

func doEndOfLine(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.EndOfLine(ctx.Buf.Position()))
	return OutcomeOK
}

// doUpLine/doDownLine move to the same column on the previous/next line,
// clamped to that line's length; bound to Ctrl-P/Ctrl-N (and, extending the
// region, Shift-Up/Shift-Down). The plain Up/Down arrows navigate history.
func doUpLine(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	lineStart := b.BeginOfLine(b.Position())
	col := b.Position() - lineStart
	if lineStart == 0 {
		return OutcomeIgnore
	}
	prevEnd := lineStart - 1
	prevStart := b.BeginOfLine(prevEnd)
	newPos := prevStart + col
	if newPos > prevEnd {
		newPos = prevEnd
	}
	b.SetPosition(newPos)
	return OutcomeOK
}

func doDownLine(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	lineStart := b.BeginOfLine(b.Position())
	col := b.Position() - lineStart
	lineEnd := b.EndOfLine(b.Position())
	if lineEnd >= b.Len() {
		return OutcomeIgnore
	}
	nextStart := lineEnd + 1
	nextEnd := b.EndOfLine(nextStart)
	newPos := nextStart + col
	if newPos > nextEnd {
		newPos = nextEnd
	}
	b.SetPosition(newPos)
	return OutcomeOK
}

func doDeleteChar(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	end := b.NextCharEnd(pos)
	if end == pos {
		return OutcomeIgnore
	}
	b.Delete(pos, end)
	ctx.snapshot()
	return OutcomeOK
}

func doBackwardDeleteChar(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	start := b.PrevCharStart(pos)
	if start == pos {
		return OutcomeIgnore
	}
	if ctx.Opts != nil && ctx.Opts.BackspaceAlign {
		lo, hi := b.BackspaceAlign(pos)
		removed := b.Delete(lo, hi)
		if ctx.Opts.BackspaceAdjust && strings.TrimLeft(string(removed), " ") == "" {
			if end := b.BackspaceAdjustExtra(lo, len(removed)); end > lo {
				b.Delete(lo, end)
			}
		}
		ctx.snapshot()
		return OutcomeOK
	}
	b.Delete(start, pos)
	ctx.snapshot()
	return OutcomeOK
}

func doDeleteWord(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	end := b.NextWordEnd(pos, ctx.wordDelim())
	if end == pos {
		return OutcomeIgnore
	}
	removed := b.Delete(pos, end)
	ctx.Kill.Kill(string(removed), true, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.snapshot()
	return OutcomeOK
}

func doBackwardDeleteWord(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	start := b.PrevWordStart(pos, ctx.wordDelim())
	if start == pos {
		return OutcomeIgnore
	}
	removed := b.Delete(start, pos)
	ctx.Kill.Kill(string(removed), false, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.snapshot()
	return OutcomeOK
}

func doKillLine(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	end := b.EndOfLine(pos)
	if end == pos {
		if end < b.Len() {
			end++ // kill the trailing newline too, like Emacs at end-of-line
		} else {
			return OutcomeIgnore
		}
	}
	removed := b.Delete(pos, end)
	ctx.Kill.Kill(string(removed), true, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.snapshot()
	return OutcomeOK
}

func doKillWholeLine(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	lo := b.BeginOfLine(pos)
	hi := b.EndOfLine(pos)
	if hi < b.Len() {
		hi++
	}
	if lo == hi {
		return OutcomeIgnore
	}
	removed := b.Delete(lo, hi)
	ctx.Kill.Kill(string(removed), true, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.snapshot()
	return OutcomeOK
}

func doBackwardKillLine(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	lo := b.BeginOfLine(pos)
	if lo == pos {
		return OutcomeIgnore
	}
	removed := b.Delete(lo, pos)
	ctx.Kill.Kill(string(removed), false, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.snapshot()
	return OutcomeOK
}

func doKillRegion(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	lo, hi, ok := b.Region()
	if !ok {
		return OutcomeIgnore
	}
	removed := b.Delete(lo, hi)
	ctx.Kill.Kill(string(removed), true, ctx.lastWasKill)
	ctx.lastWasKill = true
	ctx.Region = RegionOff
	ctx.snapshot()
	return OutcomeOK
}

func doCopyRegion(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	lo, hi, ok := b.Region()
	if !ok {
		return OutcomeIgnore
	}
	ctx.Kill.Copy(string(b.Bytes()[lo:hi]))
	ctx.Region = RegionOff
	return OutcomeOK
}

func doYank(ctx *EditContext, _ rune) Outcome {
	text := ctx.Kill.Yank()
	if text == "" && ctx.Kill.Len() == 0 {
		return OutcomeIgnore
	}
	b := ctx.Buf
	b.SetMark(b.Position())
	b.Insert(b.Position(), []byte(text))
	b.SetPosition(b.Position() + len(text))
	ctx.snapshot()
	return OutcomeOK
}

func doYankPop(ctx *EditContext, _ rune) Outcome {
	text, ok := ctx.Kill.YankPop()
	if !ok {
		return OutcomeIgnore
	}
	b := ctx.Buf
	mark := b.Mark()
	if mark < 0 || mark > b.Position() {
		return OutcomeIgnore
	}
	b.Delete(mark, b.Position())
	b.Insert(mark, []byte(text))
	b.SetPosition(mark + len(text))
	ctx.snapshot()
	return OutcomeOK
}

func doUndo(ctx *EditContext, _ rune) Outcome {
	snap, ok := ctx.Undo.Undo()
	if !ok {
		return OutcomeIgnore
	}
	ctx.Buf.Restore(snap)
	return OutcomeOK
}

func doRedo(ctx *EditContext, _ rune) Outcome {
	snap, ok := ctx.Undo.Redo()
	if !ok {
		return OutcomeIgnore
	}
	ctx.Buf.Restore(snap)
	return OutcomeOK
}

// doSetMark sets mark at the cursor and activates a RegionMark region. A
// repeated set-mark (same key pressed again with no intervening command)
// leaves the existing mark alone instead of re-anchoring it at the cursor,
// so the selection extends from the original mark rather than collapsing.
func doSetMark(ctx *EditContext, _ rune) Outcome {
	if ctx.KeyRepeats > 0 && ctx.Buf.Mark() >= 0 {
		ctx.Region = RegionMark
		return OutcomeOK
	}
	ctx.Buf.SetMark(ctx.Buf.Position())
	ctx.Region = RegionMark
	return OutcomeOK
}

func doExchangePointAndMark(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	mark := b.Mark()
	if mark < 0 {
		return OutcomeIgnore
	}
	pos := b.Position()
	b.SetMark(pos)
	b.SetPosition(mark)
	return OutcomeOK
}

func doIndentRegion(ctx *EditContext, _ rune) Outcome {
	lo, hi, ok := ctx.Buf.Region()
	if !ok {
		return OutcomeIgnore
	}
	n := ctx.Opts.AutoIndent
	if n <= 0 {
		n = 4
	}
	ctx.Buf.IndentRegion(lo, hi, n)
	ctx.snapshot()
	return OutcomeOK
}

func doOutdentRegion(ctx *EditContext, _ rune) Outcome {
	lo, hi, ok := ctx.Buf.Region()
	if !ok {
		return OutcomeIgnore
	}
	n := ctx.Opts.AutoIndent
	if n <= 0 {
		n = 4
	}
	_, ok = ctx.Buf.OutdentRegion(lo, hi, n)
	if !ok {
		return OutcomeIgnore
	}
	ctx.snapshot()
	return OutcomeOK
}

func doTransposeChars(ctx *EditContext, _ rune) Outcome {
	if !ctx.Buf.TransposeChars() {
		return OutcomeIgnore
	}
	ctx.snapshot()
	return OutcomeOK
}

func doTransposeWords(ctx *EditContext, _ rune) Outcome {
	if !ctx.Buf.TransposeWords(ctx.wordDelim()) {
		return OutcomeIgnore
	}
	ctx.snapshot()
	return OutcomeOK
}

func doTransposeLineUp(ctx *EditContext, _ rune) Outcome {
	newPos, ok := ctx.Buf.TransposeLines(ctx.Buf.Position(), false)
	if !ok {
		return OutcomeIgnore
	}
	ctx.Buf.SetPosition(newPos)
	ctx.snapshot()
	return OutcomeOK
}

func doTransposeLineDown(ctx *EditContext, _ rune) Outcome {
	newPos, ok := ctx.Buf.TransposeLines(ctx.Buf.Position(), true)
	if !ok {
		return OutcomeIgnore
	}
	ctx.Buf.SetPosition(newPos)
	ctx.snapshot()
	return OutcomeOK
}

func doUpcaseWord(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.ApplyCase(ctx.Buf.Position(), ctx.wordDelim(), caseUpper))
	ctx.snapshot()
	return OutcomeOK
}

func doDowncaseWord(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.ApplyCase(ctx.Buf.Position(), ctx.wordDelim(), caseLower))
	ctx.snapshot()
	return OutcomeOK
}

func doCapitalizeWord(ctx *EditContext, _ rune) Outcome {
	ctx.Buf.SetPosition(ctx.Buf.ApplyCase(ctx.Buf.Position(), ctx.wordDelim(), caseTitle))
	ctx.snapshot()
	return OutcomeOK
}

func doAcceptLine(_ *EditContext, _ rune) Outcome { return OutcomeDone }

// doNewline inserts a literal newline, auto-indenting the new line to match
// the line above unless a paste is in progress (AutoIndentTmpOff).
func doNewline(ctx *EditContext, _ rune) Outcome {
	b := ctx.Buf
	pos := b.Position()
	indent := ""
	if ctx.Opts != nil && ctx.Opts.AutoIndent > 0 && !ctx.Opts.AutoIndentTmpOff {
		indent = b.AutoIndentFor(pos)
	}
	text := "\n" + indent
	b.Insert(pos, []byte(text))
	b.SetPosition(pos + len(text))
	ctx.snapshot()
	return OutcomeOK
}

func doAbort(_ *EditContext, _ rune) Outcome { return OutcomeAbort }
func doEOF(ctx *EditContext, _ rune) Outcome {
	if ctx.Buf.Len() == 0 {
		return OutcomeAbort
	}
	return doDeleteChar(ctx, 0)
}
func doSuspend(_ *EditContext, _ rune) Outcome { return OutcomeSuspend }

// defaultKeymapLayer is the base binding set installed below every
// user-supplied WithKeymap layer, generalizing the default binding table
// from a flat map[rune]command into key-spec strings for the trie.
func defaultKeymapLayer() KeymapLayer {
	layer := KeymapLayer{
		"*": Act(actionSelfInsert),

		"\\C-a":          Act(actionBeginningOfLine),
		"\\C-e":          Act(actionEndOfLine),
		"\\C-f":          Act(actionForwardChar),
		"\\C-b":          Act(actionBackwardChar),
		"<right>":        Act(actionForwardChar),
		"<left>":         Act(actionBackwardChar),
		"\\M-f":          Act(actionForwardWord),
		"\\M-b":          Act(actionBackwardWord),
		"\\C-<right>":    Act(actionForwardWord),
		"\\C-<left>":     Act(actionBackwardWord),
		"\\C-p":          Act(actionUpLine),
		"\\C-n":          Act(actionDownLine),
		"<up>":           Act(actionHistoryPrev),
		"<down>":         Act(actionHistoryNext),
		"<home>":         Act(actionBeginningOfLine),
		"<end>":          Act(actionEndOfLine),

		"\\S-<right>":    Act(actionShiftForwardChar),
		"\\S-<left>":     Act(actionShiftBackwardChar),
		"\\S-<up>":       Act(actionShiftUpLine),
		"\\S-<down>":     Act(actionShiftDownLine),
		"\\S-<home>":     Act(actionShiftBeginningOfLine),
		"\\S-<end>":      Act(actionShiftEndOfLine),
		"\\C-\\S-<right>": Act(actionShiftForwardWord),
		"\\C-\\S-<left>":  Act(actionShiftBackwardWord),

		"\\C-d":      Act(actionEOF),
		"<delete>":   Act(actionDeleteChar),
		"\\C-h":      Act(actionBackwardDeleteChar),
		"<backspace>": Act(actionBackwardDeleteChar),
		"\\M-d":      Act(actionDeleteWord),
		"\\M-<backspace>": Act(actionBackwardDeleteWord),
		"\\C-k":      Act(actionKillLine),
		"\\C-u":      Act(actionBackwardKillLine),
		"\\C-w":      Act(actionKillRegion),
		"\\M-w":      Act(actionCopyRegion),
		"\\C-y":      Act(actionYank),
		"\\M-y":      Act(actionYankPop),

		"\\C-_":       Act(actionUndo),
		"\\C-x \\C-u": Act(actionUndo),

		"\\C- ":       Act(actionSetMark),
		"\\C-x \\C-x": Act(actionExchangePointAndMark),

		"\\C-t": Act(actionTransposeChars),
		"\\M-t": Act(actionTransposeWords),

		"\\M-u": Act(actionUpcaseWord),
		"\\M-l": Act(actionDowncaseWord),
		"\\M-c": Act(actionCapitalizeWord),

		"\\C-l": Act(actionClearScreen),
		"<tab>": Act(actionComplete),
		"\r":    Act(actionAcceptLine),
		"\n":    Act(actionAcceptLine),
		"\\M-\r": Act(actionNewline),
		"\\C-c": Act(actionInterrupt),
		"\\C-g":   Act(actionAbort),
		"\\C-z":   Act(actionSuspend),

		"\\C-r": Act(actionHistorySearchBackward),
		"\\C-s": Act(actionHistorySearchForward),
		"\\M-p": Act(actionPrefixHistoryPrev),
		"\\M-n": Act(actionPrefixHistoryNext),
	}
	return layer
}

// actionNameFromBindStyle accepts petermattis-prompt's historic dotted
// command names ("backward-char", "kill-whole-line", ...) unmodified, so
// configuration files written against that naming keep working.
func actionNameFromBindStyle(s string) KeyAction {
	return KeyAction(strings.TrimSpace(s))
}
