package lineedit

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Editor is the public entry point: one Editor is built once per terminal
// session (via New) and its ReadLine method is called once per line read,
// mirroring petermattis-prompt's Prompt type.
type Editor struct {
	fd   int
	term *ttyTerminal

	opts          *Options
	completer     CompletionProvider
	history       HistoryProvider
	inputFinished func(text string) bool
	keymapLayers  []KeymapLayer

	kill     *KillRing
	paste    *pasteDetector
	hints    *HintWorker
	renderer *Renderer
	modal    *ModalInterface
	keys     *keyStream

	// mu is the line-modify mutex (§5): it serializes the main dispatch
	// loop against the hint worker's background goroutine repainting once
	// its result lands, so the two never interleave writes to the buffer,
	// modal state, or terminal.
	mu sync.Mutex

	// lastPrompt is the prompt text of the in-progress ReadLine call, used
	// by repaint() when it is invoked from contexts (mode transitions, the
	// hint worker callback) that don't have it to hand directly.
	lastPrompt string
}

// New builds an Editor from the given options, defaulting to stdin/stdout
// raw-mode editing unless overridden.
func New(opts ...EditorOption) (*Editor, error) {
	e := &Editor{
		fd:            int(os.Stdin.Fd()),
		term:          newTTYTerminal(int(os.Stdin.Fd())),
		opts:          DefaultOptions(),
		history:       NewMemoryHistory(1000),
		inputFinished: func(string) bool { return true },
	}
	for _, o := range opts {
		o.apply(e)
	}

	e.kill = NewKillRing(e.opts.KillRingMax)
	e.paste = newPasteDetector(e.opts)
	e.hints = NewHintWorker(e.completer)
	e.hints.OnHintReady = e.repaintFromHintWorker

	width, height, err := e.term.Size()
	if err != nil {
		width, height = 80, 24
	}
	e.renderer = NewRenderer(e.term, width)
	e.renderer.SetHeight(height)

	km, err := e.buildKeymaps()
	if err != nil {
		return nil, wrapConstruction(err, "building keymap")
	}
	e.modal = NewModalInterface(e.opts, e.history, e.kill, km, e.term)
	e.modal.OnRepaint = e.repaint

	e.keys = newKeyStream(e.term)

	return e, nil
}

// buildKeymaps constructs the per-mode tries: Prompt gets the default layer
// plus every user-supplied WithKeymap layer, layered highest-precedence
// last; History Search and Prefix History Search get a small fixed keymap
// since they only need to accept, cancel, repeat, or append to the query.
func (e *Editor) buildKeymaps() (map[ModeKind]*Keymap, error) {
	promptLayers := append([]KeymapLayer{defaultKeymapLayer()}, e.keymapLayers...)
	promptKM, err := NewKeymap(true, promptLayers...)
	if err != nil {
		return nil, errors.Wrap(err, "prompt keymap")
	}

	searchLayer := KeymapLayer{
		"*":            Act(actionSelfInsert),
		"\\C-r":        Act(actionHistorySearchBackward),
		"\\C-s":        Act(actionHistorySearchForward),
		"\r":           Act(actionModeAccept),
		"\n":           Act(actionModeAccept),
		"\\C-g":        Act(actionModeCancel),
		"\\C-h":        Act(actionBackwardDeleteChar),
		"<backspace>":  Act(actionBackwardDeleteChar),
	}
	searchKM, err := NewKeymap(true, searchLayer)
	if err != nil {
		return nil, errors.Wrap(err, "history search keymap")
	}

	prefixLayer := KeymapLayer{
		"\\M-p": Act(actionPrefixHistoryPrev),
		"\\M-n": Act(actionPrefixHistoryNext),
		"\r":    Act(actionModeAccept),
		"\n":    Act(actionModeAccept),
		"\\C-g": Act(actionModeCancel),
		"*":     Ignore(),
	}
	prefixKM, err := NewKeymap(true, prefixLayer)
	if err != nil {
		return nil, errors.Wrap(err, "prefix history search keymap")
	}

	return map[ModeKind]*Keymap{
		ModePrompt:              promptKM,
		ModeHistorySearch:       searchKM,
		ModePrefixHistorySearch: prefixKM,
	}, nil
}

// ReadLine puts the terminal into raw mode, runs the editing loop until the
// line is accepted or aborted, and returns the accepted text. errAborted is
// returned when the line is aborted (Ctrl-G, Ctrl-C, or Ctrl-D on an empty
// line).
func (e *Editor) ReadLine(ctx context.Context, prompt string) (string, error) {
	restore, err := e.term.EnterRawMode()
	if err != nil {
		return "", wrapIO(err, "entering raw mode")
	}
	defer restore()

	e.term.EnableBracketedPaste()
	defer e.term.DisableBracketedPaste()

	e.lastPrompt = prompt
	e.modal.SwitchTo(ModePrompt, func(s *ModeState) {
		s.Ctx.Buf.Restore(Snapshot{Mark: -1})
		s.savedPos = e.history.Len()
	})
	e.repaintPrompt(prompt)

	for {
		outcome, err := e.step(ctx, prompt)
		if err != nil {
			return "", wrapIO(err, "reading input")
		}
		switch outcome {
		case OutcomeDone:
			line := string(e.modal.modes[ModePrompt].Ctx.Buf.Bytes())
			e.history.Add(line)
			return line, nil
		case OutcomeAbort:
			return "", errAborted
		case OutcomeSuspend:
			// handled by the event loop's signal wiring in cmd/ consumers;
			// here we simply continue editing once control returns.
		}
	}
}

// errAborted is returned by ReadLine when the user cancels the line via
// Ctrl-G/Ctrl-C, or Ctrl-D on an empty buffer.
var errAborted = errors.New("lineedit: input aborted")

// step decodes and dispatches exactly one binding, returning the resulting
// Outcome. Everything from here to the repaint runs under the line-modify
// mutex (§5), since the hint worker's callback can otherwise repaint the
// same mode state concurrently from its own goroutine.
func (e *Editor) step(ctx context.Context, prompt string) (Outcome, error) {
	res, err := Decode(e.modal.CurrentKeymap(), e.keys.Next)
	if err != nil {
		return OutcomeOK, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastPrompt = prompt
	repeats := e.modal.noteKey(res.Key)

	if res.Key == keyPasteStart {
		return e.handleBracketedPasteLocked(prompt)
	}

	if res.Outcome == OutcomeIgnore {
		e.modal.Beeper.Ring()
		return OutcomeOK, nil
	}

	mode := e.modal.Current()
	switch res.Action {
	case actionDeleteWord, actionBackwardDeleteWord, actionKillLine,
		actionKillWholeLine, actionBackwardKillLine, actionKillRegion:
	default:
		// Only an unbroken run of kill commands concatenates.
		mode.Ctx.lastWasKill = false
	}
	if outcome, handled := e.dispatchModeTransition(res.Action, mode, res.Key); handled {
		return outcome, nil
	}

	action := updateRegionState(mode.Ctx, res.Action)
	e.modal.currentAction = action

	fn, ok := lookupAction(action)
	if !ok {
		e.modal.Beeper.Ring()
		return OutcomeOK, nil
	}

	mode.Ctx.KeyRepeats = repeats
	var outcome Outcome
	recoverAction(string(action), func() {
		outcome = fn(mode.Ctx, res.Key)
	})

	if action != actionYank && action != actionYankPop {
		mode.Ctx.Kill.NotYanking()
	}

	if outcome == OutcomeIgnore {
		e.modal.Beeper.Ring()
		return OutcomeOK, nil
	}
	if action == actionSelfInsert && res.Key != ' ' {
		// Rapid non-space insertions look like a paste and suppress
		// auto-indent until a slower non-space insertion clears the flag.
		e.opts.AutoIndentTmpOff = e.paste.Observe()
	}
	e.modal.lastAction = action

	if mode.Kind == ModePrompt {
		gen := e.hints.NotifyKeystroke()
		if e.opts.HintsEnabled && e.completer != nil {
			e.hints.Request(ctx, string(mode.Ctx.Buf.Bytes()), gen)
		}
	}

	e.repaintPrompt(prompt)
	return outcome, nil
}

// handleBracketedPasteLocked consumes a full bracketed-paste body as raw
// bytes and inserts it into the active mode's buffer as a single edit,
// rather than letting each pasted byte run through ordinary self-insert
// dispatch. Called only from step(), which already holds e.mu.
func (e *Editor) handleBracketedPasteLocked(prompt string) (Outcome, error) {
	text, err := readBracketedPaste(e.keys.ReadRawByte, e.opts)
	if err != nil {
		return OutcomeOK, err
	}
	mode := e.modal.Current()
	if mode.Kind == ModePrompt {
		buf := mode.Ctx.Buf
		buf.Insert(buf.Position(), []byte(text))
		mode.Ctx.Undo.RecordEdit(buf.Snapshot())
	}
	e.paste.Reset()
	e.repaintPrompt(prompt)
	return OutcomeOK, nil
}

// dispatchModeTransition intercepts the handful of action names the Modal
// Interface owns directly rather than an ordinary ActionFunc, since they
// swap the active ModeState wholesale.
func (e *Editor) dispatchModeTransition(action KeyAction, mode *ModeState, key rune) (Outcome, bool) {
	if mode.Kind == ModeHistorySearch {
		switch action {
		case actionSelfInsert:
			e.modal.AdvanceIncrementalSearch(key, mode.searchBackward)
			if e.modal.OnRepaint != nil {
				e.modal.OnRepaint()
			}
			return OutcomeOK, true
		case actionBackwardDeleteChar:
			e.modal.ShrinkIncrementalSearch()
			if e.modal.OnRepaint != nil {
				e.modal.OnRepaint()
			}
			return OutcomeOK, true
		}
	}
	switch action {
	case actionHistorySearchBackward:
		if mode.Kind == ModeHistorySearch {
			e.modal.RepeatIncrementalSearch(true)
		} else {
			e.modal.EnterHistorySearch(true)
		}
		return OutcomeOK, true
	case actionHistorySearchForward:
		if mode.Kind == ModeHistorySearch {
			e.modal.RepeatIncrementalSearch(false)
		} else {
			e.modal.EnterHistorySearch(false)
		}
		return OutcomeOK, true
	case actionPrefixHistoryPrev:
		if mode.Kind == ModePrefixHistorySearch {
			e.modal.StepPrefixSearch(true)
		} else {
			e.modal.EnterPrefixHistorySearch(true)
		}
		return OutcomeOK, true
	case actionPrefixHistoryNext:
		if mode.Kind == ModePrefixHistorySearch {
			e.modal.StepPrefixSearch(false)
		} else {
			e.modal.EnterPrefixHistorySearch(false)
		}
		return OutcomeOK, true
	case actionModeAccept:
		e.modal.AcceptSearch()
		return OutcomeOK, true
	case actionModeCancel:
		e.modal.CancelSearch()
		return OutcomeOK, true
	case actionAcceptLine:
		if e.inputFinished == nil || e.inputFinished(string(mode.Ctx.Buf.Bytes())) {
			return OutcomeDone, true
		}
		return doNewline(mode.Ctx, key), true
	case actionHistoryPrev, actionHistoryNext:
		e.navigateHistory(action == actionHistoryPrev)
		return OutcomeOK, true
	case actionClearScreen:
		e.renderer.ClearScreen()
		return OutcomeOK, true
	case actionComplete:
		e.doComplete(mode)
		return OutcomeOK, true
	}
	return OutcomeOK, false
}

// doComplete implements the zero/one/many-with-common-prefix/many-no-progress
// tab-completion cases: zero candidates beeps, one candidate is inserted
// outright, several sharing a longer common prefix than what's already
// typed extend up to that prefix, and several with no further common prefix
// beep on the first Tab but print the candidate list on an immediately
// repeated Tab (§4.6).
func (e *Editor) doComplete(mode *ModeState) {
	if e.completer == nil {
		e.modal.Beeper.Ring()
		return
	}
	buf := mode.Ctx.Buf
	text := []rune(string(buf.Bytes()[:buf.Position()]))
	start, _ := wordBoundsAt([]rune(string(buf.Bytes())), buf.Position())
	cands := e.completer.Complete([]rune(string(buf.Bytes())), start, buf.Position())
	switch len(cands) {
	case 0:
		e.modal.Beeper.Ring()
	case 1:
		e.insertCompletion(mode, start, cands[0].Insert)
	default:
		prefix := commonPrefix(cands)
		already := string(text[start:])
		switch {
		case len(prefix) > len(already):
			e.insertCompletion(mode, start, prefix)
		case e.modal.keyRepeats > 0:
			e.listCompletions(cands)
		default:
			e.modal.Beeper.Ring()
		}
	}
}

// listCompletions prints cands in columns below the current prompt line and
// then repaints, so the prompt reappears under the listing rather than the
// renderer trying (and failing) to erase lines it never painted.
func (e *Editor) listCompletions(cands []NamedCompletion) {
	rows := ColumnizeCompletions(cands, e.renderer.width)
	var out strings.Builder
	out.WriteString("\r\n")
	for _, row := range rows {
		out.WriteString(row)
		out.WriteString("\r\n")
	}
	e.term.Write([]byte(out.String()))
	e.renderer.lastRowCount = 0
	e.renderer.lastCursorRow = 0
	e.repaint()
}

func (e *Editor) insertCompletion(mode *ModeState, wordStart int, text string) {
	buf := mode.Ctx.Buf
	buf.Delete(wordStart, buf.Position())
	buf.Insert(wordStart, []byte(text))
	buf.SetPosition(wordStart + len(text))
	mode.Ctx.Undo.RecordEdit(buf.Snapshot())
}

func (e *Editor) navigateHistory(backward bool) {
	mode := e.modal.modes[ModePrompt]
	idx := mode.savedPos
	if backward {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= e.history.Len() {
		e.modal.Beeper.Ring()
		return
	}
	mode.savedPos = idx
	entry := e.history.At(idx)
	mode.Ctx.Buf.Restore(Snapshot{Bytes: []byte(entry), Position: len(entry), Mark: -1})
}

// repaintPrompt draws the active mode's content: Prompt shows its own
// buffer; the search modes show the currently matched history entry
// read-only, cursor pinned to its end, since they only ever display a
// result of the search rather than directly editable text.
func (e *Editor) repaintPrompt(prompt string) {
	active := e.modal.Current()
	switch active.Kind {
	case ModeHistorySearch, ModePrefixHistorySearch:
		matched := historyEntryAt(e.history, active.matchIdx)
		e.renderer.Paint(Frame{
			Prompt:   e.framePrompt(prompt),
			Buf:      []byte(matched),
			Position: len(matched),
			Hint:     "",
		})
	default:
		mode := e.modal.modes[ModePrompt]
		lo, hi, hasMark := mode.Ctx.Buf.Region()
		regionActive := hasMark && mode.Ctx.Region != RegionOff
		e.renderer.Paint(Frame{
			Prompt:       e.framePrompt(prompt),
			Buf:          mode.Ctx.Buf.Bytes(),
			Position:     mode.Ctx.Buf.Position(),
			RegionLo:     lo,
			RegionHi:     hi,
			RegionActive: regionActive,
			Hint:         e.hints.Current(),
		})
	}
}

// framePrompt picks the right prompt text for the active mode, since
// History Search and Prefix History Search display their query instead of
// the caller's prompt.
func (e *Editor) framePrompt(prompt string) string {
	s := e.modal.Current()
	switch s.Kind {
	case ModeHistorySearch:
		return "(reverse-i-search)`" + s.query + "': "
	case ModePrefixHistorySearch:
		return prompt
	default:
		return prompt
	}
}

// repaint redraws using the prompt of the in-progress ReadLine call. Safe to
// call only while e.mu is already held (e.g. from within step()'s dispatch,
// such as a mode transition's OnRepaint).
func (e *Editor) repaint() {
	e.repaintPrompt(e.lastPrompt)
}

// repaintFromHintWorker is installed as the HintWorker's OnHintReady
// callback: it runs on the hint worker's own goroutine, so unlike repaint it
// must take the line-modify mutex itself before touching mode state.
func (e *Editor) repaintFromHintWorker() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.repaint()
}
