package lineedit

import "io"

// ModeKind identifies one of the three cooperating modes the Modal
// Interface switches between.
type ModeKind int

const (
	ModePrompt ModeKind = iota
	ModeHistorySearch
	ModePrefixHistorySearch
)

// ModeState is the state owned by one mode: its own buffer/kill/undo/region
// context plus whatever is specific to search modes. Prompt is the normal
// editing mode; HistorySearch is the Ctrl-R/Ctrl-S incremental search;
// PrefixHistorySearch is the Alt-P/Alt-N prefix-match walk.
type ModeState struct {
	Kind ModeKind
	Ctx  *EditContext

	// search state, used by HistorySearch and PrefixHistorySearch; savedPos
	// is instead Prompt's history index for Up/Down navigation.
	query          string
	matchIdx       int
	savedPos       int
	searchBackward bool

	// promptSnapshot is the Prompt buffer as it stood when a search mode
	// was entered, restored verbatim on cancel.
	promptSnapshot Snapshot
}

func newModeState(kind ModeKind, opts *Options, kill *KillRing) *ModeState {
	return &ModeState{Kind: kind, Ctx: NewEditContext(opts, kill)}
}

// ModalInterface owns the three ModeState values and the transition
// protocol between them: cancel any pending beep animation, deactivate the
// current mode, switch, run the caller's callback to seed the new mode, then
// activate it and flush a repaint.
type ModalInterface struct {
	Opts    *Options
	History HistoryProvider
	Kill    *KillRing
	Keymaps map[ModeKind]*Keymap
	Beeper  *Beeper

	active ModeKind
	modes  map[ModeKind]*ModeState

	// prevKey/keyRepeats implement the "previous key" repeat detection:
	// keyRepeats counts how many times in a row the same decoded key has
	// just been seen, reset to 0 whenever a different key arrives.
	prevKey    rune
	keyRepeats int

	// lastAction/currentAction are the symbols of the most recently
	// completed action and the one presently executing. lastAction is not
	// updated when an action's outcome is OutcomeIgnore.
	lastAction    KeyAction
	currentAction KeyAction

	// OnRepaint is invoked after every transition and after each edit of the
	// History Search query; set by Editor. Other actions are repainted by the
	// Editor directly.
	OnRepaint func()
}

// noteKey updates the previous-key repeat counter for key and returns the
// number of consecutive times it has now been seen (0 on the first press).
func (m *ModalInterface) noteKey(key rune) int {
	if key == m.prevKey {
		m.keyRepeats++
	} else {
		m.keyRepeats = 0
		m.prevKey = key
	}
	return m.keyRepeats
}

// NewModalInterface builds the three mode states sharing opts/history/kill
// and wires the given per-mode keymaps. beepOut receives the plain BEL
// fallback when Options.BeepBlink is off.
func NewModalInterface(opts *Options, history HistoryProvider, kill *KillRing, keymaps map[ModeKind]*Keymap, beepOut io.Writer) *ModalInterface {
	m := &ModalInterface{
		Opts:    opts,
		History: history,
		Kill:    kill,
		Keymaps: keymaps,
		Beeper:  NewBeeper(opts, beepOut),
		modes:   make(map[ModeKind]*ModeState),
	}
	for _, kind := range []ModeKind{ModePrompt, ModeHistorySearch, ModePrefixHistorySearch} {
		m.modes[kind] = newModeState(kind, opts, kill)
	}
	return m
}

// Current returns the active ModeState.
func (m *ModalInterface) Current() *ModeState { return m.modes[m.active] }

// CurrentKeymap returns the Keymap bound to the active mode.
func (m *ModalInterface) CurrentKeymap() *Keymap { return m.Keymaps[m.active] }

// SwitchTo runs the mode-transition protocol: cancel any running beep
// animation, deactivate the current mode, switch the active pointer, let
// seed initialize the new mode's state, then repaint.
func (m *ModalInterface) SwitchTo(kind ModeKind, seed func(next *ModeState)) {
	m.Beeper.Cancel()
	m.deactivate(m.Current())
	m.active = kind
	next := m.Current()
	if seed != nil {
		seed(next)
	}
	m.activate(next)
	if m.OnRepaint != nil {
		m.OnRepaint()
	}
}

func (m *ModalInterface) deactivate(s *ModeState) {
	s.Ctx.lastWasKill = false
	if s.Kind != ModePrompt {
		s.Ctx.Region = RegionOff
	}
}

func (m *ModalInterface) activate(s *ModeState) {
	m.Kill.NotYanking()
}

// EnterHistorySearch switches from Prompt into incremental history search,
// saving the prompt buffer to restore on cancel.
func (m *ModalInterface) EnterHistorySearch(backward bool) {
	prompt := m.modes[ModePrompt]
	m.SwitchTo(ModeHistorySearch, func(s *ModeState) {
		s.promptSnapshot = prompt.Ctx.Buf.Snapshot()
		s.query = ""
		s.searchBackward = backward
		if backward {
			s.matchIdx = m.History.Len() - 1
		} else {
			s.matchIdx = 0
		}
		s.Ctx.Buf.Restore(Snapshot{})
	})
}

// EnterPrefixHistorySearch switches from Prompt into prefix-walk search,
// using the text before the cursor as the fixed prefix.
func (m *ModalInterface) EnterPrefixHistorySearch(backward bool) {
	prompt := m.modes[ModePrompt]
	prefix := string(prompt.Ctx.Buf.Bytes()[:prompt.Ctx.Buf.Position()])
	m.SwitchTo(ModePrefixHistorySearch, func(s *ModeState) {
		s.promptSnapshot = prompt.Ctx.Buf.Snapshot()
		s.query = prefix
		if backward {
			s.matchIdx = m.History.Len() - 1
		} else {
			s.matchIdx = 0
		}
	})
}

// AcceptSearch copies the currently matched history line into Prompt and
// returns to it.
func (m *ModalInterface) AcceptSearch() {
	s := m.Current()
	matched := historyEntryAt(m.History, s.matchIdx)
	m.SwitchTo(ModePrompt, func(next *ModeState) {
		next.Ctx.Buf.Restore(Snapshot{Bytes: []byte(matched), Position: len(matched), Mark: -1})
	})
}

// CancelSearch abandons the search and restores Prompt's saved buffer.
func (m *ModalInterface) CancelSearch() {
	s := m.Current()
	saved := s.promptSnapshot
	m.SwitchTo(ModePrompt, func(next *ModeState) {
		next.Ctx.Buf.Restore(saved)
	})
}

func historyEntryAt(h HistoryProvider, idx int) string {
	if idx < 0 || idx >= h.Len() {
		return ""
	}
	return h.At(idx)
}

// AdvanceIncrementalSearch appends r to the query and re-searches from the
// current match position, per the "type to refine, repeat the trigger key
// to find the next match" behavior of Ctrl-R/Ctrl-S.
func (m *ModalInterface) AdvanceIncrementalSearch(r rune, backward bool) bool {
	s := m.Current()
	s.query += string(r)
	idx := m.History.Search(s.query, s.matchIdx, backward)
	if idx < 0 {
		s.query = s.query[:len(s.query)-1]
		m.Beeper.Ring()
		return false
	}
	s.matchIdx = idx
	return true
}

// RepeatIncrementalSearch re-triggers the search for the next match further
// in the given direction without changing the query.
func (m *ModalInterface) RepeatIncrementalSearch(backward bool) bool {
	s := m.Current()
	s.searchBackward = backward
	next := s.matchIdx
	if backward {
		next--
	} else {
		next++
	}
	idx := m.History.Search(s.query, next, backward)
	if idx < 0 {
		m.Beeper.Ring()
		return false
	}
	s.matchIdx = idx
	return true
}

// ShrinkIncrementalSearch drops the last rune of the query (a backspace
// during Ctrl-R/Ctrl-S) and re-searches the shortened query from the start
// of history in the mode's current direction. A no-op on an empty query.
func (m *ModalInterface) ShrinkIncrementalSearch() bool {
	s := m.Current()
	if s.query == "" {
		return false
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
	start := m.History.Len() - 1
	if !s.searchBackward {
		start = 0
	}
	idx := m.History.Search(s.query, start, s.searchBackward)
	if idx < 0 {
		s.matchIdx = start
		return false
	}
	s.matchIdx = idx
	return true
}

// StepPrefixSearch moves the prefix-search match index one entry further in
// the given direction.
func (m *ModalInterface) StepPrefixSearch(backward bool) bool {
	s := m.Current()
	next := s.matchIdx
	if backward {
		next--
	} else {
		next++
	}
	idx := m.History.PrefixSearch(s.query, next, backward)
	if idx < 0 {
		m.Beeper.Ring()
		return false
	}
	s.matchIdx = idx
	return true
}
