package lineedit

// killRingMax is the default bound on the number of kill-ring entries,
// matching petermattis-prompt's constant for the equivalent ring.
const killRingMax = 10

// KillRing is a bounded ordered sequence of killed text snippets shared
// across every mode in a session. A rotating read index (idx) points at the
// entry that the most recent yank returned; yank-pop walks it backwards.
type KillRing struct {
	entries []string
	max     int
	idx     int  // index of the most-recently-yanked entry, valid only while yanking
	yanking bool // true immediately after Yank/YankPop, false once any other command runs
}

// NewKillRing returns an empty ring bounded at max entries.
func NewKillRing(max int) *KillRing {
	if max <= 0 {
		max = killRingMax
	}
	return &KillRing{max: max}
}

// Kill appends (forward=true) or prepends (forward=false) text to the
// kill ring. When concat is true the text merges into the current tail
// entry (a repeat of the same kill command within one action chain);
// otherwise a new entry is pushed, evicting the oldest if the ring is full.
func (r *KillRing) Kill(text string, forward, concat bool) {
	if text == "" {
		return
	}
	if concat && len(r.entries) > 0 {
		head := len(r.entries) - 1
		if forward {
			r.entries[head] += text
		} else {
			r.entries[head] = text + r.entries[head]
		}
		return
	}
	if len(r.entries) < r.max {
		r.entries = append(r.entries, text)
	} else {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = text
	}
}

// Copy writes text to the ring as a new entry without deleting anything,
// i.e. copy-region. It never concatenates.
func (r *KillRing) Copy(text string) {
	r.Kill(text, true, false)
}

// Len reports the number of entries currently held.
func (r *KillRing) Len() int { return len(r.entries) }

// Yank returns the entry at the current read index (the most recently
// killed/copied entry), or "" if the ring is empty.
func (r *KillRing) Yank() string {
	if len(r.entries) == 0 {
		return ""
	}
	r.idx = len(r.entries) - 1
	r.yanking = true
	return r.entries[r.idx]
}

// YankPop is only legal immediately after Yank or YankPop; it rotates the
// read index to the preceding entry (wrapping) and returns its text.
func (r *KillRing) YankPop() (string, bool) {
	if !r.yanking || len(r.entries) == 0 {
		return "", false
	}
	r.idx--
	if r.idx < 0 {
		r.idx = len(r.entries) - 1
	}
	return r.entries[r.idx], true
}

// NotYanking clears the yank-pop eligibility. Called by the dispatcher after
// every action other than yank and yank-pop (kills included).
func (r *KillRing) NotYanking() { r.yanking = false }
