package lineedit

// RegionState is the per-mode region-activeness flag. A region is only
// meaningful while active; deactivating it does not clear the buffer's
// mark (that is a separate, explicit operation).
type RegionState int

const (
	// RegionOff means no region is active.
	RegionOff RegionState = iota
	// RegionShift means the region was activated by a shift-modified motion.
	RegionShift
	// RegionMark means the region was activated by an explicit set-mark.
	RegionMark
)

// preservedOnMotion lists the actions that leave Region untouched regardless
// of its current value: they operate on an existing selection and a repeat
// of the same command (or its mirror) is expected to keep acting on it.
var preservedOnMotion = map[KeyAction]bool{
	actionIndentRegion:      true,
	actionOutdentRegion:     true,
	actionTransposeLineUp:   true,
	actionTransposeLineDown: true,
}

// plainMotions are the bare cursor-movement actions that preserve an
// already-active RegionMark region instead of deactivating it (§4.5);
// everything else not in preservedOnMotion clears the region before running.
var plainMotions = map[KeyAction]bool{
	actionForwardChar:     true,
	actionBackwardChar:    true,
	actionForwardWord:     true,
	actionBackwardWord:    true,
	actionBeginningOfLine: true,
	actionEndOfLine:       true,
	actionUpLine:          true,
	actionDownLine:        true,
}

const shiftActionPrefix = "shift_"

// stripShiftPrefix reports whether action is a shift_-prefixed motion
// variant and, if so, returns the plain action it delegates to.
func stripShiftPrefix(action KeyAction) (KeyAction, bool) {
	s := string(action)
	if len(s) > len(shiftActionPrefix) && s[:len(shiftActionPrefix)] == shiftActionPrefix {
		return KeyAction(s[len(shiftActionPrefix):]), true
	}
	return action, false
}

// updateRegionState applies the dispatch-level region lifecycle of §4.5
// before action runs, returning the action to actually look up in
// actionRegistry (with any shift_ prefix stripped). A shift_-prefixed
// action activates RegionShift, setting mark at the pre-motion position the
// first time (repeated shift-motions extend the existing selection rather
// than re-anchoring it); a plain motion preserves an existing RegionMark
// selection; everything else not in preservedOnMotion deactivates the
// region, leaving the caller's action free to reactivate it (set-mark does
// exactly that).
func updateRegionState(ctx *EditContext, action KeyAction) KeyAction {
	if preservedOnMotion[action] {
		return action
	}
	if base, isShift := stripShiftPrefix(action); isShift {
		if ctx.Region != RegionShift {
			ctx.Buf.SetMark(ctx.Buf.Position())
			ctx.Region = RegionShift
		}
		return base
	}
	if plainMotions[action] && ctx.Region == RegionMark {
		return action
	}
	ctx.Region = RegionOff
	return action
}
