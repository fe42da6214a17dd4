package loom

// ActionHistory is a linear log of actions together with a cursor
// separating applied actions (before the cursor) from undone ones (at or
// after it). Submitting a new action while the cursor sits behind the end
// of the log discards everything from the cursor onward, same as any
// ordinary undo/redo-with-new-edit editor.
type ActionHistory struct {
	log    []action
	cursor int
}

// NewActionHistory returns an empty history.
func NewActionHistory() *ActionHistory {
	return &ActionHistory{}
}

// Submit appends a, discarding any undone tail, and applies it immediately.
func (h *ActionHistory) Submit(a action) RedoStatus {
	h.log = h.log[:h.cursor]
	h.log = append(h.log, a)
	h.cursor++
	return RedoSuccess
}

// CanUndo reports whether there is an applied action to undo.
func (h *ActionHistory) CanUndo() bool {
	if h.cursor <= 0 {
		return false
	}
	return h.log[h.cursor-1].canUndo()
}

// CanRedo reports whether there is an undone action to redo.
func (h *ActionHistory) CanRedo() bool {
	if h.cursor >= len(h.log) {
		return false
	}
	return h.log[h.cursor].canRedo()
}

// Undo moves the cursor back over the most recently applied action.
func (h *ActionHistory) Undo() UndoStatus {
	if h.cursor <= 0 {
		return UndoNothing
	}
	a := h.log[h.cursor-1]
	if !a.canUndo() {
		return UndoUnnable
	}
	status := a.undo()
	if status != UndoSuccess {
		return status
	}
	h.cursor--
	return UndoSuccess
}

// Redo moves the cursor forward over the next undone action.
func (h *ActionHistory) Redo() RedoStatus {
	if h.cursor >= len(h.log) {
		return RedoNothing
	}
	a := h.log[h.cursor]
	if !a.canRedo() {
		return RedoUnnable
	}
	status := a.redo()
	if status != RedoSuccess {
		return status
	}
	h.cursor++
	return RedoSuccess
}

// SizeDelta is the net change to the logical file's size contributed by
// every currently applied action.
func (h *ActionHistory) SizeDelta() int64 {
	var total int64
	for _, a := range h.log[:h.cursor] {
		total += a.sizeDifference()
	}
	return total
}

// Clear discards the entire log and resets the cursor. Saving a View
// collapses its history, since the underlying file on disk now reflects
// every applied action and there is nothing left to undo back past.
func (h *ActionHistory) Clear() {
	h.log = nil
	h.cursor = 0
}

// AppliedActions returns the currently applied actions in application
// order, for replay during a save.
func (h *ActionHistory) AppliedActions() []action {
	return h.log[:h.cursor]
}

// ReversePosition walks the applied actions in reverse from the cursor,
// translating pos backward through each one. It returns either a
// definitive byte (isByte true) contributed by some action, or a position
// to read from the unmodified source (isByte false).
func (h *ActionHistory) ReversePosition(pos Natural) (b byte, sourcePos Natural, isByte bool) {
	for i := h.cursor; i > 0; i-- {
		a := h.log[i-1]
		var translated Natural
		b, translated, isByte = a.reversePosition(pos)
		if isByte {
			return b, 0, true
		}
		pos = translated
	}
	return 0, pos, false
}
