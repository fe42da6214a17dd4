package loom

// UndoStatus reports the outcome of undoing an action.
type UndoStatus int

const (
	UndoSuccess UndoStatus = iota
	UndoUnknownFailure
	// UndoNothing means there was nothing to undo.
	UndoNothing
	// UndoUnnable means the last action can't be undone.
	UndoUnnable
	// UndoInvalidState means undoing left the history in an invalid state.
	UndoInvalidState
)

func (s UndoStatus) String() string {
	switch s {
	case UndoSuccess:
		return "Success"
	case UndoNothing:
		return "Nothing"
	case UndoUnnable:
		return "Unnable"
	case UndoInvalidState:
		return "InvalidState"
	default:
		return "UnknownFailure"
	}
}

// RedoStatus reports the outcome of redoing (or freshly submitting) an
// action.
type RedoStatus int

const (
	RedoSuccess RedoStatus = iota
	RedoUnknownFailure
	RedoNothing
	RedoUnnable
	RedoInvalidState
)

func (s RedoStatus) String() string {
	switch s {
	case RedoSuccess:
		return "Success"
	case RedoNothing:
		return "Nothing"
	case RedoUnnable:
		return "Unnable"
	case RedoInvalidState:
		return "InvalidState"
	default:
		return "UnknownFailure"
	}
}

// action is a single positional mutation. All of the basic variants
// (edit/insert/delete) store enough state to be replayed without any
// external bookkeeping, so their Undo/Redo are trivial: what "applies" or
// "unapplies" an action is solely whether the history's cursor has passed
// it, not any mutation the action itself performs.
type action interface {
	canUndo() bool
	canRedo() bool
	undo() UndoStatus
	redo() RedoStatus

	// reversePosition resolves pos against this single action. isByte true
	// means b is the answer; isByte false means pos was translated (or
	// passed through unchanged) and replay should continue with the
	// preceding action.
	reversePosition(pos Natural) (b byte, translated Natural, isByte bool)

	// sizeDifference is this action's contribution to the logical file's
	// size delta.
	sizeDifference() int64

	// saveTo replays this action against a raw file during the save
	// pipeline.
	saveTo(f *RawFile, chunkSize int) error
}

// editAction overwrites data.length bytes starting at position. An empty
// data is a legal no-op.
type editAction struct {
	position Natural
	data     []byte
}

func (a *editAction) canUndo() bool   { return true }
func (a *editAction) canRedo() bool   { return true }
func (a *editAction) undo() UndoStatus { return UndoSuccess }
func (a *editAction) redo() RedoStatus { return RedoSuccess }

func (a *editAction) reversePosition(pos Natural) (byte, Natural, bool) {
	if len(a.data) == 0 {
		return 0, pos, false
	}
	if pos >= a.position && pos < a.position+int64(len(a.data)) {
		return a.data[pos-a.position], 0, true
	}
	return 0, pos, false
}

func (a *editAction) sizeDifference() int64 { return 0 }

func (a *editAction) saveTo(f *RawFile, chunkSize int) error {
	return f.Write(a.position, a.data)
}

// insertAction inserts count bytes at position, shifting the suffix right
// and filling the hole with fill.
type insertAction struct {
	position Natural
	count    int64
	fill     byte
}

func (a *insertAction) canUndo() bool   { return true }
func (a *insertAction) canRedo() bool   { return true }
func (a *insertAction) undo() UndoStatus { return UndoSuccess }
func (a *insertAction) redo() RedoStatus { return RedoSuccess }

func (a *insertAction) reversePosition(pos Natural) (byte, Natural, bool) {
	if pos >= a.position && pos < a.position+a.count {
		return a.fill, 0, true
	}
	if pos >= a.position+a.count {
		return 0, pos - a.count, false
	}
	return 0, pos, false
}

func (a *insertAction) sizeDifference() int64 { return a.count }

func (a *insertAction) saveTo(f *RawFile, chunkSize int) error {
	return f.InsertBytes(a.position, a.count, chunkSize)
}

// deleteAction removes count bytes starting at position, shifting the
// suffix left.
type deleteAction struct {
	position Natural
	count    int64
}

func (a *deleteAction) canUndo() bool   { return true }
func (a *deleteAction) canRedo() bool   { return true }
func (a *deleteAction) undo() UndoStatus { return UndoSuccess }
func (a *deleteAction) redo() RedoStatus { return RedoSuccess }

func (a *deleteAction) reversePosition(pos Natural) (byte, Natural, bool) {
	if pos >= a.position {
		return 0, pos + a.count, false
	}
	return 0, pos, false
}

func (a *deleteAction) sizeDifference() int64 { return -a.count }

func (a *deleteAction) saveTo(f *RawFile, chunkSize int) error {
	return f.DeleteBytes(a.position, a.count, chunkSize)
}

// maxBundleDepth bounds reversePosition/canUndo/canRedo recursion through
// nested bundles, so a pathologically deep bundle can't blow the stack.
// Beyond this depth, inner bundles are treated as opaque pass-throughs.
// undo, redo, sizeDifference and saveTo recurse without a depth limit.
const maxBundleDepth = 64

// bundleAction groups child actions that are applied in order and
// reverse-replayed in reverse order, as a single undo/redo unit.
type bundleAction struct {
	children []action
}

func (a *bundleAction) canUndo() bool { return a.canUndoAt(0) }
func (a *bundleAction) canRedo() bool { return a.canRedoAt(0) }

func (a *bundleAction) canUndoAt(depth int) bool {
	if depth >= maxBundleDepth {
		return true
	}
	for _, c := range a.children {
		if nested, ok := c.(*bundleAction); ok {
			if !nested.canUndoAt(depth + 1) {
				return false
			}
			continue
		}
		if !c.canUndo() {
			return false
		}
	}
	return true
}

func (a *bundleAction) canRedoAt(depth int) bool {
	if depth >= maxBundleDepth {
		return true
	}
	for _, c := range a.children {
		if nested, ok := c.(*bundleAction); ok {
			if !nested.canRedoAt(depth + 1) {
				return false
			}
			continue
		}
		if !c.canRedo() {
			return false
		}
	}
	return true
}

func (a *bundleAction) undo() UndoStatus {
	if !a.canUndo() {
		return UndoUnnable
	}
	for i := len(a.children); i > 0; i-- {
		a.children[i-1].undo()
	}
	return UndoSuccess
}

func (a *bundleAction) redo() RedoStatus {
	if !a.canRedo() {
		return RedoUnnable
	}
	for _, c := range a.children {
		c.redo()
	}
	return RedoSuccess
}

func (a *bundleAction) reversePosition(pos Natural) (byte, Natural, bool) {
	return a.reversePositionAt(pos, 0)
}

func (a *bundleAction) reversePositionAt(pos Natural, depth int) (byte, Natural, bool) {
	if depth >= maxBundleDepth {
		return 0, pos, false
	}
	for i := len(a.children); i > 0; i-- {
		c := a.children[i-1]
		var b byte
		var translated Natural
		var isByte bool
		if nested, ok := c.(*bundleAction); ok {
			b, translated, isByte = nested.reversePositionAt(pos, depth+1)
		} else {
			b, translated, isByte = c.reversePosition(pos)
		}
		if isByte {
			return b, 0, true
		}
		pos = translated
	}
	return 0, pos, false
}

func (a *bundleAction) sizeDifference() int64 {
	var total int64
	for _, c := range a.children {
		total += c.sizeDifference()
	}
	return total
}

func (a *bundleAction) saveTo(f *RawFile, chunkSize int) error {
	for _, c := range a.children {
		if err := c.saveTo(f, chunkSize); err != nil {
			return err
		}
	}
	return nil
}
