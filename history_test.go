package loom

import "testing"

func TestActionHistorySubmitAndUndo(t *testing.T) {
	h := NewActionHistory()
	h.Submit(&editAction{position: 0, data: []byte{0xAA}})
	h.Submit(&editAction{position: 1, data: []byte{0xBB}})

	if !h.CanUndo() {
		t.Fatal("expected CanUndo after two submissions")
	}

	b, _, isByte := h.ReversePosition(1)
	if !isByte || b != 0xBB {
		t.Fatalf("expected latest edit to win, got %#x isByte=%v", b, isByte)
	}

	if status := h.Undo(); status != UndoSuccess {
		t.Fatalf("expected UndoSuccess, got %v", status)
	}
	if _, translated, isByte := h.ReversePosition(1); isByte || translated != 1 {
		t.Fatalf("expected pass-through to source after undo, got translated=%d isByte=%v", translated, isByte)
	}

	if status := h.Redo(); status != RedoSuccess {
		t.Fatalf("expected RedoSuccess, got %v", status)
	}
	if b, _, isByte := h.ReversePosition(1); !isByte || b != 0xBB {
		t.Fatalf("expected redo to restore the edit, got %#x isByte=%v", b, isByte)
	}
}

func TestActionHistorySubmitTruncatesRedoTail(t *testing.T) {
	h := NewActionHistory()
	h.Submit(&editAction{position: 0, data: []byte{1}})
	h.Submit(&editAction{position: 0, data: []byte{2}})
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected CanRedo before a new submission")
	}

	h.Submit(&editAction{position: 0, data: []byte{3}})
	if h.CanRedo() {
		t.Fatal("expected the redo tail to be discarded by a fresh submission")
	}
	if got := len(h.log); got != 2 {
		t.Fatalf("expected log length 2 after truncation, got %d", got)
	}
}

func TestActionHistoryUndoNothing(t *testing.T) {
	h := NewActionHistory()
	if status := h.Undo(); status != UndoNothing {
		t.Fatalf("expected UndoNothing on an empty history, got %v", status)
	}
	if status := h.Redo(); status != RedoNothing {
		t.Fatalf("expected RedoNothing on an empty history, got %v", status)
	}
}

func TestActionHistorySizeDelta(t *testing.T) {
	h := NewActionHistory()
	h.Submit(&insertAction{position: 0, count: 10})
	h.Submit(&deleteAction{position: 0, count: 4})
	if got := h.SizeDelta(); got != 6 {
		t.Fatalf("expected size delta 6, got %d", got)
	}

	h.Undo()
	if got := h.SizeDelta(); got != 10 {
		t.Fatalf("expected size delta 10 after undoing the delete, got %d", got)
	}
}

func TestActionHistoryClear(t *testing.T) {
	h := NewActionHistory()
	h.Submit(&editAction{position: 0, data: []byte{1}})
	h.Clear()

	if h.CanUndo() {
		t.Fatal("expected CanUndo false after Clear")
	}
	if got := len(h.AppliedActions()); got != 0 {
		t.Fatalf("expected no applied actions after Clear, got %d", got)
	}
}
