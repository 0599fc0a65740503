package engine

import (
	"errors"
	"testing"
)

// numberedSnapshot makes a 1x1 snapshot whose red channel identifies it.
func numberedSnapshot(n int) Snapshot {
	b, _ := NewPixelBuffer(1, 1, Color{R: uint8(n)})
	return b.Snapshot()
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistoryStack(10)
	h.Capture(numberedSnapshot(0))
	h.Capture(numberedSnapshot(1))
	h.Capture(numberedSnapshot(2))

	snap, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if snap.At(0, 0).R != 1 {
		t.Errorf("undo returned snapshot %d, want 1", snap.At(0, 0).R)
	}

	snap, err = h.Redo()
	if err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if snap.At(0, 0).R != 2 {
		t.Errorf("redo returned snapshot %d, want 2", snap.At(0, 0).R)
	}
}

func TestHistoryBoundaries(t *testing.T) {
	h := NewHistoryStack(10)
	if _, err := h.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo on empty stack: %v, want ErrNoHistory", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo on empty stack: %v, want ErrNoHistory", err)
	}

	h.Capture(numberedSnapshot(0))
	if _, err := h.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Undo at oldest entry: %v, want ErrNoHistory", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Redo at newest entry: %v, want ErrNoHistory", err)
	}
}

func TestHistoryCapacityEviction(t *testing.T) {
	h := NewHistoryStack(50)
	for i := 0; i < 60; i++ {
		h.Capture(numberedSnapshot(i))
	}
	if h.Len() != 50 {
		t.Fatalf("Len = %d, want 50", h.Len())
	}
	if h.CanRedo() {
		t.Error("index should point at the newest entry")
	}

	// The oldest ten entries were evicted: walking all the way back lands
	// on snapshot 10.
	var last Snapshot
	for h.CanUndo() {
		last, _ = h.Undo()
	}
	if last.At(0, 0).R != 10 {
		t.Errorf("oldest reachable snapshot = %d, want 10", last.At(0, 0).R)
	}
}

func TestHistoryBranchPruning(t *testing.T) {
	h := NewHistoryStack(10)
	for i := 0; i < 4; i++ {
		h.Capture(numberedSnapshot(i))
	}
	h.Undo() // -> 2
	h.Undo() // -> 1

	h.Capture(numberedSnapshot(9))
	if h.Len() != 3 {
		t.Fatalf("Len = %d after pruning, want 3", h.Len())
	}
	if h.CanRedo() {
		t.Error("redo branch should have been discarded")
	}
	snap, err := h.Undo()
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if snap.At(0, 0).R != 1 {
		t.Errorf("entry before the new capture = %d, want 1", snap.At(0, 0).R)
	}
}
