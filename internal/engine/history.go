package engine

import "fmt"

// DefaultHistoryDepth bounds how many buffer snapshots the undo stack keeps.
const DefaultHistoryDepth = 50

// HistoryStack is a linear undo/redo stack of full buffer snapshots. The
// index always points at the snapshot matching the current buffer contents;
// entries after it are redoable. When the stack is full the oldest entry is
// evicted on capture, ring-buffer style.
type HistoryStack struct {
	entries  []Snapshot
	index    int
	capacity int
}

// NewHistoryStack creates an empty stack holding at most capacity entries.
// A capacity below 1 falls back to DefaultHistoryDepth.
func NewHistoryStack(capacity int) *HistoryStack {
	if capacity < 1 {
		capacity = DefaultHistoryDepth
	}
	return &HistoryStack{index: -1, capacity: capacity}
}

// Len returns the number of stored snapshots.
func (h *HistoryStack) Len() int { return len(h.entries) }

// CanUndo reports whether Undo would succeed.
func (h *HistoryStack) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would succeed.
func (h *HistoryStack) CanRedo() bool { return h.index < len(h.entries)-1 }

// Capture appends a snapshot after the current index. Any redoable entries
// beyond the index are discarded first: history is linear, not a tree.
func (h *HistoryStack) Capture(s Snapshot) {
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, s)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
	h.index = len(h.entries) - 1
}

// Undo steps the index back and returns the snapshot to restore. At the
// oldest entry (or on an empty stack) it fails with ErrNoHistory and the
// index is unchanged.
func (h *HistoryStack) Undo() (Snapshot, error) {
	if !h.CanUndo() {
		return Snapshot{}, fmt.Errorf("undo: %w", ErrNoHistory)
	}
	h.index--
	return h.entries[h.index], nil
}

// Redo steps the index forward and returns the snapshot to restore. At the
// newest entry it fails with ErrNoHistory and the index is unchanged.
func (h *HistoryStack) Redo() (Snapshot, error) {
	if !h.CanRedo() {
		return Snapshot{}, fmt.Errorf("redo: %w", ErrNoHistory)
	}
	h.index++
	return h.entries[h.index], nil
}
