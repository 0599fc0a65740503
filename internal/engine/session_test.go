package engine

import (
	"errors"
	"testing"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(16, 16, Color{255, 255, 255})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func buffersEqual(a, b *PixelBuffer) bool {
	ap, bp := a.Pixels(), b.Pixels()
	if len(ap) != len(bp) {
		return false
	}
	for i := range ap {
		if ap[i] != bp[i] {
			return false
		}
	}
	return true
}

func TestUndoToBlankAndRedo(t *testing.T) {
	s := newTestSession(t)
	bg := Color{255, 255, 255}
	ink := Color{0, 0, 0}
	s.Tools().SetForeground(ink)

	s.Tools().Press(Point{4, 4})
	s.Tools().Release(Point{4, 4})

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	for _, px := range s.Buffer().Pixels() {
		if px != bg {
			t.Fatal("undo did not restore the all-background buffer")
		}
	}

	if err := s.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if got, _ := s.Buffer().Get(4, 4); got != ink {
		t.Errorf("after redo (4,4) = %v, want ink", got)
	}
}

func TestUndoAtBoundaryLeavesBufferUnchanged(t *testing.T) {
	s := newTestSession(t)
	before := s.Buffer().Pixels()
	if err := s.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Undo error = %v, want ErrNoHistory", err)
	}
	after := s.Buffer().Pixels()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("failed undo mutated the buffer")
		}
	}
}

func TestCopyWithoutSelection(t *testing.T) {
	s := newTestSession(t)
	if err := s.Copy(); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("Copy error = %v, want ErrEmptySelection", err)
	}
}

func TestPasteWithoutClipboard(t *testing.T) {
	s := newTestSession(t)
	if err := s.Paste(Point{0, 0}); !errors.Is(err, ErrEmptyClipboard) {
		t.Errorf("Paste error = %v, want ErrEmptyClipboard", err)
	}
}

func TestCopyPasteThroughSession(t *testing.T) {
	s := newTestSession(t)
	ink := Color{50, 60, 70}
	Plot(s.Buffer(), RectPoints(Point{1, 1}, Point{3, 3}, true), ink)

	s.Tools().SetTool(ToolSelect)
	s.Tools().Press(Point{1, 1})
	s.Tools().Release(Point{3, 3})
	if err := s.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if !s.HasClipboard() {
		t.Fatal("clipboard empty after copy")
	}
	if err := s.Paste(Point{10, 10}); err != nil {
		t.Fatalf("Paste: %v", err)
	}
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if got, _ := s.Buffer().Get(10+dx, 10+dy); got != ink {
				t.Errorf("pasted pixel (%d,%d) = %v, want %v", 10+dx, 10+dy, got, ink)
			}
		}
	}
}

func TestImportDimensionMismatch(t *testing.T) {
	s := newTestSession(t)
	if err := s.ImportImage(make([]Color, 8*8), 8, 8); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("ImportImage error = %v, want ErrDimensionMismatch", err)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	s := newTestSession(t)
	src := make([]Color, 16*16)
	for i := range src {
		src[i] = Color{R: uint8(i), G: uint8(i / 2)}
	}
	if err := s.ImportImage(src, 16, 16); err != nil {
		t.Fatalf("ImportImage: %v", err)
	}
	out, w, h := s.ExportImage()
	if w != 16 || h != 16 {
		t.Fatalf("exported %dx%d, want 16x16", w, h)
	}
	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("pixel %d = %v, want %v", i, out[i], src[i])
		}
	}
}

func TestApplyEditMatchesLocalEdit(t *testing.T) {
	local := newTestSession(t)
	remote := newTestSession(t)

	var edits []Edit
	local.OnEdit = func(e Edit) { edits = append(edits, e) }

	local.Tools().SetForeground(Color{200, 0, 0})
	local.Tools().SetTool(ToolRect)
	local.Tools().Press(Point{2, 3})
	local.Tools().Release(Point{9, 8})

	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	if err := remote.ApplyEdit(edits[0]); err != nil {
		t.Fatalf("ApplyEdit: %v", err)
	}
	if !buffersEqual(local.Buffer(), remote.Buffer()) {
		t.Error("replayed edit does not reproduce the local buffer")
	}
}

func TestClearRepaintsBackground(t *testing.T) {
	s := newTestSession(t)
	s.Tools().SetForeground(Color{0, 0, 0})
	s.Tools().Press(Point{5, 5})
	s.Tools().Release(Point{5, 5})

	s.Clear()
	for _, px := range s.Buffer().Pixels() {
		if px != s.Tools().Background() {
			t.Fatal("clear left foreign pixels behind")
		}
	}
	// Clear is undoable.
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo after clear: %v", err)
	}
	if got, _ := s.Buffer().Get(5, 5); got != (Color{0, 0, 0}) {
		t.Error("undo after clear did not restore the drawing")
	}
}
