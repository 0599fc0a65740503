package engine

import (
	"fmt"
	"log"
)

// Session owns one editing session: the buffer, its history, the tool
// controller and the clipboard. All calls are synchronous and run to
// completion; the session must not be shared across goroutines.
type Session struct {
	buf       *PixelBuffer
	hist      *HistoryStack
	tools     *ToolController
	clipboard *Clipboard

	// OnEdit fires after every committed tool gesture; OnSync fires after
	// buffer-wide mutations (clear, paste, undo, redo, import). Both are
	// for external collaborators (renderer, live share) and are never
	// invoked when applying remote operations.
	OnEdit func(Edit)
	OnSync func(Snapshot)
}

// NewSession creates a width×height canvas filled with bg and captures the
// initial history entry, so undo back to the blank canvas always works.
func NewSession(width, height int, bg Color) (*Session, error) {
	buf, err := NewPixelBuffer(width, height, bg)
	if err != nil {
		return nil, err
	}
	hist := NewHistoryStack(DefaultHistoryDepth)
	hist.Capture(buf.Snapshot())

	s := &Session{buf: buf, hist: hist}
	s.tools = NewToolController(buf, hist)
	s.tools.SetBackground(bg)
	s.tools.OnCommit = func(e Edit) {
		if s.OnEdit != nil {
			s.OnEdit(e)
		}
	}
	return s, nil
}

func (s *Session) Buffer() *PixelBuffer   { return s.buf }
func (s *Session) Tools() *ToolController { return s.tools }
func (s *Session) CanUndo() bool          { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool          { return s.hist.CanRedo() }
func (s *Session) HasClipboard() bool     { return s.clipboard != nil }

// Undo restores the previous history snapshot into the buffer. At the
// oldest entry it fails with ErrNoHistory and the buffer is unchanged.
func (s *Session) Undo() error {
	snap, err := s.hist.Undo()
	if err != nil {
		return err
	}
	s.buf.Restore(snap)
	s.sync()
	return nil
}

// Redo restores the next history snapshot into the buffer.
func (s *Session) Redo() error {
	snap, err := s.hist.Redo()
	if err != nil {
		return err
	}
	s.buf.Restore(snap)
	s.sync()
	return nil
}

// Clear repaints the whole canvas with the background color.
func (s *Session) Clear() {
	s.buf.FillAll(s.tools.Background())
	s.capture()
	s.sync()
}

// Copy captures the pixels under the current selection into the clipboard.
// Fails with ErrEmptySelection when no selection has been finalized.
func (s *Session) Copy() error {
	sel, ok := s.tools.Selection()
	if !ok {
		return ErrEmptySelection
	}
	c, err := CopyRegion(s.buf, sel)
	if err != nil {
		return err
	}
	s.clipboard = c
	return nil
}

// Paste writes the clipboard block with its top-left at dest, clipping any
// out-of-bounds portion. Fails with ErrEmptyClipboard before the first copy.
func (s *Session) Paste(dest Point) error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	s.clipboard.PasteInto(s.buf, dest)
	s.capture()
	s.sync()
	return nil
}

// ImportImage replaces the buffer contents with raw row-major pixels. The
// source must match the canvas dimensions exactly; resampling is the
// caller's job.
func (s *Session) ImportImage(pixels []Color, width, height int) error {
	if width != s.buf.Width() || height != s.buf.Height() || len(pixels) != width*height {
		return fmt.Errorf("import %dx%d into %dx%d: %w",
			width, height, s.buf.Width(), s.buf.Height(), ErrDimensionMismatch)
	}
	copy(s.buf.pixels, pixels)
	s.capture()
	s.sync()
	log.Printf("[ENGINE] Imported %dx%d image", width, height)
	return nil
}

// ExportImage returns a copy of the buffer pixels plus dimensions, for the
// caller to encode.
func (s *Session) ExportImage() ([]Color, int, int) {
	return s.buf.Pixels(), s.buf.Width(), s.buf.Height()
}

// Snapshot returns the current buffer contents for persistence.
func (s *Session) Snapshot() Snapshot { return s.buf.Snapshot() }

// RestoreSnapshot replaces the buffer contents from a snapshot of matching
// dimensions and records it in history.
func (s *Session) RestoreSnapshot(snap Snapshot) error {
	if err := s.buf.Restore(snap); err != nil {
		return err
	}
	s.capture()
	s.sync()
	return nil
}

// ApplyEdit replays a committed edit received from another site. The edit
// mutates the buffer through the same rasterizers as local gestures and
// captures history, but never re-fires OnEdit.
func (s *Session) ApplyEdit(e Edit) error {
	switch e.Tool {
	case ToolPencil, ToolEraser:
		Plot(s.buf, e.Trace, e.Color)
	case ToolFill:
		if err := FloodFill(s.buf, s.buf.Clamp(e.From), e.Color); err != nil {
			return err
		}
	case ToolLine:
		Plot(s.buf, LinePoints(e.From, e.To), e.Color)
	case ToolRect:
		Plot(s.buf, RectPoints(e.From, e.To, false), e.Color)
	case ToolCircle:
		Plot(s.buf, CirclePoints(e.From, radius(e.From, e.To), false), e.Color)
	default:
		return fmt.Errorf("apply edit: unknown tool %d", e.Tool)
	}
	s.capture()
	return nil
}

// ApplySync replaces the buffer from a remote full-buffer state.
func (s *Session) ApplySync(pixels []Color, width, height int) error {
	if width != s.buf.Width() || height != s.buf.Height() || len(pixels) != width*height {
		return fmt.Errorf("sync %dx%d into %dx%d: %w",
			width, height, s.buf.Width(), s.buf.Height(), ErrDimensionMismatch)
	}
	copy(s.buf.pixels, pixels)
	s.capture()
	return nil
}

func (s *Session) capture() {
	s.hist.Capture(s.buf.Snapshot())
}

func (s *Session) sync() {
	if s.OnSync != nil {
		s.OnSync(s.buf.Snapshot())
	}
}
