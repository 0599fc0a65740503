package engine

import (
	"math"
	"time"
)

// Tool identifies the active drawing tool.
type Tool int

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolFill
	ToolLine
	ToolRect
	ToolCircle
	ToolEyedropper
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "pencil"
	case ToolEraser:
		return "eraser"
	case ToolFill:
		return "fill"
	case ToolLine:
		return "line"
	case ToolRect:
		return "rect"
	case ToolCircle:
		return "circle"
	case ToolEyedropper:
		return "eyedropper"
	case ToolSelect:
		return "select"
	}
	return "unknown"
}

// DefaultCaptureDebounce is how long a pencil/eraser drag may run before an
// extra mid-stroke history capture is taken.
const DefaultCaptureDebounce = 500 * time.Millisecond

// Edit describes one committed drawing operation, complete enough to replay
// on another buffer of the same dimensions.
type Edit struct {
	Tool  Tool    `json:"tool"`
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Trace []Point `json:"trace,omitempty"` // pencil/eraser sample points
	Color Color   `json:"color"`
}

// ToolController maps pointer gestures (press, move, release) onto
// rasterizer calls against the buffer. Shape tools mutate nothing until
// release; their in-progress outline is exposed through Preview for an
// external renderer. Every committed edit triggers exactly one history
// capture and, when set, the OnCommit callback.
type ToolController struct {
	buf  *PixelBuffer
	hist *HistoryStack

	tool       Tool
	foreground Color
	background Color

	dragging bool
	start    Point
	last     Point
	trace    []Point
	preview  []Point

	selection   *Selection
	debounce    time.Duration
	now         func() time.Time
	lastCapture time.Time

	// OnCommit is invoked after a committed edit has been captured.
	OnCommit func(Edit)
}

// NewToolController creates a controller in the Idle state with the pencil
// selected, black foreground and white background.
func NewToolController(buf *PixelBuffer, hist *HistoryStack) *ToolController {
	return &ToolController{
		buf:        buf,
		hist:       hist,
		tool:       ToolPencil,
		foreground: Color{0, 0, 0},
		background: Color{255, 255, 255},
		debounce:   DefaultCaptureDebounce,
		now:        time.Now,
	}
}

func (t *ToolController) Tool() Tool            { return t.tool }
func (t *ToolController) SetTool(tool Tool)     { t.tool = tool }
func (t *ToolController) Foreground() Color     { return t.foreground }
func (t *ToolController) SetForeground(c Color) { t.foreground = c }
func (t *ToolController) Background() Color     { return t.background }
func (t *ToolController) SetBackground(c Color) { t.background = c }
func (t *ToolController) Dragging() bool        { return t.dragging }

// Preview returns the outline pixels of the in-progress shape or selection
// drag, for the renderer to overlay. Empty while idle.
func (t *ToolController) Preview() []Point { return t.preview }

// Selection returns the last finalized selection rectangle, if any.
func (t *ToolController) Selection() (Selection, bool) {
	if t.selection == nil {
		return Selection{}, false
	}
	return *t.selection, true
}

// Press begins a gesture. Out-of-canvas presses are clamped to the nearest
// in-canvas pixel: the canvas is the only drawable surface.
func (t *ToolController) Press(p Point) {
	p = t.buf.Clamp(p)
	t.start, t.last = p, p

	switch t.tool {
	case ToolPencil, ToolEraser:
		t.buf.Set(p.X, p.Y, t.drawColor())
		t.trace = []Point{p}
		t.dragging = true
		t.lastCapture = t.now()
	case ToolFill:
		// Complete single-step operation; no drag state.
		FloodFill(t.buf, p, t.foreground)
		t.capture()
		t.commit(Edit{Tool: ToolFill, From: p, To: p, Color: t.foreground})
	case ToolEyedropper:
		if c, err := t.buf.Get(p.X, p.Y); err == nil {
			t.foreground = c
		}
	case ToolLine, ToolRect, ToolCircle, ToolSelect:
		t.dragging = true
		t.preview = t.shapePoints(p)
	}
}

// Move updates an in-progress gesture. It is a no-op while idle.
func (t *ToolController) Move(p Point) {
	if !t.dragging {
		return
	}
	p = t.buf.Clamp(p)
	t.last = p

	switch t.tool {
	case ToolPencil, ToolEraser:
		// Point-by-point, not line-joined: fast pointer movement can leave
		// gaps between samples.
		t.buf.Set(p.X, p.Y, t.drawColor())
		t.trace = append(t.trace, p)
		if t.now().Sub(t.lastCapture) >= t.debounce {
			t.capture()
		}
	case ToolLine, ToolRect, ToolCircle, ToolSelect:
		t.preview = t.shapePoints(p)
	}
}

// Release ends the gesture at p and commits the edit. Shape tools rasterize
// here; pencil and eraser have already mutated during press/move.
func (t *ToolController) Release(p Point) {
	if !t.dragging {
		return
	}
	p = t.buf.Clamp(p)

	switch t.tool {
	case ToolPencil, ToolEraser:
		t.capture()
		t.commit(Edit{Tool: t.tool, From: t.start, To: p, Trace: t.trace, Color: t.drawColor()})
	case ToolLine:
		Plot(t.buf, LinePoints(t.start, p), t.foreground)
		t.capture()
		t.commit(Edit{Tool: ToolLine, From: t.start, To: p, Color: t.foreground})
	case ToolRect:
		Plot(t.buf, RectPoints(t.start, p, false), t.foreground)
		t.capture()
		t.commit(Edit{Tool: ToolRect, From: t.start, To: p, Color: t.foreground})
	case ToolCircle:
		Plot(t.buf, CirclePoints(t.start, radius(t.start, p), false), t.foreground)
		t.capture()
		t.commit(Edit{Tool: ToolCircle, From: t.start, To: p, Color: t.foreground})
	case ToolSelect:
		sel := NewSelection(t.start, p)
		t.selection = &sel
	}

	t.dragging = false
	t.trace = nil
	t.preview = nil
}

// Cancel abandons an in-progress drag as if the pointer had been released
// at its last known in-bounds position. Dragging never gets stuck.
func (t *ToolController) Cancel() {
	if t.dragging {
		t.Release(t.last)
	}
}

func (t *ToolController) drawColor() Color {
	if t.tool == ToolEraser {
		return t.background
	}
	return t.foreground
}

func (t *ToolController) shapePoints(p Point) []Point {
	switch t.tool {
	case ToolLine:
		return LinePoints(t.start, p)
	case ToolCircle:
		return CirclePoints(t.start, radius(t.start, p), false)
	default: // rect outline doubles as the selection marquee
		return RectPoints(t.start, p, false)
	}
}

func (t *ToolController) capture() {
	t.hist.Capture(t.buf.Snapshot())
	t.lastCapture = t.now()
}

func (t *ToolController) commit(e Edit) {
	if t.OnCommit != nil {
		t.OnCommit(e)
	}
}

// radius is the Euclidean distance between two points, floored to int.
func radius(a, b Point) int {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return int(math.Floor(math.Sqrt(dx*dx + dy*dy)))
}
