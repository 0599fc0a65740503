package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/engine"
)

const (
	minPixelSize     = 4
	maxPixelSize     = 48
	defaultPixelSize = 14
)

var gridLineColor = color.NRGBA{R: 90, G: 90, B: 90, A: 120}

// PixelCanvas renders the engine's buffer as a zoomable pixel grid and
// forwards pointer gestures to the tool controller. It holds no pixel state
// of its own; every frame reads straight from the buffer, with the tool
// preview overlaid.
type PixelCanvas struct {
	widget.BaseWidget
	session    *engine.Session
	pixelSize  int
	showGrid   bool
	previewSet map[engine.Point]bool

	// OnChanged fires after any gesture that may have altered the buffer,
	// the selection or the foreground color, so chrome can update.
	OnChanged func()
}

var _ fyne.Widget = (*PixelCanvas)(nil)
var _ fyne.Draggable = (*PixelCanvas)(nil)
var _ desktop.Mouseable = (*PixelCanvas)(nil)
var _ desktop.Hoverable = (*PixelCanvas)(nil)

func NewPixelCanvas(session *engine.Session) *PixelCanvas {
	pc := &PixelCanvas{
		session:   session,
		pixelSize: defaultPixelSize,
		showGrid:  true,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

// gridPos maps a widget-local position onto buffer coordinates. Positions
// outside the grid map to out-of-range points; the controller clamps them.
func (pc *PixelCanvas) gridPos(pos fyne.Position) engine.Point {
	return engine.Point{
		X: int(pos.X) / pc.pixelSize,
		Y: int(pos.Y) / pc.pixelSize,
	}
}

func (pc *PixelCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.session.Tools().Press(pc.gridPos(e.Position))
	pc.changed()
}

func (pc *PixelCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.session.Tools().Release(pc.gridPos(e.Position))
	pc.changed()
}

func (pc *PixelCanvas) Dragged(e *fyne.DragEvent) {
	pc.session.Tools().Move(pc.gridPos(e.Position))
	pc.changed()
}

func (pc *PixelCanvas) DragEnd() {}

func (pc *PixelCanvas) MouseIn(*desktop.MouseEvent) {}

func (pc *PixelCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut treats leaving the canvas mid-drag as a release at the last
// known in-bounds point, so a drag can never get stuck.
func (pc *PixelCanvas) MouseOut() {
	pc.session.Tools().Cancel()
	pc.changed()
}

func (pc *PixelCanvas) ZoomIn() {
	if pc.pixelSize < maxPixelSize {
		pc.pixelSize += 2
		pc.Refresh()
	}
}

func (pc *PixelCanvas) ZoomOut() {
	if pc.pixelSize > minPixelSize {
		pc.pixelSize -= 2
		pc.Refresh()
	}
}

func (pc *PixelCanvas) ToggleGrid() {
	pc.showGrid = !pc.showGrid
	pc.Refresh()
}

func (pc *PixelCanvas) changed() {
	pts := pc.session.Tools().Preview()
	if len(pts) == 0 {
		pc.previewSet = nil
	} else {
		set := make(map[engine.Point]bool, len(pts))
		for _, p := range pts {
			set[p] = true
		}
		pc.previewSet = set
	}
	pc.Refresh()
	if pc.OnChanged != nil {
		pc.OnChanged()
	}
}

func (pc *PixelCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &pixelCanvasRenderer{pc: pc}
	r.raster = canvas.NewRasterWithPixels(r.pixelAt)
	return r
}

type pixelCanvasRenderer struct {
	pc     *PixelCanvas
	raster *canvas.Raster
}

// pixelAt paints one device pixel: grid lines first, then the shape/marquee
// preview, then the buffer contents underneath.
func (r *pixelCanvasRenderer) pixelAt(x, y, w, h int) color.Color {
	pc := r.pc
	buf := pc.session.Buffer()
	cw := w / buf.Width()
	ch := h / buf.Height()
	if cw < 1 || ch < 1 {
		return color.Black
	}
	gx, gy := x/cw, y/ch
	if gx >= buf.Width() || gy >= buf.Height() {
		return color.Transparent
	}

	if pc.showGrid && cw >= 4 && (x%cw == 0 || y%ch == 0) {
		return gridLineColor
	}

	if pc.previewSet[engine.Point{X: gx, Y: gy}] {
		fg := pc.session.Tools().Foreground()
		return color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: 200}
	}

	c, err := buf.Get(gx, gy)
	if err != nil {
		return color.Transparent
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (r *pixelCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *pixelCanvasRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *pixelCanvasRenderer) MinSize() fyne.Size {
	buf := r.pc.session.Buffer()
	return fyne.NewSize(
		float32(buf.Width()*r.pc.pixelSize),
		float32(buf.Height()*r.pc.pixelSize),
	)
}

func (r *pixelCanvasRenderer) Refresh() {
	canvas.Refresh(r.pc)
}

func (r *pixelCanvasRenderer) Destroy() {}
