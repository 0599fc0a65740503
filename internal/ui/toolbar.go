package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/engine"
)

// palette is the default 16-color swatch row.
var palette = []engine.Color{
	{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}, {R: 128, G: 128, B: 128}, {R: 64, G: 64, B: 64},
	{R: 255, G: 0, B: 0}, {R: 128, G: 0, B: 0}, {R: 255, G: 128, B: 0}, {R: 255, G: 255, B: 0},
	{R: 0, G: 200, B: 0}, {R: 0, G: 100, B: 0}, {R: 0, G: 200, B: 200}, {R: 0, G: 0, B: 255},
	{R: 0, G: 0, B: 128}, {R: 255, G: 0, B: 255}, {R: 128, G: 0, B: 128}, {R: 128, G: 64, B: 0},
}

// colorSwatch is a tappable palette square.
type colorSwatch struct {
	widget.BaseWidget
	Color    engine.Color
	OnTapped func(engine.Color)
}

func newColorSwatch(c engine.Color, tapped func(engine.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(color.NRGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 255})
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// newToolBar builds the tool-selection strip. Order matches the 1-8
// keyboard shortcuts.
func newToolBar(a *App) fyne.CanvasObject {
	pick := func(tool engine.Tool) func() {
		return func() {
			a.session.Tools().SetTool(tool)
			a.SetStatus("Tool: " + tool.String())
		}
	}
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), pick(engine.ToolPencil)),
		widget.NewToolbarAction(theme.DeleteIcon(), pick(engine.ToolEraser)),
		widget.NewToolbarAction(theme.ColorChromaticIcon(), pick(engine.ToolFill)),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), pick(engine.ToolLine)),
		widget.NewToolbarAction(theme.CheckButtonIcon(), pick(engine.ToolRect)),
		widget.NewToolbarAction(theme.RadioButtonIcon(), pick(engine.ToolCircle)),
		widget.NewToolbarAction(theme.SearchIcon(), pick(engine.ToolEyedropper)),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), pick(engine.ToolSelect)),
	)
}

// newPaletteRow builds the swatch row plus the current-foreground indicator.
func newPaletteRow(a *App) fyne.CanvasObject {
	onTapped := func(c engine.Color) {
		a.session.Tools().SetForeground(c)
		a.refreshChrome()
	}
	row := container.NewHBox()
	for _, c := range palette {
		row.Add(newColorSwatch(c, onTapped))
	}
	return container.NewHBox(widget.NewLabel("Color:"), a.fgSwatch, row)
}
