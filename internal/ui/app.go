// Package ui is the Fyne front end: a pixel-grid canvas widget, toolbar,
// palette and keyboard shortcuts wrapped around the engine's synchronous
// API. It owns no editing logic of its own.
package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PixelBoard/internal/engine"
	"PixelBoard/internal/export"
	"PixelBoard/internal/state"
)

// App assembles the editor window around one engine session.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	session *engine.Session
	board   *PixelCanvas
	status  *widget.Label

	fgSwatch *canvas.Rectangle
	undoBtn  *widget.Button
	redoBtn  *widget.Button
	pasteBtn *widget.Button
}

func NewApp(session *engine.Session) *App {
	a := &App{
		fyneApp: app.New(),
		session: session,
		status:  widget.NewLabel("Ready"),
	}
	a.window = a.fyneApp.NewWindow("PixelBoard")
	a.board = NewPixelCanvas(session)
	a.board.OnChanged = a.refreshChrome

	a.fgSwatch = canvas.NewRectangle(color.Black)
	a.fgSwatch.SetMinSize(fyne.NewSize(24, 24))

	a.undoBtn = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { a.undo() })
	a.redoBtn = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { a.redo() })
	a.pasteBtn = widget.NewButtonWithIcon("", theme.ContentPasteIcon(), func() { a.paste() })

	a.window.SetContent(a.layout())
	a.installShortcuts()
	a.refreshChrome()
	return a
}

// Board returns the canvas widget, for refreshes after remote operations.
func (a *App) Board() *PixelCanvas { return a.board }

// Run shows the window and blocks until it closes. A non-empty share link
// is surfaced in the status bar for the host to pass around.
func (a *App) Run(shareLink string) {
	if shareLink != "" {
		a.status.SetText("Sharing at " + shareLink)
	}
	a.window.ShowAndRun()
}

// SetStatus updates the status bar from any goroutine.
func (a *App) SetStatus(text string) {
	fyne.Do(func() { a.status.SetText(text) })
}

// RefreshBoard repaints the canvas from any goroutine.
func (a *App) RefreshBoard() {
	fyne.Do(func() {
		a.board.Refresh()
		a.refreshChrome()
	})
}

func (a *App) layout() fyne.CanvasObject {
	copyBtn := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() { a.copy() })
	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() { a.session.Clear(); a.board.Refresh() })
	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), a.board.ZoomIn)
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), a.board.ZoomOut)
	gridBtn := widget.NewButtonWithIcon("", theme.GridIcon(), a.board.ToggleGrid)

	saveBtn := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.saveSession)
	openBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), a.openSession)
	pngBtn := widget.NewButtonWithIcon("PNG", theme.FileImageIcon(), a.exportPNG)
	pdfBtn := widget.NewButtonWithIcon("PDF", theme.FileTextIcon(), a.exportPDF)
	importBtn := widget.NewButtonWithIcon("", theme.UploadIcon(), a.importPNG)

	top := container.NewVBox(
		container.NewHBox(
			newToolBar(a),
			widget.NewSeparator(),
			a.undoBtn, a.redoBtn, copyBtn, a.pasteBtn, clearBtn,
			widget.NewSeparator(),
			zoomIn, zoomOut, gridBtn,
			widget.NewSeparator(),
			saveBtn, openBtn, importBtn, pngBtn, pdfBtn,
		),
		newPaletteRow(a),
	)
	return container.NewBorder(top, a.status, nil, nil, container.NewCenter(a.board))
}

// refreshChrome syncs button enablement and the foreground swatch with the
// engine: boundary actions are grayed out instead of erroring.
func (a *App) refreshChrome() {
	if a.session.CanUndo() {
		a.undoBtn.Enable()
	} else {
		a.undoBtn.Disable()
	}
	if a.session.CanRedo() {
		a.redoBtn.Enable()
	} else {
		a.redoBtn.Disable()
	}
	if a.session.HasClipboard() {
		a.pasteBtn.Enable()
	} else {
		a.pasteBtn.Disable()
	}
	fg := a.session.Tools().Foreground()
	a.fgSwatch.FillColor = color.NRGBA{R: fg.R, G: fg.G, B: fg.B, A: 255}
	a.fgSwatch.Refresh()
}

func (a *App) undo() {
	if err := a.session.Undo(); err != nil {
		return // boundary; button state lags one event at most
	}
	a.board.Refresh()
	a.refreshChrome()
}

func (a *App) redo() {
	if err := a.session.Redo(); err != nil {
		return
	}
	a.board.Refresh()
	a.refreshChrome()
}

func (a *App) copy() {
	if err := a.session.Copy(); err != nil {
		a.SetStatus("Select a region before copying")
		return
	}
	a.SetStatus("Region copied")
	a.refreshChrome()
}

// paste drops the clipboard at the last selection corner, or the origin.
func (a *App) paste() {
	dest := engine.Point{}
	if sel, ok := a.session.Tools().Selection(); ok {
		dest = sel.Min
	}
	if err := a.session.Paste(dest); err != nil {
		return
	}
	a.board.Refresh()
	a.refreshChrome()
}

func (a *App) installShortcuts() {
	toolKeys := map[rune]engine.Tool{
		'1': engine.ToolPencil, '2': engine.ToolEraser, '3': engine.ToolFill,
		'4': engine.ToolLine, '5': engine.ToolRect, '6': engine.ToolCircle,
		'7': engine.ToolEyedropper, '8': engine.ToolSelect,
	}
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '+', '=':
			a.board.ZoomIn()
		case '-':
			a.board.ZoomOut()
		case 'g':
			a.board.ToggleGrid()
		default:
			if tool, ok := toolKeys[r]; ok {
				a.session.Tools().SetTool(tool)
				a.SetStatus("Tool: " + tool.String())
			}
		}
	})

	ctrl := func(key fyne.KeyName, handler func()) {
		a.window.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierControl},
			func(fyne.Shortcut) { handler() },
		)
	}
	ctrl(fyne.KeyZ, a.undo)
	ctrl(fyne.KeyY, a.redo)
	ctrl(fyne.KeyC, a.copy)
	ctrl(fyne.KeyV, a.paste)
}

func (a *App) saveSession() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		data, err := state.NewDocument(a.session).Marshal()
		if err != nil {
			a.SetStatus("Save failed: " + err.Error())
			return
		}
		if _, err := writer.Write(data); err != nil {
			a.SetStatus("Save failed: " + err.Error())
			return
		}
		a.SetStatus("Session saved")
	}, a.window)
}

func (a *App) openSession() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			a.SetStatus("Load failed: " + err.Error())
			return
		}
		doc, err := state.UnmarshalDocument(data)
		if err != nil {
			a.SetStatus("Load failed: " + err.Error())
			return
		}
		if err := doc.RestoreInto(a.session); err != nil {
			a.SetStatus("Load failed: " + err.Error())
			return
		}
		a.board.Refresh()
		a.refreshChrome()
		a.SetStatus("Session loaded")
	}, a.window)
}

func (a *App) exportPNG() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		pixels, w, h := a.session.ExportImage()
		if err := export.EncodePNG(writer, pixels, w, h); err != nil {
			a.SetStatus("PNG export failed: " + err.Error())
			return
		}
		a.SetStatus("PNG exported")
	}, a.window)
}

func (a *App) exportPDF() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := export.SavePDF(path, a.session); err != nil {
			a.SetStatus("PDF export failed: " + err.Error())
			return
		}
		a.SetStatus(fmt.Sprintf("PDF exported to %s", path))
	}, a.window)
}

func (a *App) importPNG() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		pixels, w, h, err := export.DecodePNG(reader)
		if err != nil {
			a.SetStatus("Import failed: " + err.Error())
			return
		}
		buf := a.session.Buffer()
		pixels, err = export.Resample(pixels, w, h, buf.Width(), buf.Height())
		if err != nil {
			a.SetStatus("Import failed: " + err.Error())
			return
		}
		if err := a.session.ImportImage(pixels, buf.Width(), buf.Height()); err != nil {
			a.SetStatus("Import failed: " + err.Error())
			return
		}
		log.Printf("[UI] Imported %dx%d image (resampled to %dx%d)", w, h, buf.Width(), buf.Height())
		a.board.Refresh()
		a.refreshChrome()
		a.SetStatus("Image imported")
	}, a.window)
}
