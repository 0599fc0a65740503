package export

import (
	"github.com/jung-kurt/gofpdf"

	"PixelBoard/internal/engine"
)

// pdfCanvasMM is the square area on an A4 page the canvas is scaled into.
const pdfCanvasMM = 180.0

// SavePDF renders the session's canvas onto a single A4 page, one filled
// rectangle per pixel.
func SavePDF(path string, s *engine.Session) error {
	pixels, width, height := s.ExportImage()

	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	cell := pdfCanvasMM / float64(width)
	if h := pdfCanvasMM / float64(height); h < cell {
		cell = h
	}
	const marginX, marginY = 15.0, 40.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			p.SetFillColor(int(c.R), int(c.G), int(c.B))
			p.Rect(marginX+float64(x)*cell, marginY+float64(y)*cell, cell, cell, "F")
		}
	}
	return p.OutputFileAndClose(path)
}
