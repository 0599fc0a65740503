// Package export encodes buffer contents to files (PNG, PDF) and decodes
// image files back into raw pixels for import. Resampling mismatched
// imports happens here: the engine only accepts exact-dimension data.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"PixelBoard/internal/engine"
)

// ToImage converts row-major engine pixels into an opaque RGBA image.
func ToImage(pixels []engine.Color, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x]
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// FromImage flattens any image into engine pixels, discarding alpha.
func FromImage(img image.Image) ([]engine.Color, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]engine.Color, 0, w*h)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, engine.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return pixels, w, h
}

// EncodePNG writes buffer pixels as a PNG stream.
func EncodePNG(w io.Writer, pixels []engine.Color, width, height int) error {
	return png.Encode(w, ToImage(pixels, width, height))
}

// DecodePNG reads a PNG stream into engine pixels.
func DecodePNG(r io.Reader) ([]engine.Color, int, int, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode png: %w", err)
	}
	pixels, w, h := FromImage(img)
	return pixels, w, h, nil
}

// Resample scales pixels to dstW×dstH using nearest-neighbour, keeping the
// hard edges pixel art needs.
func Resample(pixels []engine.Color, width, height, dstW, dstH int) ([]engine.Color, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("resample: %d pixels for %dx%d source", len(pixels), width, height)
	}
	if width == dstW && height == dstH {
		return pixels, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), ToImage(pixels, width, height), image.Rect(0, 0, width, height), draw.Src, nil)
	out, _, _ := FromImage(dst)
	return out, nil
}

// SavePNG writes a session's canvas to a PNG file.
func SavePNG(path string, s *engine.Session) error {
	pixels, w, h := s.ExportImage()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodePNG(f, pixels, w, h)
}

// LoadPNG reads a PNG file and resamples it to the session's canvas size
// before importing, so arbitrary images can be opened.
func LoadPNG(path string, s *engine.Session) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pixels, w, h, err := DecodePNG(f)
	if err != nil {
		return err
	}
	buf := s.Buffer()
	pixels, err = Resample(pixels, w, h, buf.Width(), buf.Height())
	if err != nil {
		return err
	}
	return s.ImportImage(pixels, buf.Width(), buf.Height())
}
