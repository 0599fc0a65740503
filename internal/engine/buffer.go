// Package engine implements the raster editing core: the pixel buffer,
// the tool-to-pixel rasterization algorithms, undo/redo history and
// clipboard region copy. The engine is synchronous and owned by a single
// editing session; rendering and persistence are left to callers.
package engine

import (
	"errors"
	"fmt"
)

// Default canvas dimensions.
const (
	DefaultWidth  = 32
	DefaultHeight = 32
)

var (
	ErrOutOfBounds       = errors.New("coordinate out of bounds")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNoHistory         = errors.New("no history entry")
	ErrEmptySelection    = errors.New("no active selection")
	ErrEmptyClipboard    = errors.New("clipboard is empty")
)

// Color is an opaque RGB pixel value. Two colors are equal when all three
// channels match exactly.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Point is a 0-indexed pixel coordinate, origin at the top-left.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PixelBuffer is a fixed-size row-major grid of colors. Coordinate access
// is bounds-checked; out-of-range access fails with ErrOutOfBounds rather
// than clamping.
type PixelBuffer struct {
	width  int
	height int
	pixels []Color
}

// NewPixelBuffer creates a width×height buffer with every pixel set to bg.
func NewPixelBuffer(width, height int, bg Color) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid buffer size %dx%d: %w", width, height, ErrDimensionMismatch)
	}
	b := &PixelBuffer{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
	b.FillAll(bg)
	return b, nil
}

func (b *PixelBuffer) Width() int  { return b.width }
func (b *PixelBuffer) Height() int { return b.height }

// In reports whether (x, y) lies inside the buffer.
func (b *PixelBuffer) In(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the color at (x, y).
func (b *PixelBuffer) Get(x, y int) (Color, error) {
	if !b.In(x, y) {
		return Color{}, fmt.Errorf("get (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.pixels[y*b.width+x], nil
}

// Set replaces the pixel at (x, y). Mutation is whole-pixel; there is no
// blending.
func (b *PixelBuffer) Set(x, y int, c Color) error {
	if !b.In(x, y) {
		return fmt.Errorf("set (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	b.pixels[y*b.width+x] = c
	return nil
}

// FillAll replaces every pixel with c.
func (b *PixelBuffer) FillAll(c Color) {
	for i := range b.pixels {
		b.pixels[i] = c
	}
}

// Clamp returns the in-bounds point nearest to p.
func (b *PixelBuffer) Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X >= b.width {
		p.X = b.width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y >= b.height {
		p.Y = b.height - 1
	}
	return p
}

// Pixels returns a copy of the buffer contents in row-major order.
func (b *PixelBuffer) Pixels() []Color {
	out := make([]Color, len(b.pixels))
	copy(out, b.pixels)
	return out
}

// Snapshot is an immutable full copy of buffer contents at one instant.
type Snapshot struct {
	width  int
	height int
	pixels []Color
}

// Snapshot copies the current buffer contents.
func (b *PixelBuffer) Snapshot() Snapshot {
	return Snapshot{width: b.width, height: b.height, pixels: b.Pixels()}
}

// Restore replaces the entire buffer contents from a snapshot of the same
// dimensions. A snapshot of different dimensions is a contract violation
// and fails with ErrDimensionMismatch; the buffer is never silently resized.
func (b *PixelBuffer) Restore(s Snapshot) error {
	if s.width != b.width || s.height != b.height {
		return fmt.Errorf("restore %dx%d into %dx%d: %w",
			s.width, s.height, b.width, b.height, ErrDimensionMismatch)
	}
	copy(b.pixels, s.pixels)
	return nil
}

func (s Snapshot) Width() int  { return s.width }
func (s Snapshot) Height() int { return s.height }

// At returns the snapshot pixel at (x, y) without bounds checking beyond
// the snapshot's own dimensions.
func (s Snapshot) At(x, y int) Color {
	return s.pixels[y*s.width+x]
}
