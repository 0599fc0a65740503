package engine

// Selection is an axis-aligned rectangle over the buffer, normalized so Min
// is the top-left corner and Max the bottom-right, both inclusive.
type Selection struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// NewSelection builds a normalized selection from any two opposite corners.
func NewSelection(a, b Point) Selection {
	left, right := minMax(a.X, b.X)
	top, bottom := minMax(a.Y, b.Y)
	return Selection{Min: Point{left, top}, Max: Point{right, bottom}}
}

func (s Selection) Width() int  { return s.Max.X - s.Min.X + 1 }
func (s Selection) Height() int { return s.Max.Y - s.Min.Y + 1 }

// Clipboard holds an owned copy of a rectangular pixel block, independent
// of the buffer it was captured from.
type Clipboard struct {
	width  int
	height int
	pixels []Color
}

func (c *Clipboard) Width() int  { return c.width }
func (c *Clipboard) Height() int { return c.height }

// CopyRegion extracts the selection's pixel block from the buffer. The
// selection must lie fully inside the buffer.
func CopyRegion(b *PixelBuffer, sel Selection) (*Clipboard, error) {
	if !b.In(sel.Min.X, sel.Min.Y) || !b.In(sel.Max.X, sel.Max.Y) {
		return nil, ErrOutOfBounds
	}
	c := &Clipboard{
		width:  sel.Width(),
		height: sel.Height(),
		pixels: make([]Color, 0, sel.Width()*sel.Height()),
	}
	for y := sel.Min.Y; y <= sel.Max.Y; y++ {
		row := y * b.width
		c.pixels = append(c.pixels, b.pixels[row+sel.Min.X:row+sel.Max.X+1]...)
	}
	return c, nil
}

// PasteInto writes the block into the buffer with its top-left at dest.
// Portions falling outside the buffer are clipped, not reported as errors.
func (c *Clipboard) PasteInto(b *PixelBuffer, dest Point) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			tx, ty := dest.X+x, dest.Y+y
			if b.In(tx, ty) {
				b.pixels[ty*b.width+tx] = c.pixels[y*c.width+x]
			}
		}
	}
}
