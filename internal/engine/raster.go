package engine

// Stateless rasterization: each shape function computes the set of pixels a
// discrete shape covers. Plot writes a point set into a buffer, dropping
// points that fall outside the canvas — clipping is expected for shapes
// drawn near the edges and is not an error.

// Plot sets every in-bounds point in pts to c.
func Plot(b *PixelBuffer, pts []Point, c Color) {
	for _, p := range pts {
		if b.In(p.X, p.Y) {
			b.pixels[p.Y*b.width+p.X] = c
		}
	}
}

// LinePoints returns the 8-connected Bresenham path from p0 to p1, both
// endpoints included. Identical endpoints yield a single pixel.
func LinePoints(p0, p1 Point) []Point {
	dx := abs(p1.X - p0.X)
	dy := abs(p1.Y - p0.Y)
	sx := 1
	if p0.X > p1.X {
		sx = -1
	}
	sy := 1
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx - dy
	x, y := p0.X, p0.Y

	pts := make([]Point, 0, dx+dy+1)
	for {
		pts = append(pts, Point{x, y})
		if x == p1.X && y == p1.Y {
			return pts
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// RectPoints returns the pixels of the axis-aligned rectangle spanned by
// the two opposite corners p0 and p1. Outline mode covers only the four
// border edges; corner pixels may appear twice, which is harmless since
// plotting is idempotent.
func RectPoints(p0, p1 Point, filled bool) []Point {
	left, right := minMax(p0.X, p1.X)
	top, bottom := minMax(p0.Y, p1.Y)

	if filled {
		pts := make([]Point, 0, (right-left+1)*(bottom-top+1))
		for y := top; y <= bottom; y++ {
			for x := left; x <= right; x++ {
				pts = append(pts, Point{x, y})
			}
		}
		return pts
	}

	var pts []Point
	for x := left; x <= right; x++ {
		pts = append(pts, Point{x, top}, Point{x, bottom})
	}
	for y := top; y <= bottom; y++ {
		pts = append(pts, Point{left, y}, Point{right, y})
	}
	return pts
}

// CirclePoints returns the pixels of a circle of integer radius r around
// center. Filled mode covers the disk x²+y² ≤ r² over the bounding box;
// outline mode walks the midpoint circle algorithm with 8-way symmetry.
func CirclePoints(center Point, r int, filled bool) []Point {
	if r < 0 {
		return nil
	}
	if filled {
		var pts []Point
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy <= r*r {
					pts = append(pts, Point{center.X + dx, center.Y + dy})
				}
			}
		}
		return pts
	}

	var pts []Point
	x, y := 0, r
	d := 3 - 2*r
	for y >= x {
		pts = append(pts, octantPoints(center, x, y)...)
		x++
		if d > 0 {
			y--
			d += 4*(x-y) + 10
		} else {
			d += 4*x + 6
		}
	}
	return pts
}

// octantPoints mirrors (x, y) into all eight circle octants around c.
func octantPoints(c Point, x, y int) []Point {
	return []Point{
		{c.X + x, c.Y + y}, {c.X - x, c.Y + y},
		{c.X + x, c.Y - y}, {c.X - x, c.Y - y},
		{c.X + y, c.Y + x}, {c.X - y, c.Y + x},
		{c.X + y, c.Y - x}, {c.X - y, c.Y - x},
	}
}

// FloodFill replaces the 4-connected region of the seed's color with fill.
// The traversal is iterative with an explicit stack so memory stays bounded
// by the canvas area. Filling a region that already has the fill color is a
// no-op. The seed must be in bounds.
func FloodFill(b *PixelBuffer, seed Point, fill Color) error {
	target, err := b.Get(seed.X, seed.Y)
	if err != nil {
		return err
	}
	if target == fill {
		return nil
	}

	stack := []Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Revisits and out-of-bounds neighbors fail this check, so no
		// separate visited set is needed.
		if !b.In(p.X, p.Y) || b.pixels[p.Y*b.width+p.X] != target {
			continue
		}
		b.pixels[p.Y*b.width+p.X] = fill
		stack = append(stack,
			Point{p.X + 1, p.Y}, Point{p.X - 1, p.Y},
			Point{p.X, p.Y + 1}, Point{p.X, p.Y - 1})
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
