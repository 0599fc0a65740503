package engine

import (
	"errors"
	"testing"
)

func TestSetGetRoundTrip(t *testing.T) {
	b, err := NewPixelBuffer(8, 6, Color{255, 255, 255})
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	c := Color{10, 20, 30}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if err := b.Set(x, y, c); err != nil {
				t.Fatalf("Set(%d,%d): %v", x, y, err)
			}
			got, err := b.Get(x, y)
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", x, y, err)
			}
			if got != c {
				t.Errorf("Get(%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

func TestOutOfBoundsAccess(t *testing.T) {
	b, _ := NewPixelBuffer(4, 4, Color{})
	coords := []Point{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}, {-5, -5},
	}
	for _, p := range coords {
		if _, err := b.Get(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Get(%d,%d) error = %v, want ErrOutOfBounds", p.X, p.Y, err)
		}
		if err := b.Set(p.X, p.Y, Color{1, 2, 3}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d,%d) error = %v, want ErrOutOfBounds", p.X, p.Y, err)
		}
	}
}

func TestInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewPixelBuffer(dims[0], dims[1], Color{}); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("NewPixelBuffer(%d,%d) error = %v, want ErrDimensionMismatch", dims[0], dims[1], err)
		}
	}
}

func TestFillAll(t *testing.T) {
	b, _ := NewPixelBuffer(5, 5, Color{})
	c := Color{200, 100, 50}
	b.FillAll(c)
	for _, px := range b.Pixels() {
		if px != c {
			t.Fatalf("FillAll left pixel %v, want %v", px, c)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	b, _ := NewPixelBuffer(6, 6, Color{255, 255, 255})
	b.Set(2, 3, Color{1, 2, 3})
	snap := b.Snapshot()

	// Mutating the buffer must not leak into the snapshot.
	b.Set(2, 3, Color{9, 9, 9})
	if snap.At(2, 3) != (Color{1, 2, 3}) {
		t.Fatal("snapshot shares storage with buffer")
	}

	if err := b.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got, _ := b.Get(2, 3); got != (Color{1, 2, 3}) {
		t.Errorf("after restore Get(2,3) = %v, want {1 2 3}", got)
	}
}

func TestRestoreDimensionMismatch(t *testing.T) {
	b, _ := NewPixelBuffer(6, 6, Color{})
	other, _ := NewPixelBuffer(4, 4, Color{})
	if err := b.Restore(other.Snapshot()); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Restore error = %v, want ErrDimensionMismatch", err)
	}
}

func TestClamp(t *testing.T) {
	b, _ := NewPixelBuffer(10, 8, Color{})
	cases := []struct {
		in, want Point
	}{
		{Point{5, 5}, Point{5, 5}},
		{Point{-3, 4}, Point{0, 4}},
		{Point{12, 4}, Point{9, 4}},
		{Point{4, -1}, Point{4, 0}},
		{Point{4, 99}, Point{4, 7}},
		{Point{-10, -10}, Point{0, 0}},
	}
	for _, tc := range cases {
		if got := b.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
