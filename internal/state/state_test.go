package state

import (
	"testing"

	"PixelBoard/internal/engine"
)

func TestOpLogDeduplicates(t *testing.T) {
	a := NewOpLog()
	b := NewOpLog()

	op := a.NewEdit(engine.Edit{Tool: engine.ToolLine, From: engine.Point{X: 0, Y: 0}, To: engine.Point{X: 5, Y: 0}})
	if !b.Record(op) {
		t.Fatal("first delivery should be recorded")
	}
	if b.Record(op) {
		t.Error("duplicate delivery should be dropped")
	}
	// A site's own ops echoed back are dropped too.
	if a.Record(op) {
		t.Error("echoed own op should be dropped")
	}
}

func TestClockObserve(t *testing.T) {
	c := NewClock()
	c.Observe(41)
	if got := c.Next(); got != 42 {
		t.Errorf("Next after Observe(41) = %d, want 42", got)
	}
	c.Observe(10) // observing an older timestamp never rewinds
	if got := c.Next(); got != 43 {
		t.Errorf("Next = %d, want 43", got)
	}
}

func TestSyncOpRoundTrip(t *testing.T) {
	src, err := engine.NewSession(8, 8, engine.Color{R: 255, G: 255, B: 255})
	if err != nil {
		t.Fatal(err)
	}
	engine.Plot(src.Buffer(), engine.LinePoints(engine.Point{X: 0, Y: 0}, engine.Point{X: 7, Y: 7}), engine.Color{R: 9, G: 8, B: 7})

	op := NewOpLog().NewSync(src.Snapshot())

	dst, err := engine.NewSession(8, 8, engine.Color{R: 0, G: 0, B: 0})
	if err != nil {
		t.Fatal(err)
	}
	if err := op.Apply(dst); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want, _ := src.Buffer().Get(x, y)
			got, _ := dst.Buffer().Get(x, y)
			if got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSyncOpDimensionMismatch(t *testing.T) {
	src, _ := engine.NewSession(8, 8, engine.Color{})
	dst, _ := engine.NewSession(4, 4, engine.Color{})
	op := NewOpLog().NewSync(src.Snapshot())
	if err := op.Apply(dst); err == nil {
		t.Fatal("expected dimension mismatch applying 8x8 sync to 4x4 session")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	src, _ := engine.NewSession(6, 5, engine.Color{R: 255, G: 255, B: 255})
	engine.Plot(src.Buffer(), engine.RectPoints(engine.Point{X: 1, Y: 1}, engine.Point{X: 4, Y: 3}, true), engine.Color{R: 1, G: 2, B: 3})

	data, err := NewDocument(src).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	doc, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}

	dst, _ := engine.NewSession(6, 5, engine.Color{R: 0, G: 0, B: 0})
	if err := doc.RestoreInto(dst); err != nil {
		t.Fatalf("RestoreInto: %v", err)
	}
	srcPx, _, _ := src.ExportImage()
	dstPx, _, _ := dst.ExportImage()
	for i := range srcPx {
		if srcPx[i] != dstPx[i] {
			t.Fatalf("pixel %d = %v, want %v", i, dstPx[i], srcPx[i])
		}
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"id":"x","width":0,"height":4,"pixels":""}`,
		`{"id":"x","width":4,"height":4,"pixels":"AAAA"}`, // wrong payload length
	}
	for _, in := range cases {
		if _, err := UnmarshalDocument([]byte(in)); err == nil {
			t.Errorf("UnmarshalDocument(%q) succeeded, want error", in)
		}
	}
}
