// Package state holds the shared-session state around the raster engine:
// the operation log used for live sharing and the document format used for
// save/load. The engine itself stays free of wire and file formats.
package state

import (
	"fmt"
	"log"
	"sync"

	"PixelBoard/internal/engine"

	"github.com/google/uuid"
)

// OpType discriminates live-share operations.
type OpType string

const (
	// OpEdit carries one committed tool gesture.
	OpEdit OpType = "edit"
	// OpSync carries a full buffer state (clear, paste, undo, redo, import).
	OpSync OpType = "sync"
)

// Op is one shared operation. Edits replay through the engine's own
// rasterizers on the receiving side; syncs replace the buffer wholesale.
type Op struct {
	ID      string        `json:"id"`
	Site    string        `json:"site"`
	Lamport uint64        `json:"lamport"`
	Type    OpType        `json:"type"`
	Edit    *engine.Edit  `json:"edit,omitempty"`
	Image   *ImagePayload `json:"image,omitempty"`
}

// ImagePayload is a full raster image on the wire. Pixels are packed RGB,
// row-major, three bytes per pixel (JSON encodes them as base64).
type ImagePayload struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixels []byte `json:"pixels"`
}

// OpLog stamps outgoing operations and deduplicates incoming ones. It is
// safe for concurrent use: the network reader and the UI goroutine both
// touch it.
type OpLog struct {
	clock *Clock
	mu    sync.RWMutex
	seen  map[string]bool
}

func NewOpLog() *OpLog {
	return &OpLog{clock: NewClock(), seen: make(map[string]bool)}
}

// Site returns the log's site ID.
func (l *OpLog) Site() string { return l.clock.Site() }

// NewEdit wraps a committed engine edit into a stamped operation.
func (l *OpLog) NewEdit(e engine.Edit) Op {
	op := Op{
		ID:      uuid.NewString(),
		Site:    l.clock.Site(),
		Lamport: l.clock.Next(),
		Type:    OpEdit,
		Edit:    &e,
	}
	l.record(op.ID)
	return op
}

// NewSync wraps a full buffer snapshot into a stamped operation.
func (l *OpLog) NewSync(snap engine.Snapshot) Op {
	op := Op{
		ID:      uuid.NewString(),
		Site:    l.clock.Site(),
		Lamport: l.clock.Next(),
		Type:    OpSync,
		Image:   snapshotPayload(snap),
	}
	l.record(op.ID)
	return op
}

// Record registers a remote operation. It returns false for operations
// already seen (our own ops echoed back, or relays crossing paths), which
// the caller must drop.
func (l *OpLog) Record(op Op) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[op.ID] {
		return false
	}
	l.seen[op.ID] = true
	l.clock.Observe(op.Lamport)
	return true
}

func (l *OpLog) record(id string) {
	l.mu.Lock()
	l.seen[id] = true
	l.mu.Unlock()
}

// Apply replays a recorded operation onto a session.
func (op Op) Apply(s *engine.Session) error {
	switch op.Type {
	case OpEdit:
		if op.Edit == nil {
			return fmt.Errorf("edit op %s has no payload", op.ID)
		}
		return s.ApplyEdit(*op.Edit)
	case OpSync:
		if op.Image == nil {
			return fmt.Errorf("sync op %s has no payload", op.ID)
		}
		pixels, err := DecodePixels(op.Image.Pixels)
		if err != nil {
			return fmt.Errorf("sync op %s: %w", op.ID, err)
		}
		return s.ApplySync(pixels, op.Image.Width, op.Image.Height)
	}
	return fmt.Errorf("unknown op type %q", op.Type)
}

func snapshotPayload(snap engine.Snapshot) *ImagePayload {
	pixels := make([]engine.Color, 0, snap.Width()*snap.Height())
	for y := 0; y < snap.Height(); y++ {
		for x := 0; x < snap.Width(); x++ {
			pixels = append(pixels, snap.At(x, y))
		}
	}
	return &ImagePayload{
		Width:  snap.Width(),
		Height: snap.Height(),
		Pixels: EncodePixels(pixels),
	}
}

// EncodePixels packs colors into RGB bytes, row-major.
func EncodePixels(pixels []engine.Color) []byte {
	out := make([]byte, 0, len(pixels)*3)
	for _, c := range pixels {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// DecodePixels unpacks RGB bytes back into colors.
func DecodePixels(data []byte) ([]engine.Color, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("pixel data length %d is not a multiple of 3", len(data))
	}
	out := make([]engine.Color, len(data)/3)
	for i := range out {
		out[i] = engine.Color{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return out, nil
}

// LogOp is a debugging aid used by host and client wiring.
func LogOp(prefix string, op Op) {
	log.Printf("[STATE] %s op %s type=%s site=%s lamport=%d", prefix, op.ID, op.Type, op.Site, op.Lamport)
}
