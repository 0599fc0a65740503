package state

import (
	"encoding/json"
	"fmt"
	"time"

	"PixelBoard/internal/engine"

	"github.com/google/uuid"
)

// Document is the on-disk session format: canvas dimensions plus packed RGB
// pixels. The pixel payload round-trips exactly; nothing else about the
// session (history, clipboard) is persisted.
type Document struct {
	ID      string    `json:"id"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Pixels  []byte    `json:"pixels"`
	SavedAt time.Time `json:"saved_at"`
}

// NewDocument snapshots a session into a saveable document.
func NewDocument(s *engine.Session) *Document {
	pixels, w, h := s.ExportImage()
	return &Document{
		ID:      uuid.NewString(),
		Width:   w,
		Height:  h,
		Pixels:  EncodePixels(pixels),
		SavedAt: time.Now(),
	}
}

// Marshal renders the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument parses and validates a saved document. Malformed input
// is rejected before any buffer is touched.
func UnmarshalDocument(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("document has invalid size %dx%d", d.Width, d.Height)
	}
	if len(d.Pixels) != d.Width*d.Height*3 {
		return nil, fmt.Errorf("document pixel data is %d bytes, want %d",
			len(d.Pixels), d.Width*d.Height*3)
	}
	return &d, nil
}

// RestoreInto loads the document's pixels into a session of matching
// dimensions. The restore is recorded in history like any other edit.
func (d *Document) RestoreInto(s *engine.Session) error {
	pixels, err := DecodePixels(d.Pixels)
	if err != nil {
		return err
	}
	return s.ImportImage(pixels, d.Width, d.Height)
}
