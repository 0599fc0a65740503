package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is a Lamport clock paired with a unique site ID. Every operation a
// site emits carries the pair, which lets receivers order and deduplicate
// operations from any number of peers.
type Clock struct {
	site    string
	lamport uint64
}

func NewClock() *Clock {
	return &Clock{site: uuid.NewString()}
}

// Site returns this session's unique site ID.
func (c *Clock) Site() string { return c.site }

// Next increments the clock and returns the new value.
func (c *Clock) Next() uint64 {
	return atomic.AddUint64(&c.lamport, 1)
}

// Observe advances the clock past a timestamp seen on a remote operation.
func (c *Clock) Observe(ts uint64) {
	for {
		cur := atomic.LoadUint64(&c.lamport)
		if ts <= cur || atomic.CompareAndSwapUint64(&c.lamport, cur, ts) {
			return
		}
	}
}
