// Package dashboard is the live telemetry view: a Bubble Tea event loop
// that stays responsive to keystrokes while snapshot collection and frame
// rendering happen in a background worker.
package dashboard

import (
	"sync/atomic"
	"time"
)

// Frame is one fully rendered terminal view, tagged with the generation
// of the snapshot it was built from. Immutable once published.
type Frame struct {
	Generation uint64
	Body       string
	Taken      time.Time

	// Paused records the pause state the frame was rendered under, so
	// the loop can spot a frame whose header no longer matches.
	Paused bool
}

// Cell is the versioned handoff slot between the render worker and the
// event loop. The worker publishes completed frames; the loop adopts the
// latest one. Publication is atomic, so a reader never observes a
// partially written frame, and monotonic, so a slow worker can never
// roll the cell back to an older generation.
type Cell struct {
	p atomic.Pointer[Frame]
}

// Publish stores f unless the cell already holds a frame of equal or
// newer generation. Returns whether f was stored.
func (c *Cell) Publish(f *Frame) bool {
	for {
		cur := c.p.Load()
		if cur != nil && cur.Generation >= f.Generation {
			return false
		}
		if c.p.CompareAndSwap(cur, f) {
			return true
		}
	}
}

// Latest returns the most recently published frame, or nil before the
// first publication.
func (c *Cell) Latest() *Frame {
	return c.p.Load()
}
