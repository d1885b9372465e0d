package touchkit

import (
	"image"
	"sync/atomic"
)

const armed = 1 << 32

// Trigger hands a touch coordinate from an interrupt handler, or any other goroutine, to the main loop.
// Arm does no drawing and no widget traversal; the main loop takes the coordinate and dispatches it.
// Coordinate and armed flag live in a single atomic word, so a reader never sees a torn update.
type Trigger struct {
	v atomic.Uint64
}

// Arm records p and arms the trigger. A coordinate not yet taken is replaced.
func (t *Trigger) Arm(p image.Point) {
	t.v.Store(armed | uint64(uint16(p.X))<<16 | uint64(uint16(p.Y)))
}

func (t *Trigger) Disarm() {
	t.v.Store(0)
}

func (t *Trigger) Armed() bool {
	return t.v.Load()&armed != 0
}

// Take disarms the trigger and returns the coordinate it was armed with.
// Each Arm is returned by at most one Take.
func (t *Trigger) Take() (image.Point, bool) {
	v := t.v.Swap(0)
	if v&armed == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(uint16(v>>16)), int(uint16(v))), true
}
