//go:build !tinygo

package hal

import "time"

// hostClock turns wall-clock time into a stream of 1 ms ticks.
type hostClock struct {
	ch   chan uint64
	seq  uint64
	prev time.Time
	rem  time.Duration
}

func newHostClock() *hostClock {
	return &hostClock{ch: make(chan uint64, 1024)}
}

func (c *hostClock) Ticks() <-chan uint64 { return c.ch }

// sync emits the ticks that elapsed since the previous call.
func (c *hostClock) sync() { c.advance(time.Now()) }

// advance emits one tick per whole millisecond between the previous call and now,
// carrying the remainder. The first call emits a single tick.
func (c *hostClock) advance(now time.Time) {
	if c.prev.IsZero() {
		c.prev = now
		c.emit(1)
		return
	}
	c.rem += now.Sub(c.prev)
	c.prev = now
	if c.rem < time.Millisecond {
		return
	}
	n := uint64(c.rem / time.Millisecond)
	c.rem %= time.Millisecond
	c.emit(n)
}

// emit advances the sequence by n. Ticks that do not fit the channel are skipped;
// readers see the gap in the sequence numbers.
func (c *hostClock) emit(n uint64) {
	for ; n > 0; n-- {
		c.seq++
		select {
		case c.ch <- c.seq:
		default:
		}
	}
}
