// Package delay provides microsecond waits on the board clock.
package delay

import (
	"time"

	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/x/timex"
)

// Quanta used by the chained busy-loop delay, largest first.
var Quanta = [...]uint16{10000, 1000, 100, 10}

// Breakdown is how a request decomposes into Quanta. Remainder (< 10 µs)
// is not timed by Quantized.
type Breakdown struct {
	Counts    [len(Quanta)]uint16
	Remainder uint16
}

// Timed is the part of the request covered by whole quanta.
func (b Breakdown) Timed() time.Duration {
	var us uint32
	for i, n := range b.Counts {
		us += uint32(n) * uint32(Quanta[i])
	}
	return timex.Micros(us)
}

// Split decomposes us greedily, e.g. 23456 => 2x10000 3x1000 4x100 5x10 rem 6.
func Split(us uint16) Breakdown {
	var b Breakdown
	for i, q := range Quanta {
		b.Counts[i] = us / q
		us %= q
	}
	b.Remainder = us
	return b
}

// Wait blocks for us microseconds in a single calibrated wait.
// Wait(c, 0) returns immediately.
func Wait(c core.Clock, us uint16) {
	if us == 0 {
		return
	}
	c.Sleep(timex.Micros(us))
}

// Quantized blocks by consuming whole quanta one at a time and leaves the
// sub-10 µs remainder untimed. It returns the decomposition it used.
func Quantized(c core.Clock, us uint16) Breakdown {
	b := Split(us)
	for i, n := range b.Counts {
		d := timex.Micros(Quanta[i])
		for ; n != 0; n-- {
			c.Sleep(d)
		}
	}
	return b
}
