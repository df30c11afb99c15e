// Package tone bit-bangs a square wave on the beeper pin.
package tone

import (
	"time"

	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/x/mathx"
	"ubmp4-tones/x/timex"
)

// HalfPeriod is the time between beeper toggles, in microseconds.
// Larger values give a lower pitch.
type HalfPeriod uint16

// Note periods carried over from the trainer's tone table.
const (
	A4  HalfPeriod = 2273
	D4  HalfPeriod = 3405
	D5  HalfPeriod = 1703
	Ab4 HalfPeriod = 2408
)

// DefaultCycles is the number of full square-wave cycles PlayNote emits
// (two toggles per cycle).
const DefaultCycles uint8 = 5

func (h HalfPeriod) Duration() time.Duration { return timex.Micros(h) }

// HalfPeriodFromHz returns the half-period producing hz, rounded to the
// nearest microsecond and saturated to the HalfPeriod range. hz == 0 yields 0.
func HalfPeriodFromHz(hz uint32) HalfPeriod {
	if hz == 0 {
		return 0
	}
	us := mathx.RoundDiv(uint32(500_000), hz)
	return HalfPeriod(mathx.Min(us, uint32(^HalfPeriod(0))))
}

// Length is the total blocking time of Play(h, cycles).
func Length(h HalfPeriod, cycles uint8) time.Duration {
	return 2 * time.Duration(cycles) * h.Duration()
}

type Generator struct {
	beeper core.GPIOHandle
	clock  core.Clock
}

func New(beeper core.GPIOHandle, clock core.Clock) *Generator {
	return &Generator{beeper: beeper, clock: clock}
}

// Play toggles the beeper 2*cycles times, waiting h after every toggle.
// It blocks until the tone has finished; cycles == 0 is a no-op.
func (g *Generator) Play(h HalfPeriod, cycles uint8) {
	d := h.Duration()
	for n := 2 * int(cycles); n != 0; n-- {
		g.beeper.Toggle()
		g.clock.Sleep(d)
	}
}

// PlayNote plays h for DefaultCycles cycles (10 toggles).
func (g *Generator) PlayNote(h HalfPeriod) { g.Play(h, DefaultCycles) }
