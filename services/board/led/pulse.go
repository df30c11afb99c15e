package led

import (
	"time"

	"ubmp4-tones/services/board/internal/core"
)

// DefaultPulseStep is the wait per countdown step of a PWM pulse.
const DefaultPulseStep = 20 * time.Microsecond

// Pulse emits one software PWM pulse of brightness value on pin.
//
// It counts t down from 255 to 1, waiting step per count, and asserts the pin
// once t reaches value, so the on-time is value/255 of the pulse. The pin is
// released at the end unless value is 255. Callers repeat Pulse to hold a
// duty cycle.
func Pulse(pin core.GPIOHandle, c core.Clock, value uint8, step time.Duration) {
	for t := uint8(255); t != 0; t-- {
		if value == t {
			pin.Set(true)
		}
		c.Sleep(step)
	}
	if value < 255 {
		pin.Set(false)
	}
}
