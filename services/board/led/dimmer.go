package led

import "ubmp4-tones/services/board/internal/core"

// Period is the number of Dimmer steps in one duty cycle.
const Period = 255

// Dimmer is a stateful software PWM: each Step drives one slot of a
// 255-slot cycle and keeps the phase between calls, so a caller can
// interleave dimming with other work instead of blocking for a whole pulse.
type Dimmer struct {
	phase uint8 // 0..Period-1
}

func (d *Dimmer) Phase() uint8 { return d.phase }

// Step drives pin for the current slot (on while phase < level) and advances
// the phase. Across any Period consecutive steps the pin is on level times.
func (d *Dimmer) Step(pin core.GPIOHandle, level uint8) {
	pin.Set(d.phase < level)
	d.phase++
	if d.phase == Period {
		d.phase = 0
	}
}
