package led

import "ubmp4-tones/x/mathx"

// Brightness is a duty-cycle setpoint in [0,255].
type Brightness uint8

const (
	Off  Brightness = 0
	Full Brightness = 255
)

// Up raises the level by step, saturating at Full.
func (b Brightness) Up(step uint8) Brightness {
	return Brightness(mathx.AddSat(uint8(b), step, uint8(Full)))
}

// Down lowers the level by step, saturating at Off.
func (b Brightness) Down(step uint8) Brightness {
	return Brightness(mathx.SubSat(uint8(b), step))
}
