package config

import (
	"ubmp4-tones/errcode"
)

// Modes select what the main loop does with the switches.
const (
	ModeTones     = "tones"     // SW2..SW5 play notes
	ModeIndicator = "indicator" // SW2..SW5 light the LED beside them
	ModeDimmer    = "dimmer"    // SW2..SW5 adjust LED5 brightness
)

type Config struct {
	Mode string

	// Cycles is the number of full square-wave cycles per note.
	Cycles uint8

	// PulseStepUs is the countdown step of one PWM pulse.
	PulseStepUs uint16

	InitialBrightness uint8
	BrightnessStep    uint8

	// ContinuousDimmer drives LED5 with one stateful dimmer step per loop
	// iteration instead of a blocking one-shot pulse.
	ContinuousDimmer bool

	// PollIntervalUs is an optional wait at the end of every iteration.
	PollIntervalUs uint16
	// LegacyDelay times PollIntervalUs in chained 10000/1000/100/10 µs
	// quanta, dropping the sub-10 µs remainder.
	LegacyDelay bool

	HeartbeatMs uint32
}

func Default() Config {
	return Config{
		Mode:              ModeTones,
		Cycles:            5,
		PulseStepUs:       20,
		InitialBrightness: 125,
		BrightnessStep:    1,
		HeartbeatMs:       1000,
	}
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeTones, ModeIndicator, ModeDimmer:
	default:
		return errcode.Wrap(errcode.InvalidMode, "config", "mode "+c.Mode)
	}
	if c.Cycles == 0 {
		return errcode.Wrap(errcode.InvalidParams, "config", "cycles must be > 0")
	}
	if c.BrightnessStep == 0 {
		return errcode.Wrap(errcode.InvalidParams, "config", "brightness_step must be > 0")
	}
	return nil
}

// Apply merges JSON-like overrides (as decoded from a config/board message:
// numbers arrive as float64) onto base and validates the result. Unknown keys
// are ignored; a key with the wrong type or range fails the whole update.
func Apply(base Config, m map[string]any) (Config, error) {
	c := base
	for k, v := range m {
		var err error
		switch k {
		case "mode":
			s, ok := v.(string)
			if !ok {
				err = errcode.InvalidPayload
			}
			c.Mode = s
		case "cycles":
			c.Cycles, err = asUint[uint8](v)
		case "pulse_step_us":
			c.PulseStepUs, err = asUint[uint16](v)
		case "initial_brightness":
			c.InitialBrightness, err = asUint[uint8](v)
		case "brightness_step":
			c.BrightnessStep, err = asUint[uint8](v)
		case "continuous_dimmer":
			b, ok := v.(bool)
			if !ok {
				err = errcode.InvalidPayload
			}
			c.ContinuousDimmer = b
		case "poll_interval_us":
			c.PollIntervalUs, err = asUint[uint16](v)
		case "legacy_delay":
			b, ok := v.(bool)
			if !ok {
				err = errcode.InvalidPayload
			}
			c.LegacyDelay = b
		case "heartbeat_ms":
			c.HeartbeatMs, err = asUint[uint32](v)
		}
		if err != nil {
			return base, &errcode.E{C: errcode.InvalidPayload, Op: "config", Msg: k, Err: err}
		}
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

func asUint[T uint8 | uint16 | uint32](v any) (T, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, errcode.InvalidPayload
	}
	max := float64(^T(0))
	if f < 0 || f > max || f != float64(uint64(f)) {
		return 0, errcode.InvalidParams
	}
	return T(f), nil
}
