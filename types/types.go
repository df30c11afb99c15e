package types

// ---- Board state (retained) ----

// Level values published on board/state.
const (
	LevelSampling     = "sampling"
	LevelResetPending = "reset_pending"
)

type BoardState struct {
	Level string `json:"level"` // "sampling", "reset_pending"
	Mode  string `json:"mode"`  // "tones", "indicator", "dimmer"
	TS    int64  `json:"ts_ms"`
}

// ---- Input ----

// ButtonEvent reports a non-empty sample: the switch name and the value its
// table mapped it to (tone period, button id or action).
type ButtonEvent struct {
	Name  string `json:"name"` // "SW2".."SW5"
	Value uint16 `json:"value"`
	TS    int64  `json:"ts_ms"`
}

// ---- Beeper ----

type ToneEvent struct {
	HalfPeriodUs uint16 `json:"half_period_us"`
	Cycles       uint8  `json:"cycles"`
	TS           int64  `json:"ts_ms"`
}

// ---- LEDs ----

type LEDValue struct {
	ID uint8 `json:"id"` // 2..6; 0 => whole port
	On bool  `json:"on"`
}

type BrightnessValue struct {
	Level uint8 `json:"level"` // 0..255
}
