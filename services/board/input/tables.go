package input

import (
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/tone"
)

// Switches are the four user push-buttons, SW2..SW5.
type Switches struct {
	SW2, SW3, SW4, SW5 core.GPIOHandle
}

// NoTone is returned by the tone table when no switch is held.
const NoTone tone.HalfPeriod = 0

// ToneTable maps SW2..SW5 to note periods.
func ToneTable(sw Switches) (*Table[tone.HalfPeriod], error) {
	return NewTable(NoTone,
		Entry[tone.HalfPeriod]{Name: "SW2", Pin: sw.SW2, Value: tone.A4},
		Entry[tone.HalfPeriod]{Name: "SW3", Pin: sw.SW3, Value: tone.D4},
		Entry[tone.HalfPeriod]{Name: "SW4", Pin: sw.SW4, Value: tone.D5},
		Entry[tone.HalfPeriod]{Name: "SW5", Pin: sw.SW5, Value: tone.Ab4},
	)
}

// ButtonID is the switch number 2..5; NoButtonID means none held.
type ButtonID uint8

const NoButtonID ButtonID = 0

// IDTable maps SW2..SW5 to their switch numbers.
func IDTable(sw Switches) (*Table[ButtonID], error) {
	return NewTable(NoButtonID,
		Entry[ButtonID]{Name: "SW2", Pin: sw.SW2, Value: 2},
		Entry[ButtonID]{Name: "SW3", Pin: sw.SW3, Value: 3},
		Entry[ButtonID]{Name: "SW4", Pin: sw.SW4, Value: 4},
		Entry[ButtonID]{Name: "SW5", Pin: sw.SW5, Value: 5},
	)
}

// Action is a brightness command.
type Action uint8

const (
	NoButton Action = iota
	Up
	Down
	Meikai  // instant full-on
	Poggers // instant off
)

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Meikai:
		return "meikai"
	case Poggers:
		return "poggers"
	default:
		return "none"
	}
}

// ActionTable scans SW4, SW5, SW3, SW2 in that priority.
func ActionTable(sw Switches) (*Table[Action], error) {
	return NewTable(NoButton,
		Entry[Action]{Name: "SW4", Pin: sw.SW4, Value: Up},
		Entry[Action]{Name: "SW5", Pin: sw.SW5, Value: Down},
		Entry[Action]{Name: "SW3", Pin: sw.SW3, Value: Meikai},
		Entry[Action]{Name: "SW2", Pin: sw.SW2, Value: Poggers},
	)
}
