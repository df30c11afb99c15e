//go:build !rp2040

package main

import (
	"ubmp4-tones/bus"
	"ubmp4-tones/services/board"
	"ubmp4-tones/services/board/config"
	"ubmp4-tones/services/board/loop"
	"ubmp4-tones/types"
)

// tour walks every mode with each switch and checks the board's reaction.
func tour(sim *board.Sim, ui *bus.Connection) {
	states := ui.Subscribe(loop.TopicState)
	buttons := ui.Subscribe(loop.TopicButton)
	bright := ui.Subscribe(loop.TopicBrightness)
	defer ui.Unsubscribe(states)
	defer ui.Unsubscribe(buttons)
	defer ui.Unsubscribe(bright)

	// Tones: each switch plays its note once it is held.
	for _, sw := range toneSwitches {
		before := sim.BeeperToggles()
		_ = sim.Press(sw)
		check(awaitButton(buttons, sw) && sim.BeeperToggles() > before, sw+" plays a note")
		_ = sim.Release(sw)
	}

	// Indicator: each switch lights the LED beside it.
	check(setMode(ui, states, config.ModeIndicator), "indicator mode")
	for i, sw := range toneSwitches {
		_ = sim.Press(sw)
		check(awaitButton(buttons, sw) && sim.LEDs()[i+1], sw+" lights its LED")
		_ = sim.Release(sw)
	}

	// Dimmer: raise, lower, full, off.
	check(setMode(ui, states, config.ModeDimmer), "dimmer mode")
	for _, step := range []struct {
		sw   string
		n    int
		want func(uint8) bool
	}{
		{"SW4", dimmerSteps, func(uint8) bool { return true }},
		{"SW5", dimmerSteps, func(uint8) bool { return true }},
		{"SW3", 1, func(v uint8) bool { return v == 255 }},
		{"SW2", 1, func(v uint8) bool { return v == 0 }},
	} {
		_ = sim.Press(step.sw)
		for i := 0; i < step.n; i++ {
			check(await(bright, stepTimeout, func(m *bus.Message) bool {
				v, ok := m.Payload.(types.BrightnessValue)
				return ok && step.want(v.Level)
			}), step.sw+" adjusts brightness")
		}
		_ = sim.Release(step.sw)
	}
}
