//go:build !rp2040

package main

import (
	"ubmp4-tones/types"

	"github.com/rs/zerolog"
)

// tally counts the events seen over a session.
type tally struct {
	buttons, tones, leds, resets int
	lastBrightness               int
	seenBrightness               bool
}

func (t *tally) add(ev any) {
	switch v := ev.(type) {
	case types.ButtonEvent:
		t.buttons++
	case types.ToneEvent:
		t.tones++
	case types.LEDValue:
		if v.On {
			t.leds++
		}
	case types.BoardState:
		if v.Level == types.LevelResetPending {
			t.resets++
		}
	case types.BrightnessValue:
		t.lastBrightness = int(v.Level)
		t.seenBrightness = true
	}
}

func (t *tally) log(logger *zerolog.Logger) {
	e := logger.Info().
		Int("buttons", t.buttons).
		Int("tones", t.tones).
		Int("leds_lit", t.leds).
		Int("resets", t.resets)
	if t.seenBrightness {
		e = e.Int("brightness", t.lastBrightness)
	}
	e.Msg("session")
}
