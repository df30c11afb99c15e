// Package loop is the board's polling loop.
//
// Each iteration samples the switches, acts on the selected mode (play a note,
// light an LED, adjust and pulse LED5), then checks SW1 and hands control to
// the bootloader when it is held. All mutable state lives in State and is
// threaded through Step; nothing is global.
package loop

import (
	"context"
	"runtime"

	"ubmp4-tones/bus"
	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/config"
	"ubmp4-tones/services/board/delay"
	"ubmp4-tones/services/board/input"
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/led"
	"ubmp4-tones/services/board/tone"
	"ubmp4-tones/types"
	"ubmp4-tones/x/timex"
)

// Topics published by the loop.
var (
	TopicState      = bus.T("board", "state")
	TopicButton     = bus.T("board", "button")
	TopicTone       = bus.T("board", "tone")
	TopicLED        = bus.T("board", "led")
	TopicBrightness = bus.T("board", "brightness")
)

// Hardware is everything the loop drives.
type Hardware struct {
	Switches input.Switches
	SW1      core.GPIOHandle // bootloader reset switch, active-low
	LEDs     *led.Bank
	Beeper   *tone.Generator
	Clock    core.Clock
	Resetter core.Resetter
}

type State struct {
	Level      string // types.LevelSampling, types.LevelResetPending
	Brightness led.Brightness
	Dimmer     led.Dimmer
	Held       string // switch seen on the previous iteration, "" if none
	Iterations uint64
}

type Machine struct {
	cfg  config.Config
	hw   Hardware
	conn *bus.Connection // nil => nothing is published

	tones   *input.Table[tone.HalfPeriod]
	ids     *input.Table[input.ButtonID]
	actions *input.Table[input.Action]
}

func New(cfg config.Config, hw Hardware, conn *bus.Connection) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hw.SW1 == nil || hw.LEDs == nil || hw.Beeper == nil || hw.Clock == nil || hw.Resetter == nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "loop", "incomplete hardware")
	}
	m := &Machine{cfg: cfg, hw: hw, conn: conn}
	var err error
	if m.tones, err = input.ToneTable(hw.Switches); err != nil {
		return nil, err
	}
	if m.ids, err = input.IDTable(hw.Switches); err != nil {
		return nil, err
	}
	if m.actions, err = input.ActionTable(hw.Switches); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) Config() config.Config { return m.cfg }

// Initial is the state at power-up.
func (m *Machine) Initial() State {
	return State{
		Level:      types.LevelSampling,
		Brightness: led.Brightness(m.cfg.InitialBrightness),
	}
}

// Step runs one iteration. It returns errcode.Reset once the bootloader
// has been requested; on hardware that call does not return.
func (m *Machine) Step(st State) (State, error) {
	st.Iterations++

	switch m.cfg.Mode {
	case config.ModeIndicator:
		st = m.stepIndicator(st)
	case config.ModeDimmer:
		st = m.stepDimmer(st)
	default:
		st = m.stepTones(st)
	}

	if input.Pressed(m.hw.SW1) {
		st.Level = types.LevelResetPending
		m.publishState(st)
		println("[loop] SW1 held: entering bootloader")
		m.hw.Resetter.ResetToBootloader()
		return st, errcode.Reset
	}

	if m.cfg.LegacyDelay {
		delay.Quantized(m.hw.Clock, m.cfg.PollIntervalUs)
	} else {
		delay.Wait(m.hw.Clock, m.cfg.PollIntervalUs)
	}
	return st, nil
}

// Run publishes the initial state and steps until reset or ctx is done.
// A config received on updates replaces the running one between iterations;
// an invalid one is logged and ignored. A mode change turns every LED off and
// a new InitialBrightness reseeds the brightness.
func (m *Machine) Run(ctx context.Context, st State, updates <-chan config.Config) (State, error) {
	m.announce(st)
	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case cfg := <-updates:
			if err := cfg.Validate(); err != nil {
				println("[loop] config rejected:", err.Error())
				break
			}
			if cfg.Mode != m.cfg.Mode {
				m.hw.LEDs.Clear()
				m.publish(TopicLED, types.LEDValue{}, false)
			}
			if cfg.InitialBrightness != m.cfg.InitialBrightness {
				st.Brightness = led.Brightness(cfg.InitialBrightness)
			}
			m.cfg = cfg
			st.Held = ""
			st.Dimmer = led.Dimmer{}
			println("[loop] mode", cfg.Mode)
			m.announce(st)
		default:
		}
		var err error
		if st, err = m.Step(st); err != nil {
			return st, err
		}
		// Idle iterations never block; let other goroutines run on a
		// cooperative scheduler.
		runtime.Gosched()
	}
}

func (m *Machine) announce(st State) {
	m.publishState(st)
	if m.cfg.Mode == config.ModeDimmer {
		m.publishBrightness(st.Brightness)
	}
}

// ---- modes ----

func (m *Machine) stepTones(st State) State {
	e, ok := m.tones.Lookup()
	st = m.track(st, e.Name, uint16(e.Value), ok)
	if !ok {
		return st
	}
	m.hw.Beeper.Play(e.Value, m.cfg.Cycles)
	m.publish(TopicTone, types.ToneEvent{
		HalfPeriodUs: uint16(e.Value),
		Cycles:       m.cfg.Cycles,
		TS:           timex.NowMs(),
	}, false)
	return st
}

// stepIndicator lights the LED beside the held switch (SW n => LED n+1).
func (m *Machine) stepIndicator(st State) State {
	e, ok := m.ids.Lookup()
	if e.Name == st.Held {
		return st
	}
	st = m.track(st, e.Name, uint16(e.Value), ok)
	m.hw.LEDs.Clear()
	m.publish(TopicLED, types.LEDValue{}, false)
	if ok {
		id := uint8(e.Value) + 1
		if m.hw.LEDs.Light(id) {
			m.publish(TopicLED, types.LEDValue{ID: id, On: true}, false)
		}
	}
	return st
}

func (m *Machine) stepDimmer(st State) State {
	e, ok := m.actions.Lookup()
	st = m.track(st, e.Name, uint16(e.Value), ok)

	prev := st.Brightness
	switch e.Value {
	case input.Up:
		st.Brightness = st.Brightness.Up(m.cfg.BrightnessStep)
	case input.Down:
		st.Brightness = st.Brightness.Down(m.cfg.BrightnessStep)
	case input.Meikai:
		st.Brightness = led.Full
	case input.Poggers:
		st.Brightness = led.Off
	}
	if st.Brightness != prev {
		m.publishBrightness(st.Brightness)
	}

	led5 := m.hw.LEDs.LED(5)
	if m.cfg.ContinuousDimmer {
		st.Dimmer.Step(led5, uint8(st.Brightness))
	} else {
		led.Pulse(led5, m.hw.Clock, uint8(st.Brightness), timex.Micros(m.cfg.PulseStepUs))
	}
	return st
}

// track records the held switch and publishes a button event when a new
// switch is first seen.
func (m *Machine) track(st State, name string, value uint16, ok bool) State {
	if !ok {
		st.Held = ""
		return st
	}
	if name != st.Held {
		m.publish(TopicButton, types.ButtonEvent{Name: name, Value: value, TS: timex.NowMs()}, false)
	}
	st.Held = name
	return st
}

// ---- publishing ----

func (m *Machine) publish(t bus.Topic, payload any, retained bool) {
	if m.conn == nil {
		return
	}
	m.conn.Publish(m.conn.NewMessage(t, payload, retained))
}

func (m *Machine) publishState(st State) {
	m.publish(TopicState, types.BoardState{Level: st.Level, Mode: m.cfg.Mode, TS: timex.NowMs()}, true)
}

func (m *Machine) publishBrightness(b led.Brightness) {
	m.publish(TopicBrightness, types.BrightnessValue{Level: uint8(b)}, true)
}
