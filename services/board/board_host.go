//go:build !rp2040

package board

import (
	"time"

	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/internal/provider"
)

// Sim is a board backed by fake pins, for host runs and tests.
type Sim struct {
	*Board
	clock *provider.FakeClock // nil when on the wall clock
}

// NewSim opens a simulated board. With virtual set, waits advance a
// virtual clock instead of sleeping.
func NewSim(virtual bool) (*Sim, error) {
	reg := provider.NewResources()
	s := &Sim{}
	if virtual {
		s.clock = provider.NewVirtualClock()
		reg.UseClock(s.clock)
	}
	b, err := open(reg)
	if err != nil {
		return nil, err
	}
	s.Board = b
	return s, nil
}

func (s *Sim) switchPin(name string) (*provider.FakePin, error) {
	p := s.plan
	var n int
	switch name {
	case "SW1":
		n = p.SW1
	case "SW2":
		n = p.SW2
	case "SW3":
		n = p.SW3
	case "SW4":
		n = p.SW4
	case "SW5":
		n = p.SW5
	default:
		return nil, errcode.Wrap(errcode.UnknownPin, "sim", name)
	}
	return s.reg.Pin(n), nil
}

// Press holds switch name ("SW1".."SW5").
func (s *Sim) Press(name string) error {
	p, err := s.switchPin(name)
	if err != nil {
		return err
	}
	p.Press()
	return nil
}

func (s *Sim) Release(name string) error {
	p, err := s.switchPin(name)
	if err != nil {
		return err
	}
	p.Release()
	return nil
}

// LEDs reports LED2..LED6.
func (s *Sim) LEDs() [5]bool {
	var out [5]bool
	for i, n := range s.plan.LEDs {
		out[i] = s.reg.Pin(n).Get()
	}
	return out
}

func (s *Sim) BeeperToggles() int { return s.reg.Pin(s.plan.Beeper).Toggles() }

// Resets counts bootloader requests.
func (s *Sim) Resets() int { return s.reg.FakeReset().Count() }

// Elapsed is the virtual time slept; zero on the wall clock.
func (s *Sim) Elapsed() time.Duration {
	if s.clock == nil {
		return 0
	}
	return s.clock.Elapsed()
}

// OnSleep installs a hook run before each virtual wait. It is safe to call
// while the board runs.
func (s *Sim) OnSleep(fn func(time.Duration)) {
	if s.clock != nil {
		s.clock.SetOnSleep(fn)
	}
}
