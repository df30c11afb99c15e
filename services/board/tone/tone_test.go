//go:build !rp2040

package tone

import (
	"testing"
	"time"

	"ubmp4-tones/services/board/internal/provider"
)

func newGen() (*Generator, *provider.FakePin, *provider.FakeClock) {
	pin := provider.NewFakePin(9)
	_ = pin.ConfigureOutput(false)
	clk := provider.NewFakeClock()
	return New(pin, clk), pin, clk
}

func TestPlayNote_TogglesTenTimes(t *testing.T) {
	for _, h := range []HalfPeriod{0, 1, D5, A4, D4, 65535} {
		g, pin, _ := newGen()
		g.PlayNote(h)
		if got := pin.Toggles(); got != 10 {
			t.Fatalf("PlayNote(%d): %d toggles, want 10", h, got)
		}
		if pin.Get() {
			t.Fatalf("PlayNote(%d): an even toggle count must leave the beeper low", h)
		}
	}
}

func TestPlay_WaitsHalfPeriodAfterEachToggle(t *testing.T) {
	g, pin, clk := newGen()
	var levels []bool
	clk.OnSleep = func(time.Duration) { levels = append(levels, pin.Get()) }

	g.Play(A4, 3)

	sleeps := clk.Sleeps()
	if len(sleeps) != 6 {
		t.Fatalf("expected 6 waits, got %d", len(sleeps))
	}
	for i, d := range sleeps {
		if d != 2273*time.Microsecond {
			t.Fatalf("wait %d = %v", i, d)
		}
		if levels[i] != (i%2 == 0) {
			t.Fatalf("beeper level during wait %d = %v", i, levels[i])
		}
	}
	if clk.Elapsed() != Length(A4, 3) {
		t.Fatalf("elapsed %v != Length %v", clk.Elapsed(), Length(A4, 3))
	}
}

func TestPlay_ZeroCyclesIsNoop(t *testing.T) {
	g, pin, clk := newGen()
	g.Play(A4, 0)
	if pin.Toggles() != 0 || len(clk.Sleeps()) != 0 {
		t.Fatal("zero cycles must not touch the beeper")
	}
}

func TestHalfCycleMonotonicInPeriod(t *testing.T) {
	periods := []HalfPeriod{D5, A4, Ab4, D4}
	var prev time.Duration
	for _, h := range periods {
		g, _, clk := newGen()
		g.PlayNote(h)
		half := clk.Sleeps()[0]
		if half <= prev {
			t.Fatalf("half-cycle for %d (%v) not longer than previous (%v)", h, half, prev)
		}
		prev = half
	}
}

func TestHalfPeriodFromHz(t *testing.T) {
	cases := []struct {
		hz   uint32
		want HalfPeriod
	}{
		{440, 1136},
		{1000, 500},
		{0, 0},
		{1, 65535},
	}
	for _, tc := range cases {
		if got := HalfPeriodFromHz(tc.hz); got != tc.want {
			t.Fatalf("HalfPeriodFromHz(%d)=%d want %d", tc.hz, got, tc.want)
		}
	}
}
