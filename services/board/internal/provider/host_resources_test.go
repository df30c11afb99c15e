//go:build !rp2040

package provider

import (
	"sync/atomic"
	"testing"
	"time"

	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/internal/core"
)

func TestClaimPin_ExclusiveAndRange(t *testing.T) {
	r := NewResources()

	if _, err := r.ClaimPin("sw", SelectedPlan.SW2, core.FuncGPIOIn); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := r.ClaimPin("other", SelectedPlan.SW2, core.FuncGPIOIn); err != errcode.PinInUse {
		t.Fatalf("expected pin_in_use, got %v", err)
	}
	if _, err := r.ClaimPin("sw", 99, core.FuncGPIOIn); err != errcode.UnknownPin {
		t.Fatalf("expected unknown_pin, got %v", err)
	}

	r.ReleasePin("other", SelectedPlan.SW2) // not the owner: ignored
	if _, err := r.ClaimPin("other", SelectedPlan.SW2, core.FuncGPIOIn); err != errcode.PinInUse {
		t.Fatalf("release by non-owner should not free the pin, got %v", err)
	}
	r.ReleasePin("sw", SelectedPlan.SW2)
	if _, err := r.ClaimPin("other", SelectedPlan.SW2, core.FuncGPIOIn); err != nil {
		t.Fatalf("claim after release failed: %v", err)
	}
}

func TestFakePin_ActiveLowSwitch(t *testing.T) {
	p := NewFakePin(16)
	_ = p.ConfigureInput(core.PullUp)
	if !p.Get() {
		t.Fatal("pulled-up input should idle high")
	}
	p.Press()
	if p.Get() {
		t.Fatal("pressed switch should read low")
	}
	_ = p.ConfigureInput(core.PullUp)
	if p.Get() {
		t.Fatal("reconfiguring must not release a held switch")
	}
	p.Release()
	if !p.Get() {
		t.Fatal("released switch should read high")
	}
}

func TestClaimPort_RequiresOwnedOutputs(t *testing.T) {
	r := NewResources()
	leds := SelectedPlan.LEDs[:]
	for _, n := range leds {
		ph, err := r.ClaimPin("leds", n, core.FuncGPIOOut)
		if err != nil {
			t.Fatalf("claim %d: %v", n, err)
		}
		_ = ph.AsGPIO().ConfigureOutput(true)
	}
	if _, err := r.ClaimPort("someone", leds); err != errcode.Conflict {
		t.Fatalf("expected conflict for foreign owner, got %v", err)
	}
	port, err := r.ClaimPort("leds", leds)
	if err != nil {
		t.Fatalf("claim port: %v", err)
	}
	port.Clear()
	for _, n := range leds {
		if r.Pin(n).Get() {
			t.Fatalf("pin %d still high after port clear", n)
		}
	}
	if got := port.(*FakePort).Clears(); got != 1 {
		t.Fatalf("expected a single port write, got %d", got)
	}
}

func TestFakeClock(t *testing.T) {
	c := NewFakeClock()
	var seen []time.Duration
	c.OnSleep = func(d time.Duration) { seen = append(seen, d) }

	c.Sleep(0)
	c.Sleep(-time.Second)
	c.Sleep(20 * time.Microsecond)
	c.Sleep(time.Millisecond)

	if len(c.Sleeps()) != 2 || len(seen) != 2 {
		t.Fatalf("zero/negative sleeps must be ignored: %v", c.Sleeps())
	}
	if c.Elapsed() != 1020*time.Microsecond {
		t.Fatalf("elapsed got %v", c.Elapsed())
	}
}

func TestVirtualClock_KeepsOnlyTotal(t *testing.T) {
	c := NewVirtualClock()
	for i := 0; i < 10000; i++ {
		c.Sleep(20 * time.Microsecond)
	}
	if n := len(c.Sleeps()); n != 0 {
		t.Fatalf("virtual clock kept %d waits", n)
	}
	if c.Elapsed() != 200*time.Millisecond {
		t.Fatalf("elapsed got %v", c.Elapsed())
	}
}

func TestFakeClock_HookSwappedWhileSleeping(t *testing.T) {
	c := NewVirtualClock()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c.Sleep(time.Microsecond)
		}
	}()
	var hooked atomic.Int32
	c.SetOnSleep(func(time.Duration) { hooked.Add(1) })
	<-done
	c.SetOnSleep(nil)
	c.Sleep(time.Microsecond)
	if c.Elapsed() != 1001*time.Microsecond {
		t.Fatalf("elapsed got %v", c.Elapsed())
	}
	if hooked.Load() > 1000 {
		t.Fatalf("hook ran %d times after removal", hooked.Load())
	}
}
