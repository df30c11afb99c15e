// services/board/internal/provider/host_resources.go
//go:build !rp2040

package provider

import (
	"io"
	"os"
	"sync"
	"time"

	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/internal/provider/setups"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements core.GPIOHandle for host-side tests and simulation.
// An input configured with a pull-up idles high until Press drives it low.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	driven  bool // externally driven input (a held switch)
	toggles int
	writes  int
}

func NewFakePin(n int) *FakePin { return &FakePin{number: n} }

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) ConfigureInput(pull core.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	if !p.driven {
		p.level = pull == core.PullUp
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.toggles++
	p.writes++
	p.mu.Unlock()
}

// Press holds an active-low switch (drives the pin low).
func (p *FakePin) Press() {
	p.mu.Lock()
	p.driven = true
	p.level = false
	p.mu.Unlock()
}

// Release lets the pull-up return the pin high.
func (p *FakePin) Release() {
	p.mu.Lock()
	p.driven = false
	p.level = true
	p.mu.Unlock()
}

// Toggles reports how many times Toggle was called.
func (p *FakePin) Toggles() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.toggles
}

// Writes reports Set and Toggle calls.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// ----------------------------- Port (host) -----------------------------------

// FakePort clears all member pins under one lock, standing in for a single
// port register write.
type FakePort struct {
	mu     sync.Mutex
	pins   []*FakePin
	clears int
}

func (p *FakePort) Pins() []int {
	out := make([]int, len(p.pins))
	for i, fp := range p.pins {
		out[i] = fp.number
	}
	return out
}

func (p *FakePort) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, fp := range p.pins {
		fp.mu.Lock()
		fp.level = false
		fp.mu.Unlock()
	}
	p.clears++
}

func (p *FakePort) Clears() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clears
}

// ----------------------------- Clock (host) ----------------------------------

// SystemClock sleeps on the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// FakeClock advances virtual time on Sleep and records every wait.
// OnSleep, when set, runs before time advances (tests use it to sample pins).
// Assign it before the clock is shared, or use SetOnSleep.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	record  bool
	sleeps  []time.Duration
	OnSleep func(d time.Duration)
}

func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0), record: true}
}

// NewVirtualClock is a FakeClock that keeps only the elapsed total, for long
// simulator runs.
func NewVirtualClock() *FakeClock {
	return &FakeClock{now: time.Unix(0, 0)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) SetOnSleep(fn func(d time.Duration)) {
	c.mu.Lock()
	c.OnSleep = fn
	c.mu.Unlock()
}

func (c *FakeClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	hook := c.OnSleep
	c.mu.Unlock()
	if hook != nil {
		hook(d)
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	if c.record {
		c.sleeps = append(c.sleeps, d)
	}
	c.mu.Unlock()
}

// Sleeps returns a copy of the recorded waits.
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Elapsed is the total virtual time slept.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(time.Unix(0, 0))
}

// ----------------------------- Reset (host) ----------------------------------

// FakeResetter records bootloader requests instead of restarting.
type FakeResetter struct {
	mu    sync.Mutex
	count int
}

func (r *FakeResetter) ResetToBootloader() {
	r.mu.Lock()
	r.count++
	r.mu.Unlock()
}

func (r *FakeResetter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// ----------------------------- Registry (host) -------------------------------

type pinOwner struct {
	devID string
	fn    core.PinFunc
}

type hostPinHandle struct {
	n  int
	fn core.PinFunc
	p  *FakePin
}

func (h *hostPinHandle) Pin() int                { return h.n }
func (h *hostPinHandle) AsGPIO() core.GPIOHandle { return h.p }

// Registry is the host resource registry. Pins are stable *FakePin instances.
type Registry struct {
	mu        sync.Mutex
	plan      setups.ResourcePlan
	pins      map[int]*FakePin
	pinOwners map[int]pinOwner
	clock     core.Clock
	reset     *FakeResetter
	log       io.Writer
}

func NewResourceRegistry(plan setups.ResourcePlan) *Registry {
	return &Registry{
		plan:      plan,
		pins:      make(map[int]*FakePin),
		pinOwners: make(map[int]pinOwner),
		clock:     SystemClock{},
		reset:     &FakeResetter{},
		log:       os.Stdout,
	}
}

func (r *Registry) Plan() setups.ResourcePlan { return r.plan }

// UseClock swaps the time source (tests install a *FakeClock).
func (r *Registry) UseClock(c core.Clock) {
	r.mu.Lock()
	r.clock = c
	r.mu.Unlock()
}

func (r *Registry) Clock() core.Clock {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clock
}

func (r *Registry) Resetter() core.Resetter { return r.reset }

// FakeReset exposes the recording resetter.
func (r *Registry) FakeReset() *FakeResetter { return r.reset }

// LogWriter is the monitor's output sink.
func (r *Registry) LogWriter() io.Writer { return r.log }

// Pin returns the fake for GPIO n, creating it on first use.
func (r *Registry) Pin(n int) *FakePin {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(n)
}

// caller holds lock
func (r *Registry) lookup(n int) *FakePin {
	p, ok := r.pins[n]
	if !ok {
		p = NewFakePin(n)
		r.pins[n] = p
	}
	return p
}

func (r *Registry) ClaimPin(devID string, n int, fn core.PinFunc) (core.PinHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < r.plan.GPIOMin || n > r.plan.GPIOMax {
		return nil, errcode.UnknownPin
	}
	if owner, inUse := r.pinOwners[n]; inUse && owner.devID != "" {
		return nil, errcode.PinInUse
	}
	switch fn {
	case core.FuncGPIOIn, core.FuncGPIOOut, core.FuncBeeper:
	default:
		return nil, errcode.Unsupported
	}
	r.pinOwners[n] = pinOwner{devID: devID, fn: fn}
	return &hostPinHandle{n: n, fn: fn, p: r.lookup(n)}, nil
}

func (r *Registry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.pinOwners[n]; ok && owner.devID == devID {
		_ = r.lookup(n).ConfigureInput(core.PullNone)
		delete(r.pinOwners, n)
	}
}

func (r *Registry) ClaimPort(devID string, pins []int) (core.PortHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	port := &FakePort{}
	for _, n := range pins {
		owner, ok := r.pinOwners[n]
		if !ok || owner.devID != devID || owner.fn != core.FuncGPIOOut {
			return nil, errcode.Conflict
		}
		port.pins = append(port.pins, r.lookup(n))
	}
	return port, nil
}
