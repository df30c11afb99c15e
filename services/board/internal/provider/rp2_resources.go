//go:build rp2040

package provider

import (
	"device/rp"
	"io"
	"machine"
	"sync"
	"time"

	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/internal/provider/setups"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/buzzer"
)

// -----------------------------------------------------------------------------
// GPIO handle
// -----------------------------------------------------------------------------

type rp2GPIO struct {
	p machine.Pin
	n int
}

func (r *rp2GPIO) Number() int { return r.n }

func (r *rp2GPIO) ConfigureInput(pull core.Pull) error {
	var mode machine.PinMode
	switch pull {
	case core.PullUp:
		mode = machine.PinInputPullup
	case core.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2GPIO) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2GPIO) Set(b bool) { r.p.Set(b) }
func (r *rp2GPIO) Get() bool  { return r.p.Get() }
func (r *rp2GPIO) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

// -----------------------------------------------------------------------------
// Beeper (piezo via tinygo drivers/buzzer)
// -----------------------------------------------------------------------------

type rp2Beeper struct {
	dev   buzzer.Device
	n     int
	level bool
}

func (b *rp2Beeper) Number() int { return b.n }

func (b *rp2Beeper) ConfigureInput(core.Pull) error { return errcode.Unsupported }

// buzzer.New only stores the pin; the pad must be an output first.
func (b *rp2Beeper) ConfigureOutput(initial bool) error {
	pin := machine.Pin(b.n)
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.dev = buzzer.New(pin)
	b.Set(initial)
	return nil
}

func (b *rp2Beeper) Set(on bool) {
	if on {
		_ = b.dev.On()
	} else {
		_ = b.dev.Off()
	}
	b.level = on
}

func (b *rp2Beeper) Get() bool { return b.level }
func (b *rp2Beeper) Toggle()   { b.Set(!b.level) }

// -----------------------------------------------------------------------------
// LED port (single SIO write)
// -----------------------------------------------------------------------------

type rp2Port struct {
	pins []int
	mask uint32
}

func (p *rp2Port) Pins() []int { return p.pins }
func (p *rp2Port) Clear()      { rp.SIO.GPIO_OUT_CLR.Set(p.mask) }

// -----------------------------------------------------------------------------
// Clock
// -----------------------------------------------------------------------------

// Waits shorter than spinBelow busy-wait on the timer; longer ones sleep.
const spinBelow = 500 * time.Microsecond

type rp2Clock struct{}

func (rp2Clock) Now() time.Time { return time.Now() }

func (rp2Clock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if d >= spinBelow {
		time.Sleep(d)
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}

type rp2Reset struct{}

func (rp2Reset) ResetToBootloader() { machine.EnterBootloader() }

// -----------------------------------------------------------------------------
// PinHandle implementation
// -----------------------------------------------------------------------------

type rp2PinHandle struct {
	n    int
	fn   core.PinFunc
	gpio core.GPIOHandle
}

func (h *rp2PinHandle) Pin() int                { return h.n }
func (h *rp2PinHandle) AsGPIO() core.GPIOHandle { return h.gpio }

// -----------------------------------------------------------------------------
// Resource registry
// -----------------------------------------------------------------------------

type pinOwner struct {
	devID string
	fn    core.PinFunc
}

type Registry struct {
	mu        sync.Mutex
	plan      setups.ResourcePlan
	pinOwners map[int]pinOwner
	gpioMap   map[int]*rp2GPIO
	log       io.Writer
}

func NewResourceRegistry(plan setups.ResourcePlan) *Registry {
	r := &Registry{
		plan:      plan,
		pinOwners: make(map[int]pinOwner),
		gpioMap:   make(map[int]*rp2GPIO),
	}

	var hw *uartx.UART
	switch plan.Log.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	}
	if hw != nil {
		_ = hw.Configure(uartx.UARTConfig{
			BaudRate: plan.Log.Baud,
			TX:       machine.Pin(plan.Log.TX),
			RX:       machine.Pin(plan.Log.RX),
		})
		r.log = hw
	}
	return r
}

func (r *Registry) Plan() setups.ResourcePlan { return r.plan }
func (r *Registry) Clock() core.Clock         { return rp2Clock{} }
func (r *Registry) Resetter() core.Resetter   { return rp2Reset{} }

// LogWriter is the monitor's output sink; nil means the default console.
func (r *Registry) LogWriter() io.Writer { return r.log }

func (r *Registry) inBoardRange(n int) bool {
	return n >= r.plan.GPIOMin && n <= r.plan.GPIOMax
}

// caller holds lock
func (r *Registry) lookupGPIO(n int) *rp2GPIO {
	if g, ok := r.gpioMap[n]; ok {
		return g
	}
	h := &rp2GPIO{p: machine.Pin(n), n: n}
	r.gpioMap[n] = h
	return h
}

func (r *Registry) ClaimPin(devID string, n int, fn core.PinFunc) (core.PinHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inBoardRange(n) {
		return nil, errcode.UnknownPin
	}
	if owner, inUse := r.pinOwners[n]; inUse && owner.devID != "" {
		return nil, errcode.PinInUse
	}

	ph := &rp2PinHandle{n: n, fn: fn}
	switch fn {
	case core.FuncGPIOIn, core.FuncGPIOOut:
		ph.gpio = r.lookupGPIO(n)
	case core.FuncBeeper:
		ph.gpio = &rp2Beeper{n: n}
	default:
		return nil, errcode.Unsupported
	}

	r.pinOwners[n] = pinOwner{devID: devID, fn: fn}
	return ph, nil
}

func (r *Registry) ReleasePin(devID string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, ok := r.pinOwners[n]; ok && owner.devID == devID {
		// Put the pin back to input.
		machine.Pin(n).Configure(machine.PinConfig{Mode: machine.PinInput})
		delete(r.pinOwners, n)
	}
}

func (r *Registry) ClaimPort(devID string, pins []int) (core.PortHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	port := &rp2Port{pins: append([]int(nil), pins...)}
	for _, n := range pins {
		owner, ok := r.pinOwners[n]
		if !ok || owner.devID != devID || owner.fn != core.FuncGPIOOut {
			return nil, errcode.Conflict
		}
		port.mask |= 1 << uint(n)
	}
	return port, nil
}
