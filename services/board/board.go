// services/board/board.go
package board

import (
	"context"
	"io"

	"ubmp4-tones/bus"
	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board/config"
	"ubmp4-tones/services/board/input"
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/internal/provider"
	"ubmp4-tones/services/board/internal/provider/setups"
	"ubmp4-tones/services/board/led"
	"ubmp4-tones/services/board/loop"
	"ubmp4-tones/services/board/tone"
)

// TopicConfig carries config overrides: a map[string]any decoded from JSON,
// or a complete config.Config.
var TopicConfig = bus.T("config", "board")

const (
	devSwitches = "switches"
	devLEDs     = "leds"
	devBeeper   = "beeper"
)

type claim struct {
	devID string
	pin   int
}

// Board owns the claimed pins and the hardware the loop drives.
type Board struct {
	reg     *provider.Registry
	plan    setups.ResourcePlan
	claimed []claim
	hw      loop.Hardware
}

// Open claims the selected plan's pins.
func Open() (*Board, error) {
	return open(provider.NewResources())
}

func open(reg *provider.Registry) (*Board, error) {
	b := &Board{reg: reg, plan: reg.Plan()}
	if err := b.claimAll(); err != nil {
		b.Close()
		return nil, err
	}
	println("[board] opened", b.plan.Name)
	return b, nil
}

func (b *Board) claim(devID string, n int, fn core.PinFunc) (core.GPIOHandle, error) {
	ph, err := b.reg.ClaimPin(devID, n, fn)
	if err != nil {
		return nil, &errcode.E{C: errcode.Of(err), Op: "claim", Msg: devID, Err: err}
	}
	b.claimed = append(b.claimed, claim{devID: devID, pin: n})
	return ph.AsGPIO(), nil
}

func (b *Board) claimAll() error {
	p := b.plan

	var sw [5]core.GPIOHandle
	for i, n := range [5]int{p.SW1, p.SW2, p.SW3, p.SW4, p.SW5} {
		g, err := b.claim(devSwitches, n, core.FuncGPIOIn)
		if err != nil {
			return err
		}
		if err := g.ConfigureInput(core.PullUp); err != nil {
			return err
		}
		sw[i] = g
	}

	var leds [5]core.GPIOHandle
	for i, n := range p.LEDs {
		g, err := b.claim(devLEDs, n, core.FuncGPIOOut)
		if err != nil {
			return err
		}
		if err := g.ConfigureOutput(false); err != nil {
			return err
		}
		leds[i] = g
	}
	port, err := b.reg.ClaimPort(devLEDs, p.LEDs[:])
	if err != nil {
		return err
	}

	bp, err := b.claim(devBeeper, p.Beeper, core.FuncBeeper)
	if err != nil {
		return err
	}
	if err := bp.ConfigureOutput(false); err != nil {
		return err
	}

	clk := b.reg.Clock()
	b.hw = loop.Hardware{
		Switches: input.Switches{SW2: sw[1], SW3: sw[2], SW4: sw[3], SW5: sw[4]},
		SW1:      sw[0],
		LEDs:     led.NewBank(leds, port),
		Beeper:   tone.New(bp, clk),
		Clock:    clk,
		Resetter: b.reg.Resetter(),
	}
	return nil
}

// Close releases every claimed pin.
func (b *Board) Close() {
	for i := len(b.claimed) - 1; i >= 0; i-- {
		c := b.claimed[i]
		b.reg.ReleasePin(c.devID, c.pin)
	}
	b.claimed = nil
}

func (b *Board) Plan() setups.ResourcePlan { return b.plan }

// LogWriter is where the monitor should write (nil => console).
func (b *Board) LogWriter() io.Writer { return b.reg.LogWriter() }

// Run drives the loop until reset or ctx is done. Overrides published on
// TopicConfig are merged into the running config between iterations.
func (b *Board) Run(ctx context.Context, conn *bus.Connection, cfg config.Config) error {
	m, err := loop.New(cfg, b.hw, conn)
	if err != nil {
		return err
	}

	var updates chan config.Config
	if conn != nil {
		updates = make(chan config.Config, 1)
		sub := conn.Subscribe(TopicConfig)
		defer conn.Unsubscribe(sub)
		go forwardConfig(ctx, sub, cfg, updates)
	}

	_, err = m.Run(ctx, m.Initial(), updates)
	return err
}

// forwardConfig turns config messages into validated configs, each merged
// onto the last accepted one.
func forwardConfig(ctx context.Context, sub *bus.Subscription, cur config.Config, out chan<- config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			next, err := decodeConfig(cur, msg.Payload)
			if err != nil {
				println("[board] config rejected:", err.Error())
				continue
			}
			cur = next
			select {
			case out <- next:
			case <-ctx.Done():
				return
			}
		}
	}
}

func decodeConfig(cur config.Config, payload any) (config.Config, error) {
	switch v := payload.(type) {
	case map[string]any:
		return config.Apply(cur, v)
	case config.Config:
		if err := v.Validate(); err != nil {
			return cur, err
		}
		return v, nil
	default:
		return cur, errcode.Wrap(errcode.InvalidPayload, "config", "unsupported payload")
	}
}

// Run opens the board, drives it, and releases it on return.
func Run(ctx context.Context, conn *bus.Connection, cfg config.Config) error {
	b, err := Open()
	if err != nil {
		return err
	}
	defer b.Close()
	return b.Run(ctx, conn, cfg)
}
