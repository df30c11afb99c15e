// cmd/boardsim/main.go
//go:build !rp2040

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"ubmp4-tones/bus"
	"ubmp4-tones/errcode"
	"ubmp4-tones/services/board"
	"ubmp4-tones/services/board/config"
	configsvc "ubmp4-tones/services/config"
	"ubmp4-tones/services/monitor"
	"ubmp4-tones/types"
)

// ---------- Configuration ----------

const (
	stepTimeout = 2 * time.Second

	// Brightness steps taken while SW4/SW5 are held in dimmer mode.
	dimmerSteps = 20
)

var toneSwitches = []string{"SW2", "SW3", "SW4", "SW5"}

var (
	scriptFlag = flag.String("script", "", "commands to run instead of the built-in tour (see script.go)")
	fileFlag   = flag.String("f", "", "read the script from a file")
)

// ---------- Helpers ----------

func await(sub *bus.Subscription, d time.Duration, ok func(*bus.Message) bool) bool {
	dead := time.After(d)
	for {
		select {
		case m := <-sub.Channel():
			if ok(m) {
				return true
			}
		case <-dead:
			return false
		}
	}
}

// awaitButton waits for the board to report sw as newly held. The event is
// published before the iteration acts on it, so give the loop a moment.
func awaitButton(sub *bus.Subscription, sw string) bool {
	ok := await(sub, stepTimeout, func(m *bus.Message) bool {
		ev, ok := m.Payload.(types.ButtonEvent)
		return ok && ev.Name == sw
	})
	time.Sleep(20 * time.Millisecond)
	return ok
}

func setMode(ui *bus.Connection, states *bus.Subscription, mode string) bool {
	ui.Publish(ui.NewMessage(board.TopicConfig, map[string]any{"mode": mode}, true))
	return await(states, stepTimeout, func(m *bus.Message) bool {
		st, ok := m.Payload.(types.BoardState)
		return ok && st.Mode == mode
	})
}

func check(ok bool, what string) {
	if !ok {
		println("[boardsim] FAIL:", what)
		os.Exit(1)
	}
	println("[boardsim] ok:", what)
}

// ---------- Main ----------

func main() {
	flag.Parse()

	src := *scriptFlag
	if *fileFlag != "" {
		raw, err := os.ReadFile(*fileFlag)
		if err != nil {
			println("[boardsim] read script:", err.Error())
			os.Exit(1)
		}
		src = string(raw)
	}
	var cmds []command
	if src != "" {
		var err error
		if cmds, err = parseScript(src); err != nil {
			println("[boardsim] script:", err.Error())
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim, err := board.NewSim(true)
	if err != nil {
		println("[boardsim] open failed:", err.Error())
		os.Exit(1)
	}
	defer sim.Close()

	b := bus.NewBus(32)
	boardConn := b.NewConnection("board")
	ui := b.NewConnection("ui")

	mon := &monitor.Service{Out: os.Stdout, Interval: 5 * time.Second}
	_ = mon.Start(ctx, b.NewConnection("monitor"))

	cfgCtx := context.WithValue(ctx, configsvc.CtxDeviceKey, sim.Plan().Name)
	configsvc.NewConfigService().Start(cfgCtx, b.NewConnection("config"))

	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx, boardConn, config.Default()) }()

	if cmds != nil {
		if err := runScript(sim, ui, cmds); err != nil {
			println("[boardsim] FAIL:", err.Error())
			os.Exit(1)
		}
		printStatus(sim)
		return
	}

	tour(sim, ui)

	// SW1 hands over to the bootloader.
	_ = sim.Press("SW1")
	select {
	case err := <-done:
		check(errcode.Of(err) == errcode.Reset, "SW1 requests the bootloader")
	case <-time.After(stepTimeout):
		check(false, "SW1 requests the bootloader")
	}

	println("[boardsim] beeper toggles:", sim.BeeperToggles(), "resets:", sim.Resets(), "virtual time:", sim.Elapsed().String())
}
