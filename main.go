//go:build rp2040

package main

import (
	"context"
	"time"

	"ubmp4-tones/bus"
	"ubmp4-tones/services/board"
	"ubmp4-tones/services/board/config"
	configsvc "ubmp4-tones/services/config"
	"ubmp4-tones/services/monitor"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	ctx := context.Background()
	b := bus.NewBus(8)
	boardConn := b.NewConnection("board")
	monConn := b.NewConnection("monitor")

	brd, err := board.Open()
	if err != nil {
		println("[main] board open failed:", err.Error())
		halt()
	}

	cfg := config.Default()
	mon := &monitor.Service{
		Out:      brd.LogWriter(),
		Interval: time.Duration(cfg.HeartbeatMs) * time.Millisecond,
	}
	_ = mon.Start(ctx, monConn)

	// Retained config/<key> overrides for this board.
	cfgCtx := context.WithValue(ctx, configsvc.CtxDeviceKey, brd.Plan().Name)
	configsvc.NewConfigService().Start(cfgCtx, b.NewConnection("config"))

	println("[main] running in", cfg.Mode, "mode")
	err = brd.Run(ctx, boardConn, cfg)

	// The bootloader call does not return, so any error here is a fault.
	println("[main] board stopped:", err.Error())
	halt()
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
