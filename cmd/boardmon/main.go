// cmd/boardmon/main.go
//go:build !rp2040

// boardmon tails the board's log UART from a host and logs each board event
// as a structured record.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"ubmp4-tones/services/monitor"
	"ubmp4-tones/types"

	"github.com/gofrs/flock"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

var (
	portFlag = flag.String("port", "/dev/ttyACM0", "serial port the board logs to")
	baudFlag = flag.Int("baud", 115200, "baud rate")
)

const reopenDelay = 500 * time.Millisecond

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStdout(),
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
		TimeFormat: "15:04:05",
	}).With().Timestamp().Str("port", *portFlag).Logger()

	lock := flock.New(filepath.Join(os.TempDir(), "boardmon-"+filepath.Base(*portFlag)+".lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		logger.Fatal().Err(err).Msg("port is already being monitored")
	}
	defer func() { _ = lock.Unlock() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var t tally
	for ctx.Err() == nil {
		port, err := serial.Open(*portFlag, &serial.Mode{BaudRate: *baudFlag})
		if err != nil {
			logger.Debug().Err(err).Msg("open failed")
			select {
			case <-ctx.Done():
			case <-time.After(reopenDelay):
			}
			continue
		}
		logger.Info().Msg("opened")
		readPort(ctx, port, &logger, &t)
		_ = port.Close()
		logger.Info().Msg("closed")
	}
	t.log(&logger)
}

// readPort logs lines until the port fails or ctx is done.
func readPort(ctx context.Context, port serial.Port, logger *zerolog.Logger, t *tally) {
	// Closing the port unblocks the scanner.
	stop := context.AfterFunc(ctx, func() { _ = port.Close() })
	defer stop()

	sc := bufio.NewScanner(port)
	for sc.Scan() {
		line := sc.Text()
		ev, ok := monitor.ParseLine(line)
		if !ok {
			logger.Debug().Str("raw", line).Send()
			continue
		}
		t.add(ev)
		logEvent(logger, ev)
	}
	if err := sc.Err(); err != nil && ctx.Err() == nil {
		logger.Warn().Err(err).Msg("read failed")
	}
}

func logEvent(logger *zerolog.Logger, ev any) {
	switch v := ev.(type) {
	case types.BoardState:
		lvl := logger.Info()
		if v.Level == types.LevelResetPending {
			lvl = logger.Warn()
		}
		lvl.Str("state", v.Level).Str("mode", v.Mode).Msg("state")
	case types.ButtonEvent:
		logger.Info().Str("switch", v.Name).Uint16("value", v.Value).Msg("button")
	case types.ToneEvent:
		logger.Info().Uint16("half_period_us", v.HalfPeriodUs).Uint8("cycles", v.Cycles).Msg("tone")
	case types.LEDValue:
		logger.Info().Uint8("id", v.ID).Bool("on", v.On).Msg("led")
	case types.BrightnessValue:
		logger.Info().Uint8("level", v.Level).Msg("brightness")
	}
}
