//go:build !rp2040

package main

import (
	"bytes"
	"strings"
	"testing"

	"ubmp4-tones/services/monitor"
	"ubmp4-tones/types"

	"github.com/rs/zerolog"
)

func TestTally_FromLogLines(t *testing.T) {
	lines := []string{
		"[board] state sampling mode tones",
		"[board] button SW2 2273",
		"[board] tone 2273us x5",
		"[board] tone 2273us x5",
		"Info: 10:00:00 Heartbeat events=4",
		"[board] led all off",
		"[board] led 3 on",
		"[board] brightness 126",
		"[board] state reset_pending mode tones",
	}
	var tl tally
	for _, l := range lines {
		if ev, ok := monitor.ParseLine(l); ok {
			tl.add(ev)
		}
	}
	if tl.buttons != 1 || tl.tones != 2 || tl.leds != 1 || tl.resets != 1 {
		t.Fatalf("tally %+v", tl)
	}
	if !tl.seenBrightness || tl.lastBrightness != 126 {
		t.Fatalf("brightness %+v", tl)
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	tl.log(&logger)
	out := buf.String()
	for _, want := range []string{`"tones":2`, `"resets":1`, `"brightness":126`, `"message":"session"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary %s missing %s", out, want)
		}
	}
}

func TestLogEvent_ResetIsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logEvent(&logger, types.BoardState{Level: types.LevelResetPending, Mode: "dimmer"})
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected a warning, got %s", buf.String())
	}
}
