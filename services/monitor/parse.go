package monitor

import (
	"strconv"
	"strings"

	"ubmp4-tones/types"
)

// ParseLine reverses Format for one line read back from the log sink.
// It reports false for heartbeats and anything that is not a board event.
func ParseLine(line string) (any, bool) {
	f := strings.Fields(line)
	if len(f) < 3 || f[0] != "[board]" {
		return nil, false
	}
	switch f[1] {
	case "state":
		if len(f) == 5 && f[3] == "mode" {
			return types.BoardState{Level: f[2], Mode: f[4]}, true
		}
	case "button":
		if len(f) == 4 {
			if v, ok := parseUint(f[3], 16); ok {
				return types.ButtonEvent{Name: f[2], Value: uint16(v)}, true
			}
		}
	case "tone":
		if len(f) == 4 && strings.HasSuffix(f[2], "us") && strings.HasPrefix(f[3], "x") {
			p, ok1 := parseUint(strings.TrimSuffix(f[2], "us"), 16)
			c, ok2 := parseUint(f[3][1:], 8)
			if ok1 && ok2 {
				return types.ToneEvent{HalfPeriodUs: uint16(p), Cycles: uint8(c)}, true
			}
		}
	case "led":
		if len(f) == 4 && f[2] == "all" && f[3] == "off" {
			return types.LEDValue{}, true
		}
		if len(f) == 4 && (f[3] == "on" || f[3] == "off") {
			if id, ok := parseUint(f[2], 8); ok {
				return types.LEDValue{ID: uint8(id), On: f[3] == "on"}, true
			}
		}
	case "brightness":
		if v, ok := parseUint(f[2], 8); ok && len(f) == 3 {
			return types.BrightnessValue{Level: uint8(v)}, true
		}
	}
	return nil, false
}

func parseUint(s string, bits int) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, bits)
	return v, err == nil
}
