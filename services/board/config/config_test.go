package config

import (
	"testing"

	"ubmp4-tones/errcode"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Mode != ModeTones || c.Cycles != 5 || c.PulseStepUs != 20 || c.InitialBrightness != 125 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Mode = "disco"
	if errcode.Of(c.Validate()) != errcode.InvalidMode {
		t.Fatalf("expected invalid_mode, got %v", c.Validate())
	}
	c = Default()
	c.Cycles = 0
	if errcode.Of(c.Validate()) != errcode.InvalidParams {
		t.Fatalf("expected invalid_params for zero cycles")
	}
}

func TestApply(t *testing.T) {
	got, err := Apply(Default(), map[string]any{
		"mode":              "dimmer",
		"cycles":            float64(8),
		"continuous_dimmer": true,
		"heartbeat_ms":      float64(2000),
		"legacy_delay":      true,
		"unknown":           "ignored",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Mode != ModeDimmer || got.Cycles != 8 || !got.ContinuousDimmer || got.HeartbeatMs != 2000 || !got.LegacyDelay {
		t.Fatalf("overrides not applied: %+v", got)
	}
}

func TestApply_RejectsBadValues(t *testing.T) {
	base := Default()
	bad := []map[string]any{
		{"cycles": float64(256)},
		{"cycles": float64(-1)},
		{"cycles": 2.5},
		{"cycles": "5"},
		{"mode": 3},
		{"mode": "disco"},
		{"continuous_dimmer": "yes"},
		{"legacy_delay": float64(1)},
		{"brightness_step": float64(0)},
	}
	for _, m := range bad {
		got, err := Apply(base, m)
		if err == nil {
			t.Fatalf("expected error for %v", m)
		}
		if got != base {
			t.Fatalf("failed update must return base, got %+v", got)
		}
	}
}
