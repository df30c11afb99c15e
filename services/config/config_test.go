// config/config_test.go
package config

import (
	"context"
	"testing"
	"time"

	"ubmp4-tones/bus"
	boardcfg "ubmp4-tones/services/board/config"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "pico" {
			return nil, false
		}
		return []byte(`
mode: dev
debug: true
region:
  code: eu
  zone: 3
`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "pico")
	svc.Start(ctx, conn)

	// Subscribe; retained messages should arrive immediately.
	sub := conn.Subscribe(bus.T(configPrefix, "#"))

	wantCount := 3 // mode, debug, region
	got := map[string]any{}

	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < wantCount && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			if m.Topic.Len() != 2 || m.Topic.At(0) != configPrefix {
				t.Fatalf("unexpected topic: %s", m.Topic)
			}
			got[m.Topic.At(1)] = m.Payload
		case <-time.After(10 * time.Millisecond):
		}
	}
	if len(got) != wantCount {
		t.Fatalf("expected %d retained messages, got %d (%v)", wantCount, len(got), got)
	}

	if s, ok := got["mode"].(string); !ok || s != "dev" {
		t.Fatalf("mode payload = %#v, want \"dev\"", got["mode"])
	}
	if bval, ok := got["debug"].(bool); !ok || !bval {
		t.Fatalf("debug payload = %#v, want true", got["debug"])
	}
	region, ok := got["region"].(map[string]any)
	if !ok {
		t.Fatalf("region payload type = %T, want map[string]any", got["region"])
	}
	if code, ok := region["code"].(string); !ok || code != "eu" {
		t.Fatalf("region.code = %#v, want \"eu\"", region["code"])
	}
	if zone, ok := region["zone"].(float64); !ok || zone != 3 {
		t.Fatalf("region.zone = %#v, want float64 3", region["zone"])
	}
}

func TestConfig_PublishConfig_MissingDevice(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-missing-device")
	svc := NewConfigService()

	// No device ID in context
	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error for missing device ID, got nil")
	}
}

func TestConfig_PublishConfig_NoConfigFound(t *testing.T) {
	// Override lookup to simulate absence.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) { return nil, false }
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(4)
	conn := b.NewConnection("test-no-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "unknown-device")
	if err := svc.publishConfig(ctx, conn); err == nil {
		t.Fatal("expected error for missing embedded config, got nil")
	}
}

func TestDecode_RejectsNonMapping(t *testing.T) {
	if _, err := Decode([]byte("- a\n- b\n")); err == nil {
		t.Fatal("expected error for a sequence document")
	}
	if _, err := Decode([]byte("")); err == nil {
		t.Fatal("expected error for an empty document")
	}
}

// The embedded board sections must be accepted by the board's config layer.
func TestEmbeddedConfigs_ApplyToBoard(t *testing.T) {
	for device, raw := range embeddedConfigs {
		m, err := Decode(raw)
		if err != nil {
			t.Fatalf("%s: decode: %v", device, err)
		}
		sect, ok := m["board"].(map[string]any)
		if !ok {
			t.Fatalf("%s: missing board section", device)
		}
		if _, err := boardcfg.Apply(boardcfg.Default(), sect); err != nil {
			t.Fatalf("%s: apply: %v", device, err)
		}
		if mon, ok := m["monitor"].(map[string]any); !ok {
			t.Fatalf("%s: missing monitor section", device)
		} else if iv, ok := mon["interval"].(float64); !ok || iv <= 0 {
			t.Fatalf("%s: monitor.interval = %#v", device, mon["interval"])
		}
	}
}
