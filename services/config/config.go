package config

import (
	"context"
	"errors"

	"ubmp4-tones/bus"

	"gopkg.in/yaml.v2"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig reads the device config from embedded YAML and publishes each
// top-level key as a retained message on config/<key>.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	m, err := Decode(raw)
	if err != nil {
		return err
	}
	for k, v := range m {
		conn.Publish(&bus.Message{
			Topic:    bus.T(configPrefix, k),
			Payload:  v,
			Retained: true,
		})
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}

// Decode parses a YAML document into the shapes a JSON decoder would give:
// objects become map[string]any and every number a float64.
func Decode(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("embedded config is not a mapping")
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		nv, err := normalize(v)
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, errors.New("non-string key in config mapping")
			}
			ne, err := normalize(e)
			if err != nil {
				return nil, err
			}
			m[ks] = ne
		}
		return m, nil
	case []any:
		for i, e := range x {
			ne, err := normalize(e)
			if err != nil {
				return nil, err
			}
			x[i] = ne
		}
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return v, nil
	}
}
