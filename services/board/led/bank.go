// Package led drives the trainer's five LEDs (LED2..LED6).
package led

import "ubmp4-tones/services/board/internal/core"

// Valid LED ids.
const (
	FirstID uint8 = 2
	LastID  uint8 = 6
)

type Bank struct {
	leds [5]core.GPIOHandle // LED2..LED6
	port core.PortHandle
}

// NewBank takes LED2..LED6 in order and the port grouping them.
func NewBank(leds [5]core.GPIOHandle, port core.PortHandle) *Bank {
	return &Bank{leds: leds, port: port}
}

// LED returns the pin for id, or nil when id is out of range.
func (b *Bank) LED(id uint8) core.GPIOHandle {
	if id < FirstID || id > LastID {
		return nil
	}
	return b.leds[id-FirstID]
}

// Light turns on LED id (2..6) and leaves the others unchanged.
// Other ids are ignored; the result reports whether a pin was driven.
func (b *Bank) Light(id uint8) bool {
	p := b.LED(id)
	if p == nil {
		return false
	}
	p.Set(true)
	return true
}

// Clear turns every LED off with one port write.
func (b *Bank) Clear() { b.port.Clear() }
