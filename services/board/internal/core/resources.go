package core

import "time"

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOHandle is a single digital pin. Reads and writes are infallible
// register accesses.
type GPIOHandle interface {
	Number() int
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(bool)
	Get() bool
	Toggle()
}

// PinFunc is the role a pin is claimed for.
type PinFunc uint8

const (
	FuncGPIOIn PinFunc = iota
	FuncGPIOOut
	FuncBeeper // output driven as a square-wave source
)

type PinHandle interface {
	Pin() int
	AsGPIO() GPIOHandle
}

// PortHandle groups output pins that can be cleared in a single write.
type PortHandle interface {
	Pins() []int
	Clear()
}

// ---- Timing ----

// Clock is the calibrated time source used for all busy-waits.
type Clock interface {
	Now() time.Time
	// Sleep blocks the caller for d. d <= 0 returns immediately.
	Sleep(d time.Duration)
}

// ---- Reset ----

// Resetter hands control to the bootloader. On hardware it never returns.
type Resetter interface {
	ResetToBootloader()
}

// ---- Unified registry interface ----

type ResourceRegistry interface {
	ClaimPin(devID string, n int, fn PinFunc) (PinHandle, error)
	ReleasePin(devID string, n int)

	// ClaimPort claims a set of already-owned output pins as one port.
	ClaimPort(devID string, pins []int) (PortHandle, error)

	Clock() Clock
	Resetter() Resetter
}
