package setups

// ResourcePlan specifies wiring chosen by a setup. Providers consume this
// plan to claim pins; GPIO numbers are mapped to machine.Pin in the provider.
type ResourcePlan struct {
	Name string

	// Switches: SW1 is the bootloader reset switch; SW2..SW5 are user inputs.
	SW1 int
	SW2 int
	SW3 int
	SW4 int
	SW5 int

	// LEDs holds LED2..LED6 in order.
	LEDs [5]int

	Beeper int

	// GPIOMin/GPIOMax bound the pins this board exposes.
	GPIOMin, GPIOMax int

	Log UARTPlan
}

type UARTPlan struct {
	ID   string // e.g. "uart0"; empty => log to the default console
	TX   int
	RX   int
	Baud uint32
}

// LEDPin returns the GPIO for LED id (2..6).
func (p ResourcePlan) LEDPin(id uint8) (int, bool) {
	if id < 2 || id > 6 {
		return 0, false
	}
	return p.LEDs[id-2], true
}
