package setups

// PicoUBMP4 wires a Raspberry Pi Pico as a UBMP4-style trainer:
// switches to GP15..GP19 (active-low, internal pull-ups), LEDs to GP10..GP14,
// piezo beeper to GP9 and the log UART on uart0.
var PicoUBMP4 = ResourcePlan{
	Name: "pico_ubmp4",

	SW1: 15,
	SW2: 16,
	SW3: 17,
	SW4: 18,
	SW5: 19,

	LEDs:   [5]int{10, 11, 12, 13, 14},
	Beeper: 9,

	GPIOMin: 0,
	GPIOMax: 29,

	Log: UARTPlan{ID: "uart0", TX: 0, RX: 1, Baud: 115_200},
}
