package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (the board plan name, placed in ctx under CtxDeviceKey)
// Val: raw YAML for that device
// -----------------------------------------------------------------------------

const cfgPicoUBMP4 = `
board:
  mode: tones
  cycles: 5
  pulse_step_us: 20
  initial_brightness: 125
  brightness_step: 1
monitor:
  interval: 2
`

const cfgHostSim = `
board:
  mode: tones
monitor:
  interval: 5
`

var embeddedConfigs = map[string][]byte{
	"pico_ubmp4": []byte(cfgPicoUBMP4),
	"host_sim":   []byte(cfgHostSim),
}
