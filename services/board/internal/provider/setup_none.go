//go:build !rp2040

package provider

import "ubmp4-tones/services/board/internal/provider/setups"

func init() {
	// Host simulation reuses the Pico numbering, logging to stdout.
	SelectedPlan = setups.PicoUBMP4
	SelectedPlan.Name = "host_sim"
	SelectedPlan.Log = setups.UARTPlan{}
}
