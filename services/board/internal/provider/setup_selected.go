//go:build rp2040

package provider

import "ubmp4-tones/services/board/internal/provider/setups"

func init() {
	SelectedPlan = setups.PicoUBMP4
}
