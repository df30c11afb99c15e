package provider

import (
	"ubmp4-tones/services/board/internal/core"
	"ubmp4-tones/services/board/internal/provider/setups"
)

// SelectedPlan is provided via build-tagged files (setup_selected.go /
// setup_none.go in this package).
var SelectedPlan setups.ResourcePlan

// Ensure the provider satisfies the contract at compile time.
var _ core.ResourceRegistry = (*Registry)(nil)

// NewResources constructs the registry for the selected plan.
func NewResources() *Registry {
	return NewResourceRegistry(SelectedPlan)
}
