package optimizer

import (
	"github.com/nicanica/mods-optimizer/pkg/constants"
	"github.com/nicanica/mods-optimizer/pkg/mathutil"
)

// Decision is the outcome of the change threshold filter.
type Decision int

const (
	// DecisionKeep leaves the character's current assignment untouched.
	DecisionKeep Decision = iota

	// DecisionAdopt replaces the current assignment with the proposal.
	DecisionAdopt
)

// Decide adopts a proposed assignment only when its relative improvement
// over the current value meets the threshold percentage. Declining is the
// designed steady-state outcome when no character needs reassignment, not
// an error.
func Decide(currentValue, proposedValue, thresholdPercent float64) Decision {
	improvement := proposedValue - currentValue
	if improvement <= 0 {
		return DecisionKeep
	}
	base := mathutil.Max(currentValue, constants.ThresholdEpsilon)
	if mathutil.CalculatePercentage(improvement, base) >= thresholdPercent {
		return DecisionAdopt
	}
	return DecisionKeep
}
