package optimizer

import (
	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/modset"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

// SetBonuses derives the bonus stats granted by completed mod sets within
// one character's equipped combination. It must be evaluated before
// scoring consumes the combination because it changes the effective stat
// vector.
func SetBonuses(mods []profile.Mod) []statvalue.Value {
	counts := make(map[modset.Set]int, len(mods))
	for _, m := range mods {
		counts[m.Set]++
	}
	return modset.Bonuses(counts)
}

// setCounts tallies the per-set mod counts of a partial combination.
func setCounts(mods []profile.Mod) map[modset.Set]int {
	counts := make(map[modset.Set]int, len(mods))
	for _, m := range mods {
		counts[m.Set]++
	}
	return counts
}
