package optimizer

import (
	"sort"

	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/mathutil"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

// Score converts a mod combination plus a character's base stats into a
// scalar value against the target's weights. Percent-based contributions
// are flattened against the character's base stats; physical and special
// critical chance merge into one contribution; capped stats stop accruing
// value beyond their ceiling. Pure function with no side effects.
//
// Stats the target does not weight are skipped entirely, so a missing base
// stat only fails scoring when the objective actually needs the
// conversion.
func Score(ch profile.Character, mods []profile.Mod, target profile.Target) (float64, error) {
	values := make([]statvalue.Value, 0, len(mods)*5)
	for _, m := range mods {
		values = append(values, m.Primary)
		for _, sec := range m.Secondaries {
			values = append(values, sec.Value)
		}
	}
	values = append(values, SetBonuses(mods)...)

	contributions := make(map[statvalue.Stat]float64)
	for _, v := range values {
		stat := statvalue.Merged(v.Stat)
		if target.Weights[stat] == 0 {
			continue
		}
		flat, err := v.Flatten(ch.BaseStats)
		if err != nil {
			return 0, err
		}
		contributions[stat] += flat
	}

	// Iterate stats in a fixed order so floating point accumulation is
	// reproducible across runs and platforms.
	stats := make([]statvalue.Stat, 0, len(contributions))
	for stat := range contributions {
		stats = append(stats, stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i] < stats[j] })

	total := 0.0
	for _, stat := range stats {
		total += target.Weights[stat] * creditedContribution(ch, target, stat, contributions[stat])
	}
	return total, nil
}

// creditedContribution applies the stat's cap, if any: contributions that
// would push the effective stat above the ceiling earn nothing past it.
func creditedContribution(ch profile.Character, target profile.Target, stat statvalue.Stat, contribution float64) float64 {
	cap, capped := target.Caps[stat]
	if !capped {
		cap, capped = statvalue.NaturalCap(stat)
	}
	if !capped {
		return contribution
	}
	base := ch.BaseStats[stat]
	return mathutil.Min(base+contribution, cap) - mathutil.Min(base, cap)
}
