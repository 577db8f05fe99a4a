package optimizer

import (
	"errors"
	"math"
	"testing"

	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/modset"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

func testCharacter(id string, base statvalue.BaseStats) profile.Character {
	return profile.Character{
		ID:           id,
		BaseStats:    base,
		EquippedMods: map[profile.SlotKind]string{},
	}
}

func secondary(stat statvalue.Stat, kind statvalue.Kind, amount float64) profile.SecondaryStat {
	return profile.SecondaryStat{
		Value: statvalue.Value{Stat: stat, Kind: kind, Amount: amount},
		Rolls: 1,
	}
}

// poolMod builds a fully-leveled mod with a zero-value primary so tests can
// control the score entirely through secondaries and set bonuses.
func poolMod(id string, slot profile.SlotKind, set modset.Set, secondaries ...profile.SecondaryStat) profile.Mod {
	return profile.Mod{
		ID:          id,
		Slot:        slot,
		Set:         set,
		Level:       15,
		Pips:        5,
		Primary:     statvalue.Value{Stat: statvalue.StatSpeed, Kind: statvalue.KindFlat, Amount: 0},
		Secondaries: secondaries,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		base     statvalue.BaseStats
		mods     []profile.Mod
		target   profile.Target
		expected float64
	}{
		{
			name: "Flat stat weighted directly",
			base: statvalue.BaseStats{statvalue.StatSpeed: 100},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotArrow, modset.SetSpeed,
					secondary(statvalue.StatSpeed, statvalue.KindFlat, 30)),
			},
			target:   profile.Target{Name: "speed", Weights: map[statvalue.Stat]float64{statvalue.StatSpeed: 1}},
			expected: 30,
		},
		{
			name: "Percent stat flattened against base",
			base: statvalue.BaseStats{statvalue.StatHealth: 10000},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotSquare, modset.SetOffense,
					secondary(statvalue.StatHealth, statvalue.KindPercent, 2)),
			},
			target:   profile.Target{Name: "health", Weights: map[statvalue.Stat]float64{statvalue.StatHealth: 0.01}},
			expected: 2, // 2% of 10000 = 200, weighted by 0.01
		},
		{
			name: "Completed set bonus included",
			base: statvalue.BaseStats{statvalue.StatHealth: 1000},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotSquare, modset.SetHealth),
				poolMod("m2", profile.SlotCircle, modset.SetHealth),
			},
			target:   profile.Target{Name: "health", Weights: map[statvalue.Stat]float64{statvalue.StatHealth: 1}},
			expected: 100, // 10% health set bonus over base 1000
		},
		{
			name: "Special crit chance merges into crit chance",
			base: statvalue.BaseStats{statvalue.StatCritChance: 10},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotTriangle, modset.SetOffense,
					secondary(statvalue.StatCritChance, statvalue.KindFlat, 3),
					secondary(statvalue.StatSpecialCritChance, statvalue.KindFlat, 5)),
			},
			target:   profile.Target{Name: "crit", Weights: map[statvalue.Stat]float64{statvalue.StatCritChance: 2}},
			expected: 16, // (3 + 5) merged, weighted by 2
		},
		{
			name: "Contribution past the natural cap earns nothing",
			base: statvalue.BaseStats{statvalue.StatCritChance: 95},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotTriangle, modset.SetOffense,
					secondary(statvalue.StatCritChance, statvalue.KindFlat, 10)),
			},
			target:   profile.Target{Name: "crit", Weights: map[statvalue.Stat]float64{statvalue.StatCritChance: 1}},
			expected: 5, // 95 -> capped at 100
		},
		{
			name: "Configured cap overrides the natural one",
			base: statvalue.BaseStats{statvalue.StatSpeed: 90},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotArrow, modset.SetSpeed,
					secondary(statvalue.StatSpeed, statvalue.KindFlat, 30)),
			},
			target: profile.Target{
				Name:    "speed",
				Weights: map[statvalue.Stat]float64{statvalue.StatSpeed: 1},
				Caps:    map[statvalue.Stat]float64{statvalue.StatSpeed: 100},
			},
			expected: 10,
		},
		{
			name: "Unweighted percent stat is skipped, not converted",
			base: statvalue.BaseStats{statvalue.StatSpeed: 100},
			mods: []profile.Mod{
				poolMod("m1", profile.SlotArrow, modset.SetSpeed,
					secondary(statvalue.StatSpeed, statvalue.KindFlat, 12),
					secondary(statvalue.StatOffense, statvalue.KindPercent, 3)),
			},
			target:   profile.Target{Name: "speed", Weights: map[statvalue.Stat]float64{statvalue.StatSpeed: 1}},
			expected: 12, // offense% needs a base stat the character lacks, but nobody asked for it
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := testCharacter("c1", tt.base)
			got, err := Score(ch, tt.mods, tt.target)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("Score() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestScoreMissingBaseStat(t *testing.T) {
	ch := testCharacter("c1", statvalue.BaseStats{statvalue.StatSpeed: 100})
	mods := []profile.Mod{
		poolMod("m1", profile.SlotSquare, modset.SetOffense,
			secondary(statvalue.StatOffense, statvalue.KindPercent, 3)),
	}
	target := profile.Target{Name: "offense", Weights: map[statvalue.Stat]float64{statvalue.StatOffense: 1}}

	if _, err := Score(ch, mods, target); !errors.Is(err, statvalue.ErrMissingBaseStat) {
		t.Errorf("expected ErrMissingBaseStat, got %v", err)
	}
}
