// Package modset defines the mod set bonus table and the calculation of
// bonuses granted by completed sets.
package modset

import (
	"sort"

	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

// Set identifies a mod's set affiliation.
type Set string

const (
	SetHealth     Set = "health"
	SetDefense    Set = "defense"
	SetCritDamage Set = "critdamage"
	SetCritChance Set = "critchance"
	SetTenacity   Set = "tenacity"
	SetOffense    Set = "offense"
	SetPotency    Set = "potency"
	SetSpeed      Set = "speed"
)

// Definition describes one set's completion requirement and the bonus each
// completed set grants.
type Definition struct {
	Required int
	Bonus    statvalue.Value
}

var definitions = map[Set]Definition{
	SetHealth:     {Required: 2, Bonus: statvalue.Value{Stat: statvalue.StatHealth, Kind: statvalue.KindPercent, Amount: 10}},
	SetDefense:    {Required: 2, Bonus: statvalue.Value{Stat: statvalue.StatDefense, Kind: statvalue.KindPercent, Amount: 25}},
	SetCritDamage: {Required: 4, Bonus: statvalue.Value{Stat: statvalue.StatCritDamage, Kind: statvalue.KindFlat, Amount: 30}},
	SetCritChance: {Required: 2, Bonus: statvalue.Value{Stat: statvalue.StatCritChance, Kind: statvalue.KindFlat, Amount: 8}},
	SetTenacity:   {Required: 2, Bonus: statvalue.Value{Stat: statvalue.StatTenacity, Kind: statvalue.KindFlat, Amount: 20}},
	SetOffense:    {Required: 4, Bonus: statvalue.Value{Stat: statvalue.StatOffense, Kind: statvalue.KindPercent, Amount: 15}},
	SetPotency:    {Required: 2, Bonus: statvalue.Value{Stat: statvalue.StatPotency, Kind: statvalue.KindFlat, Amount: 15}},
	SetSpeed:      {Required: 4, Bonus: statvalue.Value{Stat: statvalue.StatSpeed, Kind: statvalue.KindPercent, Amount: 10}},
}

// Lookup returns the definition for a set.
func Lookup(s Set) (Definition, bool) {
	def, ok := definitions[s]
	return def, ok
}

// All returns every known set in deterministic order.
func All() []Set {
	sets := make([]Set, 0, len(definitions))
	for s := range definitions {
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i] < sets[j] })
	return sets
}

// Bonuses computes the stat bonuses granted by the given per-set mod
// counts within one character's six slots. Each completed set grants its
// bonus; completions stack additively. Six mods of a single set grant one
// additional cross-set bonus on top of the stacked completions. Partial
// counts below the requirement grant nothing.
func Bonuses(counts map[Set]int) []statvalue.Value {
	var bonuses []statvalue.Value
	for _, set := range All() {
		count := counts[set]
		if count <= 0 {
			continue
		}
		def, ok := definitions[set]
		if !ok {
			continue
		}
		completed := count / def.Required
		if count == 6 {
			completed++
		}
		if completed == 0 {
			continue
		}
		bonuses = append(bonuses, def.Bonus.Scale(float64(completed)))
	}
	return bonuses
}

// MaxAdditional returns, for one set, the largest extra bonus multiplier
// achievable by adding up to `remaining` more mods of that set to an
// existing count. Used by the solver's optimistic bound.
func MaxAdditional(set Set, count, remaining int) float64 {
	def, ok := definitions[set]
	if !ok {
		return 0
	}
	current := count / def.Required
	if count == 6 {
		current++
	}
	best := count + remaining
	if best > 6 {
		best = 6
	}
	future := best / def.Required
	if best == 6 {
		future++
	}
	return float64(future - current)
}

// Canonical parses a set name as written in configuration files or game
// exports.
func Canonical(name string) (Set, bool) {
	switch Set(name) {
	case SetHealth, SetDefense, SetCritDamage, SetCritChance, SetTenacity, SetOffense, SetPotency, SetSpeed:
		return Set(name), true
	}
	return "", false
}
