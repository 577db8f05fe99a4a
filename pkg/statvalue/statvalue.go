// Package statvalue defines tagged stat values and the pure conversion
// functions for turning percent-based stats into flat contributions.
package statvalue

import (
	"errors"
	"fmt"
	"strings"
)

// Stat identifies a character or mod stat type.
type Stat string

const (
	StatHealth            Stat = "health"
	StatProtection        Stat = "protection"
	StatSpeed             Stat = "speed"
	StatOffense           Stat = "offense"
	StatDefense           Stat = "defense"
	StatCritChance        Stat = "critChance"
	StatSpecialCritChance Stat = "specialCritChance"
	StatCritDamage        Stat = "critDamage"
	StatPotency           Stat = "potency"
	StatTenacity          Stat = "tenacity"
	StatAccuracy          Stat = "accuracy"
	StatCritAvoidance     Stat = "critAvoidance"
)

// Kind distinguishes flat stat amounts from percent-of-base amounts.
type Kind int

const (
	KindFlat Kind = iota
	KindPercent
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	if k == KindPercent {
		return "percent"
	}
	return "flat"
}

// Value is a single tagged stat amount carried by a mod's primary or
// secondary stat, or granted by a set bonus.
type Value struct {
	Stat   Stat    `json:"stat" yaml:"stat"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// BaseStats holds a character's base stat values, used to convert
// percent-based contributions to flat ones.
type BaseStats map[Stat]float64

// ErrMissingBaseStat indicates a percent stat required a base stat value
// that the character snapshot does not carry.
var ErrMissingBaseStat = errors.New("missing base stat for percent conversion")

// Flatten converts the value into a flat contribution against the given
// base stats. Flat values pass through unchanged; percent values scale the
// character's base stat for the same stat type.
func (v Value) Flatten(base BaseStats) (float64, error) {
	if v.Kind == KindFlat {
		return v.Amount, nil
	}
	b, ok := base[v.Stat]
	if !ok || b == 0 {
		return 0, fmt.Errorf("stat %s: %w", v.Stat, ErrMissingBaseStat)
	}
	return v.Amount / 100 * b, nil
}

// Add combines two values of the same stat and kind.
func (v Value) Add(other Value) (Value, error) {
	if v.Stat != other.Stat || v.Kind != other.Kind {
		return Value{}, fmt.Errorf("cannot add %s %s and %s %s", v.Kind, v.Stat, other.Kind, other.Stat)
	}
	return Value{Stat: v.Stat, Kind: v.Kind, Amount: v.Amount + other.Amount}, nil
}

// Scale returns the value multiplied by the given factor.
func (v Value) Scale(factor float64) Value {
	return Value{Stat: v.Stat, Kind: v.Kind, Amount: v.Amount * factor}
}

// Merged maps a stat onto the stat it is scored as. Physical and special
// critical chance are treated identically for damage purposes, so special
// critical chance folds into critical chance and carries no weight of its
// own.
func Merged(s Stat) Stat {
	if s == StatSpecialCritChance {
		return StatCritChance
	}
	return s
}

// NaturalCap returns the natural ceiling for a stat, beyond which
// additional contributions stop accumulating value. The second return is
// false for uncapped stats.
func NaturalCap(s Stat) (float64, bool) {
	switch s {
	case StatCritChance, StatPotency, StatTenacity, StatAccuracy, StatCritAvoidance:
		return 100, true
	default:
		return 0, false
	}
}

var statAliases = map[string]Stat{
	"health":            StatHealth,
	"protection":        StatProtection,
	"speed":             StatSpeed,
	"offense":           StatOffense,
	"defense":           StatDefense,
	"critchance":        StatCritChance,
	"crit chance":       StatCritChance,
	"criticalchance":    StatCritChance,
	"specialcritchance": StatSpecialCritChance,
	"critdamage":        StatCritDamage,
	"crit damage":       StatCritDamage,
	"criticaldamage":    StatCritDamage,
	"potency":           StatPotency,
	"tenacity":          StatTenacity,
	"accuracy":          StatAccuracy,
	"critavoidance":     StatCritAvoidance,
	"crit avoidance":    StatCritAvoidance,
	"criticalavoidance": StatCritAvoidance,
}

// Canonical parses a stat name as written in configuration files or game
// exports. A trailing "%" marks the percent kind.
func Canonical(name string) (Stat, Kind, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	kind := KindFlat
	if strings.HasSuffix(trimmed, "%") {
		kind = KindPercent
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "%"))
	}
	stat, ok := statAliases[trimmed]
	if !ok {
		return "", KindFlat, fmt.Errorf("unknown stat %q", name)
	}
	return stat, kind, nil
}
