// Package profile defines the data structures for a roster and mod
// inventory snapshot supplied by the browser host, and includes functions
// for importing the host's JSON export.
package profile

import (
	"strings"

	"github.com/nicanica/mods-optimizer/pkg/modset"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

// SlotKind identifies one of the six fixed mod slot positions.
type SlotKind string

const (
	SlotSquare   SlotKind = "square"
	SlotArrow    SlotKind = "arrow"
	SlotDiamond  SlotKind = "diamond"
	SlotTriangle SlotKind = "triangle"
	SlotCircle   SlotKind = "circle"
	SlotCross    SlotKind = "cross"
)

// SlotOrder returns the six slot kinds in the fixed order the solver fills
// them.
func SlotOrder() []SlotKind {
	return []SlotKind{SlotSquare, SlotArrow, SlotDiamond, SlotTriangle, SlotCircle, SlotCross}
}

// CanonicalSlot parses a slot name as written in game exports.
func CanonicalSlot(name string) (SlotKind, bool) {
	switch SlotKind(strings.ToLower(strings.TrimSpace(name))) {
	case SlotSquare, SlotArrow, SlotDiamond, SlotTriangle, SlotCircle, SlotCross:
		return SlotKind(strings.ToLower(strings.TrimSpace(name))), true
	}
	return "", false
}

// LockState marks whether a run may reassign a character's mods.
type LockState int

const (
	LockUnlocked LockState = iota
	LockLocked
)

// SecondaryStat is one of a mod's up to four secondary stats, with the
// roll count indicating its quality tier.
type SecondaryStat struct {
	Value statvalue.Value `json:"value"`
	Rolls int             `json:"rolls"`
}

// Mod is an equippable item occupying one slot kind.
type Mod struct {
	ID          string          `json:"id"`
	Slot        SlotKind        `json:"slot"`
	Set         modset.Set      `json:"set"`
	Level       int             `json:"level"`
	Pips        int             `json:"pips"`
	Primary     statvalue.Value `json:"primary"`
	Secondaries []SecondaryStat `json:"secondaries"`

	// CharacterID is the current owner, empty when unassigned.
	CharacterID string `json:"characterId,omitempty"`

	// Sliced marks a virtual quality-upgraded variant synthesized during
	// candidate generation; it shares the underlying mod's ID.
	Sliced bool `json:"sliced,omitempty"`
}

// Target is a named weighting over stat types used to score candidate mod
// combinations for one character.
type Target struct {
	Name           string                     `json:"name"`
	Weights        map[statvalue.Stat]float64 `json:"weights"`
	SetRestriction []modset.Set               `json:"setRestriction,omitempty"`
	Caps           map[statvalue.Stat]float64 `json:"caps,omitempty"`
}

// Malformed reports whether the target's objective is meaningless: every
// weight zero and no set restriction to satisfy.
func (t Target) Malformed() bool {
	if len(t.SetRestriction) > 0 {
		return false
	}
	for _, w := range t.Weights {
		if w != 0 {
			return false
		}
	}
	return true
}

// AllowsSet reports whether a mod of the given set is eligible under the
// target's set restriction. An empty restriction allows any set.
func (t Target) AllowsSet(s modset.Set) bool {
	if len(t.SetRestriction) == 0 {
		return true
	}
	for _, allowed := range t.SetRestriction {
		if allowed == s {
			return true
		}
	}
	return false
}

// CharacterSettings holds the per-character optimizer settings configured
// by the user.
type CharacterSettings struct {
	MinimumPips     int       `json:"minimumPips"`
	SimulateSlicing bool      `json:"simulateSlicing"`
	Lock            LockState `json:"lock"`
	Targets         []Target  `json:"targets"`
}

// Character is one roster entry with its base stats, current equipment,
// and optimizer settings.
type Character struct {
	ID           string              `json:"id"`
	BaseStats    statvalue.BaseStats `json:"baseStats"`
	EquippedMods map[SlotKind]string `json:"equippedMods"`
	Settings     CharacterSettings   `json:"settings"`
}

// TargetByName resolves one of the character's named targets.
func (c Character) TargetByName(name string) (Target, bool) {
	for _, t := range c.Settings.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// HasEquipped reports whether the character currently has the given mod
// equipped.
func (c Character) HasEquipped(modID string) bool {
	for _, id := range c.EquippedMods {
		if id == modID {
			return true
		}
	}
	return false
}

// Snapshot is the immutable roster and inventory state a run operates on.
type Snapshot struct {
	Characters []Character `json:"characters"`
	Mods       []Mod       `json:"mods"`
}

// CharacterByID finds a roster entry.
func (s *Snapshot) CharacterByID(id string) (Character, bool) {
	for i := range s.Characters {
		if s.Characters[i].ID == id {
			return s.Characters[i], true
		}
	}
	return Character{}, false
}

// ModByID finds an inventory entry.
func (s *Snapshot) ModByID(id string) (Mod, bool) {
	for i := range s.Mods {
		if s.Mods[i].ID == id {
			return s.Mods[i], true
		}
	}
	return Mod{}, false
}
