// Package optimizer implements the mod assignment optimizer: a
// priority-ordered, per-character bounded search that picks the best
// six-mod combination for each character from a shared pool.
package optimizer

import (
	"errors"

	"github.com/nicanica/mods-optimizer/internal/profile"
)

// ErrEmptyInventory indicates the run was started with no mods at all.
var ErrEmptyInventory = errors.New("mod inventory is empty")

// ErrMalformedTarget indicates a target whose objective is meaningless:
// every weight zero and no set restriction.
var ErrMalformedTarget = errors.New("target has all-zero weights and no set restriction")

// ErrUnknownCharacter indicates a priority entry referencing a character
// missing from the roster snapshot.
var ErrUnknownCharacter = errors.New("priority list references unknown character")

// PriorityEntry pairs a character with the target to optimize it for. The
// order of entries is the selection order the user configured.
type PriorityEntry struct {
	CharacterID string         `json:"characterId"`
	Target      profile.Target `json:"target"`
}

// RunInput is the immutable snapshot a run operates on. It is constructed
// once from the host's current state and never mutated.
type RunInput struct {
	Roster           []profile.Character `json:"roster"`
	Inventory        []profile.Mod       `json:"inventory"`
	Priority         []PriorityEntry     `json:"priority"`
	ThresholdPercent float64             `json:"thresholdPercent"`

	// LockUnselected treats roster characters absent from the priority
	// list as Locked, reserving their equipped mods before the run starts.
	LockUnselected bool `json:"lockUnselected"`
}

// Combination is a complete (or partial, when some slots had no eligible
// mods) assignment for one character plus the scalar value it achieves.
type Combination struct {
	Mods  []profile.Mod
	Value float64
}

// ModIDs returns the assigned mod identifiers in slot order.
func (c Combination) ModIDs() []string {
	ids := make([]string, 0, len(c.Mods))
	for _, m := range c.Mods {
		ids = append(ids, m.ID)
	}
	return ids
}
