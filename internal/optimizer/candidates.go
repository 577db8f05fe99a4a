package optimizer

import (
	"sort"

	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/constants"
)

// CandidatesBySlot filters the shared pool down to the mods eligible for
// one character, grouped per slot kind and deterministically ordered.
//
// A mod is eligible when it is unassigned or already owned by this
// character, meets the character's minimum pip threshold (mods the
// character currently has equipped are exempt, so current gear is never
// discarded by the filter), and satisfies the target's set restriction.
// When slicing simulation is enabled, each eligible fully-leveled 5-pip
// mod also yields a virtual upgraded variant.
func CandidatesBySlot(ch profile.Character, pool []profile.Mod, target profile.Target) map[profile.SlotKind][]profile.Mod {
	out := make(map[profile.SlotKind][]profile.Mod, constants.SlotCount)

	for _, m := range pool {
		if m.CharacterID != "" && m.CharacterID != ch.ID {
			continue
		}
		equipped := ch.EquippedMods[m.Slot] == m.ID
		if !equipped && m.Pips < ch.Settings.MinimumPips {
			continue
		}
		if !target.AllowsSet(m.Set) {
			continue
		}
		out[m.Slot] = append(out[m.Slot], m)
		if ch.Settings.SimulateSlicing {
			if sliced, ok := profile.Slice(m); ok {
				out[m.Slot] = append(out[m.Slot], sliced)
			}
		}
	}

	for slot := range out {
		mods := out[slot]
		sort.Slice(mods, func(i, j int) bool {
			if mods[i].ID != mods[j].ID {
				return mods[i].ID < mods[j].ID
			}
			return !mods[i].Sliced && mods[j].Sliced
		})
	}
	return out
}
