package profile

import "github.com/nicanica/mods-optimizer/pkg/constants"

// slicePrimaryFactor is the primary-stat growth from a 5-pip to 6-pip
// quality upgrade.
const slicePrimaryFactor = 1.1

// Sliceable reports whether a mod is eligible for quality-upgrade
// simulation: a fully leveled 5-pip mod that is not already a synthesized
// variant.
func Sliceable(m Mod) bool {
	return m.Pips == 5 && m.Level == constants.MaxModLevel && !m.Sliced
}

// Slice synthesizes the virtual quality-upgraded variant of a mod. The
// upgrade recalculates each secondary as if it had received one additional
// roll of its average per-roll value, and boosts the primary by the fixed
// 6-pip growth factor. The variant keeps the underlying mod's ID so the
// solver treats the pair as alternatives for the same item.
func Slice(m Mod) (Mod, bool) {
	if !Sliceable(m) {
		return m, false
	}

	out := m
	out.Pips = 6
	out.Sliced = true
	out.Primary = m.Primary.Scale(slicePrimaryFactor)

	out.Secondaries = make([]SecondaryStat, len(m.Secondaries))
	for i, sec := range m.Secondaries {
		rolls := sec.Rolls
		upgraded := sec.Value.Scale(float64(rolls+1) / float64(rolls))
		if rolls < constants.MaxRolls {
			rolls++
		}
		out.Secondaries[i] = SecondaryStat{Value: upgraded, Rolls: rolls}
	}
	return out, true
}
