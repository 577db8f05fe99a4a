package profile

import (
	"fmt"

	"github.com/nicanica/mods-optimizer/pkg/constants"
	"github.com/nicanica/mods-optimizer/pkg/modset"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
	"github.com/tidwall/gjson"
)

// ParseSnapshot parses the JSON snapshot exported by the browser host into
// an immutable Snapshot. Stat names may carry a trailing "%" to mark
// percent-kind values, e.g. {"stat": "health%", "value": 5.88}.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("profile snapshot is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	snapshot := &Snapshot{}

	var err error
	root.Get("roster").ForEach(func(_, entry gjson.Result) bool {
		var ch Character
		ch, err = parseCharacter(entry)
		if err != nil {
			return false
		}
		snapshot.Characters = append(snapshot.Characters, ch)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	root.Get("mods").ForEach(func(_, entry gjson.Result) bool {
		var mod Mod
		mod, err = parseMod(entry)
		if err != nil {
			return false
		}
		snapshot.Mods = append(snapshot.Mods, mod)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("mods: %w", err)
	}

	return snapshot, nil
}

func parseCharacter(entry gjson.Result) (Character, error) {
	id := entry.Get("id").String()
	if id == "" {
		return Character{}, fmt.Errorf("character entry missing id")
	}

	ch := Character{
		ID:           id,
		BaseStats:    statvalue.BaseStats{},
		EquippedMods: map[SlotKind]string{},
	}

	var err error
	entry.Get("baseStats").ForEach(func(key, value gjson.Result) bool {
		var stat statvalue.Stat
		stat, _, err = statvalue.Canonical(key.String())
		if err != nil {
			err = fmt.Errorf("character %s: %w", id, err)
			return false
		}
		ch.BaseStats[stat] = value.Float()
		return true
	})
	if err != nil {
		return Character{}, err
	}

	entry.Get("equipped").ForEach(func(key, value gjson.Result) bool {
		slot, ok := CanonicalSlot(key.String())
		if !ok {
			err = fmt.Errorf("character %s: unknown slot %q", id, key.String())
			return false
		}
		ch.EquippedMods[slot] = value.String()
		return true
	})
	if err != nil {
		return Character{}, err
	}

	settings := entry.Get("settings")
	ch.Settings.MinimumPips = int(settings.Get("minimumPips").Int())
	ch.Settings.SimulateSlicing = settings.Get("simulateSlicing").Bool()
	if settings.Get("locked").Bool() {
		ch.Settings.Lock = LockLocked
	}

	settings.Get("targets").ForEach(func(_, t gjson.Result) bool {
		var target Target
		target, err = parseTarget(t)
		if err != nil {
			err = fmt.Errorf("character %s: %w", id, err)
			return false
		}
		ch.Settings.Targets = append(ch.Settings.Targets, target)
		return true
	})
	if err != nil {
		return Character{}, err
	}

	return ch, nil
}

func parseTarget(entry gjson.Result) (Target, error) {
	target := Target{
		Name:    entry.Get("name").String(),
		Weights: map[statvalue.Stat]float64{},
	}
	if target.Name == "" {
		return Target{}, fmt.Errorf("target missing name")
	}

	var err error
	entry.Get("weights").ForEach(func(key, value gjson.Result) bool {
		var stat statvalue.Stat
		stat, _, err = statvalue.Canonical(key.String())
		if err != nil {
			err = fmt.Errorf("target %s: %w", target.Name, err)
			return false
		}
		target.Weights[stat] = value.Float()
		return true
	})
	if err != nil {
		return Target{}, err
	}

	entry.Get("setRestriction").ForEach(func(_, value gjson.Result) bool {
		set, ok := modset.Canonical(value.String())
		if !ok {
			err = fmt.Errorf("target %s: unknown set %q", target.Name, value.String())
			return false
		}
		target.SetRestriction = append(target.SetRestriction, set)
		return true
	})
	if err != nil {
		return Target{}, err
	}

	entry.Get("caps").ForEach(func(key, value gjson.Result) bool {
		var stat statvalue.Stat
		stat, _, err = statvalue.Canonical(key.String())
		if err != nil {
			err = fmt.Errorf("target %s: %w", target.Name, err)
			return false
		}
		if target.Caps == nil {
			target.Caps = map[statvalue.Stat]float64{}
		}
		target.Caps[stat] = value.Float()
		return true
	})
	if err != nil {
		return Target{}, err
	}

	return target, nil
}

func parseMod(entry gjson.Result) (Mod, error) {
	id := entry.Get("id").String()
	if id == "" {
		return Mod{}, fmt.Errorf("mod entry missing id")
	}

	slot, ok := CanonicalSlot(entry.Get("slot").String())
	if !ok {
		return Mod{}, fmt.Errorf("mod %s: unknown slot %q", id, entry.Get("slot").String())
	}
	set, ok := modset.Canonical(entry.Get("set").String())
	if !ok {
		return Mod{}, fmt.Errorf("mod %s: unknown set %q", id, entry.Get("set").String())
	}

	mod := Mod{
		ID:          id,
		Slot:        slot,
		Set:         set,
		Level:       int(entry.Get("level").Int()),
		Pips:        int(entry.Get("pips").Int()),
		CharacterID: entry.Get("characterId").String(),
	}
	if mod.Pips < constants.MinPips || mod.Pips > constants.MaxPips {
		return Mod{}, fmt.Errorf("mod %s: pip count %d outside valid range", id, mod.Pips)
	}

	primary, err := parseStatValue(entry.Get("primary"))
	if err != nil {
		return Mod{}, fmt.Errorf("mod %s primary: %w", id, err)
	}
	mod.Primary = primary

	entry.Get("secondaries").ForEach(func(_, s gjson.Result) bool {
		var value statvalue.Value
		value, err = parseStatValue(s)
		if err != nil {
			err = fmt.Errorf("mod %s secondary: %w", id, err)
			return false
		}
		rolls := int(s.Get("rolls").Int())
		if rolls < constants.MinRolls {
			rolls = constants.MinRolls
		}
		mod.Secondaries = append(mod.Secondaries, SecondaryStat{Value: value, Rolls: rolls})
		return true
	})
	if err != nil {
		return Mod{}, err
	}
	if len(mod.Secondaries) > constants.MaxSecondaryStats {
		return Mod{}, fmt.Errorf("mod %s: %d secondary stats exceeds maximum", id, len(mod.Secondaries))
	}

	return mod, nil
}

func parseStatValue(entry gjson.Result) (statvalue.Value, error) {
	stat, kind, err := statvalue.Canonical(entry.Get("stat").String())
	if err != nil {
		return statvalue.Value{}, err
	}
	return statvalue.Value{Stat: stat, Kind: kind, Amount: entry.Get("value").Float()}, nil
}
