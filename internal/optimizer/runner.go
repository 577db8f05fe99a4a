package optimizer

import (
	"context"
	"fmt"
	"sort"

	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/mathutil"
	"github.com/nicanica/mods-optimizer/pkg/optimization"
	"github.com/nicanica/mods-optimizer/pkg/validation"
	"go.uber.org/zap"
)

// Options tunes a run.
type Options struct {
	// BeamWidth is the solver's top-K pruning width; zero selects the
	// default.
	BeamWidth int

	// Workers caps concurrent scoring; zero selects GOMAXPROCS.
	Workers int
}

// ProgressFunc is invoked once per processed character. It is the only
// externally observable side effect during a run.
type ProgressFunc func(optimization.Progress)

// Runner orchestrates a full optimization run across the roster.
type Runner struct {
	logger *zap.Logger
	solver *Solver
}

// NewRunner constructs a Runner with the provided options.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger: logger,
		solver: NewSolver(logger, opts.BeamWidth, opts.Workers),
	}
}

// Run executes the optimizer over the input snapshot in priority order,
// removing each character's chosen mods from the shared pool before the
// next character is processed. Cancellation is cooperative and checked
// once per character boundary; on cancellation the result carries the
// already-processed characters and the cancelled marker, never a partial
// assignment for the character in flight.
func (r *Runner) Run(ctx context.Context, input RunInput, progress ProgressFunc) (*optimization.RunResult, error) {
	roster, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	pool := make(map[string]profile.Mod, len(input.Inventory))
	byID := make(map[string]profile.Mod, len(input.Inventory))
	owners := make(map[string]string, len(input.Inventory))
	for _, m := range input.Inventory {
		pool[m.ID] = m
		byID[m.ID] = m
		owners[m.ID] = m.CharacterID
	}

	selected := make(map[string]bool, len(input.Priority))
	for _, entry := range input.Priority {
		selected[entry.CharacterID] = true
	}
	locked := make(map[string]bool, len(input.Roster))
	for _, ch := range input.Roster {
		if ch.Settings.Lock == profile.LockLocked || (input.LockUnselected && !selected[ch.ID]) {
			locked[ch.ID] = true
		}
	}

	// Locked characters keep their equipment: reserve it before any
	// character is processed so it never appears as a candidate.
	for _, ch := range input.Roster {
		if !locked[ch.ID] {
			continue
		}
		for _, modID := range ch.EquippedMods {
			delete(pool, modID)
		}
	}

	result := &optimization.RunResult{}
	moved := 0
	for i, entry := range input.Priority {
		if ctx.Err() != nil {
			result.Summary.Cancelled = true
			r.logger.Info("run cancelled at character boundary",
				zap.String("op", "optimizer.Run"),
				zap.Int("processed", i),
			)
			break
		}

		ch := roster[entry.CharacterID]
		cr := r.processCharacter(ch, entry.Target, pool, byID, owners, input.ThresholdPercent, locked[ch.ID], &moved)
		result.Characters = append(result.Characters, cr)

		r.logger.Info("character processed",
			zap.String("op", "optimizer.Run"),
			zap.String("characterID", ch.ID),
			zap.Float64("achievedValue", cr.AchievedValue),
			zap.Bool("changed", cr.Changed),
			zap.String("message", string(cr.Message)),
		)

		if progress != nil {
			progress(optimization.Progress{
				CharacterID:     ch.ID,
				PercentComplete: mathutil.CalculatePercentage(float64(i+1), float64(len(input.Priority))),
			})
		}
	}

	for _, owner := range owners {
		if owner == "" {
			result.Summary.UnassignedModCount++
		}
	}
	result.Summary.TotalModsMoved = moved
	return result, nil
}

// validateInput rejects run-aborting conditions before any character is
// processed and returns the roster indexed by ID.
func validateInput(input RunInput) (map[string]profile.Character, error) {
	if len(input.Inventory) == 0 {
		return nil, ErrEmptyInventory
	}
	if err := validation.ValidateThreshold(input.ThresholdPercent); err != nil {
		return nil, err
	}

	roster := make(map[string]profile.Character, len(input.Roster))
	for _, ch := range input.Roster {
		roster[ch.ID] = ch
	}
	for _, entry := range input.Priority {
		if _, ok := roster[entry.CharacterID]; !ok {
			return nil, fmt.Errorf("character %s: %w", entry.CharacterID, ErrUnknownCharacter)
		}
		if entry.Target.Malformed() {
			return nil, fmt.Errorf("character %s target %s: %w", entry.CharacterID, entry.Target.Name, ErrMalformedTarget)
		}
	}
	return roster, nil
}

// processCharacter runs one character's solve and threshold decision, then
// settles mod ownership: the final assignment is consumed from the pool
// and any previously-owned mods it no longer uses are released for later
// characters.
func (r *Runner) processCharacter(ch profile.Character, target profile.Target, pool, byID map[string]profile.Mod, owners map[string]string, threshold float64, isLocked bool, moved *int) optimization.CharacterResult {
	cr := optimization.CharacterResult{
		CharacterID: ch.ID,
		TargetName:  target.Name,
	}

	current := currentCombination(ch, owners, byID)

	if isLocked {
		cr.AssignedMods = current.ModIDs()
		value, err := Score(ch, current.Mods, target)
		if err != nil {
			cr.Message = optimization.MessageMissingBaseStats
		} else {
			cr.AchievedValue = value
			cr.PreviousValue = value
		}
		settle(ch, current.Mods, current, pool, owners, moved)
		return cr
	}

	currentValue, currentErr := Score(ch, current.Mods, target)
	cr.PreviousValue = currentValue

	candidates := CandidatesBySlot(ch, poolSlice(pool), target)
	proposed, found, err := r.solver.Solve(ch, candidates, target)

	final := current.Mods
	switch {
	case err != nil:
		cr.Message = optimization.MessageMissingBaseStats
		cr.AchievedValue = 0
		r.logger.Warn("scoring aborted for character",
			zap.String("op", "optimizer.processCharacter"),
			zap.String("characterID", ch.ID),
			zap.Error(err),
		)
	case !found:
		cr.Message = optimization.MessageInfeasible
		cr.AchievedValue = currentValue
	case currentErr != nil:
		// the current equipment cannot be scored, so any found proposal
		// is an improvement by definition
		final = proposed.Mods
		cr.AchievedValue = proposed.Value
		cr.PreviousValue = 0
		cr.Changed = !sameAssignment(proposed.Mods, current.Mods)
	default:
		if Decide(currentValue, proposed.Value, threshold) == DecisionAdopt {
			final = proposed.Mods
			cr.AchievedValue = proposed.Value
			cr.Changed = !sameAssignment(proposed.Mods, current.Mods)
		} else {
			cr.AchievedValue = currentValue
		}
	}

	cr.AssignedMods = idsOf(final)
	for _, m := range final {
		if m.Sliced {
			cr.SuggestedSlices = append(cr.SuggestedSlices, m.ID)
		}
	}

	settle(ch, final, current, pool, owners, moved)
	return cr
}

// currentCombination collects the character's equipped mods that are still
// owned by it; an earlier, higher-priority character may already have
// consumed some of them.
func currentCombination(ch profile.Character, owners map[string]string, byID map[string]profile.Mod) Combination {
	var mods []profile.Mod
	for _, slot := range profile.SlotOrder() {
		id, ok := ch.EquippedMods[slot]
		if !ok {
			continue
		}
		if owners[id] != ch.ID {
			continue
		}
		if m, ok := byID[id]; ok {
			mods = append(mods, m)
		}
	}
	return Combination{Mods: mods}
}

// settle consumes the final assignment from the pool and releases the
// character's previously-owned mods that the assignment dropped.
func settle(ch profile.Character, final []profile.Mod, current Combination, pool map[string]profile.Mod, owners map[string]string, moved *int) {
	kept := make(map[string]bool, len(final))
	for _, m := range final {
		kept[m.ID] = true
		if owners[m.ID] != ch.ID {
			*moved++
		}
		owners[m.ID] = ch.ID
		delete(pool, m.ID)
	}
	for _, m := range current.Mods {
		if kept[m.ID] {
			continue
		}
		owners[m.ID] = ""
		if pm, ok := pool[m.ID]; ok {
			pm.CharacterID = ""
			pool[m.ID] = pm
		}
	}
}

func poolSlice(pool map[string]profile.Mod) []profile.Mod {
	mods := make([]profile.Mod, 0, len(pool))
	for _, m := range pool {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].ID < mods[j].ID })
	return mods
}

func idsOf(mods []profile.Mod) []string {
	ids := make([]string, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}

func sameAssignment(a, b []profile.Mod) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]bool, len(a))
	for _, m := range a {
		ids[m.ID] = true
	}
	for _, m := range b {
		if !ids[m.ID] {
			return false
		}
	}
	return true
}
