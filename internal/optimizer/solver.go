package optimizer

import (
	"runtime"
	"sort"
	"strings"

	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/constants"
	"github.com/nicanica/mods-optimizer/pkg/modset"
	"github.com/nicanica/mods-optimizer/pkg/statvalue"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// pruneEpsilon guards bound comparisons against floating point noise.
const pruneEpsilon = 1e-9

// Solver finds the best six-mod combination for one character via bounded
// branch-and-bound: slots are filled in a fixed order, the search keeps an
// explicit frontier of the top-K partial combinations ranked by an
// optimistic upper bound, and partial combinations that cannot beat the
// incumbent are pruned.
type Solver struct {
	logger    *zap.Logger
	beamWidth int
	workers   int
}

// NewSolver constructs a Solver. A zero beam width or worker count selects
// the defaults.
func NewSolver(logger *zap.Logger, beamWidth, workers int) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if beamWidth <= 0 {
		beamWidth = constants.DefaultBeamWidth
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Solver{logger: logger, beamWidth: beamWidth, workers: workers}
}

// searchState is a partial combination on the frontier.
type searchState struct {
	mods  []profile.Mod
	value float64
	bound float64
	key   string
}

func stateKey(mods []profile.Mod) string {
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.ID
		if m.Sliced {
			parts[i] += "+"
		}
	}
	return strings.Join(parts, "|")
}

func (st searchState) uses(id string) bool {
	for _, m := range st.mods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Solve searches the per-slot candidates for the combination maximizing
// the target's value. The second return is false when no slot had any
// eligible candidate, i.e. the character is infeasible under its
// constraints. Scoring of independent candidate combinations is
// parallelized; ties are broken by lowest mod identifier so output is
// reproducible across runs and platforms.
func (s *Solver) Solve(ch profile.Character, candidates map[profile.SlotKind][]profile.Mod, target profile.Target) (Combination, bool, error) {
	slots := profile.SlotOrder()

	standalone, err := s.standaloneValues(ch, slots, candidates, target)
	if err != nil {
		return Combination{}, false, err
	}

	// suffix[i] holds the sum of each slot i..end's best single-candidate
	// value; remainingCands[i] counts slots i..end that can contribute a
	// mod toward a set completion. Both feed the optimistic bound.
	suffix := make([]float64, len(slots)+1)
	remainingCands := make([]int, len(slots)+1)
	for i := len(slots) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1]
		remainingCands[i] = remainingCands[i+1]
		vals := standalone[slots[i]]
		if len(vals) == 0 {
			continue
		}
		best := vals[0]
		for _, v := range vals[1:] {
			if v > best {
				best = v
			}
		}
		suffix[i] += best
		remainingCands[i]++
	}

	setUnits := s.setBonusUnits(ch, target)

	incumbent, feasible, err := s.greedyIncumbent(ch, slots, candidates, standalone, target)
	if err != nil {
		return Combination{}, false, err
	}
	if !feasible {
		return Combination{}, false, nil
	}

	frontier := []searchState{{}}
	for si, slot := range slots {
		cands := candidates[slot]
		if len(cands) == 0 {
			continue
		}

		extended, err := s.extendFrontier(ch, frontier, cands, target)
		if err != nil {
			return Combination{}, false, err
		}

		kept := extended[:0]
		for _, st := range extended {
			st.bound = suffix[si+1] + setHeadroom(st.mods, remainingCands[si+1], setUnits)
			if st.value+st.bound >= incumbent.value-pruneEpsilon {
				kept = append(kept, st)
			}
		}

		sort.Slice(kept, func(i, j int) bool {
			bi := kept[i].value + kept[i].bound
			bj := kept[j].value + kept[j].bound
			if bi != bj {
				return bi > bj
			}
			return kept[i].key < kept[j].key
		})
		if len(kept) > s.beamWidth {
			kept = kept[:s.beamWidth]
		}
		if len(kept) == 0 {
			// every branch was pruned; the incumbent stands
			frontier = nil
			break
		}
		frontier = kept
	}

	best := incumbent
	for _, st := range frontier {
		if st.value > best.value || (st.value == best.value && st.key < best.key) {
			best = st
		}
	}

	s.logger.Debug("solver finished",
		zap.String("op", "optimizer.Solve"),
		zap.String("characterID", ch.ID),
		zap.Int("assigned", len(best.mods)),
		zap.Float64("value", best.value),
	)
	return Combination{Mods: best.mods, Value: best.value}, true, nil
}

// standaloneValues scores every candidate on its own, in parallel across
// slots. These per-mod values seed the greedy incumbent and the bound.
func (s *Solver) standaloneValues(ch profile.Character, slots []profile.SlotKind, candidates map[profile.SlotKind][]profile.Mod, target profile.Target) (map[profile.SlotKind][]float64, error) {
	standalone := make(map[profile.SlotKind][]float64, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, slot := range slots {
		cands := candidates[slot]
		if len(cands) == 0 {
			continue
		}
		vals := make([]float64, len(cands))
		standalone[slot] = vals
		g.Go(func() error {
			for i := range cands {
				v, err := Score(ch, []profile.Mod{cands[i]}, target)
				if err != nil {
					return err
				}
				vals[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return standalone, nil
}

// extendFrontier scores every one-mod extension of every frontier state.
// States are independent, so they are scored concurrently; results are
// collected by index to keep ordering deterministic.
func (s *Solver) extendFrontier(ch profile.Character, frontier []searchState, cands []profile.Mod, target profile.Target) ([]searchState, error) {
	results := make([][]searchState, len(frontier))

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for i := range frontier {
		st := frontier[i]
		out := make([]searchState, 0, len(cands))
		idx := i
		g.Go(func() error {
			for _, cand := range cands {
				if st.uses(cand.ID) {
					continue
				}
				mods := make([]profile.Mod, 0, len(st.mods)+1)
				mods = append(mods, st.mods...)
				mods = append(mods, cand)
				value, err := Score(ch, mods, target)
				if err != nil {
					return err
				}
				out = append(out, searchState{mods: mods, value: value, key: stateKey(mods)})
			}
			results[idx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var extended []searchState
	for _, out := range results {
		extended = append(extended, out...)
	}
	return extended, nil
}

// setBonusUnits precomputes the weighted value of one completed-set bonus
// per set. Percent bonuses that cannot be flattened contribute nothing to
// the bound; negative units are dropped since the bound only needs an
// overestimate.
func (s *Solver) setBonusUnits(ch profile.Character, target profile.Target) map[modset.Set]float64 {
	units := make(map[modset.Set]float64)
	for _, set := range modset.All() {
		def, ok := modset.Lookup(set)
		if !ok {
			continue
		}
		weight := target.Weights[statvalue.Merged(def.Bonus.Stat)]
		if weight == 0 {
			continue
		}
		flat, err := def.Bonus.Flatten(ch.BaseStats)
		if err != nil {
			continue
		}
		if unit := weight * flat; unit > 0 {
			units[set] = unit
		}
	}
	return units
}

// setHeadroom is the best-case additional set bonus value reachable from a
// partial combination: for each set, assume every remaining fillable slot
// joins it. Summing across sets overestimates (the same remaining slots
// are counted once per set), which keeps the bound admissible.
func setHeadroom(mods []profile.Mod, remaining int, units map[modset.Set]float64) float64 {
	if remaining <= 0 || len(units) == 0 {
		return 0
	}
	counts := setCounts(mods)
	total := 0.0
	// fixed iteration order keeps the accumulated bound reproducible
	for _, set := range modset.All() {
		unit, ok := units[set]
		if !ok {
			continue
		}
		total += unit * modset.MaxAdditional(set, counts[set], remaining)
	}
	return total
}

// greedyIncumbent builds a first complete combination by taking each
// slot's best standalone candidate, respecting mod uniqueness. It gives
// the branch-and-bound an immediate incumbent to prune against. The
// second return is false when no slot has any candidate.
func (s *Solver) greedyIncumbent(ch profile.Character, slots []profile.SlotKind, candidates map[profile.SlotKind][]profile.Mod, standalone map[profile.SlotKind][]float64, target profile.Target) (searchState, bool, error) {
	var mods []profile.Mod
	used := make(map[string]bool)

	for _, slot := range slots {
		cands := candidates[slot]
		vals := standalone[slot]
		bestIdx := -1
		for i, cand := range cands {
			if used[cand.ID] {
				continue
			}
			if bestIdx < 0 || vals[i] > vals[bestIdx] {
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			continue
		}
		mods = append(mods, cands[bestIdx])
		used[cands[bestIdx].ID] = true
	}
	if len(mods) == 0 {
		return searchState{}, false, nil
	}

	value, err := Score(ch, mods, target)
	if err != nil {
		return searchState{}, false, err
	}
	return searchState{mods: mods, value: value, key: stateKey(mods)}, true, nil
}
