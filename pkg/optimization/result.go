// Package optimization provides shared data structures for optimization results.
package optimization

// Message classifies a per-character outcome that is reported rather than
// treated as a run-level failure.
type Message string

const (
	// MessageNone indicates the character was processed normally.
	MessageNone Message = ""

	// MessageInfeasible indicates no slot-filling combination existed
	// under the character's quality and set constraints.
	MessageInfeasible Message = "infeasible"

	// MessageMissingBaseStats indicates a percent stat conversion was
	// required but the character snapshot carries no base stats for it.
	MessageMissingBaseStats Message = "missingBaseStats"
)

// CharacterResult captures the outcome for a single character in priority
// order.
type CharacterResult struct {
	CharacterID     string   `json:"characterId" yaml:"characterId"`
	TargetName      string   `json:"targetName" yaml:"targetName"`
	AssignedMods    []string `json:"assignedMods" yaml:"assignedMods"`
	AchievedValue   float64  `json:"achievedValue" yaml:"achievedValue"`
	PreviousValue   float64  `json:"previousValue" yaml:"previousValue"`
	Changed         bool     `json:"changed" yaml:"changed"`
	Message         Message  `json:"message,omitempty" yaml:"message,omitempty"`
	SuggestedSlices []string `json:"suggestedSlices,omitempty" yaml:"suggestedSlices,omitempty"`
}

// Summary aggregates run-level counters.
type Summary struct {
	TotalModsMoved     int  `json:"totalModsMoved" yaml:"totalModsMoved"`
	UnassignedModCount int  `json:"unassignedModCount" yaml:"unassignedModCount"`
	Cancelled          bool `json:"cancelled" yaml:"cancelled"`
}

// RunResult is the complete, immutable output of one optimizer run.
type RunResult struct {
	Characters []CharacterResult `json:"characters" yaml:"characters"`
	Summary    Summary           `json:"summary" yaml:"summary"`
}

// Progress is reported once per processed character.
type Progress struct {
	CharacterID     string  `json:"characterId"`
	PercentComplete float64 `json:"percentComplete"`
}
