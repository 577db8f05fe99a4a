// Package constants provides shared constants for the mods-optimizer application.
package constants

// Mod geometry constants
const (
	// SlotCount is the number of mod slots a character can equip
	SlotCount = 6

	// MaxSecondaryStats is the maximum number of secondary stats on a mod
	MaxSecondaryStats = 4

	// MinPips and MaxPips bound a mod's pip (quality) count
	MinPips = 1
	MaxPips = 6

	// MaxModLevel is the level at which a mod's stats are fully revealed
	MaxModLevel = 15

	// MinRolls and MaxRolls bound the roll count of a secondary stat
	MinRolls = 1
	MaxRolls = 5
)

// Numeric constants
const (
	// DecimalPrecision is the precision for stat rounding (2 decimal places)
	DecimalPrecision = 100

	// StatTolerance is the tolerance for stat value comparisons
	StatTolerance = 0.01

	// PercentageMultiplier converts ratios to percentages
	PercentageMultiplier = 100.0

	// ThresholdEpsilon is the floor for the denominator in relative
	// improvement calculations, guarding against division by zero when a
	// character's current assignment scores zero.
	ThresholdEpsilon = 1e-9
)

// Solver tuning defaults
const (
	// DefaultBeamWidth is the default top-K pruning width for the
	// assignment solver's search frontier
	DefaultBeamWidth = 32

	// DefaultWorkers is the default number of concurrent scoring workers;
	// zero means use GOMAXPROCS
	DefaultWorkers = 0

	// DefaultChangeThreshold is the default minimum relative improvement
	// (percent) required to replace a character's current mods
	DefaultChangeThreshold = 0.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// profile snapshots (4 MB; large rosters carry hundreds of mods)
	DefaultMaxUploadSizeBytes int64 = 4 * 1024 * 1024
)
