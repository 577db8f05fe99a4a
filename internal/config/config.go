// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"

	"github.com/nicanica/mods-optimizer/internal/optimizer"
	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/constants"
	"github.com/nicanica/mods-optimizer/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mods-optimizer.
type Configuration struct {
	// ProfilePath points at the roster and inventory export to optimize.
	ProfilePath string           `yaml:"profilePath"`
	Logging     LoggingConfig    `yaml:"logging,omitempty"`
	Output      OutputConfig     `yaml:"output,omitempty"`
	Optimizer   OptimizerConfig  `yaml:"optimizer,omitempty"`
	Selection   []SelectionEntry `yaml:"selection"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml
}

// OptimizerConfig holds the run-level optimizer tuning knobs.
type OptimizerConfig struct {
	// ChangeThreshold is the minimum relative improvement, in percent,
	// required before a character's assignment is replaced.
	ChangeThreshold float64 `yaml:"changeThreshold,omitempty"`

	// BeamWidth caps the solver's search frontier; zero uses the default.
	BeamWidth int `yaml:"beamWidth,omitempty"`

	// Workers caps concurrent scoring; zero uses all CPUs.
	Workers int `yaml:"workers,omitempty"`

	// LockUnselected reserves the equipment of roster characters absent
	// from the selection.
	LockUnselected bool `yaml:"lockUnselected,omitempty"`
}

// SelectionEntry names one character to optimize and which of its targets
// to use. The order of entries is the priority order.
type SelectionEntry struct {
	CharacterID string `yaml:"characterId" json:"characterId" mapstructure:"characterId"`

	// Target is the name of one of the character's configured targets;
	// empty selects the character's first target.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// OutputFormat returns the configured output format, falling back to the
// default when unset.
func (c *Configuration) OutputFormat() string {
	if c.Output.Format == "" {
		return constants.OutputFormatPretty
	}
	return c.Output.Format
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Warnings do not prevent a run; fatal conditions
// surface later when the run input is built.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.ProfilePath == "" {
		warnings = append(warnings, "no profilePath configured; a profile must be supplied on the command line")
	}
	if err := validation.ValidateOutputFormat(c.OutputFormat()); err != nil {
		warnings = append(warnings, fmt.Sprintf("output format: %s", err))
	}
	if err := validation.ValidateThreshold(c.Optimizer.ChangeThreshold); err != nil {
		warnings = append(warnings, fmt.Sprintf("optimizer changeThreshold: %s", err))
	}
	if c.Optimizer.BeamWidth < 0 {
		warnings = append(warnings, fmt.Sprintf("optimizer beamWidth %d is negative; the default will be used", c.Optimizer.BeamWidth))
	}
	if c.Optimizer.Workers < 0 {
		warnings = append(warnings, fmt.Sprintf("optimizer workers %d is negative; all CPUs will be used", c.Optimizer.Workers))
	}
	if len(c.Selection) == 0 {
		warnings = append(warnings, "selection is empty; no characters will be optimized")
	}

	seen := make(map[string]bool, len(c.Selection))
	for _, sel := range c.Selection {
		if sel.CharacterID == "" {
			warnings = append(warnings, "selection entry with empty characterId will be rejected")
			continue
		}
		if seen[sel.CharacterID] {
			warnings = append(warnings, fmt.Sprintf("character %s appears multiple times in the selection", sel.CharacterID))
		}
		seen[sel.CharacterID] = true
	}

	return warnings
}

// BuildRunInput resolves the configured selection against a profile
// snapshot into the optimizer's immutable run input.
func BuildRunInput(conf *Configuration, snap *profile.Snapshot) (optimizer.RunInput, error) {
	input := optimizer.RunInput{
		Roster:           snap.Characters,
		Inventory:        snap.Mods,
		ThresholdPercent: conf.Optimizer.ChangeThreshold,
		LockUnselected:   conf.Optimizer.LockUnselected,
	}

	if len(conf.Selection) == 0 {
		return optimizer.RunInput{}, fmt.Errorf("selection is empty, nothing to optimize")
	}

	for _, sel := range conf.Selection {
		ch, ok := snap.CharacterByID(sel.CharacterID)
		if !ok {
			return optimizer.RunInput{}, fmt.Errorf("selection references character %s not present in the profile", sel.CharacterID)
		}

		var target profile.Target
		if sel.Target == "" {
			if len(ch.Settings.Targets) == 0 {
				return optimizer.RunInput{}, fmt.Errorf("character %s has no targets configured", sel.CharacterID)
			}
			target = ch.Settings.Targets[0]
		} else {
			target, ok = ch.TargetByName(sel.Target)
			if !ok {
				return optimizer.RunInput{}, fmt.Errorf("character %s has no target named %s", sel.CharacterID, sel.Target)
			}
		}

		input.Priority = append(input.Priority, optimizer.PriorityEntry{
			CharacterID: sel.CharacterID,
			Target:      target,
		})
	}

	return input, nil
}
