// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/nicanica/mods-optimizer/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q; expected one of %s, %s, %s",
			format, constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatYAML)
	}
}

// ValidatePips checks that a pip count is within the valid range.
func ValidatePips(pips int) error {
	if pips < constants.MinPips || pips > constants.MaxPips {
		return fmt.Errorf("pip count %d outside valid range %d-%d", pips, constants.MinPips, constants.MaxPips)
	}
	return nil
}

// ValidateThreshold checks that a change threshold percentage is sane.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 {
		return fmt.Errorf("change threshold must not be negative, got %v", threshold)
	}
	return nil
}
