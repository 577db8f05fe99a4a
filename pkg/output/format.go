// Package output provides utilities for formatting and displaying
// optimization results.
package output

import (
	"fmt"
	"strings"

	"github.com/nicanica/mods-optimizer/pkg/format"
	"github.com/nicanica/mods-optimizer/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result *optimization.RunResult) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Optimization results ---\n")
	fmt.Printf("Character | Target | Previous | Achieved | Changed | Notes\n")
	fmt.Printf("_________ | ______ | ________ | ________ | _______ | _____\n")
	for _, cr := range result.Characters {
		notes := string(cr.Message)
		if len(cr.SuggestedSlices) > 0 {
			if notes != "" {
				notes += "; "
			}
			notes += fmt.Sprintf("slice %s", strings.Join(cr.SuggestedSlices, ","))
		}
		_, _ = p.Printf("%s | %s | %.2f | %.2f | %v | %s\n",
			cr.CharacterID, cr.TargetName,
			cr.PreviousValue, cr.AchievedValue,
			cr.Changed, notes)
	}

	_, _ = p.Printf("\nMods moved: %d\n", result.Summary.TotalModsMoved)
	_, _ = p.Printf("Mods left unassigned: %d\n", result.Summary.UnassignedModCount)
	if result.Summary.Cancelled {
		fmt.Printf("Run was cancelled; results above cover the characters processed before cancellation.\n")
	}
}

// CsvString renders the result in comma-separated value format.
func CsvString(result *optimization.RunResult) string {
	var b strings.Builder
	b.WriteString(`"character","target","previousValue","achievedValue","changed","message","mods","suggestedSlices"`)
	b.WriteString("\n")
	for _, cr := range result.Characters {
		fmt.Fprintf(&b, `"%s","%s","%s","%s","%v","%s","%s","%s"`,
			cr.CharacterID, cr.TargetName,
			format.Value(cr.PreviousValue), format.Value(cr.AchievedValue),
			cr.Changed, cr.Message,
			strings.Join(cr.AssignedMods, ","),
			strings.Join(cr.SuggestedSlices, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result *optimization.RunResult) {
	fmt.Print(CsvString(result))
}

// YamlString renders the full result, summary included, as YAML.
func YamlString(result *optimization.RunResult) (string, error) {
	raw, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to yaml, %s", err)
	}
	return string(raw), nil
}

// YamlFormat outputs the full result as YAML.
func YamlFormat(result *optimization.RunResult) error {
	s, err := YamlString(result)
	if err != nil {
		return err
	}
	fmt.Print(s)
	return nil
}
