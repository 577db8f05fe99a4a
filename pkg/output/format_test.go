package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nicanica/mods-optimizer/pkg/optimization"
)

func sampleResult() *optimization.RunResult {
	return &optimization.RunResult{
		Characters: []optimization.CharacterResult{
			{
				CharacterID:   "cls",
				TargetName:    "speed",
				AssignedMods:  []string{"m1", "m2"},
				PreviousValue: 1000.5,
				AchievedValue: 1234.5,
				Changed:       true,
			},
			{
				CharacterID:   "gmy",
				TargetName:    "health",
				AssignedMods:  []string{"m3"},
				PreviousValue: 500,
				AchievedValue: 500,
				Message:       optimization.MessageInfeasible,
			},
		},
		Summary: optimization.Summary{TotalModsMoved: 2, UnassignedModCount: 3},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() { PrettyFormat(sampleResult()) })

	if !strings.Contains(output, "--- Optimization results ---") {
		t.Errorf("PrettyFormat missing header")
	}
	if !strings.Contains(output, "Character | Target | Previous | Achieved | Changed | Notes") {
		t.Errorf("PrettyFormat missing table header")
	}
	if !strings.Contains(output, "1,234.50") {
		t.Errorf("PrettyFormat should group thousands, got %q", output)
	}
	if !strings.Contains(output, "infeasible") {
		t.Errorf("PrettyFormat missing per-character message")
	}
	if !strings.Contains(output, "Mods moved: 2") {
		t.Errorf("PrettyFormat missing summary")
	}
	if !strings.Contains(output, "Mods left unassigned: 3") {
		t.Errorf("PrettyFormat missing unassigned count")
	}
	if strings.Contains(output, "cancelled") {
		t.Errorf("PrettyFormat should not mention cancellation for a completed run")
	}
}

func TestPrettyFormatCancelled(t *testing.T) {
	result := sampleResult()
	result.Summary.Cancelled = true

	output := captureStdout(t, func() { PrettyFormat(result) })
	if !strings.Contains(output, "cancelled") {
		t.Errorf("PrettyFormat missing cancellation notice, got %q", output)
	}
}

func TestPrettyFormatEmptyResults(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("PrettyFormat panicked with empty results: %v", r)
		}
	}()
	captureStdout(t, func() { PrettyFormat(&optimization.RunResult{}) })
}

func TestCsvString(t *testing.T) {
	output := CsvString(sampleResult())
	lines := strings.Split(strings.TrimSpace(output), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 data lines, got %d", len(lines))
	}

	expectedHeaderElements := []string{
		`"character"`, `"target"`, `"previousValue"`, `"achievedValue"`,
		`"changed"`, `"message"`, `"mods"`,
	}
	for _, element := range expectedHeaderElements {
		if !strings.Contains(lines[0], element) {
			t.Errorf("CsvString header missing: %s", element)
		}
	}

	if !strings.Contains(lines[1], `"m1,m2"`) {
		t.Errorf("CsvString should join assigned mods with commas, got %q", lines[1])
	}
	if !strings.Contains(lines[2], `"infeasible"`) {
		t.Errorf("CsvString missing message column, got %q", lines[2])
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	result := sampleResult()
	expected := CsvString(result)

	output := captureStdout(t, func() { CsvFormat(result) })
	if strings.TrimSpace(expected) != strings.TrimSpace(output) {
		t.Fatalf("CsvString and CsvFormat output mismatch\nCsvString:\n%s\nCsvFormat:\n%s", expected, output)
	}
}

func TestYamlString(t *testing.T) {
	output, err := YamlString(sampleResult())
	if err != nil {
		t.Fatalf("YamlString() error = %v", err)
	}

	expectedElements := []string{
		"characterId: cls",
		"targetName: speed",
		"achievedValue: 1234.5",
		"message: infeasible",
		"totalModsMoved: 2",
		"unassignedModCount: 3",
	}
	for _, element := range expectedElements {
		if !strings.Contains(output, element) {
			t.Errorf("YamlString missing %q in:\n%s", element, output)
		}
	}
}
