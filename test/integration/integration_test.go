package integration

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/nicanica/mods-optimizer/internal/config"
	"github.com/nicanica/mods-optimizer/internal/optimizer"
	"github.com/nicanica/mods-optimizer/internal/profile"
	"github.com/nicanica/mods-optimizer/pkg/output"
	"github.com/nicanica/mods-optimizer/pkg/testutil"
	"go.uber.org/zap"
)

// TestEndToEndRun exercises the full pipeline exactly as main() does:
// configuration, profile import, run input resolution, the optimizer run,
// and output rendering.
func TestEndToEndRun(t *testing.T) {
	conf, err := config.LoadConfiguration("testdata/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}

	raw, err := os.ReadFile(conf.ProfilePath)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	snapshot, err := profile.ParseSnapshot(raw)
	if err != nil {
		t.Fatalf("ParseSnapshot() error = %v", err)
	}

	input, err := config.BuildRunInput(conf, snapshot)
	if err != nil {
		t.Fatalf("BuildRunInput() error = %v", err)
	}

	runner := optimizer.NewRunner(zap.NewNop(), optimizer.Options{Workers: 1})
	result, err := runner.Run(context.Background(), input, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.Characters) != 2 {
		t.Fatalf("expected 2 character results, got %d", len(result.Characters))
	}
	if result.Summary.Cancelled {
		t.Error("run should complete without cancellation")
	}

	// cmdr is first in priority and takes the health-set pair: the set
	// bonus (10% of 20000 base health) dwarfs the raw-stat alternatives.
	cmdr := testutil.FindCharacterResult(t, result, "cmdr")
	if len(cmdr.AssignedMods) != 2 || cmdr.AssignedMods[0] != "h1" || cmdr.AssignedMods[1] != "h2" {
		t.Errorf("cmdr assignment = %v, expected [h1 h2]", cmdr.AssignedMods)
	}
	if !cmdr.Changed {
		t.Error("cmdr picked up unassigned mods and must be marked changed")
	}

	// tank gets the leftover raw-stat mods and drops its weaker equipment.
	tank := testutil.FindCharacterResult(t, result, "tank")
	if len(tank.AssignedMods) != 2 || tank.AssignedMods[0] != "r1" || tank.AssignedMods[1] != "r2" {
		t.Errorf("tank assignment = %v, expected [r1 r2]", tank.AssignedMods)
	}
	if tank.AchievedValue < tank.PreviousValue {
		t.Errorf("achieved %v below previous %v violates monotonicity", tank.AchievedValue, tank.PreviousValue)
	}

	// the locked npc keeps n1 out of the pool entirely
	for _, cr := range result.Characters {
		for _, id := range cr.AssignedMods {
			if id == "n1" {
				t.Error("locked character's mod leaked into the pool")
			}
		}
	}

	if result.Summary.TotalModsMoved != 4 {
		t.Errorf("TotalModsMoved = %d, expected 4", result.Summary.TotalModsMoved)
	}
	// tank's dropped t1 is the only mod left without an owner
	if result.Summary.UnassignedModCount != 1 {
		t.Errorf("UnassignedModCount = %d, expected 1", result.Summary.UnassignedModCount)
	}

	csv := output.CsvString(result)
	if !strings.Contains(csv, `"cmdr"`) || !strings.Contains(csv, `"h1,h2"`) {
		t.Errorf("CSV rendering missing expected content:\n%s", csv)
	}

	yamlOut, err := output.YamlString(result)
	if err != nil {
		t.Fatalf("YamlString() error = %v", err)
	}
	if !strings.Contains(yamlOut, "characterId: cmdr") {
		t.Errorf("YAML rendering missing expected content:\n%s", yamlOut)
	}
}
