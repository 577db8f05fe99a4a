// Package testutil provides shared helpers for tests.
package testutil

import (
	"testing"

	"github.com/nicanica/mods-optimizer/pkg/optimization"
)

// FindCharacterResult locates a character's entry in a run result, failing
// the test when absent.
func FindCharacterResult(t *testing.T, result *optimization.RunResult, characterID string) optimization.CharacterResult {
	t.Helper()
	for _, cr := range result.Characters {
		if cr.CharacterID == characterID {
			return cr
		}
	}
	t.Fatalf("character %s not found in run result", characterID)
	return optimization.CharacterResult{}
}
