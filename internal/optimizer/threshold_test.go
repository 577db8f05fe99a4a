package optimizer

import "testing"

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		proposed  float64
		threshold float64
		expected  Decision
	}{
		{"No improvement keeps current", 100, 100, 0, DecisionKeep},
		{"Regression keeps current", 100, 99, 0, DecisionKeep},
		{"Any improvement adopted at zero threshold", 100, 100.01, 0, DecisionAdopt},
		{"Improvement above threshold", 100, 110, 5, DecisionAdopt},
		{"Improvement exactly at threshold", 100, 105, 5, DecisionAdopt},
		{"Improvement below threshold", 100, 104, 5, DecisionKeep},
		{"Zero current value always clears the bar", 0, 50, 10, DecisionAdopt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.current, tt.proposed, tt.threshold); got != tt.expected {
				t.Errorf("Decide(%v, %v, %v) = %v, expected %v",
					tt.current, tt.proposed, tt.threshold, got, tt.expected)
			}
		})
	}
}
