// Package format provides display formatting for stat values.
package format

import (
	"fmt"

	"github.com/nicanica/mods-optimizer/pkg/statvalue"
)

// Stat returns a display string for a stat value, e.g. "+5.88% health" or
// "+17 speed".
func Stat(v statvalue.Value) string {
	sign := "+"
	amount := v.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if v.Kind == statvalue.KindPercent {
		return fmt.Sprintf("%s%.2f%% %s", sign, amount, v.Stat)
	}
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%s%d %s", sign, int64(amount), v.Stat)
	}
	return fmt.Sprintf("%s%.2f %s", sign, amount, v.Stat)
}

// Value returns a numeric score string rounded to two decimals with no
// trailing noise, e.g. "1234.57".
func Value(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Percent returns a percentage string, e.g. "12.50%".
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
