package timerview

import (
	"fmt"
	"time"

	"pigstimer/internal/core/timer"
	"pigstimer/internal/ui/display"
)

func elapsedFraction(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return 1 - float64(remaining)/float64(total)
}

func historySummary(summary timer.Summary) string {
	if summary.Count == 0 {
		return "History: " + display.NoValue
	}
	return fmt.Sprintf("History: %d intervals, mean %s", summary.Count, display.FormatDuration(summary.Mean, true))
}
