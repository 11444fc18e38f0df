package display

import (
	"fmt"
	"time"
)

// NoValue is shown in place of a duration that is not set.
const NoValue = "-"

// FormatDuration renders value as MM:SS, or NoValue when ok is false.
// Negative values render as 00:00.
func FormatDuration(value time.Duration, ok bool) string {
	if !ok {
		return NoValue
	}
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
