package timer

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// History is the append-only log of started countdown durations.
type History struct {
	mu      sync.Mutex
	entries []time.Duration
}

// Summary aggregates the history for display.
type Summary struct {
	Count int
	Total time.Duration
	Mean  time.Duration
}

// Append records a duration.
func (history *History) Append(duration time.Duration) {
	history.mu.Lock()
	defer history.mu.Unlock()
	history.entries = append(history.entries, duration)
}

// Entries returns a copy of the log in insertion order.
func (history *History) Entries() []time.Duration {
	history.mu.Lock()
	defer history.mu.Unlock()
	return append([]time.Duration(nil), history.entries...)
}

// At returns the entry at index.
func (history *History) At(index int) time.Duration {
	history.mu.Lock()
	defer history.mu.Unlock()
	return history.entries[index]
}

// Len returns the number of entries.
func (history *History) Len() int {
	history.mu.Lock()
	defer history.mu.Unlock()
	return len(history.entries)
}

// Summary returns count, total and mean of the recorded durations.
func (history *History) Summary() Summary {
	history.mu.Lock()
	defer history.mu.Unlock()
	if len(history.entries) == 0 {
		return Summary{}
	}
	values := make([]float64, len(history.entries))
	var total time.Duration
	for i, entry := range history.entries {
		values[i] = float64(entry)
		total += entry
	}
	return Summary{
		Count: len(history.entries),
		Total: total,
		Mean:  time.Duration(stat.Mean(values, nil)),
	}
}
