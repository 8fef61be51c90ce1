package storage

import (
	"github.com/vjranagit/sensordat/pkg/types"
)

// Series holds every reading of a single sensor
type Series struct {
	ID string
	// Type is inferred from the first value and never re-evaluated
	Type    types.DataType
	entries []types.Entry
}

// Len returns the number of stored entries
func (s *Series) Len() int {
	return len(s.entries)
}

// Cap returns the current entry capacity
func (s *Series) Cap() int {
	return cap(s.entries)
}

// Entries returns the stored entries. The slice is owned by the series.
func (s *Series) Entries() []types.Entry {
	return s.entries
}

// Sort orders the entries by timestamp, newest first
func (s *Series) Sort() {
	SortDescending(s.entries)
}
