package storage

import (
	"cmp"
	"slices"

	"github.com/vjranagit/sensordat/pkg/types"
)

// SortDescending orders entries by timestamp, largest first.
// The sort is stable: readings sharing a timestamp keep their input order.
func SortDescending(entries []types.Entry) {
	slices.SortStableFunc(entries, func(a, b types.Entry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
}
