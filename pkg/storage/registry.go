package storage

import (
	"fmt"
	"iter"

	"github.com/vjranagit/sensordat/pkg/inference"
	"github.com/vjranagit/sensordat/pkg/types"
)

// Registry maps sensor ids to their series.
// It is not safe for concurrent use.
type Registry struct {
	cfg *Config
	// Maps sensor id to its series
	series map[string]*Series
	// Series in first-seen order
	order []*Series
	// Entry slots allocated across all series
	allocated int
}

// NewRegistry creates a new registry
func NewRegistry(cfg *Config) *Registry {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Registry{
		cfg:    cfg,
		series: make(map[string]*Series),
	}
}

// FindOrCreate returns the series for id, creating it if needed.
// firstValue is only used to infer the type of a new series.
func (r *Registry) FindOrCreate(id, firstValue string) (*Series, error) {
	// Check if series already exists
	if s, exists := r.series[id]; exists {
		return s, nil
	}

	if len(r.order) >= r.cfg.MaxSensors {
		return nil, fmt.Errorf("%w: %d sensors, rejecting %q", ErrRegistryFull, r.cfg.MaxSensors, id)
	}

	initial := max(r.cfg.InitialCapacity, 1)
	if err := r.reserve(initial); err != nil {
		return nil, fmt.Errorf("%w: creating sensor %q", err, id)
	}

	s := &Series{
		ID:      id,
		Type:    inference.Infer(firstValue),
		entries: make([]types.Entry, 0, initial),
	}

	r.series[id] = s
	r.order = append(r.order, s)

	return s, nil
}

// Get retrieves a series by id
func (r *Registry) Get(id string) (*Series, bool) {
	s, ok := r.series[id]
	return s, ok
}

// Append adds an entry to s, doubling its capacity when it is full
func (r *Registry) Append(s *Series, e types.Entry) error {
	if len(s.entries) == cap(s.entries) {
		if err := r.grow(s); err != nil {
			return err
		}
	}

	s.entries = append(s.entries, e)
	return nil
}

// grow reallocates the entries of s at twice the capacity
func (r *Registry) grow(s *Series) error {
	oldCap := cap(s.entries)
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = max(r.cfg.InitialCapacity, 1)
	}

	if err := r.reserve(newCap - oldCap); err != nil {
		return fmt.Errorf("%w: growing sensor %q to %d entries", err, s.ID, newCap)
	}

	grown := make([]types.Entry, len(s.entries), newCap)
	copy(grown, s.entries)
	s.entries = grown

	return nil
}

// reserve charges n entry slots against the allocation budget
func (r *Registry) reserve(n int) error {
	if r.cfg.MaxEntries > 0 && r.allocated+n > r.cfg.MaxEntries {
		return fmt.Errorf("%w: %d of %d slots in use, %d more requested",
			ErrAllocation, r.allocated, r.cfg.MaxEntries, n)
	}
	r.allocated += n
	return nil
}

// Release drops the entries of s once they have been written.
// The series stays registered with zero entries.
func (r *Registry) Release(s *Series) {
	r.allocated -= cap(s.entries)
	s.entries = nil
}

// All yields every series in first-seen order
func (r *Registry) All() iter.Seq[*Series] {
	return func(yield func(*Series) bool) {
		for _, s := range r.order {
			if !yield(s) {
				return
			}
		}
	}
}

// Len returns the number of registered series
func (r *Registry) Len() int {
	return len(r.order)
}

// EntryCount returns the number of entries across all series
func (r *Registry) EntryCount() int {
	n := 0
	for _, s := range r.order {
		n += len(s.entries)
	}
	return n
}

// Allocated returns the number of entry slots currently allocated
func (r *Registry) Allocated() int {
	return r.allocated
}
