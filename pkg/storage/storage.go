package storage

import "errors"

var (
	// ErrRegistryFull is returned when a new sensor id arrives after the
	// registry already holds MaxSensors series.
	ErrRegistryFull = errors.New("sensor registry full")

	// ErrAllocation is returned when entry storage cannot grow within the
	// configured budget. It is fatal for the run.
	ErrAllocation = errors.New("entry allocation failed")
)

// Config holds registry configuration
type Config struct {
	MaxSensors      int
	InitialCapacity int
	// MaxEntries caps the total number of entry slots allocated across all
	// series. Zero means unlimited.
	MaxEntries int
}

// DefaultConfig returns default registry configuration
func DefaultConfig() *Config {
	return &Config{
		MaxSensors:      100,
		InitialCapacity: 10,
		MaxEntries:      0,
	}
}
