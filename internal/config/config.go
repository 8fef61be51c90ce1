package config

import (
	"fmt"

	"github.com/vjranagit/sensordat/pkg/parser"
	"github.com/vjranagit/sensordat/pkg/storage"
)

// Config holds the application configuration
type Config struct {
	Input    InputConfig    `json:"input"`
	Registry RegistryConfig `json:"registry"`
	Output   OutputConfig   `json:"output"`
}

// InputConfig holds line parsing configuration
type InputConfig struct {
	MaxLineBytes int `json:"max_line_bytes"`
	MaxIDLen     int `json:"max_id_len"`
	MaxValueLen  int `json:"max_value_len"`
}

// RegistryConfig holds sensor registry configuration
type RegistryConfig struct {
	MaxSensors      int `json:"max_sensors"`
	InitialCapacity int `json:"initial_capacity"`
	MaxEntries      int `json:"max_entries"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Dir string `json:"dir"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	lim := parser.DefaultLimits()
	reg := storage.DefaultConfig()

	return &Config{
		Input: InputConfig{
			MaxLineBytes: 1 << 20,
			MaxIDLen:     lim.MaxIDLen,
			MaxValueLen:  lim.MaxValueLen,
		},
		Registry: RegistryConfig{
			MaxSensors:      reg.MaxSensors,
			InitialCapacity: reg.InitialCapacity,
			MaxEntries:      reg.MaxEntries,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// ToStorageConfig converts to storage.Config
func (c *Config) ToStorageConfig() *storage.Config {
	return &storage.Config{
		MaxSensors:      c.Registry.MaxSensors,
		InitialCapacity: c.Registry.InitialCapacity,
		MaxEntries:      c.Registry.MaxEntries,
	}
}

// ToParserLimits converts to parser.Limits
func (c *Config) ToParserLimits() parser.Limits {
	return parser.Limits{
		MaxIDLen:    c.Input.MaxIDLen,
		MaxValueLen: c.Input.MaxValueLen,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Input.MaxLineBytes < 1 {
		return fmt.Errorf("max line bytes must be at least 1")
	}

	if c.Input.MaxIDLen < 0 || c.Input.MaxValueLen < 0 {
		return fmt.Errorf("field length limits cannot be negative")
	}

	if c.Registry.MaxSensors < 1 {
		return fmt.Errorf("max sensors must be at least 1")
	}

	if c.Registry.InitialCapacity < 1 {
		return fmt.Errorf("initial capacity must be at least 1")
	}

	if c.Registry.MaxEntries < 0 {
		return fmt.Errorf("max entries cannot be negative")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory is required")
	}

	return nil
}
