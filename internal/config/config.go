// Package config loads the driver's tunable constants: the reverse-
// execution history ring capacity, the step-count safety cap, and the
// milliseconds-per-tick conversion Thread.sleep uses, per spec.md
// §4.4/§4.6/§5. A missing or empty path yields the same defaults the
// interpreter and driver already use when unconfigured.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Defaults matching spec.md §4.4 step 2 (history capacity), §4.6 (the
// driver's safety cap on Run), and §5 (50ms per simulated tick).
const (
	DefaultHistoryCapacity = 500
	DefaultMaxSteps        = 50000
	DefaultMsPerTick       = 50
)

// Config is the YAML shape read from a --config file.
type Config struct {
	HistoryCapacity int `yaml:"historyCapacity"`
	MaxSteps        int `yaml:"maxSteps"`
	MsPerTick       int `yaml:"msPerTick"`
}

// Default returns the configuration the simulator runs with when no file
// is supplied.
func Default() *Config {
	return &Config{
		HistoryCapacity: DefaultHistoryCapacity,
		MaxSteps:        DefaultMaxSteps,
		MsPerTick:       DefaultMsPerTick,
	}
}

// Load reads and validates a YAML config file at path, filling in defaults
// for any field the file omits. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	loaded := struct {
		HistoryCapacity *int `yaml:"historyCapacity"`
		MaxSteps        *int `yaml:"maxSteps"`
		MsPerTick       *int `yaml:"msPerTick"`
	}{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if loaded.HistoryCapacity != nil {
		cfg.HistoryCapacity = *loaded.HistoryCapacity
	}
	if loaded.MaxSteps != nil {
		cfg.MaxSteps = *loaded.MaxSteps
	}
	if loaded.MsPerTick != nil {
		cfg.MsPerTick = *loaded.MsPerTick
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects non-positive tunables; a zero or negative capacity,
// cap, or tick width would make the ring/driver/scheduler behave
// unpredictably rather than simply "off".
func (c *Config) Validate() error {
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("historyCapacity must be positive, got %d", c.HistoryCapacity)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("maxSteps must be positive, got %d", c.MaxSteps)
	}
	if c.MsPerTick <= 0 {
		return fmt.Errorf("msPerTick must be positive, got %d", c.MsPerTick)
	}
	return nil
}
