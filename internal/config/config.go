package config

import (
	"fmt"
	"os"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario = "soup"
	DefaultTicks    = 600
	DefaultAtoms    = 40
	DefaultSeed     = 1
)

// Config describes one headless run: which scenario to lay out, how long to
// tick it and the physics tunables to use.
type Config struct {
	Scenario string        `yaml:"scenario"`
	Seed     int64         `yaml:"seed"`
	Ticks    int           `yaml:"ticks"`
	Atoms    int           `yaml:"atoms"`
	Validate bool          `yaml:"validate"`
	Metrics  []string      `yaml:"metrics,omitempty"`
	Physics  dynamo.Config `yaml:"physics"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Seed:     DefaultSeed,
		Ticks:    DefaultTicks,
		Atoms:    DefaultAtoms,
		Validate: true,
		Physics:  dynamo.DefaultConfig(),
	}
}

// Load reads a yaml file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Check validates the run settings and the physics tunables.
func (c *Config) Check() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, c.Ticks)
	}
	if c.Atoms < 0 {
		return fmt.Errorf("%w: atoms must not be negative, got %d", dynamo.ErrInvalidConfig, c.Atoms)
	}
	return c.Physics.Validate()
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Metrics = append([]string(nil), c.Metrics...)
	return &out
}
