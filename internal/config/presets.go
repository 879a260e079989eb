package config

import "sort"

func preset(scenario string, fn func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scenario
	fn(c)
	return c
}

var Presets = map[string]map[string]*Config{
	"soup": {
		"small": preset("soup", func(c *Config) { c.Atoms = 20 }),
		"crowded": preset("soup", func(c *Config) {
			c.Atoms = 120
			c.Physics.Substeps = 10
		}),
		"hot": preset("soup", func(c *Config) {
			c.Atoms = 60
			c.Physics.Friction = 0.999
			c.Physics.MaxSpeed = 16
		}),
	},
	"water": {
		"default": preset("water", func(c *Config) { c.Atoms = 24 }),
		"sticky": preset("water", func(c *Config) {
			c.Atoms = 24
			c.Physics.BondStiffness = 0.35
		}),
	},
	"methane": {
		"default": preset("methane", func(c *Config) { c.Atoms = 25 }),
	},
	"acid": {
		"default": preset("acid", func(c *Config) { c.Ticks = 900 }),
	},
	"decay": {
		"slow": preset("decay", func(c *Config) { c.Physics.TimeScale = 60 }),
		"fast": preset("decay", func(c *Config) { c.Physics.TimeScale = 3600 }),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	byName, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := byName[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(scenario string) []string {
	byName, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
