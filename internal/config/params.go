package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gopkg.in/yaml.v3"
)

// physicsTree renders the physics tunables as the generic map yaml produces.
func (c *Config) physicsTree() (map[string]any, error) {
	data, err := yaml.Marshal(c.Physics)
	if err != nil {
		return nil, err
	}
	tree := make(map[string]any)
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// SetParam sets one numeric physics tunable by its yaml key. Nested keys are
// joined with dots, as in "gather.until". The result is validated.
func (c *Config) SetParam(key string, value float64) error {
	tree, err := c.physicsTree()
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	node := tree
	for _, p := range parts[:len(parts)-1] {
		next, ok := node[p].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidConfig, key)
		}
		node = next
	}
	leaf := parts[len(parts)-1]
	switch node[leaf].(type) {
	case int, float64:
		node[leaf] = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidConfig, key)
	}

	data, err := yaml.Marshal(tree)
	if err != nil {
		return err
	}
	phys := c.Physics
	if err := yaml.Unmarshal(data, &phys); err != nil {
		return fmt.Errorf("%w: %s=%g: %v", dynamo.ErrInvalidConfig, key, value, err)
	}
	if err := phys.Validate(); err != nil {
		return err
	}
	c.Physics = phys
	return nil
}

// ParamNames lists every numeric physics key SetParam accepts, sorted.
func ParamNames() []string {
	tree, err := DefaultConfig().physicsTree()
	if err != nil {
		return nil
	}
	var names []string
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			switch v := v.(type) {
			case map[string]any:
				walk(prefix+k+".", v)
			case int, float64:
				names = append(names, prefix+k)
			}
		}
	}
	walk("", tree)
	sort.Strings(names)
	return names
}
