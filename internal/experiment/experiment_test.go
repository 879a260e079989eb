package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestScenariosBuild(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.ListScenarios() {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Scenario = name
			cfg.Atoms = 12
			e, err := New(cfg, reg).Build(3)
			require.NoError(t, err)
			assert.Positive(t, e.Len())
			for _, a := range e.Atoms() {
				assert.GreaterOrEqual(t, a.Pos.X, 0.0)
				assert.LessOrEqual(t, a.Pos.X, cfg.Physics.Width)
			}
		})
	}
}

func TestUnknownScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "plasma"
	_, err := New(cfg, NewRegistry()).Build(1)
	assert.Error(t, err)
}

func TestRecipes(t *testing.T) {
	reg := NewRegistry()
	tests := []struct {
		name     string
		formula  string
		expected map[int]int
	}{
		{"water", "H2O", map[int]int{element.Hydrogen: 2, element.Oxygen: 1}},
		{"sulfuric_acid", "H2SO4", map[int]int{element.Hydrogen: 2, element.Sulfur: 1, element.Oxygen: 4}},
		{"phosphoric_acid", "H3PO4", map[int]int{element.Hydrogen: 3, element.Phosphorus: 1, element.Oxygen: 4}},
	}
	for _, tt := range tests {
		rc, err := reg.Recipe(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.formula, rc.Formula)
		counts := map[int]int{}
		for _, n := range rc.Ingredients {
			counts[n]++
		}
		assert.Equal(t, tt.expected, counts)
		assert.NotEqual(t, element.Hydrogen, rc.Ingredients[0], "hydrogen should not sit at the spiral center")
	}
	_, err := reg.Recipe("ethanol")
	assert.Error(t, err)
	assert.Len(t, reg.ListRecipes(), 6)
}

func TestRecipeForms(t *testing.T) {
	e, err := sim.New(config.DefaultConfig().Physics)
	require.NoError(t, err)
	rc, _ := NewRegistry().Recipe("methane")

	_, err = e.TriggerRecipe(r2.Vec{X: 400, Y: 300}, rc.Ingredients)
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		e.Tick()
	}
	assert.GreaterOrEqual(t, len(e.Bonds()), 2)
}

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scenario = "water"
	cfg.Atoms = 18
	cfg.Ticks = 40
	cfg.Metrics = []string{"bonds", "energy"}

	exp := New(cfg, NewRegistry())
	_, err := exp.Run(context.Background())
	require.Error(t, err, "run before setup")

	require.NoError(t, exp.Setup())
	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, res.TicksTaken)
	assert.Contains(t, res.Metrics, "bonds")
	assert.Contains(t, res.Metrics, "energy")
	assert.Equal(t, float64(res.Final.Bonds), res.Metrics["bonds"])
}

func TestExperimentUnknownMetric(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Metrics = []string{"entropy"}
	assert.Error(t, New(cfg, NewRegistry()).Setup())
}

func TestExperimentEnsemble(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Atoms = 10
	cfg.Ticks = 15

	results, err := New(cfg, NewRegistry()).Ensemble(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 15, r.TicksTaken)
		assert.NotEmpty(t, r.Metrics)
	}
}
