package experiment

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// Recipe is an ingredient list for Engine.TriggerRecipe.
type Recipe struct {
	Name        string
	Formula     string
	Ingredients []int
}

// Scenario lays out the initial atoms of a run. n is the requested
// population; scenarios built from recipes treat it as a molecule budget.
type Scenario struct {
	Name        string
	Description string
	Setup       func(e *sim.Engine, rng *rand.Rand, n int) error
}

type Registry struct {
	scenarios map[string]Scenario
	recipes   map[string]Recipe
}

func recipe(name, formula string, counts map[int]int) Recipe {
	numbers := make([]int, 0, len(counts))
	for n := range counts {
		numbers = append(numbers, n)
	}
	// heavier centers first so hydrogens land on the outer spiral
	sort.Sort(sort.Reverse(sort.IntSlice(numbers)))
	var ingredients []int
	for _, n := range numbers {
		for i := 0; i < counts[n]; i++ {
			ingredients = append(ingredients, n)
		}
	}
	return Recipe{Name: name, Formula: formula, Ingredients: ingredients}
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]Scenario),
		recipes:   make(map[string]Recipe),
	}

	for _, rc := range []Recipe{
		recipe("water", "H2O", map[int]int{element.Hydrogen: 2, element.Oxygen: 1}),
		recipe("methane", "CH4", map[int]int{element.Hydrogen: 4, element.Carbon: 1}),
		recipe("ammonia", "NH3", map[int]int{element.Hydrogen: 3, element.Nitrogen: 1}),
		recipe("carbon_dioxide", "CO2", map[int]int{element.Carbon: 1, element.Oxygen: 2}),
		recipe("sulfuric_acid", "H2SO4", map[int]int{element.Hydrogen: 2, element.Sulfur: 1, element.Oxygen: 4}),
		recipe("phosphoric_acid", "H3PO4", map[int]int{element.Hydrogen: 3, element.Phosphorus: 1, element.Oxygen: 4}),
	} {
		r.recipes[rc.Name] = rc
	}

	r.scenarios["soup"] = Scenario{
		Name:        "soup",
		Description: "random mix of H, C, N and O drifting over the canvas",
		Setup: func(e *sim.Engine, rng *rand.Rand, n int) error {
			mix := []int{element.Hydrogen, element.Hydrogen, element.Hydrogen, element.Carbon, element.Nitrogen, element.Oxygen, element.Oxygen}
			return scatter(e, rng, n, func(int) int { return mix[rng.Intn(len(mix))] }, 3)
		},
	}
	r.scenarios["water"] = Scenario{
		Name:        "water",
		Description: "hydrogen and oxygen in a 2:1 ratio",
		Setup: func(e *sim.Engine, rng *rand.Rand, n int) error {
			return scatter(e, rng, n, func(i int) int {
				if i%3 == 0 {
					return element.Oxygen
				}
				return element.Hydrogen
			}, 1.5)
		},
	}
	r.scenarios["methane"] = Scenario{
		Name:        "methane",
		Description: "carbon and hydrogen in a 1:4 ratio",
		Setup: func(e *sim.Engine, rng *rand.Rand, n int) error {
			return scatter(e, rng, n, func(i int) int {
				if i%5 == 0 {
					return element.Carbon
				}
				return element.Hydrogen
			}, 1.5)
		},
	}
	r.scenarios["acid"] = Scenario{
		Name:        "acid",
		Description: "sulfuric and phosphoric acid synthesized by gravity wells",
		Setup: func(e *sim.Engine, rng *rand.Rand, n int) error {
			cfg := e.Config()
			w, h := canvas(cfg)
			centers := []r2.Vec{{X: w * 0.3, Y: h * 0.5}, {X: w * 0.7, Y: h * 0.5}}
			for i, name := range []string{"sulfuric_acid", "phosphoric_acid"} {
				if _, err := e.TriggerRecipe(centers[i], r.recipes[name].Ingredients); err != nil {
					return err
				}
			}
			return nil
		},
	}
	r.scenarios["decay"] = Scenario{
		Name:        "decay",
		Description: "short-lived isotopes decaying inside small molecules",
		Setup: func(e *sim.Engine, rng *rand.Rand, n int) error {
			table := e.Table()
			var unstable [][2]int
			for _, num := range table.Numbers() {
				el, _ := table.Lookup(num)
				for idx, iso := range el.Isotopes {
					if !iso.Stable() && iso.HalfLife > 1 {
						unstable = append(unstable, [2]int{num, idx})
					}
				}
			}
			if len(unstable) == 0 {
				return fmt.Errorf("decay scenario: %w", dynamo.ErrNoAtoms)
			}
			w, h := canvas(e.Config())
			for i := 0; i < n; i++ {
				pick := unstable[rng.Intn(len(unstable))]
				number, iso := pick[0], pick[1]
				if i%2 == 1 {
					number, iso = element.Hydrogen, 0
				}
				pos := r2.Vec{X: 40 + rng.Float64()*(w-80), Y: 40 + rng.Float64()*(h-80)}
				if _, err := e.Spawn(pos, number, iso); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return r
}

func canvas(cfg dynamo.Config) (float64, float64) {
	if cfg.Bounded() {
		return cfg.Width, cfg.Height
	}
	return 800, 600
}

// scatter spawns n atoms at random spots with random headings.
func scatter(e *sim.Engine, rng *rand.Rand, n int, pick func(i int) int, speed float64) error {
	w, h := canvas(e.Config())
	for i := 0; i < n; i++ {
		pos := r2.Vec{X: 40 + rng.Float64()*(w-80), Y: 40 + rng.Float64()*(h-80)}
		id, err := e.Spawn(pos, pick(i), 0)
		if err != nil {
			return err
		}
		angle := rng.Float64() * 2 * math.Pi
		if err := e.Kick(id, r2.Vec{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) Scenario(name string) (Scenario, error) {
	s, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return s, nil
}

func (r *Registry) Recipe(name string) (Recipe, error) {
	rc, ok := r.recipes[name]
	if !ok {
		return Recipe{}, fmt.Errorf("unknown recipe: %s", name)
	}
	return rc, nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListRecipes() []string {
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
