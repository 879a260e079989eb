package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(dynamo.DefaultConfig(), opts...)
	require.NoError(t, err)
	return e
}

func mustSpawn(t *testing.T, e *Engine, number int, x, y float64) dynamo.AtomID {
	t.Helper()
	id, err := e.Spawn(r2.Vec{X: x, Y: y}, number, 0)
	require.NoError(t, err)
	return id
}

// soup scatters a reactive mix over the canvas.
func soup(t *testing.T, e *Engine, n int) {
	t.Helper()
	mix := []int{element.Hydrogen, element.Hydrogen, element.Oxygen, element.Carbon, element.Nitrogen, element.Phosphorus}
	for i := 0; i < n; i++ {
		x := 60 + float64(i%10)*60
		y := 60 + float64(i/10)*60
		id := mustSpawn(t, e, mix[i%len(mix)], x, y)
		a, _ := e.world.Get(id)
		a.Vel = r2.Vec{X: e.rng.Float64()*6 - 3, Y: e.rng.Float64()*6 - 3}
	}
}

func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	for _, a := range e.world.Atoms() {
		require.LessOrEqual(t, a.BondCount(), a.Capacity(), "atom %d (%s) over capacity", a.ID, a.Element.Symbol)
		for _, b := range a.Bonds {
			require.Equal(t, b.Order, e.world.BondOrder(b.Partner, a.ID), "asymmetric bond %d-%d", a.ID, b.Partner)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := dynamo.DefaultConfig()
	cfg.Substeps = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)
}

func TestSpawnValidation(t *testing.T) {
	e := newEngine(t)

	_, err := e.Spawn(r2.Vec{}, 999, 0)
	assert.ErrorIs(t, err, dynamo.ErrUnknownElement)

	_, err = e.Spawn(r2.Vec{}, element.Hydrogen, 42)
	assert.ErrorIs(t, err, dynamo.ErrUnknownIsotope)
	assert.Zero(t, e.Len())

	id := mustSpawn(t, e, element.Oxygen, 100, 100)
	v, ok := e.Atom(id)
	require.True(t, ok)
	assert.Equal(t, "O", v.Symbol)
	assert.InDelta(t, dynamo.Radius(v.Mass), v.Radius, 1e-12)
}

func TestDelete(t *testing.T) {
	e := newEngine(t)
	h := mustSpawn(t, e, element.Hydrogen, 100, 100)
	o := mustSpawn(t, e, element.Oxygen, 130, 100)
	e.world.AddBond(h, o)

	require.NoError(t, e.Delete(o))
	assert.ErrorIs(t, e.Delete(o), dynamo.ErrAtomNotFound)

	v, _ := e.Atom(h)
	assert.Empty(t, v.Bonds)
}

func TestPick(t *testing.T) {
	e := newEngine(t)
	h := mustSpawn(t, e, element.Hydrogen, 100, 100)
	o := mustSpawn(t, e, element.Oxygen, 200, 100)

	id, ok := e.Pick(r2.Vec{X: 190, Y: 104}, 4)
	require.True(t, ok)
	assert.Equal(t, o, id)

	id, ok = e.Pick(r2.Vec{X: 101, Y: 100}, 0)
	require.True(t, ok)
	assert.Equal(t, h, id)

	_, ok = e.Pick(r2.Vec{X: 150, Y: 300}, 10)
	assert.False(t, ok)
}

func TestClearAll(t *testing.T) {
	e := newEngine(t)
	soup(t, e, 12)
	_, err := e.TriggerWell([]dynamo.AtomID{1, 2}, r2.Vec{X: 200, Y: 200})
	require.NoError(t, err)
	require.NoError(t, e.SetDragTarget(3))

	e.ClearAll()
	assert.Zero(t, e.Len())
	assert.Empty(t, e.Wells())
	assert.Zero(t, e.DragAnchor())
	assert.Empty(t, e.DragGroup())
}

func TestDragFollowsGoal(t *testing.T) {
	e := newEngine(t)
	h := mustSpawn(t, e, element.Hydrogen, 100, 300)
	o := mustSpawn(t, e, element.Oxygen, 127, 300)
	e.world.AddBond(h, o)

	require.NoError(t, e.SetDragTarget(h))
	assert.ElementsMatch(t, []dynamo.AtomID{h, o}, e.DragGroup())

	goal := r2.Vec{X: 400, Y: 300}
	for i := 0; i < 60; i++ {
		e.SetDragGoal(goal)
		e.Tick()
	}
	anchor, _ := e.Atom(h)
	partner, _ := e.Atom(o)
	assert.Less(t, r2.Norm(r2.Sub(anchor.Pos, goal)), 20.0)
	assert.Greater(t, partner.Pos.X, 300.0, "partner left behind")
	assert.Equal(t, 1, e.BondOrder(h, o))
	assert.True(t, anchor.Dragged)
}

func TestDragAnchorLost(t *testing.T) {
	table := element.NewTable(
		element.Element{Number: 1, Symbol: "H", Valence: 1, Electrons: 1, Covalent: true, Isotopes: []element.Isotope{{Mass: 1.008}}},
		element.Element{Number: 2, Symbol: "Xx", Valence: 2, Electrons: 2, Isotopes: []element.Isotope{
			{Mass: 10, HalfLife: 1e-12, Mode: element.BetaMinus, Product: 99},
		}},
	)
	e := newEngine(t, WithTable(table))
	x := mustSpawn(t, e, 2, 200, 200)
	require.NoError(t, e.SetDragTarget(x))
	e.SetDragGoal(r2.Vec{X: 300, Y: 300})

	assert.NotPanics(t, func() { e.Tick() })
	assert.Zero(t, e.DragAnchor())
	assert.Zero(t, e.Len())
	assert.Equal(t, 1, e.Last().Vanished)
}

func TestSetDragTargetUnknown(t *testing.T) {
	e := newEngine(t)
	assert.ErrorIs(t, e.SetDragTarget(77), dynamo.ErrAtomNotFound)
	assert.Zero(t, e.DragAnchor())
}

func TestLassoSelectsWholeMolecules(t *testing.T) {
	e := newEngine(t)
	o := mustSpawn(t, e, element.Oxygen, 200, 200)
	h1 := mustSpawn(t, e, element.Hydrogen, 225, 210)
	h2 := mustSpawn(t, e, element.Hydrogen, 175, 210)
	e.world.AddBond(o, h1)
	e.world.AddBond(o, h2)
	outside := mustSpawn(t, e, element.Carbon, 500, 500)

	e.BeginLasso(r2.Vec{X: 190, Y: 190})
	e.ExtendLasso(r2.Vec{X: 210, Y: 190})
	e.ExtendLasso(r2.Vec{X: 210, Y: 205})
	e.ExtendLasso(r2.Vec{X: 190, Y: 205})
	assert.Len(t, e.Lasso(), 4)

	id, err := e.EndLasso()
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, []dynamo.AtomID{o, h1, h2}, e.Selection())
	assert.NotContains(t, e.Selection(), outside)
	assert.Nil(t, e.Lasso())

	wells := e.Wells()
	require.Len(t, wells, 1)
	assert.Equal(t, 3, wells[0].Targets)
}

func TestLassoEmpty(t *testing.T) {
	e := newEngine(t)
	mustSpawn(t, e, element.Carbon, 500, 500)

	_, err := e.EndLasso()
	assert.ErrorIs(t, err, dynamo.ErrNoAtoms)

	e.BeginLasso(r2.Vec{})
	e.ExtendLasso(r2.Vec{X: 10})
	e.ExtendLasso(r2.Vec{X: 10, Y: 10})
	_, err = e.EndLasso()
	assert.ErrorIs(t, err, dynamo.ErrNoAtoms)
	assert.Empty(t, e.Wells())
}

func TestInsidePolygon(t *testing.T) {
	square := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	tests := []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{X: 5, Y: 5}, true},
		{r2.Vec{X: 15, Y: 5}, false},
		{r2.Vec{X: -1, Y: 5}, false},
		{r2.Vec{X: 5, Y: 11}, false},
	}
	for _, tt := range tests {
		if got := insidePolygon(tt.p, square); got != tt.want {
			t.Errorf("insidePolygon(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestTriggerRecipe(t *testing.T) {
	counter := &particle.Counter{}
	e := newEngine(t, WithParticleSink(counter))
	center := r2.Vec{X: 400, Y: 300}

	ids, err := e.TriggerRecipe(center, []int{element.Oxygen, element.Hydrogen, element.Hydrogen})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	require.Len(t, e.Wells(), 1)

	ticks := e.Config().WellDuration/e.Config().Substeps + 1
	for i := 0; i < ticks; i++ {
		e.Tick()
		checkInvariants(t, e)
	}
	assert.Empty(t, e.Wells())
	assert.Positive(t, len(e.Bonds()), "recipe produced no bonds")
}

func TestTriggerRecipeUnknownIngredient(t *testing.T) {
	e := newEngine(t)
	_, err := e.TriggerRecipe(r2.Vec{X: 100, Y: 100}, []int{element.Oxygen, 250})
	assert.ErrorIs(t, err, dynamo.ErrUnknownElement)
	assert.Zero(t, e.Len())
	assert.Empty(t, e.Wells())
}

func TestTriggerWellDropsUnknown(t *testing.T) {
	e := newEngine(t)
	_, err := e.TriggerWell([]dynamo.AtomID{5, 6}, r2.Vec{})
	assert.ErrorIs(t, err, dynamo.ErrNoAtoms)
}

func TestContainment(t *testing.T) {
	e := newEngine(t)
	id := mustSpawn(t, e, element.Carbon, 20, 580)
	a, _ := e.world.Get(id)
	a.Vel = r2.Vec{X: -10, Y: 10}

	for i := 0; i < 10; i++ {
		e.Tick()
	}
	cfg := e.Config()
	assert.GreaterOrEqual(t, a.Pos.X, a.Radius)
	assert.LessOrEqual(t, a.Pos.Y, cfg.Height-a.Radius)
}

func TestSetTimeScale(t *testing.T) {
	e := newEngine(t)
	assert.ErrorIs(t, e.SetTimeScale(-1), dynamo.ErrInvalidConfig)
	assert.ErrorIs(t, e.SetTimeScale(math.NaN()), dynamo.ErrInvalidConfig)
	require.NoError(t, e.SetTimeScale(0))

	be, _ := e.table.BySymbol("Be")
	e.world.Add(be, 2, r2.Vec{X: 100, Y: 100})
	e.Tick()
	assert.Zero(t, e.Last().Decayed, "frozen clock still decayed")

	require.NoError(t, e.SetTimeScale(1))
	e.Tick()
	assert.Equal(t, 1, e.Last().Decayed)
}

func TestInvariantsHoldOverSoup(t *testing.T) {
	e := newEngine(t, WithSeed(7))
	soup(t, e, 60)
	for i := 0; i < 120; i++ {
		e.Tick()
		checkInvariants(t, e)
	}
	require.NoError(t, e.Validate())
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []AtomView {
		e := newEngine(t, WithSeed(42))
		soup(t, e, 30)
		for i := 0; i < 50; i++ {
			e.Tick()
		}
		return e.Atoms()
	}
	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Pos, b[i].Pos)
		assert.Equal(t, a[i].Bonds, b[i].Bonds)
	}
}

func TestObserverReceivesStats(t *testing.T) {
	var ticks []int
	e := newEngine(t, WithObserver(ObserverFunc(func(s Stats) { ticks = append(ticks, s.Tick) })))
	mustSpawn(t, e, element.Hydrogen, 100, 100)
	for i := 0; i < 3; i++ {
		e.Tick()
	}
	assert.Equal(t, []int{1, 2, 3}, ticks)
	assert.Equal(t, 3, e.TickCount())
}

func TestValidateReportsNonFinite(t *testing.T) {
	e := newEngine(t)
	id := mustSpawn(t, e, element.Hydrogen, 100, 100)
	a, _ := e.world.Get(id)
	a.Vel.X = math.Inf(1)

	err := e.Validate()
	require.Error(t, err)
	var se *dynamo.SimError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, id, se.Atom)
	assert.ErrorIs(t, err, dynamo.ErrInvalidState)
}
