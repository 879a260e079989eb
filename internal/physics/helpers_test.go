package physics

import (
	"math/rand"
	"testing"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func newScene() *Scene {
	cfg := dynamo.DefaultConfig()
	return &Scene{
		World:  dynamo.NewWorld(),
		Config: &cfg,
		Table:  element.Default(),
		Rand:   rand.New(rand.NewSource(1)),
		Sink:   &particle.Counter{},
		Grid:   NewGrid(0),
		Drag:   dynamo.IDSet{},
	}
}

func spawn(t *testing.T, s *Scene, symbol string, x, y float64) *dynamo.Atom {
	t.Helper()
	e, ok := s.Table.BySymbol(symbol)
	if !ok {
		t.Fatalf("unknown symbol %s", symbol)
	}
	return s.World.Add(e, 0, r2.Vec{X: x, Y: y})
}

func reindex(s *Scene) {
	s.Grid.Rebuild(s.World.Atoms())
}

func momentum(w *dynamo.World) r2.Vec {
	var p r2.Vec
	for _, a := range w.Atoms() {
		p = r2.Add(p, r2.Scale(a.Mass, a.Vel))
	}
	return p
}

func combined(a, b *dynamo.Atom) float64 { return a.Radius + b.Radius }
