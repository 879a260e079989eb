package physics

import (
	"log/slog"
	"math/rand"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

// Counters tallies chemistry events; the engine resets them every tick.
type Counters struct {
	Formed      int
	Broken      int
	Inserted    int
	Dissociated int
	Annealed    int
	Decayed     int
	Vanished    int
}

func (c *Counters) Reset() { *c = Counters{} }

type Scene struct {
	World  *dynamo.World
	Config *dynamo.Config
	Table  *element.Table
	Rand   *rand.Rand
	Sink   particle.Sink
	Grid   *Grid
	Log    *slog.Logger

	// Drag is the bond component of the anchored atom; Anchor is 0 when
	// nothing is dragged.
	Drag   dynamo.IDSet
	Anchor dynamo.AtomID

	Counters Counters
}

func (s *Scene) protected(a *dynamo.Atom) bool {
	return s.Drag.Has(a.ID)
}

// invMass is zero for the anchored atom so springs cannot pull it off the
// pointer.
func (s *Scene) invMass(a *dynamo.Atom) float64 {
	if s.Anchor != 0 && a.ID == s.Anchor {
		return 0
	}
	return a.InvMass()
}

func (s *Scene) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Log
}

func (s *Scene) burst(pos r2.Vec, color string) {
	if s.Sink == nil || s.Config.BurstSize <= 0 {
		return
	}
	particle.Burst(s.Sink, s.Rand, pos, color, s.Config.BurstSize)
}

// applyPair adds impulse to a and subtracts it from b, split by effective
// inverse mass so that m_a*dv_a == -m_b*dv_b.
func (s *Scene) applyPair(a, b *dynamo.Atom, impulse r2.Vec) {
	wa, wb := s.invMass(a), s.invMass(b)
	sum := wa + wb
	if sum == 0 {
		return
	}
	a.Vel = r2.Add(a.Vel, r2.Scale(wa/sum, impulse))
	b.Vel = r2.Sub(b.Vel, r2.Scale(wb/sum, impulse))
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < 1e-9 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}
