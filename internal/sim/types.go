package sim

import (
	"github.com/san-kum/atomsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Stats summarizes the world after one tick.
type Stats struct {
	Tick      int
	Atoms     int
	Bonds     int
	Molecules int // bonded groups of two or more atoms
	Wells     int

	KineticEnergy float64
	MaxSpeed      float64
	Momentum      r2.Vec

	Formed      int
	Broken      int
	Inserted    int
	Dissociated int
	Annealed    int
	Decayed     int
	Vanished    int
}

// Reactions is the number of bond-graph events of the tick.
func (s Stats) Reactions() int {
	return s.Formed + s.Broken + s.Inserted + s.Dissociated + s.Annealed
}

type Metric interface {
	Name() string
	Observe(s Stats)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Stats)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(Stats)

func (f ObserverFunc) OnTick(s Stats) { f(s) }

// AtomView is a read-only copy of one atom for renderers.
type AtomView struct {
	ID       dynamo.AtomID
	Pos      r2.Vec
	Vel      r2.Vec
	Radius   float64
	Mass     float64
	Number   int
	Isotope  int
	Symbol   string
	Color    string
	Bonds    []dynamo.Bond
	Dragged  bool
	Selected bool
}

// BondView is one bond listed once, with A < B.
type BondView struct {
	A, B  dynamo.AtomID
	Order int
}

type WellView struct {
	ID       int
	Center   r2.Vec
	Progress float64
	Regime   string
	Targets  int
}

type Config struct {
	Ticks         int
	Seed          int64
	ValidateState bool
}

type Result struct {
	Stats      []Stats
	Metrics    map[string]float64
	TicksTaken int
	Final      Stats
	Errors     []error
}
