package physics

import (
	"math"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

type Regime uint8

const (
	Gather Regime = iota
	Compress
	Crunch
)

func (r Regime) String() string {
	switch r {
	case Gather:
		return "gather"
	case Compress:
		return "compress"
	default:
		return "crunch"
	}
}

// RegimeFor picks the well stage for a progress value in [0, 1].
func RegimeFor(cfg *dynamo.Config, progress float64) (Regime, dynamo.Stage) {
	switch {
	case progress < cfg.Gather.Until:
		return Gather, cfg.Gather
	case progress < cfg.Compress.Until:
		return Compress, cfg.Compress
	default:
		return Crunch, cfg.Crunch
	}
}

// Well is a timed attractor that herds its targets into a tight cluster.
// Life counts down one unit per substep.
type Well struct {
	ID      int
	Targets []dynamo.AtomID
	Center  r2.Vec
	Life    int
	MaxLife int
	Last    Regime
}

func NewWell(id int, targets []dynamo.AtomID, center r2.Vec, life int) *Well {
	return &Well{ID: id, Targets: targets, Center: center, Life: life, MaxLife: life}
}

func (w *Well) Progress() float64 {
	if w.MaxLife <= 0 {
		return 1
	}
	return 1 - float64(w.Life)/float64(w.MaxLife)
}

// Apply counts the well down one substep and pulls every live target toward
// the center with that substep's stage spring and damping. The final substep
// always runs at full progress, i.e. in the crunch stage. It reports whether
// the well has expired.
func (w *Well) Apply(s *Scene) bool {
	w.Life--
	regime, stage := RegimeFor(s.Config, w.Progress())
	w.Last = regime
	for _, id := range w.Targets {
		a, ok := s.World.Get(id)
		if !ok {
			continue
		}
		pull := r2.Scale(stage.Pull, r2.Sub(w.Center, a.Pos))
		a.Vel = r2.Scale(stage.Damping, r2.Add(a.Vel, pull))
	}
	return w.Life <= 0
}

// ClearZone pushes every bonded molecule overlapping the circle at center out
// past its rim and gives it an outward kick. It returns how many molecules
// moved.
func ClearZone(s *Scene, center r2.Vec, radius float64) int {
	moved := 0
	for _, members := range s.World.Molecules() {
		if len(members) < 2 {
			continue
		}
		atoms := make([]*dynamo.Atom, 0, len(members))
		overlaps := false
		var com r2.Vec
		mass := 0.0
		for _, id := range members {
			a, _ := s.World.Get(id)
			atoms = append(atoms, a)
			com = r2.Add(com, r2.Scale(a.Mass, a.Pos))
			mass += a.Mass
			if r2.Norm(r2.Sub(a.Pos, center)) < radius+a.Radius {
				overlaps = true
			}
		}
		if !overlaps || mass == 0 {
			continue
		}
		com = r2.Scale(1/mass, com)

		dir := unit(r2.Sub(com, center))
		if dir == (r2.Vec{}) {
			angle := s.Rand.Float64() * 2 * math.Pi
			dir = r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		}
		shift := radius - r2.Norm(r2.Sub(com, center)) + moleculeExtent(atoms, com)
		for _, a := range atoms {
			if shift > 0 {
				a.Pos = r2.Add(a.Pos, r2.Scale(shift, dir))
			}
			a.Vel = r2.Add(a.Vel, r2.Scale(s.Config.ClearKick, dir))
		}
		moved++
	}
	return moved
}

// moleculeExtent is the largest distance from com to an atom's rim.
func moleculeExtent(atoms []*dynamo.Atom, com r2.Vec) float64 {
	extent := 0.0
	for _, a := range atoms {
		extent = math.Max(extent, r2.Norm(r2.Sub(a.Pos, com))+a.Radius)
	}
	return extent
}
