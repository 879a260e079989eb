package metrics

import (
	"math"

	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Energy is the mean kinetic energy over all observed ticks.
type Energy struct {
	name    string
	samples []float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s sim.Stats) {
	e.samples = append(e.samples, s.KineticEnergy)
}

func (e *Energy) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return floats.Sum(e.samples) / float64(len(e.samples))
}

func (e *Energy) Reset() {
	e.samples = e.samples[:0]
}

// PeakEnergy is the largest kinetic energy seen in any tick.
type PeakEnergy struct {
	name    string
	samples []float64
}

func NewPeakEnergy() *PeakEnergy {
	return &PeakEnergy{name: "peak_energy"}
}

func (p *PeakEnergy) Name() string { return p.name }

func (p *PeakEnergy) Observe(s sim.Stats) {
	p.samples = append(p.samples, s.KineticEnergy)
}

func (p *PeakEnergy) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	return floats.Max(p.samples)
}

func (p *PeakEnergy) Reset() {
	p.samples = p.samples[:0]
}

// MomentumDrift is the largest distance of total momentum from its value at
// the first observed tick. Walls, wells and drags all inject momentum, so it
// stays near zero only in a free, untouched arena.
type MomentumDrift struct {
	start   r2.Vec
	started bool
	max     float64
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(s sim.Stats) {
	if !m.started {
		m.start, m.started = s.Momentum, true
		return
	}
	m.max = math.Max(m.max, r2.Norm(r2.Sub(s.Momentum, m.start)))
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() { *m = MomentumDrift{} }
