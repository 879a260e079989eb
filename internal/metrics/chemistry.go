package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/atomsim/internal/sim"
	"gonum.org/v1/gonum/floats"
)

// Bonds reports the bond count of the last observed tick.
type Bonds struct{ last int }

func NewBonds() *Bonds { return &Bonds{} }

func (b *Bonds) Name() string        { return "bonds" }
func (b *Bonds) Observe(s sim.Stats) { b.last = s.Bonds }
func (b *Bonds) Value() float64      { return float64(b.last) }
func (b *Bonds) Reset()              { b.last = 0 }

// Molecules reports the number of bonded groups of two or more atoms at the
// last observed tick.
type Molecules struct{ last int }

func NewMolecules() *Molecules { return &Molecules{} }

func (m *Molecules) Name() string        { return "molecules" }
func (m *Molecules) Observe(s sim.Stats) { m.last = s.Molecules }
func (m *Molecules) Value() float64      { return float64(m.last) }
func (m *Molecules) Reset()              { m.last = 0 }

// Decays counts transmutations and removals over the run.
type Decays struct{ total int }

func NewDecays() *Decays { return &Decays{} }

func (d *Decays) Name() string        { return "decays" }
func (d *Decays) Observe(s sim.Stats) { d.total += s.Decayed + s.Vanished }
func (d *Decays) Value() float64      { return float64(d.total) }
func (d *Decays) Reset()              { d.total = 0 }

// ReactionRate is the mean number of bond-graph events per tick.
type ReactionRate struct {
	samples []float64
}

func NewReactionRate() *ReactionRate { return &ReactionRate{} }

func (r *ReactionRate) Name() string { return "reaction_rate" }

func (r *ReactionRate) Observe(s sim.Stats) {
	r.samples = append(r.samples, float64(s.Reactions()))
}

func (r *ReactionRate) Value() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	return floats.Sum(r.samples) / float64(len(r.samples))
}

func (r *ReactionRate) Reset() { r.samples = r.samples[:0] }

var registry = map[string]func() sim.Metric{
	"energy":         func() sim.Metric { return NewEnergy() },
	"peak_energy":    func() sim.Metric { return NewPeakEnergy() },
	"stability":      func() sim.Metric { return NewStability(10) },
	"bonds":          func() sim.Metric { return NewBonds() },
	"molecules":      func() sim.Metric { return NewMolecules() },
	"decays":         func() sim.Metric { return NewDecays() },
	"reaction_rate":  func() sim.Metric { return NewReactionRate() },
	"momentum_drift": func() sim.Metric { return NewMomentumDrift() },
}

// Names lists the registered metrics in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func ByName(name string) (sim.Metric, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Defaults returns a fresh instance of every registered metric.
func Defaults() []sim.Metric {
	out := make([]sim.Metric, 0, len(registry))
	for _, n := range Names() {
		m, _ := ByName(n)
		out = append(out, m)
	}
	return out
}
