package sim

import (
	"math"
	"slices"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Atoms returns a copy of every atom in slot order.
func (e *Engine) Atoms() []AtomView {
	atoms := e.world.Atoms()
	out := make([]AtomView, 0, len(atoms))
	for _, a := range atoms {
		out = append(out, e.view(a))
	}
	return out
}

func (e *Engine) Atom(id dynamo.AtomID) (AtomView, bool) {
	a, ok := e.world.Get(id)
	if !ok {
		return AtomView{}, false
	}
	return e.view(a), true
}

func (e *Engine) view(a *dynamo.Atom) AtomView {
	return AtomView{
		ID:       a.ID,
		Pos:      a.Pos,
		Vel:      a.Vel,
		Radius:   a.Radius,
		Mass:     a.Mass,
		Number:   a.Number(),
		Isotope:  a.Isotope,
		Symbol:   a.Element.Symbol,
		Color:    a.Element.Color,
		Bonds:    a.Bonds.Clone(),
		Dragged:  e.dragGroup.Has(a.ID),
		Selected: e.selection.Has(a.ID),
	}
}

// Bonds lists every bond once.
func (e *Engine) Bonds() []BondView {
	var out []BondView
	for _, a := range e.world.Atoms() {
		for _, b := range a.Bonds {
			if a.ID < b.Partner {
				out = append(out, BondView{A: a.ID, B: b.Partner, Order: b.Order})
			}
		}
	}
	return out
}

func (e *Engine) Wells() []WellView {
	out := make([]WellView, 0, len(e.wells))
	for _, w := range e.wells {
		out = append(out, WellView{
			ID:       w.ID,
			Center:   w.Center,
			Progress: w.Progress(),
			Regime:   w.Last.String(),
			Targets:  len(w.Targets),
		})
	}
	return out
}

// Lasso returns the open lasso polygon, or nil when no lasso is in progress.
func (e *Engine) Lasso() []r2.Vec {
	if !e.lassoOpen {
		return nil
	}
	return slices.Clone(e.lasso)
}

// DragAnchor is the anchored atom, 0 when nothing is dragged.
func (e *Engine) DragAnchor() dynamo.AtomID { return e.dragID }

func (e *Engine) DragGroup() []dynamo.AtomID { return e.sorted(e.dragGroup) }

func (e *Engine) Selection() []dynamo.AtomID { return e.sorted(e.selection) }

// sorted lists set members in slot order.
func (e *Engine) sorted(set dynamo.IDSet) []dynamo.AtomID {
	if len(set) == 0 {
		return nil
	}
	out := make([]dynamo.AtomID, 0, len(set))
	for _, a := range e.world.Atoms() {
		if set.Has(a.ID) {
			out = append(out, a.ID)
		}
	}
	return out
}

func (e *Engine) Len() int { return e.world.Len() }

func (e *Engine) BondOrder(a, b dynamo.AtomID) int { return e.world.BondOrder(a, b) }

// Pick returns the atom whose surface is closest to p, counting atoms whose
// centre lies within slack of their radius.
func (e *Engine) Pick(p r2.Vec, slack float64) (dynamo.AtomID, bool) {
	var best *dynamo.Atom
	bestGap := math.Inf(1)
	for _, a := range e.world.Atoms() {
		gap := r2.Norm(r2.Sub(a.Pos, p)) - a.Radius
		if gap <= slack && gap < bestGap {
			best, bestGap = a, gap
		}
	}
	if best == nil {
		return 0, false
	}
	return best.ID, true
}
