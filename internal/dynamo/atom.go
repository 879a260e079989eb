package dynamo

import (
	"math"

	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

type AtomID uint64

// Radius derives an atom's collision radius from its mass.
func Radius(mass float64) float64 {
	return 10 + math.Pow(mass, 0.33)*3
}

type Atom struct {
	ID      AtomID
	Pos     r2.Vec
	Vel     r2.Vec
	Element *element.Element
	Isotope int
	Mass    float64
	Radius  float64
	Bonds   Bonds
}

// SetIsotope replaces the element and isotope and recomputes mass and radius.
// Bonds are left untouched.
func (a *Atom) SetIsotope(e *element.Element, idx int) {
	a.Element = e
	a.Isotope = idx
	iso, _ := e.Isotope(idx)
	a.Mass = iso.Mass
	if a.Mass <= 0 {
		a.Mass = float64(e.Number)
	}
	a.Radius = Radius(a.Mass)
}

func (a *Atom) Nuclide() element.Isotope {
	iso, _ := a.Element.Isotope(a.Isotope)
	return iso
}

func (a *Atom) Number() int { return a.Element.Number }

// Capacity is the maximum bond-order sum the element sustains.
func (a *Atom) Capacity() int { return a.Element.Valence }

// BondCount is the bond-order sum, i.e. the length of the flat bond list.
func (a *Atom) BondCount() int { return a.Bonds.Count() }

// Free is the number of unused valence slots; negative when over capacity.
func (a *Atom) Free() int { return a.Capacity() - a.BondCount() }

func (a *Atom) InvMass() float64 {
	if a.Mass <= 0 {
		return 0
	}
	return 1 / a.Mass
}

// Finite reports whether position and velocity hold real numbers.
func (a *Atom) Finite() bool {
	for _, v := range [4]float64{a.Pos.X, a.Pos.Y, a.Vel.X, a.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
