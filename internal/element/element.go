package element

import (
	"fmt"
	"math"
	"sort"
)

// MassTolerance bounds the mass difference accepted when resolving a decay
// product isotope.
const MassTolerance = 0.5

type DecayMode uint8

const (
	Stable DecayMode = iota
	Alpha
	BetaMinus
	BetaPlus
	ElectronCapture
)

func (m DecayMode) String() string {
	switch m {
	case Alpha:
		return "alpha"
	case BetaMinus:
		return "beta-"
	case BetaPlus:
		return "beta+"
	case ElectronCapture:
		return "ec"
	default:
		return "stable"
	}
}

// Isotope describes one nuclide of an element. HalfLife is in seconds; a
// non-positive value means the isotope never decays.
type Isotope struct {
	Mass     float64
	HalfLife float64
	Mode     DecayMode
	Product  int
}

func (i Isotope) Stable() bool {
	return i.Mode == Stable || i.HalfLife <= 0 || math.IsInf(i.HalfLife, 1)
}

// ProductMass is the mass the decay product is expected to carry.
func (i Isotope) ProductMass() float64 {
	if i.Mode == Alpha {
		return i.Mass - 4
	}
	return i.Mass
}

type Element struct {
	Number    int
	Symbol    string
	Name      string
	Color     string
	Valence   int
	Electrons int
	Covalent  bool
	Isotopes  []Isotope
}

func (e *Element) Isotope(idx int) (Isotope, bool) {
	if e == nil || idx < 0 || idx >= len(e.Isotopes) {
		return Isotope{}, false
	}
	return e.Isotopes[idx], true
}

func (e *Element) String() string {
	return fmt.Sprintf("%s (%d)", e.Symbol, e.Number)
}

type Table struct {
	byNumber map[int]*Element
	numbers  []int
}

// NewTable indexes the given elements. Later duplicates replace earlier ones.
func NewTable(elements ...Element) *Table {
	t := &Table{byNumber: make(map[int]*Element, len(elements))}
	for i := range elements {
		e := elements[i]
		if _, dup := t.byNumber[e.Number]; !dup {
			t.numbers = append(t.numbers, e.Number)
		}
		t.byNumber[e.Number] = &e
	}
	sort.Ints(t.numbers)
	return t
}

func (t *Table) Lookup(number int) (*Element, bool) {
	e, ok := t.byNumber[number]
	return e, ok
}

func (t *Table) BySymbol(symbol string) (*Element, bool) {
	for _, n := range t.numbers {
		if e := t.byNumber[n]; e.Symbol == symbol {
			return e, true
		}
	}
	return nil, false
}

// Numbers returns the atomic numbers in ascending order.
func (t *Table) Numbers() []int {
	out := make([]int, len(t.numbers))
	copy(out, t.numbers)
	return out
}

func (t *Table) Len() int { return len(t.numbers) }

// Product resolves the element and isotope index an unstable isotope decays
// into. The isotope whose mass is closest to the expected product mass within
// MassTolerance wins; otherwise the product's first isotope is used. ok is
// false when the isotope is stable or the product element is unknown.
func (t *Table) Product(iso Isotope) (*Element, int, bool) {
	if iso.Stable() {
		return nil, 0, false
	}
	prod, ok := t.byNumber[iso.Product]
	if !ok || len(prod.Isotopes) == 0 {
		return nil, 0, false
	}

	want := iso.ProductMass()
	best, bestDiff := 0, math.Inf(1)
	for i, cand := range prod.Isotopes {
		diff := math.Abs(cand.Mass - want)
		if diff <= MassTolerance && diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return prod, best, true
}
