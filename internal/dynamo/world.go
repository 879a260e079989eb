package dynamo

import (
	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

// IDSet is an unordered set of atom identities.
type IDSet map[AtomID]struct{}

func (s IDSet) Has(id AtomID) bool {
	_, ok := s[id]
	return ok
}

// World is a dense arena of atoms. Slots are compacted on removal; an atom's
// AtomID stays stable for its whole lifetime while its slot may move.
type World struct {
	atoms  []*Atom
	index  map[AtomID]int
	nextID AtomID
}

func NewWorld() *World {
	return &World{
		atoms:  make([]*Atom, 0, 64),
		index:  make(map[AtomID]int, 64),
		nextID: 1,
	}
}

// Add creates an atom at rest. The isotope index must be valid for e.
func (w *World) Add(e *element.Element, isotope int, pos r2.Vec) *Atom {
	a := &Atom{ID: w.nextID, Pos: pos}
	a.SetIsotope(e, isotope)
	w.nextID++
	w.index[a.ID] = len(w.atoms)
	w.atoms = append(w.atoms, a)
	return a
}

func (w *World) Get(id AtomID) (*Atom, bool) {
	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.atoms[i], true
}

func (w *World) Has(id AtomID) bool {
	_, ok := w.index[id]
	return ok
}

// Slot returns the dense arena index currently holding id, or -1.
func (w *World) Slot(id AtomID) int {
	if i, ok := w.index[id]; ok {
		return i
	}
	return -1
}

// Atoms exposes the arena in slot order. Callers must not retain the slice
// across Add or Remove.
func (w *World) Atoms() []*Atom { return w.atoms }

func (w *World) Len() int { return len(w.atoms) }

// IDs returns a copy of the live identities in slot order, safe to range
// over while removing atoms.
func (w *World) IDs() []AtomID {
	out := make([]AtomID, len(w.atoms))
	for i, a := range w.atoms {
		out[i] = a.ID
	}
	return out
}

// Remove deletes an atom and its partners' references to it.
func (w *World) Remove(id AtomID) bool {
	i, ok := w.index[id]
	if !ok {
		return false
	}
	w.ClearBonds(id)

	last := len(w.atoms) - 1
	if i != last {
		w.atoms[i] = w.atoms[last]
		w.index[w.atoms[i].ID] = i
	}
	w.atoms[last] = nil
	w.atoms = w.atoms[:last]
	delete(w.index, id)
	return true
}

func (w *World) Clear() {
	for i := range w.atoms {
		w.atoms[i] = nil
	}
	w.atoms = w.atoms[:0]
	w.index = make(map[AtomID]int, 64)
}

// AddBond raises the bond order between a and b by one.
func (w *World) AddBond(a, b AtomID) bool {
	x, okA := w.Get(a)
	y, okB := w.Get(b)
	if !okA || !okB || a == b {
		return false
	}
	Link(x, y)
	return true
}

// BreakBond severs every order of bond between a and b.
func (w *World) BreakBond(a, b AtomID) {
	x, _ := w.Get(a)
	y, _ := w.Get(b)
	Sever(x, y)
}

// DecrementBond removes a single order of bond and reports whether the pair
// was bonded.
func (w *World) DecrementBond(a, b AtomID) bool {
	x, _ := w.Get(a)
	y, _ := w.Get(b)
	return Weaken(x, y)
}

func (w *World) BondOrder(a, b AtomID) int {
	x, ok := w.Get(a)
	if !ok {
		return 0
	}
	return x.Bonds.Order(b)
}

// ClearBonds severs every bond of id, partner side included.
func (w *World) ClearBonds(id AtomID) {
	a, ok := w.Get(id)
	if !ok {
		return
	}
	for _, b := range a.Bonds {
		if p, ok := w.Get(b.Partner); ok {
			p.Bonds.drop(id)
		}
	}
	a.Bonds = nil
}

// ConnectedGroup walks the bond graph breadth-first from start and returns
// every reachable identity, start included. An unknown start yields an empty
// set.
func (w *World) ConnectedGroup(start AtomID) IDSet {
	group := make(IDSet)
	if !w.Has(start) {
		return group
	}

	queue := []AtomID{start}
	group[start] = struct{}{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		a, ok := w.Get(id)
		if !ok {
			continue
		}
		for _, b := range a.Bonds {
			if group.Has(b.Partner) {
				continue
			}
			group[b.Partner] = struct{}{}
			queue = append(queue, b.Partner)
		}
	}
	return group
}

// Molecules partitions the world into connected components, each listed in
// slot order of its first member.
func (w *World) Molecules() [][]AtomID {
	seen := make(IDSet, len(w.atoms))
	var out [][]AtomID
	for _, a := range w.atoms {
		if seen.Has(a.ID) {
			continue
		}
		group := w.ConnectedGroup(a.ID)
		members := make([]AtomID, 0, len(group))
		for _, b := range w.atoms {
			if group.Has(b.ID) {
				members = append(members, b.ID)
				seen[b.ID] = struct{}{}
			}
		}
		out = append(out, members)
	}
	return out
}

// BondTotal counts bonds across the world, each pair once with its order.
func (w *World) BondTotal() int {
	n := 0
	for _, a := range w.atoms {
		n += a.BondCount()
	}
	return n / 2
}
