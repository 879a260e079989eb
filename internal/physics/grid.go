package physics

import (
	"math"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultCellSize suits the search radii of the default tunables.
const DefaultCellSize = 64.0

type cellKey struct{ x, y int }

// Grid is a uniform spatial hash rebuilt once per substep. It answers the
// radius searches of the bonding priority heuristic and the annealing pass
// without scanning every atom.
type Grid struct {
	cell  float64
	cells map[cellKey][]*dynamo.Atom
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{cell: cellSize, cells: make(map[cellKey][]*dynamo.Atom)}
}

func (g *Grid) key(p r2.Vec) cellKey {
	return cellKey{int(math.Floor(p.X / g.cell)), int(math.Floor(p.Y / g.cell))}
}

// Rebuild indexes atoms in slot order. Cells left empty are dropped so an
// unbounded world keeps at most one cell per atom.
func (g *Grid) Rebuild(atoms []*dynamo.Atom) {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	for _, a := range atoms {
		k := g.key(a.Pos)
		g.cells[k] = append(g.cells[k], a)
	}
	for k, v := range g.cells {
		if len(v) == 0 {
			delete(g.cells, k)
		}
	}
}

// Cells reports how many cells currently hold atoms.
func (g *Grid) Cells() int { return len(g.cells) }

// Near calls fn for every indexed atom within radius of p, row by row and in
// slot order within a cell. Returning false from fn stops the walk.
func (g *Grid) Near(p r2.Vec, radius float64, fn func(*dynamo.Atom) bool) {
	lo := g.key(r2.Vec{X: p.X - radius, Y: p.Y - radius})
	hi := g.key(r2.Vec{X: p.X + radius, Y: p.Y + radius})
	r2max := radius * radius

	for y := lo.y; y <= hi.y; y++ {
		for x := lo.x; x <= hi.x; x++ {
			for _, a := range g.cells[cellKey{x, y}] {
				if r2.Norm2(r2.Sub(a.Pos, p)) > r2max {
					continue
				}
				if !fn(a) {
					return
				}
			}
		}
	}
}

// Nearest returns the closest atom within radius accepted by keep.
func (g *Grid) Nearest(p r2.Vec, radius float64, keep func(*dynamo.Atom) bool) *dynamo.Atom {
	var best *dynamo.Atom
	bestD := math.Inf(1)
	g.Near(p, radius, func(a *dynamo.Atom) bool {
		if !keep(a) {
			return true
		}
		if d := r2.Norm2(r2.Sub(a.Pos, p)); d < bestD {
			best, bestD = a, d
		}
		return true
	})
	return best
}

// Any reports whether some atom within radius satisfies match.
func (g *Grid) Any(p r2.Vec, radius float64, match func(*dynamo.Atom) bool) bool {
	found := false
	g.Near(p, radius, func(a *dynamo.Atom) bool {
		if match(a) {
			found = true
			return false
		}
		return true
	})
	return found
}
