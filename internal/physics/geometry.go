package physics

import (
	"math"
	"sort"

	"github.com/san-kum/atomsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const deg = math.Pi / 180

// Geometry is the target angle between angularly adjacent neighbors. Open
// geometries leave the widest sector unconstrained; it holds the lone pairs.
type Geometry struct {
	Angle  float64
	Closed bool
}

// IdealGeometry maps an electron domain count to a target bond angle.
func IdealGeometry(domains, lonePairs, neighbors int) Geometry {
	switch {
	case domains == 2:
		return Geometry{180 * deg, true}
	case domains == 3 && lonePairs == 0:
		return Geometry{120 * deg, true}
	case domains == 3:
		return Geometry{118 * deg, false}
	case domains == 4 && lonePairs == 0:
		// tetrahedral projected onto the plane
		return Geometry{90 * deg, true}
	case domains == 4 && lonePairs == 1:
		return Geometry{107 * deg, false}
	case domains == 4:
		return Geometry{104.5 * deg, false}
	case domains == 5:
		return Geometry{72 * deg, true}
	case domains == 6:
		return Geometry{60 * deg, true}
	}
	if neighbors < 1 {
		neighbors = 1
	}
	return Geometry{2 * math.Pi / float64(neighbors), true}
}

func LonePairs(a *dynamo.Atom) int {
	free := a.Element.Electrons - a.BondCount()
	if free < 0 {
		free = 0
	}
	return free / 2
}

// Domains counts distinct bonded neighbors plus lone pairs.
func Domains(a *dynamo.Atom) int {
	return len(a.Bonds) + LonePairs(a)
}

func AtomGeometry(a *dynamo.Atom) Geometry {
	return IdealGeometry(Domains(a), LonePairs(a), len(a.Bonds))
}

// geometryEligible selects covalent non-metals with at least two distinct
// neighbors.
func geometryEligible(a *dynamo.Atom) bool {
	return a.Element.Covalent && len(a.Bonds) >= 2
}

// wrapAngle normalizes x into (-pi, pi].
func wrapAngle(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x <= 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

type spoke struct {
	slot  int
	off   r2.Vec
	dist  float64
	angle float64
}

// SolveGeometry pushes the neighbors of every eligible atom toward their
// ideal bond angle. Each angular pair receives equal and opposite torques
// about the center, converted to tangential forces by each neighbor's lever
// arm; the center takes the reaction. Forces are read from one snapshot,
// summed into delta (indexed by arena slot) and applied in a single pass.
// The buffer is returned for reuse, grown if it was too short.
func SolveGeometry(s *Scene, delta []r2.Vec) []r2.Vec {
	atoms := s.World.Atoms()
	if len(delta) < len(atoms) {
		delta = make([]r2.Vec, len(atoms))
	}
	for i := range atoms {
		delta[i] = r2.Vec{}
	}

	spokes := make([]spoke, 0, 6)
	for ci, c := range atoms {
		if !geometryEligible(c) {
			continue
		}
		center := r2.Add(c.Pos, c.Vel)

		spokes = spokes[:0]
		for _, b := range c.Bonds {
			slot := s.World.Slot(b.Partner)
			if slot < 0 {
				continue
			}
			n := atoms[slot]
			off := r2.Sub(r2.Add(n.Pos, n.Vel), center)
			dist := r2.Norm(off)
			if dist < 1e-6 {
				continue
			}
			spokes = append(spokes, spoke{slot: slot, off: off, dist: dist, angle: math.Atan2(off.Y, off.X)})
		}
		if len(spokes) < 2 {
			continue
		}
		sort.Slice(spokes, func(i, j int) bool { return spokes[i].angle < spokes[j].angle })
		rotateAfterWidestGap(spokes)

		geom := AtomGeometry(c)
		k := len(spokes)
		for i := 0; i < k; i++ {
			j := i + 1
			if j == k {
				if !geom.Closed {
					break
				}
				j = 0
			}
			si, sj := spokes[i], spokes[j]

			gap := sj.angle - si.angle
			if gap < 0 {
				gap += 2 * math.Pi
			}
			torque := -s.Config.AngularStiffness * wrapAngle(gap-geom.Angle)

			// j sits counter-clockwise of i: opening the gap turns j
			// counter-clockwise and i clockwise.
			fj := r2.Scale(torque/(sj.dist*sj.dist), r2.Vec{X: -sj.off.Y, Y: sj.off.X})
			fi := r2.Scale(-torque/(si.dist*si.dist), r2.Vec{X: -si.off.Y, Y: si.off.X})

			delta[sj.slot] = r2.Add(delta[sj.slot], fj)
			delta[si.slot] = r2.Add(delta[si.slot], fi)
			delta[ci] = r2.Sub(delta[ci], r2.Add(fi, fj))
		}
	}

	for i, a := range atoms {
		if delta[i] == (r2.Vec{}) {
			continue
		}
		a.Vel = r2.Add(a.Vel, r2.Scale(s.invMass(a), delta[i]))
	}
	return delta
}

// rotateAfterWidestGap reorders angle-sorted spokes so the widest angular gap
// falls between the last and first entries.
func rotateAfterWidestGap(spokes []spoke) {
	k := len(spokes)
	widest, start := -1.0, 0
	for i := 0; i < k; i++ {
		next := spokes[(i+1)%k].angle
		gap := next - spokes[i].angle
		if gap <= 0 {
			gap += 2 * math.Pi
		}
		if gap > widest {
			widest, start = gap, (i+1)%k
		}
	}
	if start == 0 {
		return
	}
	rotated := append(append([]spoke(nil), spokes[start:]...), spokes[:start]...)
	copy(spokes, rotated)
}
