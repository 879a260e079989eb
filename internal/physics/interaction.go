package physics

import (
	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	maxBondOrder = 3

	insertionColor    = "#FFD966"
	dissociationColor = "#FF8C42"
)

// Resolve runs the pairwise pass over every unordered atom pair: bond
// springs, collision springs and the reaction rules.
func Resolve(s *Scene) {
	atoms := s.World.Atoms()
	for i := 0; i < len(atoms); i++ {
		for j := i + 1; j < len(atoms); j++ {
			resolvePair(s, atoms[i], atoms[j])
		}
	}
}

func resolvePair(s *Scene, a, b *dynamo.Atom) {
	cfg := s.Config
	d := r2.Sub(b.Pos, a.Pos)
	dist := r2.Norm(d)
	combined := a.Radius + b.Radius
	order := a.Bonds.Order(b.ID)

	if order == 0 && dist > cfg.CullFactor*combined {
		return
	}

	protected := s.protected(a) || s.protected(b)
	if order > 0 && dist > cfg.StretchBreakFactor*combined && !protected {
		dynamo.Sever(a, b)
		s.Counters.Broken++
		s.logger().Debug("bond overstretched", "a", a.ID, "b", b.ID, "dist", dist)
		return
	}
	if order > 0 && (a.Free() < 0 || b.Free() < 0) {
		dynamo.Sever(a, b)
		s.Counters.Broken++
		return
	}

	n := unit(d)
	if n == (r2.Vec{}) {
		n = r2.Vec{X: 1}
	}
	switch {
	case order > 0:
		bondForce(s, a, b, n, dist, combined, order)
	case dist < combined:
		collisionForce(s, a, b, n, dist, combined)
	}

	if protected || dist > cfg.ReactionFactor*combined {
		return
	}
	react(s, a, b, order, dist, combined)
}

// bondForce pulls a bonded pair toward a rest length that shortens with bond
// order, damping relative motion along and across the bond axis.
func bondForce(s *Scene, a, b *dynamo.Atom, n r2.Vec, dist, combined float64, order int) {
	cfg := s.Config
	rest := combined * (0.9 - 0.12*float64(order-1))
	rel := r2.Sub(b.Vel, a.Vel)
	along := r2.Dot(rel, n)
	across := r2.Sub(rel, r2.Scale(along, n))

	mag := cfg.BondStiffness*(dist-rest) + cfg.BondDamping*along
	impulse := r2.Add(r2.Scale(mag, n), r2.Scale(cfg.TangentialDamping, across))
	s.applyPair(a, b, impulse)
}

func collisionForce(s *Scene, a, b *dynamo.Atom, n r2.Vec, dist, combined float64) {
	cfg := s.Config
	mag := -cfg.CollisionStiffness * (combined - dist)
	if along := r2.Dot(r2.Sub(b.Vel, a.Vel), n); along < 0 {
		mag += cfg.CollisionDamping * along
	}
	s.applyPair(a, b, r2.Scale(mag, n))
}

func react(s *Scene, a, b *dynamo.Atom, order int, dist, combined float64) {
	cfg := s.Config
	violent := r2.Norm2(r2.Sub(a.Vel, b.Vel)) > cfg.ImpactSpeedSq && dist < cfg.ImpactFactor*combined
	if violent {
		if insert(s, a, b) || insert(s, b, a) {
			return
		}
		if order == 0 && dissociate(s, a, b) {
			return
		}
	}
	if CanBond(s, a, b) {
		dynamo.Link(a, b)
		s.Counters.Formed++
	}
}

// insert lets a fast atom with two free slots wedge itself into the single
// bond of target, bonding to both former partners.
func insert(s *Scene, in, target *dynamo.Atom) bool {
	if in.Free() < 2 || len(target.Bonds) != 1 || in.Bonds.Order(target.ID) > 0 {
		return false
	}
	partnerID := target.Bonds[0].Partner
	if partnerID == in.ID || in.Bonds.Order(partnerID) >= maxBondOrder {
		return false
	}
	partner, ok := s.World.Get(partnerID)
	if !ok || s.protected(partner) {
		return false
	}

	dynamo.Sever(target, partner)
	dynamo.Link(in, target)
	dynamo.Link(in, partner)

	damp := s.Config.ImpactDamping
	in.Vel = r2.Scale(damp, in.Vel)
	target.Vel = r2.Scale(damp, target.Vel)
	partner.Vel = r2.Scale(damp, partner.Vel)
	s.burst(in.Pos, insertionColor)
	s.Counters.Inserted++
	return true
}

// dissociate knocks one bond order off a saturated atom of a violently
// colliding unbonded pair. When both are saturated one is drawn at random, and
// the lost bond is drawn weighted by order.
func dissociate(s *Scene, a, b *dynamo.Atom) bool {
	var hit []*dynamo.Atom
	for _, x := range [2]*dynamo.Atom{a, b} {
		if x.Capacity() > 0 && x.Free() <= 0 && len(x.Bonds) > 0 {
			hit = append(hit, x)
		}
	}
	if len(hit) == 0 {
		return false
	}
	x := hit[s.Rand.Intn(len(hit))]
	slots := x.Bonds.Flat()
	partner, ok := s.World.Get(slots[s.Rand.Intn(len(slots))])
	if !ok || !dynamo.Weaken(x, partner) {
		return false
	}

	damp := s.Config.ImpactDamping
	a.Vel = r2.Scale(damp, a.Vel)
	b.Vel = r2.Scale(damp, b.Vel)
	s.burst(r2.Scale(0.5, r2.Add(a.Pos, b.Pos)), dissociationColor)
	s.Counters.Dissociated++
	return true
}

// CanBond reports whether a and b may raise their bond order by one: both
// need a free slot, the order must stay below triple, no better partner may
// be in reach and the bond must not close a strained three-membered ring.
func CanBond(s *Scene, a, b *dynamo.Atom) bool {
	order := a.Bonds.Order(b.ID)
	if order >= maxBondOrder || a.Free() <= 0 || b.Free() <= 0 {
		return false
	}
	if deferToBetterPartner(s, a, b, order > 0) {
		return false
	}
	return order > 0 || !ringStrained(s, a, b)
}

func deferToBetterPartner(s *Scene, a, b *dynamo.Atom, bonded bool) bool {
	radius := s.Config.PriorityRadiusFactor * (a.Radius + b.Radius)

	if bonded {
		// a fresh sigma bond outranks upgrading an existing one
		for _, pair := range [2][2]*dynamo.Atom{{a, b}, {b, a}} {
			x, other := pair[0], pair[1]
			if s.Grid.Any(x.Pos, radius, func(c *dynamo.Atom) bool {
				return c != x && c != other && c.Free() > 0 && x.Bonds.Order(c.ID) == 0
			}) {
				return true
			}
		}
		return false
	}

	for _, pair := range [2][2]*dynamo.Atom{{a, b}, {b, a}} {
		h, p := pair[0], pair[1]
		if h.Number() != element.Hydrogen || p.Capacity() < acidPartnerValence {
			continue
		}
		if s.Grid.Any(h.Pos, radius, func(o *dynamo.Atom) bool {
			return o.Number() == element.Oxygen && o != p && o.Free() > 0 && o.Bonds.Order(h.ID) == 0
		}) {
			return true
		}
	}

	hubCap := max(a.Capacity(), b.Capacity())
	isHub := func(c *dynamo.Atom) bool {
		return c != a && c != b &&
			c.Capacity() > hubCap &&
			c.Free() > 0 &&
			c.Bonds.Order(a.ID) == 0 && c.Bonds.Order(b.ID) == 0
	}
	return s.Grid.Any(a.Pos, radius, isHub) || s.Grid.Any(b.Pos, radius, isHub)
}

// ringStrained reports whether bonding a and b would close a three-membered
// ring through a shared neighbor whose ideal angle cannot bend that far.
func ringStrained(s *Scene, a, b *dynamo.Atom) bool {
	limit := s.Config.RingStrainAngle * deg
	for _, bond := range a.Bonds {
		if b.Bonds.Order(bond.Partner) == 0 {
			continue
		}
		shared, ok := s.World.Get(bond.Partner)
		if !ok {
			continue
		}
		if AtomGeometry(shared).Angle > limit {
			return true
		}
	}
	return false
}
