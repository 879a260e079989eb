package physics

import (
	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

// acidPartnerValence is the bonding capacity above which a partner makes an
// attached hydrogen acidic.
const acidPartnerValence = 5

// Anneal breaks bonds that pairwise rules tend to get stuck in and kicks the
// freed atoms toward a better partner. Atoms in the drag group are skipped.
func Anneal(s *Scene) {
	for _, a := range s.World.Atoms() {
		if s.protected(a) || len(a.Bonds) == 0 {
			continue
		}
		if migrateHomonuclear(s, a) {
			s.Counters.Annealed++
			continue
		}
		if correctAcidicHydrogen(s, a) {
			s.Counters.Annealed++
		}
	}
}

// migrateHomonuclear frees a low-capacity atom from a same-element partner
// when a higher-capacity hub of another element is within reach.
func migrateHomonuclear(s *Scene, x *dynamo.Atom) bool {
	capX := x.Capacity()
	if capX == 0 || capX > 2 {
		return false
	}
	for _, b := range x.Bonds {
		y, ok := s.World.Get(b.Partner)
		if !ok || y.Number() != x.Number() {
			continue
		}
		hub := s.Grid.Nearest(x.Pos, s.Config.HubSearchFactor*x.Radius, func(h *dynamo.Atom) bool {
			return h != x && h != y &&
				h.Number() != x.Number() &&
				h.Capacity() > capX &&
				h.Free() > 0 &&
				x.Bonds.Order(h.ID) == 0
		})
		if hub == nil {
			continue
		}

		dynamo.Sever(x, y)
		kick := s.Config.AnnealKick
		x.Vel = r2.Add(x.Vel, r2.Scale(kick, unit(r2.Sub(hub.Pos, x.Pos))))
		y.Vel = r2.Add(y.Vel, r2.Scale(kick, unit(r2.Sub(y.Pos, x.Pos))))
		return true
	}
	return false
}

// correctAcidicHydrogen moves a hydrogen off a high-capacity center onto a
// free oxygen, preferring one already bonded to that center.
func correctAcidicHydrogen(s *Scene, h *dynamo.Atom) bool {
	if h.Number() != element.Hydrogen {
		return false
	}
	for _, b := range h.Bonds {
		p, ok := s.World.Get(b.Partner)
		if !ok || p.Capacity() < acidPartnerValence {
			continue
		}
		radius := s.Config.AcidSearchFactor * h.Radius
		candidate := func(o *dynamo.Atom) bool {
			return o.Number() == element.Oxygen && o != p && o.Free() > 0 && h.Bonds.Order(o.ID) == 0
		}
		target := s.Grid.Nearest(h.Pos, radius, func(o *dynamo.Atom) bool {
			return candidate(o) && o.Bonds.Order(p.ID) > 0
		})
		if target == nil {
			target = s.Grid.Nearest(h.Pos, radius, candidate)
		}
		if target == nil {
			continue
		}

		dynamo.Sever(h, p)
		h.Vel = r2.Scale(s.Config.MaxSpeed, unit(r2.Sub(target.Pos, h.Pos)))
		return true
	}
	return false
}
