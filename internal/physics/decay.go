package physics

import (
	"math"

	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

// DecayColor is the particle color emitted for a decay mode.
func DecayColor(mode element.DecayMode) string {
	switch mode {
	case element.Alpha:
		return "#FFE14D"
	case element.BetaMinus:
		return "#4DD2FF"
	case element.BetaPlus:
		return "#FF4DD2"
	case element.ElectronCapture:
		return "#7CFF4D"
	default:
		return "#FFFFFF"
	}
}

// DecayProbability is the chance an isotope with the given half-life decays
// within dt: 1 - 2^(-dt/halfLife).
func DecayProbability(dt, halfLife float64) float64 {
	if dt <= 0 || halfLife <= 0 || math.IsInf(halfLife, 1) {
		return 0
	}
	return 1 - math.Exp2(-dt/halfLife)
}

// Decay samples every unstable atom once. dt is the tick length already
// scaled by the time-dilation factor.
func Decay(s *Scene, dt float64) {
	for _, id := range s.World.IDs() {
		a, ok := s.World.Get(id)
		if !ok {
			continue
		}
		iso := a.Nuclide()
		if iso.Stable() {
			continue
		}
		if s.Rand.Float64() >= DecayProbability(dt, iso.HalfLife) {
			continue
		}
		Transmute(s, a)
	}
}

// Transmute turns a into its decay product in place: bonds are cleared on
// both sides and a recoil kick inversely proportional to the new mass is
// applied. Atoms without a resolvable product are removed.
func Transmute(s *Scene, a *dynamo.Atom) {
	iso := a.Nuclide()
	s.burst(a.Pos, DecayColor(iso.Mode))

	prod, idx, ok := s.Table.Product(iso)
	if !ok {
		s.logger().Debug("decay without product", "atom", a.ID, "element", a.Element.Symbol)
		s.World.Remove(a.ID)
		s.Counters.Vanished++
		return
	}

	from := a.Element.Symbol
	s.World.ClearBonds(a.ID)
	a.SetIsotope(prod, idx)

	angle := s.Rand.Float64() * 2 * math.Pi
	kick := s.Config.RecoilImpulse / a.Mass
	a.Vel = r2.Add(a.Vel, r2.Vec{X: math.Cos(angle) * kick, Y: math.Sin(angle) * kick})
	s.Counters.Decayed++
	s.logger().Debug("decay", "atom", a.ID, "mode", iso.Mode.String(), "from", from, "to", prod.Symbol)
}
