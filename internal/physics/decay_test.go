package physics

import (
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/element"
	"github.com/san-kum/atomsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestDecayProbability(t *testing.T) {
	tests := []struct {
		name     string
		dt, hl   float64
		expected float64
	}{
		{"zero dt", 0, 10, 0},
		{"one half-life", 5, 5, 0.5},
		{"two half-lives", 10, 5, 0.75},
		{"stable", 1, 0, 0},
		{"infinite half-life", 1, math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecayProbability(tt.dt, tt.hl); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("DecayProbability(%v, %v) = %v, want %v", tt.dt, tt.hl, got, tt.expected)
			}
		})
	}
}

func TestTransmuteBetaMinus(t *testing.T) {
	s := newScene()
	c, _ := s.Table.BySymbol("C")
	c14 := s.World.Add(c, 2, r2.Vec{X: 50, Y: 50})
	h := spawn(t, s, "H", 70, 50)
	s.World.AddBond(c14.ID, h.ID)

	Transmute(s, c14)

	if c14.Number() != element.Nitrogen || c14.Isotope != 0 {
		t.Fatalf("product = %s[%d], want N[0]", c14.Element.Symbol, c14.Isotope)
	}
	if len(c14.Bonds) != 0 || len(h.Bonds) != 0 {
		t.Error("bonds survived decay")
	}
	if got, want := r2.Norm(c14.Vel), s.Config.RecoilImpulse/c14.Mass; math.Abs(got-want) > 1e-9 {
		t.Errorf("recoil speed = %f, want %f", got, want)
	}
	if c14.Radius != 10+math.Pow(c14.Mass, 0.33)*3 {
		t.Error("radius not recomputed")
	}
	if s.Counters.Decayed != 1 {
		t.Errorf("decayed = %d, want 1", s.Counters.Decayed)
	}
	if s.Sink.(*particle.Counter).N != s.Config.BurstSize {
		t.Error("decay burst not emitted")
	}
}

func TestTransmuteAlpha(t *testing.T) {
	s := newScene()
	be, _ := s.Table.BySymbol("Be")
	a := s.World.Add(be, 2, r2.Vec{})

	Decay(s, s.Config.FrameDt)

	if a.Number() != element.Helium {
		t.Fatalf("Be-8 decayed into %s", a.Element.Symbol)
	}
	if math.Abs(a.Mass-4.003) > element.MassTolerance {
		t.Errorf("product mass = %f", a.Mass)
	}
}

func TestTransmuteWithoutProductRemoves(t *testing.T) {
	s := newScene()
	s.Table = element.NewTable(
		element.Element{Number: 1, Symbol: "X", Valence: 1, Electrons: 1, Isotopes: []element.Isotope{
			{Mass: 5, HalfLife: 1, Mode: element.BetaMinus, Product: 99},
		}},
	)
	x := spawn(t, s, "X", 0, 0)

	Transmute(s, x)
	if s.World.Has(x.ID) {
		t.Error("atom without product kept")
	}
	if s.Counters.Vanished != 1 {
		t.Errorf("vanished = %d, want 1", s.Counters.Vanished)
	}
}

func TestDecaySkipsStable(t *testing.T) {
	s := newScene()
	for i := 0; i < 10; i++ {
		spawn(t, s, "C", float64(i)*40, 0)
	}
	Decay(s, 1e12)
	for _, a := range s.World.Atoms() {
		if a.Number() != element.Carbon {
			t.Fatal("stable carbon decayed")
		}
	}
	if s.Counters.Decayed != 0 {
		t.Errorf("decayed = %d", s.Counters.Decayed)
	}
}

func TestDecayDeterministicWithSeed(t *testing.T) {
	run := func() []int {
		s := newScene()
		o, _ := s.Table.BySymbol("O")
		for i := 0; i < 20; i++ {
			s.World.Add(o, 3, r2.Vec{X: float64(i) * 40})
		}
		Decay(s, 100)
		out := make([]int, 0, 20)
		for _, a := range s.World.Atoms() {
			out = append(out, a.Number())
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at atom %d", i)
		}
	}
}
