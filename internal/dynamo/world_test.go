package dynamo

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/element"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestWorld(t *testing.T, symbols ...string) (*World, []AtomID) {
	t.Helper()
	w := NewWorld()
	ids := make([]AtomID, len(symbols))
	for i, s := range symbols {
		e, ok := element.Default().BySymbol(s)
		if !ok {
			t.Fatalf("unknown symbol %s", s)
		}
		ids[i] = w.Add(e, 0, r2.Vec{X: float64(i) * 30}).ID
	}
	return w, ids
}

func assertSymmetric(t *testing.T, w *World) {
	t.Helper()
	for _, a := range w.Atoms() {
		for _, b := range w.Atoms() {
			if w.BondOrder(a.ID, b.ID) != w.BondOrder(b.ID, a.ID) {
				t.Fatalf("asymmetric bond %d-%d: %d vs %d", a.ID, b.ID, w.BondOrder(a.ID, b.ID), w.BondOrder(b.ID, a.ID))
			}
		}
	}
}

func TestAddBondRaisesOrder(t *testing.T) {
	w, ids := newTestWorld(t, "C", "O")

	for want := 1; want <= 3; want++ {
		if !w.AddBond(ids[0], ids[1]) {
			t.Fatal("AddBond failed")
		}
		if got := w.BondOrder(ids[0], ids[1]); got != want {
			t.Errorf("order = %d, want %d", got, want)
		}
	}
	assertSymmetric(t, w)

	c, _ := w.Get(ids[0])
	if got := len(c.Bonds.Flat()); got != 3 {
		t.Errorf("flat bond list length = %d, want 3", got)
	}
}

func TestAddBondRejectsSelfAndUnknown(t *testing.T) {
	w, ids := newTestWorld(t, "H")
	if w.AddBond(ids[0], ids[0]) {
		t.Error("self bond accepted")
	}
	if w.AddBond(ids[0], 999) {
		t.Error("bond to unknown atom accepted")
	}
}

func TestBreakBondIdempotent(t *testing.T) {
	w, ids := newTestWorld(t, "C", "O", "O")
	w.AddBond(ids[0], ids[1])
	w.AddBond(ids[0], ids[1])
	w.AddBond(ids[0], ids[2])

	w.BreakBond(ids[0], ids[1])
	once := snapshotBonds(w)
	w.BreakBond(ids[0], ids[1])
	twice := snapshotBonds(w)

	if len(once) != len(twice) {
		t.Fatalf("graph changed on second break")
	}
	for id, bonds := range once {
		if len(bonds) != len(twice[id]) {
			t.Fatalf("atom %d bonds changed on second break", id)
		}
		for i := range bonds {
			if bonds[i] != twice[id][i] {
				t.Fatalf("atom %d bonds changed on second break", id)
			}
		}
	}
	if w.BondOrder(ids[0], ids[1]) != 0 {
		t.Error("bond survived break")
	}
	if w.BondOrder(ids[0], ids[2]) != 1 {
		t.Error("unrelated bond affected")
	}
	assertSymmetric(t, w)
}

func snapshotBonds(w *World) map[AtomID]Bonds {
	out := make(map[AtomID]Bonds)
	for _, a := range w.Atoms() {
		out[a.ID] = a.Bonds.Clone()
	}
	return out
}

func TestDecrementBond(t *testing.T) {
	w, ids := newTestWorld(t, "O", "O", "H")
	w.AddBond(ids[0], ids[1])
	w.AddBond(ids[0], ids[1])

	if !w.DecrementBond(ids[0], ids[1]) {
		t.Fatal("expected removal")
	}
	if got := w.BondOrder(ids[1], ids[0]); got != 1 {
		t.Errorf("order = %d, want 1", got)
	}
	if !w.DecrementBond(ids[1], ids[0]) {
		t.Fatal("expected removal")
	}
	if w.DecrementBond(ids[0], ids[1]) {
		t.Error("decrement on unbonded pair reported removal")
	}
	if w.DecrementBond(ids[0], ids[2]) {
		t.Error("decrement on never-bonded pair reported removal")
	}
	assertSymmetric(t, w)
}

func TestConnectedGroup(t *testing.T) {
	w, ids := newTestWorld(t, "O", "H", "H", "C", "H")
	w.AddBond(ids[0], ids[1])
	w.AddBond(ids[0], ids[2])
	w.AddBond(ids[3], ids[4])

	g := w.ConnectedGroup(ids[1])
	if len(g) != 3 || !g.Has(ids[0]) || !g.Has(ids[1]) || !g.Has(ids[2]) {
		t.Errorf("unexpected group %v", g)
	}
	if g.Has(ids[3]) {
		t.Error("group leaked into second molecule")
	}

	lone := w.ConnectedGroup(999)
	if len(lone) != 0 {
		t.Errorf("unknown start should give empty group, got %v", lone)
	}

	if got := len(w.Molecules()); got != 2 {
		t.Errorf("molecules = %d, want 2", got)
	}
}

func TestRemoveCleansPartners(t *testing.T) {
	w, ids := newTestWorld(t, "O", "H", "H")
	w.AddBond(ids[0], ids[1])
	w.AddBond(ids[0], ids[2])

	if !w.Remove(ids[0]) {
		t.Fatal("remove failed")
	}
	if w.Has(ids[0]) {
		t.Error("atom still present")
	}
	for _, id := range ids[1:] {
		h, ok := w.Get(id)
		if !ok {
			t.Fatalf("atom %d lost after compaction", id)
		}
		if h.BondCount() != 0 {
			t.Errorf("atom %d kept dangling bond", id)
		}
	}
	if w.Remove(ids[0]) {
		t.Error("second remove succeeded")
	}
}

func TestRadiusAndCapacity(t *testing.T) {
	w, ids := newTestWorld(t, "O")
	o, _ := w.Get(ids[0])

	want := 10 + 3*pow033(15.995)
	if diff := o.Radius - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("radius = %f, want %f", o.Radius, want)
	}
	if o.Free() != 2 {
		t.Errorf("free = %d, want 2", o.Free())
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero substeps", func(c *Config) { c.Substeps = 0 }},
		{"zero frame dt", func(c *Config) { c.FrameDt = 0 }},
		{"negative time scale", func(c *Config) { c.TimeScale = -1 }},
		{"friction above one", func(c *Config) { c.Friction = 1.5 }},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"zero well", func(c *Config) { c.WellDuration = 0 }},
		{"unordered stages", func(c *Config) { c.Gather.Until = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimError(t *testing.T) {
	err := &SimError{Tick: 12, Atom: 3, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("SimError does not unwrap")
	}
	want := "tick 12 (atom 3): dynamo: invalid state (NaN or Inf detected)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func pow033(x float64) float64 { return math.Pow(x, 0.33) }
