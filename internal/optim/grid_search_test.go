package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/atomsim/internal/config"
	"github.com/san-kum/atomsim/internal/dynamo"
	"github.com/san-kum/atomsim/internal/sim"
)

// fakeRun scores a config without simulating: the score peaks at
// bond_stiffness 0.3 and grows with friction.
func fakeRun(calls *int) RunFunc {
	return func(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
		*calls++
		score := -math.Abs(cfg.Physics.BondStiffness-0.3) + cfg.Physics.Friction
		return &sim.Result{Metrics: map[string]float64{"score": score}}, nil
	}
}

func TestGridSearchMaximize(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"bond_stiffness", "friction"},
		[][]float64{{0.1, 0.3, 0.5}, {0.9, 0.99}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 6 {
		t.Errorf("size = %d, want 6", g.Size())
	}

	calls := 0
	trials, best, err := g.Search(context.Background(), config.DefaultConfig(), fakeRun(&calls), "score", Maximize)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 6 || len(trials) != 6 {
		t.Fatalf("calls = %d, trials = %d", calls, len(trials))
	}
	got := trials[best].Params
	if got["bond_stiffness"] != 0.3 || got["friction"] != 0.99 {
		t.Errorf("best params = %v", got)
	}
	// grid order: first axis outermost
	if trials[1].Params["bond_stiffness"] != 0.1 || trials[1].Params["friction"] != 0.99 {
		t.Errorf("trial 1 params = %v", trials[1].Params)
	}
}

func TestGridSearchMinimize(t *testing.T) {
	g, _ := NewGridSearch([]string{"bond_stiffness"}, [][]float64{{0.1, 0.3, 0.5}})
	calls := 0
	trials, best, err := g.Search(context.Background(), config.DefaultConfig(), fakeRun(&calls), "score", Minimize)
	if err != nil {
		t.Fatal(err)
	}
	if v := trials[best].Params["bond_stiffness"]; v != 0.1 && v != 0.5 {
		t.Errorf("minimum at %v", v)
	}
}

func TestGridSearchKeepsInvalidTrials(t *testing.T) {
	g, _ := NewGridSearch([]string{"substeps"}, [][]float64{{0, 4}})
	calls := 0
	trials, best, err := g.Search(context.Background(), config.DefaultConfig(), fakeRun(&calls), "score", Maximize)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(trials[0].Err, dynamo.ErrInvalidConfig) {
		t.Errorf("trial 0 err = %v", trials[0].Err)
	}
	if best != 1 || calls != 1 {
		t.Errorf("best = %d, calls = %d", best, calls)
	}
}

func TestGridSearchAllFail(t *testing.T) {
	g, _ := NewGridSearch([]string{"warp"}, [][]float64{{1}})
	calls := 0
	_, _, err := g.Search(context.Background(), config.DefaultConfig(), fakeRun(&calls), "score", Maximize)
	if !errors.Is(err, ErrNoTrials) {
		t.Errorf("expected ErrNoTrials, got %v", err)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g, _ := NewGridSearch([]string{"friction"}, [][]float64{{0.9}})
	calls := 0
	if _, _, err := g.Search(context.Background(), config.DefaultConfig(), fakeRun(&calls), "bonds", Maximize); err == nil {
		t.Error("expected error for missing metric")
	}
}

func TestGridSearchCancelled(t *testing.T) {
	g, _ := NewGridSearch([]string{"friction"}, [][]float64{{0.9, 0.95, 0.99}})
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	run := func(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
		calls++
		cancel()
		return nil, ctx.Err()
	}
	_, _, err := g.Search(ctx, config.DefaultConfig(), run, "score", Maximize)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNewGridSearchValidation(t *testing.T) {
	if _, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}); err == nil {
		t.Error("mismatched lengths accepted")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}); err == nil {
		t.Error("empty range accepted")
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		want    []float64
		wantErr bool
	}{
		{"friction=0.9:1:3", "friction", []float64{0.9, 0.95, 1}, false},
		{"substeps=4,8,16", "substeps", []float64{4, 8, 16}, false},
		{"gather.pull=0.002", "gather.pull", []float64{0.002}, false},
		{"friction", "", nil, true},
		{"=1,2", "", nil, true},
		{"friction=a:b:3", "", nil, true},
		{"friction=0:1:0", "", nil, true},
		{"friction=1,x", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, vals, err := ParseAxis(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.name || len(vals) != len(tt.want) {
				t.Fatalf("got %s %v", name, vals)
			}
			for i := range vals {
				if math.Abs(vals[i]-tt.want[i]) > 1e-12 {
					t.Errorf("vals[%d] = %v, want %v", i, vals[i], tt.want[i])
				}
			}
		})
	}
}
