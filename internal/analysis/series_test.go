package analysis

import (
	"math"
	"testing"
)

func sine(n int, period float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 10 + 3*math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

func TestPowerSpectrum(t *testing.T) {
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("single sample should have no spectrum")
	}
	ps := PowerSpectrum(sine(128, 16))
	if len(ps) != 65 {
		t.Fatalf("bins = %d, want 65", len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean not removed: dc = %g", ps[0])
	}
	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("peak bin = %d, want 8", peak)
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		period float64
		ok     bool
	}{
		{"sine", sine(256, 32), 32, true},
		{"flat", []float64{4, 4, 4, 4, 4, 4}, 0, false},
		{"too short", []float64{1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := DominantPeriod(tt.data)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(p-tt.period) > 1e-9 {
				t.Errorf("period = %f, want %f", p, tt.period)
			}
		})
	}
}

func TestSettleTick(t *testing.T) {
	ramp := make([]float64, 100)
	climb := make([]float64, 100)
	for i := range ramp {
		ramp[i] = math.Min(float64(i), 40)
		climb[i] = float64(i)
	}

	tests := []struct {
		name    string
		data    []float64
		tick    int
		settled bool
	}{
		{"empty", nil, 0, false},
		{"flat", []float64{3, 3, 3}, 0, true},
		{"ramp then plateau", ramp, 38, true},
		{"still climbing", climb, 95, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tick, settled := SettleTick(tt.data, DefaultTolerance)
			if tick != tt.tick || settled != tt.settled {
				t.Errorf("got (%d, %v), want (%d, %v)", tick, settled, tt.tick, tt.settled)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9}, DefaultTolerance)
	if s.Samples != 8 || s.Mean != 5 || s.Min != 2 || s.Max != 9 || s.Final != 9 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.StdDev-math.Sqrt(32.0/7)) > 1e-12 {
		t.Errorf("stddev = %f", s.StdDev)
	}

	if z := Summarize(nil, DefaultTolerance); z.Samples != 0 || z.Settled {
		t.Errorf("empty summary %+v", z)
	}
	if one := Summarize([]float64{3}, DefaultTolerance); one.StdDev != 0 {
		t.Errorf("single sample stddev = %f", one.StdDev)
	}
}
