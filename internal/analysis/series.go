package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultTolerance is the settling band as a fraction of the series range.
const DefaultTolerance = 0.05

// Summary describes one recorded series.
type Summary struct {
	Samples    int
	Mean       float64
	StdDev     float64
	Min, Max   float64
	Final      float64
	SettleTick int
	Settled    bool
	Period     float64
	Periodic   bool
}

func Summarize(data []float64, tol float64) Summary {
	s := Summary{Samples: len(data)}
	if len(data) == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	s.Min, s.Max = floats.Min(data), floats.Max(data)
	s.Final = data[len(data)-1]
	s.SettleTick, s.Settled = SettleTick(data, tol)
	s.Period, s.Periodic = DominantPeriod(data)
	return s
}

// SettleTick returns the first index after which every sample stays within
// tol*(max-min) of the final value. A series that only settles in its last
// tenth is reported as unsettled.
func SettleTick(data []float64, tol float64) (int, bool) {
	if len(data) == 0 {
		return 0, false
	}
	span := floats.Max(data) - floats.Min(data)
	if span == 0 {
		return 0, true
	}
	band := tol * span
	final := data[len(data)-1]
	idx := len(data) - 1
	for idx > 0 && math.Abs(data[idx-1]-final) <= band {
		idx--
	}
	if idx > len(data)-len(data)/10-1 {
		return idx, false
	}
	return idx, true
}
