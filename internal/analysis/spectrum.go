package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of each frequency bin of the series
// with its mean removed, from zero up to the Nyquist bin. Bin i is i/len
// cycles per tick.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}
	coeffs := fourier.NewFFT(len(data)).Coefficients(nil, centred)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantPeriod finds the strongest non-constant frequency and returns its
// period in ticks. It reports false for flat series or when the peak carries
// less than a fifth of the spectrum's total magnitude.
func DominantPeriod(data []float64) (float64, bool) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, false
	}
	best, total := 1, 0.0
	for i := 1; i < len(ps); i++ {
		total += ps[i]
		if ps[i] > ps[best] {
			best = i
		}
	}
	if total == 0 || ps[best] < total/5 {
		return 0, false
	}
	return float64(len(data)) / float64(best), true
}
