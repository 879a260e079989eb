// Package analysis summarises recorded run series.
//
//   - [Summarize]: mean, spread, range, settling tick and dominant period
//   - [PowerSpectrum]: magnitude spectrum of a mean-removed series
//   - [DominantPeriod]: the strongest oscillation, in ticks
//   - [SettleTick]: when a series stops wandering
//
// A bond count that settles early and a kinetic energy with no dominant
// period usually mean the soup has reached equilibrium:
//
//	s := analysis.Summarize(bonds, analysis.DefaultTolerance)
//	if s.Settled {
//	    fmt.Println("equilibrium from tick", s.SettleTick)
//	}
package analysis
