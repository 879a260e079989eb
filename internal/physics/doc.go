// Package physics implements the per-substep solvers of the atom simulation.
//
// Every solver operates on a [Scene], the bundle of world, tunables, random
// source and particle sink for one substep:
//
//   - [Anneal]: heuristic corrections for implausible bond configurations
//   - [SolveGeometry]: VSEPR angular constraints via torque-balanced forces
//   - [Resolve]: pairwise bond springs, collisions and reaction rules
//   - [Decay]: stochastic isotope transmutation, run once per tick
//   - [Well]: the staged gravity-well attractor
//
// # Momentum
//
// Pair forces are split by inverse mass so the linear momentum of every pair
// is conserved. The geometry solver accumulates into a delta buffer indexed by
// arena slot and applies it in one pass, so iteration order never matters:
//
//	delta := make([]r2.Vec, scene.World.Len())
//	delta = physics.SolveGeometry(scene, delta)
package physics
