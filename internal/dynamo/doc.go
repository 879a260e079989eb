// Package dynamo provides the core data model of the atom simulation.
//
// The package defines the entities every solver operates on:
//
//   - [Atom]: a soft-body point mass with position, velocity, element and isotope
//   - [Bonds]: the explicit multiset of bonded partners and their bond orders
//   - [World]: a dense arena of atoms with stable [AtomID] handles
//   - [Config]: the physics tunables shared by every solver
//
// The bond graph is symmetric: whenever atom A lists B with order n, B lists A
// with the same order. All mutation goes through [World.AddBond],
// [World.BreakBond], [World.DecrementBond] and [World.ClearBonds] (or their
// pointer forms) so the invariant cannot be broken from one side.
//
// # Example
//
//	w := dynamo.NewWorld()
//	h := w.Add(hydrogen, 0, r2.Vec{X: 10, Y: 10})
//	o := w.Add(oxygen, 0, r2.Vec{X: 40, Y: 10})
//	w.AddBond(h.ID, o.ID)
//	order := w.BondOrder(h.ID, o.ID) // 1
//
// # Thread Safety
//
// World is NOT thread-safe. It is owned by a single engine and mutated from
// one goroutine.
package dynamo
