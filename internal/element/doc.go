// Package element holds the immutable reference data the simulation consults
// for every atom: display symbol and color, bonding capacity, valence electron
// count and the ordered isotope list with decay parameters.
//
// The table is keyed by atomic number and is never mutated once built.
//
//	tbl := element.Default()
//	carbon, ok := tbl.Lookup(6)
//	iso := carbon.Isotopes[2] // C-14
//	product, idx, ok := tbl.Product(iso)
package element
