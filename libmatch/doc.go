// Package libmatch implements spec.md §4.5's library matcher: given a
// decomposition result (a truth.Table plus the window divisors forming its
// support), find the lowest-area standard cell realizing it, or a small set
// of one/two-gate realizations ranked for delay, and turn either into a
// Plan package rewrite can materialize as real network.Net gates.
//
// Matching is up to input permutation only (this library's cells are
// stored with a fixed pin order per truth.Table already encoding any
// needed polarity, since package decomp composes polarity into the
// Table itself via truth.Not/truth.Mux before ever reaching this
// package) — grounded on cellib's own FindComplInputGate permutation
// search (cellib/methods.go) and on builder/validators.go's style of
// validating a candidate against a fixed shape rather than mutating it.
//
// Two-gate delay matching composes a driving gate's truth table into one
// pin of a consuming gate via embedGate/composeTwoGates: pure functions in
// the same spirit as package truth's Cofactor/Mux, kept local to this
// package since they operate on library gates (cellib.Gate), not bare
// truth.Table values, and are not part of truth's minimal public surface.
package libmatch
