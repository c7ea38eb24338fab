// Package decomp implements spec.md §4.4's decomposition engine: given a
// window's cnf.Encoding and the simulator's seed PatternSet, discover a
// small truth.Table (and the window divisors forming its support) that the
// pivot can be replaced by, using the two flavors spec.md names —
// RewriteOnly's iterated-implication chain, and Recursive's cofactor
// recursion with AND/OR-via-UNSAT-core and same-variable short-circuits.
//
// Both flavors share one discipline from spec.md §9's design note: the
// recursion takes an immutable assumption-prefix slice down each call and
// keeps its own scratch state (decCtx.used, the per-side pattern columns)
// private to one top-level Recursive/RewriteOnly invocation, never mutating
// anything the caller (package resynth) still holds a reference to.
//
// Grounded on tsp/bb.go's branch-and-bound recursion shape (recurse on two
// sub-problems, compose results, bound total work) generalized from
// float-cost pruning to boolean cofactor splitting, and on
// satsolver/solve.go's assumption-literal discipline for every SAT query
// this package issues.
package decomp
