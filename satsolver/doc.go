// Package satsolver implements the SAT solver collaborator spec.md §6
// specifies only by its surface: assume/solve/add_clause/final_conflict,
// plus setNVars/addXor/varValue/simplify/nVars/restart/delete. Nothing
// above package window, cnf, or decomp depends on anything beyond this
// surface, so a different engine could be swapped in without touching the
// resynthesis logic — exactly the point of spec.md treating the solver as
// an out-of-scope contract.
//
// The implementation is a from-scratch DPLL search: unit propagation to
// fixpoint by repeated clause scanning (no watched literals — window sizes
// are bounded by SFM_WIN_MAX ≈ 128 variables per spec.md §5, so a simple
// scan is fast enough and far easier to read than a watcher-list CDCL), a
// deterministic "lowest unassigned variable id" branching rule (matching
// the corpus's "no time-based randomness, same input ⇒ same output"
// discipline — see tsp/rng.go's rationale, which this follows), and
// chronological backtracking bounded by a conflict budget that stands in
// for nBTLimit. This is deliberately not full clause-learning CDCL: the
// engine layers (package decomp in particular) only ever need
// assume/solve/final-conflict-core semantics, and the literal encoding
// (variable*2+polarity, see Lit) and Tseitin clause emission for AddXor
// follow the vendored github.com/irifrance/gini reference (logic.C's
// addAnd) this module was grounded on, not a hand-invented scheme.
//
// finalConflict() returns an exact minimal-effort UNSAT core only when the
// conflict is detected while propagating the assumptions themselves, before
// any search decision is made (the common case for spec.md §4.4b.5's
// AND/OR-via-UNSAT-core check, since it assumes a polarity plus a batch of
// already-known implication literals). If the solver must branch before
// finding UNSAT, FinalConflict conservatively returns the full assumption
// list — always a valid (if not minimal) core, and decomp's
// minimizeCore then trims it with a few extra Solve calls.
package satsolver
