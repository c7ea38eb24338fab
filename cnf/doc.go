// Package cnf builds the SAT encoding of one extracted window (spec.md
// §4.3): the TFI cone instantiated once, the TFO cone instantiated twice
// (copy-A and copy-B, sharing every variable up to and including the
// pivot's upstream logic but diverging at the pivot itself), and an
// XOR+OR "observability" gadget forcing some root to disagree between the
// two copies.
//
// Grounded on the vendored gini/logic.C reference's ToCnf/addAnd pattern
// (Tseitin clause emission per gate, skip-if-already-resolved) —
// generalized here from a fixed AND/OR circuit to cellib's per-gate CNF
// Template, and applied twice over the same upstream prefix to build the
// duplicated-cone observability encoding.
//
// Variable layout departs from spec.md's literal arithmetic by exactly one
// slot: the pivot needs a dedicated free variable for copy-B (PivotVarB)
// so the two copies can actually take different pivot values under a
// shared upstream; reusing the copy-A pivot variable for both, as a literal
// reading of "leaves and pivot reuse the TFI ids" would imply, collapses
// the two copies onto an identical pivot value and makes the divergence
// check vacuous. See DESIGN.md for this resolution.
package cnf
