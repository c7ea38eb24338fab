// Package truth implements the fixed-size truth-table value type used
// throughout the resynthesis engine (decomp, libmatch, cellib) and the pure
// composition functions spec.md's design notes ask for: Stretch, Expand,
// Cofactor, and Mux.
//
// A Table is always a full 64-bit word addressed by a 6-bit canonical
// minterm index: bit i of the index selects the value of canonical
// variable i (0..5), independent of how many "real" variables the function
// currently depends on. A Table never carries its own width; instead every
// table that matters is paired with a Support — an ordered list of real
// divisor ids, at most 6 long, naming which divisor canonical variable i
// stands for. A Table whose Support has fewer than 6 entries is simply a
// function that does not depend on the remaining canonical variables (its
// bits are constant along those axes); Stretch/Expand exist to reshuffle
// and widen a Table from one Support to a larger or reordered one so two
// sub-results with different supports can be combined (the decomposition
// engine's MUX-compose step, spec.md §4.4b.8).
//
// This grounds matrix/ops_elementwise.go's bitwise elementwise style,
// generalized from Matrix rows to a single machine word, since spec.md's
// design notes call for "fixed-size value types with width tagged by
// support size" rather than a Matrix-backed representation.
package truth
