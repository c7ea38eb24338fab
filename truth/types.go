package truth

import "math/bits"

// MaxVars is the largest number of canonical variables a Table can carry
// (spec.md's nVarMax default and hard ceiling). A 64-bit word covers
// exactly 2^6 = 64 minterms, so MaxVars is fixed at compile time rather
// than configurable.
const MaxVars = 6

// Table is a 6-variable truth table packed into a 64-bit word: bit m of
// the word is the function's value at minterm m, where bit i of m (for
// i in 0..MaxVars-1) is canonical variable i's value.
//
// Table is a value type; callers pass it by value and combine tables with
// the pure functions in ops.go (Cofactor/Mux/Stretch/Expand). It
// carries no notion of which real divisor each canonical variable names —
// pair it with a Support ([]int) for that, as package decomp and libmatch
// do.
type Table uint64

// Support names, in canonical-variable order, which real id (a divisor
// index, window position, or library pin) each of a Table's canonical
// variables 0..len(Support)-1 represents. len(Support) <= MaxVars.
type Support []int

// varMasks[i] is the canonical pattern of variable i across all 64 minterms:
// varMasks[0] = 0xAAAA..., alternating every bit; varMasks[5] alternates
// every 32 bits. These are the six atomic Tables Var(i) returns.
var varMasks = [MaxVars]uint64{
	0xAAAAAAAAAAAAAAAA,
	0xCCCCCCCCCCCCCCCC,
	0xF0F0F0F0F0F0F0F0,
	0xFF00FF00FF00FF00,
	0xFFFF0000FFFF0000,
	0xFFFFFFFF00000000,
}

// Const0 and Const1 are the all-zero / all-one tables.
const (
	Const0 Table = 0
	Const1 Table = ^Table(0)
)

// Var returns the canonical truth table of variable i (0 <= i < MaxVars).
// Var(i) itself is the identity function on that variable; ^Var(i) (via
// Not) is its inverse.
//
// Complexity: O(1).
func Var(i int) Table {
	return Table(varMasks[i])
}

// Not returns the bitwise complement of t.
//
// Complexity: O(1).
func Not(t Table) Table { return ^t }

// And, Or, Xor are the pointwise boolean combinators over full 64-bit
// words; both operands must already share the same canonical-variable
// assignment (use Stretch/Expand first if their Supports differ).
//
// Complexity: O(1) each.
func And(a, b Table) Table { return a & b }
func Or(a, b Table) Table  { return a | b }
func Xor(a, b Table) Table { return a ^ b }

// IsConst0 and IsConst1 report whether t is the all-zero / all-one table
// over however many variables its current Support names (a Table that is
// constant with respect to Support's variables may still have garbage in
// the unused high bits if constructed carelessly; all constructors in this
// package keep it clean, so these are exact equality checks).
//
// Complexity: O(1).
func IsConst0(t Table) bool { return t == Const0 }
func IsConst1(t Table) bool { return t == Const1 }

// IsConst reports whether t is constant over its first n variables,
// i.e. its value does not depend on bits 0..n-1 of the minterm index.
// This is used to test "does the function depend on support S at all"
// before committing S as a real support.
//
// Complexity: O(1).
func IsConst(t Table, n int) bool {
	if n <= 0 {
		return true
	}
	if n >= MaxVars {
		return t == Const0 || t == Const1
	}
	// A table is constant over n variables iff every pair of minterms
	// differing only in bits 0..n-1 agree; equivalently cofactoring on
	// each of those variables never changes the table.
	for i := 0; i < n; i++ {
		if Cofactor(t, i, false) != Cofactor(t, i, true) {
			return false
		}
	}

	return true
}

// CountOnes returns the number of minterms (out of 64) where t is true.
//
// Complexity: O(1) (hardware popcount via math/bits).
func CountOnes(t Table) int {
	return bits.OnesCount64(uint64(t))
}
