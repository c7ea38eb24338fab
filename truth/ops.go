// Package truth: pure composition kernels over Table values.
//
// Every function here is a pure function of its arguments — no Table ever
// mutates in place, matching spec.md's design
// note that stretch/expand/mux "remain pure functions over such values".
package truth

// Cofactor restricts t to the minterms where canonical variable i equals
// val, then broadcasts that restriction back across both values of
// variable i, so the result no longer depends on i at all.
//
// Complexity: O(1) (64-minterm loop, unrolled by the compiler on most
// targets; MaxVars is fixed so this never grows).
func Cofactor(t Table, i int, val bool) Table {
	var res uint64
	for m := 0; m < 64; m++ {
		mi := m
		if val {
			mi |= 1 << uint(i)
		} else {
			mi &^= 1 << uint(i)
		}
		if (uint64(t)>>uint(mi))&1 == 1 {
			res |= 1 << uint(m)
		}
	}

	return Table(res)
}

// Mux implements ITE(sel, t1, t0): for every minterm, selects t1's value
// where sel is true and t0's value where sel is false. sel is itself a
// Table (ordinarily Var(i) for some canonical variable i), letting callers
// compose on any already-aligned selector, not just a bare variable.
//
// This is the truth-table MUX the decomposition engine's cofactor
// composition step (spec.md §4.4b.8, and property 6 in §8) uses to merge
// two sub-results after a cofactor split: Mux(Var(v), t1, t0).
//
// Complexity: O(1).
func Mux(sel, t1, t0 Table) Table {
	return (sel & t1) | (^sel & t0)
}

// indexOf returns the position of id within support, or -1 if absent.
func indexOf(support Support, id int) int {
	for i, s := range support {
		if s == id {
			return i
		}
	}

	return -1
}

// Stretch reshapes t, currently expressed over oldSupport, into a table
// expressed over newSupport — a superset (as a set) of oldSupport, in any
// order. Canonical variables of the result that correspond to ids not in
// oldSupport are don't-cares: the returned table does not depend on them.
//
// Contracts:
//   - every id in oldSupport must appear in newSupport (Stretch panics
//     otherwise: an engine bug, not a caller-input error — the decomposition
//     engine always builds newSupport as sort(S0 ∪ S1 ∪ {Var})).
//   - len(newSupport) <= MaxVars.
//
// Complexity: O(2^len(newSupport)) <= O(64).
func Stretch(t Table, oldSupport, newSupport Support) Table {
	if len(newSupport) > MaxVars {
		panic("truth: Stretch: newSupport exceeds MaxVars")
	}

	// Precompute, for each old-support slot, its position within newSupport.
	posInNew := make([]int, len(oldSupport))
	for i, id := range oldSupport {
		j := indexOf(newSupport, id)
		if j < 0 {
			panic("truth: Stretch: oldSupport is not a subset of newSupport")
		}
		posInNew[i] = j
	}

	n := len(newSupport)
	total := 1 << uint(n)
	var res uint64
	for m := 0; m < total; m++ {
		// Project minterm m (over newSupport) down onto oldSupport's bits.
		var mOld int
		for i, pos := range posInNew {
			if (m>>uint(pos))&1 == 1 {
				mOld |= 1 << uint(i)
			}
		}
		if (uint64(t)>>uint(mOld))&1 == 1 {
			res |= 1 << uint(m)
		}
	}

	return Table(res)
}

// Expand is an alias for Stretch kept for symmetry with spec.md's naming
// ("stretch, expand, mux"): Expand widens a table to a larger support with
// no reordering concern beyond what Stretch already handles. The original
// C source distinguishes the two (stretch permutes within a fixed width,
// expand grows the width); since Table is always a fixed 64-bit word here,
// both operations reduce to the same remap, so Expand simply forwards.
//
// Complexity: see Stretch.
func Expand(t Table, oldSupport, newSupport Support) Table {
	return Stretch(t, oldSupport, newSupport)
}

// SortedUnion returns the sorted union of two supports plus v (used to
// build the composed support for a cofactor-split MUX result). Duplicate
// ids across a, b, and v appear once in the result.
//
// Complexity: O(n^2) (insertion sort) where n = len(a)+len(b)+1.
func SortedUnion(a, b Support, v int) Support {
	seen := make(map[int]struct{}, len(a)+len(b)+1)
	out := make(Support, 0, len(a)+len(b)+1)
	add := func(id int) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	add(v)
	for _, id := range a {
		add(id)
	}
	for _, id := range b {
		add(id)
	}
	// Simple insertion sort: supports are bounded by MaxVars*2+1, never worth
	// pulling in sort.Ints for.
	for i := 1; i < len(out); i++ {
		key := out[i]
		j := i - 1
		for j >= 0 && out[j] > key {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = key
	}

	return out
}
