package libmatch

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/truth"
)

// FindAreaMatch returns the lowest-area library gate whose truth table
// equals t under some permutation of support, or (Match{}, false) if none
// of lib's gates have exactly len(support) inputs and match.
//
// Complexity: O(NumGates * NumIns!) worst case; NumIns <= truth.MaxVars
// (6) and real libraries rarely need the full factorial search (most
// matches land on the identity or a single transposition).
func FindAreaMatch(lib *cellib.Library, t truth.Table, support truth.Support) (Match, bool) {
	n := len(support)
	best := Match{}
	found := false

	for h := 0; h < lib.NumGates(); h++ {
		g, err := lib.Gate(cellib.Handle(h))
		if err != nil || g.NumIns != n {
			continue
		}
		if perm, ok := matchPermutation(t, g.Truth, n); ok {
			if !found || g.Area < best.Area {
				best = Match{Area: g.Area, Gate: cellib.Handle(h), Perm: perm}
				found = true
			}
		}
	}

	return best, found
}

// matchPermutation searches for a pin assignment perm (length n, perm[k]
// is the support position feeding pin k) such that embedGate(cand, n,
// perm, n) equals want. Returns the first permutation found.
func matchPermutation(want, cand truth.Table, n int) ([]int, bool) {
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}

	var result []int
	forEachPermutation(base, func(p []int) bool {
		if embedGate(cand, n, p, n) == want {
			result = append([]int(nil), p...)

			return true
		}

		return false
	})

	return result, result != nil
}

// embedGate evaluates gt (a function of numIns canonical pins) as a
// function of n outer variables, where pin k reads outer variable
// assign[k] — or is treated as a don't-care if assign[k] < 0, which is
// only sound when gt provably does not depend on pin k (as guaranteed by
// composeTwoGates's cofactor-before-embed discipline).
//
// Complexity: O(2^n * numIns).
func embedGate(gt truth.Table, numIns int, assign []int, n int) truth.Table {
	var res uint64
	total := 1 << uint(n)
	for m := 0; m < total; m++ {
		var idx int
		for k := 0; k < numIns; k++ {
			pos := assign[k]
			if pos < 0 {
				continue
			}
			if (m>>uint(pos))&1 == 1 {
				idx |= 1 << uint(k)
			}
		}
		if (uint64(gt)>>uint(idx))&1 == 1 {
			res |= 1 << uint(m)
		}
	}

	return truth.Table(res)
}

// forEachPermutation visits every permutation of items (recursive
// swap-and-backtrack enumeration, grounded on cellib.permute), stopping early once visit returns true.
func forEachPermutation(items []int, visit func([]int) bool) bool {
	perm := append([]int(nil), items...)

	var rec func(k int) bool
	rec = func(k int) bool {
		if k == len(perm) {
			return visit(perm)
		}
		for i := k; i < len(perm); i++ {
			perm[k], perm[i] = perm[i], perm[k]
			if rec(k + 1) {
				perm[k], perm[i] = perm[i], perm[k]

				return true
			}
			perm[k], perm[i] = perm[i], perm[k]
		}

		return false
	}

	return rec(0)
}

// forEachKPermutation visits every ordered k-subset of {0,..,n-1}.
func forEachKPermutation(n, k int, visit func([]int) bool) bool {
	used := make([]bool, n)
	cur := make([]int, 0, k)

	var rec func() bool
	rec = func() bool {
		if len(cur) == k {
			return visit(cur)
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, i)
			if rec() {
				return true
			}
			cur = cur[:len(cur)-1]
			used[i] = false
		}

		return false
	}

	return rec()
}

// complement returns the sorted positions in 0..n-1 absent from chosen.
func complement(n int, chosen []int) []int {
	taken := make([]bool, n)
	for _, c := range chosen {
		taken[c] = true
	}
	out := make([]int, 0, n-len(chosen))
	for i := 0; i < n; i++ {
		if !taken[i] {
			out = append(out, i)
		}
	}

	return out
}
