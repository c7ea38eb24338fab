package libmatch

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/truth"
)

// maxDelayMatches bounds how many candidates FindDelayMatches returns,
// matching spec.md §4.5's "a small candidate set of 1- or 2-gate
// decompositions".
const maxDelayMatches = 6

// FindDelayMatches returns up to maxDelayMatches single- or two-gate
// realizations of t over support, cheapest (fewest gates) first within
// each gate-count tier. package rewrite's delay_opt_one evaluates each
// against the timing engine and keeps the fastest.
//
// Two-gate search is restricted to the structurally common case: gate g1
// drives exactly one pin of gate g2, g1 consumes a subset of support, and
// g2's remaining pins consume the rest — i.e. len(support) ==
// g1.NumIns + g2.NumIns - 1, the same shape as an AOI/OAI compound cell's
// decomposition into its two halves.
//
// Complexity: bounded by NumGates^2 * NumIns! * (NumIns-1)! — acceptable
// for the tens-of-cells libraries this engine targets; see doc.go.
func FindDelayMatches(lib *cellib.Library, t truth.Table, support truth.Support, k int) []DelayMatch {
	if k <= 0 || k > maxDelayMatches {
		k = maxDelayMatches
	}
	n := len(support)
	var out []DelayMatch

	if m, ok := FindAreaMatch(lib, t, support); ok {
		out = append(out, DelayMatch{Gate1: m.Gate, Perm1: m.Perm, Gate2: cellib.InvalidHandle})
	}

	for g1h := 0; g1h < lib.NumGates() && len(out) < k; g1h++ {
		g1, err := lib.Gate(cellib.Handle(g1h))
		if err != nil || g1.NumIns == 0 || g1.NumIns > n {
			continue
		}
		forEachKPermutation(n, g1.NumIns, func(assignG1 []int) bool {
			rest := complement(n, assignG1)
			for g2h := 0; g2h < lib.NumGates(); g2h++ {
				g2, err := lib.Gate(cellib.Handle(g2h))
				if err != nil || g2.NumIns == 0 || g2.NumIns-1 != len(rest) {
					continue
				}
				for p0 := 0; p0 < g2.NumIns; p0++ {
					if tryComposeAt(lib, t, n, cellib.Handle(g1h), g1.NumIns, assignG1, cellib.Handle(g2h), g2.NumIns, p0, rest, &out) {
						return len(out) >= k
					}
				}
			}

			return len(out) >= k
		})
	}

	if len(out) > k {
		out = out[:k]
	}

	return out
}

// tryComposeAt tries assignments of rest onto g2's non-p0 pins until one
// makes the composition equal to t, appends that one DelayMatch to out,
// and returns whether it found one (the caller checks its cap via
// len(*out) after return, matching forEachKPermutation's early-stop
// contract).
func tryComposeAt(lib *cellib.Library, t truth.Table, n int, g1h cellib.Handle, n1 int, assignG1 []int, g2h cellib.Handle, n2 int, p0 int, rest []int, out *[]DelayMatch) bool {
	g1, _ := lib.Gate(g1h)
	g2, _ := lib.Gate(g2h)

	stop := false
	forEachPermutation(rest, func(restPerm []int) bool {
		assignG2 := make([]int, n2)
		ri := 0
		for p := 0; p < n2; p++ {
			if p == p0 {
				assignG2[p] = -1

				continue
			}
			assignG2[p] = restPerm[ri]
			ri++
		}
		if composeTwoGates(g1.Truth, n1, assignG1, g2.Truth, p0, assignG2, n) == t {
			*out = append(*out, DelayMatch{
				Gate1:      g1h,
				Perm1:      append([]int(nil), assignG1...),
				Gate2:      g2h,
				Perm2:      assignG2,
				PinOfGate1: p0,
			})
			stop = true
		}

		return stop
	})

	return stop
}

// composeTwoGates evaluates, as a function of n outer variables, the
// circuit "g1 over assign1 drives pin p0 of g2; g2's remaining pins read
// assign2". It cofactors g2 on p0 before embedding each half, so assign2's
// entry at p0 is never consulted (embedGate's assign[k]<0 discipline).
//
// Complexity: O(2^n) (two embedGate calls plus one Mux).
func composeTwoGates(g1t truth.Table, n1 int, assign1 []int, g2t truth.Table, p0 int, assign2 []int, n int) truth.Table {
	f1 := embedGate(g1t, n1, assign1, n)
	c1 := truth.Cofactor(g2t, p0, true)
	c0 := truth.Cofactor(g2t, p0, false)
	e1 := embedGate(c1, len(assign2), assign2, n)
	e0 := embedGate(c0, len(assign2), assign2, n)

	return truth.Mux(f1, e1, e0)
}
