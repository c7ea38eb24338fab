package decomp

import "github.com/katalvlaran/lvlath-sfm/simulate"

// PrecheckConstant reports whether the recorded random-pattern seed alone
// already proves the pivot is constant — spec.md §9's supplemented
// feature, grounded on the observation that a side with zero recorded
// patterns after simulate.Setup means no random vector ever drove the
// pivot to that value, a cheap signal worth checking before opening a SAT
// query at all. A false return is not proof of non-constancy: it only
// means the seed patterns were inconclusive, and RewriteOnly/Recursive's
// own SAT-backed constant check (their very first step) remains
// authoritative.
func PrecheckConstant(ps simulate.PatternSet) (isConst, value bool) {
	if ps.NPats[1] == 0 && ps.NPats[0] > 0 {
		return true, false
	}
	if ps.NPats[0] == 0 && ps.NPats[1] > 0 {
		return true, true
	}

	return false, false
}
