package decomp

import (
	"math/bits"

	"github.com/katalvlaran/lvlath-sfm/satsolver"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// patternState is simulate.PatternSet re-keyed by window W-index (rather
// than network.GateID) so this package can index divisor columns directly
// by the same widx the cnf.Encoding uses for DivisorVar/DivisorAssumption.
// It is private, mutable scratch owned by a single top-level RewriteOnly or
// Recursive call; restrict makes a copy rather than mutating in place so
// sibling cofactor branches never see each other's SAT-query growth.
type patternState struct {
	nPats [2]int
	uMask [2]uint64
	vSets [2][]uint64 // [side][widx], low nPats[side] bits meaningful
}

func newPatternState(ws *window.State, ps simulate.PatternSet) *patternState {
	pst := &patternState{nPats: ps.NPats, uMask: ps.UMask}
	for c := 0; c < 2; c++ {
		pst.vSets[c] = make([]uint64, ws.NDivs)
		for widx := 0; widx < ws.NDivs; widx++ {
			pst.vSets[c][widx] = ps.VSets[c][ws.W[widx].ID]
		}
	}

	return pst
}

// restrict returns a copy of pst with side masks intersected down to the
// patterns where divisor widx equals value — the cofactor recursion's "push
// a restriction down the tree" step.
func restrict(pst *patternState, widx int, value bool) *patternState {
	out := &patternState{nPats: pst.nPats, uMask: pst.uMask}
	for c := 0; c < 2; c++ {
		out.vSets[c] = append([]uint64(nil), pst.vSets[c]...)
		col := pst.vSets[c][widx]
		keep := col
		if !value {
			keep = ^col
		}
		out.uMask[c] &= keep
	}

	return out
}

// appendPattern snapshots the solver's current model (valid right after a
// Sat result) as a fresh pattern column on side c, up to a 64-pattern cap
// per side (the word width backing uMask/vSets).
func appendPattern(solver *satsolver.Solver, divisorVar func(int) satsolver.Var, ndivs int, pst *patternState, c int) {
	if pst.nPats[c] >= 64 {
		return
	}
	bitpos := uint(pst.nPats[c])
	for widx := 0; widx < ndivs; widx++ {
		if solver.VarValue(divisorVar(widx)) == satsolver.LTrue {
			pst.vSets[c][widx] |= 1 << bitpos
		}
	}
	pst.nPats[c]++
	pst.uMask[c] |= 1 << bitpos
}

// columnConstant reports whether col is constant across the patterns named
// by mask, and if so, which value.
func columnConstant(col, mask uint64) (value, ok bool) {
	if mask == 0 {
		return false, false
	}
	masked := col & mask
	if masked == 0 {
		return false, true
	}
	if masked == mask {
		return true, true
	}

	return false, false
}

// weight scores a candidate literal by how many patterns on the opposite
// side already agree with wantVal under mask — the heuristic both
// RewriteOnly's implication ranking and Recursive's cofactor-variable
// selection use to prefer literals that explain the most side-mismatched
// behavior at once.
func weight(col, mask uint64, wantVal bool) int {
	masked := col & mask
	if wantVal {
		return bits.OnesCount64(masked)
	}

	return bits.OnesCount64(mask &^ masked)
}

func boolIdx(v bool) int {
	if v {
		return 1
	}

	return 0
}

func boolTable(v bool) truth.Table {
	if v {
		return truth.Const1
	}

	return truth.Const0
}

func toTable(r Result) truth.Table {
	if r.IsConst {
		return boolTable(r.ConstValue)
	}

	return r.Table
}

func toSupport(r Result) truth.Support {
	if r.IsConst {
		return nil
	}

	return r.Support
}

func supportsEqual(a, b truth.Support) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func indexOf(support truth.Support, id int) int {
	for i, s := range support {
		if s == id {
			return i
		}
	}

	return -1
}
