package decomp

import (
	"github.com/katalvlaran/lvlath-sfm/cnf"
	"github.com/katalvlaran/lvlath-sfm/satsolver"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// implication records a confirmed "divisor widx == val forces the pivot to
// side" fact discovered by decCtx.scanImplications; side is the complement
// of the pivot value whose probe found it.
type implication struct {
	widx int
	val  bool
	side bool
}

// decCtx holds the state shared across one Recursive call's whole
// recursion tree: the encoding/window it queries, the decomposition
// bounds, and which divisors are already committed as cofactor variables
// higher up the tree (used, so no branch re-splits on the same divisor).
type decCtx struct {
	enc  *cnf.Encoding
	ws   *window.State
	cfg  Config
	used map[int]bool
}

// Recursive implements spec.md §4.4b: the cofactor-recursive decomposition
// flavor. forbidden seeds ctx.used so a caller (package resynth, diversifying
// retries per spec.md's fMoreEffort note) can exclude divisors a prior
// attempt already cofactored on. iUseThis, if >= 0, is a window divisor
// W-index the very first recursion level must cofactor on directly,
// skipping its own implication/AND-OR search.
//
// Complexity: exponential in the decomposition depth in the worst case,
// bounded in practice by cfg.NVarMax (a successful composed support can
// never exceed it) and cfg.NBTLimit per SAT query.
func Recursive(enc *cnf.Encoding, ws *window.State, ps simulate.PatternSet, cfg Config, iUseThis int, forbidden []int) (Result, error) {
	pst := newPatternState(ws, ps)
	ctx := &decCtx{enc: enc, ws: ws, cfg: cfg, used: make(map[int]bool, len(forbidden))}
	for _, f := range forbidden {
		ctx.used[f] = true
	}

	return ctx.decRec(nil, pst, len(forbidden), iUseThis)
}

// decRec is one recursion level: spec.md §4.4b's numbered steps 1-6.
func (ctx *decCtx) decRec(prefix []satsolver.Lit, pst *patternState, nSuppAdd, iUseThis int) (Result, error) {
	// Step 1: a side with zero live patterns needs a direct SAT probe —
	// either it proves the pivot constant under prefix, or it seeds a
	// first pattern for that side so later steps have something to read.
	for cInt := 0; cInt < 2; cInt++ {
		if pst.uMask[cInt] != 0 {
			continue
		}
		cBool := cInt == 1
		assump := append(append([]satsolver.Lit(nil), prefix...), ctx.enc.PivotAssumptions(cBool)...)
		res := ctx.enc.Solver.Solve(assump, ctx.cfg.NBTLimit)
		switch res {
		case satsolver.Undef:
			return Result{}, ErrTimeout
		case satsolver.Unsat:
			return Result{IsConst: true, ConstValue: !cBool}, nil
		}
		appendPattern(ctx.enc.Solver, ctx.enc.DivisorVar, ctx.ws.NDivs, pst, cInt)
	}

	// Step 2: caller-forced first cofactor.
	if iUseThis >= 0 {
		return ctx.cofactorSplit(prefix, pst, nSuppAdd, iUseThis)
	}

	impls := ctx.scanImplications(prefix, pst)

	// Step 3: the same divisor implicated on both sides with opposite
	// polarity means the pivot equals (or is the inverse of) that divisor
	// outright — no gate needed.
	if widx, neg, ok := sameVariableBothSides(impls); ok {
		t := truth.Var(0)
		if neg {
			t = truth.Not(t)
		}

		return Result{Table: t, Support: truth.Support{widx}}, nil
	}

	// Step 4: two or more opposite-side implications compress into a
	// single AND/OR gate when their conjunction's UNSAT core stays small.
	if ctx.cfg.UseAndOr && nSuppAdd <= ctx.cfg.NVarMax-2 {
		res, ok, err := ctx.tryAndOr(prefix, pst, nSuppAdd, impls)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return res, nil
		}
	}

	// Step 5: fall back to the cheapest cofactor split by weight.
	varWidx, ok := ctx.pickCofactor(pst)
	if !ok {
		return Result{}, ErrNoDecomposition
	}

	return ctx.cofactorSplit(prefix, pst, nSuppAdd, varWidx)
}

// cofactorSplit recurses on divisor varWidx fixed to false then true,
// marks varWidx used for the duration (so neither branch re-splits on it),
// and composes the two sub-results via truth.Mux (step 6).
func (ctx *decCtx) cofactorSplit(prefix []satsolver.Lit, pst *patternState, nSuppAdd, varWidx int) (Result, error) {
	if ctx.used[varWidx] {
		return Result{}, ErrNoDecomposition
	}
	ctx.used[varWidx] = true
	defer delete(ctx.used, varWidx)

	var branch [2]Result
	for _, val := range [2]bool{false, true} {
		childPst := restrict(pst, varWidx, val)
		childPrefix := append(append([]satsolver.Lit(nil), prefix...), ctx.enc.DivisorAssumption(varWidx, val))
		res, err := ctx.decRec(childPrefix, childPst, nSuppAdd+1, -1)
		if err != nil {
			return Result{}, err
		}
		branch[boolIdx(val)] = res
	}

	t0, t1 := toTable(branch[0]), toTable(branch[1])
	s0, s1 := toSupport(branch[0]), toSupport(branch[1])
	if t0 == t1 && supportsEqual(s0, s1) {
		return branch[0], nil
	}

	support := truth.SortedUnion(s0, s1, varWidx)
	if len(support) > ctx.cfg.NVarMax {
		return Result{}, ErrSupportOverflow
	}
	b0 := truth.Stretch(t0, s0, support)
	b1 := truth.Stretch(t1, s1, support)
	sel := truth.Var(indexOf(support, varWidx))

	return Result{Table: truth.Mux(sel, b1, b0), Support: support}, nil
}

// scanImplications is the same single-literal-implication search
// RewriteOnly's findBestImplication runs, generalized to return every
// confirmed implication per side (not just the cheapest one), since steps
// 3 and 4 both need the full list.
func (ctx *decCtx) scanImplications(prefix []satsolver.Lit, pst *patternState) [2][]implication {
	var out [2][]implication
	for cInt := 0; cInt < 2; cInt++ {
		cBool := cInt == 1
		mask := pst.uMask[cInt]
		for widx := 0; widx < ctx.ws.NDivs; widx++ {
			if ctx.used[widx] {
				continue
			}
			val, ok := columnConstant(pst.vSets[cInt][widx], mask)
			if !ok {
				continue
			}
			assump := append(append([]satsolver.Lit(nil), prefix...), ctx.enc.PivotAssumptions(cBool)...)
			assump = append(assump, ctx.enc.DivisorAssumption(widx, !val))
			res := ctx.enc.Solver.Solve(assump, ctx.cfg.NBTLimit)
			switch res {
			case satsolver.Unsat:
				out[cInt] = append(out[cInt], implication{widx: widx, val: !val, side: !cBool})
			case satsolver.Sat:
				appendPattern(ctx.enc.Solver, ctx.enc.DivisorVar, ctx.ws.NDivs, pst, cInt)
			}
		}
	}

	return out
}

// sameVariableBothSides looks for one divisor with complementary
// implications from both pivot-side probes — "divisor==true forces
// pivot==s1" and "divisor==false forces pivot==s0", with s1 != s0 — which
// together cover both divisor values and prove the pivot is exactly that
// divisor (s1 true: identity) or its complement (s1 false: inverted).
func sameVariableBothSides(impls [2][]implication) (widx int, neg bool, ok bool) {
	for _, a := range impls[0] {
		for _, b := range impls[1] {
			if a.widx != b.widx || a.val == b.val || a.side == b.side {
				continue
			}
			trueEntry := a
			if !a.val {
				trueEntry = b
			}

			return a.widx, !trueEntry.side, true
		}
	}

	return 0, false, false
}

// tryAndOr is spec.md §4.4b's step 4: testing pivot==c alongside every
// opposite-side implication literal at once. A small enough UNSAT core
// compresses to a single AND (c tested false) or OR (c tested true) gate.
func (ctx *decCtx) tryAndOr(prefix []satsolver.Lit, pst *patternState, nSuppAdd int, impls [2][]implication) (Result, bool, error) {
	for cInt := 0; cInt < 2; cInt++ {
		opp := 1 - cInt
		if len(impls[opp]) < 2 {
			continue
		}
		cBool := cInt == 1
		assump := append(append([]satsolver.Lit(nil), prefix...), ctx.enc.PivotAssumptions(cBool)...)
		for _, im := range impls[opp] {
			assump = append(assump, ctx.enc.DivisorAssumption(im.widx, !im.val))
		}
		res := ctx.enc.Solver.Solve(assump, ctx.cfg.NBTLimit)
		switch res {
		case satsolver.Undef:
			return Result{}, false, ErrTimeout
		case satsolver.Sat:
			continue
		}

		core := ctx.minimizeCore()
		lits := filterToCandidates(core, ctx.enc, impls[opp])
		if len(lits) == 0 || len(lits) > ctx.cfg.NVarMax-nSuppAdd {
			continue
		}

		return buildAndOr(cBool, lits), true, nil
	}

	return Result{}, false, nil
}

// buildAndOr realizes the literals surviving tryAndOr's core as a single
// AND gate (cTested false) or OR gate (cTested true) over canonical
// variables numbered by lits's order: the AND reads each divisor at the
// value opposite its implication literal, the OR at the literal's value.
func buildAndOr(cTested bool, lits []implication) Result {
	support := make(truth.Support, len(lits))
	for i, im := range lits {
		support[i] = im.widx
	}

	if !cTested {
		t := truth.Const1
		for i, im := range lits {
			v := truth.Var(i)
			if im.val {
				v = truth.Not(v)
			}
			t = truth.And(t, v)
		}

		return Result{Table: t, Support: support}
	}

	t := truth.Const0
	for i, im := range lits {
		v := truth.Var(i)
		if !im.val {
			v = truth.Not(v)
		}
		t = truth.Or(t, v)
	}

	return Result{Table: t, Support: support}
}

// minimizeCore retries UNSAT-core extraction with one core literal dropped
// at a time, up to cfg.NCoreMinTries successful shrinks, matching spec.md
// §9's supplemented minimizeCore feature.
func (ctx *decCtx) minimizeCore() []satsolver.Lit {
	cur := ctx.enc.Solver.FinalConflict()
	tries := ctx.cfg.NCoreMinTries
	for tries > 0 && len(cur) > 1 {
		shrunk := false
		for i := range cur {
			reduced := append(append([]satsolver.Lit(nil), cur[:i]...), cur[i+1:]...)
			res := ctx.enc.Solver.Solve(reduced, ctx.cfg.NBTLimit)
			if res == satsolver.Unsat {
				cur = ctx.enc.Solver.FinalConflict()
				shrunk = true
				tries--

				break
			}
		}
		if !shrunk {
			break
		}
	}

	return cur
}

// filterToCandidates keeps only the core literals whose variable matches
// one of candidates (the core may also carry pivot/prefix literals).
func filterToCandidates(core []satsolver.Lit, enc *cnf.Encoding, candidates []implication) []implication {
	present := make(map[satsolver.Var]bool, len(core))
	for _, l := range core {
		present[l.Var()] = true
	}
	var out []implication
	for _, im := range candidates {
		if present[enc.DivisorVar(im.widx)] {
			out = append(out, im)
		}
	}

	return out
}

// pickCofactor chooses the unused divisor with the lowest weight cost
// against the opposite-side mask, spec.md §4.4b's fallback cofactor
// selection when neither step 3 nor step 4 applied.
func (ctx *decCtx) pickCofactor(pst *patternState) (int, bool) {
	best := -1
	bestCost := 0
	found := false
	for widx := 0; widx < ctx.ws.NDivs; widx++ {
		if ctx.used[widx] {
			continue
		}
		for cInt := 0; cInt < 2; cInt++ {
			mask := pst.uMask[1-cInt]
			col := pst.vSets[1-cInt][widx]
			cost := weight(col, mask, true)
			if alt := weight(col, mask, false); alt < cost {
				cost = alt
			}
			if !found || cost < bestCost {
				bestCost = cost
				best = widx
				found = true
			}
		}
	}

	return best, found
}
