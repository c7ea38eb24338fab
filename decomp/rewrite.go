package decomp

import (
	"github.com/katalvlaran/lvlath-sfm/cnf"
	"github.com/katalvlaran/lvlath-sfm/satsolver"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// chainStep is one link of a RewriteOnly implication chain: "divisor widx
// observed equal to observed forces the pivot to side".
type chainStep struct {
	widx     int
	observed bool
	side     bool
}

// RewriteOnly implements spec.md §4.4a: the non-recursive flavor that
// iteratively discovers single-literal implications "divisor == v forces
// pivot == c" via SAT queries, chains up to NMffcMax+1 of them, and
// composes the chain into one truth.Table via nested truth.Mux — a
// right-leaning decision list, the shape spec.md calls "a chain of 2-input
// AND/OR gates".
//
// Complexity: O((NMffcMax+1) * NDivs) SAT queries, each bounded by
// cfg.NBTLimit backtracks.
func RewriteOnly(enc *cnf.Encoding, ws *window.State, ps simulate.PatternSet, cfg Config) (Result, error) {
	pst := newPatternState(ws, ps)

	for cInt := 0; cInt < 2; cInt++ {
		cBool := cInt == 1
		res := enc.Solver.Solve(enc.PivotAssumptions(cBool), cfg.NBTLimit)
		switch res {
		case satsolver.Undef:
			return Result{}, ErrTimeout
		case satsolver.Unsat:
			return Result{IsConst: true, ConstValue: !cBool}, nil
		}
		pst.nPats[cInt] = 1
		pst.uMask[cInt] = 1
		for widx := 0; widx < ws.NDivs; widx++ {
			var bit uint64
			if enc.Solver.VarValue(enc.DivisorVar(widx)) == satsolver.LTrue {
				bit = 1
			}
			pst.vSets[cInt][widx] = bit
		}
	}

	var chain []chainStep
	for iter := 0; iter <= cfg.NMffcMax; iter++ {
		step, found := findBestImplication(enc, ws, pst, cfg)
		if !found {
			break
		}
		chain = append(chain, step)
		enc.Solver.AddClause([]satsolver.Lit{
			enc.DivisorAssumption(step.widx, step.observed).Not(), // divisor != observed ...
			satsolver.MkLit(enc.PivotVarA(), !step.side),          // ... or pivot == side
		})
	}

	if len(chain) == 0 {
		return Result{}, ErrNoDecomposition
	}

	return composeChain(chain), nil
}

// findBestImplication scans both sides for a divisor whose recorded column
// is currently constant, tests whether fixing it to its opposite value
// while asserting the pivot still forces UNSAT, and among all confirmed
// implications returns the one with the lowest weight cost (fewest
// opposite-side patterns already consistent with it — spec.md's "retry
// with the next cheapest implication" ranking). SAT outcomes along the way
// grow pst with a fresh recorded pattern, same as Recursive's scan.
func findBestImplication(enc *cnf.Encoding, ws *window.State, pst *patternState, cfg Config) (chainStep, bool) {
	bestCost := -1
	var best chainStep
	found := false

	for cInt := 0; cInt < 2; cInt++ {
		cBool := cInt == 1
		mask := pst.uMask[cInt]
		for widx := 0; widx < ws.NDivs; widx++ {
			val, ok := columnConstant(pst.vSets[cInt][widx], mask)
			if !ok {
				continue
			}
			assump := append(append([]satsolver.Lit(nil), enc.PivotAssumptions(cBool)...), enc.DivisorAssumption(widx, !val))
			res := enc.Solver.Solve(assump, cfg.NBTLimit)
			switch res {
			case satsolver.Unsat:
				// UNSAT(pivot==c, divisor==!val) means divisor==!val forces
				// pivot==!c: the chain step's trigger/result pair is the
				// complement of what was assumed, not the assumption itself.
				cost := weight(pst.vSets[1-cInt][widx], pst.uMask[1-cInt], val)
				if !found || cost < bestCost {
					bestCost = cost
					best = chainStep{widx: widx, observed: !val, side: !cBool}
					found = true
				}
			case satsolver.Sat:
				appendPattern(enc.Solver, enc.DivisorVar, ws.NDivs, pst, cInt)
			}
		}
	}

	return best, found
}

// composeChain builds a nested ITE from a RewriteOnly implication chain:
// chain[len-1]'s "otherwise" branch is the complement of its own side (the
// decision list's final fallback), and every earlier step wraps that in
// one more Mux keyed on its own divisor literal.
func composeChain(chain []chainStep) Result {
	var support truth.Support
	varOf := make(map[int]int)
	for _, step := range chain {
		if _, ok := varOf[step.widx]; !ok {
			varOf[step.widx] = len(support)
			support = append(support, step.widx)
		}
	}

	last := chain[len(chain)-1]
	table := boolTable(!last.side)
	for i := len(chain) - 1; i >= 0; i-- {
		step := chain[i]
		cond := truth.Var(varOf[step.widx])
		if !step.observed {
			cond = truth.Not(cond)
		}
		table = truth.Mux(cond, boolTable(step.side), table)
	}

	return Result{Table: table, Support: support}
}
