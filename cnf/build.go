package cnf

import (
	"errors"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/satsolver"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// ErrClauseRejected indicates the solver rejected a clause during CNF
// setup (spec.md §4.3/§7: "a return of unsat on any addition aborts the
// window" — a recoverable per-pivot Skip, never a panic).
var ErrClauseRejected = errors.New("cnf: solver rejected a clause during setup")

// Encoding is the SAT encoding of one window: a fresh solver plus the
// variable bookkeeping package decomp needs to build assumptions and read
// back models.
type Encoding struct {
	Solver *satsolver.Solver

	nWin      int
	iTarget   int
	pivotVarB satsolver.Var
	rootXor   []satsolver.Var // parallel to ws.Roots
	ws        *window.State
}

// DivisorVar returns the shared (copy-A and copy-B identical) solver
// variable for divisor W-index widx. Valid only for widx < ws.NDivs.
func (e *Encoding) DivisorVar(widx int) satsolver.Var { return satsolver.Var(widx) }

// PivotVarA is the copy-A pivot variable (also the shared TFI value used
// anywhere upstream logic references the pivot's position).
func (e *Encoding) PivotVarA() satsolver.Var { return satsolver.Var(e.iTarget) }

// PivotVarB is copy-B's dedicated free pivot variable.
func (e *Encoding) PivotVarB() satsolver.Var { return e.pivotVarB }

// PivotAssumptions returns the two assumption literals that assert the
// pivot equals c under copy-A and (by construction) the opposite under
// copy-B, keeping the duplicated cone's divergence-at-the-pivot invariant
// active for this query. Per spec.md §4.3's "assumption literal
// discipline", the copy-A pivot literal is always returned first.
func (e *Encoding) PivotAssumptions(c bool) []satsolver.Lit {
	return []satsolver.Lit{
		satsolver.MkLit(e.PivotVarA(), !c),
		satsolver.MkLit(e.PivotVarB(), c),
	}
}

// DivisorAssumption returns the assumption literal fixing divisor widx to
// val.
func (e *Encoding) DivisorAssumption(widx int, val bool) satsolver.Lit {
	return satsolver.MkLit(e.DivisorVar(widx), !val)
}

// Build encodes ws into a fresh solver (spec.md §4.3).
//
// Variable count: spec.md's §4.3 formula 2*nWin - nTfiSize + |Roots|
// (nTfiSize = iTarget+1, the TFI cone size including the pivot) counts the
// copy-B pivot as occupying a slot already implied by the copy-A/copy-B
// offset, derivable as the pivot's own id shifted by the same
// (nWin-nTfiSize) offset the TFO-copy loop below uses for fanin
// positions. pivotVarB here is instead a dedicated variable
// (satsolver.Var(nWin)), one slot past the shared TFI+pivot+TFO-A range,
// so this encoding actually uses nWin + 1 + numCopyB + |Roots| variables:
// exactly one more than the spec formula. Every variable in that range is
// used; the extra one is the price of giving copy-B's pivot its own slot
// instead of a shifted one.
//
// Complexity: O(len(ws.W)) clause-sized work, since each gate's template
// is a fixed (<= 2^MaxVars) clause set independent of window size.
func Build(ws *window.State, lib *cellib.Library) (*Encoding, error) {
	nWin := len(ws.W)
	iTarget := ws.ITarget
	numCopyB := nWin - 1 - iTarget // TFO positions excluding the pivot

	e := &Encoding{
		Solver:    satsolver.NewSolver(),
		nWin:      nWin,
		iTarget:   iTarget,
		pivotVarB: satsolver.Var(nWin),
		ws:        ws,
	}

	nVars := nWin + 1 + numCopyB + len(ws.Roots)
	e.Solver.SetNVars(nVars)

	// TFI cone + pivot, single shared copy: var(i) = i.
	for i := 0; i <= iTarget; i++ {
		entry := ws.W[i]
		if entry.Sentinel {
			continue
		}
		if err := addTemplateClauses(e.Solver, lib, entry, func(j int) satsolver.Var { return satsolver.Var(j) }, satsolver.Var(i)); err != nil {
			return nil, err
		}
	}

	// TFO copy-A: var(i) = i, continuing the shared numbering directly.
	for i := iTarget + 1; i < nWin; i++ {
		entry := ws.W[i]
		resolve := func(j int) satsolver.Var { return satsolver.Var(j) }
		if err := addTemplateClauses(e.Solver, lib, entry, resolve, satsolver.Var(i)); err != nil {
			return nil, err
		}
	}

	// TFO copy-B: dedicated pivot var, dedicated per-position vars for
	// every other post-pivot position, shared vars for anything <= iTarget
	// other than the pivot itself.
	varB := func(i int) satsolver.Var {
		return satsolver.Var(nWin + 1 + (i - iTarget - 1))
	}
	resolveB := func(j int) satsolver.Var {
		if j == iTarget {
			return e.pivotVarB
		}
		if j < iTarget {
			return satsolver.Var(j)
		}

		return varB(j)
	}
	for i := iTarget + 1; i < nWin; i++ {
		entry := ws.W[i]
		if err := addTemplateClauses(e.Solver, lib, entry, resolveB, varB(i)); err != nil {
			return nil, err
		}
	}

	// XOR+OR observability gadget.
	xorBase := nWin + 1 + numCopyB
	var orClause []satsolver.Lit
	for idx, r := range ws.Roots {
		rootVarA := satsolver.Var(r) // equals PivotVarA() when r==iTarget
		rootVarB := resolveB(r)      // equals PivotVarB() when r==iTarget
		xr := satsolver.Var(xorBase + idx)
		e.rootXor = append(e.rootXor, xr)
		if !e.Solver.AddXor(satsolver.MkLit(rootVarA, false), satsolver.MkLit(rootVarB, false), satsolver.MkLit(xr, false), true) {
			return nil, ErrClauseRejected
		}
		orClause = append(orClause, satsolver.MkLit(xr, false))
	}
	if !e.Solver.AddClause(orClause) {
		return nil, ErrClauseRejected
	}

	e.Solver.Simplify()

	return e, nil
}

// addTemplateClauses instantiates entry's gate template against resolve
// (mapping W-index fanin positions to solver variables) and outVar.
func addTemplateClauses(s *satsolver.Solver, lib *cellib.Library, entry window.WEntry, resolve func(int) satsolver.Var, outVar satsolver.Var) error {
	tmpl := lib.Template(entry.Handle)
	for _, clause := range tmpl.Clauses {
		lits := make([]satsolver.Lit, 0, len(clause))
		for _, l := range clause {
			var v satsolver.Var
			if l.Pos == tmpl.NumIns {
				v = outVar
			} else {
				v = resolve(entry.Fanins[l.Pos])
			}
			lits = append(lits, satsolver.MkLit(v, l.Neg))
		}
		if !s.AddClause(lits) {
			return ErrClauseRejected
		}
	}

	return nil
}
