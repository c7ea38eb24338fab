package satsolver

// AddClause appends a disjunction of lits to the solver's clause database.
// It returns false if the clause is a syntactic contradiction (the empty
// clause) — spec.md §7 treats a false return from AddClause during CNF
// setup as a recoverable per-pivot Skip, not a panic. A tautological clause
// (containing both l and l.Not()) is recognized and silently dropped
// (always true, contributes nothing), returning true.
//
// Complexity: O(len(lits)^2) for tautology detection (lits is at most a
// few dozen long for any gate's CNF template or the observability OR
// clause, so the quadratic check is cheaper than allocating a seen-set).
func (s *Solver) AddClause(lits []Lit) bool {
	if len(lits) == 0 {
		return false
	}
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			if lits[i] == lits[j].Not() {
				return true // tautology: drop, report success
			}
		}
	}
	cl := append([]Lit(nil), lits...)
	s.clauses = append(s.clauses, cl)

	return true
}

// AddXor adds clauses constraining out to equal (a XOR b) when polarity is
// true, or (a XNOR b) when polarity is false — the gadget package cnf uses
// once per TFO root to build the "copy-A and copy-B disagree here" signal
// (spec.md §4.3 step 3).
//
// Grounded on the vendored gini/logic.C addAnd Tseitin-clause-emission
// idiom (see doc.go), generalized from AND to XOR: 4 clauses pin out to
// exactly the XOR/XNOR of a and b.
//
// Complexity: O(1) (4 ternary clauses).
func (s *Solver) AddXor(a, b, out Lit, polarity bool) bool {
	o := out
	if !polarity {
		o = out.Not()
	}
	ok := true
	ok = s.AddClause([]Lit{a.Not(), b.Not(), o.Not()}) && ok
	ok = s.AddClause([]Lit{a, b, o.Not()}) && ok
	ok = s.AddClause([]Lit{a, b.Not(), o}) && ok
	ok = s.AddClause([]Lit{a.Not(), b, o}) && ok

	return ok
}
