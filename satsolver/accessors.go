package satsolver

// Restart drops all clauses and variables, returning the Solver to its
// just-constructed state. spec.md §6 lists restart alongside new() as a
// collaborator primitive the engine calls once per window.
//
// Complexity: O(1) (old slices are released to the GC).
func (s *Solver) Restart() {
	s.nVars = 0
	s.clauses = nil
	s.assign = nil
	s.reason = nil
	s.isAssum = nil
	s.trail = nil
	s.timedOut = false
	s.lastConflict = nil
}

// SetNVars grows the solver's variable count to n (a no-op if n is not
// larger than the current count — variables are never shrunk mid-window).
//
// Complexity: O(n).
func (s *Solver) SetNVars(n int) {
	if n <= s.nVars {
		return
	}
	grow := func(b []LBool) []LBool {
		out := make([]LBool, n)
		copy(out, b)

		return out
	}
	s.assign = grow(s.assign)
	growInts := make([]int, n)
	copy(growInts, s.reason)
	for i := s.nVars; i < n; i++ {
		growInts[i] = -1
	}
	s.reason = growInts
	growBools := make([]bool, n)
	copy(growBools, s.isAssum)
	s.isAssum = growBools
	s.nVars = n
}

// NVars returns the current variable count.
func (s *Solver) NVars() int { return s.nVars }

// VarValue returns v's value in the model of the most recent Sat result.
// Its return value is meaningless (LUndef) if the last Solve call did not
// return Sat, or if v was never assigned (a pure don't-care of the
// instance).
//
// Complexity: O(1).
func (s *Solver) VarValue(v Var) LBool {
	if int(v) < 0 || int(v) >= len(s.assign) {
		return LUndef
	}

	return s.assign[v]
}

// FinalConflict returns the UNSAT core literals from the most recent Solve
// call that returned Unsat (nil otherwise). See doc.go for the precision
// guarantee.
//
// Complexity: O(1) (the core was computed eagerly by Solve).
func (s *Solver) FinalConflict() []Lit {
	return s.lastConflict
}

// Simplify removes clauses already satisfied by the current (level-0)
// assignment. It is safe to call between Solve invocations; it never
// removes a clause that could still become relevant, since level-0
// assignments (assumptions asserted identically on every call, and unit
// facts derivable from AddClause alone) never get undone by Restart-free
// reuse of the same Solver within one window.
//
// Complexity: O(total literals across all clauses).
func (s *Solver) Simplify() {
	if len(s.assign) == 0 {
		return
	}
	kept := s.clauses[:0]
	for _, cl := range s.clauses {
		if s.clauseSatisfiedAtLevelZero(cl) {
			continue
		}
		kept = append(kept, cl)
	}
	s.clauses = kept
}

func (s *Solver) clauseSatisfiedAtLevelZero(cl []Lit) bool {
	for _, lit := range cl {
		v := lit.Var()
		if int(v) >= len(s.assign) {
			continue
		}
		val := s.assign[v]
		if val == LUndef {
			continue
		}
		if (val == LTrue) != lit.IsNeg() {
			return true
		}
	}

	return false
}

// Delete releases solver state. Go's garbage collector reclaims the
// Solver's memory without an explicit call, but Delete is kept for parity
// with the external contract (spec.md §6 lists it alongside new/restart)
// so callers written against that contract compile unchanged against this
// implementation.
//
// Complexity: O(1).
func (s *Solver) Delete() {
	*s = Solver{}
}
