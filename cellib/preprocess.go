package cellib

import (
	"fmt"

	"github.com/katalvlaran/lvlath-sfm/truth"
)

// NewLibrary preprocesses specs into an immutable Library: it validates
// each GateSpec, builds its CNF Template, classifies const0/const1/buf/inv
// roles, and assigns each gate a Handle equal to its index in specs.
//
// Preconditions: specs must contain at least one gate recognized as
// const-0, one as const-1, one as a single-input buffer, and one as a
// single-input inverter (ErrNoConstGates/ErrNoBuf/ErrNoInv) — the engine's
// constant-propagation (§4.4a step 1) and inverter-absorption (S3) paths
// depend on always having these four available.
//
// Complexity: O(sum(2^NumIns) over all gates) — this preprocessing runs
// once at library load time; every later lookup is O(1) or O(NumIns).
func NewLibrary(specs []GateSpec) (*Library, error) {
	lib := &Library{
		gates:  make([]Gate, 0, len(specs)),
		byName: make(map[string]Handle, len(specs)),
		const0: InvalidHandle,
		const1: InvalidHandle,
		buf:    InvalidHandle,
		inv:    InvalidHandle,
	}

	for i, spec := range specs {
		if _, dup := lib.byName[spec.Name]; dup {
			return nil, fmt.Errorf("cellib: NewLibrary(%q): %w", spec.Name, ErrDuplicateName)
		}
		if spec.NumIns > truth.MaxVars {
			return nil, fmt.Errorf("cellib: NewLibrary(%q): %w", spec.Name, ErrTooManyInputs)
		}
		if len(spec.PinDelays) != spec.NumIns {
			return nil, fmt.Errorf("cellib: NewLibrary(%q): %w", spec.Name, ErrMissingPinDelay)
		}

		g := Gate{
			Name:      spec.Name,
			NumIns:    spec.NumIns,
			Truth:     spec.Truth,
			Area:      spec.Area,
			PinDelays: append([]PinDelay(nil), spec.PinDelays...),
			Template:  buildTemplate(spec.NumIns, spec.Truth),
		}
		classify(&g)

		h := Handle(i)
		lib.gates = append(lib.gates, g)
		lib.byName[spec.Name] = h

		switch {
		case g.isConst0 && lib.const0 == InvalidHandle:
			lib.const0 = h
		case g.isConst1 && lib.const1 == InvalidHandle:
			lib.const1 = h
		case g.isBuf && lib.buf == InvalidHandle:
			lib.buf = h
		case g.isInv && lib.inv == InvalidHandle:
			lib.inv = h
		}
	}

	if lib.const0 == InvalidHandle || lib.const1 == InvalidHandle {
		return nil, ErrNoConstGates
	}
	if lib.buf == InvalidHandle {
		return nil, ErrNoBuf
	}
	if lib.inv == InvalidHandle {
		return nil, ErrNoInv
	}
	lib.invArea = lib.gates[lib.inv].Area
	lib.invDelay = lib.gates[lib.inv].DelayMax()

	return lib, nil
}

// classify fills in g's isConst0/isConst1/isBuf/isInv flags from its
// function alone, independent of its Name.
func classify(g *Gate) {
	switch g.NumIns {
	case 0:
		g.isConst0 = truth.IsConst0(g.Truth)
		g.isConst1 = truth.IsConst1(g.Truth)
	case 1:
		g.isBuf = g.Truth == truth.Var(0)
		g.isInv = g.Truth == truth.Not(truth.Var(0))
	}
}

// buildTemplate derives the canonical (naive) Tseitin CNF schema for a
// numIns-input function with the given truth table, per the Template
// doc comment: one (numIns+1)-literal clause per input assignment.
//
// Complexity: O(2^numIns).
func buildTemplate(numIns int, tt truth.Table) Template {
	if numIns == 0 {
		// A 0-input constant gate still needs one unit clause pinning its
		// output to the constant value.
		val := truth.IsConst1(tt)

		return Template{NumIns: 0, Clauses: [][]Lit{{{Pos: 0, Neg: !val}}}}
	}

	total := 1 << uint(numIns)
	clauses := make([][]Lit, 0, total)
	for a := 0; a < total; a++ {
		val := (uint64(tt)>>uint(a))&1 == 1
		clause := make([]Lit, 0, numIns+1)
		for i := 0; i < numIns; i++ {
			ai := (a >> uint(i)) & 1
			// Literal true iff input i differs from assignment bit ai:
			// ai==1 -> need input false to differ -> literal is "input negated".
			clause = append(clause, Lit{Pos: i, Neg: ai == 1})
		}
		// Output literal: satisfied when the output equals val.
		clause = append(clause, Lit{Pos: numIns, Neg: !val})
		clauses = append(clauses, clause)
	}

	return Template{NumIns: numIns, Clauses: clauses}
}
