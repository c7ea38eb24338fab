package cellib

import (
	"errors"

	"github.com/katalvlaran/lvlath-sfm/truth"
)

// MioNum is the fixed-point scale factor for Gate.Area, matching spec.md
// §3's "area (fixed-point, scaled by a constant MIO_NUM)". An area of
// 1.5 library units is stored as 1*MioNum + MioNum/2.
const MioNum int64 = 1000

// Sentinel errors for library construction and lookup.
var (
	// ErrDuplicateName indicates two GateSpecs in the same library share a name.
	ErrDuplicateName = errors.New("cellib: duplicate gate name")

	// ErrTooManyInputs indicates a GateSpec has more than truth.MaxVars inputs.
	ErrTooManyInputs = errors.New("cellib: gate has more than MaxVars inputs")

	// ErrMissingPinDelay indicates a GateSpec's PinDelays slice length differs from NumIns.
	ErrMissingPinDelay = errors.New("cellib: missing per-pin delay entry")

	// ErrGateNotFound indicates Gate was given a Handle outside the library.
	ErrGateNotFound = errors.New("cellib: gate not found")

	// ErrNoConstGates indicates a library was built without const0/const1 entries.
	ErrNoConstGates = errors.New("cellib: library requires const0 and const1 gates")

	// ErrNoInv indicates a library was built without an inverter entry.
	ErrNoInv = errors.New("cellib: library requires an inverter gate")

	// ErrNoBuf indicates a library was built without a buffer entry.
	ErrNoBuf = errors.New("cellib: library requires a buffer gate")
)

// Handle is an opaque, stable reference to a Gate within a Library —
// spec.md's "gate-handle pointing into the library". Handle(0) is a valid
// gate; InvalidHandle (-1) marks "no gate" (e.g. a window divisor/leaf
// entry, per spec.md §3's sentinel(-1) convention).
type Handle int32

// InvalidHandle is the sentinel "no library gate" handle.
const InvalidHandle Handle = -1

// PinDelay holds the rise and fall arc delay (in the library's native time
// unit, e.g. picoseconds) for one input pin of a gate.
type PinDelay struct {
	Rise int64
	Fall int64
}

// Lit is one literal of a precompiled CNF Template clause. Pos indexes a
// gate's input pins (0..NumIns-1); Pos == NumIns refers to the gate's
// output. Neg marks the literal as negated (the clause disjunct is
// "variable-at-Pos is false").
type Lit struct {
	Pos int
	Neg bool
}

// Template is the precompiled, reusable CNF schema for one gate's function:
// a list of clauses, each a list of Lits referencing input/output positions
// rather than concrete solver variables. Package cnf instantiates a
// Template against concrete variable ids every time the gate appears in a
// window (spec.md §3: "a reusable clause schema parameterised by variable
// assignment").
//
// NewLibrary builds Template via the canonical (naive) Tseitin expansion of
// the gate's truth table: for every input assignment a, one clause forbids
// "inputs == a AND output != f(a)". This produces 2^NumIns clauses of
// NumIns+1 literals each — more clauses than a hand-tuned encoding of, say,
// a 2-input AND (which needs only 3), but it is correct for *any* truth
// table up to MaxVars inputs with no per-gate special-casing, which is the
// right tradeoff for a preprocessing step that runs once per library load
// and is amortized over many window instantiations.
type Template struct {
	NumIns  int
	Clauses [][]Lit
}

// GateSpec is the caller-supplied description of one library cell, before
// preprocessing. NumIns, Truth, and PinDelays together define the gate's
// function and timing; NewLibrary derives Template, caches const/inv/buf
// detection, and assigns each GateSpec a stable Handle equal to its index
// in the slice passed to NewLibrary.
type GateSpec struct {
	Name      string
	NumIns    int
	Truth     truth.Table // defined over canonical variables 0..NumIns-1
	Area      int64       // already scaled by MioNum
	PinDelays []PinDelay  // length must equal NumIns
}

// Gate is the preprocessed, read-only record for one library cell.
type Gate struct {
	Name      string
	NumIns    int
	Truth     truth.Table
	Area      int64
	PinDelays []PinDelay
	Template  Template

	isConst0 bool
	isConst1 bool
	isBuf    bool
	isInv    bool
}

// IsConst0, IsConst1, IsBuf, IsInv report the gate's recognized role, as
// determined once by NewLibrary from its NumIns and Truth rather than
// from its Name (a library may name its inverter anything).
func (g *Gate) IsConst0() bool { return g.isConst0 }
func (g *Gate) IsConst1() bool { return g.isConst1 }
func (g *Gate) IsBuf() bool    { return g.isBuf }
func (g *Gate) IsInv() bool    { return g.isInv }

// DelayMax returns the gate's worst-case (max over pins and rise/fall) pin
// delay — spec.md §6's gateDelayMax.
//
// Complexity: O(NumIns).
func (g *Gate) DelayMax() int64 {
	var maxD int64
	for _, pd := range g.PinDelays {
		if pd.Rise > maxD {
			maxD = pd.Rise
		}
		if pd.Fall > maxD {
			maxD = pd.Fall
		}
	}

	return maxD
}

// Library is the immutable, preprocessed cell library.
type Library struct {
	gates      []Gate
	byName     map[string]Handle
	const0     Handle
	const1     Handle
	buf        Handle
	inv        Handle
	invArea    int64
	invDelay   int64
}
