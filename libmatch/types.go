package libmatch

import "github.com/katalvlaran/lvlath-sfm/cellib"

// Match is a single-gate area-optimal realization of some truth.Table.
// Perm[pin] names which support position (an index into the truth.Support
// the table was matched against) feeds that pin of Gate.
type Match struct {
	Area int64
	Gate cellib.Handle
	Perm []int
}

// DelayMatch is a one- or two-gate realization returned by
// FindDelayMatches, ranked cheapest-first by gate count (package rewrite's
// delay_opt_one evaluates each against the timing engine to pick the
// fastest). Gate2 is cellib.InvalidHandle for a single-gate match.
type DelayMatch struct {
	Gate1 cellib.Handle
	Perm1 []int

	Gate2      cellib.Handle
	Perm2      []int // nil when Gate2 is invalid
	PinOfGate1 int    // which pin of Gate2 reads Gate1's output
}

// PlanRef names one fanin of a PlanGate: either a window divisor (by
// support position) or the output of an earlier PlanGate (by its index in
// Plan.Gates).
type PlanRef struct {
	FromDivisor bool
	Index       int
}

// PlanGate is one new gate to instantiate, in topological order.
type PlanGate struct {
	Handle cellib.Handle
	Fanins []PlanRef
}

// Plan is the ordered list of gates package rewrite must create to realize
// a matched replacement; Plan.Gates' last entry is the new root driving
// every fanout the pivot used to drive. An empty Plan with Root
// FromDivisor=true is the "direct rewire to an existing divisor" case
// (spec.md §4.6's single-buffer shortcut).
type Plan struct {
	Gates []PlanGate
	Root  PlanRef
}
