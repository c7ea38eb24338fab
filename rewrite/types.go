package rewrite

import "errors"

// Sentinel errors. Every one is a recoverable per-pivot Skip for the
// caller (package resynth), never a fatal condition — spec.md §7.
var (
	// ErrTooManyGates indicates a Plan would add more new gates than the
	// caller's bound allows (spec.md §7's "more than 2 net gates added in
	// delay mode" invariant).
	ErrTooManyGates = errors.New("rewrite: plan exceeds the net-new-gate bound")

	// ErrBadPlanRef indicates a Plan referenced a divisor or gate index
	// outside the bounds Substitute was given.
	ErrBadPlanRef = errors.New("rewrite: plan references an out-of-range divisor or gate index")
)
