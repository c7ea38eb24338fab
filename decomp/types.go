package decomp

import (
	"errors"

	"github.com/katalvlaran/lvlath-sfm/truth"
)

// Sentinel errors. Every one is a recoverable per-pivot Skip for the caller
// (package resynth), never a fatal condition — spec.md §7.
var (
	ErrTimeout         = errors.New("decomp: SAT conflict budget exhausted")
	ErrNoDecomposition = errors.New("decomp: no viable decomposition found")
	ErrSupportOverflow = errors.New("decomp: composed support exceeds NVarMax")
)

// Config bounds one decomposition attempt (spec.md §4.4, §6's documented
// defaults).
type Config struct {
	NVarMax       int
	NMffcMax      int
	NBTLimit      int // 0 means unlimited, forwarded to satsolver.Solver.Solve
	UseAndOr      bool
	NCoreMinTries int
}

// DefaultConfig mirrors spec.md §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		NVarMax:       6,
		NMffcMax:      3,
		NBTLimit:      0,
		UseAndOr:      true,
		NCoreMinTries: 2,
	}
}

// Result is a candidate replacement function for the pivot: either a
// constant, or a truth.Table over Support (window divisor W-indices, each
// < the window's NDivs).
type Result struct {
	IsConst    bool
	ConstValue bool
	Table      truth.Table
	Support    truth.Support
}
