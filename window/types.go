package window

import (
	"errors"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// Role is a bitmask labelling one windowed node's relationship to the
// pivot, mutually composable (spec.md §3).
type Role uint8

const (
	// RolePI marks a node whose support is fully inside TFI-of-pivot.
	RolePI Role = 1 << iota
	// RoleInput marks a node whose support is disjoint from TFI-of-pivot.
	RoleInput
	// RoleFanin marks an input-only node pointed to by a mixed-role node.
	RoleFanin
	// RoleMFFC marks a node inside the pivot's maximum-fanout-free-cone.
	RoleMFFC
	// RolePivot marks the pivot itself.
	RolePivot
)

// WinMax is SFM_WIN_MAX: the window-gate-count ceiling above which an
// extraction attempt is abandoned as a Skip.
const WinMax = 128

// Sentinel errors: every one is a recoverable per-pivot Skip (spec.md §7),
// never a fatal condition.
var (
	ErrNoTFORoots     = errors.New("window: pivot has no TFO roots")
	ErrWindowTooLarge = errors.New("window: window exceeds WinMax gates")
	ErrMFFCTooSmall   = errors.New("window: MFFC smaller than NMffcMin")
	ErrTooFewDivisors = errors.New("window: fewer than two divisors")

	// ErrFaninNotInWindow indicates an internal inconsistency: a gate
	// placed in W referenced a fanin not yet assigned a W-index. This
	// should never happen given Extract's topological build order; its
	// presence indicates a bug in this package, not a caller error.
	ErrFaninNotInWindow = errors.New("window: fanin not yet placed in W")
)

// Params bounds one Extract call. The zero value is not meaningful; use
// DefaultParams.
type Params struct {
	NTfoLevMax int
	NTfiLevMax int
	NFanoutMax int
	NMffcMin   int
	NMffcMax   int

	// DelayMode, when true, stably re-sorts the two divisor groups by
	// arrival time (via ArrivalFn) before assigning indices, per spec.md
	// §4.1's divisor-assembly note.
	DelayMode bool
	ArrivalFn func(network.GateID) int64
}

// DefaultParams mirrors spec.md §6's documented defaults for the
// window-shape bounds.
func DefaultParams() Params {
	return Params{
		NTfoLevMax: 100,
		NTfiLevMax: 100,
		NFanoutMax: 30,
		NMffcMin:   1,
		NMffcMax:   3,
	}
}

// WEntry is one position in the window gate list W. A sentinel entry (a
// divisor leaf: a PI, INPUT, or FANIN-promoted node) carries no Fanins or
// Handle — it is an opaque input to the CNF encoding, not a gate to
// instantiate a template for.
type WEntry struct {
	ID       network.GateID
	Sentinel bool
	Handle   cellib.Handle
	Fanins   []int // W-index positions, only meaningful when !Sentinel
}

// State is the ephemeral per-pivot window produced by Extract.
type State struct {
	Pivot      network.GateID
	PivotLevel int

	W       []WEntry
	ITarget int // W-index of the pivot
	NDivs   int // divisor count; W[0:NDivs] are exactly the divisor entries

	Roots  []int // W-indices of TFO exit nodes
	MFFC   []int // W-indices inside the pivot's MFFC, including the pivot
	InMFFC []int // divisor W-indices (< NDivs) that feed directly into an MFFC node

	// Roles is exposed read-only for diagnostics and tests; nothing outside
	// this package should mutate it.
	Roles map[network.GateID]Role

	idToW map[network.GateID]int
}

// NTfiSize is the count of W entries up to and including the pivot —
// everything at index > NTfiSize-1 is a TFO-cone entry.
func (s *State) NTfiSize() int { return s.ITarget + 1 }

// IndexOf returns id's position in W, or (-1, false) if id was not part of
// this window.
func (s *State) IndexOf(id network.GateID) (int, bool) {
	idx, ok := s.idToW[id]

	return idx, ok
}
