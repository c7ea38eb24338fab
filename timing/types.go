package timing

import (
	"errors"
	"sync"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// Sentinel errors returned by package timing.
var (
	// ErrNotStarted indicates a query was made before Start, or after Stop.
	ErrNotStarted = errors.New("timing: engine not started")

	// ErrUnknownGate indicates a query named a gate id the engine has no
	// cached arrival/required time for (never seen by Start or UpdateTiming).
	ErrUnknownGate = errors.New("timing: unknown gate id")

	// ErrBadPercent indicates PriorityNodes was asked for a percentage
	// outside [0, 100].
	ErrBadPercent = errors.New("timing: percentage out of range")
)

// Engine is the timing collaborator of spec.md §6, delay mode only. The
// zero value is not usable; construct with NewEngine.
type Engine struct {
	mu  sync.Mutex
	net *network.Net
	lib *cellib.Library

	running  bool
	arrival  map[network.GateID]int64
	required map[network.GateID]int64
}

// NewEngine creates a Timing engine bound to net and lib. Start must be
// called once before any query.
func NewEngine(net *network.Net, lib *cellib.Library) *Engine {
	return &Engine{net: net, lib: lib}
}
