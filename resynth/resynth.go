package resynth

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/timing"
)

// Resynthesize runs one pass of spec.md §4.7's driver loops over net,
// mutating it in place, and returns a Stats tally of what happened.
//
// Params.AreaMode (the default), Params.AreaRevMode, and Params.DelayMode
// select which of the three driver loops runs; exactly one should be set
// (the last WithAreaMode/WithAreaReverseMode/WithDelayMode option wins,
// mirroring flow.FlowOptions' last-option-wins convention for mutually
// exclusive flags).
func Resynthesize(net *network.Net, lib *cellib.Library, opts ...Option) (*Stats, error) {
	if net == nil {
		return nil, ErrNilNet
	}
	if lib == nil {
		return nil, ErrNilLibrary
	}

	params := DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	if params.NTimeWin <= 0 || params.NTimeWin > 100 {
		return nil, ErrBadTimeWin
	}

	// sim is always constructed: Setup seeds every window's PatternSet
	// regardless of UseSim. UseSim gates only the post-window Setdown
	// refresh (decide.go/delay.go), spec.md §6's fUseSim flag.
	sim := simulate.NewSimulator(net, lib)

	var eng *timing.Engine
	if params.DelayMode {
		eng = timing.NewEngine(net, lib)
		if err := eng.Start(); err != nil {
			return nil, err
		}
		defer eng.Stop()
	}

	stats := &Stats{}
	c := &pivotContext{net: net, lib: lib, sim: sim, timing: eng, params: params, stats: stats}

	switch {
	case params.DelayMode:
		return c.DelayPriority()
	case params.AreaRevMode:
		return c.AreaReverse()
	default:
		return c.AreaForward()
	}
}
