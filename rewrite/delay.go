package rewrite

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/timing"
	"github.com/katalvlaran/lvlath-sfm/truth"
)

// identityBuf is the single-variable identity truth table (spec.md
// §4.4's "single-element list -> buffer") delay_opt_one must never accept
// as a standalone win: a buffer can only ever add delay over its source.
var identityBuf = truth.Var(0)

// DelayOptOne implements spec.md §4.4/§4.6's delay_opt_one: given a
// decomposition's truth table over support (divIDs, in divMap's index
// space), ask the library matcher for up to k delay candidates, predict
// each one's arrival at pivot's position via the timing engine, and
// commit whichever candidate both beats pivot's current arrival and is
// not a trivial single-input buffer.
//
// Returns the id now standing where pivot did (pivot itself if no
// candidate improved delay) and the ids of any gates DelayOptOne created,
// for the caller to pass to timing.Engine.UpdateTiming.
func DelayOptOne(net *network.Net, lib *cellib.Library, eng *timing.Engine, pivot network.GateID, divMap []network.GateID, t truth.Table, support truth.Support, k int) (network.GateID, []network.GateID, error) {
	curArrival, err := eng.ReadObjDelay(pivot)
	if err != nil {
		return pivot, nil, err
	}

	candidates := libmatch.FindDelayMatches(lib, t, support, k)

	bestArrival := curArrival
	bestIdx := -1
	for i, dm := range candidates {
		if dm.Gate2 == cellib.InvalidHandle && len(support) == 1 && t == identityBuf {
			continue // trivial buffer: spec.md §4.4's "reject trivial buffers"
		}

		plan := libmatch.ImplementGatesDelay(dm, support)
		arrival, err := eng.EvalRemapping(plan, divMap)
		if err != nil {
			continue
		}
		if arrival < bestArrival {
			bestArrival = arrival
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return pivot, nil, nil
	}

	plan := libmatch.ImplementGatesDelay(candidates[bestIdx], support)
	newRoot, newIDs, err := Substitute(net, lib, pivot, divMap, plan, 2)
	if err != nil {
		return pivot, nil, err
	}
	if err := eng.UpdateTiming(newIDs); err != nil {
		return newRoot, newIDs, err
	}

	return newRoot, newIDs, nil
}
