package resynth

import (
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/rewrite"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// delayOptOne implements spec.md §4.4/§4.6's delay_opt_one driver-level
// half: extract pivot's window in delay mode (arrival-sorted divisor
// groups), decompose, then hand the result to rewrite.DelayOptOne to pick
// and apply whichever library candidate most improves arrival time.
//
// Returns the id now standing where pivot did and whether a change was
// made, matching areaOptOne's shape.
func (c *pivotContext) delayOptOne(pivot network.GateID) (network.GateID, bool, error) {
	c.stats.NodesVisited++

	ws, err := window.Extract(c.net, pivot, c.windowParams())
	if err != nil {
		if isSkip(err) {
			return pivot, false, nil
		}

		return pivot, false, err
	}

	ps := c.sim.Setup(pivot, rootIDs(ws), divisorIDs(ws))
	dr, err := c.decideOne(ws, ps, -1, nil)
	if err != nil {
		return pivot, false, err
	}
	if c.params.UseSim {
		c.sim.Setdown(divisorIDs(ws), ps)
	}
	if dr.skipped || dr.result.IsConst {
		return pivot, false, nil
	}

	divMap := planDivMap(divisorIDs(ws), dr.result.Support)

	before, err := c.timing.ReadObjDelay(pivot)
	if err != nil {
		return pivot, false, err
	}

	newRoot, _, err := rewrite.DelayOptOne(c.net, c.lib, c.timing, pivot, divMap, dr.result.Table, dr.result.Support, 0)
	if err != nil {
		return pivot, false, err
	}
	if newRoot == pivot {
		c.stats.NNoMatch++

		return pivot, false, nil
	}

	after, err := c.timing.ReadObjDelay(newRoot)
	if err != nil {
		return pivot, false, err
	}

	classify(dr.result)(c.stats)
	c.stats.NodesChanged++
	c.stats.DelayBefore += before
	c.stats.DelayAfter += after
	c.params.Logger.Logf("resynth: pivot %d -> %d (delay %d -> %d)", pivot, newRoot, before, after)

	return newRoot, true, nil
}
