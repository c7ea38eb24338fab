package resynth

import (
	"errors"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/cnf"
	"github.com/katalvlaran/lvlath-sfm/decomp"
	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/rewrite"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// isSkip reports whether err is one of the recoverable per-pivot Skip
// conditions spec.md §7 lists (window too small/large, no TFO roots, too
// few divisors, a rejected CNF clause): every one of these means "leave
// the pivot alone and move on", never "abort the run".
func isSkip(err error) bool {
	return errors.Is(err, window.ErrNoTFORoots) ||
		errors.Is(err, window.ErrWindowTooLarge) ||
		errors.Is(err, window.ErrMFFCTooSmall) ||
		errors.Is(err, window.ErrTooFewDivisors) ||
		errors.Is(err, cnf.ErrClauseRejected)
}

func (c *pivotContext) windowParams() window.Params {
	wp := window.DefaultParams()
	wp.NTfoLevMax = c.params.NTfoLevMax
	wp.NTfiLevMax = c.params.NTfiLevMax
	wp.NFanoutMax = c.params.NFanoutMax
	wp.NMffcMin = c.params.NMffcMin
	wp.NMffcMax = c.params.NMffcMax
	if c.params.DelayMode && c.timing != nil {
		wp.DelayMode = true
		wp.ArrivalFn = func(id network.GateID) int64 {
			a, err := c.timing.ReadObjDelay(id)
			if err != nil {
				return 0
			}

			return a
		}
	}

	return wp
}

func (c *pivotContext) decompConfig() decomp.Config {
	cfg := decomp.DefaultConfig()
	cfg.NVarMax = c.params.NVarMax
	cfg.NMffcMax = c.params.NMffcMax
	cfg.NBTLimit = c.params.NBTLimit
	cfg.UseAndOr = c.params.UseAndOr

	return cfg
}

// divisorIDs returns the network gate behind each window divisor, in
// W-index order: W[0:ws.NDivs] are exactly the divisor entries (spec.md
// §4.1).
func divisorIDs(ws *window.State) []network.GateID {
	ids := make([]network.GateID, ws.NDivs)
	for i := 0; i < ws.NDivs; i++ {
		ids[i] = ws.W[i].ID
	}

	return ids
}

func rootIDs(ws *window.State) []network.GateID {
	ids := make([]network.GateID, len(ws.Roots))
	for i, widx := range ws.Roots {
		ids[i] = ws.W[widx].ID
	}

	return ids
}

// planDivMap narrows the full divisor id array down to the positions a
// decomp.Result's Support actually references, in Support order — the
// index space libmatch.Match.Perm / libmatch.PlanRef.FromDivisor positions
// are expressed in.
func planDivMap(divIDs []network.GateID, support []int) []network.GateID {
	out := make([]network.GateID, len(support))
	for i, widx := range support {
		out[i] = divIDs[widx]
	}

	return out
}

// decideResult is the outcome of running decomposition (or its free
// constant precheck) on one pivot's window.
type decideResult struct {
	result  decomp.Result
	skipped bool
}

// decideOne runs spec.md §4.4's decomposition pipeline against ws: the
// cheap simulation-only constant precheck first, then (if inconclusive) a
// fresh CNF encoding and either decomp.RewriteOnly or decomp.Recursive.
// iUseThis/forbidden are forwarded to decomp.Recursive unchanged (-1/nil
// for a normal attempt; retryWithInMFFCHint supplies real values).
func (c *pivotContext) decideOne(ws *window.State, ps simulate.PatternSet, iUseThis int, forbidden []int) (decideResult, error) {
	isConst, val := decomp.PrecheckConstant(ps)
	if isConst {
		return decideResult{result: decomp.Result{IsConst: true, ConstValue: val}}, nil
	}

	enc, err := cnf.Build(ws, c.lib)
	if err != nil {
		if isSkip(err) {
			return decideResult{skipped: true}, nil
		}

		return decideResult{}, err
	}

	cfg := c.decompConfig()
	var res decomp.Result
	if c.params.RewriteOnly {
		res, err = decomp.RewriteOnly(enc, ws, ps, cfg)
	} else {
		res, err = decomp.Recursive(enc, ws, ps, cfg, iUseThis, forbidden)
	}
	if err != nil {
		switch {
		case errors.Is(err, decomp.ErrTimeout):
			c.stats.NTimeOuts++
		case errors.Is(err, decomp.ErrNoDecomposition):
			c.stats.NNoDecs++
		case errors.Is(err, decomp.ErrSupportOverflow):
			c.stats.NNoDecs++
		}

		return decideResult{skipped: true}, nil
	}

	return decideResult{result: res}, nil
}

// planFor turns a decomp.Result into a libmatch.Plan, or reports no match.
func planFor(lib *cellib.Library, res decomp.Result) (libmatch.Plan, bool) {
	if res.IsConst {
		h := lib.Const0()
		if res.ConstValue {
			h = lib.Const1()
		}

		return libmatch.Plan{Gates: []libmatch.PlanGate{{Handle: h}}, Root: libmatch.PlanRef{Index: 0}}, true
	}
	if plan, ok := libmatch.ImplementSimple(lib, res.Table, res.Support); ok {
		return plan, true
	}
	if m, ok := libmatch.FindAreaMatch(lib, res.Table, res.Support); ok {
		return libmatch.ImplementGatesArea(m, res.Support), true
	}

	return libmatch.Plan{}, false
}

// classify buckets an accepted replacement into one of Stats' per-category
// counters, spec.md §9's Sfm_DecStats breakdown.
func classify(res decomp.Result) func(*Stats) {
	switch {
	case res.IsConst && !res.ConstValue:
		return func(s *Stats) { s.NodesConst0++ }
	case res.IsConst && res.ConstValue:
		return func(s *Stats) { s.NodesConst1++ }
	case len(res.Support) == 1 && res.Table == truth.Var(0):
		return func(s *Stats) { s.NodesBuf++ }
	case len(res.Support) == 1 && res.Table == truth.Not(truth.Var(0)):
		return func(s *Stats) { s.NodesInv++ }
	default:
		return func(s *Stats) { s.NodesResyn++ }
	}
}

// areaOptOne implements spec.md §4.6/§4.7's area_opt_one: extract a
// window, decompose the pivot's function, match it against the library,
// and apply the replacement if it lowers area (or leaves it unchanged,
// when ZeroCost allows a tie).
//
// Returns the id that now stands where pivot did (pivot itself if
// unchanged) and whether a change was made.
func (c *pivotContext) areaOptOne(pivot network.GateID) (network.GateID, bool, error) {
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
	if dr.skipped {
		if c.params.MoreEffort {
			return c.retryWithInMFFCHint(pivot, ws, ps)
		}

		return pivot, false, nil
	}

	return c.applyArea(pivot, ws, dr.result)
}

// retryWithInMFFCHint implements spec.md §4.7's fMoreEffort: on a failed
// pivot, retry decomp.Recursive once per window.State.InMFFC divisor
// (reverse order), forcing it as the first cofactor.
func (c *pivotContext) retryWithInMFFCHint(pivot network.GateID, ws *window.State, ps simulate.PatternSet) (network.GateID, bool, error) {
	for i := len(ws.InMFFC) - 1; i >= 0; i-- {
		enc, err := cnf.Build(ws, c.lib)
		if err != nil {
			if isSkip(err) {
				continue
			}

			return pivot, false, err
		}
		res, err := decomp.Recursive(enc, ws, ps, c.decompConfig(), ws.InMFFC[i], nil)
		if err != nil {
			continue
		}
		newRoot, changed, err := c.applyArea(pivot, ws, res)
		if err != nil || changed {
			return newRoot, changed, err
		}
	}

	return pivot, false, nil
}

func (c *pivotContext) applyArea(pivot network.GateID, ws *window.State, res decomp.Result) (network.GateID, bool, error) {
	plan, ok := planFor(c.lib, res)
	if !ok {
		c.stats.NNoMatch++

		return pivot, false, nil
	}

	divMap := planDivMap(divisorIDs(ws), res.Support)
	newCut := rewrite.DivisorRefs(plan, divMap)
	oldArea, err := rewrite.MFFCArea(c.net, c.lib, pivot, newCut)
	if err != nil {
		return pivot, false, err
	}
	newArea := rewrite.PlanArea(c.lib, plan)

	if newArea > oldArea || (newArea == oldArea && !c.params.ZeroCost) {
		c.stats.NNoMatch++

		return pivot, false, nil
	}

	newRoot, _, err := rewrite.Substitute(c.net, c.lib, pivot, divMap, plan, 0)
	if err != nil {
		return pivot, false, err
	}

	classify(res)(c.stats)
	c.stats.NodesChanged++
	c.stats.AreaBefore += oldArea
	c.stats.AreaAfter += newArea
	c.params.Logger.Logf("resynth: pivot %d -> %d (area %d -> %d)", pivot, newRoot, oldArea, newArea)

	return newRoot, true, nil
}
