package timing

import (
	"sort"

	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// PriorityNodes returns the interior (non-PI) gates with the lowest slack,
// a fraction pct of the network's interior-gate count rounded up (at
// least one gate when pct > 0 and the network has any interior gate at
// all) — spec.md §6's priorityNodes(nTimeWin%), the delay-priority driver
// loop's candidate slice. An empty result (never an error) means nothing
// to try this round.
func (e *Engine) PriorityNodes(pct int) ([]network.GateID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil, ErrNotStarted
	}
	if pct < 0 || pct > 100 {
		return nil, ErrBadPercent
	}

	var interior []network.GateID
	for _, id := range e.net.AllGates() {
		isPI, err := e.net.IsPI(id)
		if err != nil {
			return nil, err
		}
		if !isPI {
			interior = append(interior, id)
		}
	}
	if len(interior) == 0 || pct == 0 {
		return nil, nil
	}

	sort.SliceStable(interior, func(i, j int) bool {
		si, _ := e.slack(interior[i])
		sj, _ := e.slack(interior[j])
		if si != sj {
			return si < sj
		}

		return interior[i] < interior[j]
	})

	n := (len(interior)*pct + 99) / 100
	if n > len(interior) {
		n = len(interior)
	}

	return append([]network.GateID(nil), interior[:n]...), nil
}

// SortByArrival stably reorders divIDs by ascending arrival time (earliest
// available first), breaking ties by the order divIDs already had —
// spec.md §4.1's "the first two [divisor] groups are stably re-sorted by
// arrival time before assigning indices" in delay mode. pivotID is
// accepted for the same contract shape as spec.md's
// sortArrayByArrival(div-ids, pivotId) but is not otherwise consulted:
// every id in divIDs is already known (by construction, package window)
// to be in pivotID's transitive fanin, so no further filtering applies.
func (e *Engine) SortByArrival(divIDs []network.GateID, pivotID network.GateID) ([]network.GateID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil, ErrNotStarted
	}
	_ = pivotID

	out := append([]network.GateID(nil), divIDs...)
	sort.SliceStable(out, func(i, j int) bool {
		return e.arrival[out[i]] < e.arrival[out[j]]
	})

	return out, nil
}

// NodeIsNonCritical reports whether obj's arrival time leaves positive
// slack at pivot's required time — i.e. whether substituting obj's output
// directly in place of pivot would not lengthen the network's critical
// path. spec.md §6's nodeIsNonCritical(pivot, obj).
func (e *Engine) NodeIsNonCritical(pivot, obj network.GateID) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return false, ErrNotStarted
	}
	req, ok := e.required[pivot]
	if !ok {
		return false, ErrUnknownGate
	}
	arr, ok := e.arrival[obj]
	if !ok {
		return false, ErrUnknownGate
	}

	return req-arr > 0, nil
}

// EvalRemapping predicts the arrival time at the root of plan if it were
// instantiated with divMap supplying the network gate behind each
// PlanRef.FromDivisor position, without creating any gate or mutating the
// network — spec.md §6's evalRemapping(fanins, divMap, g1, perm1, g2,
// perm2) -> arrival, expressed against package libmatch's already-built
// Plan/PlanGate/PlanRef shape instead of raw (gate,perm) pairs since the
// caller (package rewrite's delay_opt_one) already holds one.
func (e *Engine) EvalRemapping(plan libmatch.Plan, divMap []network.GateID) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return 0, ErrNotStarted
	}

	resolve := func(ref libmatch.PlanRef, gateArrivals []int64) (int64, error) {
		if ref.FromDivisor {
			if ref.Index < 0 || ref.Index >= len(divMap) {
				return 0, ErrUnknownGate
			}
			a, ok := e.arrival[divMap[ref.Index]]
			if !ok {
				return 0, ErrUnknownGate
			}

			return a, nil
		}
		if ref.Index < 0 || ref.Index >= len(gateArrivals) {
			return 0, ErrUnknownGate
		}

		return gateArrivals[ref.Index], nil
	}

	if len(plan.Gates) == 0 {
		return resolve(plan.Root, nil)
	}

	gateArrivals := make([]int64, len(plan.Gates))
	for gi, pg := range plan.Gates {
		var best int64
		for pin, fref := range pg.Fanins {
			a, err := resolve(fref, gateArrivals[:gi])
			if err != nil {
				return 0, err
			}
			if cand := a + e.pinDelay(pg.Handle, pin); cand > best {
				best = cand
			}
		}
		gateArrivals[gi] = best
	}

	return resolve(plan.Root, gateArrivals)
}
