package rewrite

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// MFFCArea computes the area that would be freed by removing pivot's
// maximum-fanout-free cone, without mutating net — spec.md §4.6's "bump
// fanout counts of the new cut by 1, deref pivot recursively, sum gate
// areas; ref back up; return the area".
//
// newCut names the divisors the replacement Plan will keep using as
// fanins (DivisorRefs(plan, divMap) builds this list): their fanout count
// is taken one higher than net currently reports, so the deref walk never
// mistakes "about to gain a new consumer" for "about to become dangling"
// even when a newCut member also happens to feed an MFFC-interior node
// (window.State.InMFFC's multi-fanout-boundary case).
//
// Unlike the original's literal ref-then-deref-then-ref-back-up mutation
// of the network's live fanout counts, this walk works against a private
// copy-on-read refcount map seeded from net.FanoutCount: nothing about net
// is ever touched, so there is no "ref back up" step to run afterward and
// no way for a failed or aborted call to leave net's bookkeeping
// inconsistent. The "deref area equals ref area" invariant the original
// checks as a runtime assertion is satisfied by construction here, since
// the map is discarded when MFFCArea returns.
//
// Complexity: O(V+E) over the pivot's transitive fanin cone in the worst
// case (every node dereffed exactly once).
func MFFCArea(net *network.Net, lib *cellib.Library, pivot network.GateID, newCut []network.GateID) (int64, error) {
	refcount := make(map[network.GateID]int)
	get := func(id network.GateID) (int, error) {
		if c, ok := refcount[id]; ok {
			return c, nil
		}
		c, err := net.FanoutCount(id)
		if err != nil {
			return 0, err
		}
		refcount[id] = c

		return c, nil
	}

	for _, id := range newCut {
		c, err := get(id)
		if err != nil {
			return 0, err
		}
		refcount[id] = c + 1
	}

	var area int64
	visited := make(map[network.GateID]bool)

	var deref func(id network.GateID) error
	deref = func(id network.GateID) error {
		isPI, err := net.IsPI(id)
		if err != nil {
			return err
		}
		if isPI {
			return nil
		}

		c, err := get(id)
		if err != nil {
			return err
		}
		c--
		refcount[id] = c
		if c > 0 || visited[id] {
			return nil
		}
		visited[id] = true

		handle, err := net.Handle(id)
		if err != nil {
			return err
		}
		area += lib.Area(handle)

		fanins, err := net.Fanins(id)
		if err != nil {
			return err
		}
		for _, fi := range fanins {
			if err := deref(fi); err != nil {
				return err
			}
		}

		return nil
	}

	handle, err := net.Handle(pivot)
	if err != nil {
		return 0, err
	}
	area += lib.Area(handle)

	fanins, err := net.Fanins(pivot)
	if err != nil {
		return 0, err
	}
	for _, fi := range fanins {
		if err := deref(fi); err != nil {
			return 0, err
		}
	}

	return area, nil
}

// PlanArea sums the library area of every gate a Plan would instantiate —
// the cost side of spec.md §4.6's accept/reject comparison against
// MFFCArea. An empty Plan (direct rewire to an existing divisor) costs 0.
func PlanArea(lib *cellib.Library, plan libmatch.Plan) int64 {
	var area int64
	for _, pg := range plan.Gates {
		area += lib.Area(pg.Handle)
	}

	return area
}

// DivisorRefs returns, in Plan.Gates/Root visitation order with
// duplicates removed, the network gates behind every PlanRef.FromDivisor
// the Plan touches — the "new cut" MFFCArea must ref up before dereffing
// the pivot, since these are exactly the pre-existing nodes the
// replacement keeps alive as fanins.
func DivisorRefs(plan libmatch.Plan, divMap []network.GateID) []network.GateID {
	seen := make(map[network.GateID]bool)
	var out []network.GateID

	add := func(ref libmatch.PlanRef) {
		if !ref.FromDivisor || ref.Index < 0 || ref.Index >= len(divMap) {
			return
		}
		id := divMap[ref.Index]
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	for _, pg := range plan.Gates {
		for _, fr := range pg.Fanins {
			add(fr)
		}
	}
	add(plan.Root)

	return out
}
