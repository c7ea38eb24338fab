package rewrite

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// Substitute realizes plan in net in place of pivot and returns the id
// that now drives every fanout pivot used to drive, plus the ids of any
// new gates Substitute created (for the delay-mode caller, DelayOptOne, to
// hand to timing.Engine.UpdateTiming) — spec.md §4.6's
// substitution step.
//
// divMap supplies the network gate behind each of plan's
// PlanRef{FromDivisor: true} positions (ws.W[i].ID for i < ws.NDivs,
// package window's divisor ids). maxNewGates bounds len(plan.Gates); pass
// 0 for "unlimited" (area mode) or 2 for delay mode's "no more than 2 net
// gates added" invariant (spec.md §7).
//
// An empty plan.Gates with plan.Root.FromDivisor true is the "single
// buffer to divisor x" shortcut: no gate is created, pivot's fanouts are
// rewired directly to the divisor. Otherwise every plan.Gates entry is
// instantiated via net.CreateNode in topological (plan) order, and
// net.Replace retargets pivot's fanouts to the new root.
//
// In both cases Substitute then destroys pivot and recursively destroys
// whatever of its former fanin cone is left with zero fanouts — the MFFC
// network.Replace deliberately leaves dangling (see network/mutate.go).
//
// Complexity: O(len(plan.Gates)) to instantiate the plan, plus O(V+E) for
// network.Replace's downstream level recompute and the dangling-cone walk.
func Substitute(net *network.Net, lib *cellib.Library, pivot network.GateID, divMap []network.GateID, plan libmatch.Plan, maxNewGates int) (network.GateID, []network.GateID, error) {
	if maxNewGates > 0 && len(plan.Gates) > maxNewGates {
		return network.InvalidGateID, nil, ErrTooManyGates
	}

	var newRoot network.GateID
	var newIDs []network.GateID

	if len(plan.Gates) == 0 {
		if !plan.Root.FromDivisor || plan.Root.Index < 0 || plan.Root.Index >= len(divMap) {
			return network.InvalidGateID, nil, ErrBadPlanRef
		}
		newRoot = divMap[plan.Root.Index]
	} else {
		created := make([]network.GateID, len(plan.Gates))
		resolve := func(ref libmatch.PlanRef) (network.GateID, error) {
			if ref.FromDivisor {
				if ref.Index < 0 || ref.Index >= len(divMap) {
					return network.InvalidGateID, ErrBadPlanRef
				}

				return divMap[ref.Index], nil
			}
			if ref.Index < 0 || ref.Index >= len(created) {
				return network.InvalidGateID, ErrBadPlanRef
			}

			return created[ref.Index], nil
		}

		for gi, pg := range plan.Gates {
			fanins := make([]network.GateID, len(pg.Fanins))
			for pin, fr := range pg.Fanins {
				id, err := resolve(fr)
				if err != nil {
					return network.InvalidGateID, nil, err
				}
				fanins[pin] = id
			}
			id, err := net.CreateNode(pg.Handle, fanins, false)
			if err != nil {
				return network.InvalidGateID, nil, err
			}
			created[gi] = id
		}

		root, err := resolve(plan.Root)
		if err != nil {
			return network.InvalidGateID, nil, err
		}
		newRoot = root
		newIDs = created
	}

	if err := net.Replace(pivot, newRoot); err != nil {
		return network.InvalidGateID, nil, err
	}
	if err := destroyDanglingCone(net, pivot); err != nil {
		return network.InvalidGateID, nil, err
	}

	return newRoot, newIDs, nil
}

// destroyDanglingCone destroys id (whose fanouts must already be empty,
// as left by a prior network.Net.Replace) and recursively destroys
// whichever of its former fanins are left with zero fanouts and are not
// primary inputs — spec.md §4.6's implicit "the pivot's now-unreferenced
// MFFC" half of the replace(pivot, newRoot) primitive, which package
// network deliberately does not perform itself (network/mutate.go's
// Replace doc comment).
func destroyDanglingCone(net *network.Net, id network.GateID) error {
	fanins, err := net.Fanins(id)
	if err != nil {
		return err
	}
	if err := net.Destroy(id); err != nil {
		return err
	}

	for _, fi := range fanins {
		isPI, err := net.IsPI(fi)
		if err != nil {
			return err
		}
		if isPI {
			continue
		}
		count, err := net.FanoutCount(fi)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := destroyDanglingCone(net, fi); err != nil {
				return err
			}
		}
	}

	return nil
}
