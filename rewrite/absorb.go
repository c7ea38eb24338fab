package rewrite

import (
	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// TryAbsorbInverter implements spec.md's S3 example: if pivot is itself a
// library inverter, and every one of its fanouts has a complemented-input
// variant available at the exact pin pivot currently drives
// (cellib.Library.FindComplInputGate), pivot is deleted entirely and each
// fanout is rehandled in place to read pivot's own fanin directly through
// that variant instead. It reports whether the absorption happened; false
// with a nil error means pivot was left untouched (not an inverter, or at
// least one fanout has no complemented-input variant).
//
// This is independent of decomp/libmatch: it needs no window, no SAT call
// and no Plan, so package resynth's driver loops can try it on any
// interior gate before spending a SAT budget on it.
//
// Scope: FindComplInputGate's contract only promises the pin index a
// fanout should now read pivot's fanin through, not a permutation of that
// fanout's *other* pins (cellib/methods.go's matchUpToInputPermutation
// picks whichever permutation it finds first, not necessarily the
// identity on the other pins). Absorbing only when the returned pin index
// equals the original one sidesteps that ambiguity at the cost of
// skipping some absorptions a pin-permutation-aware version would catch;
// this is a deliberate, documented scope limit (see DESIGN.md), not a
// correctness bug, since a rejected absorption just leaves the inverter
// in place for the regular decomp pipeline to consider. The same
// reasoning rejects any fanout that reads pivot through more than one of
// its own fanin pins (e.g. AND(pivot, pivot)): FindComplInputGate only
// ever rewrites one pin at a time, so absorbing such a fanout would need
// to chain two complemented-pin lookups against each other's output
// handle, which is outside what the contract promises.
//
// Complexity: O(fanout count * NumGates * NumIns!) worst case (one
// FindComplInputGate probe per fanout), run before any mutation so a
// single intolerant fanout aborts with net left untouched.
func TryAbsorbInverter(net *network.Net, lib *cellib.Library, pivot network.GateID) (bool, error) {
	handle, err := net.Handle(pivot)
	if err != nil {
		return false, err
	}
	if !lib.IsInv(handle) {
		return false, nil
	}

	pivotFanins, err := net.Fanins(pivot)
	if err != nil {
		return false, err
	}
	if len(pivotFanins) != 1 {
		return false, nil
	}
	upstream := pivotFanins[0]

	fanouts, err := net.Fanouts(pivot)
	if err != nil {
		return false, err
	}
	if len(fanouts) == 0 {
		return false, nil
	}

	type rewiring struct {
		id     network.GateID
		handle cellib.Handle
		fanins []network.GateID
	}
	plan := make([]rewiring, 0, len(fanouts))

	// fanouts is a multiset (net.Fanouts mirrors fanin-pin multiplicity),
	// so a fanout reading pivot through two of its own pins appears here
	// twice; dedupe before planning so it is considered (and, per the
	// Scope note above, rejected) exactly once instead of twice.
	seen := make(map[network.GateID]bool, len(fanouts))
	for _, fo := range fanouts {
		if seen[fo] {
			continue
		}
		seen[fo] = true

		foHandle, err := net.Handle(fo)
		if err != nil {
			return false, err
		}
		foFanins, err := net.Fanins(fo)
		if err != nil {
			return false, err
		}

		idx := indexOfGateID(foFanins, pivot)
		if idx < 0 {
			return false, nil
		}
		if countGateID(foFanins, pivot) > 1 {
			return false, nil
		}

		newHandle, newIdx, ok := lib.FindComplInputGate(foHandle, idx)
		if !ok || newIdx != idx {
			return false, nil
		}

		newFanins := append([]network.GateID(nil), foFanins...)
		newFanins[idx] = upstream
		plan = append(plan, rewiring{id: fo, handle: newHandle, fanins: newFanins})
	}

	for _, r := range plan {
		if err := net.Rehandle(r.id, r.handle, r.fanins); err != nil {
			return false, err
		}
	}

	return true, destroyDanglingCone(net, pivot)
}

// indexOfGateID returns the first index of target in s, or -1.
func indexOfGateID(s []network.GateID, target network.GateID) int {
	for i, v := range s {
		if v == target {
			return i
		}
	}

	return -1
}

// countGateID returns how many times target occurs in s.
func countGateID(s []network.GateID, target network.GateID) int {
	n := 0
	for _, v := range s {
		if v == target {
			n++
		}
	}

	return n
}
