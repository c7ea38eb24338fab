package window

import (
	"sort"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// assemble builds the final window gate list W from the role-labelled TFI
// set, the MFFC member list, and the collected TFO set, then remaps every
// id reference into W-indices (spec.md §4.1's "divisor assembly" +
// "id remap" steps).
func assemble(
	net *network.Net,
	pivot network.GateID,
	params Params,
	roles map[network.GateID]Role,
	tfiVisited map[network.GateID]bool,
	mffc []network.GateID,
	tfoSet map[network.GateID]bool,
	rootIDs []network.GateID,
) (*State, error) {
	mffcSet := make(map[network.GateID]bool, len(mffc))
	for _, id := range mffc {
		mffcSet[id] = true
	}

	var group1, group2 []network.GateID
	for id := range tfiVisited {
		if mffcSet[id] {
			continue
		}
		r := roles[id]
		switch {
		case r == RolePI:
			group1 = append(group1, id)
		case r&RoleInput != 0 && (r&RolePI != 0 || r&RoleFanin != 0):
			group2 = append(group2, id)
		}
	}
	sort.Slice(group1, func(i, j int) bool { return group1[i] < group1[j] })
	sort.Slice(group2, func(i, j int) bool { return group2[i] < group2[j] })

	if params.DelayMode && params.ArrivalFn != nil {
		stableSortByArrival(group1, params.ArrivalFn)
		stableSortByArrival(group2, params.ArrivalFn)
	}

	// Side inputs: fanins of TFO members not already covered by any of the
	// above (nor the MFFC, nor the pivot). The distilled algorithm does not
	// name these explicitly, but a TFO gate's operand that never passed
	// through TFI or TFO collection must still appear in W as an opaque
	// divisor leaf for the CNF encoding to be well-formed.
	planned := make(map[network.GateID]bool, len(group1)+len(group2)+len(mffc)+len(tfoSet))
	for _, id := range group1 {
		planned[id] = true
	}
	for _, id := range group2 {
		planned[id] = true
	}
	for id := range mffcSet {
		planned[id] = true
	}
	for id := range tfoSet {
		planned[id] = true
	}

	var sideInputs []network.GateID
	seenSide := make(map[network.GateID]bool)
	tfoOrder := orderedIDs(tfoSet)
	for _, id := range tfoOrder {
		fanins, err := net.Fanins(id)
		if err != nil {
			return nil, err
		}
		for _, fi := range fanins {
			if planned[fi] || seenSide[fi] {
				continue
			}
			seenSide[fi] = true
			sideInputs = append(sideInputs, fi)
		}
	}
	sort.Slice(sideInputs, func(i, j int) bool { return sideInputs[i] < sideInputs[j] })

	divisorIDs := make([]network.GateID, 0, len(group1)+len(group2)+len(sideInputs))
	divisorIDs = append(divisorIDs, group1...)
	divisorIDs = append(divisorIDs, group2...)
	divisorIDs = append(divisorIDs, sideInputs...)

	if len(divisorIDs) < 2 {
		return nil, ErrTooFewDivisors
	}

	pivotLevel, err := net.Level(pivot)
	if err != nil {
		return nil, err
	}

	st := &State{
		Pivot:      pivot,
		PivotLevel: pivotLevel,
		Roles:      roles,
		idToW:      make(map[network.GateID]int),
	}

	for _, id := range divisorIDs {
		idx := len(st.W)
		st.W = append(st.W, WEntry{ID: id, Sentinel: true, Handle: cellib.InvalidHandle})
		st.idToW[id] = idx
	}
	st.NDivs = len(st.W)

	// MFFC group, topological order, ending with the pivot.
	sort.Slice(mffc, func(i, j int) bool {
		li, _ := net.Level(mffc[i])
		lj, _ := net.Level(mffc[j])
		if li != lj {
			return li < lj
		}

		return mffc[i] < mffc[j]
	})
	var mffcIndices []int
	for _, id := range mffc {
		entry, err := buildEntry(net, id, st.idToW)
		if err != nil {
			return nil, err
		}
		idx := len(st.W)
		st.W = append(st.W, entry)
		st.idToW[id] = idx
		mffcIndices = append(mffcIndices, idx)
		if id == pivot {
			st.ITarget = idx
		}
	}
	st.MFFC = mffcIndices

	// TFO group, topological order.
	for _, id := range tfoOrder {
		entry, err := buildEntry(net, id, st.idToW)
		if err != nil {
			return nil, err
		}
		idx := len(st.W)
		st.W = append(st.W, entry)
		st.idToW[id] = idx
	}

	if len(st.W) > WinMax {
		return nil, ErrWindowTooLarge
	}

	for _, r := range rootIDs {
		idx, ok := st.idToW[r]
		if !ok {
			continue
		}
		st.Roots = append(st.Roots, idx)
	}
	sort.Ints(st.Roots)

	for _, idx := range mffcIndices {
		id := st.W[idx].ID
		fanins, err := net.Fanins(id)
		if err != nil {
			return nil, err
		}
		for _, fi := range fanins {
			fidx, ok := st.idToW[fi]
			if ok && fidx < st.NDivs {
				st.InMFFC = append(st.InMFFC, fidx)
			}
		}
	}
	st.InMFFC = dedupInts(st.InMFFC)

	return st, nil
}

// buildEntry constructs a non-sentinel W entry for a real gate id, with
// Fanins resolved against the already-placed prefix of idToW.
func buildEntry(net *network.Net, id network.GateID, idToW map[network.GateID]int) (WEntry, error) {
	handle, err := net.Handle(id)
	if err != nil {
		return WEntry{}, err
	}
	fanins, err := net.Fanins(id)
	if err != nil {
		return WEntry{}, err
	}
	faninIdx := make([]int, len(fanins))
	for i, fi := range fanins {
		idx, ok := idToW[fi]
		if !ok {
			return WEntry{}, ErrFaninNotInWindow
		}
		faninIdx[i] = idx
	}

	return WEntry{ID: id, Sentinel: false, Handle: handle, Fanins: faninIdx}, nil
}

// stableSortByArrival stably re-sorts ids by arrival ascending, preserving
// relative order among equal-arrival entries (spec.md §4.1's delay-mode
// divisor-group re-sort).
func stableSortByArrival(ids []network.GateID, arrival func(network.GateID) int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		return arrival(ids[i]) < arrival(ids[j])
	})
}

func orderedIDs(set map[network.GateID]bool) []network.GateID {
	out := make([]network.GateID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func dedupInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := in[:0]
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	return out
}
