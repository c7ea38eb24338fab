package window

import (
	"sort"

	"github.com/katalvlaran/lvlath-sfm/network"
)

// Extract builds the window surrounding pivot: TFO collection, root
// detection, TFI collection, the TFI(Roots) merge, FANIN upgrade, MFFC
// marking, divisor assembly, and the final id remap (spec.md §4.1).
//
// Complexity: O(V+E) over the collected cones, dominated by the
// TFI(Roots) merge pass in the worst case.
func Extract(net *network.Net, pivot network.GateID, params Params) (*State, error) {
	pivotLevel, err := net.Level(pivot)
	if err != nil {
		return nil, err
	}

	tfoSet, roots, err := collectTFO(net, pivot, pivotLevel, params)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, ErrNoTFORoots
	}

	roles := make(map[network.GateID]Role)
	tfiVisited := make(map[network.GateID]bool)
	if err := collectTFI(net, pivot, pivotLevel, params, roles, tfiVisited); err != nil {
		return nil, err
	}

	if err := mergeTFIOfRoots(net, roots, roles, tfiVisited); err != nil {
		return nil, err
	}

	if err := upgradeFanins(net, roles, tfiVisited); err != nil {
		return nil, err
	}

	mffc, err := markMFFC(net, pivot, pivotLevel, params, roles, tfiVisited)
	if err != nil {
		return nil, err
	}
	if len(mffc) < params.NMffcMin {
		return nil, ErrMFFCTooSmall
	}

	return assemble(net, pivot, params, roles, tfiVisited, mffc, tfoSet, roots)
}

// collectTFO performs a level- and fanout-bounded breadth-first expansion
// from pivot's fanouts, returning the collected set and the subset that
// are roots (have a fanout outside the collected set, or have no fanout at
// all — i.e. are themselves a primary output).
func collectTFO(net *network.Net, pivot network.GateID, pivotLevel int, params Params) (map[network.GateID]bool, []network.GateID, error) {
	poSet := make(map[network.GateID]bool)
	for _, po := range net.POs() {
		poSet[po] = true
	}

	tfo := make(map[network.GateID]bool)
	visited := make(map[network.GateID]bool)
	frontier, err := net.Fanouts(pivot)
	if err != nil {
		return nil, nil, err
	}

	for len(frontier) > 0 {
		var next []network.GateID
		for _, id := range frontier {
			if visited[id] {
				continue
			}
			level, err := net.Level(id)
			if err != nil {
				return nil, nil, err
			}
			fanoutCount, err := net.FanoutCount(id)
			if err != nil {
				return nil, nil, err
			}
			if level > pivotLevel+params.NTfoLevMax {
				continue
			}
			if fanoutCount > params.NFanoutMax {
				continue
			}
			visited[id] = true
			tfo[id] = true
			if poSet[id] {
				continue
			}
			fanouts, err := net.Fanouts(id)
			if err != nil {
				return nil, nil, err
			}
			next = append(next, fanouts...)
		}
		frontier = next
	}

	var roots []network.GateID
	for id := range tfo {
		fanouts, err := net.Fanouts(id)
		if err != nil {
			return nil, nil, err
		}
		isRoot := poSet[id] || len(fanouts) == 0
		for _, fo := range fanouts {
			if !tfo[fo] {
				isRoot = true

				break
			}
		}
		if isRoot {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	return tfo, roots, nil
}

// collectTFI depth-first walks pivot's fanins, stopping at primary inputs
// or at nodes below the TFI level floor, marking every visited node PI.
func collectTFI(net *network.Net, pivot network.GateID, pivotLevel int, params Params, roles map[network.GateID]Role, visited map[network.GateID]bool) error {
	if visited[pivot] {
		return nil
	}
	visited[pivot] = true
	roles[pivot] |= RolePI

	isPI, err := net.IsPI(pivot)
	if err != nil {
		return err
	}
	level, err := net.Level(pivot)
	if err != nil {
		return err
	}
	if isPI || level < pivotLevel-params.NTfiLevMax {
		return nil
	}

	fanins, err := net.Fanins(pivot)
	if err != nil {
		return err
	}
	for _, fi := range fanins {
		if err := collectTFI(net, fi, pivotLevel, params, roles, visited); err != nil {
			return err
		}
	}

	return nil
}

// mergeTFIOfRoots walks backward from every TFO root, labelling INPUT;
// it stops descending once it reaches a node already in the TFI set
// (further exploration there is already accounted for) or a primary
// input.
func mergeTFIOfRoots(net *network.Net, roots []network.GateID, roles map[network.GateID]Role, tfiVisited map[network.GateID]bool) error {
	visited := make(map[network.GateID]bool)
	var walk func(id network.GateID) error
	walk = func(id network.GateID) error {
		if visited[id] {
			return nil
		}
		visited[id] = true
		roles[id] |= RoleInput

		if tfiVisited[id] {
			return nil
		}
		isPI, err := net.IsPI(id)
		if err != nil {
			return err
		}
		if isPI {
			return nil
		}
		fanins, err := net.Fanins(id)
		if err != nil {
			return err
		}
		for _, fi := range fanins {
			if err := walk(fi); err != nil {
				return err
			}
		}

		return nil
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}

	return nil
}

// upgradeFanins promotes every exactly-INPUT fanin of a mixed-role TFI
// node to FANIN, per spec.md §4.1's FANIN-upgrade rule.
func upgradeFanins(net *network.Net, roles map[network.GateID]Role, tfiVisited map[network.GateID]bool) error {
	for id := range tfiVisited {
		if roles[id] == RoleInput {
			continue // exclusively INPUT: not a mixed node, nothing to upgrade
		}
		fanins, err := net.Fanins(id)
		if err != nil {
			return err
		}
		for _, fi := range fanins {
			if roles[fi] == RoleInput {
				roles[fi] |= RoleFanin
			}
		}
	}

	return nil
}

// markMFFC breadth-first walks pivot's fanins up to NMffcMax nodes,
// admitting only single-fanout TFI gates at or above the TFI level floor.
// Returns the MFFC member ids (pivot included, pivot first).
func markMFFC(net *network.Net, pivot network.GateID, pivotLevel int, params Params, roles map[network.GateID]Role, tfiVisited map[network.GateID]bool) ([]network.GateID, error) {
	roles[pivot] |= RoleMFFC | RolePivot
	members := []network.GateID{pivot}
	visited := map[network.GateID]bool{pivot: true}
	queue := []network.GateID{pivot}
	budget := params.NMffcMax

	for len(queue) > 0 && budget > 0 {
		id := queue[0]
		queue = queue[1:]
		fanins, err := net.Fanins(id)
		if err != nil {
			return nil, err
		}
		for _, fi := range fanins {
			if budget <= 0 {
				break
			}
			if visited[fi] {
				continue
			}
			isPI, err := net.IsPI(fi)
			if err != nil {
				return nil, err
			}
			if isPI {
				continue
			}
			fanoutCount, err := net.FanoutCount(fi)
			if err != nil {
				return nil, err
			}
			if fanoutCount != 1 {
				continue
			}
			if !tfiVisited[fi] {
				continue
			}
			level, err := net.Level(fi)
			if err != nil {
				return nil, err
			}
			if level < pivotLevel-params.NTfiLevMax {
				continue
			}
			visited[fi] = true
			roles[fi] |= RoleMFFC
			members = append(members, fi)
			queue = append(queue, fi)
			budget--
		}
	}

	return members, nil
}
