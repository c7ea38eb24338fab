package timing

import "github.com/katalvlaran/lvlath-sfm/network"

// arrivalItem is one entry in the dirty-frontier heap UpdateTiming
// processes: a gate whose arrival time may need recomputing, ordered by
// level so every gate is relaxed only after all of its fanins have
// already settled, mirroring dijkstra.nodeItem's (id, dist) pair ordered
// by distance.
type arrivalItem struct {
	id    network.GateID
	level int
}

// arrivalPQ is a min-heap of *arrivalItem ordered by level ascending,
// using the same lazy-decrease-key discipline as dijkstra.nodePQ: a gate
// may be pushed more than once as its fanins settle and its own estimate
// is re-relaxed, and UpdateTiming's visited set silently skips the stale
// duplicates it pops later.
type arrivalPQ []*arrivalItem

func (pq arrivalPQ) Len() int            { return len(pq) }
func (pq arrivalPQ) Less(i, j int) bool  { return pq[i].level < pq[j].level }
func (pq arrivalPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *arrivalPQ) Push(x interface{}) { *pq = append(*pq, x.(*arrivalItem)) }
func (pq *arrivalPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
