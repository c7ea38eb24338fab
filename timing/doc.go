// Package timing implements the delay-mode-only timing engine of spec.md
// §6's "Timing" collaborator contract: incremental arrival-time and slack
// propagation over a mapped network, plus the priority queries
// delay_opt_one and the delay-priority driver loop need.
//
// An Engine caches one arrival time and one required time per gate.
// Arrival is the earliest time a gate's output can be guaranteed stable,
// computed forward from the primary inputs along worst-case pin delays.
// Required is the latest time a gate's output may settle without
// lengthening the network's critical path, computed backward from the
// primary outputs. Slack is required minus arrival: positive slack means
// headroom, non-positive means the gate sits on (or past) the critical
// path.
//
// Start performs a full forward-then-backward recompute; UpdateTiming
// performs an incremental forward-then-backward recompute restricted to
// the cone downstream of a set of newly created or rewired gates, using a
// container/heap min-heap to process the dirty frontier in non-decreasing
// level order — the same "distance from a source set, lazily re-relaxed"
// shape as github.com/katalvlaran/lvlath's dijkstra.Dijkstra, adapted from
// shortest-path relaxation to arrival-time relaxation over a DAG (see
// heap.go and update.go, grounded directly on dijkstra.go's nodeItem/
// nodePQ and its lazy-decrease-key discipline of pushing duplicates and
// ignoring stale pops).
package timing
