// Package window implements the per-pivot window extractor: transitive-
// fanout (TFO) cone collection, transitive-fanin (TFI) cone collection, the
// TFI(Roots) merge pass, FANIN-role upgrade, maximum-fanout-free-cone
// (MFFC) marking, divisor assembly, and the final id remap into a flat
// window gate list W ready for package cnf to encode.
//
// Role bits are never written onto the network: window keeps its own
// id -> role-bitmask side table for the duration of one Extract call and
// discards it when the call returns, exactly as spec.md's design notes
// direct ("replace [network mark fields] with a per-window side table...
// do not mutate the network struct").
//
// Grounded on the teacher's dfs package: TFI collection is a depth-first
// walk with an early-stop predicate (dfs/cycle.go's three-color marking
// generalized here from white/gray/black to the five-bit role mask), and
// TFO collection is a level-bounded breadth-first frontier expansion in
// the shape of bfs/bfs.go's queue-driven traversal, pruned by the same
// level-delta and fanout-count bounds spec.md specifies.
package window
