// Package network implements the mapped-network container: a directed
// acyclic graph of standard-cell gate instances that the resynthesis engine
// in package resynth reads and mutates.
//
// A Net holds gates identified by a stable GateID, each pointing at a
// library cell handle (package cellib), an ordered fanin list, a
// fanout list maintained on every mutation, a topological Level, and a
// generic traversal-id stamp used by window extraction to mark "visited"
// without a full reset between passes.
//
// Net intentionally knows nothing about windows, SAT, or library matching:
// every concept specific to the resynthesis engine (role bitmasks, MFFC,
// divisor lists, virtual reference counts) lives in the caller's own side
// tables, keyed by GateID. Net exposes only the generic primitives spec.md
// §6 assigns to the "Network" collaborator: id allocation, fanins/fanouts/
// level/data queries, CreateNode, Replace, Destroy, and the traversal-id
// trio (IncTravID/IsTravCurrent/SetTravCurrent).
//
// Complexity and locking follow the teacher's core.Graph: a single
// sync.RWMutex guards the gate map and adjacency; reads take RLock, writes
// take Lock. Unlike core.Graph, edges here are not first-class values —
// a fanin at position i of a gate's fanin list is a plain GateID, since
// mapped-network fanins are ordered and unweighted.
package network
