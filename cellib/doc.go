// Package cellib implements the cell library container: the read-only,
// preprocessed standard-cell database the resynthesis engine queries via
// package libmatch and consults to build CNF (package cnf).
//
// A Library holds, per gate, its name, its area (fixed-point, scaled by
// MioNum the way spec.md §3 describes), per-pin rise/fall delay, a
// 6-variable truth.Table, and a precompiled CNF Template — a reusable
// clause schema the CNF builder instantiates on fresh variable ids every
// time the gate appears in a window, instead of regenerating the clause
// structure of a gate's function from scratch on every use.
//
// Construction is a single call: NewLibrary takes a list of GateSpec values
// (no option values), validates and preprocesses each one once at
// construction time, and returns an immutable *Library safe for concurrent read access (nothing here ever
// mutates after construction, so no locking is needed — unlike network.Net,
// which the engine mutates pivot by pivot).
package cellib
