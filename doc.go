// Package lvlathsfm is a SAT-based don't-care-aware resynthesis engine
// for mapped combinational logic networks.
//
// Given a network.Net already mapped onto a cellib.Library, resynth.
// Resynthesize walks its gates, opens a bounded window around each
// candidate (package window), encodes the window's function into CNF
// (package cnf) and solves it incrementally (package satsolver) to
// discover alternative, functionally-equivalent realizations (package
// decomp) exploiting the window's don't-cares, matches each candidate
// against the library (package libmatch), and commits whichever
// replacement reduces area or delay (package rewrite) — all without
// ever constructing or comparing full truth tables beyond a handful of
// variables per window.
//
// Subpackages, roughly in the order a resynthesis pass touches them:
//
//	network/   mapped-network representation: gates, fanin/fanout, levels
//	cellib/    standard-cell library: gate truth tables, areas, pin delays
//	simulate/  bit-parallel simulation, the cheap precheck ahead of SAT
//	window/    TFI/TFO/MFFC window extraction around a pivot gate
//	cnf/       Tseitin encoding of a window into CNF, plus the XOR/OR
//	           observability gadget that turns equivalence into SAT
//	satsolver/ a small incremental DPLL-style solver used by cnf/decomp
//	decomp/    the don't-care-aware decomposition search itself
//	libmatch/  truth-table/permutation matching against a cellib.Library
//	timing/    incremental arrival/required-time/slack tracking (delay mode)
//	rewrite/   MFFC area accounting and the actual network surgery
//	resynth/   the driver loops and top-level Resynthesize entrypoint
//
// There is no wire format, CLI, or persisted state at this layer: the
// engine is invoked programmatically and mutates a network.Net in place.
package lvlathsfm
