// Package resynth implements spec.md §4.7: the top-level driver loops that
// walk a network.Net's gates, try a decomposition at each pivot via
// package decomp, match the result against a cellib.Library via package
// libmatch, and apply profitable replacements via package rewrite.
//
// Resynthesize is the single entry point; Params (built with DefaultParams
// and refined with Option functions, mirroring dijkstra.Options/Option and
// flow.FlowOptions in shape) selects one of three driver loops:
// AreaForward, AreaReverse, or DelayPriority. Every run returns a Stats
// value tallying what happened, for a caller to log or assert against in
// tests — mirroring tsp.TSResult's "return a result, don't print it from
// inside the algorithm" convention.
package resynth
