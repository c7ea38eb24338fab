// Package rewrite implements spec.md §4.6: the accept/reject area
// accounting and the mechanical network surgery that turns a decomp.Result
// (via a libmatch.Plan) into an actual change to a network.Net.
//
// MFFCArea computes, without mutating the network, the area that would be
// freed by removing a pivot's maximum-fanout-free cone. Substitute performs
// the replacement itself: either a direct rewire to an existing divisor, or
// instantiation of a multi-gate Plan followed by network.Net.Replace and
// recursive destruction of the pivot's now-dangling cone. TryAbsorbInverter
// implements the independent S3 optimization (spec.md's inverter-absorption
// example): propagating an inverter pivot into its fanouts' complemented-
// input variants so the inverter itself can be deleted with no replacement
// gate at all.
//
// DelayOptOne implements spec.md §4.4's delay_opt_one: it asks
// libmatch.FindDelayMatches for a small set of one- or two-gate
// candidates, predicts each one's arrival time via
// timing.Engine.EvalRemapping without touching the network, and commits
// the strictly fastest one (if any beats the pivot's current arrival)
// through Substitute followed by timing.Engine.UpdateTiming.
//
// Level maintenance (spec.md §4.6's "DFS down fanouts, stop when level is
// unchanged") is not reimplemented here: network.Net.Replace already runs
// exactly that walk (see network/mutate.go's recomputeLevels) every time a
// consumer's fanin changes, so Substitute gets it for free. Timing
// maintenance (the delay-mode incremental arrival/slack pass) is driven by
// DelayOptOne itself for its own substitutions; the area path's caller
// (package resynth) drives it separately since Substitute there returns
// its created ids instead of updating timing unconditionally.
package rewrite
