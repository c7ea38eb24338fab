// Package simulate implements the optional bit-parallel simulator spec.md
// §4.2 describes: 64 random patterns propagated once over the whole
// network, plus a per-pivot re-simulation with the pivot's output
// complemented, narrowing the SAT work package decomp does to only the
// patterns that can actually distinguish the pivot's value at some root.
//
// Each gate's simulation state is one uint64 "word": bit p of the word is
// the gate's output under random pattern p. A gate's word is computed from
// its fanins' words by evaluating its cellib.Gate truth table once per bit
// position — the same bit-sliced evaluation idea as package matrix's
// packed-row elementwise operators, applied to a 6-input lookup table
// instead of a dense matrix row.
//
// PI words are drawn from a deterministic PRNG grounded on tsp/rng.go's
// SplitMix64-seeded math/rand.Rand (see types.go): same seed, same network,
// same patterns, every run — required for the engine's driver loops to be
// reproducible.
package simulate
