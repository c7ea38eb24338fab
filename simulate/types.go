package simulate

import (
	"math/rand"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
)

// defaultSeed is the fixed seed used when no Option overrides it, mirroring
// tsp/rng.go's defaultRNGSeed policy: arbitrary but stable, never
// time-derived.
const defaultSeed int64 = 1

// Simulator holds the persistent per-gate simulation state ("sims") for one
// network, plus the scratch per-pivot state ("sims2") used while a window
// is open. The zero value is not usable; construct with NewSimulator.
type Simulator struct {
	net *network.Net
	lib *cellib.Library
	rng *rand.Rand

	enabled bool
	sims    map[network.GateID]uint64
	sims2   map[network.GateID]uint64
}

// Option configures a Simulator at construction time.
type Option func(*Simulator)

// WithSeed fixes the PRNG seed (0 maps to defaultSeed, matching
// tsp/rng.go's rngFromSeed policy).
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		if seed == 0 {
			seed = defaultSeed
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDisabled builds a Simulator that never propagates or randomizes
// anything; every query returns the zero word and an empty PatternSet,
// matching spec.md §4.2's "if the simulator is disabled, all pattern
// buffers start empty and nPats[c]=0".
func WithDisabled() Option {
	return func(s *Simulator) {
		s.enabled = false
	}
}

// NewSimulator builds a Simulator over net and lib. Enabled by default;
// pass WithDisabled to turn it into a no-op stand-in.
func NewSimulator(net *network.Net, lib *cellib.Library, opts ...Option) *Simulator {
	s := &Simulator{
		net:     net,
		lib:     lib,
		rng:     rand.New(rand.NewSource(defaultSeed)),
		enabled: true,
		sims:    make(map[network.GateID]uint64),
		sims2:   make(map[network.GateID]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Enabled reports whether this Simulator performs real propagation.
func (s *Simulator) Enabled() bool { return s.enabled }

// Word returns gate id's current persistent simulation word (zero if id
// was never simulated, or if the simulator is disabled).
func (s *Simulator) Word(id network.GateID) uint64 { return s.sims[id] }

// PatternSet is the seed state spec.md §4.3/§4.4 hand to the CNF/
// decomposition stages: two sides (index 0 = off-set, index 1 = on-set per
// spec.md §4.2's "on-set (value=0 under pivot==1), off-set (value=1)"
// convention), each with a capped column of recorded CEX patterns per
// divisor.
type PatternSet struct {
	// NPats[c] is the number of recorded patterns on side c (<= 24 as
	// produced by Setup; package decomp may grow this up to 64).
	NPats [2]int

	// UMask[c] has the low NPats[c] bits set.
	UMask [2]uint64

	// VSets[c][d] is divisor d's value at each recorded pattern on side c,
	// packed into the low NPats[c] bits.
	VSets [2]map[network.GateID]uint64
}

// NewPatternSet returns an empty PatternSet (both sides zero patterns),
// the state spec.md §4.2's "simulator disabled" case leaves behind.
func NewPatternSet() PatternSet {
	return PatternSet{
		VSets: [2]map[network.GateID]uint64{
			make(map[network.GateID]uint64),
			make(map[network.GateID]uint64),
		},
	}
}
