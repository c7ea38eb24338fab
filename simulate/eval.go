package simulate

import (
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/truth"
)

// RandomizePIs draws a fresh 64-bit pattern word for every primary input.
// No-op when the simulator is disabled.
//
// Complexity: O(len(PIs)).
func (s *Simulator) RandomizePIs() {
	if !s.enabled {
		return
	}
	for _, pi := range s.net.PIs() {
		s.sims[pi] = s.rng.Uint64()
	}
}

// PropagateAll recomputes every interior gate's simulation word from its
// fanins', walking gates in ascending GateID order (a valid topological
// order per network.Net.AllGates's invariant). No-op when disabled.
//
// Complexity: O(V * faninWidth * 64).
func (s *Simulator) PropagateAll() error {
	if !s.enabled {
		return nil
	}
	for _, id := range s.net.AllGates() {
		isPI, err := s.net.IsPI(id)
		if err != nil {
			return err
		}
		if isPI {
			continue
		}
		word, err := s.evalFromMap(id, s.sims)
		if err != nil {
			return err
		}
		s.sims[id] = word
	}

	return nil
}

// evalFromMap computes id's output word using fanin words looked up in
// words, falling back to s.sims when a fanin is absent from words, so
// ResimulatePivotComplement can pass a sparse overlay covering only the
// TFO cone.
func (s *Simulator) evalFromMap(id network.GateID, words map[network.GateID]uint64) (uint64, error) {
	handle, err := s.net.Handle(id)
	if err != nil {
		return 0, err
	}
	fanins, err := s.net.Fanins(id)
	if err != nil {
		return 0, err
	}
	tt := s.lib.Truth(handle)
	numIns := s.lib.PinNum(handle)

	faninWords := make([]uint64, numIns)
	for i := 0; i < numIns && i < len(fanins); i++ {
		fi := fanins[i]
		if w, ok := words[fi]; ok {
			faninWords[i] = w
		} else {
			faninWords[i] = s.sims[fi]
		}
	}

	return evalGate(tt, numIns, faninWords), nil
}

// evalGate evaluates truth table tt (numIns real inputs) bit-by-bit across
// all 64 simulation patterns: for pattern p, the numIns fanin bits at
// position p form an index into tt, whose bit at that index is the output
// bit at position p.
//
// Complexity: O(64 * numIns). numIns <= truth.MaxVars (6), so this is a
// small constant-bounded loop, not a hot-path concern at window scale.
func evalGate(tt truth.Table, numIns int, faninWords []uint64) uint64 {
	if numIns == 0 {
		if truth.IsConst1(tt) {
			return ^uint64(0)
		}

		return 0
	}

	var out uint64
	for p := uint(0); p < 64; p++ {
		idx := uint(0)
		for i := 0; i < numIns; i++ {
			bit := (faninWords[i] >> p) & 1
			idx |= uint(bit) << uint(i)
		}
		outBit := (uint64(tt) >> idx) & 1
		out |= outBit << p
	}

	return out
}

// ResimulatePivotComplement recomputes sims2 along tfoCone (which must be
// listed in ascending GateID order, i.e. topological order, with pivot as
// its first element): sims2[pivot] is the complement of pivot's current
// persistent word, and every later node in tfoCone is recomputed reading
// its fanins from sims2 when present there, else from the persistent sims
// vector — exactly the "recomputed only along the TFO cone" rule of
// spec.md §4.2.
//
// Complexity: O(len(tfoCone) * faninWidth * 64).
func (s *Simulator) ResimulatePivotComplement(pivot network.GateID, tfoCone []network.GateID) error {
	s.sims2 = make(map[network.GateID]uint64)
	if !s.enabled || len(tfoCone) == 0 {
		return nil
	}
	s.sims2[pivot] = ^s.sims[pivot]

	for _, id := range tfoCone {
		if id == pivot {
			continue
		}
		isPI, err := s.net.IsPI(id)
		if err != nil {
			return err
		}
		if isPI {
			continue
		}
		word, err := s.evalFromMap(id, s.sims2)
		if err != nil {
			return err
		}
		s.sims2[id] = word
	}

	return nil
}
