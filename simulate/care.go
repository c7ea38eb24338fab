package simulate

import "github.com/katalvlaran/lvlath-sfm/network"

// setupCap is the per-side pattern cap Setup applies (spec.md §4.2:
// "capping each side at 24").
const setupCap = 24

// CareSet returns the bitwise OR, across every root, of sims[root] XOR
// sims2[root]: the patterns for which the pivot's complemented value
// actually changes some root's output (spec.md §4.2). Must be called
// after ResimulatePivotComplement has populated sims2 for these roots.
func (s *Simulator) CareSet(roots []network.GateID) uint64 {
	if !s.enabled {
		return 0
	}
	var care uint64
	for _, r := range roots {
		care |= s.sims[r] ^ s.sims2[r]
	}

	return care
}

// Setup partitions the care-set's one-bits into side 1 ("on-set": patterns
// where pivot's own persistent simulation bit is 0, i.e. the patterns
// relevant to asserting pivot==1) and side 0 ("off-set": pivot bit is 1),
// capping each side at setupCap patterns, lowest pattern index first. For
// each side it records every divisor's value at the chosen patterns as one
// packed column, seeding the PatternSet package decomp grows further.
//
// Complexity: O(64 + len(divisors)*setupCap).
func (s *Simulator) Setup(pivot network.GateID, roots, divisors []network.GateID) PatternSet {
	ps := NewPatternSet()
	if !s.enabled {
		return ps
	}

	care := s.CareSet(roots)
	pivotWord := s.sims[pivot]

	var onPats, offPats []uint

	for p := uint(0); p < 64; p++ {
		if (care>>p)&1 == 0 {
			continue
		}
		if (pivotWord>>p)&1 == 0 {
			if len(onPats) < setupCap {
				onPats = append(onPats, p)
			}
		} else {
			if len(offPats) < setupCap {
				offPats = append(offPats, p)
			}
		}
	}

	ps.NPats[1] = len(onPats)
	ps.NPats[0] = len(offPats)
	ps.UMask[1] = lowBitsMask(len(onPats))
	ps.UMask[0] = lowBitsMask(len(offPats))

	for _, d := range divisors {
		dWord := s.sims[d]
		ps.VSets[1][d] = packColumn(dWord, onPats)
		ps.VSets[0][d] = packColumn(dWord, offPats)
	}

	return ps
}

// Setdown merges ps back into the persistent sims vector for every
// divisor, overwriting the low 32 bits with side 0's column and the high
// 32 bits with side 1's column (each masked to 32 bits), so subsequent
// windows observe refreshed patterns (spec.md §4.2).
//
// Complexity: O(len(divisors)).
func (s *Simulator) Setdown(divisors []network.GateID, ps PatternSet) {
	if !s.enabled {
		return
	}
	for _, d := range divisors {
		low := ps.VSets[0][d] & 0xFFFFFFFF
		high := ps.VSets[1][d] & 0xFFFFFFFF
		s.sims[d] = low | (high << 32)
	}
}

// lowBitsMask returns a mask with the low n bits set (n in 0..64).
func lowBitsMask(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(n)) - 1
}

// packColumn reads word's bit at each pattern position in pats (in order)
// and packs them into the low len(pats) bits of the result, pats[0] at
// bit 0.
func packColumn(word uint64, pats []uint) uint64 {
	var col uint64
	for j, p := range pats {
		bit := (word >> p) & 1
		col |= bit << uint(j)
	}

	return col
}
