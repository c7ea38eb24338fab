package cellib

import (
	"fmt"

	"github.com/katalvlaran/lvlath-sfm/truth"
)

// valid reports whether h indexes a live gate in lib.
func (lib *Library) valid(h Handle) bool {
	return h >= 0 && int(h) < len(lib.gates)
}

// Gate returns the preprocessed record for h, or an error if h is out of
// range. Most accessors below are thin, panic-free wrappers around this
// that return zero values on an invalid handle instead — the same "never
// panic on caller input" discipline matrix/builder use — but Gate itself
// surfaces ErrGateNotFound so callers that need to distinguish "handle
// absent" from "legitimately zero-area gate" can.
//
// Complexity: O(1).
func (lib *Library) Gate(h Handle) (*Gate, error) {
	if !lib.valid(h) {
		return nil, fmt.Errorf("cellib: Gate(%d): %w", h, ErrGateNotFound)
	}

	return &lib.gates[h], nil
}

// GateByName looks up a gate's Handle by its library name.
//
// Complexity: O(1).
func (lib *Library) GateByName(name string) (Handle, bool) {
	h, ok := lib.byName[name]

	return h, ok
}

// NumGates returns the number of gates in the library.
func (lib *Library) NumGates() int { return len(lib.gates) }

// Const0, Const1, Buf, Inv return the library's recognized constant-0,
// constant-1, buffer, and inverter handles (guaranteed present by
// NewLibrary).
func (lib *Library) Const0() Handle { return lib.const0 }
func (lib *Library) Const1() Handle { return lib.const1 }
func (lib *Library) Buf() Handle    { return lib.buf }
func (lib *Library) Inv() Handle    { return lib.inv }

// InvArea and InvDelay cache the inverter's area and worst-case delay —
// spec.md §6's invArea/invDelay — since callers consult them on nearly
// every pivot attempt (DeltaCrit's default is "5/2 * max-inverter-delay").
func (lib *Library) InvArea() int64  { return lib.invArea }
func (lib *Library) InvDelay() int64 { return lib.invDelay }

// Area returns h's area, or 0 if h is invalid.
func (lib *Library) Area(h Handle) int64 {
	if !lib.valid(h) {
		return 0
	}

	return lib.gates[h].Area
}

// DelayMax returns h's worst-case pin delay, or 0 if h is invalid.
func (lib *Library) DelayMax(h Handle) int64 {
	if !lib.valid(h) {
		return 0
	}

	return lib.gates[h].DelayMax()
}

// PinDelay returns the rise/fall delay of input pin i of h.
func (lib *Library) PinDelay(h Handle, pin int) (PinDelay, bool) {
	if !lib.valid(h) || pin < 0 || pin >= lib.gates[h].NumIns {
		return PinDelay{}, false
	}

	return lib.gates[h].PinDelays[pin], true
}

// IsInv, IsBuf, IsConst0, IsConst1 classify h (false if h is invalid).
func (lib *Library) IsInv(h Handle) bool {
	return lib.valid(h) && lib.gates[h].isInv
}
func (lib *Library) IsBuf(h Handle) bool {
	return lib.valid(h) && lib.gates[h].isBuf
}
func (lib *Library) IsConst0(h Handle) bool {
	return lib.valid(h) && lib.gates[h].isConst0
}
func (lib *Library) IsConst1(h Handle) bool {
	return lib.valid(h) && lib.gates[h].isConst1
}

// Truth returns h's truth table, or Const0 if h is invalid.
func (lib *Library) Truth(h Handle) truth.Table {
	if !lib.valid(h) {
		return truth.Const0
	}

	return lib.gates[h].Truth
}

// PinNum returns h's number of input pins, or 0 if h is invalid.
func (lib *Library) PinNum(h Handle) int {
	if !lib.valid(h) {
		return 0
	}

	return lib.gates[h].NumIns
}

// Template returns h's precompiled CNF schema, or the empty Template if h
// is invalid.
func (lib *Library) Template(h Handle) Template {
	if !lib.valid(h) {
		return Template{}
	}

	return lib.gates[h].Template
}

// FindComplInputGate implements spec.md §4.5's findComplInputGate: given a
// gate's Handle and the index of one input pin, it looks for another gate
// in the library whose truth table equals h's truth table with input pin
// idx complemented (permuting the remaining inputs if needed so the search
// is commutative-input-aware). It returns the matching Handle and the
// index the caller should now feed the formerly-driving signal's
// complement into — which, thanks to permutation, need not be idx itself.
//
// This is used by package rewrite to propagate an inverter being removed
// into each of its fanouts (spec.md S3): if every fanout has a
// complemented-input variant available, the inverter can be deleted
// entirely instead of instantiated.
//
// Complexity: O(NumGates * NumIns!) worst case (linear scan with a
// brute-force permutation check); library sizes in this domain (tens to
// low hundreds of cells) make this cheap relative to one SAT call.
func (lib *Library) FindComplInputGate(h Handle, idx int) (Handle, int, bool) {
	g, err := lib.Gate(h)
	if err != nil || idx < 0 || idx >= g.NumIns {
		return InvalidHandle, 0, false
	}
	want := complementInput(g.Truth, g.NumIns, idx)

	for i := range lib.gates {
		cand := &lib.gates[i]
		if cand.NumIns != g.NumIns {
			continue
		}
		if newIdx, ok := matchUpToInputPermutation(want, cand.Truth, g.NumIns, idx); ok {
			return Handle(i), newIdx, true
		}
	}

	return InvalidHandle, 0, false
}

// complementInput returns the truth table obtained from tt (over numIns
// canonical variables) by complementing variable idx.
func complementInput(tt truth.Table, numIns, idx int) truth.Table {
	c1 := truth.Cofactor(tt, idx, true)
	c0 := truth.Cofactor(tt, idx, false)
	_ = numIns

	return truth.Mux(truth.Var(idx), c0, c1)
}

// matchUpToInputPermutation reports whether want can be obtained from cand
// by permuting its numIns inputs, returning the position in cand's pin
// order that now carries want's variable idx, "the pin we complemented"
// (the first matching input permutation found is used; callers only need
// *a* valid assignment, not all of them).
//
// Complexity: O(numIns!) worst case; numIns <= truth.MaxVars == 6, and most
// matches are found on the identity or single-transposition permutations,
// so this is cheap in practice.
func matchUpToInputPermutation(want, cand truth.Table, numIns, idx int) (int, bool) {
	perm := make([]int, numIns)
	for i := range perm {
		perm[i] = i
	}

	found := -1
	permute(perm, 0, func(p []int) bool {
		if permutedEquals(want, cand, p) {
			// Report which pin of cand plays the role of the complemented
			// input under this permutation: relabel feeds want's variable
			// i into cand's pin p[i].
			found = p[idx]

			return true
		}

		return false
	})

	return found, found >= 0
}

// permutedEquals reports whether cand, with its pin p[i] fed want's
// variable i, equals want.
func permutedEquals(want, cand truth.Table, p []int) bool {
	relabelled := relabel(cand, p)

	return relabelled == want
}

// relabel returns the table obtained from t by mapping canonical variable
// i to p[i] for i in 0..len(p)-1.
func relabel(t truth.Table, p []int) truth.Table {
	var res uint64
	for m := 0; m < 64; m++ {
		var mOld int
		for i, src := range p {
			if (m>>uint(i))&1 == 1 {
				mOld |= 1 << uint(src)
			}
		}
		if (uint64(t)>>uint(mOld))&1 == 1 {
			res |= 1 << uint(m)
		}
	}

	return truth.Table(res)
}

// permute calls visit with every permutation of perm (recursive
// swap-and-backtrack enumeration), stopping early if visit returns true.
func permute(perm []int, k int, visit func([]int) bool) bool {
	if k == len(perm) {
		return visit(perm)
	}
	for i := k; i < len(perm); i++ {
		perm[k], perm[i] = perm[i], perm[k]
		if permute(perm, k+1, visit) {
			perm[k], perm[i] = perm[i], perm[k]

			return true
		}
		perm[k], perm[i] = perm[i], perm[k]
	}

	return false
}
