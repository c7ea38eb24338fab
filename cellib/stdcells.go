package cellib

import "github.com/katalvlaran/lvlath-sfm/truth"

// DefaultLibrary returns a small, representative standard-cell library —
// the kind of 10-ish-cell "tutorial" library real mapped-network test
// fixtures use — covering every role the resynthesis engine and its tests
// rely on: constants, buffer, inverter, the common 2-input gates, and two
// AOI/OAI compound cells so package libmatch's 2-gate delay matching has
// something non-trivial to find. Areas and delays are plausible relative
// magnitudes (smaller/faster for simpler gates), not a real PDK's numbers.
//
// Complexity: O(1) (fixed gate count); this calls NewLibrary once.
func DefaultLibrary() (*Library, error) {
	pd := func(rise, fall int64) PinDelay { return PinDelay{Rise: rise, Fall: fall} }

	a, b := truth.Var(0), truth.Var(1)
	specs := []GateSpec{
		{Name: "CONST0", NumIns: 0, Truth: truth.Const0, Area: 0, PinDelays: nil},
		{Name: "CONST1", NumIns: 0, Truth: truth.Const1, Area: 0, PinDelays: nil},
		{Name: "BUF1", NumIns: 1, Truth: a, Area: 1 * MioNum, PinDelays: []PinDelay{pd(20, 20)}},
		{Name: "INV1", NumIns: 1, Truth: truth.Not(a), Area: 1 * MioNum, PinDelays: []PinDelay{pd(15, 15)}},
		{Name: "AND2", NumIns: 2, Truth: truth.And(a, b), Area: 2 * MioNum, PinDelays: []PinDelay{pd(30, 32), pd(31, 33)}},
		{Name: "NAND2", NumIns: 2, Truth: truth.Not(truth.And(a, b)), Area: 2*MioNum + MioNum/2, PinDelays: []PinDelay{pd(22, 24), pd(23, 25)}},
		{Name: "OR2", NumIns: 2, Truth: truth.Or(a, b), Area: 2 * MioNum, PinDelays: []PinDelay{pd(30, 32), pd(31, 33)}},
		{Name: "NOR2", NumIns: 2, Truth: truth.Not(truth.Or(a, b)), Area: 2*MioNum + MioNum/2, PinDelays: []PinDelay{pd(22, 24), pd(23, 25)}},
		{Name: "XOR2", NumIns: 2, Truth: truth.Xor(a, b), Area: 3 * MioNum, PinDelays: []PinDelay{pd(40, 42), pd(41, 43)}},
		{Name: "XNOR2", NumIns: 2, Truth: truth.Not(truth.Xor(a, b)), Area: 3 * MioNum, PinDelays: []PinDelay{pd(40, 42), pd(41, 43)}},
	}

	// AOI21 = NOT((a AND b) OR c); OAI21 = NOT((a OR b) AND c).
	c := truth.Var(2)
	aoi21 := truth.Not(truth.Or(truth.And(a, b), c))
	oai21 := truth.Not(truth.And(truth.Or(a, b), c))
	specs = append(specs,
		GateSpec{Name: "AOI21", NumIns: 3, Truth: aoi21, Area: 3*MioNum + MioNum/2,
			PinDelays: []PinDelay{pd(35, 38), pd(35, 38), pd(20, 22)}},
		GateSpec{Name: "OAI21", NumIns: 3, Truth: oai21, Area: 3*MioNum + MioNum/2,
			PinDelays: []PinDelay{pd(35, 38), pd(35, 38), pd(20, 22)}},
	)

	return NewLibrary(specs)
}
