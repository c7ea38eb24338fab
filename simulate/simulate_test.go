package simulate_test

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/simulate"
)

func buildAndNet(t *testing.T) (*network.Net, *cellib.Library, network.GateID, network.GateID, network.GateID) {
	t.Helper()
	lib, err := cellib.DefaultLibrary()
	require.NoError(t, err)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)

	n := network.NewNet()
	a, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	b, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	g, err := n.CreateNode(and2, []network.GateID{a, b}, false)
	require.NoError(t, err)

	return n, lib, a, b, g
}

func TestPropagateAllComputesAndGate(t *testing.T) {
	n, lib, a, b, g := buildAndNet(t)
	sim := simulate.NewSimulator(n, lib, simulate.WithSeed(42))
	sim.RandomizePIs()
	require.NoError(t, sim.PropagateAll())

	want := sim.Word(a) & sim.Word(b)
	require.Equal(t, want, sim.Word(g))
}

func TestPropagateAllDeterministicAcrossSameSeed(t *testing.T) {
	n1, lib1, _, _, g1 := buildAndNet(t)
	s1 := simulate.NewSimulator(n1, lib1, simulate.WithSeed(7))
	s1.RandomizePIs()
	require.NoError(t, s1.PropagateAll())

	n2, lib2, _, _, g2 := buildAndNet(t)
	s2 := simulate.NewSimulator(n2, lib2, simulate.WithSeed(7))
	s2.RandomizePIs()
	require.NoError(t, s2.PropagateAll())

	require.Equal(t, s1.Word(g1), s2.Word(g2))
}

func TestDisabledSimulatorStaysZero(t *testing.T) {
	n, lib, _, _, g := buildAndNet(t)
	sim := simulate.NewSimulator(n, lib, simulate.WithDisabled())
	sim.RandomizePIs()
	require.NoError(t, sim.PropagateAll())
	require.False(t, sim.Enabled())
	require.Equal(t, uint64(0), sim.Word(g))

	ps := sim.Setup(g, []network.GateID{g}, nil)
	require.Equal(t, 0, ps.NPats[0])
	require.Equal(t, 0, ps.NPats[1])
}

func TestResimulateComplementChangesCareSet(t *testing.T) {
	n, lib, a, b, g := buildAndNet(t)
	sim := simulate.NewSimulator(n, lib, simulate.WithSeed(99))
	sim.RandomizePIs()
	require.NoError(t, sim.PropagateAll())

	require.NoError(t, sim.ResimulatePivotComplement(g, []network.GateID{g}))
	care := sim.CareSet([]network.GateID{g})
	// g is its own only root here, so CareSet is exactly sims[g]^sims2[g],
	// which for a complemented pivot is always the full word (every
	// pattern differs since sims2[g] = ^sims[g]).
	require.Equal(t, ^uint64(0), care)

	ps := sim.Setup(g, []network.GateID{g}, []network.GateID{a, b})
	require.LessOrEqual(t, ps.NPats[0], 24)
	require.LessOrEqual(t, ps.NPats[1], 24)
	// Every pattern is a care pattern, so each side records its share of
	// the 64 (side 1: pivot bit 0, side 0: pivot bit 1), capped at 24.
	ones := bits.OnesCount64(sim.Word(g))
	wantOn, wantOff := 64-ones, ones
	if wantOn > 24 {
		wantOn = 24
	}
	if wantOff > 24 {
		wantOff = 24
	}
	require.Equal(t, wantOn+wantOff, ps.NPats[0]+ps.NPats[1])
}

func TestSetdownOverwritesLowHigh32(t *testing.T) {
	n, lib, a, b, g := buildAndNet(t)
	sim := simulate.NewSimulator(n, lib, simulate.WithSeed(3))
	sim.RandomizePIs()
	require.NoError(t, sim.PropagateAll())
	require.NoError(t, sim.ResimulatePivotComplement(g, []network.GateID{g}))

	ps := sim.Setup(g, []network.GateID{g}, []network.GateID{a, b})
	sim.Setdown([]network.GateID{a, b}, ps)

	wordA := sim.Word(a)
	require.Equal(t, ps.VSets[0][a]&0xFFFFFFFF, wordA&0xFFFFFFFF)
	require.Equal(t, ps.VSets[1][a]&0xFFFFFFFF, (wordA>>32)&0xFFFFFFFF)
}
