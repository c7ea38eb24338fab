package resynth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/resynth"
)

func newLib(t *testing.T) *cellib.Library {
	t.Helper()
	lib, err := cellib.DefaultLibrary()
	require.NoError(t, err)

	return lib
}

func TestResynthesizeNilNetAndLibrary(t *testing.T) {
	lib := newLib(t)
	n := network.NewNet()

	_, err := resynth.Resynthesize(nil, lib)
	require.ErrorIs(t, err, resynth.ErrNilNet)

	_, err = resynth.Resynthesize(n, nil)
	require.ErrorIs(t, err, resynth.ErrNilLibrary)
}

func TestWithBTLimitPanicsOnNegative(t *testing.T) {
	require.Panics(t, func() { resynth.WithBTLimit(-1) })
}

func TestWithTimeWinPanicsOutOfRange(t *testing.T) {
	require.Panics(t, func() { resynth.WithTimeWin(0) })
	require.Panics(t, func() { resynth.WithTimeWin(101) })
}

func TestWithLoggerPanicsOnNil(t *testing.T) {
	require.Panics(t, func() { resynth.WithLogger(nil) })
}

// buildAbsorptionNet builds PI a,b,c; g1=AND2(a,b); g2=OR2(a,g1);
// g3=AND2(g2,c) PO. g2 computes a OR (a AND b), which by the absorption
// law is just a: decomp.Recursive's sameVariableBothSides short-circuit
// (the cheapest possible path, no SAT search past the implication scan)
// should find support {a}, table identity, letting area_opt_one rewire
// g2 directly to a and free both g1 and the original g2.
func buildAbsorptionNet(t *testing.T) (*network.Net, *cellib.Library, map[string]network.GateID) {
	t.Helper()
	lib := newLib(t)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)
	or2, ok := lib.GateByName("OR2")
	require.True(t, ok)

	n := network.NewNet()
	a, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	b, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	c, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	g1, err := n.CreateNode(and2, []network.GateID{a, b}, false)
	require.NoError(t, err)
	g2, err := n.CreateNode(or2, []network.GateID{a, g1}, false)
	require.NoError(t, err)
	g3, err := n.CreateNode(and2, []network.GateID{g2, c}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(g3))

	return n, lib, map[string]network.GateID{"a": a, "b": b, "c": c, "g1": g1, "g2": g2, "g3": g3}
}

func TestResynthesizeAreaForwardAbsorbsRedundantOr(t *testing.T) {
	n, lib, ids := buildAbsorptionNet(t)

	stats, err := resynth.Resynthesize(n, lib)
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.GreaterOrEqual(t, stats.NodesChanged, 1)
	require.Greater(t, stats.AreaBefore, stats.AreaAfter)

	g3Fanins, err := n.Fanins(ids["g3"])
	require.NoError(t, err)
	require.Contains(t, g3Fanins, ids["a"])
	require.NotContains(t, g3Fanins, ids["g2"])

	_, err = n.Handle(ids["g1"])
	require.ErrorIs(t, err, network.ErrGateDestroyed)
}

func TestResynthesizeAreaForwardIdempotentOnMinimalNet(t *testing.T) {
	lib := newLib(t)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)

	n := network.NewNet()
	a, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	b, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	g1, err := n.CreateNode(and2, []network.GateID{a, b}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(g1))

	stats, err := resynth.Resynthesize(n, lib)
	require.NoError(t, err)
	require.Equal(t, 0, stats.NodesChanged, "a single minimal AND2 driving the only PO has no cheaper realization")

	h, err := n.Handle(g1)
	require.NoError(t, err)
	require.Equal(t, and2, h)
}

func TestResynthesizeDelayModeRunsWithoutError(t *testing.T) {
	n, lib, _ := buildAbsorptionNet(t)

	stats, err := resynth.Resynthesize(n, lib, resynth.WithDelayMode(), resynth.WithTimeWin(100))
	require.NoError(t, err)
	require.NotNil(t, stats)
}

func TestResynthesizeAreaReverseRunsWithoutError(t *testing.T) {
	n, lib, _ := buildAbsorptionNet(t)

	stats, err := resynth.Resynthesize(n, lib, resynth.WithAreaReverseMode())
	require.NoError(t, err)
	require.NotNil(t, stats)
	require.GreaterOrEqual(t, stats.NodesChanged, 0)
}
