package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/rewrite"
	"github.com/katalvlaran/lvlath-sfm/timing"
	"github.com/katalvlaran/lvlath-sfm/truth"
)

// buildNandInvChain builds PI a,b; gnand=NAND2(a,b); pivot=INV1(gnand) PO
// realizing AND(a,b) through two gate levels. Its arrival (24+15=39 via
// pin0, or 25+15=40 via pin1, i.e. 40) is strictly slower than a direct
// single AND2 gate on (a,b) (max(32,33)=33), so DelayOptOne should find
// and commit that single-gate realization.
func buildNandInvChain(t *testing.T) (*network.Net, *cellib.Library, map[string]network.GateID) {
	t.Helper()
	lib := newLib(t)
	nand2, ok := lib.GateByName("NAND2")
	require.True(t, ok)
	inv, ok := lib.GateByName("INV1")
	require.True(t, ok)

	n := network.NewNet()
	a, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	b, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	gnand, err := n.CreateNode(nand2, []network.GateID{a, b}, false)
	require.NoError(t, err)
	pivot, err := n.CreateNode(inv, []network.GateID{gnand}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(pivot))

	return n, lib, map[string]network.GateID{"a": a, "b": b, "gnand": gnand, "pivot": pivot}
}

func TestDelayOptOneCommitsFasterSingleGateRealization(t *testing.T) {
	n, lib, ids := buildNandInvChain(t)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)

	eng := timing.NewEngine(n, lib)
	require.NoError(t, eng.Start())

	before, err := eng.ReadObjDelay(ids["pivot"])
	require.NoError(t, err)
	require.Equal(t, int64(40), before)

	divMap := []network.GateID{ids["a"], ids["b"]}
	tbl := truth.And(truth.Var(0), truth.Var(1))
	support := truth.Support{0, 1}

	newRoot, newIDs, err := rewrite.DelayOptOne(n, lib, eng, ids["pivot"], divMap, tbl, support, 0)
	require.NoError(t, err)
	require.NotEqual(t, ids["pivot"], newRoot)
	require.Len(t, newIDs, 1)

	h, err := n.Handle(newRoot)
	require.NoError(t, err)
	require.Equal(t, and2, h)
	fanins, err := n.Fanins(newRoot)
	require.NoError(t, err)
	require.Equal(t, []network.GateID{ids["a"], ids["b"]}, fanins)

	after, err := eng.ReadObjDelay(newRoot)
	require.NoError(t, err)
	require.Equal(t, int64(33), after)

	_, err = n.Handle(ids["pivot"])
	require.ErrorIs(t, err, network.ErrGateDestroyed)
}

func TestDelayOptOneRejectsTrivialSingleInputBuffer(t *testing.T) {
	lib := newLib(t)
	buf, ok := lib.GateByName("BUF1")
	require.True(t, ok)

	n := network.NewNet()
	x, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	pivot, err := n.CreateNode(buf, []network.GateID{x}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(pivot))

	eng := timing.NewEngine(n, lib)
	require.NoError(t, eng.Start())

	divMap := []network.GateID{x}
	newRoot, newIDs, err := rewrite.DelayOptOne(n, lib, eng, pivot, divMap, truth.Var(0), truth.Support{0}, 0)
	require.NoError(t, err)
	require.Equal(t, pivot, newRoot, "a single-input identity buffer must never be accepted as a delay improvement")
	require.Empty(t, newIDs)
}
