package timing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/libmatch"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/timing"
)

// buildDiamond builds PI a,b,c; g1=AND2(a,b); g2=INV1(c); g3=AND2(g1,g2) PO.
// g1 sits on the critical path (arrival 33, slack 0) while g2 has 17 ps of
// slack, giving every test below a non-degenerate mix of critical and
// non-critical interior gates to check against hand-computed numbers.
func buildDiamond(t *testing.T) (*network.Net, *cellib.Library, map[string]network.GateID) {
	t.Helper()
	lib, err := cellib.DefaultLibrary()
	require.NoError(t, err)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)
	inv1, ok := lib.GateByName("INV1")
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
	g2, err := n.CreateNode(inv1, []network.GateID{c}, false)
	require.NoError(t, err)
	g3, err := n.CreateNode(and2, []network.GateID{g1, g2}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(g3))

	ids := map[string]network.GateID{"a": a, "b": b, "c": c, "g1": g1, "g2": g2, "g3": g3}

	return n, lib, ids
}

func TestQueriesBeforeStartReturnErrNotStarted(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)

	_, err := e.ReadNtkDelay()
	require.ErrorIs(t, err, timing.ErrNotStarted)
	_, err = e.ReadObjDelay(ids["g1"])
	require.ErrorIs(t, err, timing.ErrNotStarted)
	_, err = e.PriorityNodes(50)
	require.ErrorIs(t, err, timing.ErrNotStarted)
	_, err = e.SortByArrival([]network.GateID{ids["a"], ids["b"]}, ids["g1"])
	require.ErrorIs(t, err, timing.ErrNotStarted)
	_, err = e.NodeIsNonCritical(ids["g1"], ids["g2"])
	require.ErrorIs(t, err, timing.ErrNotStarted)
}

func TestStartComputesArrivalAndNtkDelay(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	arr := func(id network.GateID) int64 {
		a, err := e.ReadObjDelay(id)
		require.NoError(t, err)

		return a
	}
	require.Equal(t, int64(0), arr(ids["a"]))
	require.Equal(t, int64(0), arr(ids["b"]))
	require.Equal(t, int64(0), arr(ids["c"]))
	require.Equal(t, int64(33), arr(ids["g1"]))
	require.Equal(t, int64(15), arr(ids["g2"]))
	require.Equal(t, int64(65), arr(ids["g3"]))

	ntk, err := e.ReadNtkDelay()
	require.NoError(t, err)
	require.Equal(t, int64(65), ntk)
}

func TestStopClearsState(t *testing.T) {
	n, lib, _ := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())
	e.Stop()

	_, err := e.ReadNtkDelay()
	require.ErrorIs(t, err, timing.ErrNotStarted)
}

func TestNodeIsNonCritical(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	nonCrit, err := e.NodeIsNonCritical(ids["g1"], ids["g2"])
	require.NoError(t, err)
	require.True(t, nonCrit, "g2 arrives at 15, well inside g1's required 33")

	selfCrit, err := e.NodeIsNonCritical(ids["g1"], ids["g1"])
	require.NoError(t, err)
	require.False(t, selfCrit, "g1 has zero slack against itself")
}

func TestPriorityNodesOrdersByAscendingSlackThenID(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	top, err := e.PriorityNodes(34)
	require.NoError(t, err)
	require.Equal(t, []network.GateID{ids["g1"], ids["g3"]}, top)

	all, err := e.PriorityNodes(100)
	require.NoError(t, err)
	require.Equal(t, []network.GateID{ids["g1"], ids["g3"], ids["g2"]}, all)

	none, err := e.PriorityNodes(0)
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = e.PriorityNodes(101)
	require.ErrorIs(t, err, timing.ErrBadPercent)
}

func TestSortByArrivalAscending(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	out, err := e.SortByArrival([]network.GateID{ids["g1"], ids["g2"], ids["a"]}, ids["g3"])
	require.NoError(t, err)
	require.Equal(t, []network.GateID{ids["a"], ids["g2"], ids["g1"]}, out)
}

func TestUpdateTimingMatchesFullRestart(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	buf1, ok := lib.GateByName("BUF1")
	require.True(t, ok)
	g4, err := n.CreateNode(buf1, []network.GateID{ids["g2"]}, false)
	require.NoError(t, err)
	require.NoError(t, e.UpdateTiming([]network.GateID{g4}))

	fresh := timing.NewEngine(n, lib)
	require.NoError(t, fresh.Start())

	for _, id := range append([]network.GateID{g4}, allIDs(ids)...) {
		want, err := fresh.ReadObjDelay(id)
		require.NoError(t, err)
		got, err := e.ReadObjDelay(id)
		require.NoError(t, err)
		require.Equal(t, want, got, "gate %d arrival diverged after UpdateTiming", id)
	}
}

func allIDs(ids map[string]network.GateID) []network.GateID {
	out := make([]network.GateID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}

	return out
}

func TestEvalRemappingDirectRewire(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	plan := libmatch.Plan{Root: libmatch.PlanRef{FromDivisor: true, Index: 0}}
	arrival, err := e.EvalRemapping(plan, []network.GateID{ids["g2"]})
	require.NoError(t, err)
	require.Equal(t, int64(15), arrival)
}

func TestEvalRemappingSingleGate(t *testing.T) {
	n, lib, ids := buildDiamond(t)
	e := timing.NewEngine(n, lib)
	require.NoError(t, e.Start())

	inv1, ok := lib.GateByName("INV1")
	require.True(t, ok)
	plan := libmatch.Plan{
		Gates: []libmatch.PlanGate{{Handle: inv1, Fanins: []libmatch.PlanRef{{FromDivisor: true, Index: 0}}}},
		Root:  libmatch.PlanRef{Index: 0},
	}
	arrival, err := e.EvalRemapping(plan, []network.GateID{ids["g1"]})
	require.NoError(t, err)
	require.Equal(t, int64(33+15), arrival)
}
