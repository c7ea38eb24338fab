package cnf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/cnf"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/satsolver"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// buildBufferChain: PIs a,b,c; g1=AND2(a,b) pivot; g2=AND2(g1,c) root/PO.
func buildBufferChain(t *testing.T) (*network.Net, *cellib.Library, network.GateID) {
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
	c, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	g1, err := n.CreateNode(and2, []network.GateID{a, b}, false)
	require.NoError(t, err)
	g2, err := n.CreateNode(and2, []network.GateID{g1, c}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(g2))

	return n, lib, g1
}

func TestBuildProducesSolvableEncoding(t *testing.T) {
	n, lib, g1 := buildBufferChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)
	require.NotNil(t, enc.Solver)

	// pivot=1 must be satisfiable: the AND2 pivot can be 1 (a=b=1) and some
	// divisor assignment exists where flipping it changes g2.
	res := enc.Solver.Solve(enc.PivotAssumptions(true), 0)
	require.Equal(t, satsolver.Sat, res)
}

func TestPivotAssumptionsOpposePolarity(t *testing.T) {
	n, lib, g1 := buildBufferChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	assumps := enc.PivotAssumptions(true)
	require.Len(t, assumps, 2)
	va := assumps[0].Var()
	vb := assumps[1].Var()
	require.Equal(t, enc.PivotVarA(), va)
	require.Equal(t, enc.PivotVarB(), vb)
	require.False(t, assumps[0].IsNeg())
	require.True(t, assumps[1].IsNeg())
}

func TestDivisorVarIsSharedAcrossCopies(t *testing.T) {
	n, lib, g1 := buildBufferChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	require.Less(t, int(enc.DivisorVar(0)), ws.NDivs+1)
}
