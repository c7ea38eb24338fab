package window_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/window"
)

// buildChain builds: PIs a,b,c -> g1=AND2(a,b) -> g2=AND2(g1,c) -> PO g2.
// g1 is the pivot; its MFFC is just itself (g2 has fanout count 1 via g1
// but g2 depends on g1 not the reverse, so MFFC growth stops at g1 alone
// since g1's only fanin chain upward doesn't apply — MFFC walks fanins of
// the pivot, and g1's fanins a,b are PIs, excluded from MFFC by the isPI
// guard).
func buildChain(t *testing.T) (*network.Net, *cellib.Library, network.GateID, network.GateID, network.GateID) {
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

	return n, lib, g1, g2, c
}

func TestExtractBasicChainHasPivotAndRoot(t *testing.T) {
	n, _, g1, g2, _ := buildChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	require.Equal(t, g1, ws.W[ws.ITarget].ID)
	require.True(t, len(ws.Roots) >= 1)

	rootFound := false
	for _, ri := range ws.Roots {
		if ws.W[ri].ID == g2 {
			rootFound = true
		}
	}
	require.True(t, rootFound)
}

func TestExtractDivisorsExcludeMFFC(t *testing.T) {
	n, _, g1, _, _ := buildChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	for i := 0; i < ws.NDivs; i++ {
		require.NotEqual(t, g1, ws.W[i].ID)
		require.True(t, ws.W[i].Sentinel)
	}
}

func TestExtractPivotInMFFC(t *testing.T) {
	n, _, g1, _, _ := buildChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	found := false
	for _, idx := range ws.MFFC {
		if idx == ws.ITarget {
			found = true
		}
	}
	require.True(t, found)
}

func TestExtractNoTFORootsWhenPivotIsPO(t *testing.T) {
	n, _, _, g2, _ := buildChain(t)
	_, err := window.Extract(n, g2, window.DefaultParams())
	require.ErrorIs(t, err, window.ErrNoTFORoots)
}

func TestExtractIndexOfResolvesEveryWEntry(t *testing.T) {
	n, _, g1, _, _ := buildChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	for _, entry := range ws.W {
		idx, ok := ws.IndexOf(entry.ID)
		require.True(t, ok)
		require.Equal(t, entry.ID, ws.W[idx].ID)
	}
}

func TestExtractFaninsAreBackReferences(t *testing.T) {
	n, _, g1, _, _ := buildChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)

	pivotEntry := ws.W[ws.ITarget]
	require.False(t, pivotEntry.Sentinel)
	for _, fi := range pivotEntry.Fanins {
		require.Less(t, fi, ws.ITarget)
	}
}

func TestExtractMffcMinSkip(t *testing.T) {
	n, _, g1, _, _ := buildChain(t)
	params := window.DefaultParams()
	params.NMffcMin = 5
	_, err := window.Extract(n, g1, params)
	require.ErrorIs(t, err, window.ErrMFFCTooSmall)
}
