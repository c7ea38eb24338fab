package decomp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlath-sfm/cellib"
	"github.com/katalvlaran/lvlath-sfm/cnf"
	"github.com/katalvlaran/lvlath-sfm/decomp"
	"github.com/katalvlaran/lvlath-sfm/network"
	"github.com/katalvlaran/lvlath-sfm/simulate"
	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/katalvlaran/lvlath-sfm/window"
)

func TestPrecheckConstantNoSignal(t *testing.T) {
	ps := simulate.NewPatternSet()
	isConst, _ := decomp.PrecheckConstant(ps)
	require.False(t, isConst)
}

func TestPrecheckConstantOnSetEmpty(t *testing.T) {
	ps := simulate.NewPatternSet()
	ps.NPats[1] = 0
	ps.NPats[0] = 3
	isConst, value := decomp.PrecheckConstant(ps)
	require.True(t, isConst)
	require.False(t, value)
}

func TestPrecheckConstantOffSetEmpty(t *testing.T) {
	ps := simulate.NewPatternSet()
	ps.NPats[0] = 0
	ps.NPats[1] = 5
	isConst, value := decomp.PrecheckConstant(ps)
	require.True(t, isConst)
	require.True(t, value)
}

func TestDefaultConfig(t *testing.T) {
	cfg := decomp.DefaultConfig()
	require.Equal(t, 6, cfg.NVarMax)
	require.Equal(t, 3, cfg.NMffcMax)
	require.True(t, cfg.UseAndOr)
	require.Equal(t, 2, cfg.NCoreMinTries)
}

// buildBufferPivot builds PI a,b; g1=BUF1(a) (pivot); g2=AND2(g1,b) PO.
// g1's function is exactly a, independent of b — a case both decomposition
// flavors can prove outright via the pivot-stuck SAT queries alone, with no
// dependence on solver search order (see the comment on
// TestRewriteOnlyFindsIdentityOnBuffer below).
func buildBufferPivot(t *testing.T) (*network.Net, *cellib.Library, network.GateID) {
	t.Helper()
	lib, err := cellib.DefaultLibrary()
	require.NoError(t, err)
	buf1, ok := lib.GateByName("BUF1")
	require.True(t, ok)
	and2, ok := lib.GateByName("AND2")
	require.True(t, ok)

	n := network.NewNet()
	a, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	b, err := n.CreateNode(cellib.InvalidHandle, nil, true)
	require.NoError(t, err)
	g1, err := n.CreateNode(buf1, []network.GateID{a}, false)
	require.NoError(t, err)
	g2, err := n.CreateNode(and2, []network.GateID{g1, b}, false)
	require.NoError(t, err)
	require.NoError(t, n.MarkPO(g2))

	return n, lib, g1
}

// Both RewriteOnly and Recursive must discover that the pivot equals
// divisor 0 ("a") exactly, not its complement and not divisor 1 ("b"): the
// window's single-root observability gadget forces b constant (=1) in
// every satisfying assignment regardless of pivot polarity, so only a ever
// yields a genuine implication, and the BUF1 template forces a == pivot
// unconditionally. Both facts hold independent of the solver's variable
// and branch ordering, so the composed result is deterministic.
func TestRewriteOnlyFindsIdentityOnBuffer(t *testing.T) {
	n, lib, g1 := buildBufferPivot(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	res, err := decomp.RewriteOnly(enc, ws, simulate.NewPatternSet(), decomp.DefaultConfig())
	require.NoError(t, err)
	require.False(t, res.IsConst)
	require.Equal(t, truth.Support{0}, res.Support)
	require.Equal(t, truth.Var(0), res.Table)
}

func TestRecursiveFindsIdentityOnBuffer(t *testing.T) {
	n, lib, g1 := buildBufferPivot(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	res, err := decomp.Recursive(enc, ws, simulate.NewPatternSet(), decomp.DefaultConfig(), -1, nil)
	require.NoError(t, err)
	require.False(t, res.IsConst)
	require.Equal(t, truth.Support{0}, res.Support)
	require.Equal(t, truth.Var(0), res.Table)
}

// buildTripleInputChain: PIs a,b,c; g1=AND2(a,b) pivot; g2=AND2(g1,c) PO —
// the same fixture cnf_test.go and window_test.go use, kept here so this
// package's tests do not depend on another package's unexported helpers.
func buildTripleInputChain(t *testing.T) (*network.Net, *cellib.Library, network.GateID) {
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

// Neither flavor is expected to produce a specific answer on the AND2
// chain (the outcome legitimately depends on DPLL branch order, which this
// package's tests must not assume) — but whatever they return must respect
// the structural contract: a constant result carries no support, and a
// functional result's support is a subset of the window's divisor indices
// bounded by NVarMax.
func TestRewriteOnlyResultIsStructurallyValid(t *testing.T) {
	n, lib, g1 := buildTripleInputChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	res, err := decomp.RewriteOnly(enc, ws, simulate.NewPatternSet(), decomp.DefaultConfig())
	if err != nil {
		require.ErrorIs(t, err, decomp.ErrNoDecomposition)

		return
	}
	requireValidResult(t, res, ws.NDivs, decomp.DefaultConfig().NVarMax)
}

func TestRecursiveResultIsStructurallyValid(t *testing.T) {
	n, lib, g1 := buildTripleInputChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	res, err := decomp.Recursive(enc, ws, simulate.NewPatternSet(), decomp.DefaultConfig(), -1, nil)
	if err != nil {
		require.ErrorIs(t, err, decomp.ErrNoDecomposition)

		return
	}
	requireValidResult(t, res, ws.NDivs, decomp.DefaultConfig().NVarMax)
}

// TestRecursiveForbiddenDivisorNeverAppears checks the one property that
// must hold regardless of solver internals: a divisor passed in
// `forbidden` never shows up in a non-constant result's support, since
// decCtx seeds ctx.used from it before any SAT query runs.
func TestRecursiveForbiddenDivisorNeverAppears(t *testing.T) {
	n, lib, g1 := buildTripleInputChain(t)
	ws, err := window.Extract(n, g1, window.DefaultParams())
	require.NoError(t, err)
	enc, err := cnf.Build(ws, lib)
	require.NoError(t, err)

	res, err := decomp.Recursive(enc, ws, simulate.NewPatternSet(), decomp.DefaultConfig(), -1, []int{0})
	if err != nil {
		require.ErrorIs(t, err, decomp.ErrNoDecomposition)

		return
	}
	if !res.IsConst {
		for _, d := range res.Support {
			require.NotEqual(t, 0, d)
		}
	}
}

func requireValidResult(t *testing.T, res decomp.Result, ndivs, nVarMax int) {
	t.Helper()
	if res.IsConst {
		require.Empty(t, res.Support)

		return
	}
	require.LessOrEqual(t, len(res.Support), nVarMax)
	for _, d := range res.Support {
		require.GreaterOrEqual(t, d, 0)
		require.Less(t, d, ndivs)
	}
}
