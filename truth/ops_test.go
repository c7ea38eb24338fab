package truth_test

import (
	"testing"

	"github.com/katalvlaran/lvlath-sfm/truth"
	"github.com/stretchr/testify/require"
)

func TestVarAndConst(t *testing.T) {
	require.True(t, truth.IsConst0(truth.Const0))
	require.True(t, truth.IsConst1(truth.Const1))
	require.False(t, truth.IsConst0(truth.Var(0)))
	require.Equal(t, 32, truth.CountOnes(truth.Var(0)))
	require.Equal(t, 32, truth.CountOnes(truth.Var(5)))
}

func TestNotAndOrXor(t *testing.T) {
	a := truth.Var(0)
	b := truth.Var(1)

	require.Equal(t, truth.Const1, truth.Or(a, truth.Not(a)))
	require.Equal(t, truth.Const0, truth.And(a, truth.Not(a)))
	require.Equal(t, truth.Not(truth.Xor(a, b)), truth.Xor(truth.Not(a), b))
}

func TestCofactor(t *testing.T) {
	// f = a AND b (vars 0 and 1): cofactor on a=1 should equal b; on a=0, const0.
	f := truth.And(truth.Var(0), truth.Var(1))
	require.Equal(t, truth.Var(1), truth.Cofactor(f, 0, true))
	require.Equal(t, truth.Const0, truth.Cofactor(f, 0, false))
}

func TestIsConst(t *testing.T) {
	f := truth.Var(2)
	require.True(t, truth.IsConst(f, 2)) // doesn't depend on vars 0,1
	require.False(t, truth.IsConst(f, 3))
}

func TestMux(t *testing.T) {
	sel := truth.Var(0)
	t1 := truth.Var(1)
	t0 := truth.Var(2)
	res := truth.Mux(sel, t1, t0)

	require.Equal(t, t1, truth.Cofactor(res, 0, true))
	require.Equal(t, t0, truth.Cofactor(res, 0, false))
}

func TestStretchIdentityWhenSameSupport(t *testing.T) {
	f := truth.And(truth.Var(0), truth.Var(1))
	support := truth.Support{10, 11}
	got := truth.Stretch(f, support, support)
	require.Equal(t, f, got)
}

func TestStretchReordersVariables(t *testing.T) {
	// f depends only on old-local-var0 = divisor 5: f = Var(0).
	f := truth.Var(0)
	old := truth.Support{5}
	// In the new support, divisor 5 sits at canonical position 1 instead of 0.
	newS := truth.Support{7, 5}
	got := truth.Stretch(f, old, newS)

	require.Equal(t, truth.Var(1), got)
}

func TestStretchPanicsOnNonSubset(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	truth.Stretch(truth.Var(0), truth.Support{99}, truth.Support{1, 2})
}

func TestSortedUnion(t *testing.T) {
	got := truth.SortedUnion(truth.Support{3, 1}, truth.Support{2, 1}, 4)
	require.Equal(t, truth.Support{1, 2, 3, 4}, got)
}
