package count

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/ast"
)

func newSet(t *testing.T, n int) symlogic.Set {
	set, err := symlogic.New(n)
	assert.NoError(t, err)
	return set
}

func ithvars(set symlogic.Set, n int) []symlogic.Node {
	vars := make([]symlogic.Node, n)
	for i := 0; i < n; i++ {
		vars[i] = set.Ithvar(i)
	}
	return vars
}

func TestAtLeastZeroIsTrue(t *testing.T) {
	set := newSet(t, 3)
	assert.Equal(t, set.True(), AtLeast(set, ithvars(set, 3), 0))
}

func TestAtLeastMoreThanLenIsFalse(t *testing.T) {
	set := newSet(t, 3)
	assert.Equal(t, set.False(), AtLeast(set, ithvars(set, 3), 4))
}

func TestExactlyOneOfTwoSatcount(t *testing.T) {
	set := newSet(t, 2)
	vars := ithvars(set, 2)
	n := Exactly(set, vars, 1)
	assert.Equal(t, int64(2), set.Satcount(n).Int64())
}

func TestCompareEqConstant(t *testing.T) {
	set := newSet(t, 3)
	vars := ithvars(set, 3)
	n := Compare(set, vars, ast.CmpEq, 2)
	assert.Equal(t, int64(3), set.Satcount(n).Int64())
}

func TestCompareGeZeroIsTrue(t *testing.T) {
	set := newSet(t, 2)
	vars := ithvars(set, 2)
	assert.Equal(t, set.True(), Compare(set, vars, ast.CmpGe, 0))
}

func TestCompareVectorsEqualCardinalitySameVector(t *testing.T) {
	set := newSet(t, 3)
	vars := ithvars(set, 3)
	n := CompareVectors(set, vars, ast.CmpEq, vars)
	assert.Equal(t, set.True(), n)
}

func TestCompareVectorsGeDisjointVectors(t *testing.T) {
	set := newSet(t, 4)
	left := ithvars(set, 2)
	right := []symlogic.Node{set.Ithvar(2), set.Ithvar(3)}
	n := CompareVectors(set, left, ast.CmpGe, right)
	assert.NotEqual(t, set.False(), n)
}

func TestSatisfiesEveryComparator(t *testing.T) {
	assert.True(t, satisfies(ast.CmpEq, 2, 2))
	assert.False(t, satisfies(ast.CmpEq, 2, 3))
	assert.True(t, satisfies(ast.CmpNeq, 2, 3))
	assert.True(t, satisfies(ast.CmpLt, 1, 2))
	assert.True(t, satisfies(ast.CmpLe, 2, 2))
	assert.True(t, satisfies(ast.CmpGt, 3, 2))
	assert.True(t, satisfies(ast.CmpGe, 2, 2))
}
