package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/order"
	"github.com/dalzilio/symlogic/internal/parser"
)

func compile(t *testing.T, src string) (symlogic.Set, symlogic.Node, error) {
	tree, err := parser.Parse(src)
	assert.NoError(t, err)
	names := order.Derive(tree, nil)
	varIndex := make(map[string]int, len(names))
	for i, name := range names {
		varIndex[name] = i
	}
	set, err := symlogic.New(len(names))
	assert.NoError(t, err)
	n, err := New(set, varIndex).Eval(tree)
	return set, n, err
}

func TestEvalConjunctionIsSatisfiableOnlyWhenBothTrue(t *testing.T) {
	set, n, err := compile(t, "a & b")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), set.Satcount(n).Int64())
}

func TestEvalImplicationIsTautologyWhenVacuous(t *testing.T) {
	set, n, err := compile(t, "a => a | b")
	assert.NoError(t, err)
	assert.Equal(t, set.True(), n)
}

func TestEvalQuantifierExists(t *testing.T) {
	set, n, err := compile(t, "exists x # x & y")
	assert.NoError(t, err)
	assert.Equal(t, set.Ithvar(1), n)
}

func TestEvalQuantifierForall(t *testing.T) {
	set, n, err := compile(t, "forall x # x | y")
	assert.NoError(t, err)
	assert.Equal(t, set.Ithvar(1), n)
}

func TestEvalCardinalityAtLeast(t *testing.T) {
	set, n, err := compile(t, "[a,b,c] >= 2")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), set.Satcount(n).Int64())
}

func TestEvalLeastFixpointOverFiniteLattice(t *testing.T) {
	set, n, err := compile(t, "mu x # a | x")
	assert.NoError(t, err)
	assert.Equal(t, set.Ithvar(0), n)
}

func TestEvalGreatestFixpointOverFiniteLattice(t *testing.T) {
	set, n, err := compile(t, "nu x # a & x")
	assert.NoError(t, err)
	assert.Equal(t, set.Ithvar(0), n)
}

func TestEvalUnresolvedVariableError(t *testing.T) {
	set, err := symlogic.New(1)
	assert.NoError(t, err)
	tree, err := parser.Parse("z")
	assert.NoError(t, err)
	_, err = New(set, map[string]int{"a": 0}).Eval(tree)
	var target *UnresolvedVarError
	assert.ErrorAs(t, err, &target)
}

func TestEvalFixpointBinderReusedAsVariableIsTypeMismatch(t *testing.T) {
	tree, err := parser.Parse("mu a # a | b")
	assert.NoError(t, err)
	set, err := symlogic.New(2)
	assert.NoError(t, err)
	_, err = New(set, map[string]int{"a": 0, "b": 1}).Eval(tree)
	var target *TypeMismatchError
	assert.ErrorAs(t, err, &target)
}
