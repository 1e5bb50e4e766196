package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalzilio/symlogic/internal/parser"
)

func TestDeriveFreeVariableOrder(t *testing.T) {
	n, err := parser.Parse("c & a | b")
	assert.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, Derive(n, nil))
}

func TestDeriveDedupesRepeatedOccurrences(t *testing.T) {
	n, err := parser.Parse("a & b & a")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, Derive(n, nil))
}

func TestDeriveOverrideFrontLoads(t *testing.T) {
	n, err := parser.Parse("c & a | b")
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, Derive(n, []string{"b"}))
}

func TestDeriveQuantifierBinderRegisteredAtBinder(t *testing.T) {
	n, err := parser.Parse("a & (exists x,y # x & y)")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "x", "y"}, Derive(n, nil))
}

func TestDeriveFixpointBinderNotDeclared(t *testing.T) {
	n, err := parser.Parse("mu x # a | x")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, Derive(n, nil))
}

func TestValidateOverrideCatchesUnknownAndDuplicate(t *testing.T) {
	n, err := parser.Parse("a & b")
	assert.NoError(t, err)
	err = ValidateOverride(n, []string{"a", "a", "z"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
	assert.Contains(t, err.Error(), "does not occur")
}

func TestValidateOverrideAcceptsSubsetOfFreeVars(t *testing.T) {
	n, err := parser.Parse("a & b")
	assert.NoError(t, err)
	assert.NoError(t, ValidateOverride(n, []string{"b"}))
}
