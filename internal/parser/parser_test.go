package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalzilio/symlogic/internal/ast"
)

func TestParsePrecedence(t *testing.T) {
	n, err := Parse("a | b & c")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindBinOp, n.Kind)
	assert.Equal(t, ast.OpOr, n.Op)
	assert.Equal(t, ast.KindBinOp, n.Right.Kind)
	assert.Equal(t, ast.OpAnd, n.Right.Op)
}

func TestParseRightAssocImplication(t *testing.T) {
	n, err := Parse("a => b => c")
	assert.NoError(t, err)
	assert.Equal(t, ast.OpImplies, n.Op)
	assert.Equal(t, ast.KindVar, n.Left.Kind)
	assert.Equal(t, ast.OpImplies, n.Right.Op)
}

func TestParseInAsImplies(t *testing.T) {
	n, err := Parse("a in b")
	assert.NoError(t, err)
	assert.Equal(t, ast.OpImplies, n.Op)
}

func TestParseIte(t *testing.T) {
	n, err := Parse("if a then b else c")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindIte, n.Kind)
}

func TestParseQuantifier(t *testing.T) {
	n, err := Parse("exists x,y # x & y")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindQuant, n.Kind)
	assert.Equal(t, ast.QuantExists, n.Quant)
	assert.Equal(t, []string{"x", "y"}, n.Vars)
}

func TestParseFixpoint(t *testing.T) {
	n, err := Parse("mu x # a | x")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindFix, n.Kind)
	assert.Equal(t, ast.FixMu, n.Fix)
	assert.Equal(t, "x", n.FixVar)
}

func TestParseCardinalityVectorVsConst(t *testing.T) {
	n, err := Parse("[a,b,c] >= 2")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindCard, n.Kind)
	assert.Equal(t, ast.CmpGe, n.Cmp)
	assert.False(t, n.RHSIsVec)
	assert.Equal(t, 2, n.RHSConst)
	assert.Len(t, n.Vector, 3)
}

func TestParseCardinalityVectorVsVector(t *testing.T) {
	n, err := Parse("[a,b] = [c,d]")
	assert.NoError(t, err)
	assert.True(t, n.RHSIsVec)
	assert.Len(t, n.RHSVector, 2)
}

func TestParseRejectsIntLiteralLeftOfComparator(t *testing.T) {
	_, err := Parse("2 >= [a,b]")
	assert.Error(t, err)
	var perr *Error
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, "cardinality vector '[...]'", perr.Expected)
}

func TestParseTrailingGarbage(t *testing.T) {
	_, err := Parse("a & b )")
	assert.Error(t, err)
}

func TestParseUnexpectedEOF(t *testing.T) {
	_, err := Parse("a &")
	assert.Error(t, err)
}
