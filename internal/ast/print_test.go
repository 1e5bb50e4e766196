package ast

import "testing"

func TestEqualIsReflexiveOnHandBuiltTrees(t *testing.T) {
	pos := Position{}
	cases := []*Node{
		Bin(pos, OpAnd, Var(pos, "a"), Not(pos, Var(pos, "b"))),
		Ite(pos, Var(pos, "a"), Bin(pos, OpOr, Var(pos, "b"), Var(pos, "c")), Bool(pos, false)),
		Quant(pos, QuantForall, []string{"x", "y"}, Bin(pos, OpImplies, Var(pos, "x"), Var(pos, "y"))),
		Fixpoint(pos, FixMu, "x", Bin(pos, OpOr, Var(pos, "a"), Var(pos, "x"))),
		CardConst(pos, []*Node{Var(pos, "a"), Var(pos, "b")}, CmpGe, 1),
		CardVector(pos, []*Node{Var(pos, "a")}, CmpEq, []*Node{Var(pos, "b")}),
	}
	for _, n := range cases {
		if !Equal(n, n) {
			t.Fatalf("Equal not reflexive for %s", Print(n))
		}
	}
}

func TestEqualRejectsDifferingSubtrees(t *testing.T) {
	pos := Position{}
	a := Bin(pos, OpAnd, Var(pos, "a"), Var(pos, "b"))
	b := Bin(pos, OpAnd, Var(pos, "a"), Var(pos, "c"))
	if Equal(a, b) {
		t.Fatalf("Equal(%s, %s) should be false", Print(a), Print(b))
	}
}

func TestPrintFullyParenthesizesNestedIte(t *testing.T) {
	pos := Position{}
	n := Bin(pos, OpAnd, Ite(pos, Var(pos, "a"), Var(pos, "b"), Var(pos, "c")), Var(pos, "d"))
	got := Print(n)
	want := "((if a then b else c) & d)"
	if got != want {
		t.Fatalf("Print() = %q, want %q", got, want)
	}
}
