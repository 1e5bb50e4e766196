// Package count builds the BDDs for cardinality constraints over a vector
// of boolean terms: "at least/most/exactly k of these hold" and comparisons
// between two vectors. It is ordinary client code of the root package's
// public Set API; it never touches store internals.
package count

import (
	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/ast"
)

// AtLeast returns the BDD for "at least k of vars hold", built by the
// classic pairwise if-then-else recursion: fix the truth of the first
// variable and recurse on the rest, needing one fewer true term on the
// high branch.
func AtLeast(b symlogic.Set, vars []symlogic.Node, k int) symlogic.Node {
	if k <= 0 {
		return b.True()
	}
	if k > len(vars) {
		return b.False()
	}
	return b.Ite(vars[0], AtLeast(b, vars[1:], k-1), AtLeast(b, vars[1:], k))
}

// AtMost returns the BDD for "at most k of vars hold".
func AtMost(b symlogic.Set, vars []symlogic.Node, k int) symlogic.Node {
	if k < 0 {
		return b.False()
	}
	if k >= len(vars) {
		return b.True()
	}
	return b.Ite(vars[0], AtMost(b, vars[1:], k-1), AtMost(b, vars[1:], k))
}

// Exactly returns the BDD for "exactly k of vars hold".
func Exactly(b symlogic.Set, vars []symlogic.Node, k int) symlogic.Node {
	return b.And(AtLeast(b, vars, k), AtMost(b, vars, k))
}

// Compare returns the BDD for the cardinality of vars compared against the
// integer constant k under cmp.
func Compare(b symlogic.Set, vars []symlogic.Node, cmp ast.Comparator, k int) symlogic.Node {
	switch cmp {
	case ast.CmpEq:
		return Exactly(b, vars, k)
	case ast.CmpNeq:
		return b.Not(Exactly(b, vars, k))
	case ast.CmpLt:
		return AtMost(b, vars, k-1)
	case ast.CmpLe:
		return AtMost(b, vars, k)
	case ast.CmpGt:
		return AtLeast(b, vars, k+1)
	case ast.CmpGe:
		return AtLeast(b, vars, k)
	}
	return b.False()
}

// CompareVectors returns the BDD for comparing the cardinality of left
// against the cardinality of right under cmp. It enumerates every
// achievable (i, j) count pair satisfying cmp and disjoins the
// corresponding "exactly i of left and exactly j of right" terms: a
// symbolic sum rather than an arithmetic one, since neither cardinality is
// known until the BDD is evaluated against an assignment.
func CompareVectors(b symlogic.Set, left []symlogic.Node, cmp ast.Comparator, right []symlogic.Node) symlogic.Node {
	res := b.False()
	for i := 0; i <= len(left); i++ {
		li := Exactly(b, left, i)
		for j := 0; j <= len(right); j++ {
			if !satisfies(cmp, i, j) {
				continue
			}
			res = b.Or(res, b.And(li, Exactly(b, right, j)))
		}
	}
	return res
}

func satisfies(cmp ast.Comparator, i, j int) bool {
	switch cmp {
	case ast.CmpEq:
		return i == j
	case ast.CmpNeq:
		return i != j
	case ast.CmpLt:
		return i < j
	case ast.CmpLe:
		return i <= j
	case ast.CmpGt:
		return i > j
	case ast.CmpGe:
		return i >= j
	}
	return false
}
