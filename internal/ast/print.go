package ast

import (
	"fmt"
	"strings"
)

// Print renders n back to the surface syntax accepted by internal/parser.
// Every BinOp, Not, Ite, Quant, and Fix node is fully parenthesized rather
// than only where precedence strictly requires it: parseIte, parseQuant,
// and parseFixpoint all parse their operand(s) through the top-level
// parseIff, so those forms are "open-ended" and would silently reparse with
// a different tree shape if left bare inside an outer binary expression.
// One exception: a cardinality comparison of kind CmpNeq is printed with
// "!=", which the lexer does not accept.
func Print(n *Node) string {
	switch n.Kind {
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindVar:
		return n.Name
	case KindNot:
		return fmt.Sprintf("!(%s)", Print(n.Sub))
	case KindBinOp:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), binopSymbol(n.Op), Print(n.Right))
	case KindIte:
		return fmt.Sprintf("(if %s then %s else %s)", Print(n.Cond), Print(n.Then), Print(n.Else))
	case KindQuant:
		return fmt.Sprintf("(%s %s # %s)", n.Quant, strings.Join(n.Vars, ","), Print(n.Sub))
	case KindCard:
		return fmt.Sprintf("(%s %s %s)", printVector(n.Vector), n.Cmp, printCardRHS(n))
	case KindFix:
		return fmt.Sprintf("(%s %s # %s)", n.Fix, n.FixVar, Print(n.Sub))
	}
	return "?"
}

func printCardRHS(n *Node) string {
	if n.RHSIsVec {
		return printVector(n.RHSVector)
	}
	return fmt.Sprintf("%d", n.RHSConst)
}

func printVector(items []*Node) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Print(it)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func binopSymbol(op BinOp) string {
	switch op {
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpImplies:
		return "=>"
	case OpIff:
		return "<=>"
	case OpXor:
		return "^"
	case OpNor:
		return "nor"
	case OpNand:
		return "nand"
	}
	return op.String()
}

// Equal reports whether a and b are structurally identical, ignoring
// Position. It is the comparison round-trip tests use instead of reflect
// deep-equal, since Pos differs between a freshly parsed tree and one
// reparsed from Print's output.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindTrue, KindFalse:
		return true
	case KindVar:
		return a.Name == b.Name
	case KindNot:
		return Equal(a.Sub, b.Sub)
	case KindBinOp:
		return a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case KindIte:
		return Equal(a.Cond, b.Cond) && Equal(a.Then, b.Then) && Equal(a.Else, b.Else)
	case KindQuant:
		return a.Quant == b.Quant && equalNames(a.Vars, b.Vars) && Equal(a.Sub, b.Sub)
	case KindCard:
		if a.Cmp != b.Cmp || a.RHSIsVec != b.RHSIsVec || !equalNodes(a.Vector, b.Vector) {
			return false
		}
		if a.RHSIsVec {
			return equalNodes(a.RHSVector, b.RHSVector)
		}
		return a.RHSConst == b.RHSConst
	case KindFix:
		return a.Fix == b.Fix && a.FixVar == b.FixVar && Equal(a.Sub, b.Sub)
	}
	return false
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
