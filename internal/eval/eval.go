// Package eval lowers an internal/ast expression tree onto the root
// package's BDD operations. Dispatch is a type switch on ast.Kind, never
// dynamic method dispatch; cardinality constraints are delegated to
// internal/count and mu/nu fixed points to internal/fixpoint.
package eval

import (
	"fmt"

	"github.com/dalzilio/symlogic"
	"github.com/dalzilio/symlogic/internal/ast"
	"github.com/dalzilio/symlogic/internal/count"
	"github.com/dalzilio/symlogic/internal/fixpoint"
)

// Evaluator holds the BDD set a formula is compiled against and the mapping
// from declared variable names to BDD variable indices.
type Evaluator struct {
	set      symlogic.Set
	varIndex map[string]int
	env      map[string]symlogic.Node
}

// New returns an Evaluator over set, resolving variable references through
// varIndex.
func New(set symlogic.Set, varIndex map[string]int) *Evaluator {
	return &Evaluator{set: set, varIndex: varIndex, env: make(map[string]symlogic.Node)}
}

// Eval compiles n into a BDD node.
func (e *Evaluator) Eval(n *ast.Node) (symlogic.Node, error) {
	switch n.Kind {
	case ast.KindTrue:
		return e.set.True(), nil
	case ast.KindFalse:
		return e.set.False(), nil
	case ast.KindVar:
		return e.resolveVar(n)
	case ast.KindNot:
		sub, err := e.Eval(n.Sub)
		if err != nil {
			return nil, err
		}
		return e.set.Not(sub), nil
	case ast.KindBinOp:
		return e.evalBinOp(n)
	case ast.KindIte:
		return e.evalIte(n)
	case ast.KindQuant:
		return e.evalQuant(n)
	case ast.KindCard:
		return e.evalCard(n)
	case ast.KindFix:
		return e.evalFix(n)
	}
	return nil, fmt.Errorf("%s: unhandled node kind %s", n.Pos, n.Kind)
}

func (e *Evaluator) resolveVar(n *ast.Node) (symlogic.Node, error) {
	if v, ok := e.env[n.Name]; ok {
		return v, nil
	}
	idx, ok := e.varIndex[n.Name]
	if !ok {
		return nil, &UnresolvedVarError{Name: n.Name, Pos: n.Pos}
	}
	return e.set.Ithvar(idx), nil
}

func (e *Evaluator) evalBinOp(n *ast.Node) (symlogic.Node, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpAnd:
		return e.set.And(left, right), nil
	case ast.OpOr:
		return e.set.Or(left, right), nil
	case ast.OpImplies:
		return e.set.Imp(left, right), nil
	case ast.OpIff:
		return e.set.Equiv(left, right), nil
	case ast.OpXor:
		return e.set.Xor(left, right), nil
	case ast.OpNor:
		return e.set.Nor(left, right), nil
	case ast.OpNand:
		return e.set.Nand(left, right), nil
	}
	return nil, fmt.Errorf("%s: unhandled binary operator %s", n.Pos, n.Op)
}

func (e *Evaluator) evalIte(n *ast.Node) (symlogic.Node, error) {
	cond, err := e.Eval(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := e.Eval(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := e.Eval(n.Else)
	if err != nil {
		return nil, err
	}
	return e.set.Ite(cond, then, els), nil
}

func (e *Evaluator) evalQuant(n *ast.Node) (symlogic.Node, error) {
	idxs := make([]int, 0, len(n.Vars))
	for _, v := range n.Vars {
		idx, ok := e.varIndex[v]
		if !ok {
			return nil, &UnresolvedFixpointVarError{Name: v, Pos: n.Pos}
		}
		idxs = append(idxs, idx)
	}
	varset := e.set.Makeset(idxs)
	body, err := e.Eval(n.Sub)
	if err != nil {
		return nil, err
	}
	if n.Quant == ast.QuantForall {
		return e.set.Forall(body, varset), nil
	}
	return e.set.Exist(body, varset), nil
}

func (e *Evaluator) evalCard(n *ast.Node) (symlogic.Node, error) {
	left, err := e.evalVector(n.Vector)
	if err != nil {
		return nil, err
	}
	if n.RHSIsVec {
		right, err := e.evalVector(n.RHSVector)
		if err != nil {
			return nil, err
		}
		return count.CompareVectors(e.set, left, n.Cmp, right), nil
	}
	return count.Compare(e.set, left, n.Cmp, n.RHSConst), nil
}

func (e *Evaluator) evalVector(nodes []*ast.Node) ([]symlogic.Node, error) {
	out := make([]symlogic.Node, len(nodes))
	for i, sub := range nodes {
		v, err := e.Eval(sub)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalFix drives a mu/nu binder to its fixed point, rebinding FixVar in the
// evaluator's environment on every iteration so that occurrences of it in
// the body resolve to the current iterate rather than to a BDD variable.
func (e *Evaluator) evalFix(n *ast.Node) (symlogic.Node, error) {
	if _, ok := e.varIndex[n.FixVar]; ok {
		return nil, &TypeMismatchError{Name: n.FixVar, Pos: n.Pos}
	}

	prev, hadPrev := e.env[n.FixVar]
	init := e.set.False()
	if n.Fix == ast.FixNu {
		init = e.set.True()
	}

	var stepErr error
	result := fixpoint.Run(init, func(cur symlogic.Node) symlogic.Node {
		if stepErr != nil {
			return cur
		}
		e.env[n.FixVar] = cur
		next, err := e.Eval(n.Sub)
		if err != nil {
			stepErr = err
			return cur
		}
		return next
	}, e.set.Equal)

	if hadPrev {
		e.env[n.FixVar] = prev
	} else {
		delete(e.env, n.FixVar)
	}
	if stepErr != nil {
		return nil, stepErr
	}
	return result, nil
}
