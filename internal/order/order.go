// Package order derives a stable variable ordering from a parsed formula: a
// depth-first, left-to-right walk collecting variable occurrences in
// first-use order. A quantifier's bound names are ordinary declared
// variables and are registered at the binder itself, since that is their
// first use; a fixed point's bound name is not a declared variable at all
// and is skipped everywhere inside its own scope, re-entering the ordering
// only if it is later used free, outside that scope. An explicit override
// list may front-load a prefix of the ordering.
package order

import (
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/multierr"

	"github.com/dalzilio/symlogic/internal/ast"
)

// Derive returns the variable ordering for tree. Names in override come
// first, in the order given; every other variable follows in default
// depth-first occurrence order. Names bound by a quantifier are included;
// names bound by a fixed point are included only where they also occur
// outside that fixed point.
func Derive(tree *ast.Node, override []string) []string {
	d := &deriver{
		nameID:   make(map[string]int),
		assigned: bitset.New(64),
	}
	var order []string
	for _, v := range override {
		if d.markAssigned(v) {
			order = append(order, v)
		}
	}
	d.walk(tree, make(map[string]int), &order)
	return order
}

// FreeVars returns the variables of tree as Derive orders them, ignoring any
// override: free variables and quantifier-bound names in first-use
// depth-first order, without fixed-point binders.
func FreeVars(tree *ast.Node) []string {
	return Derive(tree, nil)
}

// ValidateOverride checks an explicit ordering override against the
// variables FreeVars reports for tree, collecting every problem (a duplicate name, or a name
// absent from tree) into a single error rather than stopping at the first
// one.
func ValidateOverride(tree *ast.Node, override []string) error {
	free := make(map[string]bool)
	for _, v := range FreeVars(tree) {
		free[v] = true
	}
	seen := make(map[string]bool)
	var err error
	for _, v := range override {
		if seen[v] {
			err = multierr.Append(err, &DuplicateError{Name: v})
			continue
		}
		seen[v] = true
		if !free[v] {
			err = multierr.Append(err, &UnknownVarError{Name: v})
		}
	}
	return err
}

// DuplicateError reports a name listed more than once in an override.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return "variable '" + e.Name + "' listed more than once in ordering override"
}

// UnknownVarError reports an override name that is not a free variable of
// the formula being ordered.
type UnknownVarError struct {
	Name string
}

func (e *UnknownVarError) Error() string {
	return "variable '" + e.Name + "' in ordering override does not occur in the formula"
}

type deriver struct {
	nameID   map[string]int
	nextID   uint
	assigned *bitset.BitSet
}

// markAssigned assigns v a dense id on first sight and marks it as already
// placed in the ordering. It returns true the first time v is marked.
func (d *deriver) markAssigned(v string) bool {
	id, ok := d.nameID[v]
	if !ok {
		id = int(d.nextID)
		d.nameID[v] = id
		d.nextID++
	}
	if d.assigned.Test(uint(id)) {
		return false
	}
	d.assigned.Set(uint(id))
	return true
}

func (d *deriver) walk(n *ast.Node, bound map[string]int, order *[]string) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindVar:
		if bound[n.Name] == 0 && d.markAssigned(n.Name) {
			*order = append(*order, n.Name)
		}
		return
	case ast.KindQuant:
		// Quantifier binders range over ordinary declared (BDD) variables,
		// unlike a fixed-point binder, so their names are registered here
		// rather than shadowed: the binder header is their first use.
		for _, v := range n.Vars {
			if d.markAssigned(v) {
				*order = append(*order, v)
			}
		}
		d.walk(n.Sub, bound, order)
		return
	case ast.KindFix:
		bound[n.FixVar]++
		d.walk(n.Sub, bound, order)
		bound[n.FixVar]--
		return
	}
	for _, c := range n.Children() {
		d.walk(c, bound, order)
	}
}
