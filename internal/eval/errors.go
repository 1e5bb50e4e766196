package eval

import (
	"fmt"

	"github.com/dalzilio/symlogic/internal/ast"
)

// UnresolvedVarError reports a leaf variable reference that names neither a
// declared propositional variable nor an active fixed-point binding.
type UnresolvedVarError struct {
	Name string
	Pos  ast.Position
}

func (e *UnresolvedVarError) Error() string {
	return fmt.Sprintf("%s: unresolved variable %q", e.Pos, e.Name)
}

// UnresolvedFixpointVarError reports a name in a quantifier's binder list
// that is not a declared propositional variable. Quantifiers range over BDD
// variables, so every bound name must already have an index; this is
// distinct from UnresolvedVarError, which reports a leaf occurrence rather
// than a binder-list entry.
type UnresolvedFixpointVarError struct {
	Name string
	Pos  ast.Position
}

func (e *UnresolvedFixpointVarError) Error() string {
	return fmt.Sprintf("%s: unresolved quantifier variable %q", e.Pos, e.Name)
}

// TypeMismatchError reports a name used as both a declared propositional
// variable and a mu/nu fixed-point binder. The two namespaces are distinct:
// a propositional variable denotes a BDD input, a fixed-point binder
// denotes the current iterate, and a name cannot be both at once.
type TypeMismatchError struct {
	Name string
	Pos  ast.Position
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %q is both a declared variable and a fixed-point binder", e.Pos, e.Name)
}
