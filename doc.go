// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package symlogic implements the ROBDD (Reduced Ordered Binary Decision
Diagram) engine underlying a decision procedure for quantified
propositional logic extended with cardinality constraints and
least/greatest fixed points.

This package only knows about dense integer variable indices ("levels")
and opaque node handles; it has no notion of variable names, surface
syntax, or formula shape. The packages under internal/ build on top of
it: internal/ast, internal/lexer and internal/parser turn source text
into an expression tree, internal/order derives a variable index for
every name in that tree, internal/eval walks the tree and calls into
this package to build the resulting BDD, and internal/count and
internal/fixpoint compile cardinality comparisons and fixed points down
to the same Apply/Ite primitives.

Basics

Each store has a fixed number of variables, Varnum, declared when it is
created with New. Each variable is represented by an integer index in
the interval [0, Varnum), called its level. Most operations return a
Node: a pointer to a vertex in the BDD, carrying (indirectly, through
the store) a variable level and a low/high branch. By convention 0 is
the address of the constant False and 1 is the address of the constant
True.

The store is a single hash-consed array-backed node table addressed by
dense integer indices, with apply/ite/quant results memoized in
dedicated caches keyed by operation and operand handles. Restrict
(cofactor) and Forall are built on the same recursion shape as Exist and
Apply.

Automatic memory management

External references to Node values made by client code are tracked with
runtime.SetFinalizer, so the store can reclaim a node once every live
handle referencing it has itself been collected. Internal bookkeeping
(apply/ite/quant recursions in progress) is protected through an
explicit reference stack instead.
*/
package symlogic
