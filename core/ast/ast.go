// Package ast defines the nodes the parser produces and the pipeline
// resolves: expressions, alias specifications, loop clauses and whole
// invocations.
//
// Nodes are immutable after parsing. Resolution and evaluation never
// annotate them; stage results live in metadata side-tables keyed by
// node identity instead, so speculative resolution can fork cheaply.
package ast

import (
	"sync/atomic"

	"github.com/splicelang/splice/core/invariant"
	"github.com/splicelang/splice/core/token"
)

var nodeIDs atomic.Uint64

// NextID mints a process-wide unique node identity. IDs key the
// metadata side-tables; zero is never issued so it can mean "absent".
func NextID() uint64 {
	id := nodeIDs.Add(1)
	invariant.Positive(int(id), "node id")
	return id
}

// Expr is an expression in alias position: a literal value or a call.
type Expr interface {
	ID() uint64
	Span() token.Span
	String() string
}
