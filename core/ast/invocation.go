package ast

import (
	"strings"

	"github.com/splicelang/splice/core/token"
)

// Invocation is one template invocation: optional loop clauses, an
// alias specification, and the code block the bindings rewrite.
type Invocation struct {
	Loops []*Loop
	Spec  *AliasSpec
	Block []token.Token // the brace group's contents

	BlockSpan token.Span // the brace group itself
	span      token.Span // the whole invocation, marker included
}

// NewInvocation builds an invocation node.
func NewInvocation(loops []*Loop, spec *AliasSpec, block []token.Token, blockSpan, span token.Span) *Invocation {
	if spec == nil {
		spec = &AliasSpec{}
	}
	return &Invocation{
		Loops:     loops,
		Spec:      spec,
		Block:     block,
		BlockSpan: blockSpan,
		span:      span,
	}
}

// Span covers the whole invocation in the source.
func (inv *Invocation) Span() token.Span { return inv.span }

func (inv *Invocation) String() string {
	var parts []string
	for _, l := range inv.Loops {
		parts = append(parts, l.String())
	}
	if len(inv.Spec.Items) > 0 {
		parts = append(parts, inv.Spec.String())
	}
	parts = append(parts, "{ ... }")
	return "splice(" + strings.Join(parts, " ") + ")"
}
