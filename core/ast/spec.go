package ast

import (
	"strings"

	"github.com/splicelang/splice/core/token"
)

// AliasItem binds one alias name to the result of an expression.
type AliasItem struct {
	Alias     string
	AliasSpan token.Span
	Value     Expr
}

func (i *AliasItem) String() string {
	return i.Alias + " = " + i.Value.String()
}

// Span covers the whole binding.
func (i *AliasItem) Span() token.Span {
	return i.AliasSpan.Union(i.Value.Span())
}

// AliasSpec is an ordered alias specification. Order is semantic:
// items resolve left to right and later items may reference earlier
// bindings.
type AliasSpec struct {
	Items []*AliasItem
}

func (s *AliasSpec) String() string {
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

// Span covers every item.
func (s *AliasSpec) Span() token.Span {
	var span token.Span
	for _, item := range s.Items {
		span = span.Union(item.Span())
	}
	return span
}

// Prepend returns a new spec with extra items in front of s's items.
// Loop expansion uses it to put per-combination bindings before the
// user's own, keeping them referencable from the start.
func (s *AliasSpec) Prepend(items []*AliasItem) *AliasSpec {
	merged := make([]*AliasItem, 0, len(items)+len(s.Items))
	merged = append(merged, items...)
	merged = append(merged, s.Items...)
	return &AliasSpec{Items: merged}
}
