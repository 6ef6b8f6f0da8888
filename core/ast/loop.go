package ast

import (
	"strings"

	"github.com/splicelang/splice/core/token"
)

// Pattern is the alias side of a loop clause: a single name or a
// parenthesized tuple of nested patterns.
type Pattern struct {
	Name  string     // leaf: the alias name
	Elems []*Pattern // tuple: nested patterns, nil for a leaf
	span  token.Span
}

// NewNamePattern builds a leaf pattern.
func NewNamePattern(name string, span token.Span) *Pattern {
	return &Pattern{Name: name, span: span}
}

// NewTuplePattern builds a tuple pattern.
func NewTuplePattern(elems []*Pattern, span token.Span) *Pattern {
	return &Pattern{Elems: elems, span: span}
}

// IsTuple reports whether the pattern destructures a tuple.
func (p *Pattern) IsTuple() bool { return p.Elems != nil }

func (p *Pattern) Span() token.Span { return p.span }

func (p *Pattern) String() string {
	if !p.IsTuple() {
		return p.Name
	}
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// LoopValue is one entry of a loop's source list: a leaf expression or
// a parenthesized tuple of nested entries.
type LoopValue struct {
	Leaf  Expr         // leaf entry, nil for a tuple
	Elems []*LoopValue // tuple entries, nil for a leaf
	span  token.Span
}

// NewLeafValue builds a leaf entry.
func NewLeafValue(leaf Expr, span token.Span) *LoopValue {
	return &LoopValue{Leaf: leaf, span: span}
}

// NewTupleValue builds a tuple entry.
func NewTupleValue(elems []*LoopValue, span token.Span) *LoopValue {
	return &LoopValue{Elems: elems, span: span}
}

// IsTuple reports whether the entry is a tuple.
func (v *LoopValue) IsTuple() bool { return v.Elems != nil }

func (v *LoopValue) Span() token.Span { return v.span }

func (v *LoopValue) String() string {
	if !v.IsTuple() {
		return v.Leaf.String()
	}
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Loop is one loop clause: a pattern bound to each entry of an ordered
// source list. Clause order across a spec is semantic; the last clause
// varies fastest during expansion.
type Loop struct {
	Pattern *Pattern
	Values  []*LoopValue
	span    token.Span
}

// NewLoop builds a loop clause.
func NewLoop(pattern *Pattern, values []*LoopValue, span token.Span) *Loop {
	return &Loop{Pattern: pattern, Values: values, span: span}
}

func (l *Loop) Span() token.Span { return l.span }

func (l *Loop) String() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = v.String()
	}
	return "for " + l.Pattern.String() + " in [" + strings.Join(parts, ", ") + "]"
}
