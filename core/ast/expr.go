package ast

import (
	"strings"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

// ValueExpr is a literal value in expression position.
type ValueExpr struct {
	Val types.Value

	id uint64
}

// NewValueExpr wraps a value as an expression node.
func NewValueExpr(val types.Value) *ValueExpr {
	return &ValueExpr{Val: val, id: NextID()}
}

func (v *ValueExpr) ID() uint64 { return v.id }

func (v *ValueExpr) Span() token.Span { return v.Val.Span() }

func (v *ValueExpr) String() string { return v.Val.Render() }

// Call is a function application. Args holds the comma-split argument
// expressions; Raw holds the verbatim tokens between the call's
// parentheses, commas included, for overloads that consume raw tokens.
// A nil Raw marks a call built without a source form.
type Call struct {
	Name string
	Args []Expr
	Raw  []token.Token

	id   uint64
	span token.Span
}

// NewCall builds a call node over both argument forms.
func NewCall(name string, args []Expr, raw []token.Token, span token.Span) *Call {
	return &Call{Name: name, Args: args, Raw: raw, id: NextID(), span: span}
}

func (c *Call) ID() uint64 { return c.id }

func (c *Call) Span() token.Span { return c.span }

// String renders the call the way the user wrote it, preferring the
// verbatim argument tokens when they were captured.
func (c *Call) String() string {
	if c.Raw != nil {
		return c.Name + "(" + token.Render(c.Raw) + ")"
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
