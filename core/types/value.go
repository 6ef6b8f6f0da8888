package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splicelang/splice/core/token"
)

// Value is one immutable interpreter value: a kind, the token vector it
// renders into, and the span it came from. Cast never mutates; it
// returns a fresh Value or an error.
type Value struct {
	kind   Kind
	tokens []token.Token
	span   token.Span

	name    string // KindIdent: the identifier text
	content string // KindString: the unquoted content
	digits  string // KindInt: canonical base-10 digits
}

// NewIdent builds an identifier value, rejecting anything that is not a
// legal identifier.
func NewIdent(name string, span token.Span) (Value, error) {
	if !IsIdent(name) {
		return Value{}, &TypeError{
			Msg:  fmt.Sprintf("%q is not a legal identifier", name),
			Span: span,
		}
	}
	return Value{
		kind:   KindIdent,
		name:   name,
		tokens: []token.Token{token.NewIdent(name, span)},
		span:   span,
	}, nil
}

// NewString builds a string value from unquoted content.
func NewString(content string, span token.Span) Value {
	return Value{
		kind:    KindString,
		content: content,
		tokens:  []token.Token{token.NewLiteral(token.LitString, strconv.Quote(content), span)},
		span:    span,
	}
}

// NewInt builds an integer value from a literal in any Go base.
func NewInt(text string, span token.Span) (Value, error) {
	digits, err := ParseIntLit(text)
	if err != nil {
		return Value{}, &TypeError{
			Msg:  fmt.Sprintf("%q is not an integer literal", text),
			Span: span,
		}
	}
	return Value{
		kind:   KindInt,
		digits: digits,
		tokens: []token.Token{token.NewLiteral(token.LitInt, text, span)},
		span:   span,
	}, nil
}

// NewIntFromDigits builds an integer value from joined base-10 digits.
// Leading zeros are dropped so the token form stays a legal literal.
func NewIntFromDigits(digits string, span token.Span) (Value, error) {
	if digits == "" {
		return Value{}, &TypeError{Msg: "empty integer", Span: span}
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Value{}, &TypeError{
				Msg:  fmt.Sprintf("%q is not a run of base-10 digits", digits),
				Span: span,
			}
		}
	}
	canon := strings.TrimLeft(digits, "0")
	if canon == "" {
		canon = "0"
	}
	return Value{
		kind:   KindInt,
		digits: canon,
		tokens: []token.Token{token.NewLiteral(token.LitInt, canon, span)},
		span:   span,
	}, nil
}

// NewTokens wraps a token vector as a tokens value.
func NewTokens(tokens []token.Token, span token.Span) Value {
	return Value{kind: KindTokens, tokens: tokens, span: span}
}

// NewRaw wraps a token vector as a raw value.
func NewRaw(tokens []token.Token, span token.Span) Value {
	return Value{kind: KindRaw, tokens: tokens, span: span}
}

// FromTokens builds a value of the given kind from a lexed token run,
// validating the run against the kind's grammar. The parser uses it
// after Classify; casts use it when re-shaping renderings.
func FromTokens(kind Kind, tokens []token.Token, span token.Span) (Value, error) {
	switch kind {
	case KindIdent:
		if len(tokens) != 1 || tokens[0].Kind != token.Ident {
			return Value{}, &TypeError{Msg: "expected a single identifier", Span: span}
		}
		return NewIdent(tokens[0].Text, span)
	case KindString:
		if len(tokens) != 1 || tokens[0].Lit != token.LitString {
			return Value{}, &TypeError{Msg: "expected a string literal", Span: span}
		}
		content, err := ParseStringLit(tokens[0].Text)
		if err != nil {
			return Value{}, &TypeError{Msg: err.Error(), Span: span}
		}
		return Value{kind: KindString, content: content, tokens: tokens, span: span}, nil
	case KindInt:
		if len(tokens) != 1 || tokens[0].Lit != token.LitInt {
			return Value{}, &TypeError{Msg: "expected an integer literal", Span: span}
		}
		return NewInt(tokens[0].Text, span)
	case KindPath:
		if !IsPath(token.Render(tokens)) {
			return Value{}, &TypeError{Msg: fmt.Sprintf("%q is not a path", token.Render(tokens)), Span: span}
		}
		return Value{kind: KindPath, tokens: tokens, span: span}, nil
	case KindType:
		if err := CheckType(token.Render(tokens)); err != nil {
			return Value{}, &TypeError{Msg: err.Error(), Span: span}
		}
		return Value{kind: KindType, tokens: tokens, span: span}, nil
	case KindExpr:
		if err := CheckExpr(token.Render(tokens)); err != nil {
			return Value{}, &TypeError{Msg: err.Error(), Span: span}
		}
		return Value{kind: KindExpr, tokens: tokens, span: span}, nil
	case KindTokens:
		return NewTokens(tokens, span), nil
	case KindRaw:
		return NewRaw(tokens, span), nil
	default:
		return Value{}, Internalf("unknown value kind %d", kind)
	}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Span returns the source span the value came from.
func (v Value) Span() token.Span { return v.span }

// Tokens returns the value's token form. Callers must treat the slice
// as immutable.
func (v Value) Tokens() []token.Token { return v.tokens }

// Name returns the identifier text of a KindIdent value.
func (v Value) Name() string { return v.name }

// Content returns the unquoted content of a KindString value.
func (v Value) Content() string { return v.content }

// Digits returns the canonical base-10 digits of a KindInt value.
func (v Value) Digits() string { return v.digits }

// Render returns the value's display form: the bare name for
// identifiers, canonical digits for integers, the quoted form for
// strings, and the token rendering for everything else.
func (v Value) Render() string {
	switch v.kind {
	case KindIdent:
		return v.name
	case KindInt:
		return v.digits
	default:
		return token.Render(v.tokens)
	}
}

// String implements fmt.Stringer with the display form.
func (v Value) String() string { return v.Render() }

// Equal reports display-level equality; go-cmp picks it up.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.Render() == o.Render()
}

// Cast converts the value to another kind, re-checking the rendering
// against the target grammar where the conversion is content-dependent.
// The coercion lattice bounds what resolution will route here, but Cast
// itself accepts any pair whose contents line up, which is what the
// to_* casting functions rely on.
func (v Value) Cast(to Kind) (Value, error) {
	if to == v.kind {
		return v, nil
	}
	switch {
	case v.kind == KindIdent && to == KindPath:
		// an identifier is a one-segment path
		return Value{kind: KindPath, tokens: v.tokens, span: v.span}, nil
	case v.kind == KindIdent && to == KindType:
		// an identifier names a type
		return Value{kind: KindType, tokens: v.tokens, span: v.span}, nil
	case v.kind == KindIdent && to == KindExpr:
		return Value{kind: KindExpr, tokens: v.tokens, span: v.span}, nil
	case v.kind == KindIdent && to == KindString:
		return NewString(v.name, v.span), nil
	case v.kind == KindString && to == KindIdent:
		return NewIdent(v.content, v.span)
	case to == KindIdent:
		if content, ok := v.singleStringContent(); ok {
			return NewIdent(content, v.span)
		}
		return NewIdent(strings.TrimSpace(v.Render()), v.span)
	case to == KindPath:
		if !IsPath(v.Render()) {
			return Value{}, castError(v, to)
		}
		return Value{kind: KindPath, tokens: v.tokens, span: v.span}, nil
	case to == KindType:
		if err := CheckType(v.Render()); err != nil {
			return Value{}, castError(v, to)
		}
		return Value{kind: KindType, tokens: v.tokens, span: v.span}, nil
	case to == KindExpr:
		if err := CheckExpr(v.Render()); err != nil {
			return Value{}, castError(v, to)
		}
		return Value{kind: KindExpr, tokens: v.tokens, span: v.span}, nil
	case to == KindString:
		if text := strings.TrimSpace(v.Render()); IsIdent(text) {
			return NewString(text, v.span), nil
		}
		if content, ok := v.singleStringContent(); ok {
			return Value{kind: KindString, content: content, tokens: v.tokens, span: v.span}, nil
		}
		return Value{}, castError(v, to)
	case to == KindInt:
		digits, err := ParseIntLit(v.Render())
		if err != nil {
			return Value{}, castError(v, to)
		}
		return Value{
			kind:   KindInt,
			digits: digits,
			tokens: v.tokens,
			span:   v.span,
		}, nil
	case to == KindTokens:
		return Value{kind: KindTokens, tokens: v.tokens, span: v.span}, nil
	case to == KindRaw:
		return Value{kind: KindRaw, tokens: v.tokens, span: v.span}, nil
	}
	return Value{}, castError(v, to)
}

// singleStringContent reports whether the token form is exactly one
// string literal, and returns its content.
func (v Value) singleStringContent() (string, bool) {
	if len(v.tokens) != 1 || v.tokens[0].Lit != token.LitString {
		return "", false
	}
	content, err := ParseStringLit(v.tokens[0].Text)
	if err != nil {
		return "", false
	}
	return content, true
}

func castError(v Value, to Kind) error {
	return &TypeError{
		Msg:  fmt.Sprintf("cannot cast `%s` to %s", v.Render(), to),
		Span: v.span,
	}
}
