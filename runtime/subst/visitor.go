package subst

import (
	"strconv"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

// aliasVisitor substitutes bound identifiers and formats placeholders
// in string literals and comments. After every splice it re-parses the
// whole reconstructed block, so a replacement that breaks the
// surrounding code fails at the exact token that broke it.
type aliasVisitor struct {
	NopVisitor
	bindings Bindings

	// the replacement under validation, for SubstitutionError
	original    string
	replacement string
	span        token.Span
}

func (v *aliasVisitor) VisitToken(w *Walker, tok token.Token) (Action, error) {
	switch tok.Kind {
	case token.Ident:
		value, ok := v.bindings.Lookup(tok.Text)
		if !ok {
			return Continue(), nil
		}
		v.note(tok.Text, value.Render(), tok.Span)
		return Replace(value.Tokens()), nil

	case token.Literal:
		if tok.Lit != token.LitString {
			return Continue(), nil
		}
		content, err := types.ParseStringLit(tok.Text)
		if err != nil {
			return Continue(), nil
		}
		formatted := FormatPlaceholders(content, v.bindings)
		if formatted == content {
			return Continue(), nil
		}
		out := tok
		out.Text = strconv.Quote(formatted)
		v.note(tok.Text, out.Text, tok.Span)
		return Replace([]token.Token{out}), nil

	case token.Comment:
		formatted := FormatPlaceholders(tok.Text, v.bindings)
		if formatted == tok.Text {
			return Continue(), nil
		}
		out := tok
		out.Text = formatted
		v.note(tok.Text, out.Text, tok.Span)
		return Replace([]token.Token{out}), nil
	}
	return Continue(), nil
}

func (v *aliasVisitor) AfterReplace(w *Walker) error {
	if err := types.CheckBlock(token.Render(w.Reconstruct())); err != nil {
		return &types.SubstitutionError{
			Original:    v.original,
			Replacement: v.replacement,
			Err:         err,
			Span:        v.span,
		}
	}
	return nil
}

func (v *aliasVisitor) note(original, replacement string, span token.Span) {
	v.original = original
	v.replacement = replacement
	v.span = span
}

// Substitute rewrites one combination of a code block: every bound
// identifier becomes its value's token form, placeholders in string
// literals and comments are formatted. Splices mutate the input;
// callers reusing the block across combinations clone it first.
func Substitute(block []token.Token, bindings Bindings) ([]token.Token, error) {
	return NewWalker(&aliasVisitor{bindings: bindings}).Walk(block)
}
