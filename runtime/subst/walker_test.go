package subst_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/runtime/lexer"
	"github.com/splicelang/splice/runtime/subst"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, _, err := lexer.New("subst_test", []byte(src)).Lex()
	require.NoError(t, err)
	return toks
}

// logVisitor records walk events and delegates decisions to optional
// callbacks. It keeps the walker of the current hook so callbacks can
// reach it.
type logVisitor struct {
	subst.NopVisitor
	events []string
	walker *subst.Walker

	onToken func(tok token.Token) (subst.Action, error)
	onGroup func(tok token.Token) (subst.Action, error)
	onExit  func(tokens []token.Token) (subst.Action, error)
}

func (v *logVisitor) VisitToken(w *subst.Walker, tok token.Token) (subst.Action, error) {
	v.walker = w
	v.events = append(v.events, fmt.Sprintf("token(%s)", tok.Text))
	if v.onToken != nil {
		return v.onToken(tok)
	}
	return subst.Continue(), nil
}

func (v *logVisitor) VisitGroup(w *subst.Walker, tok token.Token) (subst.Action, error) {
	v.events = append(v.events, fmt.Sprintf("group(%s)", tok.Delim))
	if v.onGroup != nil {
		return v.onGroup(tok)
	}
	return subst.Continue(), nil
}

func (v *logVisitor) ExitGroup(w *subst.Walker, tokens []token.Token) (subst.Action, error) {
	v.events = append(v.events, "exit")
	if v.onExit != nil {
		return v.onExit(tokens)
	}
	return subst.Continue(), nil
}

func (v *logVisitor) AfterReplace(w *subst.Walker) error {
	v.events = append(v.events, "after")
	return nil
}

func (v *logVisitor) afterCount() int {
	n := 0
	for _, e := range v.events {
		if e == "after" {
			n++
		}
	}
	return n
}

func TestWalkVisitOrder(t *testing.T) {
	v := &logVisitor{}
	out, err := subst.NewWalker(v).Walk(lex(t, "(a)"))
	require.NoError(t, err)

	assert.Equal(t, "(a)", token.Render(out))
	assert.Equal(t, []string{"group(())", "token(a)", "exit", "exit"}, v.events)
}

func TestWalkReplaceToken(t *testing.T) {
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("a") {
				return subst.Replace(lex(t, "x y")), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "a"))
	require.NoError(t, err)

	assert.Equal(t, "x y", token.Render(out))
	assert.Equal(t, 1, v.afterCount())
}

func TestWalkReplaceTokenWithNothing(t *testing.T) {
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("a") {
				return subst.Replace(nil), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "a"))
	require.NoError(t, err)

	assert.Empty(t, token.Render(out))
	assert.Equal(t, 1, v.afterCount())
}

func TestWalkSkipToken(t *testing.T) {
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("a") {
				return subst.Skip(), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "a b"))
	require.NoError(t, err)
	assert.Equal(t, "b", token.Render(out))
}

func TestWalkReplacementIsNotRevisited(t *testing.T) {
	visits := 0
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("a") {
				visits++
				return subst.Replace(lex(t, "a a")), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "a b"))
	require.NoError(t, err)

	assert.Equal(t, "a a b", token.Render(out))
	assert.Equal(t, 1, visits)
}

func TestWalkReplaceGroupOnVisit(t *testing.T) {
	v := &logVisitor{
		onGroup: func(tok token.Token) (subst.Action, error) {
			if tok.IsGroup(token.Paren) {
				return subst.Replace(lex(t, "x + y")), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "(a)"))
	require.NoError(t, err)

	assert.Equal(t, "x+y", token.Render(out))
	assert.Equal(t, 1, v.afterCount())

	// The group was never descended into.
	assert.NotContains(t, v.events, "token(a)")
}

func TestWalkSkipGroupOnExit(t *testing.T) {
	v := &logVisitor{
		onExit: func(tokens []token.Token) (subst.Action, error) {
			if token.Render(tokens) == "a" {
				return subst.Skip(), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "(a) c"))
	require.NoError(t, err)
	assert.Equal(t, "c", token.Render(out))
}

func TestWalkReplaceGroupContentsOnExit(t *testing.T) {
	v := &logVisitor{
		onExit: func(tokens []token.Token) (subst.Action, error) {
			if token.Render(tokens) == "a" {
				return subst.Replace(lex(t, "x")), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "(a) c"))
	require.NoError(t, err)
	assert.Equal(t, "(x)c", token.Render(out))
}

func TestWalkErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("boom") {
				return subst.Action{}, boom
			}
			return subst.Continue(), nil
		},
	}
	_, err := subst.NewWalker(v).Walk(lex(t, "boom"))
	assert.ErrorIs(t, err, boom)
}

func TestWalkSpliceInheritsNewline(t *testing.T) {
	v := &logVisitor{
		onToken: func(tok token.Token) (subst.Action, error) {
			if tok.IsIdent("y") {
				return subst.Replace(lex(t, "z")), nil
			}
			return subst.Continue(), nil
		},
	}
	out, err := subst.NewWalker(v).Walk(lex(t, "x\ny"))
	require.NoError(t, err)
	assert.Equal(t, "x\nz", token.Render(out))
}

func TestWalkReconstructMidWalk(t *testing.T) {
	var seen string
	v := &logVisitor{}
	v.onToken = func(tok token.Token) (subst.Action, error) {
		if tok.IsIdent("a") {
			seen = token.Render(v.walker.Reconstruct())
		}
		return subst.Continue(), nil
	}

	_, err := subst.NewWalker(v).Walk(lex(t, "f((a))"))
	require.NoError(t, err)
	assert.Equal(t, "f((a))", seen)
}
