package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

func TestIsIdent(t *testing.T) {
	assert.True(t, types.IsIdent("foo"))
	assert.True(t, types.IsIdent("_x1"))
	assert.True(t, types.IsIdent("üñïçøde"))
	assert.False(t, types.IsIdent(""))
	assert.False(t, types.IsIdent("1abc"))
	assert.False(t, types.IsIdent("a-b"))
	assert.False(t, types.IsIdent("func"), "keywords are not identifiers")
}

func TestIsPath(t *testing.T) {
	assert.True(t, types.IsPath("foo"))
	assert.True(t, types.IsPath("fmt.Println"))
	assert.True(t, types.IsPath("a.b.c"))
	assert.False(t, types.IsPath("a..b"))
	assert.False(t, types.IsPath(".a"))
	assert.False(t, types.IsPath("a.b("))
}

func TestCheckType(t *testing.T) {
	valid := []string{
		"int",
		"fmt.Stringer",
		"[]byte",
		"map[string]int",
		"func(int) string",
		"chan int",
		"*Config",
		"List[int]",
		"interface{ Close() error }",
		"struct{ X int }",
	}
	for _, s := range valid {
		assert.NoError(t, types.CheckType(s), "%q should be a type", s)
	}

	invalid := []string{
		"2 + 2",
		`"str"`,
		"f(x)",
		"[",
	}
	for _, s := range invalid {
		assert.Error(t, types.CheckType(s), "%q should not be a type", s)
	}
}

func TestCheckBlock(t *testing.T) {
	declarations := `
func Hello() string { return "hi" }
var x = 1
`
	require.NoError(t, types.CheckBlock(declarations))

	statements := `
x := compute()
if x > 0 {
	use(x)
}
`
	require.NoError(t, types.CheckBlock(statements))

	require.Error(t, types.CheckBlock("func 123 () {}"))
	require.Error(t, types.CheckBlock("x := := 1"))
}

func TestClassify(t *testing.T) {
	ident := func(s string) token.Token { return token.NewIdent(s, token.Span{}) }
	punct := func(s string) token.Token { return token.NewPunct(s, token.Span{}) }

	tests := []struct {
		name   string
		tokens []token.Token
		want   types.Kind
	}{
		{"single ident", []token.Token{ident("foo")}, types.KindIdent},
		{"int literal", []token.Token{token.NewLiteral(token.LitInt, "42", token.Span{})}, types.KindInt},
		{"string literal", []token.Token{token.NewLiteral(token.LitString, `"x"`, token.Span{})}, types.KindString},
		{"selector chain", []token.Token{ident("fmt"), punct("."), ident("Sprintf")}, types.KindPath},
		{"slice type", []token.Token{punct("["), punct("]"), ident("byte")}, types.KindType},
		{
			"map type",
			[]token.Token{ident("map"), token.NewGroup(token.Bracket, []token.Token{ident("string")}, token.Span{}), ident("int")},
			types.KindType,
		},
		{
			"arithmetic expr",
			[]token.Token{token.NewLiteral(token.LitInt, "2", token.Span{}), punct("+"), token.NewLiteral(token.LitInt, "2", token.Span{})},
			types.KindExpr,
		},
		{
			"call expr",
			[]token.Token{ident("f"), token.NewGroup(token.Paren, []token.Token{ident("x")}, token.Span{})},
			types.KindExpr,
		},
		{"keyword alone", []token.Token{ident("func")}, types.KindTokens},
		{"unparseable run", []token.Token{punct("=>"), ident("x")}, types.KindTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, types.Classify(tt.tokens))
		})
	}
}

func TestParseIntLit(t *testing.T) {
	digits, err := types.ParseIntLit("0xff")
	require.NoError(t, err)
	assert.Equal(t, "255", digits)

	_, err = types.ParseIntLit("-1")
	require.Error(t, err)
}
