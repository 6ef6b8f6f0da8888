package token_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/token"
)

func ident(text string) token.Token { return token.NewIdent(text, token.Span{}) }
func punct(text string) token.Token { return token.NewPunct(text, token.Span{}) }

func TestRenderSpacing(t *testing.T) {
	tests := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{
			name:   "adjacent idents separated",
			tokens: []token.Token{ident("func"), ident("main")},
			want:   "func main",
		},
		{
			name:   "ident and literal separated",
			tokens: []token.Token{ident("return"), token.NewLiteral(token.LitInt, "5", token.Span{})},
			want:   "return 5",
		},
		{
			name:   "punct pair kept apart",
			tokens: []token.Token{punct("<"), punct("-")},
			want:   "< -",
		},
		{
			name:   "selector stays tight",
			tokens: []token.Token{ident("fmt"), punct("."), ident("Println")},
			want:   "fmt.Println",
		},
		{
			name: "int before dot does not form a float",
			tokens: []token.Token{
				token.NewLiteral(token.LitInt, "1", token.Span{}),
				punct("."),
				ident("String"),
			},
			want: "1 .String",
		},
		{
			name: "call group",
			tokens: []token.Token{
				ident("f"),
				token.NewGroup(token.Paren, []token.Token{ident("x"), punct(","), ident("y")}, token.Span{}),
			},
			want: "f(x, y)",
		},
		{
			name: "line comment terminates its line",
			tokens: []token.Token{
				token.Token{Kind: token.Comment, Text: "// note"},
				ident("x"),
			},
			want: "// note\nx",
		},
		{
			name: "string literal kept verbatim",
			tokens: []token.Token{
				token.NewLiteral(token.LitString, `"a b"`, token.Span{}),
			},
			want: `"a b"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := token.Render(tt.tokens)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderNewlineHints(t *testing.T) {
	x := ident("x")
	y := ident("y")
	y.NewlineBefore = true
	assign := punct(":=")
	one := token.NewLiteral(token.LitInt, "1", token.Span{})
	two := token.NewLiteral(token.LitInt, "2", token.Span{})

	block := token.NewGroup(token.Brace, []token.Token{x, assign, one, y, assign, two}, token.Span{})
	got := token.Render([]token.Token{block})
	require.Equal(t, "{x := 1\ny := 2\n}", got)
}

func TestCloneIsDeep(t *testing.T) {
	inner := []token.Token{ident("a")}
	orig := []token.Token{token.NewGroup(token.Paren, inner, token.Span{})}

	copied := token.Clone(orig)
	copied[0].Nested[0].Text = "changed"

	require.Equal(t, "a", orig[0].Nested[0].Text, "mutating the clone must not touch the original")
}

func TestSpanUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b token.Span
		want token.Span
	}{
		{"disjoint", token.Span{Start: 2, End: 4}, token.Span{Start: 8, End: 10}, token.Span{Start: 2, End: 10}},
		{"contained", token.Span{Start: 2, End: 10}, token.Span{Start: 4, End: 6}, token.Span{Start: 2, End: 10}},
		{"invalid left", token.Span{}, token.Span{Start: 3, End: 5}, token.Span{Start: 3, End: 5}},
		{"invalid right", token.Span{Start: 3, End: 5}, token.Span{}, token.Span{Start: 3, End: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Union(tt.b))
		})
	}
}

func TestSourcePosition(t *testing.T) {
	src := token.NewSource("test.splice", []byte("ab\ncde\nf"))

	tests := []struct {
		offset int
		want   token.Position
	}{
		{0, token.Position{Line: 1, Column: 1, Offset: 0}},
		{1, token.Position{Line: 1, Column: 2, Offset: 1}},
		{3, token.Position{Line: 2, Column: 1, Offset: 3}},
		{5, token.Position{Line: 2, Column: 3, Offset: 5}},
		{7, token.Position{Line: 3, Column: 1, Offset: 7}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, src.Position(tt.offset), "offset %d", tt.offset)
	}

	require.Equal(t, "cde", src.Text(token.Span{Start: 3, End: 6}))
	require.Equal(t, "", src.Text(token.Span{}))
}
