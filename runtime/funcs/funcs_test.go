package funcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
	"github.com/splicelang/splice/runtime/funcs"
)

func testRegistry(t *testing.T) (*types.Registry, *types.Environment) {
	t.Helper()
	r := types.NewRegistry()
	funcs.Register(r)
	return r, types.NewEnvironment(r, 42)
}

func mustIdent(t *testing.T, name string) types.Value {
	t.Helper()
	v, err := types.NewIdent(name, token.Span{})
	require.NoError(t, err)
	return v
}

func str(content string) types.Value {
	return types.NewString(content, token.Span{})
}

func mustInt(t *testing.T, text string) types.Value {
	t.Helper()
	v, err := types.NewInt(text, token.Span{})
	require.NoError(t, err)
	return v
}

func toks(tt ...token.Token) types.Value {
	return types.NewTokens(tt, token.Span{})
}

func rawToks(tt ...token.Token) types.Value {
	return types.NewRaw(tt, token.Span{})
}

func ident(text string) token.Token { return token.NewIdent(text, token.Span{}) }
func punct(text string) token.Token { return token.NewPunct(text, token.Span{}) }

// call applies the i-th overload of name directly, bypassing resolution.
func call(t *testing.T, r *types.Registry, env *types.Environment, name string, i int, args ...types.Value) (types.Value, error) {
	t.Helper()
	overloads := r.Overloads(name)
	require.Greater(t, len(overloads), i, "overload %s[%d]", name, i)
	return overloads[i].Call(env, token.Span{}, args)
}

func TestLibraryShape(t *testing.T) {
	r, _ := testRegistry(t)

	counts := map[string]int{
		"upper": 2, "lower": 2, "snake_case": 2, "camel_case": 2, "pascal_case": 2,
		"normalize": 1, "hash": 3, "concat": 5,
		"to_ident": 1, "to_path": 1, "to_type": 1, "to_expr": 1,
		"to_str": 1, "to_int": 1, "to_tokens": 1, "raw": 1,
	}
	for name, n := range counts {
		assert.Len(t, r.Overloads(name), n, "overloads of %s", name)
	}
	assert.Len(t, r.Names(), len(counts))
}

func TestConcatOverloadOrder(t *testing.T) {
	r, _ := testRegistry(t)

	sigs := make([]string, 0, 5)
	for _, f := range r.Overloads("concat") {
		sigs = append(sigs, f.Signature())
	}
	assert.Equal(t, []string{
		"concat(ident...) -> ident",
		"concat(ident, tokens...) -> ident",
		"concat(str...) -> str",
		"concat(int...) -> int",
		"concat(tokens...) -> tokens",
	}, sigs)
}

func TestCaseOverloads(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "upper", 0, str("foo bar"))
	require.NoError(t, err)
	assert.Equal(t, types.KindString, out.Kind())
	assert.Equal(t, "FOO BAR", out.Content())

	out, err = call(t, r, env, "upper", 1, mustIdent(t, "foo"))
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, out.Kind())
	assert.Equal(t, "FOO", out.Name())

	out, err = call(t, r, env, "snake_case", 1, mustIdent(t, "FooBar"))
	require.NoError(t, err)
	assert.Equal(t, "foo_bar", out.Name())

	out, err = call(t, r, env, "pascal_case", 0, str("foo_bar"))
	require.NoError(t, err)
	assert.Equal(t, "FooBar", out.Content())
}

func TestHashOverloads(t *testing.T) {
	r, env := testRegistry(t)

	first, err := call(t, r, env, "hash", 0, str("1"))
	require.NoError(t, err)
	assert.Equal(t, types.KindString, first.Kind())

	again, err := call(t, r, env, "hash", 0, str("1"))
	require.NoError(t, err)
	assert.Equal(t, first.Content(), again.Content(), "stable within one environment")

	id, err := call(t, r, env, "hash", 1, mustIdent(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, id.Kind())
	assert.Contains(t, id.Name(), "__")

	fromTokens, err := call(t, r, env, "hash", 2, toks(ident("a"), punct("+"), ident("b")))
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, fromTokens.Kind())

	other := types.NewEnvironment(r, 43)
	shifted, err := call(t, r, other, "hash", 0, str("1"))
	require.NoError(t, err)
	assert.NotEqual(t, first.Content(), shifted.Content(), "seed shifts every hash")
}

func TestConcatIdents(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "concat", 0, mustIdent(t, "foo"), mustIdent(t, "_"), mustIdent(t, "bar"))
	require.NoError(t, err)
	assert.Equal(t, "foo_bar", out.Name())

	_, err = call(t, r, env, "concat", 0)
	require.Error(t, err)
	var evalErr *types.EvalError
	assert.ErrorAs(t, err, &evalErr)
}

func TestConcatIdentTokens(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "concat", 1, mustIdent(t, "foo"), toks(token.NewLiteral(token.LitInt, "123", token.Span{})))
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, out.Kind())
	assert.Equal(t, "foo123", out.Name())

	_, err = call(t, r, env, "concat", 1, mustIdent(t, "foo"), toks(punct("+")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to produce a valid identifier from concatenated arguments: foo, +")
}

func TestConcatStrings(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "concat", 2, str("get_"), str("user"))
	require.NoError(t, err)
	assert.Equal(t, types.KindString, out.Kind())
	assert.Equal(t, "get_user", out.Content())
}

func TestConcatInts(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "concat", 3, mustInt(t, "1"), mustInt(t, "23"))
	require.NoError(t, err)
	assert.Equal(t, types.KindInt, out.Kind())
	assert.Equal(t, "123", out.Digits())
}

func TestConcatTokens(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "concat", 4, toks(ident("a")), toks(punct("+"), ident("b")))
	require.NoError(t, err)
	assert.Equal(t, types.KindTokens, out.Kind())
	assert.Equal(t, "a+b", token.Render(out.Tokens()))
}

func TestCasts(t *testing.T) {
	r, env := testRegistry(t)

	out, err := call(t, r, env, "to_ident", 0, toks(ident("foo")))
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, out.Kind())
	assert.Equal(t, "foo", out.Name())

	out, err = call(t, r, env, "to_int", 0, toks(token.NewLiteral(token.LitInt, "0x2a", token.Span{})))
	require.NoError(t, err)
	assert.Equal(t, types.KindInt, out.Kind())
	assert.Equal(t, "42", out.Digits())

	out, err = call(t, r, env, "to_str", 0, toks(ident("foo")))
	require.NoError(t, err)
	assert.Equal(t, types.KindString, out.Kind())
	assert.Equal(t, "foo", out.Content())

	out, err = call(t, r, env, "to_tokens", 0, toks(ident("foo")))
	require.NoError(t, err)
	assert.Equal(t, types.KindTokens, out.Kind())

	_, err = call(t, r, env, "to_int", 0, toks(ident("foo")))
	require.Error(t, err)
	var typeErr *types.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestRawPassesTokensThrough(t *testing.T) {
	r, env := testRegistry(t)

	in := rawToks(ident("Result"), punct(","), ident("error"))
	out, err := call(t, r, env, "raw", 0, in)
	require.NoError(t, err)
	assert.Equal(t, types.KindTokens, out.Kind())
	assert.Equal(t, "Result,error", token.Render(out.Tokens()))
}

func TestNormalizeFunc(t *testing.T) {
	r, env := testRegistry(t)

	in := rawToks(ident("Result"), punct("["), ident("T"), punct(","), ident("E"), punct("]"))
	out, err := call(t, r, env, "normalize", 0, in)
	require.NoError(t, err)
	assert.Equal(t, types.KindIdent, out.Kind())
	assert.Equal(t, "Result_T_E", out.Name())
}
