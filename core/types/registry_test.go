package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

func echoImpl(env *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
	return args[0], nil
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	r := types.NewRegistry()
	first := r.Register("concat", []types.Param{types.V(types.KindIdent)}, types.KindIdent, echoImpl)
	second := r.Register("concat", []types.Param{types.V(types.KindString)}, types.KindString, echoImpl)

	overloads := r.Overloads("concat")
	require.Len(t, overloads, 2)
	assert.Equal(t, first.ID(), overloads[0].ID())
	assert.Equal(t, second.ID(), overloads[1].ID())
	assert.Less(t, first.ID(), second.ID(), "IDs follow registration order")

	assert.Nil(t, r.Overloads("missing"))
	assert.True(t, r.Has("concat"))
	assert.False(t, r.Has("missing"))
}

func TestRegistryNamesSorted(t *testing.T) {
	r := types.NewRegistry()
	r.Register("upper", []types.Param{types.P(types.KindString)}, types.KindString, echoImpl)
	r.Register("hash", []types.Param{types.P(types.KindString)}, types.KindString, echoImpl)
	r.Register("lower", []types.Param{types.P(types.KindString)}, types.KindString, echoImpl)

	assert.Equal(t, []string{"hash", "lower", "upper"}, r.Names())
}

func TestPrettySignature(t *testing.T) {
	r := types.NewRegistry()
	r.Register("hash", []types.Param{types.P(types.KindString)}, types.KindString, echoImpl)
	r.Register("hash", []types.Param{types.P(types.KindIdent)}, types.KindIdent, echoImpl)

	pretty := r.PrettySignature("hash")
	assert.Equal(t, "hash(str) -> str | hash(ident) -> ident", pretty)
}

func TestFuncSignature(t *testing.T) {
	f := types.NewFunc("concat",
		[]types.Param{types.P(types.KindIdent), types.V(types.KindTokens)},
		types.KindIdent, echoImpl)

	assert.Equal(t, "concat(ident, tokens...) -> ident", f.Signature())
	assert.True(t, f.IsVariadic())
	assert.Len(t, f.FixedParams(), 1)

	elem, ok := f.VariadicElem()
	require.True(t, ok)
	assert.Equal(t, types.KindTokens, elem)
}

func TestFuncShapeRules(t *testing.T) {
	t.Run("variadic must be last", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.True(t, strings.Contains(r.(string), "variadic parameter must be last"))
		}()
		types.NewFunc("bad",
			[]types.Param{types.V(types.KindIdent), types.P(types.KindIdent)},
			types.KindIdent, echoImpl)
	})

	t.Run("raw must stand alone", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.True(t, strings.Contains(r.(string), "raw parameter must be the only parameter"))
		}()
		types.NewFunc("bad",
			[]types.Param{types.P(types.KindRaw), types.P(types.KindIdent)},
			types.KindIdent, echoImpl)
	})
}

func TestGlobalRegistryIsShared(t *testing.T) {
	assert.Same(t, types.Global(), types.Global())
}
