package ast_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

func TestNextIDIsUniqueUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 1000

	var mu sync.Mutex
	seen := make(map[uint64]bool, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]uint64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				ids = append(ids, ast.NextID())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range ids {
				require.False(t, seen[id], "id %d issued twice", id)
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestCallString(t *testing.T) {
	v, err := types.NewIdent("foo", token.Span{})
	require.NoError(t, err)

	withArgs := ast.NewCall("upper", []ast.Expr{ast.NewValueExpr(v)}, nil, token.Span{})
	assert.Equal(t, "upper(foo)", withArgs.String())

	raw := []token.Token{
		token.NewIdent("a", token.Span{}),
		token.NewPunct(",", token.Span{}),
		token.NewIdent("b", token.Span{}),
	}
	withRaw := ast.NewCall("concat", nil, raw, token.Span{})
	assert.Equal(t, "concat(a, b)", withRaw.String())
}

func TestAliasSpecPrependKeepsOrder(t *testing.T) {
	mk := func(name string) *ast.AliasItem {
		v, err := types.NewIdent(name+"_v", token.Span{})
		require.NoError(t, err)
		return &ast.AliasItem{Alias: name, Value: ast.NewValueExpr(v)}
	}

	spec := &ast.AliasSpec{Items: []*ast.AliasItem{mk("user1"), mk("user2")}}
	merged := spec.Prepend([]*ast.AliasItem{mk("loop1"), mk("loop2")})

	var names []string
	for _, item := range merged.Items {
		names = append(names, item.Alias)
	}
	assert.Equal(t, []string{"loop1", "loop2", "user1", "user2"}, names)
	assert.Len(t, spec.Items, 2, "the original spec is untouched")
}

func TestLoopString(t *testing.T) {
	a, err := types.NewIdent("x", token.Span{})
	require.NoError(t, err)
	one, err := types.NewInt("1", token.Span{})
	require.NoError(t, err)

	pattern := ast.NewTuplePattern([]*ast.Pattern{
		ast.NewNamePattern("name", token.Span{}),
		ast.NewNamePattern("num", token.Span{}),
	}, token.Span{})

	values := []*ast.LoopValue{
		ast.NewTupleValue([]*ast.LoopValue{
			ast.NewLeafValue(ast.NewValueExpr(a), token.Span{}),
			ast.NewLeafValue(ast.NewValueExpr(one), token.Span{}),
		}, token.Span{}),
	}

	loop := ast.NewLoop(pattern, values, token.Span{})
	assert.Equal(t, "for (name, num) in [(x, 1)]", loop.String())
}
