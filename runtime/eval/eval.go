// Package eval computes the concrete values of a resolved alias
// specification. Resolution has already chosen targets and overloads;
// this pass substitutes alias references, applies functions, and casts
// every result to its recorded target kind.
package eval

import (
	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/invariant"
	"github.com/splicelang/splice/core/types"
	"github.com/splicelang/splice/runtime/resolver"
)

// Context carries one combination's evaluation state: the environment,
// the metadata resolution recorded, and the variables bound so far.
type Context struct {
	env  *types.Environment
	meta *resolver.Metadata
	vars map[string]types.Value
}

// NewContext creates an empty context over a resolved combination.
func NewContext(env *types.Environment, meta *resolver.Metadata) *Context {
	invariant.NotNil(env, "env")
	invariant.NotNil(meta, "meta")
	return &Context{env: env, meta: meta, vars: make(map[string]types.Value)}
}

// Bindings holds the evaluated alias values of one combination, in
// item order.
type Bindings struct {
	names  []string
	values map[string]types.Value
}

// Lookup returns the value bound to an alias.
func (b *Bindings) Lookup(name string) (types.Value, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Names returns the alias names in binding order.
func (b *Bindings) Names() []string {
	return append([]string(nil), b.names...)
}

// Len returns the number of bindings.
func (b *Bindings) Len() int { return len(b.names) }

// EvalSpec evaluates a resolved alias specification item by item. Each
// item's value is evaluated against the variables bound so far, then
// published under the item's alias.
func EvalSpec(ctx *Context, spec *ast.AliasSpec) (*Bindings, error) {
	bindings := &Bindings{values: make(map[string]types.Value, len(spec.Items))}
	for _, item := range spec.Items {
		val, err := EvalExpr(ctx, item.Value)
		if err != nil {
			return nil, err
		}
		ctx.vars[item.Alias] = val
		bindings.names = append(bindings.names, item.Alias)
		bindings.values[item.Alias] = val
	}
	return bindings, nil
}

// EvalExpr evaluates one resolved expression to a value.
func EvalExpr(ctx *Context, e ast.Expr) (types.Value, error) {
	switch x := e.(type) {
	case *ast.ValueExpr:
		return evalValue(ctx, x)
	case *ast.Call:
		return evalCall(ctx, x)
	default:
		return types.Value{}, types.Internalf("unknown expression node %T", e)
	}
}

// evalValue produces a literal's value: an identifier naming a bound
// alias stands for that alias's value, anything else stands for
// itself. The cast to the recorded target cannot fail because
// resolution only records lattice coercions, which are content-safe.
func evalValue(ctx *Context, v *ast.ValueExpr) (types.Value, error) {
	info, ok := ctx.meta.Value(v.ID())
	if !ok {
		return types.Value{}, types.Internalf("metadata missing for value %s", v.Val.Render())
	}

	val := v.Val
	if val.Kind() == types.KindIdent {
		if bound, ok := ctx.vars[val.Name()]; ok {
			val = bound
		}
	}

	cast, err := val.Cast(info.Target)
	invariant.ExpectNoError(err, "resolved value cast")
	return cast, nil
}

// evalCall applies the overload resolution chose, evaluating the
// resolved arguments first. The implementation may still fail on
// content, and so may the cast of its result when the implementation
// returned a kind other than the declared one.
func evalCall(ctx *Context, c *ast.Call) (types.Value, error) {
	info, ok := ctx.meta.Call(c.ID())
	if !ok {
		return types.Value{}, types.Internalf("metadata missing for call %s(...)", c.Name)
	}

	args := make([]types.Value, len(info.Args))
	for i, arg := range info.Args {
		val, err := EvalExpr(ctx, arg)
		if err != nil {
			return types.Value{}, err
		}
		args[i] = val
	}

	result, err := info.Fn.Call(ctx.env, c.Span(), args)
	if err != nil {
		return types.Value{}, err
	}
	return result.Cast(info.Target)
}
