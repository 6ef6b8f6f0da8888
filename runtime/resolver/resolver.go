// Package resolver implements the static pass between parsing and
// evaluation. It publishes aliases with redefinition checking and binds
// every call to one overload of the function library, choosing by
// coercion cost over the kind lattice.
package resolver

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/types"
)

// maxSuggestions caps the did-you-mean list on undefined functions.
const maxSuggestions = 3

// Resolver binds one invocation's expressions against an environment.
type Resolver struct {
	env *types.Environment
}

// New creates a resolver over env.
func New(env *types.Environment) *Resolver {
	return &Resolver{env: env}
}

// ResolveSpec resolves an alias specification item by item. Each value
// resolves against the bindings published so far, so later items can
// reference earlier ones but not themselves.
func (r *Resolver) ResolveSpec(spec *ast.AliasSpec, scope *Scope) error {
	for _, item := range spec.Items {
		if err := r.ResolveExpr(item.Value, scope, nil); err != nil {
			return err
		}
		if err := scope.Bind(item.Alias, item.Value, item.AliasSpan); err != nil {
			return err
		}
	}
	return nil
}

// ResolveExpr resolves one expression. expected is the kind the
// surrounding context needs, or nil when the expression stands alone.
func (r *Resolver) ResolveExpr(e ast.Expr, scope *Scope, expected *types.Kind) error {
	switch x := e.(type) {
	case *ast.ValueExpr:
		return r.resolveValue(x, scope, expected)
	case *ast.Call:
		return r.resolveCall(x, scope, expected)
	default:
		return types.Internalf("unknown expression node %T", e)
	}
}

// resolveValue types a literal value against its context. An identifier
// naming a bound alias resolves as whatever kind that alias was
// resolved to, so references coerce like the values they stand for.
func (r *Resolver) resolveValue(v *ast.ValueExpr, scope *Scope, expected *types.Kind) error {
	from := v.Val.Kind()
	if from == types.KindIdent {
		if bound, ok := scope.Lookup(v.Val.Name()); ok {
			target, ok := scope.Metadata().Target(bound.ID())
			if !ok {
				return types.Internalf("metadata missing for resolved alias %q", v.Val.Name())
			}
			from = target
		}
	}

	target := from
	if expected != nil {
		target = *expected
	}
	cost, ok := types.CoercionCost(from, target)
	if !ok {
		return types.NewCoercionError(v.Span(), v.Val.Kind(), target)
	}
	scope.Metadata().setValue(v.ID(), ValueInfo{Target: target, Cost: cost})
	return nil
}

// candidate is one successfully resolved overload attempt.
type candidate struct {
	cost  int
	scope *Scope
	fn    *types.Func
	args  []ast.Expr
}

// resolveCall binds a call to the cheapest compatible overload. Every
// candidate resolves into its own scope fork; the winner's fork is
// committed and the rest are dropped. Internal errors abort the whole
// call instead of failing one candidate.
func (r *Resolver) resolveCall(call *ast.Call, scope *Scope, expected *types.Kind) error {
	overloads := r.env.Funcs().Overloads(call.Name)
	if len(overloads) == 0 {
		return &types.UndefinedFunctionError{
			Name:        call.Name,
			Suggestions: r.suggest(call.Name),
			Span:        call.Span(),
		}
	}

	var candidates []candidate
	for _, fn := range overloads {
		fork := scope.DeepClone()
		cost, args, err := r.tryOverload(fn, call, fork, expected)
		if err != nil {
			if types.IsInternal(err) {
				return err
			}
			continue
		}
		candidates = append(candidates, candidate{cost: cost, scope: fork, fn: fn, args: args})
	}

	if len(candidates) == 0 {
		return &types.SignatureError{
			Signatures: r.env.Funcs().PrettySignature(call.Name),
			Call:       call.String(),
			Span:       call.Span(),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		if a.fn.IsVariadic() != b.fn.IsVariadic() {
			return !a.fn.IsVariadic()
		}
		if a.fn.NumParams() != b.fn.NumParams() {
			return a.fn.NumParams() < b.fn.NumParams()
		}
		return a.fn.ID() < b.fn.ID()
	})

	best := candidates[0]
	target := best.fn.Out()
	if expected != nil {
		target = *expected
	}
	best.scope.Metadata().setCall(call.ID(), CallInfo{
		Fn:     best.fn,
		Args:   best.args,
		Target: target,
		Cost:   best.cost,
	})
	*scope = *best.scope
	return nil
}

// tryOverload resolves call against one overload, accumulating the
// total coercion cost: the output coercion first, then each argument at
// multiplier 1 for fixed slots and 2 for variadic ones.
func (r *Resolver) tryOverload(fn *types.Func, call *ast.Call, scope *Scope, expected *types.Kind) (int, []ast.Expr, error) {
	cost := 0
	if expected != nil {
		c, ok := types.CoercionCost(fn.Out(), *expected)
		if !ok {
			return 0, nil, types.NewCoercionError(call.Span(), fn.Out(), *expected)
		}
		cost += c
	}

	if fn.TakesRaw() {
		if call.Raw == nil {
			return 0, nil, r.overloadMismatch(fn, call)
		}
		rawArg := ast.NewValueExpr(types.NewRaw(call.Raw, call.Span()))
		raw := types.KindRaw
		if err := r.ResolveExpr(rawArg, scope, &raw); err != nil {
			return 0, nil, err
		}
		return cost, []ast.Expr{rawArg}, nil
	}

	fixed := fn.FixedParams()
	if !fn.IsVariadic() && len(call.Args) != len(fixed) {
		return 0, nil, r.overloadMismatch(fn, call)
	}
	if fn.IsVariadic() && len(call.Args) < len(fixed) {
		return 0, nil, r.overloadMismatch(fn, call)
	}

	var args []ast.Expr
	for i, p := range fixed {
		if err := r.resolveArg(call.Args[i], 1, &cost, &args, scope, p.Kind); err != nil {
			return 0, nil, err
		}
	}
	if elem, ok := fn.VariadicElem(); ok {
		for _, arg := range call.Args[len(fixed):] {
			if err := r.resolveArg(arg, 2, &cost, &args, scope, elem); err != nil {
				return 0, nil, err
			}
		}
	}
	return cost, args, nil
}

// resolveArg resolves one argument toward an expected kind and adds its
// weighted cost to the call total.
func (r *Resolver) resolveArg(arg ast.Expr, multiplier int, cost *int, args *[]ast.Expr, scope *Scope, expected types.Kind) error {
	if err := r.ResolveExpr(arg, scope, &expected); err != nil {
		return err
	}
	c, ok := scope.Metadata().CostOf(arg.ID())
	if !ok {
		return types.Internalf("metadata missing after resolving argument %s", arg)
	}
	*cost += c * multiplier
	*args = append(*args, arg)
	return nil
}

// overloadMismatch builds the per-candidate rejection. It is only ever
// surfaced through the aggregate SignatureError, never directly.
func (r *Resolver) overloadMismatch(fn *types.Func, call *ast.Call) error {
	return &types.SignatureError{
		Signatures: fn.Signature(),
		Call:       call.String(),
		Span:       call.Span(),
	}
}

// suggest returns registered names within a small edit distance of
// name, for the did-you-mean part of UndefinedFunctionError.
func (r *Resolver) suggest(name string) []string {
	var out []string
	for _, known := range r.env.Funcs().Names() {
		if fuzzy.LevenshteinDistance(name, known) <= 2 {
			out = append(out, known)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
