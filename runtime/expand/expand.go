// Package expand desugars loop clauses. Every combination of an
// invocation's loop sources yields one primitive invocation whose alias
// specification starts with that combination's bindings, followed by
// the user's own items so those can reference the loop aliases.
package expand

import (
	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/types"
)

// Expand returns one alias spec per combination of inv's loop sources,
// in odometer order with the last clause varying fastest. An
// invocation without loops expands to its own spec; a loop over an
// empty list expands to nothing.
func Expand(inv *ast.Invocation) ([]*ast.AliasSpec, error) {
	if len(inv.Loops) == 0 {
		return []*ast.AliasSpec{inv.Spec}, nil
	}

	sources := make([][]*ast.LoopValue, len(inv.Loops))
	for i, loop := range inv.Loops {
		sources[i] = loop.Values
	}

	product := NewCrossProduct(sources)
	specs := make([]*ast.AliasSpec, 0, product.Total())
	for {
		combo, ok := product.Next()
		if !ok {
			break
		}
		var items []*ast.AliasItem
		for i, loop := range inv.Loops {
			bound, err := bindPattern(loop.Pattern, combo[i])
			if err != nil {
				return nil, err
			}
			items = append(items, bound...)
		}
		specs = append(specs, inv.Spec.Prepend(items))
	}
	return specs, nil
}

// bindPattern turns one (pattern, source value) pair into alias items.
// A plain name takes the value whole; a tuple pattern destructures a
// tuple value element by element.
func bindPattern(pattern *ast.Pattern, value *ast.LoopValue) ([]*ast.AliasItem, error) {
	switch {
	case !pattern.IsTuple() && !value.IsTuple():
		item := &ast.AliasItem{Alias: pattern.Name, AliasSpan: pattern.Span(), Value: value.Leaf}
		return []*ast.AliasItem{item}, nil

	case pattern.IsTuple() && value.IsTuple():
		if err := matchTuples(pattern, value); err != nil {
			return nil, err
		}
		names := patternLeaves(pattern, nil)
		leaves := valueLeaves(value, nil)
		items := make([]*ast.AliasItem, len(names))
		for i, name := range names {
			items[i] = &ast.AliasItem{Alias: name.Name, AliasSpan: name.Span(), Value: leaves[i].Leaf}
		}
		return items, nil

	default:
		return nil, &types.TypeError{Msg: "Mismatched alias and value types", Span: value.Span()}
	}
}

// matchTuples checks that a value tuple has the same tree shape as the
// alias tuple it is destructured by.
func matchTuples(pattern *ast.Pattern, value *ast.LoopValue) error {
	ps := patternShape(pattern, nil)
	vs := valueShape(value, nil)
	if len(ps) != len(vs) {
		return &types.TypeError{Msg: "Mismatched number of elements in the tuple", Span: value.Span()}
	}
	for i := range ps {
		if ps[i] != vs[i] {
			return &types.TypeError{
				Msg:  "Shape of the value tuple doesn't match the shape of the alias tuple",
				Span: value.Span(),
			}
		}
	}
	return nil
}

// patternShape flattens the tuple tree in destructuring order, one
// entry per node, true marking a nested tuple.
func patternShape(p *ast.Pattern, out []bool) []bool {
	for _, e := range p.Elems {
		out = append(out, e.IsTuple())
		if e.IsTuple() {
			out = patternShape(e, out)
		}
	}
	return out
}

func valueShape(v *ast.LoopValue, out []bool) []bool {
	for _, e := range v.Elems {
		out = append(out, e.IsTuple())
		if e.IsTuple() {
			out = valueShape(e, out)
		}
	}
	return out
}

// patternLeaves collects the leaf names in destructuring order.
func patternLeaves(p *ast.Pattern, out []*ast.Pattern) []*ast.Pattern {
	for _, e := range p.Elems {
		if e.IsTuple() {
			out = patternLeaves(e, out)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func valueLeaves(v *ast.LoopValue, out []*ast.LoopValue) []*ast.LoopValue {
	for _, e := range v.Elems {
		if e.IsTuple() {
			out = valueLeaves(e, out)
		} else {
			out = append(out, e)
		}
	}
	return out
}
