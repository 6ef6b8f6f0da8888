package types

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/splicelang/splice/core/invariant"
	"github.com/splicelang/splice/core/token"
)

// Impl is the implementation behind one function overload. args arrive
// already resolved to this overload's shape; implementations may still
// fail on content.
type Impl func(env *Environment, span token.Span, args []Value) (Value, error)

var funcIDs atomic.Uint64

// Func is one overload of a library function. Every overload gets a
// monotonically assigned ID at construction; resolution uses it as the
// final tie-breaker so registration order decides between otherwise
// equal candidates.
type Func struct {
	id     uint64
	name   string
	params []Param
	out    Kind
	impl   Impl
}

// NewFunc builds an overload. Construction enforces the shape rules
// resolution relies on: a variadic parameter must be last, and a raw
// parameter must be the only parameter.
func NewFunc(name string, params []Param, out Kind, impl Impl) *Func {
	invariant.Precondition(name != "", "func name must not be empty")
	invariant.NotNil(impl, "impl")
	for i, p := range params {
		if p.Variadic {
			invariant.Precondition(i == len(params)-1,
				"variadic parameter must be last in %s", name)
		}
		if p.Kind == KindRaw {
			invariant.Precondition(len(params) == 1,
				"raw parameter must be the only parameter in %s", name)
			invariant.Precondition(!p.Variadic,
				"raw parameter must not be variadic in %s", name)
		}
	}
	return &Func{
		id:     funcIDs.Add(1),
		name:   name,
		params: params,
		out:    out,
		impl:   impl,
	}
}

// ID returns the overload's construction-order ID.
func (f *Func) ID() uint64 { return f.id }

// Name returns the function name the overload is registered under.
func (f *Func) Name() string { return f.name }

// Out returns the declared output kind.
func (f *Func) Out() Kind { return f.out }

// NumParams returns the number of parameter slots, the variadic slot
// counted once.
func (f *Func) NumParams() int { return len(f.params) }

// IsVariadic reports whether the last parameter slot is variadic.
func (f *Func) IsVariadic() bool {
	return len(f.params) > 0 && f.params[len(f.params)-1].Variadic
}

// FixedParams returns the non-variadic parameter prefix.
func (f *Func) FixedParams() []Param {
	if f.IsVariadic() {
		return f.params[:len(f.params)-1]
	}
	return f.params
}

// VariadicElem returns the element kind of the variadic slot.
func (f *Func) VariadicElem() (Kind, bool) {
	if !f.IsVariadic() {
		return 0, false
	}
	return f.params[len(f.params)-1].Kind, true
}

// TakesRaw reports whether the overload consumes raw tokens, commas
// included, as its sole parameter.
func (f *Func) TakesRaw() bool {
	return len(f.params) == 1 && f.params[0].Kind == KindRaw
}

// Signature renders the overload as "name(a, b) -> out".
func (f *Func) Signature() string {
	parts := make([]string, len(f.params))
	for i, p := range f.params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s) -> %s", f.name, strings.Join(parts, ", "), f.out)
}

// Call applies the overload.
func (f *Func) Call(env *Environment, span token.Span, args []Value) (Value, error) {
	invariant.NotNil(env, "env")
	return f.impl(env, span, args)
}
