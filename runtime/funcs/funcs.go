// Package funcs implements the builtin function library available in
// alias specifications: case conversion, hashing, normalization,
// concatenation, the casting family and raw token passing.
//
// Importing the package registers every overload into the global
// registry. Registration order is load-bearing: overload IDs follow
// construction order and resolution uses them as the final tie-breaker.
package funcs

import (
	"fmt"
	"strings"

	"github.com/splicelang/splice/core/invariant"
	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

func init() {
	Register(types.Global())
}

// Register adds the builtin library to r.
func Register(r *types.Registry) {
	registerCase(r, "upper", Upper)
	registerCase(r, "lower", Lower)
	registerCase(r, "snake_case", SnakeCase)
	registerCase(r, "camel_case", CamelCase)
	registerCase(r, "pascal_case", PascalCase)
	registerNormalize(r)
	registerHash(r)
	registerConcat(r)
	registerCast(r, "to_ident", types.KindIdent)
	registerCast(r, "to_path", types.KindPath)
	registerCast(r, "to_type", types.KindType)
	registerCast(r, "to_expr", types.KindExpr)
	registerCast(r, "to_str", types.KindString)
	registerCast(r, "to_int", types.KindInt)
	registerCast(r, "to_tokens", types.KindTokens)
	registerRaw(r)
}

// registerCase adds the two overloads every string transformer carries:
// strings map to strings, identifiers map to identifiers.
func registerCase(r *types.Registry, name string, fn func(string) string) {
	r.Register(name, []types.Param{types.P(types.KindString)}, types.KindString,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg(name, args, types.KindString)
			if err != nil {
				return types.Value{}, err
			}
			return types.NewString(fn(in.Content()), span), nil
		})

	r.Register(name, []types.Param{types.P(types.KindIdent)}, types.KindIdent,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg(name, args, types.KindIdent)
			if err != nil {
				return types.Value{}, err
			}
			return newIdentValue(name, fn(in.Name()), span)
		})
}

func registerNormalize(r *types.Registry) {
	r.Register("normalize", []types.Param{types.P(types.KindRaw)}, types.KindIdent,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg("normalize", args, types.KindRaw)
			if err != nil {
				return types.Value{}, err
			}
			return newIdentValue("normalize", Normalize(token.Render(in.Tokens())), span)
		})
}

func registerHash(r *types.Registry) {
	r.Register("hash", []types.Param{types.P(types.KindString)}, types.KindString,
		func(env *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg("hash", args, types.KindString)
			if err != nil {
				return types.Value{}, err
			}
			return types.NewString(HashDigits(env.Seed(), in.Content()), span), nil
		})

	r.Register("hash", []types.Param{types.P(types.KindIdent)}, types.KindIdent,
		func(env *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg("hash", args, types.KindIdent)
			if err != nil {
				return types.Value{}, err
			}
			out, err := types.NewIdent("__"+HashDigits(env.Seed(), in.Name()), span)
			invariant.ExpectNoError(err, "hash identifier construction")
			return out, nil
		})

	r.Register("hash", []types.Param{types.P(types.KindTokens)}, types.KindIdent,
		func(env *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg("hash", args, types.KindTokens)
			if err != nil {
				return types.Value{}, err
			}
			out, err := types.NewIdent("__"+HashDigits(env.Seed(), token.Render(in.Tokens())), span)
			invariant.ExpectNoError(err, "hash identifier construction")
			return out, nil
		})
}

func registerConcat(r *types.Registry) {
	// concat(ident...)
	r.Register("concat", []types.Param{types.V(types.KindIdent)}, types.KindIdent,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			parts, err := allArgs("concat", args, types.KindIdent)
			if err != nil {
				return types.Value{}, err
			}
			names := make([]string, len(parts))
			for i, v := range parts {
				names[i] = v.Name()
			}
			out, err := types.NewIdent(Concat(names), span)
			if err != nil {
				return types.Value{}, concatIdentError(args, span)
			}
			return out, nil
		})

	// concat(ident, tokens...)
	r.Register("concat", []types.Param{types.P(types.KindIdent), types.V(types.KindTokens)}, types.KindIdent,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			if err := wantKind("concat", args, 0, types.KindIdent); err != nil {
				return types.Value{}, err
			}
			parts := []string{args[0].Name()}
			for i := 1; i < len(args); i++ {
				if err := wantKind("concat", args, i, types.KindTokens); err != nil {
					return types.Value{}, err
				}
				parts = append(parts, token.Render(args[i].Tokens()))
			}
			joined := Concat(parts)
			if !types.IsIdent(joined) {
				return types.Value{}, concatIdentError(args, span)
			}
			out, err := types.NewIdent(joined, span)
			invariant.ExpectNoError(err, "validated identifier construction")
			return out, nil
		})

	// concat(str...)
	r.Register("concat", []types.Param{types.V(types.KindString)}, types.KindString,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			parts, err := allArgs("concat", args, types.KindString)
			if err != nil {
				return types.Value{}, err
			}
			contents := make([]string, len(parts))
			for i, v := range parts {
				contents[i] = v.Content()
			}
			return types.NewString(Concat(contents), span), nil
		})

	// concat(int...)
	r.Register("concat", []types.Param{types.V(types.KindInt)}, types.KindInt,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			parts, err := allArgs("concat", args, types.KindInt)
			if err != nil {
				return types.Value{}, err
			}
			digits := make([]string, len(parts))
			for i, v := range parts {
				digits[i] = v.Digits()
			}
			out, err := types.NewIntFromDigits(Concat(digits), span)
			if err != nil {
				return types.Value{}, &types.EvalError{
					Msg:  fmt.Sprintf("Failed to produce a valid integer literal from concatenated arguments: %s", renderArgs(args)),
					Span: span,
				}
			}
			return out, nil
		})

	// concat(tokens...)
	r.Register("concat", []types.Param{types.V(types.KindTokens)}, types.KindTokens,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			parts, err := allArgs("concat", args, types.KindTokens)
			if err != nil {
				return types.Value{}, err
			}
			var spliced []token.Token
			for _, v := range parts {
				spliced = append(spliced, v.Tokens()...)
			}
			return types.NewTokens(spliced, span), nil
		})
}

func registerCast(r *types.Registry, name string, target types.Kind) {
	r.Register(name, []types.Param{types.P(types.KindTokens)}, target,
		func(_ *types.Environment, _ token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg(name, args, types.KindTokens)
			if err != nil {
				return types.Value{}, err
			}
			return in.Cast(target)
		})
}

func registerRaw(r *types.Registry) {
	r.Register("raw", []types.Param{types.P(types.KindRaw)}, types.KindTokens,
		func(_ *types.Environment, span token.Span, args []types.Value) (types.Value, error) {
			in, err := oneArg("raw", args, types.KindRaw)
			if err != nil {
				return types.Value{}, err
			}
			return types.NewTokens(in.Tokens(), span), nil
		})
}

// oneArg extracts the single argument of an overload, checking the kind
// resolution already guaranteed.
func oneArg(name string, args []types.Value, kind types.Kind) (types.Value, error) {
	if len(args) != 1 {
		return types.Value{}, types.Internalf("%s expects one argument, got %d", name, len(args))
	}
	if err := wantKind(name, args, 0, kind); err != nil {
		return types.Value{}, err
	}
	return args[0], nil
}

// allArgs checks a uniform variadic argument vector.
func allArgs(name string, args []types.Value, kind types.Kind) ([]types.Value, error) {
	for i := range args {
		if err := wantKind(name, args, i, kind); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func wantKind(name string, args []types.Value, i int, kind types.Kind) error {
	if args[i].Kind() != kind {
		return types.Internalf("%s(...) received a value of incompatible kind: %s", name, args[i].Kind())
	}
	return nil
}

func newIdentValue(name, text string, span token.Span) (types.Value, error) {
	out, err := types.NewIdent(text, span)
	if err != nil {
		return types.Value{}, &types.EvalError{
			Msg:  fmt.Sprintf("%s produced an invalid identifier: %q", name, text),
			Span: span,
		}
	}
	return out, nil
}

func concatIdentError(args []types.Value, span token.Span) error {
	return &types.EvalError{
		Msg:  fmt.Sprintf("Failed to produce a valid identifier from concatenated arguments: %s", renderArgs(args)),
		Span: span,
	}
}

func renderArgs(args []types.Value) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.Render()
	}
	return strings.Join(parts, ", ")
}
