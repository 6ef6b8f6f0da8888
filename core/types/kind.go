// Package types defines the typed value model the interpreter evaluates:
// value kinds and their coercion lattice, immutable values with cast
// semantics, the function type with its overload registry, the execution
// environment, and the user-facing error taxonomy.
package types

// Kind classifies a value by the syntactic category it renders into.
type Kind uint8

const (
	KindIdent  Kind = iota // a single identifier
	KindPath               // a dot-separated identifier chain
	KindType               // a type expression
	KindExpr               // a value expression
	KindString             // a string literal
	KindInt                // an integer literal
	KindTokens             // an arbitrary token vector
	KindRaw                // verbatim tokens, commas included
)

// String returns the display name used in signatures and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindPath:
		return "path"
	case KindType:
		return "type"
	case KindExpr:
		return "expr"
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindTokens:
		return "tokens"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// CoercionCost returns the cost of coercing a value of kind from into a
// slot expecting kind to, and whether such a coercion exists at all.
//
// The lattice is intentionally narrow: identifiers widen into paths,
// types and expressions; anything degrades into tokens or raw tokens.
// Every other pair is unresolvable even when a runtime cast could
// succeed on particular contents.
func CoercionCost(from, to Kind) (int, bool) {
	if from == to {
		return 0, true
	}
	switch {
	case from == KindIdent && to == KindPath:
		return 1, true
	case from == KindIdent && to == KindType:
		return 2, true
	case from == KindIdent && to == KindExpr:
		return 3, true
	case to == KindTokens:
		return 4, true
	case to == KindRaw:
		return 5, true
	}
	return 0, false
}

// Param is one parameter slot of a function overload.
type Param struct {
	Kind     Kind
	Variadic bool
}

// String renders the slot for signatures, with "..." marking variadics.
func (p Param) String() string {
	if p.Variadic {
		return p.Kind.String() + "..."
	}
	return p.Kind.String()
}

// P is shorthand for a fixed parameter slot.
func P(k Kind) Param {
	return Param{Kind: k}
}

// V is shorthand for a variadic parameter slot.
func V(k Kind) Param {
	return Param{Kind: k, Variadic: true}
}
