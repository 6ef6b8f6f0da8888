package types

import (
	goast "go/ast"
	"go/parser"
	gotoken "go/token"
	"strconv"
	"strings"

	"github.com/splicelang/splice/core/token"
)

// Grammar checks back every syntactic category in the lattice with the
// real Go grammar: casts, value classification and post-substitution
// revalidation all go through these instead of hand-rolled pattern
// matching.

// IsIdent reports whether s is a legal Go identifier. Keywords are not
// identifiers.
func IsIdent(s string) bool {
	return gotoken.IsIdentifier(s)
}

// IsPath reports whether s is an identifier or a dot-separated chain of
// identifiers.
func IsPath(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if !gotoken.IsIdentifier(seg) {
			return false
		}
	}
	return true
}

// CheckType reports whether s parses as a Go type expression. Named and
// qualified types count; value expressions such as arithmetic do not.
func CheckType(s string) error {
	node, err := parser.ParseExpr(s)
	if err != nil {
		return err
	}
	if !isTypeNode(node) {
		return &notAType{text: s}
	}
	return nil
}

type notAType struct{ text string }

func (e *notAType) Error() string {
	return "not a type expression: " + e.text
}

// isTypeNode reports whether a parsed expression is shaped like a type.
// Generic instantiations and pointer shapes are ambiguous between type
// and value syntax; they classify as types here.
func isTypeNode(node goast.Expr) bool {
	switch n := node.(type) {
	case *goast.Ident:
		return true
	case *goast.SelectorExpr:
		return isTypeNode(n.X)
	case *goast.StarExpr:
		return isTypeNode(n.X)
	case *goast.ArrayType, *goast.MapType, *goast.ChanType,
		*goast.FuncType, *goast.StructType, *goast.InterfaceType,
		*goast.Ellipsis:
		return true
	case *goast.IndexExpr:
		return isTypeNode(n.X)
	case *goast.IndexListExpr:
		return isTypeNode(n.X)
	case *goast.ParenExpr:
		return isTypeNode(n.X)
	default:
		return false
	}
}

// CheckExpr reports whether s parses as a Go expression.
func CheckExpr(s string) error {
	_, err := parser.ParseExpr(s)
	return err
}

// ParseIntLit validates an integer literal in any Go base and returns
// its canonical base-10 digits.
func ParseIntLit(s string) (string, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

// ParseStringLit validates a Go string literal and returns its content.
func ParseStringLit(s string) (string, error) {
	return strconv.Unquote(strings.TrimSpace(s))
}

// CheckBlock reports whether src parses as a block of Go code: either a
// run of top-level declarations or a run of statements. Both wrappings
// are tried because generated blocks legitimately hold either.
func CheckBlock(src string) error {
	if _, err := parser.ParseFile(gotoken.NewFileSet(), "block.go", "package p\n"+src, parser.SkipObjectResolution); err == nil {
		return nil
	}
	wrapped := "package p\nfunc _() {\n" + src + "\n}"
	_, err := parser.ParseFile(gotoken.NewFileSet(), "block.go", wrapped, parser.SkipObjectResolution)
	return err
}

// Classify assigns a value kind to a lexed token run: single identifier,
// integer and string tokens keep their lexical kind, multi-token runs are
// classified by the first grammar that accepts their rendering, and
// anything unparseable stays a plain token vector.
func Classify(tokens []token.Token) Kind {
	if len(tokens) == 1 {
		t := tokens[0]
		switch {
		case t.Kind == token.Ident && IsIdent(t.Text):
			return KindIdent
		case t.Kind == token.Literal && t.Lit == token.LitInt:
			return KindInt
		case t.Kind == token.Literal && t.Lit == token.LitString:
			return KindString
		}
	}
	text := token.Render(tokens)
	switch {
	case IsPath(text):
		return KindPath
	case CheckType(text) == nil:
		return KindType
	case CheckExpr(text) == nil:
		return KindExpr
	default:
		return KindTokens
	}
}
