// Package token defines the token tree model the interpreter operates on.
//
// A token is an identifier, punctuation, literal, comment, or a delimited
// group holding a nested token vector. Groups make the model a tree: the
// substitution engine walks it with an explicit stack, replacement splices
// token vectors in place, and a group keeps its delimiter no matter what
// happens to its contents.
package token

// Kind classifies a token.
type Kind uint8

const (
	Ident   Kind = iota // identifiers and keywords
	Punct               // operators and separators, maximal munch
	Literal             // string, rune, and numeric literals
	Comment             // line and block comments, Text includes the markers
	Group               // a delimited nested token vector
)

// String returns a string representation of the token kind
func (k Kind) String() string {
	switch k {
	case Ident:
		return "IDENT"
	case Punct:
		return "PUNCT"
	case Literal:
		return "LITERAL"
	case Comment:
		return "COMMENT"
	case Group:
		return "GROUP"
	default:
		return "UNKNOWN"
	}
}

// LitKind classifies a Literal token.
type LitKind uint8

const (
	LitOther  LitKind = iota // imaginary and anything unrecognized
	LitString                // "text" or `text`
	LitInt                   // 42, 0x2a, 0b101, 1_000_000
	LitFloat                 // 3.14, 1e6, 0x1p-2
	LitChar                  // 'a', '\n'
)

// String returns a string representation of the literal kind
func (k LitKind) String() string {
	switch k {
	case LitString:
		return "STRING"
	case LitInt:
		return "INT"
	case LitFloat:
		return "FLOAT"
	case LitChar:
		return "CHAR"
	default:
		return "OTHER"
	}
}

// Delim identifies a group's delimiter pair.
type Delim uint8

const (
	Paren   Delim = iota // ( )
	Bracket              // [ ]
	Brace                // { }
)

// Open returns the opening delimiter character
func (d Delim) Open() byte {
	switch d {
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return '('
	}
}

// Close returns the closing delimiter character
func (d Delim) Close() byte {
	switch d {
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return ')'
	}
}

// String returns a string representation of the delimiter
func (d Delim) String() string {
	switch d {
	case Bracket:
		return "[]"
	case Brace:
		return "{}"
	default:
		return "()"
	}
}

// Span is a half-open byte range [Start, End) into the lexed source.
// The zero value means "no span"; diagnostics fall back to the nearest
// enclosing construct's span when a node carries none.
type Span struct {
	Start int
	End   int
}

// IsValid reports whether the span covers at least one byte.
func (s Span) IsValid() bool {
	return s.End > s.Start
}

// Union returns the smallest span covering both s and o. An invalid
// operand yields the other span unchanged.
func (s Span) Union(o Span) Span {
	if !s.IsValid() {
		return o
	}
	if !o.IsValid() {
		return s
	}
	u := s
	if o.Start < u.Start {
		u.Start = o.Start
	}
	if o.End > u.End {
		u.End = o.End
	}
	return u
}

// Token is one node of the token tree.
type Token struct {
	Kind   Kind
	Text   string  // source text for every kind except Group
	Lit    LitKind // set when Kind is Literal
	Delim  Delim   // set when Kind is Group
	Nested []Token // set when Kind is Group
	Span   Span

	// NewlineBefore is a rendering hint, not token identity: the lexer
	// records whether a line break preceded this token so rendering can
	// preserve the statement boundaries Go's semicolon insertion relies
	// on. Tokens spliced in by substitution inherit the flag of the
	// token they replace.
	NewlineBefore bool
}

// NewIdent builds an identifier token.
func NewIdent(text string, span Span) Token {
	return Token{Kind: Ident, Text: text, Span: span}
}

// NewPunct builds a punctuation token.
func NewPunct(text string, span Span) Token {
	return Token{Kind: Punct, Text: text, Span: span}
}

// NewLiteral builds a literal token. Text carries the source form
// including quotes for strings and runes.
func NewLiteral(lit LitKind, text string, span Span) Token {
	return Token{Kind: Literal, Text: text, Lit: lit, Span: span}
}

// NewGroup builds a group token around a nested vector.
func NewGroup(delim Delim, nested []Token, span Span) Token {
	return Token{Kind: Group, Delim: delim, Nested: nested, Span: span}
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsIdent reports whether the token is the given identifier.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}

// IsGroup reports whether the token is a group with the given delimiter.
func (t Token) IsGroup(delim Delim) bool {
	return t.Kind == Group && t.Delim == delim
}

// String returns the token in KIND(text) form for debugging and error
// messages. Groups show their delimiter pair.
func (t Token) String() string {
	if t.Kind == Group {
		return "GROUP" + t.Delim.String()
	}
	return t.Kind.String() + "(" + t.Text + ")"
}

// Clone deep-copies a token vector. Substitution mutates frames in
// place; callers that reuse a block across loop combinations clone it
// first.
func Clone(tokens []Token) []Token {
	if tokens == nil {
		return nil
	}
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = t
		if t.Kind == Group {
			out[i].Nested = Clone(t.Nested)
		}
	}
	return out
}
