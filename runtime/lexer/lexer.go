// Package lexer turns template source into the token tree the
// interpreter walks: identifiers, punctuation, literals, comments, and
// nested delimiter groups. The token set is Go-flavored; anything a Go
// source file can contain lexes, and delimiter balance is the only
// structure enforced here.
package lexer

import (
	"fmt"
	"log/slog"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/splicelang/splice/core/token"
)

// ASCII character lookup tables for fast classification
var (
	isSpace      [128]bool // horizontal whitespace, newlines tracked separately
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isOpChar     [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isSpace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f'
		isDigit[i] = '0' <= ch && ch <= '9'
		letter := ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isIdentStart[i] = letter || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
	for _, ch := range []byte("+-*/%&|^<>=!:;,.~") {
		isOpChar[ch] = true
	}
}

// Operator sequences, matched longest first.
var threeByteOps = map[string]struct{}{
	"<<=": {}, ">>=": {}, "&^=": {}, "...": {},
}

var twoByteOps = map[string]struct{}{
	"==": {}, "!=": {}, "<=": {}, ">=": {}, "&&": {}, "||": {}, "<-": {},
	"++": {}, "--": {}, "+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {},
	"&=": {}, "|=": {}, "^=": {}, "<<": {}, ">>": {}, "&^": {}, ":=": {},
}

// LexError reports a lexical fault with its source position.
type LexError struct {
	Msg      string
	Pos      token.Position
	OpenedAt *token.Position // set for unclosed or mismatched delimiters
}

func (e *LexError) Error() string {
	if e.OpenedAt != nil {
		return fmt.Sprintf("%d:%d: %s (opened at %d:%d)",
			e.Pos.Line, e.Pos.Column, e.Msg, e.OpenedAt.Line, e.OpenedAt.Column)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Lexer scans one input into a token tree.
type Lexer struct {
	src     []byte
	pos     int  // current byte offset
	pending bool // a line break was crossed since the last token

	source *token.Source
	logger *slog.Logger
}

// New creates a Lexer over data. name shows up in diagnostics only.
func New(name string, data []byte) *Lexer {
	logLevel := slog.LevelInfo
	if os.Getenv("SPLICE_DEBUG_LEXER") != "" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Strip timestamp and level for cleaner trace output
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))

	return &Lexer{
		src:    data,
		source: token.NewSource(name, data),
		logger: logger,
	}
}

// frame is one level of delimiter nesting while lexing.
type frame struct {
	delim         token.Delim
	openAt        int
	newlineBefore bool // pending flag captured at the open delimiter
	tokens        []token.Token
}

// Lex scans the whole input and returns the root token vector and the
// indexed source. The first lexical fault aborts the scan.
func (l *Lexer) Lex() ([]token.Token, *token.Source, error) {
	stack := []frame{{openAt: -1}}

	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		switch {
		case ch == '\n':
			l.pending = true
			l.pos++

		case ch < 128 && isSpace[ch]:
			l.pos++

		case ch == '/' && l.peek(1) == '/':
			l.emit(&stack[len(stack)-1], l.lexLineComment())

		case ch == '/' && l.peek(1) == '*':
			tok, err := l.lexBlockComment()
			if err != nil {
				return nil, nil, err
			}
			l.emit(&stack[len(stack)-1], tok)

		case ch == '"' || ch == '`':
			tok, err := l.lexString()
			if err != nil {
				return nil, nil, err
			}
			l.emit(&stack[len(stack)-1], tok)

		case ch == '\'':
			tok, err := l.lexRune()
			if err != nil {
				return nil, nil, err
			}
			l.emit(&stack[len(stack)-1], tok)

		case ch < 128 && isDigit[ch]:
			l.emit(&stack[len(stack)-1], l.lexNumber())

		case ch == '.' && isDigitByte(l.peek(1)):
			l.emit(&stack[len(stack)-1], l.lexNumber())

		case ch < 128 && isIdentStart[ch], ch >= utf8.RuneSelf:
			tok, err := l.lexIdent()
			if err != nil {
				return nil, nil, err
			}
			l.emit(&stack[len(stack)-1], tok)

		case ch == '(' || ch == '[' || ch == '{':
			l.logger.Debug("group open", "delim", string(ch), "offset", l.pos)
			stack = append(stack, frame{
				delim:         openDelim(ch),
				openAt:        l.pos,
				newlineBefore: l.pending,
			})
			l.pending = false
			l.pos++

		case ch == ')' || ch == ']' || ch == '}':
			if len(stack) == 1 {
				return nil, nil, &LexError{
					Msg: fmt.Sprintf("unexpected %q", string(ch)),
					Pos: l.source.Position(l.pos),
				}
			}
			top := stack[len(stack)-1]
			if top.delim.Close() != ch {
				opened := l.source.Position(top.openAt)
				return nil, nil, &LexError{
					Msg:      fmt.Sprintf("expected %q, found %q", string(top.delim.Close()), string(ch)),
					Pos:      l.source.Position(l.pos),
					OpenedAt: &opened,
				}
			}
			l.logger.Debug("group close", "delim", string(ch), "offset", l.pos)
			stack = stack[:len(stack)-1]
			group := token.NewGroup(top.delim, top.tokens, token.Span{Start: top.openAt, End: l.pos + 1})
			group.NewlineBefore = top.newlineBefore
			l.pending = false
			stack[len(stack)-1].tokens = append(stack[len(stack)-1].tokens, group)
			l.pos++

		case ch < 128 && isOpChar[ch]:
			l.emit(&stack[len(stack)-1], l.lexOperator())

		default:
			return nil, nil, &LexError{
				Msg: fmt.Sprintf("unexpected character %q", string(ch)),
				Pos: l.source.Position(l.pos),
			}
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		opened := l.source.Position(top.openAt)
		return nil, nil, &LexError{
			Msg:      fmt.Sprintf("unclosed %q", string(top.delim.Open())),
			Pos:      l.source.Position(len(l.src)),
			OpenedAt: &opened,
		}
	}
	return stack[0].tokens, l.source, nil
}

// emit appends a token to the open frame, attaching the pending
// newline hint.
func (l *Lexer) emit(f *frame, tok token.Token) {
	tok.NewlineBefore = l.pending
	l.pending = false
	f.tokens = append(f.tokens, tok)
}

func (l *Lexer) peek(ahead int) byte {
	if l.pos+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.pos+ahead]
}

func (l *Lexer) lexLineComment() token.Token {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	return token.Token{
		Kind: token.Comment,
		Text: string(l.src[start:l.pos]),
		Span: token.Span{Start: start, End: l.pos},
	}
}

func (l *Lexer) lexBlockComment() (token.Token, error) {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			return token.Token{
				Kind: token.Comment,
				Text: string(l.src[start:l.pos]),
				Span: token.Span{Start: start, End: l.pos},
			}, nil
		}
		l.pos++
	}
	return token.Token{}, &LexError{
		Msg: "comment not terminated",
		Pos: l.source.Position(start),
	}
}

func (l *Lexer) lexString() (token.Token, error) {
	start := l.pos
	quote := l.src[l.pos]
	l.pos++

	if quote == '`' {
		for l.pos < len(l.src) {
			if l.src[l.pos] == '`' {
				l.pos++
				return token.NewLiteral(token.LitString, string(l.src[start:l.pos]),
					token.Span{Start: start, End: l.pos}), nil
			}
			l.pos++
		}
		return token.Token{}, &LexError{
			Msg: "raw string literal not terminated",
			Pos: l.source.Position(start),
		}
	}

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '\n':
			return token.Token{}, &LexError{
				Msg: "string literal not terminated",
				Pos: l.source.Position(start),
			}
		case quote:
			l.pos++
			return token.NewLiteral(token.LitString, string(l.src[start:l.pos]),
				token.Span{Start: start, End: l.pos}), nil
		default:
			l.pos++
		}
	}
	return token.Token{}, &LexError{
		Msg: "string literal not terminated",
		Pos: l.source.Position(start),
	}
}

func (l *Lexer) lexRune() (token.Token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '\n':
			return token.Token{}, &LexError{
				Msg: "rune literal not terminated",
				Pos: l.source.Position(start),
			}
		case '\'':
			l.pos++
			return token.NewLiteral(token.LitChar, string(l.src[start:l.pos]),
				token.Span{Start: start, End: l.pos}), nil
		default:
			l.pos++
		}
	}
	return token.Token{}, &LexError{
		Msg: "rune literal not terminated",
		Pos: l.source.Position(start),
	}
}

// lexNumber scans a Go numeric literal in any base, including floats
// and exponents. Shape errors are left for the value layer; the lexer
// only finds the end of the literal.
func (l *Lexer) lexNumber() token.Token {
	start := l.pos
	lit := token.LitInt

	if l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.pos += 2
		l.consumeDigits(isHexByte)
		if l.current() == '.' {
			lit = token.LitFloat
			l.pos++
			l.consumeDigits(isHexByte)
		}
		if l.current() == 'p' || l.current() == 'P' {
			lit = token.LitFloat
			l.consumeExponent()
		}
	} else {
		if l.src[l.pos] == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B' || l.peek(1) == 'o' || l.peek(1) == 'O') {
			l.pos += 2
		}
		l.consumeDigits(isDigitByte)
		if l.current() == '.' && !isDotDotDot(l.src, l.pos) {
			lit = token.LitFloat
			l.pos++
			l.consumeDigits(isDigitByte)
		}
		if l.current() == 'e' || l.current() == 'E' {
			lit = token.LitFloat
			l.consumeExponent()
		}
	}

	if l.current() == 'i' {
		lit = token.LitOther
		l.pos++
	}

	return token.NewLiteral(lit, string(l.src[start:l.pos]),
		token.Span{Start: start, End: l.pos})
}

func (l *Lexer) consumeDigits(valid func(byte) bool) {
	for l.pos < len(l.src) && (valid(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func (l *Lexer) consumeExponent() {
	l.pos++
	if l.current() == '+' || l.current() == '-' {
		l.pos++
	}
	l.consumeDigits(isDigitByte)
}

func (l *Lexer) current() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) lexIdent() (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch < 128 {
			if !isIdentPart[ch] {
				break
			}
			l.pos++
			continue
		}
		r, size := utf8.DecodeRune(l.src[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.pos += size
	}
	if l.pos == start {
		return token.Token{}, &LexError{
			Msg: fmt.Sprintf("unexpected character %q", string(l.src[start])),
			Pos: l.source.Position(start),
		}
	}
	return token.NewIdent(string(l.src[start:l.pos]),
		token.Span{Start: start, End: l.pos}), nil
}

func (l *Lexer) lexOperator() token.Token {
	start := l.pos
	if l.pos+3 <= len(l.src) {
		if _, ok := threeByteOps[string(l.src[l.pos:l.pos+3])]; ok {
			l.pos += 3
			return token.NewPunct(string(l.src[start:l.pos]), token.Span{Start: start, End: l.pos})
		}
	}
	if l.pos+2 <= len(l.src) {
		if _, ok := twoByteOps[string(l.src[l.pos:l.pos+2])]; ok {
			l.pos += 2
			return token.NewPunct(string(l.src[start:l.pos]), token.Span{Start: start, End: l.pos})
		}
	}
	l.pos++
	return token.NewPunct(string(l.src[start:l.pos]), token.Span{Start: start, End: l.pos})
}

func openDelim(ch byte) token.Delim {
	switch ch {
	case '[':
		return token.Bracket
	case '{':
		return token.Brace
	default:
		return token.Paren
	}
}

func isDigitByte(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexByte(ch byte) bool {
	return isDigitByte(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isDotDotDot(src []byte, pos int) bool {
	return pos+2 < len(src) && src[pos] == '.' && src[pos+1] == '.' && src[pos+2] == '.'
}
