package parser

import (
	"fmt"
	"strings"

	"github.com/splicelang/splice/core/token"
)

// ErrorType classifies parse failures so callers and tests can branch on
// the failure class without matching on message text.
type ErrorType int

const (
	// UnexpectedToken means the parser saw a token that cannot start or
	// continue the current production.
	UnexpectedToken ErrorType = iota
	// MissingToken means a required token was absent, usually at the end
	// of the invocation.
	MissingToken
	// MixedSeparators means one alias specification used both comma and
	// semicolon separators.
	MixedSeparators
	// InvalidValue means an alias value or argument could not be read as
	// any value form.
	InvalidValue
)

func (t ErrorType) String() string {
	switch t {
	case UnexpectedToken:
		return "unexpected token"
	case MissingToken:
		return "missing token"
	case MixedSeparators:
		return "mixed separators"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown error"
	}
}

// ParseError describes a syntax fault in a splice invocation. It renders
// with the offending source line and a caret so the failure can be located
// without opening the file.
type ParseError struct {
	Type        ErrorType
	Message     string
	Span        token.Span
	Source      *token.Source
	Suggestions []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Type, e.Message)

	if e.Source != nil && e.Span.IsValid() {
		pos := e.Source.Position(e.Span.Start)
		fmt.Fprintf(&b, "\n  --> %d:%d\n", pos.Line, pos.Column)
		b.WriteString("   |\n")

		line := e.Source.Line(pos.Line)
		fmt.Fprintf(&b, "%2d | %s\n", pos.Line, line)

		b.WriteString("   | ")
		b.WriteString(strings.Repeat(" ", pos.Column-1))
		b.WriteString(caret(e.Span, line, pos.Column))
	}

	for _, s := range e.Suggestions {
		fmt.Fprintf(&b, "\nhelp: %s", s)
	}
	return b.String()
}

// caret underlines the erroneous span, clamped to the displayed line.
func caret(span token.Span, line string, col int) string {
	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	if max := len(line) - col + 1; width > max && max > 0 {
		width = max
	}
	return strings.Repeat("^", width)
}

func (p *Parser) errUnexpected(got token.Token, expected string) *ParseError {
	return &ParseError{
		Type:    UnexpectedToken,
		Message: fmt.Sprintf("expected %s, found %s", expected, describe(got)),
		Span:    got.Span,
		Source:  p.source,
	}
}

// describe names a token for error messages.
func describe(t token.Token) string {
	if t.Kind == token.Group {
		return fmt.Sprintf("a '%c...%c' group", t.Delim.Open(), t.Delim.Close())
	}
	return fmt.Sprintf("%q", t.Text)
}

func (p *Parser) errMissing(expected string, at token.Span) *ParseError {
	return &ParseError{
		Type:    MissingToken,
		Message: fmt.Sprintf("expected %s", expected),
		Span:    at,
		Source:  p.source,
	}
}

func (p *Parser) errMixedSeparators(at token.Span) *ParseError {
	return &ParseError{
		Type:        MixedSeparators,
		Message:     "alias specifications must use a single separator style",
		Span:        at,
		Source:      p.source,
		Suggestions: []string{"replace the semicolons with commas"},
	}
}

func (p *Parser) errInvalidValue(msg string, at token.Span) *ParseError {
	return &ParseError{
		Type:    InvalidValue,
		Message: msg,
		Span:    at,
		Source:  p.source,
	}
}
