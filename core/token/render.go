package token

import "strings"

// Render reconstructs source text from a token vector.
//
// Spacing is conservative rather than pretty: a newline separates tokens
// whose NewlineBefore hint is set, a single space separates any pair that
// could otherwise fuse into a different token, and everything else is
// joined tight. Final formatting of generated files belongs to go/format.
func Render(tokens []Token) string {
	var b strings.Builder
	renderInto(&b, tokens)
	return b.String()
}

// RenderOne renders a single token.
func RenderOne(t Token) string {
	var b strings.Builder
	renderToken(&b, t)
	return b.String()
}

func renderInto(b *strings.Builder, tokens []Token) {
	for i, t := range tokens {
		if t.NewlineBefore {
			if !endsWithNewline(b) {
				b.WriteByte('\n')
			}
		} else if i > 0 && needSpace(tokens[i-1], t) {
			b.WriteByte(' ')
		}
		renderToken(b, t)
	}
}

func renderToken(b *strings.Builder, t Token) {
	if t.Kind == Group {
		b.WriteByte(t.Delim.Open())
		renderInto(b, t.Nested)
		if t.Delim == Brace && !endsWithNewline(b) && len(t.Nested) > 0 {
			// Statements may end a brace group without a terminator;
			// a newline keeps semicolon insertion intact.
			b.WriteByte('\n')
		}
		b.WriteByte(t.Delim.Close())
		return
	}
	b.WriteString(t.Text)
	if t.Kind == Comment && strings.HasPrefix(t.Text, "//") {
		// A line comment swallows the rest of the line.
		b.WriteByte('\n')
	}
}

// needSpace reports whether leaving prev and next adjacent could fuse
// them into a single token with a different meaning.
func needSpace(prev, next Token) bool {
	if prev.Kind == Comment && strings.HasPrefix(prev.Text, "//") {
		return false // renderToken already emitted the newline
	}
	if wordy(prev) && wordy(next) {
		return true // foo bar, return 5, case x
	}
	if prev.Kind == Punct && next.Kind == Punct {
		return true // "<" "-" is not "<-"
	}
	if prev.Kind == Literal && next.Kind == Punct && strings.HasPrefix(next.Text, ".") {
		return true // "1" "." would scan as a float
	}
	if prev.IsPunct(".") && next.Kind == Literal {
		return true // "." "5" would scan as a float
	}
	return false
}

func wordy(t Token) bool {
	return t.Kind == Ident || t.Kind == Literal
}

func endsWithNewline(b *strings.Builder) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == '\n'
}
