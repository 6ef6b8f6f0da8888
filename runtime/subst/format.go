package subst

import (
	"strings"
	"unicode"

	"github.com/splicelang/splice/core/types"
)

// Bindings is the alias lookup substitution reads. The evaluated
// bindings of a combination implement it.
type Bindings interface {
	Lookup(name string) (types.Value, bool)
}

// FormatPlaceholders rewrites %name% placeholders in s. Whitespace
// between the delimiters is ignored, so "% name %" works too. An
// undefined name stays verbatim, percent signs included; "%%" collapses
// to one literal percent sign; an unterminated placeholder stays
// verbatim.
func FormatPlaceholders(s string, bindings Bindings) string {
	var out, name, text strings.Builder
	inPlaceholder := false

	for _, r := range s {
		switch {
		case r == '%' && inPlaceholder:
			if text.Len() == 1 {
				// Nothing since the opening sign: a literal percent.
				out.WriteByte('%')
			} else if v, ok := bindings.Lookup(name.String()); ok {
				out.WriteString(v.Render())
			} else {
				out.WriteString(text.String())
				out.WriteByte('%')
			}
			inPlaceholder = false
			name.Reset()
			text.Reset()
		case r == '%':
			inPlaceholder = true
			text.WriteByte('%')
		case inPlaceholder && unicode.IsSpace(r):
			text.WriteRune(r)
		case inPlaceholder:
			name.WriteRune(r)
			text.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	if inPlaceholder {
		out.WriteString(text.String())
	}
	return out.String()
}
