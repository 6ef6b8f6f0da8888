package funcs

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

// Upper uppercases the input.
func Upper(input string) string {
	return strings.ToUpper(input)
}

// Lower lowercases the input.
func Lower(input string) string {
	return strings.ToLower(input)
}

// SnakeCase converts the input to snake_case.
func SnakeCase(input string) string {
	words := splitWords(input)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// CamelCase converts the input to camelCase.
func CamelCase(input string) string {
	words := splitWords(input)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// PascalCase converts the input to PascalCase.
func PascalCase(input string) string {
	var b strings.Builder
	for _, w := range splitWords(input) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// splitWords cuts the input into case-conversion words. Boundaries are
// non-alphanumeric runs (dropped), a lower-or-digit to upper transition,
// and the last upper of an upper run when a lower follows, so acronyms
// stay whole: "parseHTTPHeader" -> [parse, HTTP, Header].
func splitWords(input string) []string {
	var words []string
	var cur []rune

	runes := []rune(input)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && unicode.IsUpper(r) {
			prev := cur[len(cur)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Normalize renders the input into identifier-safe form:
//
//   - characters illegal in an identifier become underscores, one per
//     run of illegal characters;
//   - underscore runs already in the input are preserved;
//   - leading and trailing underscores, generated or original, are
//     stripped;
//   - a leading underscore is added back when the result would start
//     with a digit;
//   - an input with nothing salvageable becomes "_".
func Normalize(input string) string {
	runes := []rune(input)
	var out []rune
	inserted := false

	for i, r := range runes {
		isFirst := len(out) == 0
		isLast := i == len(runes)-1
		strip := isFirst || isLast

		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if len(out) == 0 && unicode.IsDigit(r) && !inserted {
				out = append(out, '_')
			} else if r == '_' && strip {
				continue
			}
			out = append(out, r)
			inserted = false
		case !inserted && !strip:
			out = append(out, '_')
			inserted = true
		}
	}

	if inserted {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		out = append(out, '_')
	}
	return string(out)
}

// HashDigits digests the input mixed with the invocation seed and
// renders the first eight digest bytes as base-10 digits. The same
// seed and input always produce the same digits; a fresh seed shifts
// every hash in the invocation at once.
func HashDigits(seed uint64, input string) string {
	buf := make([]byte, 8+len(input))
	binary.BigEndian.PutUint64(buf, seed)
	copy(buf[8:], input)
	sum := blake2b.Sum256(buf)
	return strconv.FormatUint(binary.BigEndian.Uint64(sum[:8]), 10)
}

// Concat joins the inputs with no separator.
func Concat(inputs []string) string {
	return strings.Join(inputs, "")
}
