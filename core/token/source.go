package token

import (
	"fmt"
	"sort"
)

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns the position in line:column form.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Source holds lexed input and maps byte offsets back to positions for
// diagnostics. The lexer builds one per input; spans stay cheap integer
// pairs and only errors pay for line lookup.
type Source struct {
	name  string
	data  []byte
	lines []int // byte offset of each line start, lines[0] == 0
}

// NewSource indexes data for position lookup. name is used in
// diagnostics only and may be empty.
func NewSource(name string, data []byte) *Source {
	lines := []int{0}
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &Source{name: name, data: data, lines: lines}
}

// Name returns the display name the source was created with.
func (s *Source) Name() string { return s.name }

// Data returns the raw input bytes.
func (s *Source) Data() []byte { return s.data }

// Position maps a byte offset to a line and column.
func (s *Source) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.data) {
		offset = len(s.data)
	}
	line := sort.Search(len(s.lines), func(i int) bool {
		return s.lines[i] > offset
	})
	return Position{
		Line:   line,
		Column: offset - s.lines[line-1] + 1,
		Offset: offset,
	}
}

// Line returns the text of the 1-based line n without its trailing
// newline, or "" when n is out of range.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	start := s.lines[n-1]
	end := len(s.data)
	if n < len(s.lines) {
		end = s.lines[n] - 1
	}
	return string(s.data[start:end])
}

// Text returns the source bytes a span covers, or "" for an invalid or
// out-of-range span.
func (s *Source) Text(sp Span) string {
	if !sp.IsValid() || sp.Start < 0 || sp.End > len(s.data) {
		return ""
	}
	return string(s.data[sp.Start:sp.End])
}
