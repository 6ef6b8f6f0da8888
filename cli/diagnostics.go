package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

// formatError prints err for one input. Errors that carry a source
// span get the offending line and a caret under the failing tokens;
// everything else prints as-is.
func formatError(w io.Writer, err error, name string, data []byte, useColor bool) {
	if err == nil {
		return
	}

	span, ok := types.SpanOf(err)
	if !ok || len(data) == 0 {
		_, _ = fmt.Fprintf(w, "%s%v\n", colorize("error: ", colorRed, useColor), err)
		return
	}

	source := token.NewSource(name, data)
	pos := source.Position(span.Start)
	_, _ = fmt.Fprintf(w, "%s%s:%s: %v\n", colorize("error: ", colorRed, useColor), name, pos, err)

	line := source.Line(pos.Line)
	if line == "" {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s\n", line)
	_, _ = fmt.Fprintf(w, "  %s\n", colorize(caretLine(line, pos.Column, span.End-span.Start), colorYellow, useColor))
}

// caretLine builds the marker row under a source line: whitespace up
// to col, then one caret per spanned byte. Tabs are kept so the
// markers line up under tab-indented code.
func caretLine(line string, col, width int) string {
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var pad strings.Builder
	for _, b := range []byte(line[:col-1]) {
		if b == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}

	if width < 1 {
		width = 1
	}
	if rest := len(line) - (col - 1); rest > 0 && width > rest {
		width = rest
	}
	return pad.String() + strings.Repeat("^", width)
}
