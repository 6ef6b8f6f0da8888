// Package runtime drives the splice pipeline: lex a template, parse
// its invocations, expand loops into combinations, resolve and
// evaluate each combination's bindings, substitute them into a copy of
// the code block, and assemble the rewritten file.
package runtime

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"go/format"
	"log/slog"
	"strings"

	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
	"github.com/splicelang/splice/runtime/eval"
	"github.com/splicelang/splice/runtime/expand"
	_ "github.com/splicelang/splice/runtime/funcs" // register the built-in function library
	"github.com/splicelang/splice/runtime/lexer"
	"github.com/splicelang/splice/runtime/notices"
	"github.com/splicelang/splice/runtime/parser"
	"github.com/splicelang/splice/runtime/resolver"
	"github.com/splicelang/splice/runtime/subst"
)

// Options configures how a template is processed.
type Options struct {
	Name     string            // input name used in diagnostics
	Funcs    *types.Registry   // function library; nil selects the shared global registry
	Reporter *notices.Reporter // collects deprecation notices; nil drops them
	Raw      bool              // skip the go/format pass on the assembled output
	Logger   *slog.Logger      // pipeline tracing; nil uses the default logger
}

// Process rewrites one template: bytes outside invocations pass
// through verbatim, every splice invocation is replaced by its
// generated blocks in combination order. Deprecation notices collected
// while parsing are emitted as comment lines ahead of the first
// generated block. The assembled file is formatted with go/format
// unless Raw is set; a file that does not parse as Go is returned
// unformatted with a warning.
func Process(data []byte, opts Options) ([]byte, error) {
	if opts.Name == "" {
		opts.Name = "input"
	}
	if opts.Funcs == nil {
		opts.Funcs = types.Global()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	toks, source, err := lexer.New(opts.Name, data).Lex()
	if err != nil {
		return nil, err
	}

	segments, err := parser.New(source, opts.Reporter).ParseFile(toks)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed template", "input", opts.Name, "segments", len(segments))

	var out strings.Builder
	first := true
	for _, seg := range segments {
		if seg.Invocation == nil {
			out.WriteString(source.Text(seg.Span))
			continue
		}

		if first {
			writeGenerated(&out, token.Render(opts.Reporter.Comments()))
			first = false
		}

		seed, err := NewSeed()
		if err != nil {
			return nil, err
		}
		env := types.NewEnvironment(opts.Funcs, seed)

		blocks, err := Run(seg.Invocation, env)
		if err != nil {
			return nil, err
		}
		logger.Debug("expanded invocation", "input", opts.Name, "blocks", len(blocks))
		for _, block := range blocks {
			writeGenerated(&out, token.Render(block))
		}
	}

	if opts.Raw {
		return []byte(out.String()), nil
	}
	formatted, err := format.Source([]byte(out.String()))
	if err != nil {
		logger.Warn("assembled output is not valid Go, emitting unformatted",
			"input", opts.Name, "error", err)
		return []byte(out.String()), nil
	}
	return formatted, nil
}

// Run executes one invocation against an environment and returns the
// rewritten code block once per loop combination, in combination
// order. An invocation without loops yields exactly one block.
func Run(inv *ast.Invocation, env *types.Environment) ([][]token.Token, error) {
	specs, err := expand.Expand(inv)
	if err != nil {
		return nil, err
	}

	blocks := make([][]token.Token, 0, len(specs))
	for _, spec := range specs {
		scope := resolver.NewScope()
		if err := resolver.New(env).ResolveSpec(spec, scope); err != nil {
			return nil, err
		}

		bindings, err := eval.EvalSpec(eval.NewContext(env, scope.Metadata()), spec)
		if err != nil {
			return nil, err
		}

		block, err := subst.Substitute(token.Clone(inv.Block), bindings)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// writeGenerated appends one generated fragment, separated from
// whatever precedes it by a line break. Surrounding whitespace is the
// formatter's concern, not the renderer's.
func writeGenerated(out *strings.Builder, s string) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return
	}
	if prev := out.String(); len(prev) > 0 && prev[len(prev)-1] != '\n' {
		out.WriteByte('\n')
	}
	out.WriteString(trimmed)
}

// NewSeed mints the uniqueness seed an invocation's environment
// carries; the hash built-in mixes it into every digest. Callers
// driving Run themselves draw one seed per invocation.
func NewSeed() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate invocation seed: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
