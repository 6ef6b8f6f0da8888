// Package parser recognizes splice invocations in a lexed token tree
// and builds the nodes the expansion pipeline consumes. Everything
// outside an invocation is left as passthrough spans so the generator
// can copy those bytes verbatim.
package parser

import (
	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
	"github.com/splicelang/splice/runtime/notices"
)

// Marker is the identifier that introduces an invocation at the top
// level of a template file.
const Marker = "splice"

const (
	semicolonDeprecated = "Using semicolons as separators is deprecated, use commas instead"
	semicolonSince      = "0.0.5"

	bracketDeprecated = "Using bracket literals as alias values is deprecated, use concat(...) instead"
	bracketSince      = "0.0.4"
)

// Segment is one slice of a template file: either a parsed invocation
// or a passthrough byte range copied to the output untouched.
type Segment struct {
	Invocation *ast.Invocation // nil for passthrough
	Span       token.Span      // passthrough byte range
}

// Parser recognizes invocations in one file's token tree.
type Parser struct {
	source   *token.Source
	reporter *notices.Reporter
}

// New builds a parser for source. reporter collects deprecation
// notices and may be nil.
func New(source *token.Source, reporter *notices.Reporter) *Parser {
	return &Parser{source: source, reporter: reporter}
}

// ParseFile splits the top-level token stream into passthrough spans
// and parsed invocations, in file order. Only a top-level Marker
// identifier directly followed by a parenthesized group starts an
// invocation; the marker anywhere else passes through.
func (p *Parser) ParseFile(toks []token.Token) ([]Segment, error) {
	var segments []Segment
	prev := 0

	for i := 0; i < len(toks); i++ {
		if !toks[i].IsIdent(Marker) || i+1 >= len(toks) || !toks[i+1].IsGroup(token.Paren) {
			continue
		}
		marker, group := toks[i], toks[i+1]

		if marker.Span.Start > prev {
			segments = append(segments, Segment{Span: token.Span{Start: prev, End: marker.Span.Start}})
		}
		inv, err := p.parseInvocation(marker, group)
		if err != nil {
			return nil, err
		}
		segments = append(segments, Segment{Invocation: inv})
		prev = group.Span.End
		i++
	}

	if end := len(p.source.Data()); end > prev {
		segments = append(segments, Segment{Span: token.Span{Start: prev, End: end}})
	}
	return segments, nil
}

type separatorStyle int

const (
	sepUnset separatorStyle = iota
	sepComma
	sepSemicolon
)

// invocationParser walks the tokens between one invocation's
// parentheses.
type invocationParser struct {
	*Parser
	toks    []token.Token
	pos     int
	sep     separatorStyle
	closing token.Span // the group's closing parenthesis, for end-of-input errors
}

func (ip *invocationParser) more() bool { return ip.pos < len(ip.toks) }

func (ip *invocationParser) current() token.Token { return ip.toks[ip.pos] }

func (ip *invocationParser) advance() token.Token {
	t := ip.toks[ip.pos]
	ip.pos++
	return t
}

func (p *Parser) parseInvocation(marker, group token.Token) (*ast.Invocation, error) {
	ip := &invocationParser{
		Parser:  p,
		toks:    group.Nested,
		closing: token.Span{Start: group.Span.End - 1, End: group.Span.End},
	}

	var loops []*ast.Loop
	for ip.more() && ip.current().IsIdent("for") {
		loop, err := ip.parseLoop()
		if err != nil {
			return nil, err
		}
		loops = append(loops, loop)
		if ip.more() && ip.current().IsPunct(",") {
			ip.advance()
		}
	}

	spec := &ast.AliasSpec{}
	for ip.more() && !ip.atBlock() {
		item, err := ip.parseItem()
		if err != nil {
			return nil, err
		}
		spec.Items = append(spec.Items, item)

		if !ip.more() || ip.atBlock() {
			break
		}
		tok := ip.current()
		var style separatorStyle
		switch {
		case tok.IsPunct(","):
			style = sepComma
		case tok.IsPunct(";"):
			style = sepSemicolon
		default:
			return nil, ip.errUnexpected(tok, "',' between alias specifications")
		}
		if err := ip.setSeparator(style, tok.Span); err != nil {
			return nil, err
		}
		ip.advance()
	}

	if !ip.more() {
		return nil, ip.errMissing("a code block", ip.closing)
	}
	blk := ip.advance()
	if !blk.IsGroup(token.Brace) {
		return nil, ip.errUnexpected(blk, "a code block")
	}
	if ip.more() && (ip.current().IsPunct(",") || ip.current().IsPunct(";")) {
		ip.advance()
	}
	if ip.more() {
		return nil, ip.errUnexpected(ip.current(), "the end of the invocation after the code block")
	}

	span := marker.Span.Union(group.Span)
	return ast.NewInvocation(loops, spec, blk.Nested, blk.Span, span), nil
}

// atBlock reports whether the cursor sits on the invocation's code
// block: a brace group in final position. Brace groups elsewhere are
// ordinary value tokens, composite literals mostly.
func (ip *invocationParser) atBlock() bool {
	return ip.pos == len(ip.toks)-1 && ip.current().IsGroup(token.Brace)
}

func (ip *invocationParser) setSeparator(style separatorStyle, at token.Span) error {
	if ip.sep == sepUnset {
		ip.sep = style
		if style == sepSemicolon {
			ip.reporter.Add(semicolonDeprecated, semicolonSince)
		}
		return nil
	}
	if ip.sep != style {
		return ip.errMixedSeparators(at)
	}
	return nil
}

func (ip *invocationParser) parseLoop() (*ast.Loop, error) {
	forTok := ip.advance()

	if !ip.more() {
		return nil, ip.errMissing("a loop pattern after 'for'", ip.closing)
	}
	pat, err := ip.parsePattern(ip.advance())
	if err != nil {
		return nil, err
	}

	if !ip.more() {
		return nil, ip.errMissing("'in' after the loop pattern", ip.closing)
	}
	if in := ip.advance(); !in.IsIdent("in") {
		return nil, ip.errUnexpected(in, "'in' after the loop pattern")
	}

	if !ip.more() {
		return nil, ip.errMissing("a bracketed value list after 'in'", ip.closing)
	}
	src := ip.advance()
	if !src.IsGroup(token.Bracket) {
		return nil, ip.errUnexpected(src, "a bracketed value list")
	}
	values, err := ip.parseLoopValues(src.Nested, src.Span)
	if err != nil {
		return nil, err
	}

	return ast.NewLoop(pat, values, forTok.Span.Union(src.Span)), nil
}

func (ip *invocationParser) parsePattern(tok token.Token) (*ast.Pattern, error) {
	switch {
	case tok.Kind == token.Ident && types.IsIdent(tok.Text):
		return ast.NewNamePattern(tok.Text, tok.Span), nil

	case tok.IsGroup(token.Paren):
		if len(tok.Nested) == 0 {
			return nil, ip.errMissing("a pattern inside the tuple", tok.Span)
		}
		runs, commas := splitOnComma(tok.Nested)
		runs = dropTrailingEmpty(runs)
		elems := make([]*ast.Pattern, 0, len(runs))
		for i, run := range runs {
			if len(run) == 0 {
				at := tok.Span
				if i > 0 {
					at = commas[i-1].Span
				}
				return nil, ip.errMissing("a pattern", at)
			}
			if len(run) > 1 {
				return nil, ip.errUnexpected(run[1], "',' between tuple patterns")
			}
			elem, err := ip.parsePattern(run[0])
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return ast.NewTuplePattern(elems, tok.Span), nil

	default:
		return nil, ip.errUnexpected(tok, "a loop pattern")
	}
}

func (ip *invocationParser) parseLoopValues(toks []token.Token, listSpan token.Span) ([]*ast.LoopValue, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	runs, commas := splitOnComma(toks)
	runs = dropTrailingEmpty(runs)

	var values []*ast.LoopValue
	for i, run := range runs {
		if len(run) == 0 {
			at := listSpan
			if i > 0 {
				at = commas[i-1].Span
			}
			return nil, ip.errMissing("a value", at)
		}
		v, err := ip.parseLoopValue(run)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (ip *invocationParser) parseLoopValue(run []token.Token) (*ast.LoopValue, error) {
	if len(run) == 1 && run[0].IsGroup(token.Paren) {
		elems, err := ip.parseLoopValues(run[0].Nested, run[0].Span)
		if err != nil {
			return nil, err
		}
		return ast.NewTupleValue(elems, run[0].Span), nil
	}
	expr, err := ip.parseExprRun(run)
	if err != nil {
		return nil, err
	}
	return ast.NewLeafValue(expr, spanOf(run)), nil
}

func (ip *invocationParser) parseItem() (*ast.AliasItem, error) {
	name := ip.advance()
	if name.Kind != token.Ident || !types.IsIdent(name.Text) {
		return nil, ip.errUnexpected(name, "an alias name")
	}

	if !ip.more() {
		return nil, ip.errMissing("'=' after the alias name", ip.closing)
	}
	if eq := ip.advance(); !eq.IsPunct("=") {
		return nil, ip.errUnexpected(eq, "'=' after the alias name")
	}

	run := ip.collectValueRun()
	if len(run) == 0 {
		at := ip.closing
		if ip.more() {
			at = ip.current().Span
		}
		return nil, ip.errMissing("a value after '='", at)
	}
	value, err := ip.parseExprRun(run)
	if err != nil {
		return nil, err
	}

	return &ast.AliasItem{Alias: name.Text, AliasSpan: name.Span, Value: value}, nil
}

// collectValueRun gathers an alias value's tokens. The run ends at a
// top-level separator or at the code block, which is only ever the
// final token of the invocation.
func (ip *invocationParser) collectValueRun() []token.Token {
	start := ip.pos
	for ip.more() && !ip.current().IsPunct(",") && !ip.current().IsPunct(";") && !ip.atBlock() {
		ip.advance()
	}
	return ip.toks[start:ip.pos]
}

// parseExprRun reads one expression from a token run: a call when the
// run is exactly a name and a parenthesized group, the legacy bracket
// literal desugared to concat, or a classified value otherwise.
func (ip *invocationParser) parseExprRun(run []token.Token) (ast.Expr, error) {
	if len(run) == 0 {
		return nil, ip.errMissing("a value", ip.closing)
	}

	if len(run) == 2 && run[0].Kind == token.Ident && types.IsIdent(run[0].Text) && run[1].IsGroup(token.Paren) {
		args, err := ip.parseArgs(run[1].Nested, run[1].Span)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(run[0].Text, args, run[1].Nested, run[0].Span.Union(run[1].Span)), nil
	}

	if len(run) == 1 && run[0].IsGroup(token.Bracket) {
		args, err := ip.parseArgs(run[0].Nested, run[0].Span)
		if err != nil {
			return nil, err
		}
		ip.reporter.Add(bracketDeprecated, bracketSince)
		return ast.NewCall("concat", args, run[0].Nested, run[0].Span), nil
	}

	span := spanOf(run)
	kind := types.Classify(run)
	val, err := types.FromTokens(kind, run, span)
	if err != nil {
		return nil, ip.errInvalidValue(err.Error(), span)
	}
	return ast.NewValueExpr(val), nil
}

func (ip *invocationParser) parseArgs(toks []token.Token, groupSpan token.Span) ([]ast.Expr, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	runs, commas := splitOnComma(toks)
	runs = dropTrailingEmpty(runs)

	var args []ast.Expr
	for i, run := range runs {
		if len(run) == 0 {
			at := groupSpan
			if i > 0 {
				at = commas[i-1].Span
			}
			return nil, ip.errMissing("an argument", at)
		}
		arg, err := ip.parseExprRun(run)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// splitOnComma splits toks on top-level commas, returning the runs
// between them and the comma tokens for diagnostics. A slice of n
// commas yields n+1 runs, empty runs included.
func splitOnComma(toks []token.Token) ([][]token.Token, []token.Token) {
	var runs [][]token.Token
	var commas []token.Token
	start := 0
	for i, t := range toks {
		if t.IsPunct(",") {
			runs = append(runs, toks[start:i])
			commas = append(commas, t)
			start = i + 1
		}
	}
	runs = append(runs, toks[start:])
	return runs, commas
}

// dropTrailingEmpty removes the empty final run a trailing comma
// leaves behind.
func dropTrailingEmpty(runs [][]token.Token) [][]token.Token {
	if n := len(runs); n > 1 && len(runs[n-1]) == 0 {
		return runs[:n-1]
	}
	return runs
}

func spanOf(run []token.Token) token.Span {
	var span token.Span
	for _, t := range run {
		span = span.Union(t.Span)
	}
	return span
}
