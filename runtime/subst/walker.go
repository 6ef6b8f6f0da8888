// Package subst rewrites code blocks. A generic stack walker traverses
// the token tree and lets a visitor replace single tokens with token
// runs; the alias visitor built on top substitutes bound identifiers,
// formats string and comment placeholders, and revalidates the block
// after every splice.
package subst

import (
	"github.com/splicelang/splice/core/invariant"
	"github.com/splicelang/splice/core/token"
)

type op uint8

const (
	opContinue op = iota
	opSkip
	opReplace
)

// Action is a visitor's decision about the token or group at hand.
type Action struct {
	op     op
	tokens []token.Token
}

// Continue leaves the token alone and moves on.
func Continue() Action { return Action{op: opContinue} }

// Skip drops the token, group contents included.
func Skip() Action { return Action{op: opSkip} }

// Replace splices tokens in place of the token. The cursor lands past
// the spliced run, so replacements are never revisited. An empty
// replacement removes the token.
func Replace(tokens []token.Token) Action {
	return Action{op: opReplace, tokens: tokens}
}

// Visitor hooks into the walk. Every hook may also fail, which aborts
// the walk with that error.
type Visitor interface {
	// VisitToken sees every non-group token.
	VisitToken(w *Walker, tok token.Token) (Action, error)
	// VisitGroup sees a group token before the walker descends into it.
	// Replace swaps the whole group without descending.
	VisitGroup(w *Walker, tok token.Token) (Action, error)
	// ExitGroup sees a group's rebuilt contents once they are walked,
	// and the root vector at the very end. Replace swaps the contents,
	// Skip drops the group from its parent.
	ExitGroup(w *Walker, tokens []token.Token) (Action, error)
	// AfterReplace runs after every splice the walker performs.
	AfterReplace(w *Walker) error
}

// NopVisitor is a Visitor that continues everywhere. Embed it to
// override only the hooks a visitor needs.
type NopVisitor struct{}

func (NopVisitor) VisitToken(*Walker, token.Token) (Action, error) { return Continue(), nil }
func (NopVisitor) VisitGroup(*Walker, token.Token) (Action, error) { return Continue(), nil }
func (NopVisitor) ExitGroup(*Walker, []token.Token) (Action, error) {
	return Continue(), nil
}
func (NopVisitor) AfterReplace(*Walker) error { return nil }

// frame is one level of the traversal: a token vector and the cursor
// into it.
type frame struct {
	idx    int
	tokens []token.Token
}

func (f *frame) exhausted() bool { return f.idx >= len(f.tokens) }

// Walker drives a visitor over a token tree with an explicit frame
// stack, one frame per nested group.
type Walker struct {
	visitor Visitor
	stack   []frame
}

// NewWalker builds a walker around a visitor.
func NewWalker(v Visitor) *Walker {
	invariant.NotNil(v, "visitor")
	return &Walker{visitor: v}
}

// Walk traverses tokens and returns the rewritten vector. The walker
// splices in place; callers that reuse the input clone it first.
func (w *Walker) Walk(tokens []token.Token) ([]token.Token, error) {
	w.stack = append(w.stack[:0], frame{tokens: tokens})

	for {
		invariant.Invariant(len(w.stack) > 0, "walker stack must not be empty")
		f := w.top()

		switch {
		case f.exhausted() && len(w.stack) == 1:
			act, err := w.visitor.ExitGroup(w, f.tokens)
			if err != nil {
				return nil, err
			}
			switch act.op {
			case opSkip:
				return nil, nil
			case opReplace:
				f.tokens = act.tokens
				if err := w.visitor.AfterReplace(w); err != nil {
					return nil, err
				}
			}
			return f.tokens, nil

		case f.exhausted():
			act, err := w.visitor.ExitGroup(w, f.tokens)
			if err != nil {
				return nil, err
			}
			switch act.op {
			case opContinue:
				w.popFold()
				w.top().idx++
			case opSkip:
				w.popRemove()
			case opReplace:
				f.tokens = act.tokens
				w.popFold()
				w.top().idx++
				if err := w.visitor.AfterReplace(w); err != nil {
					return nil, err
				}
			}

		case f.tokens[f.idx].Kind == token.Group:
			group := f.tokens[f.idx]
			act, err := w.visitor.VisitGroup(w, group)
			if err != nil {
				return nil, err
			}
			switch act.op {
			case opContinue:
				w.stack = append(w.stack, frame{tokens: group.Nested})
			case opSkip:
				f.remove()
			case opReplace:
				if err := w.splice(f, act.tokens); err != nil {
					return nil, err
				}
			}

		default:
			act, err := w.visitor.VisitToken(w, f.tokens[f.idx])
			if err != nil {
				return nil, err
			}
			switch act.op {
			case opContinue:
				f.idx++
			case opSkip:
				f.remove()
			case opReplace:
				if err := w.splice(f, act.tokens); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (w *Walker) top() *frame {
	return &w.stack[len(w.stack)-1]
}

// splice replaces the current token with a run. The first spliced token
// inherits the replaced token's newline hint so statement boundaries
// survive; the cursor lands past the run, or stays put when the run is
// empty so the shifted-in token is visited next.
func (w *Walker) splice(f *frame, replacement []token.Token) error {
	repl := append([]token.Token(nil), replacement...)
	if len(repl) > 0 {
		repl[0].NewlineBefore = f.tokens[f.idx].NewlineBefore
	}

	rest := f.tokens[f.idx+1:]
	f.tokens = append(f.tokens[:f.idx], append(repl, rest...)...)
	if len(repl) > 0 {
		f.idx += len(repl)
	}
	return w.visitor.AfterReplace(w)
}

// remove drops the current token without advancing, so the shifted-in
// token is visited next.
func (f *frame) remove() {
	f.tokens = append(f.tokens[:f.idx], f.tokens[f.idx+1:]...)
}

// popFold folds the finished frame back into its parent as a rebuilt
// group token, preserving the original group's delimiter, span and
// newline hint. The parent cursor still points at the group.
func (w *Walker) popFold() {
	child := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	parent := w.top()
	orig := parent.tokens[parent.idx]
	invariant.Invariant(orig.Kind == token.Group, "parent cursor must point at the descended group")

	rebuilt := token.NewGroup(orig.Delim, child.tokens, orig.Span)
	rebuilt.NewlineBefore = orig.NewlineBefore
	parent.tokens[parent.idx] = rebuilt
}

// popRemove drops the finished frame and its group token from the
// parent.
func (w *Walker) popRemove() {
	w.stack = w.stack[:len(w.stack)-1]
	w.top().remove()
}

// Reconstruct folds the live traversal stack into the full token vector
// as it stands right now, without disturbing the walk. Visitors use it
// to revalidate the whole tree after a replacement.
func (w *Walker) Reconstruct() []token.Token {
	invariant.Invariant(len(w.stack) > 0, "walker stack must not be empty")

	out := append([]token.Token(nil), w.stack[len(w.stack)-1].tokens...)
	for i := len(w.stack) - 2; i >= 0; i-- {
		parent := w.stack[i]
		merged := append([]token.Token(nil), parent.tokens...)
		orig := merged[parent.idx]
		rebuilt := token.NewGroup(orig.Delim, out, orig.Span)
		rebuilt.NewlineBefore = orig.NewlineBefore
		merged[parent.idx] = rebuilt
		out = merged
	}
	return out
}
