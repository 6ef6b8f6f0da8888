// Package notices collects deprecation findings raised while parsing
// legacy syntax, so the driver can surface them on the generated output
// instead of failing the run.
package notices

import (
	"fmt"
	"sync"

	"github.com/splicelang/splice/core/token"
)

// Notice is one deprecation finding.
type Notice struct {
	Note  string // what is deprecated and what to use instead
	Since string // the version the deprecation started at
}

// Reporter deduplicates notices for one run. All methods are safe on a
// nil receiver: a caller without a reporter loses the notices and
// nothing else.
type Reporter struct {
	mu      sync.Mutex
	notices []Notice
	seen    map[Notice]bool
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{seen: make(map[Notice]bool)}
}

// Add records a notice once; repeats of the same note and version are
// dropped.
func (r *Reporter) Add(note, since string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := Notice{Note: note, Since: since}
	if r.seen[n] {
		return
	}
	r.seen[n] = true
	r.notices = append(r.notices, n)
}

// Notices returns the recorded notices in first-seen order.
func (r *Reporter) Notices() []Notice {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Empty reports whether nothing has been recorded.
func (r *Reporter) Empty() bool {
	if r == nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices) == 0
}

// Comments renders the notices as comment tokens, one line each, for
// prefixing onto generated output.
func (r *Reporter) Comments() []token.Token {
	notices := r.Notices()
	comments := make([]token.Token, 0, len(notices))
	for _, n := range notices {
		text := fmt.Sprintf("// Deprecated: %s (since %s)", n.Note, n.Since)
		tok := token.Token{Kind: token.Comment, Text: text}
		tok.NewlineBefore = true
		comments = append(comments, tok)
	}
	return comments
}
