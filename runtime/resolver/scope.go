package resolver

import (
	"github.com/splicelang/splice/core/ast"
	"github.com/splicelang/splice/core/token"
	"github.com/splicelang/splice/core/types"
)

// ValueInfo is the resolution outcome for one value expression: the
// kind it must reach its consumer as, and what the coercion costs.
type ValueInfo struct {
	Target types.Kind
	Cost   int
}

// CallInfo is the resolution outcome for one call expression: the
// winning overload, the resolved argument expressions, the kind the
// result must reach its consumer as, and the total cost.
type CallInfo struct {
	Fn     *types.Func
	Args   []ast.Expr
	Target types.Kind
	Cost   int
}

// Metadata is the side table resolution writes and evaluation reads,
// keyed by node ID. AST nodes stay untouched; forked candidate scopes
// clone the table instead.
type Metadata struct {
	values map[uint64]ValueInfo
	calls  map[uint64]CallInfo
}

// NewMetadata creates an empty side table.
func NewMetadata() *Metadata {
	return &Metadata{
		values: make(map[uint64]ValueInfo),
		calls:  make(map[uint64]CallInfo),
	}
}

// Value returns the recorded outcome for a value expression.
func (m *Metadata) Value(id uint64) (ValueInfo, bool) {
	info, ok := m.values[id]
	return info, ok
}

// Call returns the recorded outcome for a call expression.
func (m *Metadata) Call(id uint64) (CallInfo, bool) {
	info, ok := m.calls[id]
	return info, ok
}

// Target returns the recorded target kind of either expression form.
func (m *Metadata) Target(id uint64) (types.Kind, bool) {
	if info, ok := m.values[id]; ok {
		return info.Target, true
	}
	if info, ok := m.calls[id]; ok {
		return info.Target, true
	}
	return 0, false
}

// CostOf returns the recorded coercion cost of either expression form.
func (m *Metadata) CostOf(id uint64) (int, bool) {
	if info, ok := m.values[id]; ok {
		return info.Cost, true
	}
	if info, ok := m.calls[id]; ok {
		return info.Cost, true
	}
	return 0, false
}

func (m *Metadata) setValue(id uint64, info ValueInfo) {
	m.values[id] = info
}

func (m *Metadata) setCall(id uint64, info CallInfo) {
	m.calls[id] = info
}

func (m *Metadata) clone() *Metadata {
	out := &Metadata{
		values: make(map[uint64]ValueInfo, len(m.values)),
		calls:  make(map[uint64]CallInfo, len(m.calls)),
	}
	for id, info := range m.values {
		out.values[id] = info
	}
	for id, info := range m.calls {
		out.calls[id] = info
	}
	return out
}

// Scope is the lexical scope of one combination: alias bindings plus
// the metadata table. Overload resolution forks it per candidate and
// commits the winner, so failed attempts leave no trace.
type Scope struct {
	aliases map[string]ast.Expr
	meta    *Metadata
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		aliases: make(map[string]ast.Expr),
		meta:    NewMetadata(),
	}
}

// Bind publishes an alias, failing on redefinition.
func (s *Scope) Bind(name string, expr ast.Expr, at token.Span) error {
	if _, exists := s.aliases[name]; exists {
		return &types.RedefinedNameError{Name: name, Span: at}
	}
	s.aliases[name] = expr
	return nil
}

// Lookup returns the expression bound to an alias.
func (s *Scope) Lookup(name string) (ast.Expr, bool) {
	expr, ok := s.aliases[name]
	return expr, ok
}

// Bound reports whether name is a bound alias.
func (s *Scope) Bound(name string) bool {
	_, ok := s.aliases[name]
	return ok
}

// Metadata returns the scope's side table.
func (s *Scope) Metadata() *Metadata {
	return s.meta
}

// DeepClone copies the scope, metadata included.
func (s *Scope) DeepClone() *Scope {
	aliases := make(map[string]ast.Expr, len(s.aliases))
	for name, expr := range s.aliases {
		aliases[name] = expr
	}
	return &Scope{aliases: aliases, meta: s.meta.clone()}
}
