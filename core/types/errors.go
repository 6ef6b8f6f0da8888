package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/splicelang/splice/core/token"
)

// The interpreter reports everything through this closed set of error
// types. Each carries the span of the construct that failed so the
// driver can point at source positions; InternalError carries none
// because it marks interpreter defects rather than user input.

// RedefinedNameError reports a second binding of an alias name in one
// scope.
type RedefinedNameError struct {
	Name string
	Span token.Span
}

func (e *RedefinedNameError) Error() string {
	return fmt.Sprintf("RedefinedNameError: name %s has already been defined", e.Name)
}

// UndefinedFunctionError reports a call to a name with no registered
// overloads. Suggestions holds close matches from the registry.
type UndefinedFunctionError struct {
	Name        string
	Suggestions []string
	Span        token.Span
}

func (e *UndefinedFunctionError) Error() string {
	msg := fmt.Sprintf("UndefinedFunctionError: function %q is undefined", e.Name+"(...)")
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// SignatureError reports a call no overload of the function accepts.
// Signatures holds every overload's signature joined with " | ".
type SignatureError struct {
	Signatures string
	Call       string
	Span       token.Span
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("SignatureError: function %s has been called with incompatible arguments: %s",
		e.Signatures, e.Call)
}

// TypeError reports an impossible coercion or a failed cast.
type TypeError struct {
	Msg  string
	Span token.Span
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Msg
}

// NewCoercionError builds the TypeError the resolver and the cast
// machinery share for unresolvable kind pairs.
func NewCoercionError(span token.Span, from, to Kind) *TypeError {
	return &TypeError{
		Msg:  fmt.Sprintf("impossible to coerce from %s to %s", from, to),
		Span: span,
	}
}

// EvalError reports a function application that failed on its actual
// argument values, such as a concatenation yielding an illegal
// identifier.
type EvalError struct {
	Msg  string
	Span token.Span
}

func (e *EvalError) Error() string {
	return "EvalError: " + e.Msg
}

// SubstitutionError reports a replacement that broke the surrounding
// code, with the parse failure that proved it.
type SubstitutionError struct {
	Original    string
	Replacement string
	Err         error
	Span        token.Span
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("SubstitutionError: failed to substitute:\n\n  %s\n\nwith:\n\n  %s\n\nEncountered an error:\n\n  %v",
		e.Original, e.Replacement, e.Err)
}

func (e *SubstitutionError) Unwrap() error {
	return e.Err
}

// InternalError marks an interpreter defect: broken metadata, an
// impossible state, a contract the stages failed to keep between
// themselves. Never caused by user input.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "InternalError: " + e.Msg
}

// Internalf builds an InternalError with a formatted message.
func Internalf(format string, args ...interface{}) *InternalError {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}

// IsInternal reports whether err is (or wraps) an InternalError. The
// resolver uses it to abort overload attempts instead of treating a
// defect as a failed candidate.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

// SpanOf extracts the source span an error carries, if any.
func SpanOf(err error) (token.Span, bool) {
	switch e := err.(type) {
	case *RedefinedNameError:
		return e.Span, true
	case *UndefinedFunctionError:
		return e.Span, true
	case *SignatureError:
		return e.Span, true
	case *TypeError:
		return e.Span, true
	case *EvalError:
		return e.Span, true
	case *SubstitutionError:
		return e.Span, true
	default:
		return token.Span{}, false
	}
}
