package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the pipeline the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // range description compilation
	PhaseParse   Phase = "parse"   // string grammar / bit-spec / JSON parsing
	PhaseGather  Phase = "gather"  // buffer walking
	PhaseConfig  Phase = "config"  // engine configuration
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidArity   Kind = "invalid_arity"
	KindInvalidField   Kind = "invalid_field"
	KindInvalidSize    Kind = "invalid_size"
	KindNegativeOffset Kind = "negative_offset"
	KindBadGenerator   Kind = "bad_generator"
	KindBadStream      Kind = "bad_stream"
	KindInvalidOption  Kind = "invalid_option"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the description path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidArity creates an error for a range tuple with the wrong field count
func InvalidArity(phase Phase, path []string, n int, tuple any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArity,
		Path:   path,
		Detail: fmt.Sprintf("range has %d field(s), want 2 to 4: %v", n, tuple),
		Value:  tuple,
	}
}

// InvalidField creates an error for a field that cannot be classified
func InvalidField(phase Phase, path []string, field, value string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidField,
		Path:   path,
		Detail: fmt.Sprintf("invalid %s field %q", field, value),
		Value:  value,
	}
}

// InvalidSize creates an error for a size that resolved to an unusable value
func InvalidSize(path []string, value any) *Error {
	return &Error{
		Phase:  PhaseGather,
		Kind:   KindInvalidSize,
		Path:   path,
		Detail: fmt.Sprintf("size must resolve to a non-negative integer, got %v", value),
		Value:  value,
	}
}

// NegativeOffset creates an error for a negative walk start offset
func NegativeOffset(offset int) *Error {
	return &Error{
		Phase:  PhaseGather,
		Kind:   KindNegativeOffset,
		Detail: fmt.Sprintf("start offset %d is negative", offset),
		Value:  offset,
	}
}

// BadGenerator creates an error for a whole-range generator misuse
func BadGenerator(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindBadGenerator,
		Path:   path,
		Detail: detail,
	}
}

// BadStream creates an error for a pull-based description misuse
func BadStream(detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindBadStream,
		Detail: detail,
	}
}

// InvalidOption creates an error for an unsupported option name
func InvalidOption(name string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidOption,
		Detail: fmt.Sprintf("unsupported option %q", name),
		Value:  name,
	}
}

// InvalidOptionValue creates an error for a recognized option with a bad value
func InvalidOptionValue(name, value string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidOption,
		Detail: fmt.Sprintf("invalid value %q for option %q", value, name),
		Value:  value,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
