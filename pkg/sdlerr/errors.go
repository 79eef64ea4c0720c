package sdlerr

import (
	"fmt"
	"strings"
)

// Code identifies a failure mode of schema resolution.
type Code string

const (
	// Syntax indicates a malformed declaration header or block.
	Syntax Code = "SYNTAX"
	// MissingAncestor indicates an inherited name matched no declaration.
	MissingAncestor Code = "MISSING_ANCESTOR"
	// InvalidInheritance indicates a declaration inherited an incompatible kind.
	InvalidInheritance Code = "INVALID_INHERITANCE"
	// CyclicInheritance indicates a declaration (transitively) inherits itself.
	CyclicInheritance Code = "CYCLIC_INHERITANCE"
	// MissingInterface indicates an implemented name matched no declaration.
	MissingInterface Code = "MISSING_INTERFACE"
	// NotAnInterface indicates an implemented name is not an interface.
	NotAnInterface Code = "NOT_AN_INTERFACE"
	// CyclicInterface indicates an interface (transitively) implements itself.
	CyclicInterface Code = "CYCLIC_INTERFACE"
	// MissingGenericTemplate indicates a generic use has no template.
	MissingGenericTemplate Code = "MISSING_GENERIC_TEMPLATE"
	// NotGeneric indicates type arguments were applied to a non-generic declaration.
	NotGeneric Code = "NOT_GENERIC"
	// GenericArity indicates the argument count differs from the template's parameters.
	GenericArity Code = "GENERIC_ARITY"
	// GenericTypeMismatch indicates an instantiation clashes with a declared type.
	GenericTypeMismatch Code = "GENERIC_TYPE_MISMATCH"
	// CyclicGeneric indicates instantiation kept producing new nested instantiations.
	CyclicGeneric Code = "CYCLIC_GENERIC"
	// Metadata indicates the metadata extractor failed.
	Metadata Code = "METADATA"
)

// Sentinels for errors.Is.
var (
	ErrSyntax                 = &Error{Code: Syntax}
	ErrMissingAncestor        = &Error{Code: MissingAncestor}
	ErrInvalidInheritance     = &Error{Code: InvalidInheritance}
	ErrCyclicInheritance      = &Error{Code: CyclicInheritance}
	ErrMissingInterface       = &Error{Code: MissingInterface}
	ErrNotAnInterface         = &Error{Code: NotAnInterface}
	ErrCyclicInterface        = &Error{Code: CyclicInterface}
	ErrMissingGenericTemplate = &Error{Code: MissingGenericTemplate}
	ErrNotGeneric             = &Error{Code: NotGeneric}
	ErrGenericArity           = &Error{Code: GenericArity}
	ErrGenericTypeMismatch    = &Error{Code: GenericTypeMismatch}
	ErrCyclicGeneric          = &Error{Code: CyclicGeneric}
	ErrMetadata               = &Error{Code: Metadata}
)

// Error is a schema resolution failure. Kind and Name locate the declaration
// being processed, Ref the offending reference.
type Error struct {
	Code    Code     `json:"code"`
	Message string   `json:"message,omitempty"`
	Kind    string   `json:"kind,omitempty"`
	Name    string   `json:"name,omitempty"`
	Ref     string   `json:"ref,omitempty"`
	Path    []string `json:"path,omitempty"`
	Line    int      `json:"line,omitempty"`
	cause   error
}

// New creates an Error for the declaration kind/name.
func New(code Code, kind, name, message string) *Error {
	return &Error{Code: code, Kind: kind, Name: name, Message: message}
}

// Newf is New with a formatted message.
func Newf(code Code, kind, name, format string, args ...any) *Error {
	return New(code, kind, name, fmt.Sprintf(format, args...))
}

// WithRef sets the offending reference.
func (e *Error) WithRef(ref string) *Error {
	e.Ref = ref
	return e
}

// WithPath sets the resolution path that closed a cycle.
func (e *Error) WithPath(path []string) *Error {
	e.Path = append([]string(nil), path...)
	return e
}

// WithLine sets the source line of the declaration header.
func (e *Error) WithLine(line int) *Error {
	e.Line = line
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("]")
	if e.Kind != "" || e.Name != "" {
		b.WriteString(" ")
		b.WriteString(strings.TrimSpace(strings.ToLower(e.Kind) + " " + e.Name))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Ref != "" {
		fmt.Fprintf(&b, " %q", e.Ref)
	}
	if len(e.Path) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.Path, " -> "))
		b.WriteString("]")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
