package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure of the compressor pipeline.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindMalformed  Kind = "malformed"
	KindWriteError Kind = "write_error"
	KindClockError Kind = "clock_error"
)

// Error is the structured failure returned by descriptor loading, instance
// generation and trace persistence. Callers should prefer the predicate
// functions (IsNotFound, IsMalformed, ...) over asserting on this type.
type Error struct {
	kind    Kind
	name    string
	path    string
	missing []string
	invalid []string
	err     error
}

// NewError builds an Error of the given kind for the named repository.
// err may be nil.
func NewError(kind Kind, name string, err error) *Error {
	return &Error{kind: kind, name: name, err: err}
}

// WithPath records the file the failure refers to.
func (e *Error) WithPath(path string) *Error {
	e.path = path
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.kind {
	case KindNotFound:
		fmt.Fprintf(&b, "repository %q: descriptor not found", e.name)
	case KindMalformed:
		fmt.Fprintf(&b, "repository %q: malformed descriptor", e.name)
	case KindWriteError:
		fmt.Fprintf(&b, "repository %q: write trace", e.name)
	case KindClockError:
		fmt.Fprintf(&b, "repository %q: read clock", e.name)
	default:
		fmt.Fprintf(&b, "repository %q: %s", e.name, e.kind)
	}
	if e.path != "" {
		fmt.Fprintf(&b, " (%s)", e.path)
	}
	if len(e.missing) > 0 {
		fmt.Fprintf(&b, ": missing fields [%s]", strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		fmt.Fprintf(&b, ": invalid fields [%s]", strings.Join(e.invalid, ", "))
	}
	if e.err != nil {
		fmt.Fprintf(&b, ": %v", e.err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the failure class.
func (e *Error) Kind() Kind { return e.kind }

// Name returns the repository name the failure refers to.
func (e *Error) Name() string { return e.name }

// Path returns the file involved, if any.
func (e *Error) Path() string { return e.path }

// Missing returns the required fields absent from a malformed descriptor.
func (e *Error) Missing() []string { return e.missing }

// Invalid returns the fields of a malformed descriptor whose type is wrong.
func (e *Error) Invalid() []string { return e.invalid }

// IsNotFound reports whether err is a missing-descriptor error.
func IsNotFound(err error) bool { return HasKind(err, KindNotFound) }

// IsMalformed reports whether err is an unparseable or incomplete descriptor.
func IsMalformed(err error) bool { return HasKind(err, KindMalformed) }

// IsWriteError reports whether err is a trace persistence failure.
func IsWriteError(err error) bool { return HasKind(err, KindWriteError) }

// IsClockError reports whether err is a timestamp source failure.
func IsClockError(err error) bool { return HasKind(err, KindClockError) }

// HasKind reports whether err wraps an *Error of the given kind.
func HasKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
