// Package rbrerr defines the typed error kinds shared across the
// recombination-detection core.
//
// Every fallible core operation returns one of these kinds wrapped in an
// *Error rather than an opaque error string, so that callers (CLI, batch
// driver, tests) can branch on Kind via errors.As without parsing
// messages.
package rbrerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how a caller should react to it, per
// spec.md §7.
type Kind int

const (
	// Invariant violations. Fatal; bubble up.
	Cycle Kind = iota
	NoRoot
	MultipleRoots
	UnknownNode
	LengthMismatch

	// Parse errors. Fatal to the affected input.
	BadNewick
	BadFasta
	BadAttribute
	BadTag

	// Search non-results. Not fatal; recorded on the query's result.
	NoCandidateMatch
	ParentNotFound
	InsufficientParents

	// Compatibility warnings. Non-fatal when the caller overrides.
	CliTooOld
	TagOutOfRange

	// Cooperative cancellation of a search in progress.
	Cancelled

	// I/O errors. Fatal to the affected operation.
	IO
)

var kindNames = map[Kind]string{
	Cycle:               "Cycle",
	NoRoot:               "NoRoot",
	MultipleRoots:        "MultipleRoots",
	UnknownNode:          "UnknownNode",
	LengthMismatch:       "LengthMismatch",
	BadNewick:            "BadNewick",
	BadFasta:             "BadFasta",
	BadAttribute:         "BadAttribute",
	BadTag:               "BadTag",
	NoCandidateMatch:     "NoCandidateMatch",
	ParentNotFound:       "ParentNotFound",
	InsufficientParents:  "InsufficientParents",
	CliTooOld:            "CliTooOld",
	TagOutOfRange:        "TagOutOfRange",
	Cancelled:            "Cancelled",
	IO:                   "IO",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Fatal reports whether an error of this kind is fatal to the operation
// or input it arose from (invariant violations, parse errors, I/O
// errors), as opposed to search non-results, compatibility warnings and
// cancellation, which are not (spec.md §7).
func (k Kind) Fatal() bool {
	switch k {
	case NoCandidateMatch, ParentNotFound, InsufficientParents,
		CliTooOld, TagOutOfRange, Cancelled:
		return false
	default:
		return true
	}
}

// Error is the core error type. It carries a Kind, a human message, and
// an optional wrapped cause, mirroring the wrap chain in
// cuelang.org/go/cue/errors (posError/wrapped) without the position
// tracking, which has no analogue in this domain.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind. This lets
// callers write errors.Is(err, rbrerr.New(rbrerr.Cycle, "")) as a kind
// check, though As is the more common idiom here.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an *Error with the given kind and message.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Message: msg}
}

// Newf creates an *Error with a formatted message.
func Newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause as the subordinate error of a new *Error of kind k.
// If cause is nil, Wrap behaves like New.
func Wrap(k Kind, cause error, msg string) *Error {
	return &Error{Kind: k, Message: msg, Cause: cause}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(k Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error, and
// reports whether one was found.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is of the given kind.
func Is(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}
