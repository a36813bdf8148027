package format

import (
	"github.com/msto63/chronos/pkg/errors"
)

// Parse errors. Every error returned by this package wraps exactly one of
// them; use errors.Is to test for a kind and Classify to group them.
var (
	// ErrOutOfRange: a field was syntactically fine but its value is not.
	ErrOutOfRange = errors.New("input is out of range")
	// ErrImpossible: fields contradict each other or denote no instant.
	ErrImpossible = errors.New("no possible date and time matching input")
	// ErrNotEnough: the input lacks fields needed to build the value.
	ErrNotEnough = errors.New("input is not enough for unique date and time")
	// ErrInvalid: the input does not match the layout.
	ErrInvalid = errors.New("input contains invalid characters")
	// ErrTooShort: the input ended before the layout did.
	ErrTooShort = errors.New("premature end of input")
	// ErrTooLong: input remains after the layout was consumed.
	ErrTooLong = errors.New("trailing input")
	// ErrBadFormat: the layout itself is malformed or asks for a field the
	// value does not have.
	ErrBadFormat = errors.New("bad or unsupported format string")
	// ErrMissingOffset: an offset-bearing value was requested but the input
	// carries no offset or zone.
	ErrMissingOffset = errors.New("input has no offset or zone")
)

// Class groups parse errors by what went wrong.
type Class uint8

const (
	// ClassNone is the class of a nil error.
	ClassNone Class = iota
	// ClassSyntax means the text does not have the expected shape.
	ClassSyntax
	// ClassRange means the text is well formed but a value is out of range
	// or the fields are inconsistent.
	ClassRange
	// ClassMissingZone means the text carries no offset.
	ClassMissingZone
	// ClassOther is any error not produced by this package.
	ClassOther
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassSyntax:
		return "syntax"
	case ClassRange:
		return "range"
	case ClassMissingZone:
		return "missing-zone"
	}
	return "other"
}

// Classify reports the class of err.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrMissingOffset):
		return ClassMissingZone
	case errors.IsAny(err, ErrOutOfRange, ErrImpossible):
		return ClassRange
	case errors.IsAny(err, ErrInvalid, ErrTooShort, ErrTooLong, ErrBadFormat, ErrNotEnough):
		return ClassSyntax
	}
	return ClassOther
}

// CodeOf returns the stable code for err.
func CodeOf(err error) errors.Code {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return errors.CodeOutOfRange
	case errors.Is(err, ErrImpossible):
		return errors.CodeImpossible
	case errors.Is(err, ErrNotEnough):
		return errors.CodeNotEnough
	case errors.Is(err, ErrInvalid):
		return errors.CodeInvalidFormat
	case errors.Is(err, ErrTooShort):
		return errors.CodeTooShort
	case errors.Is(err, ErrTooLong):
		return errors.CodeTooLong
	case errors.Is(err, ErrBadFormat):
		return errors.CodeBadLayout
	case errors.Is(err, ErrMissingOffset):
		return errors.CodeMissingZone
	}
	return errors.CodeUnknown
}

// at wraps a sentinel with the byte position it was detected at.
func at(sentinel error, src, rest string) error {
	return errors.Wrapf(sentinel, "at byte %d of %q", len(src)-len(rest), src)
}
