// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     errors
// Description: Error construction, wrapping and inspection for chronos
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package errors re-exports github.com/cockroachdb/errors for use across
// chronos, so every package wraps, annotates and asserts the same way.
//
//	// Wrap a sentinel with position information
//	return errors.Wrapf(ErrInvalid, "at byte %d", pos)
//
//	// Check a sentinel anywhere in the chain
//	if errors.Is(err, format.ErrMissingOffset) { ... }
//
//	// Abort on a broken provider contract
//	panic(errors.AssertionFailedf("offset %s not valid for %s", off, local))
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// Details and hints
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf         = crdb.AssertionFailedf
	IsAssertionFailure       = crdb.IsAssertionFailure
	HandleAsAssertionFailure = crdb.HandleAsAssertionFailure
)

// Code is a stable, machine-readable classification attached to errors
// returned by chronos packages.
type Code string

const (
	CodeUnknown       Code = "UNKNOWN"
	CodeInvalidFormat Code = "INVALID_FORMAT"
	CodeOutOfRange    Code = "VALUE_OUT_OF_RANGE"
	CodeImpossible    Code = "IMPOSSIBLE_VALUE"
	CodeNotEnough     Code = "NOT_ENOUGH_INPUT"
	CodeTooShort      Code = "INPUT_TOO_SHORT"
	CodeTooLong       Code = "INPUT_TOO_LONG"
	CodeBadLayout     Code = "BAD_LAYOUT"
	CodeMissingZone   Code = "MISSING_ZONE"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConfig        Code = "CONFIG_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// ErrNotFound indicates a requested zone or record does not exist.
var ErrNotFound = New("not found")

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
