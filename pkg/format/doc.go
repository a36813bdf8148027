// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     format
// Description: strftime layouts and RFC 3339/2822 codecs
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package format renders and parses dates, times and instants.
//
// Layouts use strftime directives (see StrftimeItems) compiled into a
// slice of Items. The same items drive both directions:
//
//	items := format.StrftimeItems("%Y-%m-%d %H:%M:%S %z")
//	text := format.FormatInstantItems(i, items).String()
//	back, err := format.ParseInstantItems(text, items)
//
// RFC 3339 and RFC 2822 have dedicated entry points. ParseRFC3339 is
// strict; ParseAny accepts the common relaxations (unpadded fields, a space
// separator, a UTC suffix).
//
// # Errors
//
// Every parse error wraps one of the sentinel errors declared here, so
// callers can branch with errors.Is or group them with Classify:
//
//	_, err := format.ParseInstant("2014-05-07 12:00", "%Y-%m-%d %H:%M")
//	format.Classify(err) // ClassMissingZone
//
// Parsing never guesses an offset. Targets that need one fail with
// ErrMissingOffset when the input has none.
package format
