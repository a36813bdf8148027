// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     civil
// Description: Proleptic Gregorian dates, times of day and durations
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package civil implements wall-clock calendar values: dates on the
// proleptic Gregorian calendar, times of day with a leap-second slot, their
// combination, and a signed Duration used for all arithmetic.
//
// Civil values carry no timezone. A DateTime is a reading of a wall clock,
// not a point on the UTC timeline; attach an offset provider from package
// zone (via package instant) to obtain an absolute instant.
//
// # Range
//
// Dates span MinYear-01-01 through MaxYear-12-31. Every arithmetic
// operation that could leave that range reports failure through a boolean
// result instead of wrapping:
//
//	d, ok := civil.DateOf(2024, time.February, 29)
//	next, ok := d.AddDays(365)
//	last := civil.MaxDate
//	_, ok = last.Succ() // ok == false
//
// # Leap seconds
//
// A Time stores seconds-of-day and a nanosecond field. The nanosecond field
// may lie in [1_000_000_000, 2_000_000_000) only when the second is 59; such
// a value represents the inserted second hh:mm:60. SubsecMillis, SubsecMicros
// and SubsecNanos divide the raw field, so they exceed their nominal range
// while inside a leap second.
//
// # Concurrency
//
// All types are immutable values and safe for concurrent use.
package civil
