// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     zone
// Description: Offsets, offset providers and local time resolution
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package zone maps wall-clock readings to offsets from UTC.
//
// A Provider answers two questions. OffsetForUTC is total: every instant has
// exactly one offset. ResolveLocal goes the other way and may find no valid
// offset (a spring-forward gap) or two (a fall-back overlap), reported as a
// Resolution with kind None, Single or Ambiguous.
//
// Four providers are included:
//
//	zone.UTC                     // always +00:00, named "UTC"
//	zone.MustEast(9 * 3600)      // a fixed Offset is its own provider
//	zone.ParsePOSIX("CET-1CEST,M3.5.0,M10.5.0/3")
//	zone.LoadLocation("America/New_York")
//
// The process-wide local zone is explicit configuration: callers install it
// with SetLocal and read it back with LocalProvider. Nothing in chronos
// consults it implicitly.
package zone
