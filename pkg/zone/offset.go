package zone

import (
	"fmt"

	"github.com/msto63/chronos/pkg/civil"
)

const maxOffsetSeconds = 86_400

// An Offset is a fixed number of seconds east of UTC, strictly within one
// day either way. An Offset is itself a Provider whose offset never changes.
type Offset struct {
	secs int32
}

// East returns the offset secs seconds east of UTC (ahead of it).
func East(secs int) (Offset, bool) {
	if secs <= -maxOffsetSeconds || secs >= maxOffsetSeconds {
		return Offset{}, false
	}
	return Offset{secs: int32(secs)}, true
}

// West returns the offset secs seconds west of UTC (behind it).
func West(secs int) (Offset, bool) {
	return East(-secs)
}

// MustEast is like East but panics when secs is out of range.
func MustEast(secs int) Offset {
	o, ok := East(secs)
	if !ok {
		panic(fmt.Sprintf("zone: offset %d out of range", secs))
	}
	return o
}

// Seconds returns the offset in seconds east of UTC.
func (o Offset) Seconds() int { return int(o.secs) }

// Duration returns the offset as a civil.Duration.
func (o Offset) Duration() civil.Duration { return civil.Seconds(int64(o.secs)) }

// LocalFromUTC converts a UTC reading to the wall clock in this offset.
func (o Offset) LocalFromUTC(utc civil.DateTime) (civil.DateTime, bool) {
	return utc.Shift(int64(o.secs))
}

// UTCFromLocal converts a wall-clock reading in this offset to UTC.
func (o Offset) UTCFromLocal(local civil.DateTime) (civil.DateTime, bool) {
	return local.Shift(-int64(o.secs))
}

// OffsetForUTC implements Provider.
func (o Offset) OffsetForUTC(civil.DateTime) Offset { return o }

// ResolveLocal implements Provider. A fixed offset is never ambiguous.
func (o Offset) ResolveLocal(civil.DateTime) Resolution[Offset] { return Single(o) }

// String renders o as ±HH:MM, or ±HH:MM:SS when it has a seconds part.
func (o Offset) String() string {
	sign := '+'
	secs := int(o.secs)
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
