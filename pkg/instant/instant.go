// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     instant
// Description: Zone-bound instants and their arithmetic
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package instant binds civil date-times to offset providers.
//
// An Instant is a point on the UTC timeline together with the provider
// used to display it. Arithmetic and comparison always go through UTC, so
// two instants with different providers compare equal when they denote
// the same moment:
//
//	tokyo := instant.FromUTC(utc, zone.MustEast(9*3600))
//	london := instant.WithZone(tokyo, zone.UTC)
//	tokyo.Equal(london) // true
//
// A Day is a civil date in a provider's frame; its Start is the first
// instant of that date, found even when midnight itself falls into a
// daylight saving gap.
package instant

import (
	"strings"

	"go.uber.org/zap"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

// ErrOutOfRange reports an instant outside the range a conversion target
// can hold.
var ErrOutOfRange = errors.New("instant out of range")

// A Moment is anything that denotes a point on the UTC timeline. Every
// Instant is a Moment regardless of its provider.
type Moment interface {
	UTC() civil.DateTime
}

// An Instant is a UTC date-time with the offset its provider assigns to it.
type Instant[P zone.Provider] struct {
	utc    civil.DateTime
	offset zone.Offset
	zone   P
}

// FromUTC returns the instant utc, displayed through p.
func FromUTC[P zone.Provider](utc civil.DateTime, p P) Instant[P] {
	return Instant[P]{utc: utc, offset: p.OffsetForUTC(utc), zone: p}
}

// FromLocal resolves a wall-clock reading in p. The result is None inside a
// gap and Ambiguous inside an overlap, earlier instant first. Readings
// whose UTC equivalent falls outside the civil range are dropped.
//
// An offset that p resolves but then disowns through OffsetForUTC is a
// broken provider; FromLocal panics with an assertion failure.
func FromLocal[P zone.Provider](local civil.DateTime, p P) zone.Resolution[Instant[P]] {
	res := p.ResolveLocal(local)

	lift := func(o zone.Offset) (Instant[P], bool) {
		utc, ok := o.UTCFromLocal(local)
		if !ok {
			return Instant[P]{}, false
		}
		if got := p.OffsetForUTC(utc); got != o {
			err := errors.AssertionFailedf("provider %s resolved %s to %s but reports %s at %s",
				p, local, o, got, utc)
			logging.Named("instant").Error("offset provider contract violated",
				zap.String(logging.FieldZone, p.String()),
				zap.Stringer(logging.FieldDate, local),
				zap.Error(err))
			panic(err)
		}
		return Instant[P]{utc: utc, offset: o, zone: p}, true
	}

	switch res.Kind() {
	case zone.KindSingle:
		o, _ := res.Single()
		if i, ok := lift(o); ok {
			return zone.Single(i)
		}
	case zone.KindAmbiguous:
		a, b, _ := res.Both()
		ia, okA := lift(a)
		ib, okB := lift(b)
		switch {
		case okA && okB:
			if ib.Before(ia) {
				ia, ib = ib, ia
			}
			return zone.Ambiguous(ia, ib)
		case okA:
			return zone.Single(ia)
		case okB:
			return zone.Single(ib)
		}
	}
	return zone.None[Instant[P]]()
}

// WithZone returns the same instant displayed through q.
func WithZone[P, Q zone.Provider](i Instant[P], q Q) Instant[Q] {
	return FromUTC(i.utc, q)
}

// Fixed returns the same instant bound to its current offset.
func (i Instant[P]) Fixed() Instant[zone.Offset] {
	return Instant[zone.Offset]{utc: i.utc, offset: i.offset, zone: i.offset}
}

// UTC returns the UTC reading of i.
func (i Instant[P]) UTC() civil.DateTime { return i.utc }

// Local returns the wall-clock reading of i in its provider. Readings that
// would fall outside the civil range saturate at its bounds.
func (i Instant[P]) Local() civil.DateTime {
	local, ok := i.offset.LocalFromUTC(i.utc)
	if ok {
		return local
	}
	if i.offset.Seconds() > 0 {
		return civil.MaxDateTime
	}
	return civil.MinDateTime
}

// Date returns the local date.
func (i Instant[P]) Date() civil.Date { return i.Local().Date() }

// Time returns the local time of day.
func (i Instant[P]) Time() civil.Time { return i.Local().Time() }

// Offset returns the offset in effect at i.
func (i Instant[P]) Offset() zone.Offset { return i.offset }

// Zone returns the provider i is displayed through.
func (i Instant[P]) Zone() P { return i.zone }

// Unix returns the number of seconds since the Unix epoch.
func (i Instant[P]) Unix() int64 { return i.utc.Unix() }

// UnixMilli returns the number of milliseconds since the Unix epoch. A leap
// second adds its extra thousand milliseconds.
func (i Instant[P]) UnixMilli() int64 {
	return i.utc.Unix()*1000 + int64(i.utc.Time().SubsecMillis())
}

// UnixNano returns the number of nanoseconds since the Unix epoch, or false
// when that does not fit in an int64 (before 1677 or after 2262).
func (i Instant[P]) UnixNano() (int64, bool) {
	d, ok := civil.Seconds(i.utc.Unix()).Add(civil.Nanoseconds(int64(i.utc.Time().SubsecNanos())))
	if !ok {
		return 0, false
	}
	return d.Nanoseconds()
}

// SubsecMillis returns the millisecond part, above 999 inside a leap second.
func (i Instant[P]) SubsecMillis() int { return i.utc.Time().SubsecMillis() }

// SubsecMicros returns the microsecond part.
func (i Instant[P]) SubsecMicros() int { return i.utc.Time().SubsecMicros() }

// SubsecNanos returns the nanosecond part.
func (i Instant[P]) SubsecNanos() int { return i.utc.Time().SubsecNanos() }

// CheckedAdd returns i+d, or false when the result leaves the civil range.
func (i Instant[P]) CheckedAdd(d civil.Duration) (Instant[P], bool) {
	utc, ok := i.utc.AddDuration(d)
	if !ok {
		return Instant[P]{}, false
	}
	return FromUTC(utc, i.zone), true
}

// CheckedSub returns i-d, or false when the result leaves the civil range.
func (i Instant[P]) CheckedSub(d civil.Duration) (Instant[P], bool) {
	return i.CheckedAdd(d.Neg())
}

// Add returns i+d. It panics when the result leaves the civil range.
func (i Instant[P]) Add(d civil.Duration) Instant[P] {
	r, ok := i.CheckedAdd(d)
	if !ok {
		overflow("add", i, d)
	}
	return r
}

// Sub returns i-d. It panics when the result leaves the civil range.
func (i Instant[P]) Sub(d civil.Duration) Instant[P] {
	r, ok := i.CheckedSub(d)
	if !ok {
		overflow("sub", i, d)
	}
	return r
}

func overflow(op string, i Moment, d civil.Duration) {
	err := errors.AssertionFailedf("instant %s overflow: %s %s %s", op, i.UTC(), op, d)
	logging.Named("instant").Error("arithmetic overflow", zap.Error(err))
	panic(err)
}

// SignedDurationSince returns the exact time elapsed from o to i. Offsets
// play no part.
func (i Instant[P]) SignedDurationSince(o Moment) civil.Duration {
	return i.utc.Sub(o.UTC())
}

// Compare returns -1, 0 or +1 depending on whether i is before, at or after o.
func (i Instant[P]) Compare(o Moment) int { return i.utc.Compare(o.UTC()) }

// Equal reports whether i and o denote the same moment.
func (i Instant[P]) Equal(o Moment) bool { return i.Compare(o) == 0 }

// Before reports whether i is before o.
func (i Instant[P]) Before(o Moment) bool { return i.Compare(o) < 0 }

// After reports whether i is after o.
func (i Instant[P]) After(o Moment) bool { return i.Compare(o) > 0 }

// String renders the local reading and the zone, as in
// "2014-05-06 07:08:09 +09:00" or "2015-02-18 23:16:09 UTC".
func (i Instant[P]) String() string {
	local := i.Local()
	return local.Date().String() + " " + local.Time().String() + " " + zone.AbbreviationOf(i.zone, i.utc)
}

// GoString renders i in RFC 3339 form with its numeric offset.
func (i Instant[P]) GoString() string {
	return i.Local().String() + i.offset.String()
}

// MarshalText renders i in RFC 3339 form with the shortest exact fraction,
// using Z for a zero offset.
func (i Instant[P]) MarshalText() ([]byte, error) {
	var b strings.Builder
	b.WriteString(i.Local().String())
	if i.offset.Seconds() == 0 {
		b.WriteByte('Z')
	} else {
		b.WriteString(i.offset.String())
	}
	return []byte(b.String()), nil
}
