package instant

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/zone"
)

// A Clock reads the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the operating system clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Now returns the current instant according to c, displayed through p.
func Now[P zone.Provider](c Clock, p P) Instant[P] {
	return FromStd(c.Now(), p)
}

// lastRegular is the latest instant outside a leap second.
var lastRegular = civil.NewDateTime(civil.MaxDate, civil.MustTime(23, 59, 59, 999_999_999))

// FromStd converts a time.Time, saturating at the civil range. The
// location of t is ignored; p decides the display offset.
func FromStd[P zone.Provider](t time.Time, p P) Instant[P] {
	utc, ok := civil.DateTimeFromUnix(t.Unix(), uint32(t.Nanosecond()))
	if !ok {
		if t.Unix() < 0 {
			utc = civil.MinDateTime
		} else {
			utc = lastRegular
		}
	}
	return FromUTC(utc, p)
}

// FromUnix returns the instant secs seconds and nanos nanoseconds after the
// Unix epoch. nanos may reach into the leap band at second :59.
func FromUnix[P zone.Provider](secs int64, nanos uint32, p P) (Instant[P], bool) {
	utc, ok := civil.DateTimeFromUnix(secs, nanos)
	if !ok {
		return Instant[P]{}, false
	}
	return FromUTC(utc, p), true
}

// ToStd converts i to a time.Time in a fixed zone carrying i's offset and
// abbreviation. A leap second becomes the first moment of the following
// second.
func (i Instant[P]) ToStd() time.Time {
	loc := time.FixedZone(zone.AbbreviationOf(i.zone, i.utc), i.offset.Seconds())
	return time.Unix(i.utc.Unix(), int64(i.utc.Time().Nanosecond())).In(loc)
}

// ToProto converts i to a protobuf Timestamp. Timestamps only cover years
// 1 through 9999; anything else is ErrOutOfRange.
func (i Instant[P]) ToProto() (*timestamppb.Timestamp, error) {
	ts := timestamppb.New(i.ToStd())
	if err := ts.CheckValid(); err != nil {
		return nil, errors.WithDetail(errors.Wrapf(ErrOutOfRange, "%s", i.utc), err.Error())
	}
	return ts, nil
}

// FromProto converts a protobuf Timestamp, displayed through p.
func FromProto[P zone.Provider](ts *timestamppb.Timestamp, p P) (Instant[P], error) {
	if err := ts.CheckValid(); err != nil {
		return Instant[P]{}, errors.WithDetail(errors.Wrap(ErrOutOfRange, "timestamp"), err.Error())
	}
	i, ok := FromUnix(ts.GetSeconds(), uint32(ts.GetNanos()), p)
	if !ok {
		return Instant[P]{}, errors.Wrapf(ErrOutOfRange, "%d.%09d", ts.GetSeconds(), ts.GetNanos())
	}
	return i, nil
}
