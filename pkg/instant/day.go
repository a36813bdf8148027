package instant

import (
	"math"

	"go.uber.org/zap"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

const (
	// probeStep is the spacing of start-of-day candidates. Every offset
	// in use is a multiple of 15 minutes.
	probeStep = 15 * 60

	// defaultProbes covers six hours after midnight.
	defaultProbes = 24

	// maxProbes keeps every candidate on the same civil date.
	maxProbes = 86_400/probeStep - 1
)

// A Day is a civil date in a provider's frame. Days compare by date alone;
// the provider is assumed to be the same for the days being compared.
type Day[P zone.Provider] struct {
	date civil.Date
	zone P
}

// NewDay returns the day date in p.
func NewDay[P zone.Provider](date civil.Date, p P) Day[P] {
	return Day[P]{date: date, zone: p}
}

// DayOf returns the local day i falls on.
func DayOf[P zone.Provider](i Instant[P]) Day[P] {
	return Day[P]{date: i.Date(), zone: i.Zone()}
}

// Date returns the civil date of d.
func (d Day[P]) Date() civil.Date { return d.date }

// Zone returns the provider of d.
func (d Day[P]) Zone() P { return d.zone }

// probes returns the highest probe index Start may try.
func (d Day[P]) probes() int64 {
	b, ok := any(d.zone).(zone.TransitionBounder)
	if !ok {
		return defaultProbes
	}
	jump := b.MaxTransition().Abs()
	n := jump.Seconds() / probeStep
	if jump.Seconds()%probeStep != 0 || jump.SubsecNanos() != 0 {
		n++
	}
	return min(n, maxProbes)
}

// Start returns the first instant of d. Midnight is tried first, then every
// quarter hour after it until a reading exists; inside an overlap the
// earlier instant wins.
//
// On MinDate in a zone east of UTC, local midnight precedes the first
// representable instant; Start then returns that instant. Otherwise a
// provider for which no candidate resolves is broken, and Start panics with
// an assertion failure.
func (d Day[P]) Start() Instant[P] {
	midnight := d.date.At(civil.Midnight)
	n := d.probes()
	for k := int64(0); k <= n; k++ {
		local, ok := midnight.AddDuration(civil.Seconds(k * probeStep))
		if !ok {
			break
		}
		if first, ok := FromLocal(local, d.zone).Earliest(); ok {
			return first
		}
	}
	if first := FromUTC(civil.MinDateTime, d.zone); first.Date() == d.date && first.Local().After(midnight) {
		return first
	}

	err := errors.AssertionFailedf("no start time for %s in %s after %d probes", d.date, d.zone, n+1)
	logging.Named("instant").Error("start of day not found",
		zap.Stringer(logging.FieldDate, d.date),
		zap.String(logging.FieldZone, d.zone.String()),
		zap.Error(err))
	panic(err)
}

// End returns the start of the following day, the exclusive upper bound of
// d. It reports false on the last representable date.
func (d Day[P]) End() (Instant[P], bool) {
	next, ok := d.Succ()
	if !ok {
		return Instant[P]{}, false
	}
	return next.Start(), true
}

// Contains reports whether i falls on d.
func (d Day[P]) Contains(i Moment) bool {
	start := d.Start()
	if i.UTC().Before(start.UTC()) {
		return false
	}
	end, ok := d.End()
	return !ok || i.UTC().Before(end.UTC())
}

// Succ returns the next day, or false on the last representable date.
func (d Day[P]) Succ() (Day[P], bool) {
	return d.shift(1)
}

// Pred returns the previous day, or false on the first representable date.
func (d Day[P]) Pred() (Day[P], bool) {
	return d.shift(-1)
}

// CheckedAddDays returns d moved n days forward. Adding zero returns d.
func (d Day[P]) CheckedAddDays(n uint64) (Day[P], bool) {
	if n == 0 {
		return d, true
	}
	if n > math.MaxInt64 {
		return Day[P]{}, false
	}
	return d.shift(int64(n))
}

// CheckedSubDays returns d moved n days back. Subtracting zero returns d.
func (d Day[P]) CheckedSubDays(n uint64) (Day[P], bool) {
	if n == 0 {
		return d, true
	}
	if n > math.MaxInt64 {
		return Day[P]{}, false
	}
	return d.shift(-int64(n))
}

func (d Day[P]) shift(n int64) (Day[P], bool) {
	date, ok := d.date.AddDays(n)
	if !ok {
		return Day[P]{}, false
	}
	return Day[P]{date: date, zone: d.zone}, true
}

// Compare orders days by date.
func (d Day[P]) Compare(o Day[P]) int { return d.date.Compare(o.date) }

// Equal reports whether d and o are the same date.
func (d Day[P]) Equal(o Day[P]) bool { return d.date == o.date }

// Before reports whether d is an earlier date than o.
func (d Day[P]) Before(o Day[P]) bool { return d.date.Before(o.date) }

// After reports whether d is a later date than o.
func (d Day[P]) After(o Day[P]) bool { return d.date.After(o.date) }

// String renders d as "2015-02-18 UTC".
func (d Day[P]) String() string { return d.date.String() + " " + d.zone.String() }

// MarshalText implements encoding.TextMarshaler.
func (d Day[P]) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
