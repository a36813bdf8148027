package civil

import "fmt"

// A DateTime is a wall-clock reading: a Date and a Time with no zone.
type DateTime struct {
	date Date
	time Time
}

var (
	// MinDateTime is midnight on MinDate.
	MinDateTime = DateTime{date: MinDate}

	// MaxDateTime is the last nanosecond of MaxDate, leap band included.
	MaxDateTime = DateTime{date: MaxDate, time: Time{secs: secondsPerDay - 1, frac: leapBandEnd - 1}}
)

// NewDateTime combines a date and a time of day.
func NewDateTime(d Date, t Time) DateTime {
	return DateTime{date: d, time: t}
}

// DateTimeOf builds a DateTime from its components.
func DateTimeOf(year int, month Month, day, hour, min, sec, nano int) (DateTime, bool) {
	d, ok := DateOf(year, month, day)
	if !ok {
		return DateTime{}, false
	}
	t, ok := TimeOfNano(hour, min, sec, nano)
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date: d, time: t}, true
}

// DateTimeFromUnix returns the UTC reading secs seconds and nanos
// nanoseconds after the Unix epoch. A nanos value in the leap band is
// accepted only when the resulting second is :59.
func DateTimeFromUnix(secs int64, nanos uint32) (DateTime, bool) {
	if nanos >= leapBandEnd {
		return DateTime{}, false
	}
	days := secs / secondsPerDay
	sod := secs % secondsPerDay
	if sod < 0 {
		sod += secondsPerDay
		days--
	}
	d, ok := DateFromDays(days)
	if !ok {
		return DateTime{}, false
	}
	t, ok := TimeFromSecondsOfDay(int(sod), int(nanos))
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date: d, time: t}, true
}

// Date returns the date part of dt.
func (dt DateTime) Date() Date { return dt.date }

// Time returns the time-of-day part of dt.
func (dt DateTime) Time() Time { return dt.time }

// Unix returns the number of seconds from the Unix epoch to dt, treating dt
// as a UTC reading. A leap second counts as its preceding second.
func (dt DateTime) Unix() int64 {
	return dt.date.Days()*secondsPerDay + int64(dt.time.secs)
}

// AddDuration returns dt+d, or false if the result leaves the date range.
func (dt DateTime) AddDuration(d Duration) (DateTime, bool) {
	t, carry := dt.time.OverflowingAdd(d)
	date, ok := dt.date.AddDays(carry / secondsPerDay)
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date: date, time: t}, true
}

// Shift moves dt by a whole number of seconds, as when applying a zone
// offset. Unlike AddDuration it keeps a leap second in place when the
// shifted second is still :59; otherwise the leap second is folded into the
// following second.
func (dt DateTime) Shift(secs int64) (DateTime, bool) {
	s := int64(dt.time.secs) + secs
	days := s / secondsPerDay
	sod := s % secondsPerDay
	if sod < 0 {
		sod += secondsPerDay
		days--
	}
	frac := dt.time.frac
	if frac >= nanosPerSecond && sod%60 != 59 {
		frac -= nanosPerSecond
		sod++
		if sod == secondsPerDay {
			sod = 0
			days++
		}
	}
	date, ok := dt.date.AddDays(days)
	if !ok {
		return DateTime{}, false
	}
	return DateTime{date: date, time: Time{secs: uint32(sod), frac: frac}}, true
}

// SubDuration returns dt-d, or false if the result leaves the date range.
func (dt DateTime) SubDuration(d Duration) (DateTime, bool) {
	return dt.AddDuration(d.Neg())
}

// Sub returns the signed duration dt-o. Leap seconds are counted as
// described on Time.Sub.
func (dt DateTime) Sub(o DateTime) Duration {
	days := Seconds(dt.date.SubDate(o.date) * secondsPerDay)
	d, _ := days.Add(dt.time.Sub(o.time))
	return d
}

// Compare returns -1, 0 or +1 depending on whether dt is before, equal to
// or after o.
func (dt DateTime) Compare(o DateTime) int {
	if c := dt.date.Compare(o.date); c != 0 {
		return c
	}
	return dt.time.Compare(o.time)
}

// Before reports whether dt is before o.
func (dt DateTime) Before(o DateTime) bool { return dt.Compare(o) < 0 }

// After reports whether dt is after o.
func (dt DateTime) After(o DateTime) bool { return dt.Compare(o) > 0 }

// String returns dt as YYYY-MM-DDTHH:MM:SS with an optional fraction.
func (dt DateTime) String() string {
	return fmt.Sprintf("%sT%s", dt.date, dt.time)
}

// MarshalText implements encoding.TextMarshaler.
func (dt DateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}
