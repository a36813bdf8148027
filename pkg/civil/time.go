package civil

import "fmt"

const (
	secondsPerDay  = 86_400
	nanosPerSecond = 1_000_000_000
	leapBandEnd    = 2 * nanosPerSecond
	nanosPerMilli  = 1_000_000
	nanosPerMicro  = 1_000
)

// A Time is a time of day with nanosecond precision. The zero value is
// midnight.
//
// The nanosecond field ranges over [0, 2e9). Values of 1e9 and above are
// legal only at second 59 and denote the leap second hh:mm:60.
type Time struct {
	secs uint32
	frac uint32
}

// Midnight is 00:00:00.
var Midnight = Time{}

// TimeOf returns the time for hour, minute and second.
func TimeOf(hour, min, sec int) (Time, bool) {
	return TimeOfNano(hour, min, sec, 0)
}

// TimeOfMilli returns the time for hour, minute, second and millisecond.
// A millisecond of 1000 or more denotes a leap second.
func TimeOfMilli(hour, min, sec, milli int) (Time, bool) {
	if milli < 0 || milli >= 2_000 {
		return Time{}, false
	}
	return TimeOfNano(hour, min, sec, milli*nanosPerMilli)
}

// TimeOfMicro returns the time for hour, minute, second and microsecond.
// A microsecond of 1_000_000 or more denotes a leap second.
func TimeOfMicro(hour, min, sec, micro int) (Time, bool) {
	if micro < 0 || micro >= 2_000_000 {
		return Time{}, false
	}
	return TimeOfNano(hour, min, sec, micro*nanosPerMicro)
}

// TimeOfNano returns the time for hour, minute, second and nanosecond.
// A nanosecond of 1e9 or more denotes a leap second and requires sec == 59.
func TimeOfNano(hour, min, sec, nano int) (Time, bool) {
	if hour < 0 || hour >= 24 || min < 0 || min >= 60 || sec < 0 || sec >= 60 {
		return Time{}, false
	}
	if nano < 0 || nano >= leapBandEnd || (nano >= nanosPerSecond && sec != 59) {
		return Time{}, false
	}
	return Time{secs: uint32(hour*3600 + min*60 + sec), frac: uint32(nano)}, true
}

// TimeFromSecondsOfDay returns the time secs seconds and nano nanoseconds
// after midnight.
func TimeFromSecondsOfDay(secs, nano int) (Time, bool) {
	if secs < 0 || secs >= secondsPerDay || nano < 0 || nano >= leapBandEnd {
		return Time{}, false
	}
	if nano >= nanosPerSecond && secs%60 != 59 {
		return Time{}, false
	}
	return Time{secs: uint32(secs), frac: uint32(nano)}, true
}

// MustTime is like TimeOfNano but panics on invalid input.
func MustTime(hour, min, sec, nano int) Time {
	t, ok := TimeOfNano(hour, min, sec, nano)
	if !ok {
		panic(fmt.Sprintf("civil: invalid time %02d:%02d:%02d.%09d", hour, min, sec, nano))
	}
	return t
}

// Hour returns the hour, in [0, 23].
func (t Time) Hour() int { return int(t.secs / 3600) }

// Minute returns the minute, in [0, 59].
func (t Time) Minute() int { return int(t.secs / 60 % 60) }

// Second returns the second, in [0, 59]. A leap second reports 59.
func (t Time) Second() int { return int(t.secs % 60) }

// Nanosecond returns the raw nanosecond field, in [0, 2e9).
func (t Time) Nanosecond() int { return int(t.frac) }

// SecondsFromMidnight returns the number of whole seconds since midnight.
func (t Time) SecondsFromMidnight() int { return int(t.secs) }

// SubsecMillis returns the nanosecond field divided by 1e6.
func (t Time) SubsecMillis() int { return int(t.frac / nanosPerMilli) }

// SubsecMicros returns the nanosecond field divided by 1e3.
func (t Time) SubsecMicros() int { return int(t.frac / nanosPerMicro) }

// SubsecNanos returns the nanosecond field.
func (t Time) SubsecNanos() int { return int(t.frac) }

// IsLeapSecond reports whether t lies inside a leap second.
func (t Time) IsLeapSecond() bool { return t.frac >= nanosPerSecond }

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after o.
func (t Time) Compare(o Time) int {
	switch {
	case t.secs < o.secs:
		return -1
	case t.secs > o.secs:
		return 1
	case t.frac < o.frac:
		return -1
	case t.frac > o.frac:
		return 1
	}
	return 0
}

// OverflowingAdd adds d to t, wrapping around midnight. It returns the new
// time and the number of seconds carried out of the day, which is always a
// multiple of 86400.
//
// Inside a leap second, a delta that keeps the result within the leap
// second stays there; otherwise the leap second counts as one ordinary
// second.
func (t Time) OverflowingAdd(d Duration) (Time, int64) {
	secs := int64(t.secs)
	frac := int64(t.frac)

	if frac >= nanosPerSecond {
		rfrac := leapBandEnd - frac
		switch {
		case d.Compare(Nanoseconds(rfrac)) >= 0:
			d, _ = d.Sub(Nanoseconds(rfrac))
			secs++
			frac = 0
		case d.Compare(Nanoseconds(-frac)) < 0:
			d, _ = d.Add(Nanoseconds(frac))
			frac = 0
		default:
			// |d| is below two seconds here.
			frac += d.secs*nanosPerSecond + int64(d.nanos)
			return Time{secs: uint32(secs), frac: uint32(frac)}, 0
		}
	}

	rhsSecs := d.secs
	rhsFrac := int64(d.nanos)
	inDay := rhsSecs % secondsPerDay
	carry := rhsSecs - inDay

	secs += inDay
	frac += rhsFrac
	if frac >= nanosPerSecond {
		frac -= nanosPerSecond
		secs++
	}
	if secs < 0 {
		secs += secondsPerDay
		carry -= secondsPerDay
	} else if secs >= secondsPerDay {
		secs -= secondsPerDay
		carry += secondsPerDay
	}
	return Time{secs: uint32(secs), frac: uint32(frac)}, carry
}

// Sub returns the signed duration t-o within a single day. A leap second on
// either side counts as one additional second when the other side is past it.
func (t Time) Sub(o Time) Duration {
	secs := int64(t.secs) - int64(o.secs)
	frac := int64(t.frac) - int64(o.frac)

	var adjust int64
	switch {
	case t.secs > o.secs && o.frac >= nanosPerSecond:
		adjust = 1
	case t.secs < o.secs && t.frac >= nanosPerSecond:
		adjust = -1
	}
	return durationOf(secs+adjust, frac)
}

// String returns t as HH:MM:SS with the shortest of a 3, 6 or 9 digit
// fraction when the fraction is non-zero. A leap second renders as second 60.
func (t Time) String() string {
	sec := t.Second()
	nano := int(t.frac)
	if nano >= nanosPerSecond {
		sec++
		nano -= nanosPerSecond
	}
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), sec)
	switch {
	case nano == 0:
		return base
	case nano%nanosPerMilli == 0:
		return fmt.Sprintf("%s.%03d", base, nano/nanosPerMilli)
	case nano%nanosPerMicro == 0:
		return fmt.Sprintf("%s.%06d", base, nano/nanosPerMicro)
	}
	return fmt.Sprintf("%s.%09d", base, nano)
}

// MarshalText implements encoding.TextMarshaler.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
