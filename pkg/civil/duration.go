package civil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// A Duration is a signed span of time with nanosecond precision, stored as
// whole seconds plus a non-negative nanosecond adjustment. Its magnitude is
// bounded by math.MaxInt64 milliseconds, which comfortably spans the full
// civil date range.
type Duration struct {
	secs  int64
	nanos int32
}

var (
	// MaxDuration is the largest representable Duration.
	MaxDuration = Duration{secs: math.MaxInt64 / 1000, nanos: int32(math.MaxInt64 % 1000 * nanosPerMilli)}

	// MinDuration is the smallest representable Duration, -MaxDuration.
	MinDuration = Duration{secs: -math.MaxInt64/1000 - 1, nanos: int32(nanosPerSecond - math.MaxInt64%1000*nanosPerMilli)}
)

// durationOf normalizes secs and nanos so that nanos lies in [0, 1e9).
// Callers guarantee the result is in range.
func durationOf(secs, nanos int64) Duration {
	secs += nanos / nanosPerSecond
	nanos %= nanosPerSecond
	if nanos < 0 {
		nanos += nanosPerSecond
		secs--
	}
	return Duration{secs: secs, nanos: int32(nanos)}
}

func checkedDuration(secs, nanos int64) (Duration, bool) {
	d := durationOf(secs, nanos)
	if d.Compare(MinDuration) < 0 || d.Compare(MaxDuration) > 0 {
		return Duration{}, false
	}
	return d, true
}

func scaled(n, unit int64) (Duration, bool) {
	if n > MaxDuration.secs/unit || n < MinDuration.secs/unit {
		return Duration{}, false
	}
	return checkedDuration(n*unit, 0)
}

func must(d Duration, ok bool, what string, n int64) Duration {
	if !ok {
		panic(fmt.Sprintf("civil: %s(%d) out of bounds", what, n))
	}
	return d
}

// TryWeeks returns a Duration of n weeks, or false on overflow.
func TryWeeks(n int64) (Duration, bool) { return scaled(n, 7*secondsPerDay) }

// TryDays returns a Duration of n days, or false on overflow.
func TryDays(n int64) (Duration, bool) { return scaled(n, secondsPerDay) }

// TryHours returns a Duration of n hours, or false on overflow.
func TryHours(n int64) (Duration, bool) { return scaled(n, 3600) }

// TryMinutes returns a Duration of n minutes, or false on overflow.
func TryMinutes(n int64) (Duration, bool) { return scaled(n, 60) }

// TrySeconds returns a Duration of n seconds, or false on overflow.
func TrySeconds(n int64) (Duration, bool) { return scaled(n, 1) }

// TryMilliseconds returns a Duration of n milliseconds, or false on overflow.
func TryMilliseconds(n int64) (Duration, bool) {
	if n == math.MinInt64 {
		return Duration{}, false
	}
	return durationOf(n/1000, n%1000*nanosPerMilli), true
}

// Weeks returns a Duration of n weeks. It panics on overflow.
func Weeks(n int64) Duration {
	d, ok := TryWeeks(n)
	return must(d, ok, "Weeks", n)
}

// Days returns a Duration of n days. It panics on overflow.
func Days(n int64) Duration {
	d, ok := TryDays(n)
	return must(d, ok, "Days", n)
}

// Hours returns a Duration of n hours. It panics on overflow.
func Hours(n int64) Duration {
	d, ok := TryHours(n)
	return must(d, ok, "Hours", n)
}

// Minutes returns a Duration of n minutes. It panics on overflow.
func Minutes(n int64) Duration {
	d, ok := TryMinutes(n)
	return must(d, ok, "Minutes", n)
}

// Seconds returns a Duration of n seconds. It panics on overflow.
func Seconds(n int64) Duration {
	d, ok := TrySeconds(n)
	return must(d, ok, "Seconds", n)
}

// Milliseconds returns a Duration of n milliseconds. It panics only for math.MinInt64.
func Milliseconds(n int64) Duration {
	d, ok := TryMilliseconds(n)
	return must(d, ok, "Milliseconds", n)
}

// Microseconds returns a Duration of n microseconds.
func Microseconds(n int64) Duration {
	return durationOf(n/1_000_000, n%1_000_000*nanosPerMicro)
}

// Nanoseconds returns a Duration of n nanoseconds.
func Nanoseconds(n int64) Duration {
	return durationOf(n/nanosPerSecond, n%nanosPerSecond)
}

// FromStd converts a time.Duration.
func FromStd(d time.Duration) Duration {
	return Nanoseconds(int64(d))
}

// Std converts d to a time.Duration, or reports false if d does not fit.
func (d Duration) Std() (time.Duration, bool) {
	n, ok := d.Nanoseconds()
	return time.Duration(n), ok
}

// Seconds returns the number of whole seconds in d, truncated toward zero.
func (d Duration) Seconds() int64 {
	if d.secs < 0 && d.nanos > 0 {
		return d.secs + 1
	}
	return d.secs
}

// SubsecNanos returns the nanoseconds remaining after Seconds, carrying the
// sign of d.
func (d Duration) SubsecNanos() int32 {
	if d.secs < 0 && d.nanos > 0 {
		return d.nanos - nanosPerSecond
	}
	return d.nanos
}

// Minutes returns the number of whole minutes in d, truncated toward zero.
func (d Duration) Minutes() int64 { return d.Seconds() / 60 }

// Hours returns the number of whole hours in d, truncated toward zero.
func (d Duration) Hours() int64 { return d.Seconds() / 3600 }

// Days returns the number of whole days in d, truncated toward zero.
func (d Duration) Days() int64 { return d.Seconds() / secondsPerDay }

// Weeks returns the number of whole weeks in d, truncated toward zero.
func (d Duration) Weeks() int64 { return d.Days() / 7 }

// Milliseconds returns the total number of whole milliseconds in d.
func (d Duration) Milliseconds() int64 {
	return d.Seconds()*1000 + int64(d.SubsecNanos()/nanosPerMilli)
}

// Microseconds returns the total number of whole microseconds in d, or false
// on overflow.
func (d Duration) Microseconds() (int64, bool) {
	return d.total(1_000_000, nanosPerMicro)
}

// Nanoseconds returns the total number of nanoseconds in d, or false on
// overflow.
func (d Duration) Nanoseconds() (int64, bool) {
	return d.total(nanosPerSecond, 1)
}

func (d Duration) total(perSecond, divisor int64) (int64, bool) {
	secs := d.Seconds()
	if secs > math.MaxInt64/perSecond || secs < math.MinInt64/perSecond {
		return 0, false
	}
	whole := secs * perSecond
	sub := int64(d.SubsecNanos()) / divisor
	if (sub > 0 && whole > math.MaxInt64-sub) || (sub < 0 && whole < math.MinInt64-sub) {
		return 0, false
	}
	return whole + sub, true
}

// Add returns d+o, or false on overflow.
func (d Duration) Add(o Duration) (Duration, bool) {
	return checkedDuration(d.secs+o.secs, int64(d.nanos)+int64(o.nanos))
}

// Sub returns d-o, or false on overflow.
func (d Duration) Sub(o Duration) (Duration, bool) {
	return checkedDuration(d.secs-o.secs, int64(d.nanos)-int64(o.nanos))
}

// Neg returns -d. The range is symmetric, so Neg never overflows.
func (d Duration) Neg() Duration {
	return durationOf(-d.secs, -int64(d.nanos))
}

// Abs returns the absolute value of d.
func (d Duration) Abs() Duration {
	if d.secs < 0 {
		return d.Neg()
	}
	return d
}

// IsZero reports whether d is zero.
func (d Duration) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

// Compare returns -1, 0 or +1 depending on whether d is shorter than, equal
// to or longer than o.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.secs < o.secs:
		return -1
	case d.secs > o.secs:
		return 1
	case d.nanos < o.nanos:
		return -1
	case d.nanos > o.nanos:
		return 1
	}
	return 0
}

// String returns d in ISO 8601 duration form, for example "P1DT3661.5S" or
// "-PT1S". The zero duration is "PT0S".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	abs := d.Abs()
	days := abs.secs / secondsPerDay
	secs := abs.secs % secondsPerDay

	var b strings.Builder
	if d.secs < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if days != 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if secs != 0 || abs.nanos != 0 {
		fmt.Fprintf(&b, "T%d", secs)
		if abs.nanos != 0 {
			frac := strings.TrimRight(fmt.Sprintf("%09d", abs.nanos), "0")
			b.WriteString("." + frac)
		}
		b.WriteByte('S')
	}
	return b.String()
}
