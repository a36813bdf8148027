package zone

import (
	"github.com/msto63/chronos/pkg/civil"
)

// Rules is a provider driven by a POSIX TZ string: a standard offset and,
// optionally, a daylight offset with yearly start and end rules. Build one
// with ParsePOSIX.
type Rules struct {
	tz      string
	stdName string
	std     Offset
	dstName string
	dst     Offset
	hasDST  bool
	start   transitionRule
	end     transitionRule
}

// StandardOffset returns the offset outside daylight saving time.
func (r Rules) StandardOffset() Offset { return r.std }

// DaylightOffset returns the daylight saving offset, if the rules have one.
func (r Rules) DaylightOffset() (Offset, bool) { return r.dst, r.hasDST }

// Names returns the standard and daylight abbreviations. The daylight name
// is empty when the rules have no daylight saving time.
func (r Rules) Names() (std, dst string) { return r.stdName, r.dstName }

// IsDST reports whether daylight saving time is in effect at utc.
func (r Rules) IsDST(utc civil.DateTime) bool {
	if !r.hasDST {
		return false
	}
	t := utc.Unix()
	year := r.localYear(t)
	start := r.start.unix(year) - int64(r.std.secs)
	end := r.end.unix(year) - int64(r.dst.secs)
	if start < end {
		return t >= start && t < end
	}
	// Southern hemisphere: daylight time spans the new year.
	return t < end || t >= start
}

// localYear returns the calendar year of t on the standard-time wall clock.
func (r Rules) localYear(t int64) int {
	shifted := t + int64(r.std.secs)
	days := shifted / 86_400
	if shifted%86_400 < 0 {
		days--
	}
	d, ok := civil.DateFromDays(days)
	if !ok {
		d, _ = civil.DateFromDays(t / 86_400)
	}
	return d.Year()
}

// OffsetForUTC implements Provider.
func (r Rules) OffsetForUTC(utc civil.DateTime) Offset {
	if r.IsDST(utc) {
		return r.dst
	}
	return r.std
}

// ResolveLocal implements Provider.
func (r Rules) ResolveLocal(local civil.DateTime) Resolution[Offset] {
	if !r.hasDST {
		return Single(r.std)
	}
	return ResolveByCandidates(r, local, r.std, r.dst)
}

// Abbreviation implements Abbreviator.
func (r Rules) Abbreviation(utc civil.DateTime) string {
	if r.IsDST(utc) {
		return r.dstName
	}
	return r.stdName
}

// MaxTransition implements TransitionBounder: the clock only ever jumps by
// the distance between the two offsets.
func (r Rules) MaxTransition() civil.Duration {
	if !r.hasDST {
		return civil.Duration{}
	}
	return Offset{secs: r.dst.secs - r.std.secs}.Duration().Abs()
}

// String returns the POSIX TZ string the rules were parsed from.
func (r Rules) String() string { return r.tz }

// unix returns the Unix second at which the rule fires in year, measured on
// a clock that reads local time but ticks as UTC.
func (tr transitionRule) unix(year int) int64 {
	jan1, ok := civil.DateOf(year, civil.Month(1), 1)
	if !ok {
		return 0
	}

	var yday int64
	switch tr.kind {
	case ruleJulian:
		yday = int64(tr.day - 1)
		if civil.IsLeap(year) && tr.day >= 60 {
			yday++
		}
	case ruleDayOfYear:
		yday = int64(tr.day)
	case ruleMonthWeekDay:
		month := civil.Month(tr.month)
		first, _ := civil.DateOf(year, month, 1)
		day := (tr.day-int(first.Weekday())+7)%7 + 1 + (tr.week-1)*7
		for day > civil.DaysIn(year, month) {
			day -= 7
		}
		yday = first.SubDate(jan1) + int64(day-1)
	}
	return (jan1.Days()+yday)*86_400 + int64(tr.time)
}
