package format

import (
	"time"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

type field struct {
	v   int64
	set bool
}

// put records v. Setting a field twice is fine as long as the values agree.
func (f *field) put(v int64) error {
	if f.set && f.v != v {
		return errors.Wrapf(ErrImpossible, "conflicting values %d and %d", f.v, v)
	}
	f.v, f.set = v, true
	return nil
}

func (f field) or(def int64) int64 {
	if f.set {
		return f.v
	}
	return def
}

// Parsed accumulates the fields found while parsing. Each field may be set
// once; setting it again with a different value fails with ErrImpossible.
// The To* methods resolve the fields into a value and check that every
// redundant field (a weekday next to a full date, say) agrees.
type Parsed struct {
	year, yearDiv100, yearMod100          field
	isoYear, isoYearDiv100, isoYearMod100 field

	month, day, ordinal        field
	weekFromSun, weekFromMon   field
	isoWeek, weekday           field
	hourDiv12, hourMod12       field
	minute, second, nanosecond field

	timestamp field
	offset    field
}

func outOfRange(what string, v int64) error {
	return errors.Wrapf(ErrOutOfRange, "%s %d", what, v)
}

func inRange(what string, v, lo, hi int64) error {
	if v < lo || v > hi {
		return outOfRange(what, v)
	}
	return nil
}

// Set records a numeric field after checking its range.
func (p *Parsed) Set(n Numeric, v int64) error {
	var err error
	switch n {
	case Year:
		err = inRange("year", v, civil.MinYear, civil.MaxYear)
		if err == nil {
			err = p.year.put(v)
		}
	case YearDiv100, IsoYearDiv100:
		err = inRange("century", v, 0, civil.MaxYear/100)
		if err == nil {
			err = pick(n == YearDiv100, &p.yearDiv100, &p.isoYearDiv100).put(v)
		}
	case YearMod100, IsoYearMod100:
		err = inRange("year of century", v, 0, 99)
		if err == nil {
			err = pick(n == YearMod100, &p.yearMod100, &p.isoYearMod100).put(v)
		}
	case IsoYear:
		err = inRange("ISO year", v, civil.MinYear, civil.MaxYear)
		if err == nil {
			err = p.isoYear.put(v)
		}
	case Month:
		err = inRange("month", v, 1, 12)
		if err == nil {
			err = p.month.put(v)
		}
	case Day:
		err = inRange("day", v, 1, 31)
		if err == nil {
			err = p.day.put(v)
		}
	case WeekFromSun, WeekFromMon:
		err = inRange("week", v, 0, 53)
		if err == nil {
			err = pick(n == WeekFromSun, &p.weekFromSun, &p.weekFromMon).put(v)
		}
	case IsoWeek:
		err = inRange("ISO week", v, 1, 53)
		if err == nil {
			err = p.isoWeek.put(v)
		}
	case NumDaysFromSun:
		err = inRange("weekday", v, 0, 6)
		if err == nil {
			err = p.weekday.put(v)
		}
	case WeekdayFromMon:
		err = inRange("weekday", v, 1, 7)
		if err == nil {
			err = p.weekday.put(v % 7)
		}
	case Ordinal:
		err = inRange("day of year", v, 1, 366)
		if err == nil {
			err = p.ordinal.put(v)
		}
	case Hour:
		err = inRange("hour", v, 0, 23)
		if err == nil {
			err = p.hourDiv12.put(v / 12)
		}
		if err == nil {
			err = p.hourMod12.put(v % 12)
		}
	case Hour12:
		err = inRange("hour", v, 1, 12)
		if err == nil {
			err = p.hourMod12.put(v % 12)
		}
	case Minute:
		err = inRange("minute", v, 0, 59)
		if err == nil {
			err = p.minute.put(v)
		}
	case Second:
		err = inRange("second", v, 0, 60)
		if err == nil {
			err = p.second.put(v)
		}
	case Nanosecond:
		err = inRange("nanosecond", v, 0, 999_999_999)
		if err == nil {
			err = p.nanosecond.put(v)
		}
	case UnixTimestamp:
		err = p.timestamp.put(v)
	default:
		err = errors.Wrapf(ErrBadFormat, "unknown numeric field %d", n)
	}
	return err
}

func pick(first bool, a, b *field) *field {
	if first {
		return a
	}
	return b
}

// SetWeekday records the day of the week.
func (p *Parsed) SetWeekday(w civil.Weekday) error {
	return p.Set(NumDaysFromSun, int64(w))
}

// SetAmPm records the half of the day.
func (p *Parsed) SetAmPm(pm bool) error {
	var v int64
	if pm {
		v = 1
	}
	return p.hourDiv12.put(v)
}

// SetOffset records the UTC offset in seconds east.
func (p *Parsed) SetOffset(secs int64) error {
	if err := inRange("offset", secs, -86_399, 86_399); err != nil {
		return err
	}
	return p.offset.put(secs)
}

// HasOffset reports whether an offset was recorded.
func (p *Parsed) HasOffset() bool { return p.offset.set }

// resolveYear combines a full year with its century and year-of-century
// parts. A lone two-digit year maps 00-69 to 2000-2069 and 70-99 to
// 1970-1999.
func resolveYear(y, q, r field) (int64, bool, error) {
	switch {
	case y.set:
		if (q.set || r.set) && y.v < 0 {
			return 0, false, outOfRange("year", y.v)
		}
		if (q.set && q.v != y.v/100) || (r.set && r.v != y.v%100) {
			return 0, false, errors.Wrapf(ErrImpossible, "year %d disagrees with its parts", y.v)
		}
		return y.v, true, nil
	case q.set && r.set:
		return q.v*100 + r.v, true, nil
	case r.set:
		if r.v < 70 {
			return 2000 + r.v, true, nil
		}
		return 1900 + r.v, true, nil
	case q.set:
		return 0, false, errors.Wrap(ErrNotEnough, "century without year")
	}
	return 0, false, nil
}

// withTimestamp returns a copy of p with the fields of the timestamp, read
// in a zone offset secs east, merged in.
func (p *Parsed) withTimestamp(off int64) (*Parsed, error) {
	if !p.timestamp.set {
		return p, nil
	}
	nano := p.nanosecond.or(0)
	if p.second.set && p.second.v == 60 {
		nano += 1_000_000_000
	}
	utc, ok := civil.DateTimeFromUnix(p.timestamp.v, uint32(nano))
	if !ok {
		return nil, outOfRange("timestamp", p.timestamp.v)
	}
	local, ok := utc.Shift(off)
	if !ok {
		return nil, outOfRange("timestamp", p.timestamp.v)
	}

	q := *p
	d, t := local.Date(), local.Time()
	sec := int64(t.Second())
	if t.IsLeapSecond() {
		sec++
	}
	for _, err := range []error{
		q.year.put(int64(d.Year())),
		q.month.put(int64(d.Month())),
		q.day.put(int64(d.Day())),
		q.hourDiv12.put(int64(t.Hour() / 12)),
		q.hourMod12.put(int64(t.Hour() % 12)),
		q.minute.put(int64(t.Minute())),
		q.second.put(sec),
		q.nanosecond.put(int64(t.Nanosecond() % 1_000_000_000)),
	} {
		if err != nil {
			return nil, err
		}
	}
	return &q, nil
}

// ToDate resolves the date fields. The supported combinations are year,
// month and day; year and ordinal; year, week and weekday (Sunday or
// Monday based); ISO year, ISO week and weekday; or a timestamp.
func (p *Parsed) ToDate() (civil.Date, error) {
	r, err := p.withTimestamp(p.offset.or(0))
	if err != nil {
		return civil.Date{}, err
	}
	return r.date()
}

func (p *Parsed) date() (civil.Date, error) {
	year, hasYear, err := resolveYear(p.year, p.yearDiv100, p.yearMod100)
	if err != nil {
		return civil.Date{}, err
	}
	isoYear, hasISO, err := resolveYear(p.isoYear, p.isoYearDiv100, p.isoYearMod100)
	if err != nil {
		return civil.Date{}, err
	}

	var (
		d  civil.Date
		ok bool
	)
	switch {
	case hasYear && p.month.set && p.day.set:
		d, ok = civil.DateOf(int(year), civil.Month(p.month.v), int(p.day.v))
	case hasYear && p.ordinal.set:
		d, ok = civil.DateFromOrdinal(int(year), int(p.ordinal.v))
	case hasYear && p.weekFromSun.set && p.weekday.set:
		d, ok = weekDate(int(year), int(p.weekFromSun.v), civil.Weekday(p.weekday.v), time.Sunday)
	case hasYear && p.weekFromMon.set && p.weekday.set:
		d, ok = weekDate(int(year), int(p.weekFromMon.v), civil.Weekday(p.weekday.v), time.Monday)
	case hasISO && p.isoWeek.set && p.weekday.set:
		d, ok = civil.DateFromISOWeek(int(isoYear), int(p.isoWeek.v), civil.Weekday(p.weekday.v))
	default:
		return civil.Date{}, errors.Wrap(ErrNotEnough, "date")
	}
	if !ok {
		return civil.Date{}, errors.Wrap(ErrOutOfRange, "no such date")
	}
	return d, p.verifyDate(d)
}

// weekDate returns the date in week of year, where weeks start on first
// and week 0 holds the days before the first such weekday.
func weekDate(year, week int, weekday, first civil.Weekday) (civil.Date, bool) {
	jan1, ok := civil.DateOf(year, time.January, 1)
	if !ok {
		return civil.Date{}, false
	}
	lead := (int(jan1.Weekday()) - int(first) + 7) % 7
	into := (int(weekday) - int(first) + 7) % 7
	d, ok := jan1.AddDays(int64((7-lead)%7 + (week-1)*7 + into))
	if !ok || d.Year() != year {
		return civil.Date{}, false
	}
	return d, true
}

func (p *Parsed) verifyDate(d civil.Date) error {
	year := int64(d.Year())
	isoYear, isoWeek := d.ISOWeek()
	checks := []struct {
		f    field
		want int64
	}{
		{p.year, year},
		{p.yearDiv100, floorDiv(year, 100)},
		{p.yearMod100, floorMod(year, 100)},
		{p.isoYear, int64(isoYear)},
		{p.isoYearDiv100, floorDiv(int64(isoYear), 100)},
		{p.isoYearMod100, floorMod(int64(isoYear), 100)},
		{p.month, int64(d.Month())},
		{p.day, int64(d.Day())},
		{p.ordinal, int64(d.YearDay())},
		{p.weekday, int64(d.Weekday())},
		{p.weekFromSun, int64(d.YearDay()-int(d.Weekday())+6) / 7},
		{p.weekFromMon, int64(d.YearDay()-fromMonday(d.Weekday())+6) / 7},
		{p.isoWeek, int64(isoWeek)},
	}
	for _, c := range checks {
		if c.f.set && c.f.v != c.want {
			return errors.Wrapf(ErrImpossible, "fields disagree with %s", d)
		}
	}
	return nil
}

// ToTime resolves the time fields. Hour and minute are required; a second
// of 60 yields a leap second.
func (p *Parsed) ToTime() (civil.Time, error) {
	r, err := p.withTimestamp(p.offset.or(0))
	if err != nil {
		return civil.Time{}, err
	}
	return r.clock()
}

func (p *Parsed) clock() (civil.Time, error) {
	if !p.hourDiv12.set || !p.hourMod12.set || !p.minute.set {
		return civil.Time{}, errors.Wrap(ErrNotEnough, "time")
	}
	sec := p.second.or(0)
	nano := p.nanosecond.or(0)
	if sec == 60 {
		sec, nano = 59, nano+1_000_000_000
	}
	t, ok := civil.TimeOfNano(int(p.hourDiv12.v*12+p.hourMod12.v), int(p.minute.v), int(sec), int(nano))
	if !ok {
		return civil.Time{}, errors.Wrap(ErrOutOfRange, "no such time")
	}
	return t, nil
}

// ToDateTime resolves a civil date-time. Any offset is ignored except to
// read a timestamp.
func (p *Parsed) ToDateTime() (civil.DateTime, error) {
	return p.dateTime(p.offset.or(0))
}

func (p *Parsed) dateTime(off int64) (civil.DateTime, error) {
	r, err := p.withTimestamp(off)
	if err != nil {
		return civil.DateTime{}, err
	}
	d, err := r.date()
	if err != nil {
		return civil.DateTime{}, err
	}
	t, err := r.clock()
	if err != nil {
		return civil.DateTime{}, err
	}
	return civil.NewDateTime(d, t), nil
}

// ToOffset returns the recorded offset, or ErrMissingOffset.
func (p *Parsed) ToOffset() (zone.Offset, error) {
	if !p.offset.set {
		return zone.Offset{}, ErrMissingOffset
	}
	o, _ := zone.East(int(p.offset.v))
	return o, nil
}

// ToInstant resolves an instant at the recorded offset. Without an offset
// it fails with ErrMissingOffset rather than guessing one.
func (p *Parsed) ToInstant() (instant.Instant[zone.Offset], error) {
	off, err := p.ToOffset()
	if err != nil {
		return instant.Instant[zone.Offset]{}, err
	}
	local, err := p.dateTime(p.offset.v)
	if err != nil {
		return instant.Instant[zone.Offset]{}, err
	}
	utc, ok := off.UTCFromLocal(local)
	if !ok {
		return instant.Instant[zone.Offset]{}, errors.Wrapf(ErrOutOfRange, "%s at %s", local, off)
	}
	return instant.FromUTC(utc, off), nil
}

// InZone resolves p in the zone z. A recorded offset must be one that z
// uses at that reading and selects between the two readings of an overlap;
// without it an overlap fails with ErrNotEnough and a gap with
// ErrImpossible.
func InZone[P zone.Provider](p *Parsed, z P) (instant.Instant[P], error) {
	var zero instant.Instant[P]

	var guess int64
	if p.timestamp.set {
		utc, ok := civil.DateTimeFromUnix(p.timestamp.v, uint32(p.nanosecond.or(0)))
		if !ok {
			return zero, outOfRange("timestamp", p.timestamp.v)
		}
		guess = int64(z.OffsetForUTC(utc).Seconds())
	}
	local, err := p.dateTime(guess)
	if err != nil {
		return zero, err
	}

	matches := func(i instant.Instant[P]) bool {
		return !p.offset.set || int64(i.Offset().Seconds()) == p.offset.v
	}
	res := instant.FromLocal(local, z)
	switch res.Kind() {
	case zone.KindSingle:
		i, _ := res.Single()
		if matches(i) {
			return i, nil
		}
	case zone.KindAmbiguous:
		early, late, _ := res.Both()
		switch em, lm := matches(early), matches(late); {
		case em && lm:
			return zero, errors.Wrapf(ErrNotEnough, "%s is ambiguous in %s", local, z)
		case em:
			return early, nil
		case lm:
			return late, nil
		}
	}
	return zero, errors.Wrapf(ErrImpossible, "%s does not exist in %s", local, z)
}
