package civil

import (
	"fmt"
	"time"
)

// Date computations follow the standard library's absolute-day approach:
// days are counted from a zero year far below MinYear so that the cycle
// arithmetic only ever sees non-negative numbers.

const (
	// MinYear and MaxYear bound every representable Date.
	MinYear = -262144
	MaxYear = 262143

	// The zero year for internal calculations. Must be 1 mod 400 and
	// below MinYear.
	absoluteZeroYear = -280399

	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// Month and Weekday reuse the standard library's enumerations so that
// time.January and time.Monday work unchanged.
type (
	Month   = time.Month
	Weekday = time.Weekday
)

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

var (
	// absolute day number of 1970-01-01
	unixToAbsolute = daysBeforeYear(1970)

	minDays = daysBeforeYear(MinYear) - unixToAbsolute
	maxDays = daysBeforeYear(MaxYear+1) - 1 - unixToAbsolute

	// MinDate is the earliest representable date, MinYear-01-01.
	MinDate = Date{days: int32(minDays)}

	// MaxDate is the latest representable date, MaxYear-12-31.
	MaxDate = Date{days: int32(maxDays)}
)

// IsLeap reports whether year is a leap year in the proleptic Gregorian calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	if month == time.February && IsLeap(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

// daysBeforeYear returns the number of days from the absolute zero year to
// January 1st of year.
func daysBeforeYear(year int) int64 {
	y := int64(year) - absoluteZeroYear

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y
	return d
}

// absDate computes the year and zero-based day of year of an absolute day.
func absDate(abs int64) (year int, yday int) {
	d := abs

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles. The last cycle has one extra leap year, so
	// on the last day of that year, d / daysPer100Years will be 4 instead
	// of 3. Cut it back down to 3 by subtracting n>>2.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle. The last year is a leap year,
	// so on its last day d / 365 will be 4 instead of 3.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	return int(y + absoluteZeroYear), int(d)
}

// monthDay splits a zero-based day of year into month and day of month.
func monthDay(year, yday int) (Month, int) {
	day := yday
	if IsLeap(year) {
		switch {
		case day > 31+29-1:
			// After leap day; pretend it wasn't there.
			day--
		case day == 31+29-1:
			return time.February, 29
		}
	}

	// Estimate month on assumption that every month has 31 days.
	// The estimate may be too low by at most one month, so adjust.
	month := Month(day / 31)
	end := daysBefore[month+1]
	var begin int
	if day >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}
	return month + 1, day - begin + 1
}

// A Date is a day on the proleptic Gregorian calendar, stored as the number
// of days since 1970-01-01. The zero value is 1970-01-01.
//
// Dates are comparable with == and ordered by Compare.
type Date struct {
	days int32
}

// DateOf returns the date for year, month and day. It reports false if any
// component is out of range; unlike time.Date it never normalizes.
func DateOf(year int, month Month, day int) (Date, bool) {
	if year < MinYear || year > MaxYear {
		return Date{}, false
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, false
	}
	d := daysBeforeYear(year) + int64(daysBefore[month-1]) + int64(day-1)
	if IsLeap(year) && month >= time.March {
		d++
	}
	return Date{days: int32(d - unixToAbsolute)}, true
}

// MustDate is like DateOf but panics on invalid input. It is intended for
// constants in tests and initialization code.
func MustDate(year int, month Month, day int) Date {
	d, ok := DateOf(year, month, day)
	if !ok {
		panic(fmt.Sprintf("civil: invalid date %d-%02d-%02d", year, int(month), day))
	}
	return d
}

// DateFromOrdinal returns the date for the given year and 1-based day of year.
func DateFromOrdinal(year, yday int) (Date, bool) {
	if year < MinYear || year > MaxYear {
		return Date{}, false
	}
	days := 365
	if IsLeap(year) {
		days = 366
	}
	if yday < 1 || yday > days {
		return Date{}, false
	}
	d := daysBeforeYear(year) + int64(yday-1)
	return Date{days: int32(d - unixToAbsolute)}, true
}

// DateFromISOWeek returns the date for an ISO 8601 week-numbering year,
// week and weekday.
func DateFromISOWeek(year, week int, weekday Weekday) (Date, bool) {
	if week < 1 || week > isoWeeksIn(year) || weekday < time.Sunday || weekday > time.Saturday {
		return Date{}, false
	}
	jan4, ok := DateOf(year, time.January, 4)
	if !ok {
		return Date{}, false
	}
	monday := int64(jan4.days) - int64(isoWeekdayIndex(jan4.Weekday()))
	return DateFromDays(monday + int64(week-1)*7 + int64(isoWeekdayIndex(weekday)))
}

// isoWeekdayIndex returns 0 for Monday through 6 for Sunday.
func isoWeekdayIndex(w Weekday) int {
	return (int(w) + 6) % 7
}

// isoWeeksIn returns the number of ISO weeks (52 or 53) in an ISO year.
func isoWeeksIn(year int) int {
	jan1, ok := DateOf(year, time.January, 1)
	if !ok {
		return 0
	}
	w := jan1.Weekday()
	if w == time.Thursday || (w == time.Wednesday && IsLeap(year)) {
		return 53
	}
	return 52
}

// DateFromDays returns the date that lies days after 1970-01-01.
func DateFromDays(days int64) (Date, bool) {
	if days < minDays || days > maxDays {
		return Date{}, false
	}
	return Date{days: int32(days)}, true
}

// Days returns the number of days since 1970-01-01.
func (d Date) Days() int64 {
	return int64(d.days)
}

func (d Date) abs() int64 {
	return int64(d.days) + unixToAbsolute
}

// Date returns the year, month and day of d.
func (d Date) Date() (year int, month Month, day int) {
	year, yday := absDate(d.abs())
	month, day = monthDay(year, yday)
	return year, month, day
}

// Year returns the year in which d occurs.
func (d Date) Year() int {
	year, _ := absDate(d.abs())
	return year
}

// Month returns the month of the year of d.
func (d Date) Month() Month {
	_, month, _ := d.Date()
	return month
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	_, _, day := d.Date()
	return day
}

// YearDay returns the day of the year of d, in [1,365] for non-leap years
// and [1,366] in leap years.
func (d Date) YearDay() int {
	_, yday := absDate(d.abs())
	return yday + 1
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() Weekday {
	// 1970-01-01 was a Thursday.
	w := (int64(d.days) + int64(time.Thursday)) % 7
	if w < 0 {
		w += 7
	}
	return Weekday(w)
}

// ISOWeek returns the ISO 8601 year and week number in which d occurs. Week
// ranges from 1 to 53. Jan 01 to Jan 03 of year n might belong to week 52 or
// 53 of year n-1, and Dec 29 to Dec 31 might belong to week 1 of year n+1.
func (d Date) ISOWeek() (year, week int) {
	// Shift to the Thursday of the same ISO week; its calendar year is the
	// ISO year.
	thursday := int64(d.days) + int64(3-isoWeekdayIndex(d.Weekday()))
	year, yday := absDate(thursday + unixToAbsolute)
	return year, yday/7 + 1
}

// IsLeapYear reports whether d falls in a leap year.
func (d Date) IsLeapYear() bool {
	return IsLeap(d.Year())
}

// AddDays returns d shifted by n days. It reports false if the result leaves
// the representable range.
func (d Date) AddDays(n int64) (Date, bool) {
	if n > maxDays-minDays || n < minDays-maxDays {
		return Date{}, false
	}
	return DateFromDays(int64(d.days) + n)
}

// Succ returns the day after d, or false if d is MaxDate.
func (d Date) Succ() (Date, bool) {
	return d.AddDays(1)
}

// Pred returns the day before d, or false if d is MinDate.
func (d Date) Pred() (Date, bool) {
	return d.AddDays(-1)
}

// SubDate returns the number of days from o to d.
func (d Date) SubDate(o Date) int64 {
	return int64(d.days) - int64(o.days)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.days < o.days:
		return -1
	case d.days > o.days:
		return 1
	}
	return 0
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool { return d.days < o.days }

// After reports whether d is after o.
func (d Date) After(o Date) bool { return d.days > o.days }

// At combines d with a time of day.
func (d Date) At(t Time) DateTime {
	return DateTime{date: d, time: t}
}

// AtHMS combines d with the given hour, minute and second.
func (d Date) AtHMS(hour, min, sec int) (DateTime, bool) {
	t, ok := TimeOf(hour, min, sec)
	if !ok {
		return DateTime{}, false
	}
	return d.At(t), true
}

// String returns d in ISO 8601 form. Years outside 0000..9999 carry an
// explicit sign.
func (d Date) String() string {
	year, month, day := d.Date()
	if year >= 0 && year <= 9999 {
		return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	}
	return fmt.Sprintf("%+05d-%02d-%02d", year, int(month), day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
