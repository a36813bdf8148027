package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// Alignment positions formatted text inside a wider field.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Formatted is a value paired with the items to render it. Rendering is
// deferred until String, Render, Align or a fmt verb asks for it.
//
// Fields the value does not have (a zone for a civil date-time, a time for
// a date) make rendering fail with ErrBadFormat when an item needs them.
type Formatted struct {
	date   *civil.Date
	time   *civil.Time
	offset *zone.Offset
	name   string
	items  []Item
}

// FormatItems renders a local date and time with an offset and zone name.
func FormatItems(date civil.Date, t civil.Time, offset zone.Offset, zoneName string, items []Item) Formatted {
	return Formatted{date: &date, time: &t, offset: &offset, name: zoneName, items: items}
}

// Format renders i in its own zone using a strftime layout. %Z renders the
// provider's abbreviation, falling back to the numeric offset.
func Format[P zone.Provider](i instant.Instant[P], layout string) Formatted {
	return FormatInstantItems(i, StrftimeItems(layout))
}

// FormatInstantItems is Format with precompiled items.
func FormatInstantItems[P zone.Provider](i instant.Instant[P], items []Item) Formatted {
	local := i.Local()
	return FormatItems(local.Date(), local.Time(), i.Offset(), zone.AbbreviationOf(i.Zone(), i.UTC()), items)
}

// FormatDateTime renders a civil date-time. It has no zone.
func FormatDateTime(dt civil.DateTime, layout string) Formatted {
	d, t := dt.Date(), dt.Time()
	return Formatted{date: &d, time: &t, items: StrftimeItems(layout)}
}

// FormatDate renders a civil date.
func FormatDate(d civil.Date, layout string) Formatted {
	return Formatted{date: &d, items: StrftimeItems(layout)}
}

// FormatTime renders a civil time of day.
func FormatTime(t civil.Time, layout string) Formatted {
	return Formatted{time: &t, items: StrftimeItems(layout)}
}

// Render returns the rendered text, or the first error encountered.
func (f Formatted) Render() (string, error) {
	var b strings.Builder
	for _, it := range f.items {
		var err error
		switch it.Kind {
		case KindLiteral, KindSpace:
			b.WriteString(it.Text)
		case KindNumeric:
			err = f.writeNumeric(&b, it.Numeric, it.Pad)
		case KindFixed:
			err = f.writeFixed(&b, it.Fixed)
		default:
			err = errors.Wrapf(ErrBadFormat, "unknown directive %q", it.Text)
		}
		if err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// String returns the rendered text. A rendering error is reported inline
// the way package fmt reports bad verbs.
func (f Formatted) String() string {
	s, err := f.Render()
	if err != nil {
		return "%!(" + err.Error() + ")"
	}
	return s
}

// Align renders f padded with fill to at least width runes.
func (f Formatted) Align(width int, a Alignment, fill rune) string {
	s := f.String()
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	pad := func(k int) string { return strings.Repeat(string(fill), k) }
	switch a {
	case AlignLeft:
		return s + pad(n)
	case AlignCenter:
		return pad(n/2) + s + pad(n-n/2)
	}
	return pad(n) + s
}

// Format implements fmt.Formatter. The s and v verbs honor width, right
// aligned by default and left aligned with the '-' flag.
func (f Formatted) Format(st fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		width, ok := st.Width()
		if !ok {
			fmt.Fprint(st, f.String())
			return
		}
		a := AlignRight
		if st.Flag('-') {
			a = AlignLeft
		}
		fmt.Fprint(st, f.Align(width, a, ' '))
	case 'q':
		fmt.Fprintf(st, "%q", f.String())
	default:
		fmt.Fprintf(st, "%%!%c(format.Formatted=%s)", verb, f.String())
	}
}

func missing(what string) error {
	return errors.Wrapf(ErrBadFormat, "value has no %s", what)
}

func (f Formatted) numeric(n Numeric) (int64, error) {
	switch n {
	case Hour, Hour12, Minute, Second, Nanosecond:
		if f.time == nil {
			return 0, missing("time")
		}
		t := *f.time
		switch n {
		case Hour:
			return int64(t.Hour()), nil
		case Hour12:
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			return int64(h), nil
		case Minute:
			return int64(t.Minute()), nil
		case Second:
			s := t.Second()
			if t.IsLeapSecond() {
				s++
			}
			return int64(s), nil
		}
		return int64(t.Nanosecond() % 1_000_000_000), nil
	case UnixTimestamp:
		if f.date == nil || f.time == nil {
			return 0, missing("date and time")
		}
		secs := f.date.At(*f.time).Unix()
		if f.offset != nil {
			secs -= int64(f.offset.Seconds())
		}
		return secs, nil
	}

	if f.date == nil {
		return 0, missing("date")
	}
	d := *f.date
	year := int64(d.Year())
	switch n {
	case Year:
		return year, nil
	case YearDiv100:
		return floorDiv(year, 100), nil
	case YearMod100:
		return floorMod(year, 100), nil
	case IsoYear, IsoYearDiv100, IsoYearMod100:
		iy, _ := d.ISOWeek()
		switch n {
		case IsoYearDiv100:
			return floorDiv(int64(iy), 100), nil
		case IsoYearMod100:
			return floorMod(int64(iy), 100), nil
		}
		return int64(iy), nil
	case Month:
		return int64(d.Month()), nil
	case Day:
		return int64(d.Day()), nil
	case WeekFromSun:
		return int64(d.YearDay()-int(d.Weekday())+6) / 7, nil
	case WeekFromMon:
		return int64(d.YearDay()-fromMonday(d.Weekday())+6) / 7, nil
	case IsoWeek:
		_, w := d.ISOWeek()
		return int64(w), nil
	case NumDaysFromSun:
		return int64(d.Weekday()), nil
	case WeekdayFromMon:
		return int64(fromMonday(d.Weekday()) + 1), nil
	case Ordinal:
		return int64(d.YearDay()), nil
	}
	return 0, errors.Wrapf(ErrBadFormat, "unknown numeric field %d", n)
}

func (f Formatted) writeNumeric(b *strings.Builder, n Numeric, pad Pad) error {
	v, err := f.numeric(n)
	if err != nil {
		return err
	}
	w := n.width()
	if (n == Year || n == IsoYear) && (v < 0 || v > 9999) {
		switch pad {
		case PadZero:
			fmt.Fprintf(b, "%+0*d", w+1, v)
		case PadSpace:
			fmt.Fprintf(b, "%+*d", w+1, v)
		default:
			fmt.Fprintf(b, "%+d", v)
		}
		return nil
	}
	switch pad {
	case PadZero:
		fmt.Fprintf(b, "%0*d", w, v)
	case PadSpace:
		fmt.Fprintf(b, "%*d", w, v)
	default:
		fmt.Fprintf(b, "%d", v)
	}
	return nil
}

func (f Formatted) writeFixed(b *strings.Builder, fx Fixed) error {
	switch fx {
	case ShortMonthName, LongMonthName, ShortWeekdayName, LongWeekdayName:
		if f.date == nil {
			return missing("date")
		}
		switch fx {
		case ShortMonthName:
			b.WriteString(shortMonthName(f.date.Month()))
		case LongMonthName:
			b.WriteString(longMonthName(f.date.Month()))
		case ShortWeekdayName:
			b.WriteString(shortWeekdayName(f.date.Weekday()))
		default:
			b.WriteString(longWeekdayName(f.date.Weekday()))
		}
		return nil
	case LowerAmPm, UpperAmPm:
		if f.time == nil {
			return missing("time")
		}
		s := "AM"
		if f.time.Hour() >= 12 {
			s = "PM"
		}
		if fx == LowerAmPm {
			s = strings.ToLower(s)
		}
		b.WriteString(s)
		return nil
	case FracAuto, Frac3, Frac6, Frac9, Frac3NoDot, Frac6NoDot, Frac9NoDot:
		if f.time == nil {
			return missing("time")
		}
		writeFraction(b, fx, f.time.Nanosecond()%1_000_000_000)
		return nil
	case TimezoneName:
		if f.offset == nil {
			return missing("zone")
		}
		if f.name == "" {
			writeOffset(b, *f.offset, true, false)
			return nil
		}
		b.WriteString(f.name)
		return nil
	case TimezoneOffset, TimezoneOffsetPermissive, TimezoneOffsetColon, TimezoneOffsetColonZ:
		if f.offset == nil {
			return missing("offset")
		}
		writeOffset(b, *f.offset, fx == TimezoneOffsetColon || fx == TimezoneOffsetColonZ, fx == TimezoneOffsetColonZ)
		return nil
	case RFC2822, RFC3339:
		if f.date == nil || f.time == nil || f.offset == nil {
			return missing("date, time and offset")
		}
		if fx == RFC2822 {
			return writeRFC2822(b, *f.date, *f.time, *f.offset)
		}
		writeRFC3339(b, *f.date, *f.time, *f.offset, AutoSi, false)
		return nil
	}
	return errors.Wrapf(ErrBadFormat, "unknown fixed field %d", fx)
}

func writeFraction(b *strings.Builder, fx Fixed, nano int) {
	switch fx {
	case FracAuto:
		switch {
		case nano == 0:
		case nano%1_000_000 == 0:
			fmt.Fprintf(b, ".%03d", nano/1_000_000)
		case nano%1_000 == 0:
			fmt.Fprintf(b, ".%06d", nano/1_000)
		default:
			fmt.Fprintf(b, ".%09d", nano)
		}
	case Frac3:
		fmt.Fprintf(b, ".%03d", nano/1_000_000)
	case Frac6:
		fmt.Fprintf(b, ".%06d", nano/1_000)
	case Frac9:
		fmt.Fprintf(b, ".%09d", nano)
	case Frac3NoDot:
		fmt.Fprintf(b, "%03d", nano/1_000_000)
	case Frac6NoDot:
		fmt.Fprintf(b, "%06d", nano/1_000)
	case Frac9NoDot:
		fmt.Fprintf(b, "%09d", nano)
	}
}

// writeOffset writes ±hhmm or ±hh:mm. Seconds of the offset are dropped.
func writeOffset(b *strings.Builder, off zone.Offset, colon, useZ bool) {
	secs := off.Seconds()
	if useZ && secs == 0 {
		b.WriteByte('Z')
		return
	}
	sign := byte('+')
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	b.WriteByte(sign)
	if colon {
		fmt.Fprintf(b, "%02d:%02d", secs/3600, secs/60%60)
		return
	}
	fmt.Fprintf(b, "%02d%02d", secs/3600, secs/60%60)
}

func fromMonday(w civil.Weekday) int { return (int(w) + 6) % 7 }

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
