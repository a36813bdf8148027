package format

import (
	"strings"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

var (
	rfc3339Items = []Item{Fix(RFC3339)}
	rfc2822Items = []Item{Fix(RFC2822)}

	anyDateItems = []Item{
		Num(Year, PadZero), Space(""), Literal("-"),
		Num(Month, PadZero), Space(""), Literal("-"),
		Num(Day, PadZero),
	}
	anyTimeItems = []Item{
		Num(Hour, PadZero), Space(""), Literal(":"),
		Num(Minute, PadZero), Space(""), Literal(":"),
		Num(Second, PadZero), Fix(FracAuto), Space(""),
		Fix(TimezoneOffsetColonZ), Space(""),
	}
)

// Parse matches s against items and records the fields in p. The whole of
// s must be consumed.
func Parse(p *Parsed, s string, items []Item) error {
	_, err := parseItems(p, s, items)
	return err
}

// parseItems is Parse that also returns the unconsumed input.
func parseItems(p *Parsed, src string, items []Item) (string, error) {
	s := src
	for _, it := range items {
		var err error
		switch it.Kind {
		case KindLiteral:
			if len(s) < len(it.Text) {
				err = ErrTooShort
			} else if !strings.HasPrefix(s, it.Text) {
				err = ErrInvalid
			} else {
				s = s[len(it.Text):]
			}
		case KindSpace:
			s = trimSpace(s)
		case KindNumeric:
			s, err = parseNumeric(p, s, it.Numeric)
		case KindFixed:
			s, err = parseFixed(p, s, it.Fixed)
		default:
			return s, errors.Wrapf(ErrBadFormat, "unknown directive %q", it.Text)
		}
		if err != nil {
			return s, at(err, src, s)
		}
	}
	if s != "" {
		return s, at(ErrTooLong, src, s)
	}
	return "", nil
}

func parseNumeric(p *Parsed, s string, n Numeric) (string, error) {
	s = trimSpace(s)
	var (
		v    int64
		rest string
		err  error
	)
	signed := n == Year || n == IsoYear || n == UnixTimestamp
	switch {
	case signed && s != "" && (s[0] == '+' || s[0] == '-'):
		v, rest, err = scanNumber(s[1:], 1, 19)
		if s[0] == '-' {
			v = -v
		}
	case n == UnixTimestamp:
		v, rest, err = scanNumber(s, 1, 19)
	default:
		v, rest, err = scanNumber(s, 1, n.width())
	}
	if err != nil {
		return s, err
	}
	if err := p.Set(n, v); err != nil {
		return s, err
	}
	return rest, nil
}

func parseFixed(p *Parsed, s string, f Fixed) (string, error) {
	switch f {
	case ShortMonthName, LongMonthName:
		m, rest, ok := scanMonthName(s, f == LongMonthName)
		if !ok {
			return s, shortage(s)
		}
		return rest, p.Set(Month, int64(m))
	case ShortWeekdayName, LongWeekdayName:
		w, rest, ok := scanWeekdayName(s, f == LongWeekdayName)
		if !ok {
			return s, shortage(s)
		}
		return rest, p.SetWeekday(w)
	case LowerAmPm, UpperAmPm:
		if len(s) < 2 {
			return s, ErrTooShort
		}
		switch {
		case strings.EqualFold(s[:2], "am"):
			return s[2:], p.SetAmPm(false)
		case strings.EqualFold(s[:2], "pm"):
			return s[2:], p.SetAmPm(true)
		}
		return s, ErrInvalid
	case FracAuto, Frac3, Frac6, Frac9:
		rest := s
		err := fraction(p, &rest, false)
		return rest, err
	case Frac3NoDot, Frac6NoDot, Frac9NoDot:
		digits := map[Fixed]int{Frac3NoDot: 3, Frac6NoDot: 6, Frac9NoDot: 9}[f]
		v, rest, err := scanNumber(s, digits, digits)
		if err != nil {
			return s, err
		}
		for k := digits; k < 9; k++ {
			v *= 10
		}
		return rest, p.Set(Nanosecond, v)
	case TimezoneName:
		_, secs, known, rest, err := scanZoneName(s)
		if err != nil {
			return s, err
		}
		if known {
			return rest, p.SetOffset(secs)
		}
		return rest, nil
	case TimezoneOffset, TimezoneOffsetColon, TimezoneOffsetColonZ, TimezoneOffsetPermissive:
		allowZ := f == TimezoneOffsetColonZ || f == TimezoneOffsetPermissive
		v, rest, err := scanOffset(s, allowZ, f == TimezoneOffsetPermissive)
		if err != nil {
			return s, err
		}
		return rest, p.SetOffset(v)
	case RFC3339:
		return parseRFC3339(p, s)
	case RFC2822:
		return parseRFC2822(p, s)
	}
	return s, errors.Wrapf(ErrBadFormat, "unknown fixed field %d", f)
}

// num consumes between lo and hi digits into field n.
func num(p *Parsed, s *string, n Numeric, lo, hi int) error {
	v, rest, err := scanNumber(*s, lo, hi)
	if err != nil {
		return err
	}
	if err := p.Set(n, v); err != nil {
		return err
	}
	*s = rest
	return nil
}

// expect consumes one byte out of set.
func expect(s *string, set string) error {
	if *s == "" {
		return ErrTooShort
	}
	if !strings.ContainsRune(set, rune((*s)[0])) {
		return ErrInvalid
	}
	*s = (*s)[1:]
	return nil
}

// fraction consumes an optional '.' and digits into the nanosecond field.
func fraction(p *Parsed, s *string, limit bool) error {
	if !strings.HasPrefix(*s, ".") {
		return nil
	}
	v, rest, err := scanFraction((*s)[1:], limit)
	if err != nil {
		return err
	}
	if err := p.Set(Nanosecond, v); err != nil {
		return err
	}
	*s = rest
	return nil
}

func run(s *string, steps ...func() error) (string, error) {
	for _, step := range steps {
		if err := step(); err != nil {
			return *s, err
		}
	}
	return *s, nil
}

// parseRFC3339 reads YYYY-MM-DDTHH:MM:SS[.frac] followed by Z, UTC or
// ±hh:mm, optionally after a space. The separator may be T, t or a space.
func parseRFC3339(p *Parsed, s string) (string, error) {
	return run(&s,
		func() error { return num(p, &s, Year, 4, 4) },
		func() error { return expect(&s, "-") },
		func() error { return num(p, &s, Month, 2, 2) },
		func() error { return expect(&s, "-") },
		func() error { return num(p, &s, Day, 2, 2) },
		func() error { return expect(&s, "Tt ") },
		func() error { return num(p, &s, Hour, 2, 2) },
		func() error { return expect(&s, ":") },
		func() error { return num(p, &s, Minute, 2, 2) },
		func() error { return expect(&s, ":") },
		func() error { return num(p, &s, Second, 2, 2) },
		func() error { return fraction(p, &s, true) },
		func() error {
			if trimSpace(s) == "" {
				return ErrMissingOffset
			}
			v, rest, err := scanOffset(trimSpace(s), true, false)
			if err != nil {
				return err
			}
			if err := p.SetOffset(v); err != nil {
				return err
			}
			s = rest
			return nil
		},
	)
}

// parseRFC2822 reads [Day ","] D Mon YYYY HH:MM[:SS] zone, skipping
// whitespace and comments between tokens. Two-digit years below 50 are in
// the 2000s, other two- and three-digit years count from 1900.
func parseRFC2822(p *Parsed, s string) (string, error) {
	cfws := func() { s = skipCFWS(s) }
	return run(&s,
		func() error { cfws(); return nil },
		func() error {
			if s == "" || !isAlpha(s[0]) {
				return nil
			}
			w, rest, ok := scanWeekdayName(s, false)
			if !ok {
				return ErrInvalid
			}
			rest = skipCFWS(rest)
			if !strings.HasPrefix(rest, ",") {
				return shortage(rest)
			}
			if err := p.SetWeekday(w); err != nil {
				return err
			}
			s = skipCFWS(rest[1:])
			return nil
		},
		func() error { return num(p, &s, Day, 1, 2) },
		func() error {
			cfws()
			m, rest, ok := scanMonthName(s, false)
			if !ok {
				return shortage(s)
			}
			s = rest
			return p.Set(Month, int64(m))
		},
		func() error {
			cfws()
			v, rest, err := scanNumber(s, 2, 9)
			if err != nil {
				return err
			}
			switch len(s) - len(rest) {
			case 2:
				if v < 50 {
					v += 2000
				} else {
					v += 1900
				}
			case 3:
				v += 1900
			}
			if err := p.Set(Year, v); err != nil {
				return err
			}
			s = rest
			return nil
		},
		func() error { cfws(); return num(p, &s, Hour, 2, 2) },
		func() error { cfws(); return expect(&s, ":") },
		func() error { cfws(); return num(p, &s, Minute, 2, 2) },
		func() error {
			t := skipCFWS(s)
			if !strings.HasPrefix(t, ":") {
				return nil
			}
			s = skipCFWS(t[1:])
			return num(p, &s, Second, 2, 2)
		},
		func() error {
			cfws()
			if s == "" {
				return ErrMissingOffset
			}
			v, rest, err := zone2822(s)
			if err != nil {
				return err
			}
			if v != nil {
				if err := p.SetOffset(*v); err != nil {
					return err
				}
			}
			s = skipCFWS(rest)
			return nil
		},
	)
}

// zone2822 reads ±hhmm or a zone name. Single military letters mean an
// unknown local offset and read as zero; other unknown names set nothing.
func zone2822(s string) (*int64, string, error) {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		hh, rest, err := scanNumber(s[1:], 2, 2)
		if err != nil {
			return nil, s, err
		}
		mm, rest, err := scanNumber(rest, 2, 2)
		if err != nil {
			return nil, s, err
		}
		if mm > 59 {
			return nil, s, ErrOutOfRange
		}
		v := hh*3600 + mm*60
		if s[0] == '-' {
			v = -v
		}
		return &v, rest, nil
	}
	name, secs, known, rest, err := scanZoneName(s)
	if err != nil {
		return nil, s, err
	}
	if known || (len(name) == 1 && name != "J") {
		return &secs, rest, nil
	}
	return nil, rest, nil
}

// trailingOffset reads a lone offset or zone name left over after a layout
// without an offset directive.
func trailingOffset(rest string) (int64, bool) {
	t := trimSpace(rest)
	if v, r, err := scanOffset(t, true, false); err == nil && trimSpace(r) == "" {
		return v, true
	}
	if _, v, known, r, err := scanZoneName(t); err == nil && known && trimSpace(r) == "" {
		return v, true
	}
	return 0, false
}

// ParseInstant parses s with a strftime layout into an instant at the
// parsed offset. Input without an offset fails with ErrMissingOffset; an
// offset or known zone name trailing the layout is honored even when the
// layout does not ask for one.
func ParseInstant(s, layout string) (instant.Instant[zone.Offset], error) {
	return ParseInstantItems(s, StrftimeItems(layout))
}

// ParseInstantItems is ParseInstant with precompiled items.
func ParseInstantItems(s string, items []Item) (instant.Instant[zone.Offset], error) {
	var p Parsed
	rest, err := parseItems(&p, s, items)
	if errors.Is(err, ErrTooLong) && !p.HasOffset() {
		if off, ok := trailingOffset(rest); ok {
			err = p.SetOffset(off)
		}
	}
	if err != nil {
		return instant.Instant[zone.Offset]{}, err
	}
	return p.ToInstant()
}

// ParseInZone parses s and resolves it in z. See InZone for how offsets in
// the input interact with z.
func ParseInZone[P zone.Provider](s, layout string, z P) (instant.Instant[P], error) {
	var p Parsed
	if err := Parse(&p, s, StrftimeItems(layout)); err != nil {
		return instant.Instant[P]{}, err
	}
	return InZone(&p, z)
}

// ParseDateTime parses a civil date-time.
func ParseDateTime(s, layout string) (civil.DateTime, error) {
	var p Parsed
	if err := Parse(&p, s, StrftimeItems(layout)); err != nil {
		return civil.DateTime{}, err
	}
	return p.ToDateTime()
}

// ParseDate parses a civil date.
func ParseDate(s, layout string) (civil.Date, error) {
	var p Parsed
	if err := Parse(&p, s, StrftimeItems(layout)); err != nil {
		return civil.Date{}, err
	}
	return p.ToDate()
}

// ParseTime parses a civil time of day.
func ParseTime(s, layout string) (civil.Time, error) {
	var p Parsed
	if err := Parse(&p, s, StrftimeItems(layout)); err != nil {
		return civil.Time{}, err
	}
	return p.ToTime()
}

// ParseRFC3339 parses an RFC 3339 timestamp. A second of 60 yields a leap
// second.
func ParseRFC3339(s string) (instant.Instant[zone.Offset], error) {
	var p Parsed
	if err := Parse(&p, s, rfc3339Items); err != nil {
		return instant.Instant[zone.Offset]{}, err
	}
	return p.ToInstant()
}

// ParseRFC2822 parses an RFC 2822 date such as
// "Wed, 18 Feb 2015 23:16:09 +0000". A weekday, when present, must match
// the date. "-0000" reads as UTC.
func ParseRFC2822(s string) (instant.Instant[zone.Offset], error) {
	var p Parsed
	if err := Parse(&p, s, rfc2822Items); err != nil {
		return instant.Instant[zone.Offset]{}, err
	}
	return p.ToInstant()
}

// ParseAny is a relaxed RFC 3339 reader: fields need not be zero padded,
// whitespace may surround separators, the date and time may be split by T
// or a space, and the zone may be Z, UTC or an offset with or without a
// colon. Input that does not open with a year-month-day date is read as
// RFC 2822 instead.
func ParseAny(s string) (instant.Instant[zone.Offset], error) {
	var p Parsed
	rest, err := parseItems(&p, s, anyDateItems)
	switch {
	case err == nil:
		return instant.Instant[zone.Offset]{}, errors.Wrap(ErrNotEnough, "no time of day")
	case !errors.Is(err, ErrTooLong) && Classify(err) == ClassSyntax:
		return ParseRFC2822(s)
	case !errors.Is(err, ErrTooLong):
		return instant.Instant[zone.Offset]{}, err
	case rest[0] != 'T' && rest[0] != 't' && rest[0] != ' ':
		return instant.Instant[zone.Offset]{}, at(ErrInvalid, s, rest)
	}
	if err := Parse(&p, rest[1:], anyTimeItems); err != nil {
		if errors.Is(err, ErrTooShort) && p.second.set && !p.HasOffset() {
			err = errors.Wrapf(ErrMissingOffset, "%q", s)
		}
		return instant.Instant[zone.Offset]{}, err
	}
	return p.ToInstant()
}
