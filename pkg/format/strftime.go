package format

// StrftimeItems compiles a strftime-style layout into items. Unknown or
// malformed directives become error items, so the failure surfaces when
// the items are used rather than here.
//
// Supported directives:
//
//	%Y  year, zero-padded to 4 digits; signed outside 0..9999
//	%C  year / 100, 2 digits          %y  year % 100, 2 digits
//	%G  ISO week year                 %g  ISO week year % 100
//	%m  month, 01-12                  %b  %h  abbreviated month name
//	%B  full month name               %d  day, 01-31
//	%e  day, space padded             %a  abbreviated weekday name
//	%A  full weekday name             %w  weekday, Sunday = 0
//	%u  weekday, Monday = 1           %U  week of year, Sunday start
//	%W  week of year, Monday start    %V  ISO week, 01-53
//	%j  day of year, 001-366          %D  %x  %m/%d/%y
//	%F  %Y-%m-%d                      %v  %e-%b-%Y
//	%H  hour, 00-23                   %k  hour, space padded
//	%I  hour, 01-12                   %l  12-hour, space padded
//	%P  am or pm                      %p  AM or PM
//	%M  minute, 00-59                 %S  second, 00-60
//	%f  nanoseconds, 9 digits         %.f fraction, 0, 3, 6 or 9 digits
//	%.3f %.6f %.9f  dot and fixed digits
//	%3f  %6f  %9f   fixed digits without the dot
//	%R  %H:%M                         %T  %X  %H:%M:%S
//	%r  %I:%M:%S %p                   %c  %a %b %e %T %Y
//	%Z  zone abbreviation             %z  offset, +hhmm
//	%:z offset, +hh:mm                %#z permissive offset (parsing)
//	%+  RFC 3339                      %s  Unix timestamp
//	%t  tab   %n  newline   %%  literal percent
//
// A numeric directive takes one of the padding modifiers %-x (none), %_x
// (spaces) or %0x (zeros).
func StrftimeItems(layout string) []Item {
	var items []Item
	for i := 0; i < len(layout); {
		switch c := layout[i]; {
		case c == '%':
			its, n := directive(layout[i+1:])
			items = append(items, its...)
			i += 1 + n
		case isSpace(c):
			j := i
			for j < len(layout) && isSpace(layout[j]) {
				j++
			}
			items = append(items, Space(layout[i:j]))
			i = j
		default:
			j := i
			for j < len(layout) && layout[j] != '%' && !isSpace(layout[j]) {
				j++
			}
			items = append(items, Literal(layout[i:j]))
			i = j
		}
	}
	return items
}

var (
	hms      = []Item{Num(Hour, PadZero), Literal(":"), Num(Minute, PadZero), Literal(":"), Num(Second, PadZero)}
	mdy      = []Item{Num(Month, PadZero), Literal("/"), Num(Day, PadZero), Literal("/"), Num(YearMod100, PadZero)}
	ymd      = []Item{Num(Year, PadZero), Literal("-"), Num(Month, PadZero), Literal("-"), Num(Day, PadZero)}
	ctimeSeq = append(append([]Item{
		Fix(ShortWeekdayName), Space(" "), Fix(ShortMonthName), Space(" "), Num(Day, PadSpace), Space(" "),
	}, hms...), Space(" "), Num(Year, PadZero))
)

var directives = map[byte][]Item{
	'Y': {Num(Year, PadZero)},
	'C': {Num(YearDiv100, PadZero)},
	'y': {Num(YearMod100, PadZero)},
	'G': {Num(IsoYear, PadZero)},
	'g': {Num(IsoYearMod100, PadZero)},
	'm': {Num(Month, PadZero)},
	'b': {Fix(ShortMonthName)},
	'h': {Fix(ShortMonthName)},
	'B': {Fix(LongMonthName)},
	'd': {Num(Day, PadZero)},
	'e': {Num(Day, PadSpace)},
	'a': {Fix(ShortWeekdayName)},
	'A': {Fix(LongWeekdayName)},
	'w': {Num(NumDaysFromSun, PadZero)},
	'u': {Num(WeekdayFromMon, PadZero)},
	'U': {Num(WeekFromSun, PadZero)},
	'W': {Num(WeekFromMon, PadZero)},
	'V': {Num(IsoWeek, PadZero)},
	'j': {Num(Ordinal, PadZero)},
	'D': mdy,
	'x': mdy,
	'F': ymd,
	'v': {Num(Day, PadSpace), Literal("-"), Fix(ShortMonthName), Literal("-"), Num(Year, PadZero)},
	'H': {Num(Hour, PadZero)},
	'k': {Num(Hour, PadSpace)},
	'I': {Num(Hour12, PadZero)},
	'l': {Num(Hour12, PadSpace)},
	'P': {Fix(LowerAmPm)},
	'p': {Fix(UpperAmPm)},
	'M': {Num(Minute, PadZero)},
	'S': {Num(Second, PadZero)},
	'f': {Num(Nanosecond, PadZero)},
	'R': {Num(Hour, PadZero), Literal(":"), Num(Minute, PadZero)},
	'T': hms,
	'X': hms,
	'r': {Num(Hour12, PadZero), Literal(":"), Num(Minute, PadZero), Literal(":"), Num(Second, PadZero), Space(" "), Fix(UpperAmPm)},
	'c': ctimeSeq,
	'Z': {Fix(TimezoneName)},
	'z': {Fix(TimezoneOffset)},
	'+': {Fix(RFC3339)},
	's': {Num(UnixTimestamp, PadNone)},
	't': {Literal("\t")},
	'n': {Literal("\n")},
	'%': {Literal("%")},
}

// directive compiles the directive following a '%' and reports how many
// bytes of s it consumed.
func directive(s string) ([]Item, int) {
	if s == "" {
		return []Item{ErrorItem("%")}, 0
	}

	pad, modified, n := PadZero, true, 1
	switch s[0] {
	case '-':
		pad = PadNone
	case '_':
		pad = PadSpace
	case '0':
		pad = PadZero
	default:
		modified, n = false, 0
	}
	if n >= len(s) {
		return []Item{ErrorItem("%" + s)}, len(s)
	}

	bad := func(end int) ([]Item, int) {
		if end > len(s) {
			end = len(s)
		}
		return []Item{ErrorItem("%" + s[:end])}, end
	}

	c := s[n]
	n++
	switch c {
	case '.':
		if modified {
			return bad(n)
		}
		if n < len(s) && s[n] == 'f' {
			return []Item{Fix(FracAuto)}, n + 1
		}
		if n+1 < len(s) && s[n+1] == 'f' {
			switch s[n] {
			case '3':
				return []Item{Fix(Frac3)}, n + 2
			case '6':
				return []Item{Fix(Frac6)}, n + 2
			case '9':
				return []Item{Fix(Frac9)}, n + 2
			}
			return bad(n + 2)
		}
		return bad(n + 1)
	case '3', '6', '9':
		if modified || n >= len(s) || s[n] != 'f' {
			return bad(n + 1)
		}
		switch c {
		case '3':
			return []Item{Fix(Frac3NoDot)}, n + 1
		case '6':
			return []Item{Fix(Frac6NoDot)}, n + 1
		}
		return []Item{Fix(Frac9NoDot)}, n + 1
	case ':', '#':
		if modified || n >= len(s) || s[n] != 'z' {
			return bad(n + 1)
		}
		if c == ':' {
			return []Item{Fix(TimezoneOffsetColon)}, n + 1
		}
		return []Item{Fix(TimezoneOffsetPermissive)}, n + 1
	}

	its, ok := directives[c]
	if !ok {
		return bad(n)
	}
	if !modified {
		return its, n
	}
	if len(its) != 1 || its[0].Kind != KindNumeric {
		return bad(n)
	}
	it := its[0]
	it.Pad = pad
	return []Item{it}, n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
