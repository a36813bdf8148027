package format

// Pad selects how a numeric field is padded to its natural width.
type Pad uint8

const (
	// PadNone writes the bare number.
	PadNone Pad = iota
	// PadZero pads with leading zeros.
	PadZero
	// PadSpace pads with leading spaces.
	PadSpace
)

// Numeric names a numeric field of a date, time or instant.
type Numeric uint8

const (
	Year           Numeric = iota // full proleptic Gregorian year
	YearDiv100                    // year divided by 100, floored
	YearMod100                    // year modulo 100, non-negative
	IsoYear                       // ISO 8601 week-numbering year
	IsoYearDiv100                 // IsoYear divided by 100, floored
	IsoYearMod100                 // IsoYear modulo 100, non-negative
	Month                         // 1..12
	Day                           // 1..31
	WeekFromSun                   // 0..53, weeks starting on Sunday
	WeekFromMon                   // 0..53, weeks starting on Monday
	IsoWeek                       // 1..53
	NumDaysFromSun                // 0 (Sunday) to 6
	WeekdayFromMon                // 1 (Monday) to 7
	Ordinal                       // day of year, 1..366
	Hour                          // 0..23
	Hour12                        // 1..12
	Minute                        // 0..59
	Second                        // 0..60, 60 inside a leap second
	Nanosecond                    // nine digits, no leap band
	UnixTimestamp                 // seconds since the Unix epoch
)

// width is the natural width a field pads to.
func (n Numeric) width() int {
	switch n {
	case Year, IsoYear:
		return 4
	case NumDaysFromSun, WeekdayFromMon, UnixTimestamp:
		return 1
	case Ordinal:
		return 3
	case Nanosecond:
		return 9
	}
	return 2
}

// Fixed names a field with a fixed textual form.
type Fixed uint8

const (
	ShortMonthName Fixed = iota
	LongMonthName
	ShortWeekdayName
	LongWeekdayName
	LowerAmPm
	UpperAmPm
	// FracAuto is an optional fraction: nothing for whole seconds,
	// otherwise a dot and 3, 6 or 9 digits.
	FracAuto
	Frac3
	Frac6
	Frac9
	Frac3NoDot
	Frac6NoDot
	Frac9NoDot
	TimezoneName
	// TimezoneOffset is +hhmm.
	TimezoneOffset
	// TimezoneOffsetColon is +hh:mm.
	TimezoneOffsetColon
	// TimezoneOffsetColonZ is +hh:mm, or Z for a zero offset.
	TimezoneOffsetColonZ
	// TimezoneOffsetPermissive formats as +hhmm and parses Z, +hh, +hhmm
	// and +hh:mm.
	TimezoneOffsetPermissive
	RFC2822
	RFC3339
)

// ItemKind discriminates Item.
type ItemKind uint8

const (
	KindLiteral ItemKind = iota
	KindSpace
	KindNumeric
	KindFixed
	KindError
)

// An Item is one element of a compiled layout.
type Item struct {
	Kind    ItemKind
	Text    string // literal or whitespace text
	Numeric Numeric
	Pad     Pad
	Fixed   Fixed
}

// Literal returns an item matching text exactly.
func Literal(text string) Item { return Item{Kind: KindLiteral, Text: text} }

// Space returns a whitespace item. It formats as text and, when parsing,
// skips any amount of whitespace.
func Space(text string) Item { return Item{Kind: KindSpace, Text: text} }

// Num returns a numeric item.
func Num(n Numeric, pad Pad) Item { return Item{Kind: KindNumeric, Numeric: n, Pad: pad} }

// Fix returns a fixed item.
func Fix(f Fixed) Item { return Item{Kind: KindFixed, Fixed: f} }

// ErrorItem marks an unrecognized directive. Formatting or parsing with it
// fails with ErrBadFormat.
func ErrorItem(directive string) Item { return Item{Kind: KindError, Text: directive} }
