package format

import (
	"fmt"
	"strings"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// Precision selects the fractional-second digits of RFC 3339 output.
type Precision uint8

const (
	// Secs writes no fraction.
	Secs Precision = iota
	// Millis writes exactly 3 digits.
	Millis
	// Micros writes exactly 6 digits.
	Micros
	// Nanos writes exactly 9 digits.
	Nanos
	// AutoSi writes the shortest of 0, 3, 6 or 9 digits that is exact.
	AutoSi
)

var precisionNames = [...]string{"secs", "millis", "micros", "nanos", "autosi"}

func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return fmt.Sprintf("Precision(%d)", p)
}

// ParsePrecision maps a name such as "millis" or "autosi" to a Precision.
func ParsePrecision(s string) (Precision, error) {
	for i, name := range precisionNames {
		if strings.EqualFold(s, name) {
			return Precision(i), nil
		}
	}
	return 0, errors.WithHintf(errors.Wrapf(ErrInvalid, "unknown precision %q", s),
		"use one of %s", strings.Join(precisionNames[:], ", "))
}

// FormatRFC3339 renders i as RFC 3339 with the given fraction precision.
// With useZ a zero offset is written as Z instead of +00:00. A leap second
// renders as second 60.
func FormatRFC3339[P zone.Provider](i instant.Instant[P], prec Precision, useZ bool) string {
	var b strings.Builder
	local := i.Local()
	writeRFC3339(&b, local.Date(), local.Time(), i.Offset(), prec, useZ)
	return b.String()
}

// FormatRFC2822 renders i as an RFC 2822 date, for example
// "Wed, 18 Feb 2015 23:16:09 +0500". Fractions are dropped. Years outside
// 0000..9999 cannot be expressed and yield ErrOutOfRange.
func FormatRFC2822[P zone.Provider](i instant.Instant[P]) (string, error) {
	var b strings.Builder
	local := i.Local()
	if err := writeRFC2822(&b, local.Date(), local.Time(), i.Offset()); err != nil {
		return "", err
	}
	return b.String(), nil
}

// splitLeap returns the displayed second and the fraction below one second.
func splitLeap(t civil.Time) (sec, nano int) {
	sec, nano = t.Second(), t.Nanosecond()
	if nano >= 1_000_000_000 {
		sec++
		nano -= 1_000_000_000
	}
	return sec, nano
}

func writeRFC3339(b *strings.Builder, d civil.Date, t civil.Time, off zone.Offset, prec Precision, useZ bool) {
	sec, nano := splitLeap(t)
	fmt.Fprintf(b, "%sT%02d:%02d:%02d", d, t.Hour(), t.Minute(), sec)
	switch prec {
	case Millis:
		writeFraction(b, Frac3, nano)
	case Micros:
		writeFraction(b, Frac6, nano)
	case Nanos:
		writeFraction(b, Frac9, nano)
	case AutoSi:
		writeFraction(b, FracAuto, nano)
	}
	writeOffset(b, off, true, useZ)
}

func writeRFC2822(b *strings.Builder, d civil.Date, t civil.Time, off zone.Offset) error {
	year, month, day := d.Date()
	if year < 0 || year > 9999 {
		return errors.Wrapf(ErrOutOfRange, "year %d has no RFC 2822 form", year)
	}
	sec, _ := splitLeap(t)
	fmt.Fprintf(b, "%s, %02d %s %04d %02d:%02d:%02d ",
		shortWeekdayName(d.Weekday()), day, shortMonthName(month), year, t.Hour(), t.Minute(), sec)
	writeOffset(b, off, false, false)
	return nil
}
