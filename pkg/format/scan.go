package format

import (
	"math"
	"strings"
)

// Scanners return the sentinel for a failure and leave positioning to the
// caller. On failure the returned rest is the input unchanged.

func trimSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// shortage reports ErrTooShort for exhausted input, ErrInvalid otherwise.
func shortage(s string) error {
	if s == "" {
		return ErrTooShort
	}
	return ErrInvalid
}

// scanNumber consumes between lo and hi decimal digits.
func scanNumber(s string, lo, hi int) (int64, string, error) {
	var v int64
	i := 0
	for i < len(s) && i < hi && isDigit(s[i]) {
		d := int64(s[i] - '0')
		if v > (math.MaxInt64-d)/10 {
			return 0, s, ErrOutOfRange
		}
		v = v*10 + d
		i++
	}
	if i < lo {
		return 0, s, shortage(s[i:])
	}
	return v, s[i:], nil
}

// scanFraction consumes the digits after a decimal point and returns them
// as nanoseconds. Digits past the ninth are consumed and dropped unless
// limit is set, in which case they are rejected.
func scanFraction(s string, limit bool) (int64, string, error) {
	var v int64
	i := 0
	for i < len(s) && isDigit(s[i]) {
		if i < 9 {
			v = v*10 + int64(s[i]-'0')
		}
		i++
	}
	if i == 0 {
		return 0, s, shortage(s)
	}
	if limit && i > 9 {
		return 0, s, ErrInvalid
	}
	for k := i; k < 9; k++ {
		v *= 10
	}
	return v, s[i:], nil
}

// scanOffset consumes ±hh:mm or ±hhmm. With allowZ it also takes Z and
// UTC; with optionalMinutes a bare ±hh is accepted.
func scanOffset(s string, allowZ, optionalMinutes bool) (int64, string, error) {
	if s == "" {
		return 0, s, ErrTooShort
	}
	if allowZ {
		if s[0] == 'Z' || s[0] == 'z' {
			return 0, s[1:], nil
		}
		if len(s) >= 3 && strings.EqualFold(s[:3], "UTC") {
			return 0, s[3:], nil
		}
	}

	var sign int64
	switch s[0] {
	case '+':
		sign = 1
	case '-':
		sign = -1
	default:
		return 0, s, ErrInvalid
	}
	hh, rest, err := scanNumber(s[1:], 2, 2)
	if err != nil {
		return 0, s, err
	}
	colon := strings.HasPrefix(rest, ":")
	if colon {
		rest = rest[1:]
	}
	var mm int64
	if !optionalMinutes || colon || (rest != "" && isDigit(rest[0])) {
		if mm, rest, err = scanNumber(rest, 2, 2); err != nil {
			return 0, s, err
		}
	}
	if hh > 23 || mm > 59 {
		return 0, s, ErrOutOfRange
	}
	return sign * (hh*3600 + mm*60), rest, nil
}

// namedZones maps the zone names RFC 2822 knows to their offsets in hours.
var namedZones = map[string]int64{
	"UT": 0, "UTC": 0, "GMT": 0, "Z": 0,
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
}

// scanZoneName consumes a run of letters. It reports the offset when the
// name is one of namedZones.
func scanZoneName(s string) (name string, secs int64, known bool, rest string, err error) {
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 {
		return "", 0, false, s, shortage(s)
	}
	name = strings.ToUpper(s[:i])
	h, known := namedZones[name]
	return name, h * 3600, known, s[i:], nil
}

// skipCFWS skips whitespace and parenthesized, possibly nested, comments.
func skipCFWS(s string) string {
	for {
		s = trimSpace(s)
		if !strings.HasPrefix(s, "(") {
			return s
		}
		depth := 0
		i := 0
	comment:
		for ; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					i++
					break comment
				}
			}
		}
		if i > len(s) {
			i = len(s)
		}
		s = s[i:]
	}
}
