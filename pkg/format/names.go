package format

import (
	"strings"

	"github.com/msto63/chronos/pkg/civil"
)

var longMonthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var longWeekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func shortMonthName(m civil.Month) string { return longMonthNames[m-1][:3] }

func longMonthName(m civil.Month) string { return longMonthNames[m-1] }

func shortWeekdayName(w civil.Weekday) string { return longWeekdayNames[w][:3] }

func longWeekdayName(w civil.Weekday) string { return longWeekdayNames[w] }

// scanMonthName matches a three-letter month abbreviation, or the full name
// when long is set, case-insensitively.
func scanMonthName(s string, long bool) (civil.Month, string, bool) {
	i, rest, ok := scanName(s, longMonthNames[:], long)
	return civil.Month(i + 1), rest, ok
}

// scanWeekdayName is scanMonthName for weekdays.
func scanWeekdayName(s string, long bool) (civil.Weekday, string, bool) {
	i, rest, ok := scanName(s, longWeekdayNames[:], long)
	return civil.Weekday(i), rest, ok
}

func scanName(s string, names []string, long bool) (int, string, bool) {
	if len(s) < 3 {
		return 0, s, false
	}
	for i, name := range names {
		if !strings.EqualFold(s[:3], name[:3]) {
			continue
		}
		rest := s[3:]
		if long && len(s) >= len(name) && strings.EqualFold(s[3:len(name)], name[3:]) {
			rest = s[len(name):]
		}
		return i, rest, true
	}
	return 0, s, false
}
