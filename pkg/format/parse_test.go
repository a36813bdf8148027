package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

func TestParseRFC2822(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  instant.Instant[zone.Offset]
	}{
		{"utc", "Wed, 18 Feb 2015 23:16:09 +0000", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"negative zero", "Wed, 18 Feb 2015 23:16:09 -0000", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"offset", "Wed, 18 Feb 2015 23:16:09 +0500", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 16, 9, 0)},
		{"no weekday", "18 Feb 2015 23:16:09 +0500", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 16, 9, 0)},
		{"no seconds", "Wed, 18 Feb 2015 23:16 +0500", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 16, 0, 0)},
		{"single digit day", "Sun, 1 Feb 2015 23:16:09 GMT", fixedAt(t, 0, 2015, time.February, 1, 23, 16, 9, 0)},
		{"two digit year", "Wed, 18 Feb 15 23:16:09 UT", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"old two digit year", "Tue, 18 Feb 97 23:16:09 GMT", fixedAt(t, 0, 1997, time.February, 18, 23, 16, 9, 0)},
		{"three digit year", "Wed, 18 Feb 115 23:16:09 GMT", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"named zone", "Wed, 18 Feb 2015 18:16:09 EST", fixedAt(t, -5*3600, 2015, time.February, 18, 18, 16, 9, 0)},
		{"military zone", "Wed, 18 Feb 2015 23:16:09 A", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"lower case", "wed, 18 feb 2015 23:16:09 +0000", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"comments", "Wed, 18 Feb 2015 (note) 23:16:09 (a (nested) one) +0000 ", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"leap second", "Wed, 18 Feb 2015 23:59:60 +0500", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 59, 59, 1_000_000_000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRFC2822(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %#v, want %#v", got, tt.want)
			assert.Equal(t, tt.want.Offset(), got.Offset())
		})
	}
}

func TestParseRFC2822_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"weekday mismatch", "Tue, 18 Feb 2015 23:16:09 +0000", ErrImpossible},
		{"beyond the last date", "31 DEC 262143 23:59 -2359", ErrOutOfRange},
		{"bad month", "Wed, 18 Fev 2015 23:16:09 +0000", ErrInvalid},
		{"no weekday comma", "Wed 18 Feb 2015 23:16:09 +0000", ErrInvalid},
		{"truncated", "Wed, 18 Feb 2015 23:", ErrTooShort},
		{"bad minutes", "Wed, 18 Feb 2015 23:16:09 +0560", ErrOutOfRange},
		{"unknown zone", "Wed, 18 Feb 2015 23:16:09 XYZ", ErrMissingOffset},
		{"no zone", "Wed, 18 Feb 2015 23:16:09", ErrMissingOffset},
		{"no zone after comment", "Wed, 18 Feb 2015 23:16 (local)", ErrMissingOffset},
		{"trailing", "Wed, 18 Feb 2015 23:16:09 +0000 x", ErrTooLong},
		{"february 30th", "30 Feb 2015 23:16:09 +0000", ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRFC2822(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseRFC3339(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  instant.Instant[zone.Offset]
	}{
		{"millis", "2015-02-18T23:16:09.153+05:00", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 16, 9, 153_000_000)},
		{"zulu", "2015-02-18T23:16:09Z", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"lower case", "2015-02-18t23:16:09z", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"space separator", "2015-02-18 23:16:09-08:00", fixedAt(t, -8*3600, 2015, time.February, 18, 23, 16, 9, 0)},
		{"utc suffix", "2015-02-18T23:16:09 UTC", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 0)},
		{"nanos", "2015-02-18T23:16:09.000000001Z", fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 1)},
		{"leap second", "2015-02-18T23:59:60.234567+05:00", fixedAt(t, 5*3600, 2015, time.February, 18, 23, 59, 59, 1_234_567_000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRFC3339(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %#v, want %#v", got, tt.want)
			assert.Equal(t, tt.want.Offset(), got.Offset())
		})
	}
}

func TestParseRFC3339_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		class Class
	}{
		{"no zone", "2015-02-18T23:16:09", ErrMissingOffset, ClassMissingZone},
		{"no zone after fraction", "2015-02-18T23:16:09.5 ", ErrMissingOffset, ClassMissingZone},
		{"ten fraction digits", "2015-02-18T23:16:09.1234567890Z", ErrInvalid, ClassSyntax},
		{"month 13", "2015-13-18T23:16:09Z", ErrOutOfRange, ClassRange},
		{"hour 24", "2015-02-18T24:16:09Z", ErrOutOfRange, ClassRange},
		{"second 61", "2015-02-18T23:59:61Z", ErrOutOfRange, ClassRange},
		{"trailing", "2015-02-18T23:16:09Zjunk", ErrTooLong, ClassSyntax},
		{"short year", "215-02-18T23:16:09Z", ErrInvalid, ClassSyntax},
		{"empty", "", ErrTooShort, ClassSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRFC3339(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, tt.class, Classify(err))
		})
	}
}

func TestRFC3339_LeapSecondRoundTrip(t *testing.T) {
	i, err := ParseRFC3339("2015-06-30T23:59:60.5Z")
	require.NoError(t, err)
	assert.Equal(t, 1_500_000_000, i.Time().Nanosecond())
	assert.Equal(t, 59, i.Time().Second())
	assert.Equal(t, "2015-06-30T23:59:60.500Z", FormatRFC3339(i, Millis, true))
}

func TestRFC2822_LeapSecondTruncatesFraction(t *testing.T) {
	fine, err := ParseRFC3339("2015-02-18T23:59:60.234567+05:00")
	require.NoError(t, err)

	text, err := FormatRFC2822(fine)
	require.NoError(t, err)
	assert.Equal(t, "Wed, 18 Feb 2015 23:59:60 +0500", text)

	coarse, err := ParseRFC2822(text)
	require.NoError(t, err)
	assert.Equal(t, 1_000, coarse.Time().SubsecMillis())
	assert.Equal(t, fine.Unix(), coarse.Unix())
	assert.True(t, coarse.Before(fine))
	assert.Equal(t, civil.Microseconds(234_567), fine.SignedDurationSince(coarse))
}

func TestRFC3339_RoundTrip(t *testing.T) {
	cases := []instant.Instant[zone.Offset]{
		fixedAt(t, 0, 1970, time.January, 1, 0, 0, 0, 0),
		fixedAt(t, 9*3600, 2014, time.May, 6, 7, 8, 9, 10),
		fixedAt(t, -(3*3600 + 30*60), 1999, time.December, 31, 23, 59, 59, 999_999_999),
		fixedAt(t, 5*3600, 2015, time.February, 18, 23, 59, 59, 1_234_567_890),
		fixedAt(t, 0, 9999, time.December, 31, 23, 59, 59, 0),
	}
	for _, want := range cases {
		t.Run(want.GoString(), func(t *testing.T) {
			for _, prec := range []Precision{Nanos, AutoSi} {
				text := FormatRFC3339(want, prec, true)
				got, err := ParseRFC3339(text)
				require.NoError(t, err, text)
				assert.True(t, want.Equal(got), "%s parsed as %#v", text, got)
				assert.Equal(t, want.Offset(), got.Offset())
			}
		})
	}
}

func TestParseAny(t *testing.T) {
	want := fixedAt(t, 0, 2015, time.February, 18, 23, 16, 9, 150_000_000)

	tests := []struct {
		name  string
		input string
	}{
		{"zulu", "2015-02-18T23:16:9.15Z"},
		{"spaced utc", "2015-02-18T23:16:9.15 UTC"},
		{"utc", "2015-02-18T23:16:9.15UTC"},
		{"unpadded with offset", "2015-2-18T13:16:9.15-10:00"},
		{"offset without colon", "2015-02-18 13:16:09.150 -1000"},
		{"spaces around separators", "2015 - 02 - 18T23 : 16 : 09.15 Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAny(tt.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %#v", got)
		})
	}

	_, err := ParseAny("2015-02-18T23:16:9.15")
	assert.Equal(t, ClassMissingZone, Classify(err))

	_, err = ParseAny("2015-02-18")
	assert.True(t, errors.Is(err, ErrNotEnough))

	_, err = ParseAny("2015-02-18X23:16:09Z")
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = ParseAny("2015-13-18T23:16:09Z")
	assert.True(t, errors.Is(err, ErrOutOfRange), "got %v", err)
}

func TestParseAny_RFC2822(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  instant.Instant[zone.Offset]
		class Class
	}{
		{"full", "Tue, 1 Jul 2003 10:52:37 +0200", fixedAt(t, 2*3600, 2003, time.July, 1, 10, 52, 37, 0), ClassNone},
		{"no weekday", "1 Jul 2003 10:52:37 GMT", fixedAt(t, 0, 2003, time.July, 1, 10, 52, 37, 0), ClassNone},
		{"no zone", "Tue, 1 Jul 2003 10:52:37", instant.Instant[zone.Offset]{}, ClassMissingZone},
		{"garbage", "yesterday", instant.Instant[zone.Offset]{}, ClassSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAny(tt.input)
			assert.Equal(t, tt.class, Classify(err), "got %v", err)
			if tt.class == ClassNone {
				assert.True(t, tt.want.Equal(got), "got %#v", got)
				assert.Equal(t, tt.want.Offset(), got.Offset())
			}
		})
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		layout string
		want   instant.Instant[zone.Offset]
	}{
		{
			name:   "unpadded with half hour offset",
			input:  "2014-5-7T12:34:56+09:30",
			layout: "%Y-%m-%dT%H:%M:%S%z",
			want:   fixedAt(t, 9*3600+30*60, 2014, time.May, 7, 12, 34, 56, 0),
		},
		{
			name:   "offset trailing a layout without one",
			input:  "2014-05-07 12:00 +09:00",
			layout: "%Y-%m-%d %H:%M",
			want:   fixedAt(t, 9*3600, 2014, time.May, 7, 12, 0, 0, 0),
		},
		{
			name:   "zone name trailing a layout without one",
			input:  "2014-05-07 12:00 GMT",
			layout: "%Y-%m-%d %H:%M",
			want:   fixedAt(t, 0, 2014, time.May, 7, 12, 0, 0, 0),
		},
		{
			name:   "named zone directive",
			input:  "2014-05-07 12:00 PDT",
			layout: "%Y-%m-%d %H:%M %Z",
			want:   fixedAt(t, -7*3600, 2014, time.May, 7, 12, 0, 0, 0),
		},
		{
			name:   "timestamp",
			input:  "1234567890 +0100",
			layout: "%s %z",
			want:   fixedAt(t, 3600, 2009, time.February, 14, 0, 31, 30, 0),
		},
		{
			name:   "timestamp with fraction",
			input:  "1234567890.25Z",
			layout: "%s%.f%#z",
			want:   fixedAt(t, 0, 2009, time.February, 13, 23, 31, 30, 250_000_000),
		},
		{
			name:   "permissive hour offset",
			input:  "2014-05-07 12:00 +09",
			layout: "%Y-%m-%d %H:%M %#z",
			want:   fixedAt(t, 9*3600, 2014, time.May, 7, 12, 0, 0, 0),
		},
		{
			name:   "ctime",
			input:  "Wed May  7 12:00:01 2014 +0000",
			layout: "%c %z",
			want:   fixedAt(t, 0, 2014, time.May, 7, 12, 0, 1, 0),
		},
		{
			name:   "twelve hour clock",
			input:  "05/07/14 07:08:09 pm Z",
			layout: "%D %r %#z",
			want:   fixedAt(t, 0, 2014, time.May, 7, 19, 8, 9, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input, tt.layout)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %#v, want %#v", got, tt.want)
			assert.Equal(t, tt.want.Offset(), got.Offset())
		})
	}
}

func TestParseInstant_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		layout string
		want   error
		class  Class
	}{
		{"no offset", "20140507000000", "%Y%m%d%H%M%S", ErrMissingOffset, ClassMissingZone},
		{"literal zone name", "Fri, 09 Aug 2013 23:54:35 GMT", "%a, %d %b %Y %H:%M:%S GMT", ErrMissingOffset, ClassMissingZone},
		{"no offset, short form", "2014-05-07 12:00", "%Y-%m-%d %H:%M", ErrMissingOffset, ClassMissingZone},
		{"unrelated trailing text", "2014-05-07 12:00 soon", "%Y-%m-%d %H:%M", ErrTooLong, ClassSyntax},
		{"conflicting years", "2014-05-07 2015 +0000", "%Y-%m-%d %Y %z", ErrImpossible, ClassRange},
		{"conflicting timestamp", "1234567890 2014 +0000", "%s %Y %z", ErrImpossible, ClassRange},
		{"missing minute", "2014-05-07 12 +0000", "%Y-%m-%d %H %z", ErrNotEnough, ClassSyntax},
		{"bad layout", "2014", "%Y %Q", ErrBadFormat, ClassSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInstant(tt.input, tt.layout)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, tt.class, Classify(err))
		})
	}
}

func TestParseInZone(t *testing.T) {
	got, err := ParseInZone("Fri, 09 Aug 2013 23:54:35 GMT", "%a, %d %b %Y %H:%M:%S GMT", zone.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2013-08-09 23:54:35 UTC", got.String())

	berlin, err := zone.ParsePOSIX("CET-1CEST,M3.5.0,M10.5.0/3")
	require.NoError(t, err)

	const layout = "%Y-%m-%d %H:%M %z"
	tests := []struct {
		name    string
		input   string
		layout  string
		wantUTC string
		wantErr error
	}{
		{"summer", "2015-07-01 12:00", "%Y-%m-%d %H:%M", "2015-07-01T10:00:00", nil},
		{"overlap without offset", "2015-10-25 02:30", "%Y-%m-%d %H:%M", "", ErrNotEnough},
		{"overlap, earlier offset", "2015-10-25 02:30 +0200", layout, "2015-10-25T00:30:00", nil},
		{"overlap, later offset", "2015-10-25 02:30 +0100", layout, "2015-10-25T01:30:00", nil},
		{"overlap, foreign offset", "2015-10-25 02:30 +0500", layout, "", ErrImpossible},
		{"gap", "2015-03-29 02:30", "%Y-%m-%d %H:%M", "", ErrImpossible},
		{"offset disagrees", "2015-07-01 12:00 +0100", layout, "", ErrImpossible},
		{"timestamp", "1435752000", "%s", "2015-07-01T12:00:00", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInZone(tt.input, tt.layout, berlin)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUTC, got.UTC().String())
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		layout string
		want   civil.Date
	}{
		{"calendar", "2015-02-18", "%F", civil.MustDate(2015, time.February, 18)},
		{"ordinal", "2015-049", "%Y-%j", civil.MustDate(2015, time.February, 18)},
		{"iso week", "2015 W08 3", "%G W%V %u", civil.MustDate(2015, time.February, 18)},
		{"sunday week zero", "2015 00 Thu", "%Y %U %a", civil.MustDate(2015, time.January, 1)},
		{"sunday week", "2001 27 Sunday", "%Y %U %A", civil.MustDate(2001, time.July, 8)},
		{"monday week", "2001 27 0", "%Y %W %w", civil.MustDate(2001, time.July, 8)},
		{"two digit year, 2000s", "69-01-01", "%y-%m-%d", civil.MustDate(2069, time.January, 1)},
		{"two digit year, 1900s", "70-01-01", "%y-%m-%d", civil.MustDate(1970, time.January, 1)},
		{"century and year", "19 69 01 01", "%C %y %m %d", civil.MustDate(1969, time.January, 1)},
		{"month names", "18 february 2015", "%d %B %Y", civil.MustDate(2015, time.February, 18)},
		{"short month name via %B", "18 Feb 2015", "%d %B %Y", civil.MustDate(2015, time.February, 18)},
		{"redundant weekday", "Wednesday 2015-02-18", "%A %F", civil.MustDate(2015, time.February, 18)},
		{"timestamp", "1424301369", "%s", civil.MustDate(2015, time.February, 18)},
		{"negative year", "-0001-03-01", "%Y-%m-%d", civil.MustDate(-1, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.layout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	errs := []struct {
		name   string
		input  string
		layout string
		want   error
	}{
		{"weekday mismatch", "Thu 2015-02-18", "%a %F", ErrImpossible},
		{"no such day", "2015-02-29", "%F", ErrOutOfRange},
		{"century alone", "20", "%C", ErrNotEnough},
		{"year alone", "2015", "%Y", ErrNotEnough},
		{"week past the year", "2015 53 Sat", "%Y %U %a", ErrOutOfRange},
		{"literal mismatch", "2015/02/18", "%F", ErrInvalid},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input, tt.layout)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		layout string
		want   civil.Time
	}{
		{"afternoon", "07:08:09 PM", "%I:%M:%S %p", civil.MustTime(19, 8, 9, 0)},
		{"midnight", "12:00 AM", "%I:%M %p", civil.MustTime(0, 0, 0, 0)},
		{"noon", "12:00 pm", "%I:%M %P", civil.MustTime(12, 0, 0, 0)},
		{"no seconds", "23:16", "%R", civil.MustTime(23, 16, 0, 0)},
		{"leap second", "23:59:60", "%T", civil.MustTime(23, 59, 59, 1_000_000_000)},
		{"fraction", "23:16:09.5", "%T%.f", civil.MustTime(23, 16, 9, 500_000_000)},
		{"fixed fraction", "23:16:09 150", "%T %3f", civil.MustTime(23, 16, 9, 150_000_000)},
		{"nanoseconds", "23:16:09 000000042", "%T %f", civil.MustTime(23, 16, 9, 42)},
		{"space padded hour", " 7:08", "%k:%M", civil.MustTime(7, 8, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input, tt.layout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTime("07:08", "%I:%M")
	assert.True(t, errors.Is(err, ErrNotEnough))

	_, err = ParseTime("13:08 AM", "%H:%M %p")
	assert.True(t, errors.Is(err, ErrImpossible))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2015-02-18 23:16:09.5", "%Y-%m-%d %H:%M:%S%.f")
	require.NoError(t, err)
	want, ok := civil.DateTimeOf(2015, time.February, 18, 23, 16, 9, 500_000_000)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, err = ParseDateTime("2015-02-18", "%F")
	assert.True(t, errors.Is(err, ErrNotEnough))
}

func TestFormatParse_RoundTrip(t *testing.T) {
	values := []instant.Instant[zone.Offset]{
		fixedAt(t, 0, 1970, time.January, 1, 0, 0, 0, 0),
		fixedAt(t, 34200, 2001, time.July, 8, 0, 34, 59, 26_490_708),
		fixedAt(t, -7*3600, 2024, time.February, 29, 12, 0, 0, 500_000_000),
		fixedAt(t, 5*3600+45*60, 1999, time.December, 31, 23, 59, 59, 999_999_999),
	}
	layouts := []string{
		"%Y-%m-%dT%H:%M:%S%.f%:z",
		"%a, %d %b %Y %H:%M:%S%.9f %z",
		"%A %e %B %Y %I:%M:%S%.f %p %z",
		"%G-W%V-%u %T%.f %#z",
		"%Y-%j %T %9f %z",
		"%+",
	}
	for _, layout := range layouts {
		for _, want := range values {
			text := Format(want, layout).String()
			got, err := ParseInstant(text, layout)
			require.NoError(t, err, "%s via %q", text, layout)
			assert.True(t, want.Equal(got), "%q: %s parsed as %#v", layout, text, got)
			assert.Equal(t, want.Offset(), got.Offset())
		}
	}
}
