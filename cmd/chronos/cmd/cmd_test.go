package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

var testClock = instant.ClockFunc(func() time.Time {
	return time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
})

const testConfig = `
[general]
log_level = "error"
default_zone = "UTC"

[store]
path = "%s"

[[zones]]
name = "Europe/Berlin"
posix = "CET-1CEST,M3.5.0,M10.5.0/3"
`

// setupEnv writes a config whose store lives in a temp dir and points
// CHRONOS_CONFIG at it.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := filepath.Join(dir, "zones.db")
	path := filepath.Join(dir, "chronos.toml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(testConfig, "%s", store, 1)), 0o600))
	t.Setenv("CHRONOS_CONFIG", path)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(testClock)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNowCmd(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default zone", []string{"now"}, "2024-03-01T12:30:00+00:00"},
		{"use z", []string{"now", "--use-z"}, "2024-03-01T12:30:00Z"},
		{"configured zone", []string{"now", "-z", "Europe/Berlin"}, "2024-03-01T13:30:00+01:00"},
		{"fixed offset", []string{"now", "--zone=-03:00"}, "2024-03-01T09:30:00-03:00"},
		{"layout", []string{"now", "-z", "Europe/Berlin", "-f", "%d %b %Y %H:%M %Z"}, "01 Mar 2024 13:30 CET"},
		{"precision", []string{"now", "--precision", "millis"}, "2024-03-01T12:30:00.000+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestNowCmd_EnvOverride(t *testing.T) {
	setupEnv(t)
	t.Setenv("CHRONOS_ZONE", "Europe/Berlin")
	out, err := run(t, "now")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T13:30:00+01:00", strings.TrimSpace(out))
}

func TestFormatCmd(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"leap second", []string{"format", "2015-06-30T23:59:60Z", "%H:%M:%S"}, "23:59:60"},
		{"zone", []string{"format", "-z", "Europe/Berlin", "1999-12-31T23:00:00Z", "%Y-%m-%d %H:%M %Z"}, "2000-01-01 00:00 CET"},
		{"rfc 2822 input", []string{"format", "Tue, 1 Jul 2003 10:52:37 +0200", "%s"}, "1057049557"},
		{"right aligned", []string{"format", "-w", "6", "--align", "right", "2015-06-30T12:00:00Z", "%H"}, "    12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimRight(out, "\n"))
		})
	}

	_, err := run(t, "format", "2015-06-30T12:00:00Z", "%Q")
	assert.True(t, errors.Is(err, format.ErrBadFormat), "got %v", err)
}

func TestParseCmd_JSON(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "parse", "--json", "2003-07-01T10:52:37+02:00")
	require.NoError(t, err)

	var rep struct {
		Timestamp string `json:"timestamp"`
		Unix      int64  `json:"unix"`
		RFC2822   string `json:"rfc2822"`
		Source    string `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "2003-07-01T10:52:37+02:00", rep.Timestamp)
	assert.Equal(t, int64(1057049557), rep.Unix)
	assert.Equal(t, "Tue, 01 Jul 2003 10:52:37 +0200", rep.RFC2822)
	assert.Equal(t, "auto", rep.Source)
}

func TestParseCmd_LocalLayout(t *testing.T) {
	setupEnv(t)
	layout := "%Y-%m-%d %H:%M"

	out, err := run(t, "parse", "-z", "Europe/Berlin", "-l", layout, "2015-07-01 12:00")
	require.NoError(t, err)
	assert.Contains(t, out, "2015-07-01T12:00:00+02:00")
	assert.Contains(t, out, "layout+config")

	_, err = run(t, "parse", "-z", "Europe/Berlin", "-l", layout, "2015-10-25 02:30")
	assert.True(t, errors.Is(err, format.ErrNotEnough), "ambiguous: got %v", err)

	_, err = run(t, "parse", "-z", "Europe/Berlin", "-l", layout, "2015-03-29 02:30")
	assert.True(t, errors.Is(err, format.ErrImpossible), "skipped: got %v", err)
}

func TestParseCmd_Kinds(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"date", []string{"parse", "--kind", "date", "-l", "%G-W%V-%u", "2015-W01-1"}, "2014-12-29 (Monday, ISO 2015-W01-1, day 363)"},
		{"time", []string{"parse", "--kind", "time", "-l", "%I:%M %p", "01:08 PM"}, "13:08:00"},
		{"datetime", []string{"parse", "--kind", "datetime", "-l", "%d/%m/%Y %T", "30/06/2015 23:59:60"}, "2015-06-30T23:59:60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	_, err := run(t, "parse", "--kind", "date", "2015-01-01")
	assert.Error(t, err)
	_, err = run(t, "parse", "--rfc", "3339", "Tue, 1 Jul 2003 10:52:37 +0200")
	assert.Equal(t, format.ClassSyntax, format.Classify(err))
	_, err = run(t, "parse", "--rfc", "3339", "2003-07-01T10:52:37")
	assert.Equal(t, format.ClassMissingZone, format.Classify(err))
	_, err = run(t, "parse", "--rfc", "2822", "Tue, 1 Jul 2003 10:52:37")
	assert.Equal(t, format.ClassMissingZone, format.Classify(err))
}

func TestConvertCmd(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "convert", "2024-03-31T00:30:00Z", "Europe/Berlin", "+05:30", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-31T01:30:00+01:00")
	assert.Contains(t, out, "CET")
	assert.Contains(t, out, "2024-03-31T06:00:00+05:30")
	assert.Contains(t, out, "2024-03-31T00:30:00+00:00")

	_, err = run(t, "convert", "2024-03-31T00:30:00Z", "Mars/Olympus")
	assert.True(t, errors.Is(err, zone.ErrUnknownZone), "got %v", err)
}

func TestDayCmd(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "day", "-z", "Europe/Berlin", "2015-03-29")
	require.NoError(t, err)
	assert.Contains(t, out, "Sunday, 29 March 2015")
	assert.Contains(t, out, "2015-03-29T00:00:00+01:00")
	assert.Contains(t, out, "2015-03-30T00:00:00+02:00")
	assert.Contains(t, out, "PT82800S")

	out, err = run(t, "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Friday, 01 March 2024")
	assert.Contains(t, out, "P1D")
	assert.NotContains(t, out, "PT86400S")
}

func TestZonesCmd(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "zones", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Europe/Berlin")
	assert.Contains(t, out, "no store at")

	out, err = run(t, "zones", "add", "Asia/Kolkata", "IST-5:30")
	require.NoError(t, err)
	assert.Contains(t, out, "stored Asia/Kolkata")

	out, err = run(t, "zones", "show", "Asia/Kolkata")
	require.NoError(t, err)
	assert.Contains(t, out, "store")
	assert.Contains(t, out, "2024-03-01 18:00:00 +05:30")
	assert.Contains(t, out, "IST")

	out, err = run(t, "now", "-z", "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T18:00:00+05:30", strings.TrimSpace(out))

	importFile := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(importFile, []byte(`
zones:
  - name: Asia/Tokyo
    posix: JST-9
  - name: Pacific/Auckland
    posix: NZST-12NZDT,M9.5.0,M4.1.0/3
`), 0o600))
	out, err = run(t, "zones", "import", importFile)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 zone(s)")

	out, err = run(t, "zones", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Asia/Tokyo")
	assert.Contains(t, out, "Pacific/Auckland NZST-12NZDT,M9.5.0,M4.1.0/3")
	assert.Contains(t, out, "Europe/Berlin")
	assert.Contains(t, out, "updated 2024-03-01T12:30:00Z")

	out, err = run(t, "zones", "remove", "Asia/Kolkata")
	require.NoError(t, err)
	assert.Contains(t, out, "removed Asia/Kolkata")

	_, err = run(t, "zones", "remove", "Asia/Kolkata")
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	_, err = run(t, "zones", "add", "Broken", "nonsense")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	t.Setenv("CHRONOS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chronos v")
	assert.Contains(t, out, "OS/Arch:")
}

func TestRootCmd_BadConfig(t *testing.T) {
	t.Setenv("CHRONOS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	_, err := run(t, "now")
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	setupEnv(t)
	_, err = run(t, "now", "--precision", "picos")
	assert.Error(t, err)
}

func TestDoctorCmd(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "doctor", "--json")
	require.NoError(t, err)

	var report struct {
		Status string `json:"status"`
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Checks, 5)
	assert.Equal(t, "config", report.Checks[0].Name)
	for _, c := range report.Checks {
		if c.Name == "store" {
			assert.Equal(t, "healthy", c.Status)
		}
	}

	out, err = run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "overall:")
}

func TestField(t *testing.T) {
	tests := []struct {
		name  string
		label string
		width int
	}{
		{"short label is padded", "zone", labelWidth + len(" UTC")},
		{"label at the column width", "Europe/Paris", labelWidth + len(" UTC")},
		{"long label stays on one line", "America/Argentina/Buenos_Aires", len("America/Argentina/Buenos_Aires UTC")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			field(&b, tt.label, "UTC")
			line, ok := strings.CutSuffix(b.String(), "\n")
			require.True(t, ok)
			assert.NotContains(t, line, "\n")
			assert.Contains(t, line, tt.label)
			assert.Equal(t, tt.width, lipgloss.Width(line))
		})
	}
}
