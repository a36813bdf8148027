package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// parseReport is the --json shape of a parsed instant.
type parseReport struct {
	Input     string           `json:"input"`
	Timestamp format.Timestamp `json:"timestamp"`
	Unix      int64            `json:"unix"`
	RFC2822   string           `json:"rfc2822,omitempty"`
	Zone      string           `json:"zone"`
	Source    string           `json:"source"`
}

func newParseCmd(a *app) *cobra.Command {
	var (
		layout string
		kind   string
		rfc    string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a timestamp and show its readings",
		Long: `Parse a timestamp and show it in the common encodings.

Without --layout the input may be RFC 3339 or RFC 2822. With --layout it
is read through the strftime layout; an input without an offset is
interpreted in the selected zone, and fails if that local time is skipped
or repeated there.

--kind selects what the layout describes: instant (default), datetime,
date or time.`,
		Example: `  chronos parse 'Tue, 1 Jul 2003 10:52:37 +0200'
  chronos parse --layout '%Y-%m-%d %H:%M' --zone Europe/Berlin '2015-10-25 02:30'
  chronos parse --kind date --layout '%G-W%V-%u' 2015-W01-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			out := cmd.OutOrStdout()

			switch kind {
			case "instant":
			case "datetime", "date", "time":
				if layout == "" {
					return errors.WithHint(errors.Newf("--kind %s needs a layout", kind), "pass --layout")
				}
				return printCivil(out, kind, input, layout)
			default:
				return errors.Newf("unknown kind %q", kind)
			}

			t, source, err := a.parseInstant(cmd, input, layout, rfc)
			if err != nil {
				return err
			}

			rep := parseReport{
				Input:     input,
				Timestamp: format.NewTimestamp(t),
				Unix:      t.Unix(),
				Zone:      zone.AbbreviationOf(t.Zone(), t.UTC()),
				Source:    source,
			}
			if s, err := format.FormatRFC2822(t); err == nil {
				rep.RFC2822 = s
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}

			fmt.Fprintln(out, TitleStyle.Render(input))
			field(out, "rfc3339", format.FormatRFC3339(t, a.precision(), a.useZ()))
			if rep.RFC2822 != "" {
				field(out, "rfc2822", rep.RFC2822)
			}
			field(out, "unix", strconv.FormatInt(rep.Unix, 10))
			field(out, "utc", format.FormatRFC3339(instant.WithZone(t, zone.UTC), a.precision(), true))
			field(out, "zone", rep.Zone)
			field(out, "week", format.Format(t, "%G-W%V-%u, day %j").String())
			field(out, "source", MutedStyle.Render(source))
			return nil
		},
	}
	cmd.Flags().StringVarP(&layout, "layout", "l", "", "strftime layout of the input")
	cmd.Flags().StringVar(&kind, "kind", "instant", "what the layout describes: instant, datetime, date or time")
	cmd.Flags().StringVar(&rfc, "rfc", "", "require a specific format: 3339 or 2822")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// parseInstant reads input, falling back to the selected zone when a
// layout leaves the offset out.
func (a *app) parseInstant(cmd *cobra.Command, input, layout, rfc string) (instant.Instant[zone.Offset], string, error) {
	switch {
	case rfc == "3339":
		t, err := format.ParseRFC3339(input)
		return t, "rfc3339", err
	case rfc == "2822":
		t, err := format.ParseRFC2822(input)
		return t, "rfc2822", err
	case rfc != "":
		return instant.Instant[zone.Offset]{}, "", errors.Newf("unknown RFC %q, want 3339 or 2822", rfc)
	case layout == "":
		t, err := format.ParseAny(input)
		return t, "auto", err
	}

	t, err := format.ParseInstant(input, layout)
	if err == nil {
		return t, "layout", nil
	}
	if format.Classify(err) != format.ClassMissingZone {
		return t, "", err
	}

	p, source, zerr := a.resolver.Resolve(cmd.Context(), a.v.GetString("zone"))
	if zerr != nil {
		return t, "", zerr
	}
	zt, err := format.ParseInZone(input, layout, p)
	if err != nil {
		return t, "", errors.WithHintf(err, "local time in %s", p)
	}
	return zt.Fixed(), "layout+" + string(source), nil
}

func printCivil(w io.Writer, kind, input, layout string) error {
	var s string
	switch kind {
	case "datetime":
		dt, err := format.ParseDateTime(input, layout)
		if err != nil {
			return err
		}
		s = dt.String()
	case "date":
		d, err := format.ParseDate(input, layout)
		if err != nil {
			return err
		}
		s = format.FormatDate(d, "%Y-%m-%d (%A, ISO %G-W%V-%u, day %j)").String()
	case "time":
		t, err := format.ParseTime(input, layout)
		if err != nil {
			return err
		}
		s = t.String()
	}
	fmt.Fprintln(w, TitleStyle.Render(input))
	field(w, kind, s)
	return nil
}
