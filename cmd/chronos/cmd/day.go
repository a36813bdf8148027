package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

func newDayCmd(a *app) *cobra.Command {
	var layout string
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show when a local day starts and ends",
		Long: `Show the first and last instant of a local day in the selected zone and
how long it lasts. Days that contain a DST transition are shorter or longer
than 24 hours, and a day may start after midnight when midnight is skipped.

Without a date the current day is used.`,
		Example: `  chronos day --zone Europe/Berlin 2015-03-29
  chronos day --zone America/Sao_Paulo --layout %d.%m.%Y 04.11.2018`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.resolver.Resolve(cmd.Context(), a.v.GetString("zone"))
			if err != nil {
				return err
			}

			var day instant.Day[zone.Provider]
			if len(args) == 0 {
				day = instant.DayOf(instant.Now(a.clock, p))
			} else {
				var d civil.Date
				if d, err = format.ParseDate(args[0], layout); err != nil {
					return err
				}
				day = instant.NewDay(d, p)
			}

			start := day.Start()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render(format.FormatDate(day.Date(), "%A, %d %B %Y").String()))
			field(out, "zone", p.String())
			field(out, "start", format.FormatRFC3339(start, a.precision(), a.useZ()))
			end, ok := day.End()
			if !ok {
				field(out, "next day", WarnStyle.Render("beyond the supported range"))
				return nil
			}
			field(out, "next day", format.FormatRFC3339(end, a.precision(), a.useZ()))
			field(out, "length", end.SignedDurationSince(start).String())
			if l := start.Local().Time(); l != civil.Midnight {
				field(out, "note", WarnStyle.Render("midnight is skipped; the day starts at "+l.String()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&layout, "layout", "l", "%Y-%m-%d", "strftime layout of the date")
	return cmd
}
