package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

func newConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert <timestamp> <zone>...",
		Short:   "Show one instant in several zones",
		Example: `  chronos convert 2024-03-31T00:30:00Z Europe/Berlin America/New_York +05:30`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := format.ParseAny(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render(format.FormatRFC3339(t, a.precision(), a.useZ())))
			for _, name := range args[1:] {
				p, _, err := a.resolver.Resolve(cmd.Context(), name)
				if err != nil {
					return err
				}
				local := instant.WithZone(t, p)
				field(out, name, format.FormatRFC3339(local, a.precision(), a.useZ())+" "+
					MutedStyle.Render(zone.AbbreviationOf(p, t.UTC())))
			}
			return nil
		},
	}
	return cmd
}
