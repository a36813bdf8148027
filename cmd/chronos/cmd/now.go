package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
)

func newNowCmd(a *app) *cobra.Command {
	var layout string
	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Long: `Print the current time in the selected zone, as RFC 3339 or through a
strftime layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.resolver.Resolve(cmd.Context(), a.v.GetString("zone"))
			if err != nil {
				return err
			}
			now := instant.Now(a.clock, p)
			if layout == "" {
				fmt.Fprintln(cmd.OutOrStdout(), format.FormatRFC3339(now, a.precision(), a.useZ()))
				return nil
			}
			s, err := format.Format(now, layout).Render()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVarP(&layout, "format", "f", "", "strftime layout")
	return cmd
}
