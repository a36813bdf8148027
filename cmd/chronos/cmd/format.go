package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
)

func newFormatCmd(a *app) *cobra.Command {
	var width int
	var align string
	cmd := &cobra.Command{
		Use:   "format <timestamp> <layout>",
		Short: "Render a timestamp through a strftime layout",
		Long: `Render a timestamp through a strftime layout in the selected zone.

The timestamp may be RFC 3339, RFC 2822 or any form the parse command
accepts without a layout.`,
		Example: `  chronos format 2015-06-30T23:59:60Z '%a %d %b %Y %H:%M:%S'
  chronos format --zone Europe/Berlin 1999-12-31T23:00:00Z '%c %Z'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := format.ParseAny(args[0])
			if err != nil {
				return err
			}
			p, _, err := a.resolver.Resolve(cmd.Context(), a.v.GetString("zone"))
			if err != nil {
				return err
			}

			f := format.Format(instant.WithZone(t, p), args[1])
			s, err := f.Render()
			if err != nil {
				return err
			}
			if width == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}

			var al format.Alignment
			switch align {
			case "left":
				al = format.AlignLeft
			case "right":
				al = format.AlignRight
			case "center":
				al = format.AlignCenter
			default:
				return errors.Newf("unknown alignment %q", align)
			}
			fmt.Fprintln(cmd.OutOrStdout(), f.Align(width, al, ' '))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "pad the result to this width")
	cmd.Flags().StringVar(&align, "align", "left", "alignment within --width: left, right or center")
	return cmd
}
