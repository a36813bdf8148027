package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

func newZonesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Manage named zones",
		Long: `Manage the zones chronos can resolve by name.

Zones come from the [[zones]] table of the configuration and from the zone
store, a SQLite database holding POSIX TZ rules.`,
	}
	cmd.AddCommand(
		newZonesListCmd(a),
		newZonesShowCmd(a),
		newZonesAddCmd(a),
		newZonesRemoveCmd(a),
		newZonesImportCmd(a),
	)
	return cmd
}

func newZonesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured and stored zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render("Configured"))
			if len(a.cfg.Zones) == 0 {
				fmt.Fprintln(out, MutedStyle.Render("  none"))
			}
			for _, name := range a.cfg.ZoneNames() {
				rules, _ := a.cfg.Provider(name)
				field(out, name, rules.String())
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, TitleStyle.Render("Stored"))
			if _, err := os.Stat(a.cfg.Store.Path); err != nil {
				fmt.Fprintln(out, MutedStyle.Render("  no store at "+a.cfg.Store.Path))
				return nil
			}
			s, err := a.resolver.Store()
			if err != nil {
				return err
			}
			records, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, MutedStyle.Render("  none"))
			}
			for _, r := range records {
				field(out, r.Name, r.POSIX+"  "+MutedStyle.Render("updated "+r.UpdatedAt.String()))
			}
			return nil
		},
	}
}

func newZonesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show how a zone name resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, source, err := a.resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			now := instant.Now(a.clock, p)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render(args[0]))
			field(out, "source", string(source))
			field(out, "provider", p.String())
			field(out, "now", format.Format(now, "%Y-%m-%d %H:%M:%S %:z").String())
			field(out, "abbrev", zone.AbbreviationOf(p, now.UTC()))
			if rules, ok := p.(zone.Rules); ok {
				std, dst := rules.Names()
				field(out, "standard", std+" "+rules.StandardOffset().String())
				if off, ok := rules.DaylightOffset(); ok {
					field(out, "daylight", dst+" "+off.String())
				}
			}
			return nil
		},
	}
}

func newZonesAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <posix-rule>",
		Short:   "Store a zone defined by a POSIX TZ rule",
		Example: `  chronos zones add Europe/Berlin CET-1CEST,M3.5.0,M10.5.0/3`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.resolver.Store()
			if err != nil {
				return err
			}
			rec, err := s.Save(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.resolver.Forget(rec.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", ValueStyle.Render("stored"), rec.Name, rec.ID)
			return nil
		},
	}
}

func newZonesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a stored zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.resolver.Store()
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.resolver.Forget(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ValueStyle.Render("removed"), args[0])
			return nil
		},
	}
}

func newZonesImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <config-file>",
		Short: "Copy the [[zones]] of a TOML or YAML file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if len(src.Zones) == 0 {
				return errors.WithHint(errors.Newf("%s defines no zones", args[0]), "add [[zones]] entries with name and posix")
			}
			s, err := a.resolver.Store()
			if err != nil {
				return err
			}
			accepted, rejected, err := s.Import(cmd.Context(), src.Zones)
			if err != nil {
				return err
			}
			for _, z := range src.Zones {
				a.resolver.Forget(z.Name)
			}
			logging.Named("zones").Debug("import finished",
				zap.String(logging.FieldPath, args[0]),
				zap.Int(logging.FieldCount, accepted))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d zone(s)", ValueStyle.Render("imported"), accepted)
			if rejected > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %s", WarnStyle.Render(fmt.Sprintf("%d rejected", rejected)))
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
