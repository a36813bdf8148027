package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/chronos/internal/health"
	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/version"
	"github.com/msto63/chronos/pkg/zone"
)

func newDoctorCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, zone store and tz database",
		Long: `Run diagnostic checks over every zone source chronos uses.

Configured zones whose names also exist in the tz database are compared
month by month for the current year; a mismatch usually means a stale
POSIX rule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year := instant.Now(a.clock, zone.UTC).Date().Year()

			reg := health.NewRegistry(version.Chronos, a.clock)
			reg.Register(health.ConfigCheck(a.cfg))
			reg.Register(health.TZDBCheck("Europe/Berlin"))
			reg.Register(health.StoreCheck(a.cfg.Store, a.resolver.Store))
			reg.Register(health.ConsistencyCheck(a.cfg, year))
			reg.Register(health.LocalCheck())

			report := reg.CheckWithTimeout(timeout)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, TitleStyle.Render("chronos doctor"))
				for _, c := range report.Checks {
					fmt.Fprintf(out, "  %s %-12s %s\n", statusIcon(c.Status), c.Name, c.Message)
					for k, v := range c.Details {
						fmt.Fprintf(out, "      %s\n", MutedStyle.Render(k+": "+v))
					}
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, "overall:", statusIcon(report.Status), string(report.Status))
			}

			if report.Status == health.StatusUnhealthy {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall timeout for the checks")
	return cmd
}

func statusIcon(s health.Status) string {
	switch s {
	case health.StatusHealthy:
		return ValueStyle.Render("[+]")
	case health.StatusDegraded:
		return WarnStyle.Render("[~]")
	}
	return ErrorStyle.Render("[-]")
}
