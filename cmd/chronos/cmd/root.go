package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/msto63/chronos/internal/zonestore"
	"github.com/msto63/chronos/pkg/config"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/logging"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	clock    instant.Clock
	resolver *Resolver
	log      *zap.Logger
}

func (a *app) precision() format.Precision {
	p, err := format.ParsePrecision(a.v.GetString("precision"))
	if err != nil {
		// Validated in setup.
		return format.AutoSi
	}
	return p
}

func (a *app) useZ() bool { return a.v.GetBool("use-z") }

// setup loads configuration and applies flag and CHRONOS_* overrides on top.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if path := a.v.GetString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	a.v.SetDefault("zone", cfg.General.DefaultZone)
	a.v.SetDefault("precision", cfg.General.Precision)
	a.v.SetDefault("use-z", cfg.General.UseZ)
	a.v.SetDefault("store", cfg.Store.Path)
	a.v.SetDefault("log-level", cfg.General.LogLevel)

	cfg.General.DefaultZone = a.v.GetString("zone")
	cfg.General.Precision = a.v.GetString("precision")
	cfg.General.UseZ = a.v.GetBool("use-z")
	cfg.Store.Path = a.v.GetString("store")
	cfg.General.LogLevel = a.v.GetString("log-level")
	if a.v.GetBool("verbose") {
		cfg.General.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.LoggerConfig("chronos")
	lc.Output = cmd.ErrOrStderr()
	a.log = logging.NewLogger(lc)
	logging.Set(a.log)

	a.cfg = cfg
	a.resolver = NewResolver(cfg, a.clock, func() (zonestore.Store, error) {
		return zonestore.OpenWithClock(cfg.Store, a.clock)
	})
	a.log.Debug("configuration ready",
		zap.String(logging.FieldZone, cfg.General.DefaultZone),
		zap.String(logging.FieldPath, cfg.Store.Path))
	return nil
}

func (a *app) teardown() error {
	if a.resolver == nil {
		return nil
	}
	return a.resolver.Close()
}

// newRootCmd builds the command tree. clock supplies "now".
func newRootCmd(clock instant.Clock) *cobra.Command {
	a := &app{v: viper.New(), clock: clock}
	a.v.SetEnvPrefix("CHRONOS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "chronos",
		Short: "chronos - civil time, zones and timestamp codecs",
		Long: `chronos converts, formats and parses timestamps.

It understands strftime layouts, RFC 3339 and RFC 2822, resolves zones from
the configuration, a local zone store, the system tz database or fixed
offsets, and handles leap seconds and ambiguous local times explicitly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./configs/chronos.toml)")
	flags.StringP("zone", "z", "", "zone name, POSIX rule or fixed offset (default from config)")
	flags.String("precision", "", "RFC 3339 fraction: secs, millis, micros, nanos or autosi")
	flags.Bool("use-z", false, "write Z instead of +00:00 for UTC")
	flags.String("store", "", "zone store database path")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.BoolP("verbose", "v", false, "verbose output")
	for _, name := range []string{"config", "zone", "precision", "use-z", "store", "log-level", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newNowCmd(a),
		newFormatCmd(a),
		newParseCmd(a),
		newConvertCmd(a),
		newDayCmd(a),
		newZonesCmd(a),
		newDoctorCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the chronos command line.
func Execute() error {
	root := newRootCmd(instant.SystemClock{})
	if err := root.Execute(); err != nil {
		printError(root, err)
		return err
	}
	return nil
}

func printError(cmd *cobra.Command, err error) {
	class := format.Classify(err)
	label := "error"
	if class != format.ClassNone && class != format.ClassOther {
		label = class.String() + " error"
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(label+":"), err)
}
