// Command date-formats-workflow parses a date expression and prints it in a
// range of formats for the launcher.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/cli"
	"github.com/kyleking/alfred-workflows/internal/config"
	"github.com/kyleking/alfred-workflows/internal/dateparse"
	"github.com/kyleking/alfred-workflows/internal/datefmt"
	"github.com/kyleking/alfred-workflows/internal/logging"
)

const name = "date-formats"

// now and local are replaced in tests.
var (
	now   datefmt.Clock = time.Now
	local               = time.Local
)

func main() {
	env := newEnv()
	os.Exit(cli.Execute(newRootCmd(env), env))
}

func newEnv() *cli.Env {
	return cli.NewEnv(name, config.Config{})
}

func newRootCmd(env *cli.Env) *cobra.Command {
	var tz string
	root := &cobra.Command{
		Use:   "date-formats-workflow [date...]",
		Short: "Show a date in several formats",
		Args:  cobra.ArbitraryArgs,
		// No cache, so only the logger is set up.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(env.Debug || os.Getenv(config.EnvAlfredDebug) == "1")
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			env.Logger = logger.Named(name)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := run(env.Logger, cli.JoinArgs(args), tz)
			if err != nil {
				return err
			}
			return cli.WriteItems(cmd, items)
		},
	}
	env.Bind(root)
	root.Flags().StringVarP(&tz, "tz", "t", "UTC", "Display timezone (IANA name, PST or CST)")
	return root
}

func run(logger *zap.Logger, input, tz string) ([]alfred.Item, error) {
	if input == "" {
		return []alfred.Item{
			alfred.NewItem("now").
				Subtitle("Common date time formats for the current time in UTC.").
				Autocomplete(" now").
				Arg("now --tz " + tz).
				Build(),
		}, nil
	}

	display, err := dateparse.ResolveLocation(tz)
	if err != nil {
		return nil, err
	}

	var instant time.Time
	if input == "now" {
		instant = now().UTC()
	} else {
		res, err := dateparse.Parse(input)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed date", zap.String("input", input), zap.Stringer("tier", res.Tier))
		instant = res.Time
	}
	return datefmt.Variations(instant, display, local, now), nil
}
