// Command datadog-workflow caches Datadog dashboards and monitors and
// searches them for the launcher.
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/app"
	"github.com/kyleking/alfred-workflows/internal/cli"
	"github.com/kyleking/alfred-workflows/internal/config"
	"github.com/kyleking/alfred-workflows/internal/datadog"
)

// httpClient is replaced in tests; nil means the client's default.
var httpClient *http.Client

func main() {
	env := newEnv()
	os.Exit(cli.Execute(newRootCmd(env), env))
}

func newEnv() *cli.Env {
	return cli.NewEnv(datadog.Name, config.Config{
		APIURL:      datadog.DefaultAPIURL,
		Subdomain:   datadog.DefaultSubdomain,
		ResultLimit: datadog.DefaultLimit,
	})
}

func newRootCmd(env *cli.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "datadog-workflow",
		Short: "Search cached Datadog dashboards and monitors",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.WriteItems(cmd, []alfred.Item{datadog.RefreshItem()})
		},
	}
	env.Bind(root)

	root.AddCommand(
		newSearchCmd(env, "t [title...]", "Search timeboards", (*datadog.Workflow).TimeBoards),
		newSearchCmd(env, "s [title...]", "Search screenboards", (*datadog.Workflow).ScreenBoards),
		newSearchCmd(env, "d [title...]", "Search timeboards and screenboards", (*datadog.Workflow).Dashboards),
		newMonitorsCmd(env),
		newSettingsCmd(env),
		cli.NewOpenCmd(env, true),
		cli.NewBrowseCmd(env, "Datadog dashboards", func(ctx context.Context) (app.Searcher, error) {
			return openWorkflow(ctx, env, false)
		}),
	)
	return root
}

type searchFunc func(w *datadog.Workflow, ctx context.Context, query string) ([]alfred.Item, error)

func newSearchCmd(env *cli.Env, use, short string, search searchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := openWorkflow(cmd.Context(), env, false)
			if err != nil {
				return err
			}
			items, err := search(wf, cmd.Context(), cli.JoinArgs(args))
			if err != nil {
				return err
			}
			return cli.WriteItems(cmd, items)
		},
	}
}

func newMonitorsCmd(env *cli.Env) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "m [name...]",
		Short: "Search monitors, optionally by tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := openWorkflow(cmd.Context(), env, false)
			if err != nil {
				return err
			}
			items, err := wf.Monitors(cmd.Context(), cli.JoinArgs(args), tag)
			if err != nil {
				return err
			}
			return cli.WriteItems(cmd, items)
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Only monitors with a tag matching this text")
	return cmd
}

func newSettingsCmd(env *cli.Env) *cobra.Command {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Workflow maintenance",
	}
	settings.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refetch dashboards and monitors into the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := openWorkflow(cmd.Context(), env, true)
			if err != nil {
				return err
			}
			snap, err := wf.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			n := len(snap.TimeBoards) + len(snap.ScreenBoards) + len(snap.Monitors)
			return cli.Refreshed(cmd.OutOrStdout(), "Datadog", int64(n), "dashboards and monitors")
		},
	})
	return settings
}

func openWorkflow(ctx context.Context, env *cli.Env, withClient bool) (*datadog.Workflow, error) {
	db, err := env.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	var client *datadog.Client
	if withClient {
		if err := env.Config.Require(config.EnvAPIKey, config.EnvApplicationKey); err != nil {
			return nil, err
		}
		client = datadog.NewClient(datadog.ClientOptions{
			APIURL:         env.Config.APIURL,
			APIKey:         env.Config.APIKey,
			ApplicationKey: env.Config.ApplicationKey,
			Subdomain:      env.Config.Subdomain,
			HTTPClient:     httpClient,
		}, env.Logger)
	}
	return datadog.New(ctx, db, client, env.Logger, env.Config.ResultLimit)
}
