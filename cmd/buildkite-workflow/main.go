// Command buildkite-workflow caches Buildkite pipelines and searches them
// for the launcher.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/app"
	"github.com/kyleking/alfred-workflows/internal/buildkite"
	"github.com/kyleking/alfred-workflows/internal/cli"
	"github.com/kyleking/alfred-workflows/internal/config"
)

func main() {
	env := newEnv()
	os.Exit(cli.Execute(newRootCmd(env), env))
}

func newEnv() *cli.Env {
	return cli.NewEnv(buildkite.Name, config.Config{
		APIURL:      buildkite.DefaultBaseURL,
		ResultLimit: buildkite.DefaultLimit,
	})
}

func newRootCmd(env *cli.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "buildkite-workflow [query...]",
		Short: "Search cached Buildkite pipelines",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cli.WriteItems(cmd, []alfred.Item{buildkite.RefreshItem()})
			}
			wf, err := openWorkflow(cmd.Context(), env, false)
			if err != nil {
				return err
			}
			items, err := wf.Query(cmd.Context(), args)
			if err != nil {
				return err
			}
			return cli.WriteItems(cmd, items)
		},
	}
	env.Bind(root)

	root.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Refetch every pipeline into the cache",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				wf, err := openWorkflow(cmd.Context(), env, true)
				if err != nil {
					return err
				}
				n, err := wf.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				return cli.Refreshed(cmd.OutOrStdout(), "Buildkite", int64(n), "pipelines")
			},
		},
		cli.NewOpenCmd(env, false),
		cli.NewBrowseCmd(env, "Buildkite pipelines", func(ctx context.Context) (app.Searcher, error) {
			return openWorkflow(ctx, env, false)
		}),
	)
	return root
}

// openWorkflow opens the cache; the API client is only built for refresh,
// which is the one operation that needs the token.
func openWorkflow(ctx context.Context, env *cli.Env, withClient bool) (*buildkite.Workflow, error) {
	db, err := env.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	var client *buildkite.Client
	if withClient {
		if err := env.Config.Require(config.EnvAPIKey); err != nil {
			return nil, err
		}
		client = buildkite.NewClient(ctx, env.Config.APIKey, env.Config.APIURL, env.Logger)
	}
	return buildkite.New(ctx, db, client, env.Logger, env.Config.ResultLimit)
}
