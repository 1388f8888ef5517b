// Command github-workflow caches the repositories the authenticated user
// can reach and searches them for the launcher.
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
	"github.com/kyleking/alfred-workflows/internal/github"
)

// transport is replaced in tests; nil means go-gh's default.
var transport http.RoundTripper

func main() {
	env := newEnv()
	os.Exit(cli.Execute(newRootCmd(env), env))
}

func newEnv() *cli.Env {
	return cli.NewEnv(github.Name, config.Config{
		ResultLimit: github.DefaultLimit,
	})
}

func newRootCmd(env *cli.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "github-workflow [query...]",
		Short: "Search cached GitHub repositories",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cli.WriteItems(cmd, []alfred.Item{github.RefreshItem()})
			}
			wf, err := openWorkflow(cmd.Context(), env, false)
			if err != nil {
				return err
			}
			items, err := wf.Query(cmd.Context(), cli.JoinArgs(args))
			if err != nil {
				return err
			}
			return cli.WriteItems(cmd, items)
		},
	}
	env.Bind(root)

	settings := &cobra.Command{
		Use:   ">settings",
		Short: "Workflow maintenance",
	}
	settings.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refetch every repository into the cache",
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
			return cli.Refreshed(cmd.OutOrStdout(), "GitHub", int64(n), "repositories")
		},
	})

	root.AddCommand(
		settings,
		cli.NewOpenCmd(env, true),
		cli.NewBrowseCmd(env, "GitHub repositories", func(ctx context.Context) (app.Searcher, error) {
			return openWorkflow(ctx, env, false)
		}),
	)
	return root
}

func openWorkflow(ctx context.Context, env *cli.Env, withClient bool) (*github.Workflow, error) {
	db, err := env.OpenDB(ctx)
	if err != nil {
		return nil, err
	}
	var client *github.Client
	if withClient {
		client, err = github.NewClient(github.ClientOptions{
			Token:     env.Config.APIKey,
			Transport: transport,
		}, env.Logger)
		if err != nil {
			return nil, err
		}
	}
	return github.New(ctx, db, client, env.Logger, env.Config.ResultLimit)
}
