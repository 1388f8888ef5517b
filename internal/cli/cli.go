// Package cli holds the bootstrap shared by the workflow binaries: flags,
// configuration, logging, the cache database and the common subcommands.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/app"
	"github.com/kyleking/alfred-workflows/internal/browser"
	"github.com/kyleking/alfred-workflows/internal/config"
	"github.com/kyleking/alfred-workflows/internal/exec"
	"github.com/kyleking/alfred-workflows/internal/frecency"
	"github.com/kyleking/alfred-workflows/internal/logging"
	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

// Env is everything a command needs once flags are parsed. Fields are
// filled in by Setup.
type Env struct {
	Name     string
	Defaults config.Config
	Debug    bool

	Config config.Config
	Logger *zap.Logger
	DB     *sql.DB

	// Opener defaults to the platform browser.
	Opener *browser.Opener
}

// NewEnv creates an Env for the named workflow.
func NewEnv(name string, defaults config.Config) *Env {
	return &Env{Name: name, Defaults: defaults, Logger: zap.NewNop()}
}

// Bind registers the persistent flags every workflow binary accepts.
func (e *Env) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&e.Debug, "debug", false, "Enable debug logging on stderr")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}

// Setup resolves configuration and builds the logger. It does not touch
// the database; commands that need it call OpenDB.
func (e *Env) Setup() error {
	cfg, err := config.Load(e.Name, e.Defaults)
	if err != nil {
		return err
	}
	cfg.Debug = cfg.Debug || e.Debug
	e.Config = cfg

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.Logger = logger.Named(e.Name)
	e.Logger.Debug("configuration loaded",
		zap.String("database", cfg.DatabaseURL),
		zap.Int("result_limit", cfg.ResultLimit))
	return nil
}

// OpenDB opens the workflow's cache database once.
func (e *Env) OpenDB(ctx context.Context) (*sql.DB, error) {
	if e.DB != nil {
		return e.DB, nil
	}
	db, err := sqlitedb.Open(ctx, e.Config.DatabaseURL)
	if err != nil {
		return nil, err
	}
	e.DB = db
	return db, nil
}

// Close releases the database and flushes the logger.
func (e *Env) Close() error {
	_ = e.Logger.Sync()
	if e.DB == nil {
		return nil
	}
	err := e.DB.Close()
	e.DB = nil
	return err
}

func (e *Env) opener() *browser.Opener {
	if e.Opener == nil {
		e.Opener = browser.New(exec.NewRealExecutor())
	}
	return e.Opener
}

// WriteItems prints items as the launcher's script-filter JSON.
func WriteItems(cmd *cobra.Command, items []alfred.Item) error {
	return alfred.WriteItems(cmd.OutOrStdout(), items)
}

// Refreshed prints the notification text shown once a refresh completes.
func Refreshed(w io.Writer, workflow string, count int64, noun string) error {
	_, err := fmt.Fprintf(w, "Successfully Refreshed %s cache (%s %s)\n",
		workflow, humanize.Comma(count), noun)
	return err
}

// JoinArgs joins positional tokens into one query string.
func JoinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// NewOpenCmd builds the `open <url>` subcommand. When httpsOnly is set,
// non-https URLs are ignored rather than opened.
func NewOpenCmd(env *Env, httpsOnly bool) *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL in the default browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if !httpsOnly {
				return env.opener().Open(cmd.Context(), url)
			}
			err := env.opener().OpenHTTPS(cmd.Context(), url)
			if errors.Is(err, browser.ErrNotHTTPS) {
				env.Logger.Debug("ignoring non-https url", zap.String("url", url))
				return nil
			}
			return err
		},
	}
}

// NewBrowseCmd builds the `browse` subcommand: an interactive picker over
// the searcher that newSearcher returns, ranked by the workflow's open
// history.
func NewBrowseCmd(env *Env, title string, newSearcher func(ctx context.Context) (app.Searcher, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Search the cache interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher, err := newSearcher(cmd.Context())
			if err != nil {
				return err
			}
			db, err := env.OpenDB(cmd.Context())
			if err != nil {
				return err
			}
			history := frecency.NewStore(db)
			if err := history.Migrate(cmd.Context()); err != nil {
				return err
			}
			return app.Run(cmd.Context(), app.Options{
				Title:    title,
				Searcher: searcher,
				Opener:   env.opener(),
				History:  history,
				Logger:   env.Logger,
			})
		},
	}
}

// Execute runs root until it returns or the process is interrupted. Errors
// are logged on stderr and turned into exit code 1.
func Execute(root *cobra.Command, env *Env) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		logger := env.Logger
		if !logger.Core().Enabled(zap.ErrorLevel) {
			// Setup failed before a logger was built.
			if l, lerr := logging.New(false); lerr == nil {
				logger = l
			}
		}
		logger.Error("workflow failed", zap.Error(err))
		_ = logger.Sync()
	}
	if cerr := env.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return 1
	}
	return 0
}
