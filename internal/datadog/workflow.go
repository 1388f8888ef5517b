package datadog

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

const (
	Name         = "datadog"
	DefaultLimit = 10
)

type Workflow struct {
	client *Client
	store  *Store
	db     *sql.DB
	logger *zap.Logger
	limit  int
}

// New builds a workflow over an open database and runs its migrations.
func New(ctx context.Context, db *sql.DB, client *Client, logger *zap.Logger, limit int) (*Workflow, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	store := NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return &Workflow{client: client, store: store, db: db, logger: logger, limit: limit}, nil
}

// Refresh downloads all three listings and then replaces the cache. Nothing
// is written unless every fetch succeeded.
func (w *Workflow) Refresh(ctx context.Context) (Snapshot, error) {
	snap, err := w.client.FetchAll(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if err := w.store.ReplaceAll(ctx, snap); err != nil {
		return Snapshot{}, err
	}
	if err := sqlitedb.Optimize(ctx, w.db); err != nil {
		return Snapshot{}, err
	}
	w.logger.Info("refreshed datadog cache",
		zap.Int("timeboards", len(snap.TimeBoards)),
		zap.Int("screenboards", len(snap.ScreenBoards)),
		zap.Int("monitors", len(snap.Monitors)))
	return snap, nil
}

func (w *Workflow) TimeBoards(ctx context.Context, title string) ([]alfred.Item, error) {
	boards, err := w.store.FindTimeBoards(ctx, title, w.limit)
	if err != nil {
		return nil, err
	}
	items := make([]alfred.Item, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardItem(b.Title, b.Description, b.URL))
	}
	return items, nil
}

func (w *Workflow) ScreenBoards(ctx context.Context, title string) ([]alfred.Item, error) {
	boards, err := w.store.FindScreenBoards(ctx, title, w.limit)
	if err != nil {
		return nil, err
	}
	items := make([]alfred.Item, 0, len(boards))
	for _, b := range boards {
		items = append(items, boardItem(b.Title, b.Description, b.URL))
	}
	return items, nil
}

func (w *Workflow) Dashboards(ctx context.Context, title string) ([]alfred.Item, error) {
	return w.Search(ctx, title, w.limit)
}

// Search looks up dashboards of both kinds; the browse picker uses it.
func (w *Workflow) Search(ctx context.Context, title string, limit int) ([]alfred.Item, error) {
	dashboards, err := w.store.FindDashboards(ctx, title, limit)
	if err != nil {
		return nil, err
	}
	items := make([]alfred.Item, 0, len(dashboards))
	for _, d := range dashboards {
		items = append(items, boardItem(d.Title, d.Description, d.URL))
	}
	return items, nil
}

// Monitors searches monitors by name, optionally narrowed to a tag.
func (w *Workflow) Monitors(ctx context.Context, name, tag string) ([]alfred.Item, error) {
	monitors, err := w.store.FindMonitors(ctx, name, tag, w.limit)
	if err != nil {
		return nil, err
	}
	items := make([]alfred.Item, 0, len(monitors))
	for _, m := range monitors {
		items = append(items, alfred.NewItem(m.Name).
			Subtitle(m.Name).
			Autocomplete(m.Name).
			Arg(alfred.OpenArg(m.URL)).
			Build())
	}
	return items, nil
}

func boardItem(title, description, url string) alfred.Item {
	return alfred.NewItem(title).
		Subtitle(description).
		Autocomplete(title).
		Arg(alfred.OpenArg(url)).
		Build()
}

// RefreshItem is shown when the workflow is invoked without a subcommand.
func RefreshItem() alfred.Item {
	return alfred.NewItem("refresh").
		Subtitle("Refresh Cache, be patient you will be notified once complete").
		Arg("settings refresh").
		Build()
}
