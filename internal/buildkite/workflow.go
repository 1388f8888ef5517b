package buildkite

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

// Name is the workflow's data directory name.
const Name = "buildkite"

// DefaultLimit caps query results.
const DefaultLimit = 10

// Workflow ties the API client to the pipeline cache.
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

// Refresh refetches every pipeline of every organization and replaces the
// cache. It returns the number of pipelines stored.
func (w *Workflow) Refresh(ctx context.Context) (int, error) {
	orgs, err := All(ctx, w.client.Organizations())
	if err != nil {
		return 0, err
	}

	var pipelines []Pipeline
	for _, org := range orgs {
		it := w.client.Pipelines(org.Slug)
		for !it.Done() {
			page, err := it.Next(ctx)
			if err != nil {
				return 0, err
			}
			for _, p := range page {
				pipelines = append(pipelines, NewPipeline(org, p))
			}
		}
		w.logger.Debug("fetched organization", zap.String("org", org.Slug), zap.Int("total", len(pipelines)))
	}

	if err := w.store.ReplaceAll(ctx, pipelines); err != nil {
		return 0, err
	}
	if err := sqlitedb.Optimize(ctx, w.db); err != nil {
		return 0, err
	}
	w.logger.Info("refreshed pipelines", zap.Int("organizations", len(orgs)), zap.Int("pipelines", len(pipelines)))
	return len(pipelines), nil
}

// Query searches the cache with the workflow's result limit.
func (w *Workflow) Query(ctx context.Context, terms []string) ([]alfred.Item, error) {
	return w.Search(ctx, strings.Join(terms, " "), w.limit)
}

// Search returns up to limit matching pipelines as items.
func (w *Workflow) Search(ctx context.Context, query string, limit int) ([]alfred.Item, error) {
	pipelines, err := w.store.Find(ctx, []string{query}, limit)
	if err != nil {
		return nil, err
	}

	items := make([]alfred.Item, 0, len(pipelines))
	for _, p := range pipelines {
		items = append(items, alfred.NewItem(p.UniqueName).
			Subtitle(p.Name).
			Autocomplete(p.Name).
			Arg(alfred.OpenArg(p.URL)).
			Build())
	}
	return items, nil
}

// RefreshItem is shown when the workflow is invoked without arguments.
func RefreshItem() alfred.Item {
	return alfred.NewItem("refresh").
		Subtitle("Refresh Cache, be patient you will be notified once complete").
		Arg("refresh").
		Build()
}
