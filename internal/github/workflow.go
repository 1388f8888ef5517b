package github

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/kyleking/alfred-workflows/internal/alfred"
	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

const (
	Name         = "github"
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
// client may be nil for query-only use.
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

// Refresh pages through every repository and replaces the cache, returning
// the number stored.
func (w *Workflow) Refresh(ctx context.Context) (int, error) {
	if w.client == nil {
		return 0, ErrNoToken
	}

	var repos []Repository
	it := w.client.Repositories()
	for !it.Done() {
		page, err := it.Next(ctx)
		if err != nil {
			return 0, err
		}
		repos = append(repos, page...)
	}

	if err := w.store.ReplaceAll(ctx, repos); err != nil {
		return 0, err
	}
	if err := sqlitedb.Optimize(ctx, w.db); err != nil {
		return 0, err
	}
	w.logger.Info("refreshed repositories", zap.Int("repositories", len(repos)))
	return len(repos), nil
}

func (w *Workflow) Query(ctx context.Context, name string) ([]alfred.Item, error) {
	return w.Search(ctx, name, w.limit)
}

func (w *Workflow) Search(ctx context.Context, name string, limit int) ([]alfred.Item, error) {
	repos, err := w.store.Find(ctx, name, limit)
	if err != nil {
		return nil, err
	}
	items := make([]alfred.Item, 0, len(repos))
	for _, r := range repos {
		items = append(items, alfred.NewItem(r.NameWithOwner).
			Subtitle(r.Name).
			Autocomplete(r.Name).
			Arg(alfred.OpenArg(r.URL)).
			Build())
	}
	return items, nil
}

// RefreshItem is shown when the workflow is invoked without arguments.
func RefreshItem() alfred.Item {
	return alfred.NewItem("refresh").
		Subtitle("Refresh Cache, be patient you will be notified once complete").
		Arg(">settings refresh").
		Build()
}
