package buildkite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pipelines (
		unique_name TEXT NOT NULL PRIMARY KEY,
		name        TEXT NOT NULL,
		url         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pipelines_name ON pipelines (name)`,
}

// Store persists pipelines in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return sqlitedb.Migrate(ctx, s.db, migrations...)
}

// ReplaceAll swaps the cached pipelines for pipelines in one transaction.
// On error the previous rows are left untouched.
func (s *Store) ReplaceAll(ctx context.Context, pipelines []Pipeline) error {
	return sqlitedb.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM pipelines"); err != nil {
			return fmt.Errorf("delete pipelines: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO pipelines (unique_name, name, url) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare pipeline insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range pipelines {
			if _, err := stmt.ExecContext(ctx, p.UniqueName, p.Name, p.URL); err != nil {
				return fmt.Errorf("insert pipeline %s: %w", p.UniqueName, err)
			}
		}
		return nil
	})
}

// Find returns up to limit pipelines whose name matches every word of
// terms, ordered by name.
func (s *Store) Find(ctx context.Context, terms []string, limit int) ([]Pipeline, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT unique_name, name, url FROM pipelines WHERE name LIKE ? ORDER BY name ASC LIMIT ?",
		sqlitedb.LikePattern(terms...), limit)
	if err != nil {
		return nil, fmt.Errorf("query pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []Pipeline
	for rows.Next() {
		var p Pipeline
		if err := rows.Scan(&p.UniqueName, &p.Name, &p.URL); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pipelines").Scan(&n); err != nil {
		return 0, fmt.Errorf("count pipelines: %w", err)
	}
	return n, nil
}
