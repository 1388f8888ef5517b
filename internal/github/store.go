package github

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS repositories (
		name_with_owner TEXT    NOT NULL PRIMARY KEY,
		name            TEXT    NOT NULL,
		url             TEXT    NOT NULL,
		pushed_at       INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_repositories_name_pushed_at ON repositories (name, pushed_at)`,
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return sqlitedb.Migrate(ctx, s.db, migrations...)
}

// ReplaceAll swaps the cached repositories for repos in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, repos []Repository) error {
	return sqlitedb.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM repositories"); err != nil {
			return fmt.Errorf("failed to delete existing repositories: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, "INSERT INTO repositories (name_with_owner, name, url, pushed_at) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare repository insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range repos {
			if _, err := stmt.ExecContext(ctx, r.NameWithOwner, r.Name, r.URL, r.PushedAt.Unix()); err != nil {
				return fmt.Errorf("failed to insert repository record %s: %w", r.NameWithOwner, err)
			}
		}
		return nil
	})
}

// Find matches repository names (not owners), most recently pushed first.
func (s *Store) Find(ctx context.Context, name string, limit int) ([]Repository, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name_with_owner, name, url, pushed_at FROM repositories WHERE name LIKE ? ORDER BY pushed_at DESC LIMIT ?",
		sqlitedb.LikePattern(name), limit)
	if err != nil {
		return nil, fmt.Errorf("query repositories: %w", err)
	}
	defer rows.Close()

	var repos []Repository
	for rows.Next() {
		var r Repository
		var pushedAt int64
		if err := rows.Scan(&r.NameWithOwner, &r.Name, &r.URL, &pushedAt); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		r.PushedAt = time.Unix(pushedAt, 0).UTC()
		repos = append(repos, r)
	}
	return repos, rows.Err()
}
