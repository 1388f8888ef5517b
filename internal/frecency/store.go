package frecency

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS open_history (
		key          TEXT    NOT NULL PRIMARY KEY,
		count        INTEGER NOT NULL,
		last_used_at INTEGER NOT NULL
	)`,
}

// Store keeps open history in the workflow's cache database. A refresh
// replaces the cached rows but leaves history alone.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return sqlitedb.Migrate(ctx, s.db, migrations...)
}

// Record counts one use of key at the given time.
func (s *Store) Record(ctx context.Context, key string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO open_history (key, count, last_used_at) VALUES (?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET count = count + 1, last_used_at = excluded.last_used_at`,
		key, at.Unix())
	if err != nil {
		return fmt.Errorf("record history for %s: %w", key, err)
	}
	return nil
}

// Entries returns the full history, most frecent first as of now.
func (s *Store) Entries(ctx context.Context, now time.Time) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, count, last_used_at FROM open_history ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var lastUsed int64
		if err := rows.Scan(&e.Key, &e.Count, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.LastUsedAt = time.Unix(lastUsed, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortByFrecency(entries, now)
	return entries, nil
}

// Scores returns the score of every recorded key as of now.
func (s *Store) Scores(ctx context.Context, now time.Time) (map[string]float64, error) {
	entries, err := s.Entries(ctx, now)
	if err != nil {
		return nil, err
	}
	return Scores(entries, now), nil
}
