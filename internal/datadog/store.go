package datadog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kyleking/alfred-workflows/internal/sqlitedb"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS timeboards (
		id          TEXT    NOT NULL PRIMARY KEY,
		title       TEXT    NOT NULL,
		description TEXT    NOT NULL,
		url         TEXT    NOT NULL,
		modified    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_timeboards_title_modified ON timeboards (title, modified)`,
	`CREATE TABLE IF NOT EXISTS screenboards (
		id          INTEGER NOT NULL PRIMARY KEY,
		title       TEXT    NOT NULL,
		description TEXT    NOT NULL,
		url         TEXT    NOT NULL,
		modified    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_screenboards_title_modified ON screenboards (title, modified)`,
	`CREATE TABLE IF NOT EXISTS monitors (
		id       INTEGER NOT NULL PRIMARY KEY,
		name     TEXT    NOT NULL,
		url      TEXT    NOT NULL,
		modified INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_monitors_name_modified ON monitors (name, modified)`,
	`CREATE TABLE IF NOT EXISTS monitor_tags (
		id   INTEGER NOT NULL,
		name TEXT    NOT NULL,
		CONSTRAINT fk_monitors FOREIGN KEY (id) REFERENCES monitors (id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_monitor_tags_id ON monitor_tags (id)`,
	`CREATE INDEX IF NOT EXISTS idx_monitor_tags_name ON monitor_tags (name)`,
}

// Store persists the Datadog cache. Modification times are stored as unix
// seconds.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	return sqlitedb.Migrate(ctx, s.db, migrations...)
}

// ReplaceAll swaps every table's contents for snap in a single transaction.
// Monitor tags go with their monitors through the cascading foreign key.
func (s *Store) ReplaceAll(ctx context.Context, snap Snapshot) error {
	return sqlitedb.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, table := range []string{"timeboards", "screenboards", "monitors"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}
		if err := insertTimeBoards(ctx, tx, snap.TimeBoards); err != nil {
			return err
		}
		if err := insertScreenBoards(ctx, tx, snap.ScreenBoards); err != nil {
			return err
		}
		return insertMonitors(ctx, tx, snap.Monitors)
	})
}

func insertTimeBoards(ctx context.Context, tx *sql.Tx, boards []TimeBoard) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO timeboards (id, title, description, url, modified) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare timeboard insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range boards {
		if _, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Description, b.URL, b.Modified.Unix()); err != nil {
			return fmt.Errorf("insert timeboard %s: %w", b.ID, err)
		}
	}
	return nil
}

func insertScreenBoards(ctx context.Context, tx *sql.Tx, boards []ScreenBoard) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO screenboards (id, title, description, url, modified) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare screenboard insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range boards {
		if _, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Description, b.URL, b.Modified.Unix()); err != nil {
			return fmt.Errorf("insert screenboard %d: %w", b.ID, err)
		}
	}
	return nil
}

func insertMonitors(ctx context.Context, tx *sql.Tx, monitors []Monitor) error {
	monitorStmt, err := tx.PrepareContext(ctx, "INSERT INTO monitors (id, name, url, modified) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare monitor insert: %w", err)
	}
	defer monitorStmt.Close()

	tagStmt, err := tx.PrepareContext(ctx, "INSERT INTO monitor_tags (id, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare monitor tag insert: %w", err)
	}
	defer tagStmt.Close()

	for _, m := range monitors {
		if _, err := monitorStmt.ExecContext(ctx, m.ID, m.Name, m.URL, m.Modified.Unix()); err != nil {
			return fmt.Errorf("insert monitor %d: %w", m.ID, err)
		}
		for _, tag := range m.Tags {
			if _, err := tagStmt.ExecContext(ctx, m.ID, tag); err != nil {
				return fmt.Errorf("insert tag %q for monitor %d: %w", tag, m.ID, err)
			}
		}
	}
	return nil
}

func (s *Store) FindTimeBoards(ctx context.Context, title string, limit int) ([]TimeBoard, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, url, modified FROM timeboards WHERE title LIKE ? ORDER BY modified DESC LIMIT ?",
		sqlitedb.LikePattern(title), limit)
	if err != nil {
		return nil, fmt.Errorf("query timeboards: %w", err)
	}
	defer rows.Close()

	var boards []TimeBoard
	for rows.Next() {
		var b TimeBoard
		var modified int64
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.URL, &modified); err != nil {
			return nil, fmt.Errorf("scan timeboard: %w", err)
		}
		b.Modified = time.Unix(modified, 0).UTC()
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Store) FindScreenBoards(ctx context.Context, title string, limit int) ([]ScreenBoard, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, url, modified FROM screenboards WHERE title LIKE ? ORDER BY modified DESC LIMIT ?",
		sqlitedb.LikePattern(title), limit)
	if err != nil {
		return nil, fmt.Errorf("query screenboards: %w", err)
	}
	defer rows.Close()

	var boards []ScreenBoard
	for rows.Next() {
		var b ScreenBoard
		var modified int64
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.URL, &modified); err != nil {
			return nil, fmt.Errorf("scan screenboard: %w", err)
		}
		b.Modified = time.Unix(modified, 0).UTC()
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// FindDashboards searches timeboards and screenboards together, newest
// first.
func (s *Store) FindDashboards(ctx context.Context, title string, limit int) ([]Dashboard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, description, url, modified FROM timeboards WHERE title LIKE ?1
		UNION ALL
		SELECT title, description, url, modified FROM screenboards WHERE title LIKE ?1
		ORDER BY modified DESC
		LIMIT ?2`,
		sqlitedb.LikePattern(title), limit)
	if err != nil {
		return nil, fmt.Errorf("query dashboards: %w", err)
	}
	defer rows.Close()

	var dashboards []Dashboard
	for rows.Next() {
		var d Dashboard
		var modified int64
		if err := rows.Scan(&d.Title, &d.Description, &d.URL, &modified); err != nil {
			return nil, fmt.Errorf("scan dashboard: %w", err)
		}
		d.Modified = time.Unix(modified, 0).UTC()
		dashboards = append(dashboards, d)
	}
	return dashboards, rows.Err()
}

// FindMonitors matches monitor names and, when tag is non-empty, requires
// at least one tag to match it as well. Tags are not loaded.
func (s *Store) FindMonitors(ctx context.Context, name, tag string, limit int) ([]Monitor, error) {
	query := "SELECT m.id, m.name, m.url, m.modified FROM monitors m WHERE m.name LIKE ? "
	args := []any{sqlitedb.LikePattern(name)}
	if tag != "" {
		query = `SELECT DISTINCT m.id, m.name, m.url, m.modified FROM monitors m
			JOIN monitor_tags t ON t.id = m.id
			WHERE m.name LIKE ? AND t.name LIKE ? `
		args = append(args, sqlitedb.LikePattern(tag))
	}
	query += "ORDER BY m.modified DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query monitors: %w", err)
	}
	defer rows.Close()

	var monitors []Monitor
	for rows.Next() {
		var m Monitor
		var modified int64
		if err := rows.Scan(&m.ID, &m.Name, &m.URL, &modified); err != nil {
			return nil, fmt.Errorf("scan monitor: %w", err)
		}
		m.Modified = time.Unix(modified, 0).UTC()
		monitors = append(monitors, m)
	}
	return monitors, rows.Err()
}

// Tags returns the tags of one monitor in insertion order.
func (s *Store) Tags(ctx context.Context, monitorID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM monitor_tags WHERE id = ? ORDER BY rowid", monitorID)
	if err != nil {
		return nil, fmt.Errorf("query monitor tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan monitor tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
