package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "db.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		want  string
	}{
		{"single word", []string{"deploy"}, "%deploy%"},
		{"split on separators", []string{"my-repo_name here"}, "%my%repo%name%here%"},
		{"multiple terms", []string{"org", "pipe-line"}, "%org%pipe%line%"},
		{"repeated separators", []string{"a--b  c"}, "%a%b%c%"},
		{"empty", nil, "%%"},
		{"only separators", []string{"-_ "}, "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LikePattern(tt.terms...)
			if got != tt.want {
				t.Errorf("LikePattern(%q) = %q, want %q", tt.terms, got, tt.want)
			}
		})
	}
}

func TestOpen_Pragmas(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestWithTx(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "CREATE TABLE IF NOT EXISTS t (v TEXT)"))

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO t (v) VALUES ('kept')")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM t"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, Optimize(ctx, db))
}

func TestLikePattern_MatchesInSQLite(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "CREATE TABLE IF NOT EXISTS t (v TEXT)"))
	for _, v := range []string{"acme/deploy-service", "acme/docs", "other/service-deploy"} {
		_, err := db.ExecContext(ctx, "INSERT INTO t (v) VALUES (?)", v)
		require.NoError(t, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT v FROM t WHERE v LIKE ? ORDER BY v", LikePattern("deploy serv"))
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"acme/deploy-service"}, got)
}
