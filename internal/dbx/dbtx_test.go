package dbx

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/userbook/internal/common"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT UNIQUE);`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	return n
}

func TestWithConn_RunsAndReleases(t *testing.T) {
	db := setupDB(t)
	db.SetMaxOpenConns(1)

	for i := 0; i < 3; i++ {
		err := WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
			_, err := conn.ExecContext(ctx, `INSERT INTO t(v) VALUES (?)`, i)
			return err
		})
		require.NoError(t, err)
	}

	// with a single-connection pool this would block if a conn leaked
	require.Equal(t, 3, countRows(t, db))
	require.Equal(t, 0, db.Stats().InUse)
}

func TestWithConn_ReleasesOnPanic(t *testing.T) {
	db := setupDB(t)
	db.SetMaxOpenConns(1)

	func() {
		defer func() {
			require.NotNil(t, recover(), "expected panic to propagate")
		}()
		_ = WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
			panic("kaput")
		})
	}()

	require.Equal(t, 0, db.Stats().InUse)
	require.Equal(t, 0, countRows(t, db))
}

func TestWithConn_ClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithConn(context.Background(), db, func(ctx context.Context, conn DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
	require.False(t, called)
}

func TestUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)

	_, err := db.Exec(`INSERT INTO t(v) VALUES ('dup')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t(v) VALUES ('dup')`)
	require.Error(t, err)

	name, ok := UniqueViolation(err)
	require.True(t, ok)
	require.Equal(t, "v", name)
}
