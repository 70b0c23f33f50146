package db

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(dbPath, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer db.Close()

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)

	var busyTimeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	assert.Equal(t, SQLiteBusyTimeoutMS, busyTimeout)
}

func TestOpenWithMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"schema_migrations", "runs", "run_components"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n))
		assert.Equal(t, 1, n, table)
	}

	var versions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 2, versions)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, nil))
	require.NoError(t, Migrate(db, nil), "running migrations multiple times should be safe")
}

func TestMigrate_ClosedDatabase(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	db.Close()

	err = Migrate(db, nil)
	require.Error(t, err)
	assert.True(t, IsDatabaseClosed(err))
	assert.Contains(t, fmt.Sprintf("%+v", err), "migrate.go", "error should carry a stack trace")
}

func TestIsDatabaseClosed(t *testing.T) {
	assert.False(t, IsDatabaseClosed(nil))
	assert.True(t, IsDatabaseClosed(ErrDatabaseClosed))
	assert.True(t, IsDatabaseClosed(fmt.Errorf("query: %w", fmt.Errorf("sql: database is closed"))))
	assert.False(t, IsDatabaseClosed(fmt.Errorf("disk I/O error")))
}
