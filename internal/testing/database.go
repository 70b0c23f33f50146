// Package testing holds helpers shared by package tests.
package testing

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// CreateTestDB creates an in-memory SQLite test database.
// Automatically registers cleanup via t.Cleanup().
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return open(t, ":memory:")
}

// CreateFileDB creates a SQLite database file under t.TempDir() and returns
// the open handle with its path, for code that reopens the journal by path.
func CreateFileDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	return open(t, path), path
}

func open(t *testing.T, dsn string) *sql.DB {
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err, "open test database")

	// a single connection keeps :memory: databases shared across queries
	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err, "enable foreign keys")

	t.Cleanup(func() {
		db.Close()
	})
	return db
}
