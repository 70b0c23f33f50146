package db

import (
	"strings"

	"github.com/teranos/lcapgen/errors"
)

// ErrDatabaseClosed is returned when the journal is used after Close,
// typically when watch mode shuts down mid-run.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is closed.
// database/sql reports this with its own unexported error, hence the message match.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
