//go:build integration_test

package sqltest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewSQLiteDB creates a SQLite database file in a temporary directory of the
// test.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	name := "shieldwallet_" + deterministicTestID(t) + ".sqlite"
	dbPath := filepath.Join(t.TempDir(), name)

	dsn := "file:" + dbPath + "?mode=rwc"

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err, "failed to open SQLite database")

	// One connection, so concurrent writers queue instead of failing with
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		require.NoError(t, err, "failed to ping SQLite database")
	}

	t.Cleanup(func() {
		assert.NoError(t, db.Close(), "failed to close SQLite database")
	})

	return db
}
