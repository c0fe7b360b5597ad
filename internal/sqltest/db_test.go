//go:build integration_test

package sqltest

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// Statements in the dialect shared by PostgreSQL and SQLite, the same subset
// the stores are written in.
const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS balances (
			owner TEXT PRIMARY KEY,
			value BIGINT NOT NULL
		);`
	upsertSQL = `
		INSERT INTO balances (owner, value) VALUES ($1, $2)
		ON CONFLICT (owner) DO UPDATE SET value = excluded.value;`
	selectSQL = `SELECT value FROM balances WHERE owner = $1`
	countSQL  = `SELECT COUNT(*) FROM balances`
)

// TestDatabaseIsolation checks that every test gets an empty database of
// its own.
func TestDatabaseIsolation(t *testing.T) {
	RunDatabaseTest(t, func(t *testing.T, dbFactory DBFactory) {
		for i := range 3 {
			t.Run(fmt.Sprintf("db%d", i), func(t *testing.T) {
				t.Parallel()

				db := dbFactory(t)
				_, err := db.Exec(createTableSQL)
				require.NoError(t, err)

				var value int64
				err = db.QueryRow(selectSQL, "alice").Scan(&value)
				require.ErrorIs(t, err, sql.ErrNoRows)

				_, err = db.Exec(upsertSQL, "alice", i)
				require.NoError(t, err)

				err = db.QueryRow(selectSQL, "alice").Scan(&value)
				require.NoError(t, err)
				require.Equal(t, int64(i), value)
			})
		}
	})
}

// TestDatabaseUpsert checks the upsert form used by the stores.
func TestDatabaseUpsert(t *testing.T) {
	RunDatabaseTest(t, func(t *testing.T, dbFactory DBFactory) {
		db := dbFactory(t)
		_, err := db.Exec(createTableSQL)
		require.NoError(t, err)

		for _, v := range []int64{100, 200, 300} {
			_, err := db.Exec(upsertSQL, "bob", v)
			require.NoError(t, err)
		}

		var value int64
		err = db.QueryRow(selectSQL, "bob").Scan(&value)
		require.NoError(t, err)
		require.Equal(t, int64(300), value)

		var count int
		require.NoError(t, db.QueryRow(countSQL).Scan(&count))
		require.Equal(t, 1, count)
	})
}
