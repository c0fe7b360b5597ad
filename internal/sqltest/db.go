//go:build integration_test

// Package sqltest provides isolated SQL databases for the integration tests
// of the SQL backed stores.
package sqltest

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"testing"

	// Register the pgx driver under name "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"

	// Register SQLite driver under name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/stretchr/testify/require"
)

// DBFactory creates a fresh database for one test. The database is removed
// when the test ends.
type DBFactory func(t testing.TB) *sql.DB

// DBTestFunc is a test run against every supported database engine.
type DBTestFunc func(t *testing.T, dbFactory DBFactory)

// engines lists the database engines the stores support, along with the
// factory of their test databases.
var engines = []struct {
	name      string
	dbFactory DBFactory
}{
	{
		name:      "Postgres",
		dbFactory: NewPostgresDB,
	},
	{
		name:      "SQLite",
		dbFactory: NewSQLiteDB,
	},
}

// RunDatabaseTest runs the test function against PostgreSQL and SQLite. Every
// database the factory creates is isolated, so the engines run in parallel.
func RunDatabaseTest(t *testing.T, testFunc DBTestFunc) {
	t.Helper()

	for _, engine := range engines {
		t.Run(engine.name, func(t *testing.T) {
			t.Parallel()
			testFunc(t, engine.dbFactory)
		})
	}
}

// deterministicTestID derives a short database name suffix from the test
// name, keeping names stable between runs for test caching while staying
// below the identifier length limits.
func deterministicTestID(t testing.TB) string {
	t.Helper()

	h := fnv.New32a()
	_, err := h.Write([]byte(t.Name()))
	require.NoError(t, err)

	hashed := fmt.Sprintf("%08x", h.Sum32())
	t.Logf("db name hash: %s", hashed)

	return hashed
}
