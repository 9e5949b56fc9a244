package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/testutil"
)

var tables = []string{"documents"}

// TestMigrations verifies the full migration round-trip against a real
// Postgres database: apply everything, check the tables exist, roll back to
// version 0, check they are gone.
//
// Skipped when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may already have migrated this shared
	// database. Start from version 0 so the test is order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	for _, table := range tables {
		assertTablePresence(t, db, pgTableExists, table, true)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range tables {
		assertTablePresence(t, db, pgTableExists, table, false)
	}

	// Leave the schema in place for any package that runs after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose re-up")
}

// TestMigrations_SQLite runs the same round-trip on an in-memory SQLite
// database, which is what the CLI and most store tests use.
func TestMigrations_SQLite(t *testing.T) {
	sdb := testutil.NewSQLite(t)
	db := sdb.DB

	for _, table := range tables {
		assertTablePresence(t, db, sqliteTableExists, table, true)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	_, err = provider.DownTo(context.Background(), 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range tables {
		assertTablePresence(t, db, sqliteTableExists, table, false)
	}
}

const (
	pgTableExists = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	sqliteTableExists = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)`
)

func assertTablePresence(t *testing.T, db *sql.DB, query, table string, shouldExist bool) {
	t.Helper()

	var exists bool
	err := db.QueryRowContext(context.Background(), query, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
