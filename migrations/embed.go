// Package migrations embeds the SQL migration files so they can be applied
// through the goose programmatic API by the server, the CLI and tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// The files use only SQL understood by both Postgres and SQLite.
//
//go:embed *.sql
var FS embed.FS
