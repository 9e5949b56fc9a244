package repo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/migrations"
)

// Migrate applies every pending migration in migrations.FS. The same SQL
// files serve both Postgres and SQLite.
func Migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB) error {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("repo.Migrate: up: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied", "source", r.Source.Path, "duration", r.Duration)
	}
	return nil
}
