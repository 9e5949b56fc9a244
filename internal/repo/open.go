package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/internal/config"
)

// Open connects to the backend selected by cfg.StorageDriver, applies pending
// migrations and returns the document repository with a function that
// releases its connections.
func Open(ctx context.Context, cfg config.Config) (StateRepo, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		return NewSQLiteStateRepo(db), func() { db.Close() }, nil

	case config.DriverPostgres:
		// New does not open connections; Ping makes sure the database is
		// reachable before the caller starts accepting work.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("repo.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: ping: %w", err)
		}

		// goose drives database/sql; borrow a *sql.DB view of the pool.
		sqlDB := stdlib.OpenDBFromPool(pool)
		err = Migrate(ctx, goose.DialectPostgres, sqlDB)
		sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repo.Open: %w", err)
		}
		return NewStateRepo(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("repo.Open: unknown storage driver %q", cfg.StorageDriver)
	}
}
