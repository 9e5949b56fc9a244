package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/pkordes/trip-planner/internal/domain"
)

// OpenSQLite opens (or creates) the SQLite database at path and applies all
// pending migrations. Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}

	// Every connection to :memory: gets its own database, and the document
	// store never needs concurrent writers.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("repo.OpenSQLite: enable WAL: %w", err)
		}
	}

	if err := Migrate(ctx, goose.DialectSQLite3, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return db, nil
}

// sqliteStateRepo is the SQLite implementation of StateRepo.
type sqliteStateRepo struct {
	db *sqlx.DB
}

// NewSQLiteStateRepo constructs a StateRepo backed by a database returned by
// OpenSQLite.
func NewSQLiteStateRepo(db *sqlx.DB) StateRepo {
	return &sqliteStateRepo{db: db}
}

func (r *sqliteStateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := r.db.GetContext(ctx, &body, "SELECT body FROM documents WHERE doc_key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.SQLiteStateRepo.Load: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.SQLiteStateRepo.Load: %w", err)
	}
	return []byte(body), nil
}

func (r *sqliteStateRepo) Save(ctx context.Context, key string, body []byte) error {
	const q = `
		INSERT INTO documents (doc_key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (doc_key) DO UPDATE
		SET body       = excluded.body,
		    updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, q, key, string(body), time.Now().UTC()); err != nil {
		return fmt.Errorf("repo.SQLiteStateRepo.Save: %w", err)
	}
	return nil
}

func (r *sqliteStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE doc_key = ?", key); err != nil {
		return fmt.Errorf("repo.SQLiteStateRepo.Delete: %w", err)
	}
	return nil
}
