// Package repo contains all database access logic for the itinerary planner.
// The itinerary is persisted as a single JSON document per key; Postgres and
// SQLite implementations share the documents table created by migrations/.
// No business logic lives here, only SQL.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StateRepo stores serialized itinerary documents by key.
// The service layer depends on this interface so it can be unit-tested with a mock.
type StateRepo interface {
	// Load returns the stored document body.
	// Returns domain.ErrNotFound if nothing has been saved under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes body under key, replacing any previous document.
	Save(ctx context.Context, key string, body []byte) error

	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// pgStateRepo is the Postgres implementation of StateRepo.
type pgStateRepo struct {
	db db
}

// NewStateRepo constructs a Postgres-backed StateRepo.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStateRepo(db db) StateRepo {
	return &pgStateRepo{db: db}
}

func (r *pgStateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT body FROM documents WHERE doc_key = @key`

	var body string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.StateRepo.Load: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.StateRepo.Load: %w", err)
	}
	return []byte(body), nil
}

func (r *pgStateRepo) Save(ctx context.Context, key string, body []byte) error {
	const q = `
		INSERT INTO documents (doc_key, body, updated_at)
		VALUES (@key, @body, now())
		ON CONFLICT (doc_key) DO UPDATE
		SET body       = excluded.body,
		    updated_at = excluded.updated_at`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "body": string(body)}); err != nil {
		return fmt.Errorf("repo.StateRepo.Save: %w", err)
	}
	return nil
}

func (r *pgStateRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM documents WHERE doc_key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return fmt.Errorf("repo.StateRepo.Delete: %w", err)
	}
	return nil
}
