// Package postgres writes the migrated rows to the target schema.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Querier is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside the per-step transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Connect opens and pings the target database.
func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open target database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	return db, nil
}

// HasData reports whether the target schema already holds migrated rows.
// A non-empty target aborts the run unless resuming from a restore file.
func HasData(ctx context.Context, db *sql.DB) (bool, error) {
	for _, table := range []string{"users", "categories", "events"} {
		var exists bool
		query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)
		if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check %s: %w", table, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
