// Package steps implements the ordered top-level migration steps.
package steps

import (
	"context"
	"database/sql"

	"confmigrate/internal/config"
	"confmigrate/internal/migrate"
	"confmigrate/internal/source"
	"confmigrate/internal/storage"
)

// Env bundles everything a step needs: the target database, the legacy
// stores, the shared namespace and the file resolver.
type Env struct {
	DB      *sql.DB
	Store   source.Store
	RBStore source.Store // room-booking store, may be nil
	NS      *migrate.Namespace
	Opts    *config.Options
	Files   *storage.Resolver
}

// All returns the migration steps in their required order.
func All(env *Env) []migrate.Step {
	return []migrate.Step{
		NewSettingsStep(env),
		NewUsersStep(env),
		NewRoomsStep(env),
		NewCategoriesStep(env),
		NewEventsStep(env),
		NewBookingsStep(env),
		NewSeriesStep(env),
		NewFinalizeStep(env),
	}
}

// progressInterval is the record count between progress reports in the
// bulk steps.
func (e *Env) progressInterval() int {
	if e.Opts.BatchSize > 0 {
		return e.Opts.BatchSize
	}
	return 1000
}

// inTx runs fn inside a transaction, committing on success.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
