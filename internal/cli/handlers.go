package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"confmigrate/internal/config"
	"confmigrate/internal/migrate"
	"confmigrate/internal/migrate/steps"
	"confmigrate/internal/source"
	"confmigrate/internal/storage"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

func runMigration(ctx context.Context, opts *config.Options) error {
	opts.FromEnv()
	if err := opts.Validate(); err != nil {
		return err
	}
	logger.Setup(os.Stderr, opts.Verbose, opts.Debug)

	db, err := postgres.Connect(ctx, opts.TargetURI)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db); err != nil {
		return err
	}

	var state *migrate.State
	if opts.RestorePath != "" {
		state, err = migrate.LoadState(opts.RestorePath)
		if err != nil {
			return err
		}
		logger.Infof("Resuming migration, %d steps already done", len(state.CompletedSteps))
	} else {
		populated, err := postgres.HasData(ctx, db)
		if err != nil {
			return err
		}
		if populated {
			return errors.New("target database already contains data; pass --restore-file to resume or start with an empty database")
		}
		state = migrate.NewState()
	}

	store, err := source.Open(ctx, opts.SourceURI)
	if err != nil {
		return fmt.Errorf("failed to open legacy store: %w", err)
	}
	defer store.Close(ctx)

	var rbStore source.Store
	if opts.RBSourceURI != "" {
		rbStore, err = source.Open(ctx, opts.RBSourceURI)
		if err != nil {
			return fmt.Errorf("failed to open room-booking store: %w", err)
		}
		defer rbStore.Close(ctx)
	}

	env := &steps.Env{
		DB:      db,
		Store:   store,
		RBStore: rbStore,
		NS:      state.Namespace,
		Opts:    opts,
		Files: &storage.Resolver{
			ArchiveDirs:    opts.ArchiveDirs,
			Backend:        opts.StorageBackend,
			SymlinkBackend: opts.SymlinkBackend,
			SymlinkTarget:  opts.SymlinkTarget,
			SkipChecks:     opts.AvoidStorageCheck,
		},
	}

	start := time.Now()
	if err := migrate.NewRunner(steps.All(env), state, opts.SaveRestorePath).Run(ctx); err != nil {
		return err
	}
	logger.Infof("Migration finished successfully in %s", time.Since(start).Round(time.Second))
	return nil
}
