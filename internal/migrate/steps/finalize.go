package steps

import (
	"context"
	"database/sql"

	"confmigrate/internal/domain"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// FinalizeStep writes the post-migration defaults and fixes the id
// sequences of every table that received explicit ids.
type FinalizeStep struct {
	env *Env
	log *logger.StepLogger
}

func NewFinalizeStep(env *Env) *FinalizeStep {
	return &FinalizeStep{env: env, log: logger.Step("finalize")}
}

func (s *FinalizeStep) Name() string { return "finalize" }

var sequencedTables = []string{
	"users", "identities", "groups", "categories", "events", "event_persons",
	"contributions", "reference_types", "event_references", "event_series",
	"attachment_folders", "attachments", "locations", "rooms", "reservations",
	"news", "ip_network_groups",
}

func (s *FinalizeStep) Run(ctx context.Context) error {
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		settings := postgres.NewSettingsRepository(tx)
		upcoming := domain.Setting{Module: "events", Name: "upcoming_entries", Value: []any{}}
		if err := settings.Set(ctx, &upcoming); err != nil {
			return err
		}

		for _, table := range sequencedTables {
			if err := postgres.FixSequence(ctx, tx, table); err != nil {
				return err
			}
		}

		ns := s.env.NS
		s.log.Infof("Migration summary: %d users, %d categories, %d events, %d rooms",
			len(ns.UserByAvatar), len(ns.CategoryByLegacyID), len(ns.EventByLegacyID), len(ns.RoomByLegacyID))
		return nil
	})
}
