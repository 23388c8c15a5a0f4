package steps

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"confmigrate/internal/domain"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// SeriesStep groups migrated events that shared a legacy series link.
// Series with fewer than two surviving events are dropped.
type SeriesStep struct {
	env *Env
	log *logger.StepLogger
}

func NewSeriesStep(env *Env) *SeriesStep {
	return &SeriesStep{env: env, log: logger.Step("series")}
}

func (s *SeriesStep) Name() string { return "series" }

func (s *SeriesStep) Run(ctx context.Context) error {
	cur, err := s.env.Store.Collection(source.CollEvents).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	bySeries := map[string][]int{}
	for cur.Next(ctx) {
		var conf source.Conference
		if err := cur.Decode(&conf); err != nil {
			continue
		}
		if conf.SeriesID == "" {
			continue
		}
		eventID, ok := s.env.NS.EventByLegacyID[conf.ID]
		if !ok {
			continue
		}
		bySeries[conf.SeriesID] = append(bySeries[conf.SeriesID], eventID)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	// deterministic order for resumable runs
	keys := make([]string, 0, len(bySeries))
	for key := range bySeries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		repo := postgres.NewEventRepository(tx)
		created := 0
		for _, key := range keys {
			eventIDs := bySeries[key]
			if len(eventIDs) < 2 {
				s.log.Debugf("Series %s has a single surviving event; dropping", key)
				continue
			}
			series := domain.EventSeries{}
			if err := repo.CreateSeries(ctx, &series); err != nil {
				return fmt.Errorf("series %s: %w", key, err)
			}
			for _, eventID := range eventIDs {
				if err := repo.SetSeries(ctx, eventID, series.ID); err != nil {
					return fmt.Errorf("series %s: %w", key, err)
				}
			}
			created++
		}
		s.log.Infof("Created %d event series", created)
		return nil
	})
}
