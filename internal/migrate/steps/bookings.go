package steps

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// BookingsStep migrates room reservations from the room-booking store.
type BookingsStep struct {
	env *Env
	log *logger.StepLogger
}

func NewBookingsStep(env *Env) *BookingsStep {
	return &BookingsStep{env: env, log: logger.Step("bookings")}
}

func (s *BookingsStep) Name() string { return "bookings" }

func (s *BookingsStep) Run(ctx context.Context) error {
	if s.env.RBStore == nil {
		s.log.Infof("No room-booking store configured; skipping")
		return nil
	}
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		repo := postgres.NewRoomRepository(tx)

		cur, err := s.env.RBStore.Collection(source.CollReservations).Iter(ctx)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		count := 0
		for cur.Next(ctx) {
			var legacy source.Reservation
			if err := cur.Decode(&legacy); err != nil {
				s.log.Warnf("Skipping undecodable reservation record: %v", err)
				continue
			}

			roomID, ok := s.env.NS.RoomByLegacyID[legacy.RoomID]
			if !ok {
				s.log.Warnf("Reservation %s references unknown room %s; skipping", legacy.ID, legacy.RoomID)
				continue
			}
			start, err := parseLegacyDT(legacy.StartDT)
			if err != nil {
				s.log.Warnf("Reservation %s has bad start time %q; skipping", legacy.ID, legacy.StartDT)
				continue
			}
			end, err := parseLegacyDT(legacy.EndDT)
			if err != nil {
				s.log.Warnf("Reservation %s has bad end time %q; skipping", legacy.ID, legacy.EndDT)
				continue
			}

			frequency, interval := mapRepeat(legacy.RepeatUnit, legacy.RepeatStep)
			res := domain.Reservation{
				RoomID:          roomID,
				StartAt:         start,
				EndAt:           end,
				RepeatFrequency: frequency,
				RepeatInterval:  interval,
				BookedForName:   sanitize.Title(legacy.BookedForName),
				Reason:          sanitize.Text(legacy.Reason),
				IsAccepted:      !legacy.IsRejected && !legacy.IsCancelled,
				IsCancelled:     legacy.IsCancelled,
				IsRejected:      legacy.IsRejected,
			}
			if uid, ok := s.env.NS.UserByAvatar[legacy.CreatorID]; ok {
				res.CreatedByID = &uid
			}

			if err := repo.CreateReservation(ctx, &res); err != nil {
				return fmt.Errorf("reservation %s: %w", legacy.ID, err)
			}
			count++
		}
		if err := cur.Err(); err != nil {
			return err
		}
		s.log.Infof("Migrated %d reservations", count)
		return nil
	})
}

// legacy reservation timestamps come in two shapes, ISO-ish and the
// dd-mm-yyyy format of the oldest records
var legacyDTLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02-01-2006 15:04",
}

func parseLegacyDT(value string) (time.Time, error) {
	for _, layout := range legacyDTLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// mapRepeat converts the legacy periodicity encoding to a frequency and
// interval. Unknown units become one-off bookings.
func mapRepeat(unit, step int) (string, int) {
	if step < 1 {
		step = 1
	}
	switch unit {
	case 1:
		return domain.RepeatDay, step
	case 2:
		return domain.RepeatWeek, step
	case 3:
		return domain.RepeatMonth, step
	default:
		return domain.RepeatNever, 0
	}
}
