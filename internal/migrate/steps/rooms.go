package steps

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/storage"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// RoomsStep migrates locations and rooms from the room-booking store,
// importing room photos when a photo directory is configured.
type RoomsStep struct {
	env *Env
	log *logger.StepLogger
}

func NewRoomsStep(env *Env) *RoomsStep {
	return &RoomsStep{env: env, log: logger.Step("rooms")}
}

func (s *RoomsStep) Name() string { return "rooms" }

func (s *RoomsStep) Run(ctx context.Context) error {
	if s.env.RBStore == nil {
		s.log.Infof("No room-booking store configured; skipping")
		return nil
	}
	return inTx(ctx, s.env.DB, func(tx *sql.Tx) error {
		repo := postgres.NewRoomRepository(tx)
		if err := s.migrateLocations(ctx, repo); err != nil {
			return err
		}
		return s.migrateRooms(ctx, repo)
	})
}

func (s *RoomsStep) migrateLocations(ctx context.Context, repo *postgres.RoomRepository) error {
	cur, err := s.env.RBStore.Collection(source.CollLocations).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var legacy source.Location
		if err := cur.Decode(&legacy); err != nil {
			s.log.Warnf("Skipping undecodable location record: %v", err)
			continue
		}
		loc := domain.Location{Name: sanitize.Title(legacy.Name), IsDefault: legacy.IsDefault}
		if loc.Name == "" {
			s.log.Warnf("Skipping unnamed location %s", legacy.ID)
			continue
		}
		if err := repo.CreateLocation(ctx, &loc); err != nil {
			return fmt.Errorf("location %s: %w", legacy.ID, err)
		}
		s.env.NS.LocationByName[loc.Name] = loc.ID
	}
	return cur.Err()
}

func (s *RoomsStep) migrateRooms(ctx context.Context, repo *postgres.RoomRepository) error {
	cur, err := s.env.RBStore.Collection(source.CollRooms).Iter(ctx)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	count := 0
	for cur.Next(ctx) {
		var legacy source.Room
		if err := cur.Decode(&legacy); err != nil {
			s.log.Warnf("Skipping undecodable room record: %v", err)
			continue
		}

		locationID, ok := s.env.NS.LocationByName[sanitize.Title(legacy.LocationName)]
		if !ok {
			s.log.Warnf("Room %s references unknown location %q; skipping", legacy.ID, legacy.LocationName)
			continue
		}

		room := domain.Room{
			LocationID:   locationID,
			Name:         sanitize.Title(legacy.Name),
			Site:         sanitize.Text(legacy.Site),
			Building:     sanitize.Text(legacy.Building),
			Floor:        sanitize.Text(legacy.Floor),
			Number:       sanitize.Text(legacy.Number),
			Capacity:     legacy.Capacity,
			IsReservable: legacy.IsReservable,
			LegacyID:     legacy.ID,
		}
		if room.Name == "" {
			room.Name = generateRoomName(&legacy)
		}
		if uid, ok := s.env.NS.UserByAvatar[legacy.OwnerID]; ok {
			room.OwnerID = &uid
		}

		if photo := s.importPhoto(&legacy); photo != nil {
			room.PhotoPath = photo.Path
		}

		if err := repo.Create(ctx, &room); err != nil {
			return fmt.Errorf("room %s: %w", legacy.ID, err)
		}
		s.env.NS.RoomByLegacyID[legacy.ID] = room.ID
		count++
	}
	if err := cur.Err(); err != nil {
		return err
	}
	s.log.Infof("Migrated %d rooms", count)
	return nil
}

// generateRoomName builds the canonical site-building-floor-number name
// used when a room has no explicit one.
func generateRoomName(r *source.Room) string {
	return fmt.Sprintf("%s-%s-%s-%s", r.Site, r.Building, r.Floor, r.Number)
}

func (s *RoomsStep) importPhoto(legacy *source.Room) *storage.FileInfo {
	if s.env.Opts.PhotoPath == "" {
		return nil
	}
	name := strings.ToLower(generateRoomName(legacy)) + ".jpg"
	src := filepath.Join(s.env.Opts.PhotoPath, name)
	if _, err := os.Stat(src); err != nil {
		return nil
	}
	info, err := s.env.Files.StorePhoto(src)
	if err != nil {
		s.log.Warnf("Could not import photo for room %s: %v", legacy.ID, err)
		return nil
	}
	s.log.Debugf("Imported photo for room %s", legacy.ID)
	return info
}
