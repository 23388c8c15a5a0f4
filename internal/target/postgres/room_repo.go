package postgres

import (
	"context"

	"confmigrate/internal/domain"
)

type RoomRepository struct {
	db Querier
}

func NewRoomRepository(db Querier) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) CreateLocation(ctx context.Context, l *domain.Location) error {
	query := `
		INSERT INTO locations (name, is_default)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, l.Name, l.IsDefault).Scan(&l.ID)
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (location_id, name, site, building, floor, number, capacity,
			owner_id, is_reservable, photo_path, legacy_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		room.LocationID, room.Name, room.Site, room.Building, room.Floor, room.Number,
		room.Capacity, room.OwnerID, room.IsReservable, room.PhotoPath, room.LegacyID,
	).Scan(&room.ID)
}

func (r *RoomRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	query := `
		INSERT INTO reservations (room_id, start_at, end_at, repeat_frequency, repeat_interval,
			booked_for_name, reason, created_by_id, is_accepted, is_cancelled, is_rejected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		res.RoomID, res.StartAt, res.EndAt, res.RepeatFrequency, res.RepeatInterval,
		res.BookedForName, res.Reason, res.CreatedByID, res.IsAccepted, res.IsCancelled, res.IsRejected,
	).Scan(&res.ID)
}
