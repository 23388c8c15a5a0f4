package postgres

import (
	"context"

	"confmigrate/internal/domain"
)

type EventRepository struct {
	db Querier
}

func NewEventRepository(db Querier) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (category_id, title, description, timezone, start_at, end_at,
			creator_id, protection, series_id, legacy_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		e.CategoryID, e.Title, e.Description, e.Timezone, e.StartAt, e.EndAt,
		e.CreatorID, e.Protection, e.SeriesID, e.LegacyID,
	).Scan(&e.ID)
}

func (r *EventRepository) SetSeries(ctx context.Context, eventID, seriesID int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE events SET series_id = $1 WHERE id = $2`, seriesID, eventID)
	return err
}

func (r *EventRepository) CreateSeries(ctx context.Context, s *domain.EventSeries) error {
	return r.db.QueryRowContext(ctx, `INSERT INTO event_series DEFAULT VALUES RETURNING id`).Scan(&s.ID)
}

func (r *EventRepository) CreatePerson(ctx context.Context, p *domain.EventPerson) error {
	query := `
		INSERT INTO event_persons (event_id, user_id, first_name, last_name, email, affiliation, is_chair)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		p.EventID, p.UserID, p.FirstName, p.LastName, p.Email, p.Affiliation, p.IsChair,
	).Scan(&p.ID)
}

func (r *EventRepository) CreateContribution(ctx context.Context, c *domain.Contribution) error {
	query := `
		INSERT INTO contributions (event_id, title, description, start_at, duration_sec, position, legacy_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		c.EventID, c.Title, c.Description, c.StartAt, int(c.Duration.Seconds()), c.Position, c.LegacyID,
	).Scan(&c.ID)
}

func (r *EventRepository) CreateReferenceType(ctx context.Context, rt *domain.ReferenceType) error {
	query := `
		INSERT INTO reference_types (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, rt.Name).Scan(&rt.ID)
}

func (r *EventRepository) CreateReference(ctx context.Context, ref *domain.EventReference) error {
	query := `
		INSERT INTO event_references (event_id, reference_type_id, value)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, ref.EventID, ref.ReferenceTypeID, ref.Value).Scan(&ref.ID)
}
