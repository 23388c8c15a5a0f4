package postgres

import (
	"context"

	"confmigrate/internal/domain"
)

type CategoryRepository struct {
	db Querier
}

func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (parent_id, title, description, position, protection,
			event_creation_restricted, no_access_contact, legacy_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		c.ParentID, c.Title, c.Description, c.Position, c.Protection,
		c.EventCreationRestricted, c.NoAccessContact, c.LegacyID,
	).Scan(&c.ID)
}

func (r *CategoryRepository) AddManager(ctx context.Context, categoryID, userID int) error {
	query := `
		INSERT INTO category_managers (category_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, categoryID, userID)
	return err
}
