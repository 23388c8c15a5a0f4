package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"confmigrate/internal/domain"
)

type SettingsRepository struct {
	db Querier
}

func NewSettingsRepository(db Querier) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Set upserts a module-scoped setting, JSON-encoding the value.
func (r *SettingsRepository) Set(ctx context.Context, s *domain.Setting) error {
	value, err := json.Marshal(s.Value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s.%s: %w", s.Module, s.Name, err)
	}
	query := `
		INSERT INTO settings (module, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (module, name) DO UPDATE SET value = EXCLUDED.value
	`
	_, err = r.db.ExecContext(ctx, query, s.Module, s.Name, value)
	return err
}

func (r *SettingsRepository) CreateNews(ctx context.Context, n *domain.NewsItem) error {
	query := `
		INSERT INTO news (title, content, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, n.Title, n.Content, n.CreatedAt).Scan(&n.ID)
}

func (r *SettingsRepository) CreateNetworkGroup(ctx context.Context, g *domain.IPNetworkGroup) error {
	query := `
		INSERT INTO ip_network_groups (name, networks)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, g.Name, pq.Array(g.Networks)).Scan(&g.ID)
}
