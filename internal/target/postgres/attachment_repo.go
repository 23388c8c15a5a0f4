package postgres

import (
	"context"

	"confmigrate/internal/domain"
)

type AttachmentRepository struct {
	db Querier
}

func NewAttachmentRepository(db Querier) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) CreateFolder(ctx context.Context, f *domain.AttachmentFolder) error {
	query := `
		INSERT INTO attachment_folders (link_type, category_id, event_id, contribution_id,
			title, is_default, protection)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		f.LinkType, f.CategoryID, f.EventID, f.ContributionID,
		f.Title, f.IsDefault, f.Protection,
	).Scan(&f.ID)
}

func (r *AttachmentRepository) Create(ctx context.Context, a *domain.Attachment) error {
	query := `
		INSERT INTO attachments (folder_id, title, filename, content_type, size, md5,
			storage_backend, storage_path, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		a.FolderID, a.Title, a.Filename, a.ContentType, a.Size, a.MD5,
		a.StorageBackend, a.StoragePath, a.CreatedByID, a.CreatedAt,
	).Scan(&a.ID)
}
