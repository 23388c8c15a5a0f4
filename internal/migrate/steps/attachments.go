package steps

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"time"

	"confmigrate/internal/domain"
	"confmigrate/internal/sanitize"
	"confmigrate/internal/source"
	"confmigrate/internal/storage"
	"confmigrate/internal/target/postgres"
	"confmigrate/pkg/logger"
)

// attachmentImporter turns legacy materials and their resources into
// attachment folders and attachments, resolving file contents through the
// archive.
type attachmentImporter struct {
	env  *Env
	repo *postgres.AttachmentRepository
	log  *logger.StepLogger
}

// importMaterials creates one folder per material under the given link and
// one attachment per resolvable resource. Missing files only skip the
// affected attachment.
func (a *attachmentImporter) importMaterials(ctx context.Context, link domain.AttachmentFolder, materials []source.Material) error {
	for _, material := range materials {
		if len(material.Resources) == 0 {
			continue
		}

		folder := link
		folder.Title = sanitize.Title(material.Title)
		if folder.Title == "" {
			folder.Title = "Material"
		}
		folder.Protection = materialProtection(material.Protection)
		if err := a.repo.CreateFolder(ctx, &folder); err != nil {
			return fmt.Errorf("material %s: %w", material.ID, err)
		}

		for _, res := range material.Resources {
			if err := a.importResource(ctx, folder.ID, &res); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *attachmentImporter) importResource(ctx context.Context, folderID int, res *source.Resource) error {
	info, err := a.env.Files.Resolve(res.RepoPath)
	if err != nil {
		if errors.Is(err, storage.ErrFileMissing) {
			a.log.Warnf("File %q of resource %s not found in archive; skipping", res.RepoPath, res.ID)
			return nil
		}
		return fmt.Errorf("resource %s: %w", res.ID, err)
	}

	filename := sanitize.Text(res.FileName)
	if filename == "" {
		filename = "attachment"
	}
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	createdAt := res.Created
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	attachment := domain.Attachment{
		FolderID:       folderID,
		Title:          filename,
		Filename:       filename,
		ContentType:    contentType,
		Size:           info.Size,
		MD5:            info.MD5,
		StorageBackend: info.Backend,
		StoragePath:    info.Path,
		CreatedByID:    a.env.creatorOrSystem(source.Principal{Kind: source.PrincipalAvatar, ID: res.OwnerID}),
		CreatedAt:      createdAt,
	}
	if err := a.repo.Create(ctx, &attachment); err != nil {
		return fmt.Errorf("resource %s: %w", res.ID, err)
	}
	return nil
}

func materialProtection(value int) string {
	switch value {
	case -1:
		return domain.ProtectionPublic
	case 1:
		return domain.ProtectionProtected
	default:
		return domain.ProtectionInheriting
	}
}
