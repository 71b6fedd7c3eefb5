package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// AttachmentRepository define el puerto de persistencia para los metadatos de adjuntos.
type AttachmentRepository interface {
	Create(ctx context.Context, a *entity.Attachment) error
	GetByID(ctx context.Context, userID, id string) (*entity.Attachment, error)
	ListByEntity(ctx context.Context, userID string, entityType entity.AttachmentEntityType, entityID string) ([]*entity.Attachment, error)
	Delete(ctx context.Context, userID, id string) error
}
