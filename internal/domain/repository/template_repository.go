package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// TemplateRepository define el puerto de persistencia para Template.
type TemplateRepository interface {
	Create(ctx context.Context, t *entity.Template) error
	GetByID(ctx context.Context, userID, id string) (*entity.Template, error)
	List(ctx context.Context, f ListFilter, templateType entity.TemplateType) ([]*entity.Template, int, error)
	Update(ctx context.Context, t *entity.Template) error
	Delete(ctx context.Context, userID, id string) error
}

// EmailTemplateRepository define el puerto de persistencia para EmailTemplate.
type EmailTemplateRepository interface {
	Create(ctx context.Context, t *entity.EmailTemplate) error
	GetByID(ctx context.Context, userID, id string) (*entity.EmailTemplate, error)
	List(ctx context.Context, f ListFilter, stage string) ([]*entity.EmailTemplate, int, error)
	Update(ctx context.Context, t *entity.EmailTemplate) error
	Delete(ctx context.Context, userID, id string) error
}
