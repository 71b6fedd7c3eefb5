package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// WorkflowRepository define el puerto de persistencia para WorkflowAutomation.
type WorkflowRepository interface {
	Create(ctx context.Context, w *entity.WorkflowAutomation) error
	GetByID(ctx context.Context, userID, id string) (*entity.WorkflowAutomation, error)
	List(ctx context.Context, f ListFilter) ([]*entity.WorkflowAutomation, int, error)
	Update(ctx context.Context, w *entity.WorkflowAutomation) error
	Delete(ctx context.Context, userID, id string) error
}
