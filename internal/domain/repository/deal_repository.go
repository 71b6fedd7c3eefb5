package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// DealFilter amplía ListFilter con filtros propios del pipeline.
type DealFilter struct {
	ListFilter
	Status    entity.DealStatus
	SongID    string
	ContactID string
}

// DealRepository define el puerto de persistencia para Deal.
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, userID, id string) (*entity.Deal, error)
	List(ctx context.Context, f DealFilter) ([]*entity.Deal, int, error)
	// ListAll todas las operaciones del usuario (analítica y exportación).
	ListAll(ctx context.Context, userID string) ([]*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	Delete(ctx context.Context, userID, id string) error
}
