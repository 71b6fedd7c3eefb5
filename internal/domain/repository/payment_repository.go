package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// PaymentFilter filtros de cobros.
type PaymentFilter struct {
	ListFilter
	DealID string
	Status entity.PaymentStatus
}

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, userID, id string) (*entity.Payment, error)
	List(ctx context.Context, f PaymentFilter) ([]*entity.Payment, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Payment, error)
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, userID, id string) error
}
