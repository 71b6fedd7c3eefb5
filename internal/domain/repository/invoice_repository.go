package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error)
	List(ctx context.Context, f ListFilter, status entity.InvoiceStatus) ([]*entity.Invoice, int, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, userID, id string) error
}
