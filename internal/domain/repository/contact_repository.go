package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// ContactRepository define el puerto de persistencia para Contact.
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, userID, id string) (*entity.Contact, error)
	FindByEmail(ctx context.Context, userID, email string) (*entity.Contact, error)
	FindByName(ctx context.Context, userID, name string) (*entity.Contact, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Contact, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, userID, id string) error
}
