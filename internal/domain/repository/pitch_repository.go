package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// PitchFilter filtros de pitches.
type PitchFilter struct {
	ListFilter
	DealID string
	Status entity.PitchStatus
}

// PitchRepository define el puerto de persistencia para Pitch.
type PitchRepository interface {
	Create(ctx context.Context, p *entity.Pitch) error
	GetByID(ctx context.Context, userID, id string) (*entity.Pitch, error)
	List(ctx context.Context, f PitchFilter) ([]*entity.Pitch, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Pitch, error)
	Update(ctx context.Context, p *entity.Pitch) error
	Delete(ctx context.Context, userID, id string) error
}
