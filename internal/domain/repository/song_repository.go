package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// SongRepository define el puerto de persistencia para Song (DIP).
type SongRepository interface {
	Create(ctx context.Context, song *entity.Song) error
	GetByID(ctx context.Context, userID, id string) (*entity.Song, error)
	// FindByTitle busca por título exacto sin distinguir mayúsculas; artist vacío no filtra.
	FindByTitle(ctx context.Context, userID, title, artist string) (*entity.Song, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Song, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Song, error)
	Update(ctx context.Context, song *entity.Song) error
	Delete(ctx context.Context, userID, id string) error
}
