package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// PlaylistRepository define el puerto de persistencia para Playlist y su lista ordenada de canciones.
type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	GetByID(ctx context.Context, userID, id string) (*entity.Playlist, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Playlist, int, error)
	Update(ctx context.Context, p *entity.Playlist) error
	Delete(ctx context.Context, userID, id string) error
	AddSong(ctx context.Context, playlistID, songID string) error
	RemoveSong(ctx context.Context, playlistID, songID string) error
}
