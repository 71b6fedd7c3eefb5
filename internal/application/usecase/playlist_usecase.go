package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// PlaylistUseCase selecciones de canciones para enviar a contactos.
type PlaylistUseCase struct {
	playlists repository.PlaylistRepository
	songs     repository.SongRepository
	contacts  repository.ContactRepository
}

func NewPlaylistUseCase(
	playlists repository.PlaylistRepository,
	songs repository.SongRepository,
	contacts repository.ContactRepository,
) *PlaylistUseCase {
	return &PlaylistUseCase{playlists: playlists, songs: songs, contacts: contacts}
}

func (uc *PlaylistUseCase) Create(ctx context.Context, userID string, in dto.CreatePlaylistRequest) (*dto.PlaylistResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	contactID := optString(in.ContactID)
	if err := uc.checkContact(ctx, userID, contactID); err != nil {
		return nil, err
	}
	songIDs, err := uc.checkSongs(ctx, userID, in.SongIDs)
	if err != nil {
		return nil, err
	}
	t := now()
	p := &entity.Playlist{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ContactID:   contactID,
		SongIDs:     songIDs,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := uc.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPlaylistResponse(p), nil
}

func (uc *PlaylistUseCase) GetByID(ctx context.Context, userID, id string) (*dto.PlaylistResponse, error) {
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toPlaylistResponse(p), nil
}

func (uc *PlaylistUseCase) get(ctx context.Context, userID, id string) (*entity.Playlist, error) {
	p, err := uc.playlists.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("Playlist")
	}
	return p, nil
}

// Update actualización parcial; songIds presente reemplaza la lista completa.
func (uc *PlaylistUseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ContactID != nil {
		p.ContactID = optString(*in.ContactID)
		if err := uc.checkContact(ctx, userID, p.ContactID); err != nil {
			return nil, err
		}
	}
	if in.SongIDs != nil {
		if p.SongIDs, err = uc.checkSongs(ctx, userID, in.SongIDs); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = now()
	if err := uc.playlists.Update(ctx, p); err != nil {
		return nil, notFound("Playlist", err)
	}
	return toPlaylistResponse(p), nil
}

func (uc *PlaylistUseCase) List(ctx context.Context, userID, search string, p dto.PageParams) (*dto.PageResult[dto.PlaylistResponse], error) {
	list, total, err := uc.playlists.List(ctx, listFilter(userID, search, p))
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(p *entity.Playlist) dto.PlaylistResponse { return *toPlaylistResponse(p) }), nil
}

func (uc *PlaylistUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Playlist", uc.playlists.Delete(ctx, userID, id))
}

// AddSong agrega una canción al final; si ya estaba no cambia nada.
func (uc *PlaylistUseCase) AddSong(ctx context.Context, userID, playlistID string, in dto.AddPlaylistSongRequest) (*dto.PlaylistResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}
	for _, id := range p.SongIDs {
		if id == in.SongID {
			return toPlaylistResponse(p), nil
		}
	}
	if _, err := uc.checkSongs(ctx, userID, []string{in.SongID}); err != nil {
		return nil, err
	}
	if err := uc.playlists.AddSong(ctx, p.ID, in.SongID); err != nil {
		return nil, err
	}
	p.SongIDs = append(p.SongIDs, in.SongID)
	return toPlaylistResponse(p), nil
}

func (uc *PlaylistUseCase) RemoveSong(ctx context.Context, userID, playlistID, songID string) (*dto.PlaylistResponse, error) {
	p, err := uc.get(ctx, userID, playlistID)
	if err != nil {
		return nil, err
	}
	if err := uc.playlists.RemoveSong(ctx, p.ID, songID); err != nil {
		return nil, notFound("Song", err)
	}
	kept := p.SongIDs[:0]
	for _, id := range p.SongIDs {
		if id != songID {
			kept = append(kept, id)
		}
	}
	p.SongIDs = kept
	return toPlaylistResponse(p), nil
}

func (uc *PlaylistUseCase) checkContact(ctx context.Context, userID string, contactID *string) error {
	if contactID == nil {
		return nil
	}
	c, err := uc.contacts.GetByID(ctx, userID, *contactID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewNotFoundError("Contact")
	}
	return nil
}

// checkSongs verifica pertenencia y elimina duplicados conservando el orden.
func (uc *PlaylistUseCase) checkSongs(ctx context.Context, userID string, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		s, err := uc.songs.GetByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.NewNotFoundError("Song")
		}
		out = append(out, id)
	}
	return out, nil
}

func toPlaylistResponse(p *entity.Playlist) *dto.PlaylistResponse {
	ids := p.SongIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.PlaylistResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ContactID:   p.ContactID,
		SongIDs:     ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
