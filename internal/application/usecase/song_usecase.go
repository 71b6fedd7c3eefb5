package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// SongUseCase casos de uso CRUD del catálogo.
type SongUseCase struct {
	repo repository.SongRepository
}

// NewSongUseCase construye el caso de uso.
func NewSongUseCase(repo repository.SongRepository) *SongUseCase {
	return &SongUseCase{repo: repo}
}

// Create crea una canción. Los porcentajes de titularidad deben estar entre 0 y 100.
func (uc *SongUseCase) Create(ctx context.Context, userID string, in dto.CreateSongRequest) (*dto.SongResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	pub, err := ownership("publishingOwnership", in.PublishingOwnership)
	if err != nil {
		return nil, err
	}
	master, err := ownership("masterOwnership", in.MasterOwnership)
	if err != nil {
		return nil, err
	}
	t := now()
	song := &entity.Song{
		ID:                  uuid.New().String(),
		UserID:              userID,
		Title:               strings.TrimSpace(in.Title),
		Artist:              in.Artist,
		Album:               in.Album,
		Genre:               in.Genre,
		Mood:                in.Mood,
		Tempo:               in.Tempo,
		Key:                 in.Key,
		Duration:            in.Duration,
		Lyrics:              in.Lyrics,
		Tags:                cleanTags(in.Tags),
		Composer:            in.Composer,
		Publisher:           in.Publisher,
		PublishingOwnership: pub,
		MasterOwnership:     master,
		FileURL:             in.FileURL,
		CreatedAt:           t,
		UpdatedAt:           t,
	}
	if err := uc.repo.Create(ctx, song); err != nil {
		return nil, err
	}
	return toSongResponse(song), nil
}

// GetByID obtiene una canción del usuario.
func (uc *SongUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SongResponse, error) {
	song, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSongResponse(song), nil
}

func (uc *SongUseCase) get(ctx context.Context, userID, id string) (*entity.Song, error) {
	song, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, domain.NewNotFoundError("Song")
	}
	return song, nil
}

// Update actualización parcial.
func (uc *SongUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSongRequest) (*dto.SongResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	song, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		song.Title = strings.TrimSpace(*in.Title)
	}
	if in.Artist != nil {
		song.Artist = *in.Artist
	}
	if in.Album != nil {
		song.Album = *in.Album
	}
	if in.Genre != nil {
		song.Genre = *in.Genre
	}
	if in.Mood != nil {
		song.Mood = *in.Mood
	}
	if in.Tempo != nil {
		song.Tempo = *in.Tempo
	}
	if in.Key != nil {
		song.Key = *in.Key
	}
	if in.Duration != nil {
		song.Duration = *in.Duration
	}
	if in.Lyrics != nil {
		song.Lyrics = *in.Lyrics
	}
	if in.Tags != nil {
		song.Tags = cleanTags(in.Tags)
	}
	if in.Composer != nil {
		song.Composer = *in.Composer
	}
	if in.Publisher != nil {
		song.Publisher = *in.Publisher
	}
	if in.PublishingOwnership != nil {
		if song.PublishingOwnership, err = ownership("publishingOwnership", in.PublishingOwnership); err != nil {
			return nil, err
		}
	}
	if in.MasterOwnership != nil {
		if song.MasterOwnership, err = ownership("masterOwnership", in.MasterOwnership); err != nil {
			return nil, err
		}
	}
	if in.FileURL != nil {
		song.FileURL = *in.FileURL
	}
	song.UpdatedAt = now()
	if err := uc.repo.Update(ctx, song); err != nil {
		return nil, notFound("Song", err)
	}
	return toSongResponse(song), nil
}

// List lista canciones con búsqueda por título, artista o compositor.
func (uc *SongUseCase) List(ctx context.Context, userID, search string, p dto.PageParams) (*dto.PageResult[dto.SongResponse], error) {
	list, total, err := uc.repo.List(ctx, listFilter(userID, search, p))
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(s *entity.Song) dto.SongResponse { return *toSongResponse(s) }), nil
}

// Delete elimina una canción. Falla con CONFLICT si tiene deals asociados.
func (uc *SongUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Song", uc.repo.Delete(ctx, userID, id))
}

func ownership(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() || v.GreaterThan(hundred) {
		return decimal.Zero, invalidField(field, "must be between 0 and 100")
	}
	return *v, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		k := strings.ToLower(t)
		if t == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

func toSongResponse(s *entity.Song) *dto.SongResponse {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.SongResponse{
		ID:                  s.ID,
		Title:               s.Title,
		Artist:              s.Artist,
		Album:               s.Album,
		Genre:               s.Genre,
		Mood:                s.Mood,
		Tempo:               s.Tempo,
		Key:                 s.Key,
		Duration:            s.Duration,
		Lyrics:              s.Lyrics,
		Tags:                tags,
		Composer:            s.Composer,
		Publisher:           s.Publisher,
		PublishingOwnership: s.PublishingOwnership,
		MasterOwnership:     s.MasterOwnership,
		FileURL:             s.FileURL,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
