package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var _ repository.SongRepository = (*SongRepo)(nil)

const songColumns = `id, user_id, title, artist, album, genre, mood, tempo, musical_key, duration, lyrics, tags,
	composer, publisher, publishing_ownership, master_ownership, file_url, created_at, updated_at`

// SongRepo implementación del puerto SongRepository sobre PostgreSQL (usable con pool o tx).
type SongRepo struct {
	q Querier
}

// NewSongRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSongRepository(q Querier) *SongRepo {
	return &SongRepo{q: q}
}

func scanSong(row rowScanner) (*entity.Song, error) {
	var s entity.Song
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Artist, &s.Album, &s.Genre, &s.Mood, &s.Tempo, &s.Key,
		&s.Duration, &s.Lyrics, &s.Tags, &s.Composer, &s.Publisher, &s.PublishingOwnership, &s.MasterOwnership,
		&s.FileURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una canción nueva.
func (r *SongRepo) Create(ctx context.Context, s *entity.Song) error {
	query := `INSERT INTO songs (` + songColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.UserID, s.Title, s.Artist, s.Album, s.Genre, s.Mood, s.Tempo, s.Key, s.Duration, s.Lyrics,
		orEmpty(s.Tags), s.Composer, s.Publisher, s.PublishingOwnership, s.MasterOwnership, s.FileURL,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// GetByID obtiene una canción del usuario; nil, nil si no existe.
func (r *SongRepo) GetByID(ctx context.Context, userID, id string) (*entity.Song, error) {
	row := r.q.QueryRow(ctx, `SELECT `+songColumns+` FROM songs WHERE user_id = $1 AND id = $2`, userID, id)
	s, err := scanSong(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get song: %w", err)
	}
	return s, nil
}

// FindByTitle busca por título exacto sin distinguir mayúsculas; con artist filtra también por artista.
func (r *SongRepo) FindByTitle(ctx context.Context, userID, title, artist string) (*entity.Song, error) {
	w := newWhere(userID)
	w.cond("lower(title) = lower(" + w.arg(title) + ")")
	if artist != "" {
		w.cond("lower(artist) = lower(" + w.arg(artist) + ")")
	}
	row := r.q.QueryRow(ctx, `SELECT `+songColumns+` FROM songs`+w.String()+` ORDER BY created_at LIMIT 1`, w.args...)
	s, err := scanSong(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find song by title: %w", err)
	}
	return s, nil
}

// List listado paginado; search busca en título, artista, álbum y género.
func (r *SongRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Song, int, error) {
	w := newWhere(f.UserID)
	w.search(f.Search, "title", "artist", "album", "genre")
	total, err := count(ctx, r.q, "songs", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + songColumns + ` FROM songs` + w.String() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

// ListAll todas las canciones del usuario.
func (r *SongRepo) ListAll(ctx context.Context, userID string) ([]*entity.Song, error) {
	return r.query(ctx, `SELECT `+songColumns+` FROM songs WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *SongRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Song, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Song
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reescribe los campos editables; domain.ErrNotFound si no existe.
func (r *SongRepo) Update(ctx context.Context, s *entity.Song) error {
	query := `
		UPDATE songs SET title = $3, artist = $4, album = $5, genre = $6, mood = $7, tempo = $8, musical_key = $9,
			duration = $10, lyrics = $11, tags = $12, composer = $13, publisher = $14, publishing_ownership = $15,
			master_ownership = $16, file_url = $17, updated_at = $18
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		s.UserID, s.ID, s.Title, s.Artist, s.Album, s.Genre, s.Mood, s.Tempo, s.Key, s.Duration, s.Lyrics,
		orEmpty(s.Tags), s.Composer, s.Publisher, s.PublishingOwnership, s.MasterOwnership, s.FileURL, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la canción; si tiene deals asociados devuelve domain.ErrConflict.
func (r *SongRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM songs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete song: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
