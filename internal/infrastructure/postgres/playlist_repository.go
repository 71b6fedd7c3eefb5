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

var _ repository.PlaylistRepository = (*PlaylistRepo)(nil)

const playlistColumns = `id, user_id, name, description, contact_id, created_at, updated_at`

// PlaylistRepo cabecera en playlists y orden de canciones en playlist_songs(position).
type PlaylistRepo struct {
	q Querier
}

func NewPlaylistRepository(q Querier) *PlaylistRepo {
	return &PlaylistRepo{q: q}
}

func scanPlaylist(row rowScanner) (*entity.Playlist, error) {
	var p entity.Playlist
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.ContactID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta la cabecera y las canciones en una misma transacción.
func (r *PlaylistRepo) Create(ctx context.Context, p *entity.Playlist) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO playlists (`+playlistColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.UserID, p.Name, p.Description, p.ContactID, p.CreatedAt, p.UpdatedAt); err != nil {
			return err
		}
		return insertPlaylistSongs(ctx, tx, p.ID, p.SongIDs)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

func insertPlaylistSongs(ctx context.Context, tx pgx.Tx, playlistID string, songIDs []string) error {
	if len(songIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, id := range songIDs {
		batch.Queue(`INSERT INTO playlist_songs (playlist_id, song_id, position) VALUES ($1, $2, $3)`, playlistID, id, i)
	}
	return tx.SendBatch(ctx, batch).Close()
}

func (r *PlaylistRepo) GetByID(ctx context.Context, userID, id string) (*entity.Playlist, error) {
	p, err := scanPlaylist(r.q.QueryRow(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	if err := r.loadSongs(ctx, []*entity.Playlist{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// loadSongs completa SongIDs de todas las playlists con una sola consulta.
func (r *PlaylistRepo) loadSongs(ctx context.Context, list []*entity.Playlist) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, len(list))
	byID := make(map[string]*entity.Playlist, len(list))
	for i, p := range list {
		ids[i] = p.ID
		p.SongIDs = []string{}
		byID[p.ID] = p
	}
	rows, err := r.q.Query(ctx, `SELECT playlist_id::text, song_id::text FROM playlist_songs
		WHERE playlist_id = ANY($1::uuid[]) ORDER BY playlist_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var playlistID, songID string
		if err := rows.Scan(&playlistID, &songID); err != nil {
			return fmt.Errorf("scan playlist song: %w", err)
		}
		if p := byID[playlistID]; p != nil {
			p.SongIDs = append(p.SongIDs, songID)
		}
	}
	return rows.Err()
}

func (r *PlaylistRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Playlist, int, error) {
	w := newWhere(f.UserID)
	w.search(f.Search, "name", "description")
	total, err := count(ctx, r.q, "playlists", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + playlistColumns + ` FROM playlists` + w.String() + ` ORDER BY created_at DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list playlists: %w", err)
	}
	var list []*entity.Playlist
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan playlist: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadSongs(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update reescribe la cabecera y reemplaza la lista de canciones.
func (r *PlaylistRepo) Update(ctx context.Context, p *entity.Playlist) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE playlists SET name = $3, description = $4, contact_id = $5, updated_at = $6
			WHERE user_id = $1 AND id = $2`,
			p.UserID, p.ID, p.Name, p.Description, p.ContactID, p.UpdatedAt)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM playlist_songs WHERE playlist_id = $1`, p.ID); err != nil {
			return err
		}
		return insertPlaylistSongs(ctx, tx, p.ID, p.SongIDs)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return err
	case isForeignKeyViolation(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("update playlist: %w", err)
}

func (r *PlaylistRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM playlists WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSong agrega al final; si la canción ya estaba no hace nada.
func (r *PlaylistRepo) AddSong(ctx context.Context, playlistID, songID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position)
		SELECT $1, $2, COALESCE(MAX(position), -1) + 1 FROM playlist_songs WHERE playlist_id = $1
		ON CONFLICT (playlist_id, song_id) DO NOTHING`, playlistID, songID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("add playlist song: %w", err)
	}
	_, err = r.q.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID)
	return err
}

// RemoveSong domain.ErrNotFound si la canción no estaba en la playlist.
func (r *PlaylistRepo) RemoveSong(ctx context.Context, playlistID, songID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("remove playlist song: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
