package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func TestPlaylist_AddRemoveSongs(t *testing.T) {
	freezeClock(t, clock)
	a, b := seedSong("A"), seedSong("B")
	repo := &memPlaylists{items: map[string]*entity.Playlist{}}
	uc := NewPlaylistUseCase(repo, newMemSongs(a, b), newMemContacts())

	p, err := uc.Create(context.Background(), testUser, dto.CreatePlaylistRequest{
		Name:    "Moody picks",
		SongIDs: []string{a.ID, a.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, p.SongIDs, "los duplicados se descartan")

	p, err = uc.AddSong(context.Background(), testUser, p.ID, dto.AddPlaylistSongRequest{SongID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, p.SongIDs)

	p, err = uc.AddSong(context.Background(), testUser, p.ID, dto.AddPlaylistSongRequest{SongID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, p.SongIDs)
	assert.Equal(t, 1, repo.adds, "agregar una canción existente no escribe")

	_, err = uc.AddSong(context.Background(), testUser, p.ID, dto.AddPlaylistSongRequest{SongID: uuid.NewString()})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Song", nf.Entity)

	p, err = uc.RemoveSong(context.Background(), testUser, p.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, p.SongIDs)

	_, err = uc.RemoveSong(context.Background(), testUser, p.ID, a.ID)
	require.ErrorAs(t, err, &nf)
}

func TestPlaylistCreate_UnknownContact(t *testing.T) {
	freezeClock(t, clock)
	uc := NewPlaylistUseCase(&memPlaylists{items: map[string]*entity.Playlist{}}, newMemSongs(), newMemContacts())
	_, err := uc.Create(context.Background(), testUser, dto.CreatePlaylistRequest{Name: "x", ContactID: uuid.NewString()})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Contact", nf.Entity)
}
