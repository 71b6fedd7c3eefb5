package usecase

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

type attachmentFixture struct {
	uc    *AttachmentUseCase
	repo  *memAttachments
	store *memFileStore
	song  *entity.Song
}

func newAttachmentFixture(t *testing.T, maxBytes int64) *attachmentFixture {
	freezeClock(t, clock)
	f := &attachmentFixture{
		repo:  &memAttachments{items: map[string]*entity.Attachment{}},
		store: newMemFileStore(),
		song:  seedSong("Neon Rain"),
	}
	f.uc = NewAttachmentUseCase(f.repo, f.store, AttachmentOwners{Songs: newMemSongs(f.song)}, maxBytes)
	return f
}

func (f *attachmentFixture) input(name string, size int64) dto.UploadAttachmentInput {
	return dto.UploadAttachmentInput{EntityType: "song", EntityID: f.song.ID, Filename: name, MimeType: "audio/mpeg", Size: size}
}

func TestAttachmentUpload_RoundTrip(t *testing.T) {
	f := newAttachmentFixture(t, 1024)

	res, err := f.uc.Upload(context.Background(), testUser, f.input("../../master.MP3", 5), strings.NewReader("audio"))
	require.NoError(t, err)
	assert.Equal(t, "master.MP3", res.Filename)
	assert.Equal(t, int64(5), res.Size)
	assert.Equal(t, clock, res.CreatedAt)

	stored := f.repo.items[res.ID]
	require.NotNil(t, stored)
	assert.Equal(t, testUser+"/"+res.ID+".mp3", stored.StorageKey)

	list, err := f.uc.ListByEntity(context.Background(), testUser, "song", f.song.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	meta, rc, err := f.uc.Download(context.Background(), testUser, res.ID)
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "audio", string(body))
	assert.Equal(t, "audio/mpeg", meta.MimeType)

	require.NoError(t, f.uc.Delete(context.Background(), testUser, res.ID))
	assert.Empty(t, f.store.files)

	_, _, err = f.uc.Download(context.Background(), testUser, res.ID)
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAttachmentUpload_Rejections(t *testing.T) {
	f := newAttachmentFixture(t, 4)

	t.Run("extension", func(t *testing.T) {
		_, err := f.uc.Upload(context.Background(), testUser, f.input("run.exe", 1), strings.NewReader("x"))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "file type .exe is not allowed", ve.Fields[0].Message)
	})
	t.Run("declared size", func(t *testing.T) {
		_, err := f.uc.Upload(context.Background(), testUser, f.input("a.pdf", 10), strings.NewReader("x"))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields[0].Message, "maximum size of 4 bytes")
	})
	t.Run("actual size", func(t *testing.T) {
		_, err := f.uc.Upload(context.Background(), testUser, f.input("a.pdf", 0), strings.NewReader("too long"))
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
	t.Run("entity of another user", func(t *testing.T) {
		in := f.input("a.pdf", 1)
		in.EntityID = uuid.NewString()
		_, err := f.uc.Upload(context.Background(), testUser, in, strings.NewReader("x"))
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Song", nf.Entity)
	})
	t.Run("unknown entity type", func(t *testing.T) {
		in := f.input("a.pdf", 1)
		in.EntityType = "playlist"
		_, err := f.uc.Upload(context.Background(), testUser, in, strings.NewReader("x"))
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
	assert.Empty(t, f.store.files)
	assert.Empty(t, f.repo.items)
}

func TestAttachmentUpload_CleansFileWhenInsertFails(t *testing.T) {
	f := newAttachmentFixture(t, 0)
	f.repo.createErr = errBoom

	_, err := f.uc.Upload(context.Background(), testUser, f.input("cue.wav", 3), strings.NewReader("wav"))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.store.files)
}
