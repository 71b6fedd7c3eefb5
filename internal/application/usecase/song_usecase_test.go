package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

func TestSongCreate(t *testing.T) {
	freezeClock(t, clock)
	uc := NewSongUseCase(newMemSongs())

	res, err := uc.Create(context.Background(), testUser, dto.CreateSongRequest{
		Title:               " Neon Rain ",
		Tags:                []string{"synth", " Synth", "", "night"},
		PublishingOwnership: decPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "Neon Rain", res.Title)
	assert.Equal(t, []string{"synth", "night"}, res.Tags)
	assert.Equal(t, "50", res.PublishingOwnership.String())
	assert.True(t, res.MasterOwnership.IsZero())
}

func TestSongCreate_OwnershipRange(t *testing.T) {
	freezeClock(t, clock)
	uc := NewSongUseCase(newMemSongs())

	_, err := uc.Create(context.Background(), testUser, dto.CreateSongRequest{Title: "x", MasterOwnership: decPtr(101)})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "masterOwnership", ve.Fields[0].Field)

	_, err = uc.Create(context.Background(), testUser, dto.CreateSongRequest{Title: "x", PublishingOwnership: decPtr(-5)})
	assert.ErrorAs(t, err, &ve)
}

func TestSongCreate_TitleRequired(t *testing.T) {
	uc := NewSongUseCase(newMemSongs())
	_, err := uc.Create(context.Background(), testUser, dto.CreateSongRequest{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.FieldError{Field: "title", Message: "is required"}, ve.Fields[0])
}
