package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func TestAIAnalyze(t *testing.T) {
	song := seedSong("Neon Rain")
	req := dto.SyncSuitabilityRequest{ProjectType: "commercial", ProjectDescription: "car ad at night"}

	t.Run("ok", func(t *testing.T) {
		var gotType string
		uc := NewAIUseCase(stubLLM{fn: func(_ context.Context, s *entity.Song, pt, _ string) (*dto.SyncSuitabilityDTO, error) {
			gotType = pt
			return &dto.SyncSuitabilityDTO{Score: 82, SuitableFor: []string{"night drive"}, Confidence: 0.7}, nil
		}}, newMemSongs(song))
		out, err := uc.AnalyzeSyncSuitability(context.Background(), testUser, song.ID, req)
		require.NoError(t, err)
		assert.Equal(t, song.ID, out.SongID)
		assert.Equal(t, 82, out.Score)
		assert.Equal(t, "commercial", gotType)
	})

	t.Run("not configured", func(t *testing.T) {
		uc := NewAIUseCase(nil, newMemSongs(song))
		_, err := uc.AnalyzeSyncSuitability(context.Background(), testUser, song.ID, req)
		ae, ok := domain.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, ae.Status)
	})

	t.Run("missing project type", func(t *testing.T) {
		uc := NewAIUseCase(nil, newMemSongs(song))
		_, err := uc.AnalyzeSyncSuitability(context.Background(), testUser, song.ID, dto.SyncSuitabilityRequest{})
		var ve *domain.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("song not found", func(t *testing.T) {
		uc := NewAIUseCase(stubLLM{}, newMemSongs(song))
		_, err := uc.AnalyzeSyncSuitability(context.Background(), testUser, uuid.NewString(), req)
		var nf *domain.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("timeout", func(t *testing.T) {
		uc := NewAIUseCase(stubLLM{fn: func(ctx context.Context, _ *entity.Song, _, _ string) (*dto.SyncSuitabilityDTO, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}}, newMemSongs(song))
		uc.timeout = 10 * time.Millisecond
		_, err := uc.AnalyzeSyncSuitability(context.Background(), testUser, song.ID, req)
		ae, ok := domain.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusGatewayTimeout, ae.Status)
		assert.Equal(t, "AI_TIMEOUT", ae.Code)
	})
}
