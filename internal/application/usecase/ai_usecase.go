package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// AITimeout límite de cada llamada al LLM.
const AITimeout = 15 * time.Second

// AIUseCase análisis de idoneidad para sincronización asistido por IA.
// Aplica un timeout en cada llamada al LLM para que las latencias externas no bloqueen el servidor.
type AIUseCase struct {
	llm     ports.LLMService
	songs   repository.SongRepository
	timeout time.Duration
}

// NewAIUseCase llm nil deja el análisis deshabilitado (503).
func NewAIUseCase(llm ports.LLMService, songs repository.SongRepository) *AIUseCase {
	return &AIUseCase{llm: llm, songs: songs, timeout: AITimeout}
}

// AnalyzeSyncSuitability valida la entrada, carga la canción y delega al LLM.
func (uc *AIUseCase) AnalyzeSyncSuitability(
	ctx context.Context,
	userID, songID string,
	req dto.SyncSuitabilityRequest,
) (*dto.SyncSuitabilityDTO, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if uc.llm == nil {
		return nil, domain.NewAppError(http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI analysis is not configured")
	}
	song, err := uc.songs.GetByID(ctx, userID, songID)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, domain.NewNotFoundError("Song")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	result, err := uc.llm.AnalyzeSyncSuitability(ctx, song, req.ProjectType, req.ProjectDescription)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.NewAppError(http.StatusGatewayTimeout, "AI_TIMEOUT", "AI analysis timed out").WithCause(err)
		}
		return nil, fmt.Errorf("análisis IA: %w", err)
	}
	result.SongID = song.ID
	return result, nil
}
