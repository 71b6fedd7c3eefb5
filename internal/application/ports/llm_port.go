package ports

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// AnalyzeSyncSuitability evalúa qué tan apta es una canción para el tipo de proyecto indicado.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	AnalyzeSyncSuitability(
		ctx context.Context,
		song *entity.Song,
		projectType string,
		projectDescription string,
	) (*dto.SyncSuitabilityDTO, error)
}
