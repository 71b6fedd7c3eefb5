package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// SongHandler catálogo de canciones (protegido).
type SongHandler struct {
	uc *usecase.SongUseCase
	ai *usecase.AIUseCase
}

// NewSongHandler ai puede ser nil si el análisis IA no está montado.
func NewSongHandler(uc *usecase.SongUseCase, ai *usecase.AIUseCase) *SongHandler {
	return &SongHandler{uc: uc, ai: ai}
}

// Create godoc
// @Summary      Crear canción
// @Tags         songs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSongRequest  true  "Datos de la canción"
// @Success      201   {object}  dto.SuccessResponse{data=dto.SongResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/songs [post]
func (h *SongHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateSongRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// GetByID godoc
// @Summary      Obtener canción por ID
// @Tags         songs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canción"
// @Success      200  {object}  dto.SuccessResponse{data=dto.SongResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/songs/{id} [get]
func (h *SongHandler) GetByID(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// List godoc
// @Summary      Listar canciones
// @Tags         songs
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        search  query  string  false  "Título, artista, álbum o género"
// @Success      200     {object}  dto.SuccessResponse{data=[]dto.SongResponse}
// @Router       /api/songs [get]
func (h *SongHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), uid, search(c), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

// Update godoc
// @Summary      Actualizar canción
// @Tags         songs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la canción"
// @Param        body  body  dto.UpdateSongRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SuccessResponse{data=dto.SongResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/songs/{id} [put]
func (h *SongHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateSongRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Delete godoc
// @Summary      Borrar canción
// @Description  Falla con 409 si la canción tiene deals.
// @Tags         songs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la canción"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/songs/{id} [delete]
func (h *SongHandler) Delete(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), uid, id); err != nil {
		return err
	}
	return deleted(c, id)
}

// SyncSuitability godoc
// @Summary      Idoneidad de la canción para un proyecto (IA)
// @Description  Puntaje 0–100, usos sugeridos, razonamiento y confianza. Timeout interno de 15 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la canción"
// @Param        body  body  dto.SyncSuitabilityRequest  true  "projectType y projectDescription"
// @Success      200   {object}  dto.SuccessResponse{data=dto.SyncSuitabilityDTO}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/songs/{id}/sync-suitability [post]
func (h *SongHandler) SyncSuitability(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.SyncSuitabilityRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.ai.AnalyzeSyncSuitability(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}
