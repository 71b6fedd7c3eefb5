package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// DealHandler pipeline de licencias: CRUD, cambio de etapa e historial.
type DealHandler struct {
	uc *usecase.DealUseCase
}

func NewDealHandler(uc *usecase.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear deal
// @Description  song_id y contact_id deben pertenecer al usuario. status vacío = new_request.
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "Datos del deal"
// @Success      201   {object}  dto.SuccessResponse{data=dto.DealResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateDealRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *DealHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar deals
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(50)
// @Param        search     query  string  false  "Proyecto, tipo o territorio"
// @Param        status     query  string  false  "Estado (cualquier variante)"
// @Param        songId     query  string  false  "Filtrar por canción"
// @Param        contactId  query  string  false  "Filtrar por contacto"
// @Success      200        {object}  dto.SuccessResponse{data=[]dto.DealResponse}
// @Router       /api/deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	f := usecase.DealListFilter{
		Search:    search(c),
		Status:    c.Query("status"),
		SongID:    c.Query("songId"),
		ContactID: c.Query("contactId"),
	}
	out, err := h.uc.List(c.UserContext(), uid, f, p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *DealHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateDealRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *DealHandler) Delete(c *fiber.Ctx) error {
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

// UpdateStatus godoc
// @Summary      Mover deal de etapa
// @Description  Acepta cualquier variante ("Use Confirmed", "use-confirmed"). Registra la fecha de la etapa si no existía.
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del deal"
// @Param        body  body  dto.UpdateDealStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SuccessResponse{data=dto.DealResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/deals/{id}/status [patch]
func (h *DealHandler) UpdateStatus(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateDealStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// History etapas por las que pasó el deal.
// GET /api/deals/:id/history
func (h *DealHandler) History(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.History(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// StatusOptions valores del pipeline con su etiqueta.
// GET /api/deals/status-options
func (h *DealHandler) StatusOptions(c *fiber.Ctx) error {
	return ok(c, usecase.StatusOptions())
}
