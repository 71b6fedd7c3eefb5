package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// PitchHandler envíos de canciones a supervisores.
type PitchHandler struct {
	uc *usecase.PitchUseCase
}

func NewPitchHandler(uc *usecase.PitchUseCase) *PitchHandler {
	return &PitchHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pitch
// @Tags         pitches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePitchRequest  true  "Datos del pitch"
// @Success      201   {object}  dto.SuccessResponse{data=dto.PitchResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pitches [post]
func (h *PitchHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreatePitchRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *PitchHandler) GetByID(c *fiber.Ctx) error {
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

// List acepta dealId y status (pending|responded|no_response).
// GET /api/pitches
func (h *PitchHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	f := usecase.PitchListFilter{Search: search(c), DealID: c.Query("dealId"), Status: c.Query("status")}
	out, err := h.uc.List(c.UserContext(), uid, f, p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *PitchHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdatePitchRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *PitchHandler) Delete(c *fiber.Ctx) error {
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
