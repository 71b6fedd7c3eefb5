package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// CalendarHandler eventos de calendario (air dates, deadlines, reuniones).
type CalendarHandler struct {
	uc *usecase.CalendarUseCase
}

func NewCalendarHandler(uc *usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateCalendarEventRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *CalendarHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar eventos
// @Tags         calendar-events
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (ISO 8601)"
// @Param        to     query  string  false  "Hasta (ISO 8601)"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {object}  dto.SuccessResponse{data=[]dto.CalendarEventResponse}
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/calendar-events [get]
func (h *CalendarHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), uid, search(c), c.Query("from"), c.Query("to"), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *CalendarHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateCalendarEventRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *CalendarHandler) Delete(c *fiber.Ctx) error {
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
