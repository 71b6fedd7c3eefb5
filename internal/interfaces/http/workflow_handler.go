package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// WorkflowHandler automatizaciones (se guardan y activan; no se ejecutan en el servidor).
type WorkflowHandler struct {
	uc *usecase.WorkflowUseCase
}

func NewWorkflowHandler(uc *usecase.WorkflowUseCase) *WorkflowHandler {
	return &WorkflowHandler{uc: uc}
}

func (h *WorkflowHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateWorkflowRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *WorkflowHandler) GetByID(c *fiber.Ctx) error {
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

func (h *WorkflowHandler) List(c *fiber.Ctx) error {
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

func (h *WorkflowHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateWorkflowRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *WorkflowHandler) Delete(c *fiber.Ctx) error {
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

// Toggle godoc
// @Summary      Activar/desactivar automatización
// @Tags         workflows
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la automatización"
// @Success      200  {object}  dto.SuccessResponse{data=dto.WorkflowResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workflows/{id}/toggle [patch]
func (h *WorkflowHandler) Toggle(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Toggle(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return ok(c, out)
}
