package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// TemplateHandler plantillas de documentos y de email con {{variables}}.
type TemplateHandler struct {
	uc *usecase.TemplateUseCase
}

func NewTemplateHandler(uc *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// ── Plantillas de documento ──

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
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

// List GET /api/templates?type=
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), uid, search(c), c.Query("type"), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
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

// Render godoc
// @Summary      Renderizar plantilla
// @Description  Sustituye {{variables}} con values y, si se indica dealId, con los datos del deal.
// @Description  Las variables sin valor quedan en el texto y se listan en missing.
// @Tags         templates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la plantilla"
// @Param        body  body  dto.RenderTemplateRequest  true  "values y dealId opcional"
// @Success      200   {object}  dto.SuccessResponse{data=dto.RenderTemplateResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/templates/{id}/render [post]
func (h *TemplateHandler) Render(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.RenderTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Render(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ExtractVariables POST /api/templates/extract-variables
func (h *TemplateHandler) ExtractVariables(c *fiber.Ctx) error {
	if _, err := userID(c); err != nil {
		return err
	}
	var in dto.ExtractVariablesRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	return ok(c, fiber.Map{"variables": h.uc.ExtractVariables(in)})
}

// ── Plantillas de email ──

func (h *TemplateHandler) CreateEmail(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateEmailTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateEmail(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *TemplateHandler) GetEmail(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetEmail(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// ListEmails GET /api/email-templates?stage=
func (h *TemplateHandler) ListEmails(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.ListEmails(c.UserContext(), uid, search(c), c.Query("stage"), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *TemplateHandler) UpdateEmail(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateEmailTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateEmail(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *TemplateHandler) DeleteEmail(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteEmail(c.UserContext(), uid, id); err != nil {
		return err
	}
	return deleted(c, id)
}

// RenderEmail POST /api/email-templates/:id/render (subject y body)
func (h *TemplateHandler) RenderEmail(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.RenderTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RenderEmail(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}
