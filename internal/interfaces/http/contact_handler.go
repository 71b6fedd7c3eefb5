package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// ContactHandler supervisores musicales, agencias y demás contactos.
type ContactHandler struct {
	uc *usecase.ContactUseCase
}

func NewContactHandler(uc *usecase.ContactUseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contacto
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContactRequest  true  "Datos del contacto"
// @Success      201   {object}  dto.SuccessResponse{data=dto.ContactResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateContactRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

// GET /api/contacts/:id
func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar contactos
// @Tags         contacts
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        search  query  string  false  "Nombre, email o empresa"
// @Success      200     {object}  dto.SuccessResponse{data=[]dto.ContactResponse}
// @Router       /api/contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
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

// PUT /api/contacts/:id
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateContactRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// DELETE /api/contacts/:id (409 si tiene deals)
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
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
