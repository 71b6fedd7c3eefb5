package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
)

// ExpenseHandler gastos del negocio, opcionalmente ligados a un deal.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.CreateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return created(c, out)
}

func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
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

// List GET /api/expenses?category=
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	p := pageParams(c)
	out, err := h.uc.List(c.UserContext(), uid, search(c), c.Query("category"), p)
	if err != nil {
		return err
	}
	return paged(c, out, p)
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateExpenseRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), uid, id, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
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
