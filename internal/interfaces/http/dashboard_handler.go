package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/syncdesk-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary totales, deals por etapa y deals recientes.
// GET /api/dashboard
//
// No requiere parámetros; todo se recalcula en cada petición.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	summary, err := h.uc.GetSummary(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return ok(c, summary)
}

// GetAdvancedMetrics ingresos por período con crecimiento, rendimiento del pipeline y top canciones.
// GET /api/dashboard/advanced-metrics
func (h *DashboardHandler) GetAdvancedMetrics(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetAdvancedMetrics(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetSmartAlerts GET /api/dashboard/smart-alerts
func (h *DashboardHandler) GetSmartAlerts(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetSmartAlerts(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// GetClientRelationships puntaje de relación por contacto, de mayor a menor.
// GET /api/dashboard/client-relationships
func (h *DashboardHandler) GetClientRelationships(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetClientRelationships(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return ok(c, out)
}
