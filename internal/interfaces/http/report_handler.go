package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/reports"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exportaciones a hoja de cálculo.
type ReportHandler struct {
	uc *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar a Excel
// @Description  deals: un renglón por deal con canción, contacto, etapa y fees.
// @Description  payments: pagos con su estado efectivo. revenue: totales mensuales del año en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type  query  string  true  "deals | payments | revenue"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	name, err := h.uc.Export(c.UserContext(), uid, c.Query("type"), &buf)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}
