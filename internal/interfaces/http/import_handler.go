package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/importer"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

// ImportHandler importación de deals desde CSV o XLSX en dos pasos: parse y create.
type ImportHandler struct {
	svc *importer.Service
}

func NewImportHandler(svc *importer.Service) *ImportHandler {
	return &ImportHandler{svc: svc}
}

// Parse godoc
// @Summary      Leer hoja de cálculo
// @Description  Devuelve cabeceras, vista previa y todas las filas. Acepta .csv y .xlsx (.xls no está soportado).
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .csv o .xlsx"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ImportParseResult}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deals/import/parse [post]
func (h *ImportHandler) Parse(c *fiber.Ctx) error {
	if _, err := userID(c); err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return domain.NewValidationError("Validation failed", domain.FieldError{Field: "file", Message: "is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("abrir archivo subido: %w", err)
	}
	defer f.Close()

	out, err := h.svc.Parse(fh.Filename, f)
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Create godoc
// @Summary      Crear deals desde las filas leídas
// @Description  Cada fila se procesa en su propia transacción; los fallos se reportan por fila
// @Description  y no detienen el lote. created + failed = totalRows.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportCreateRequest  true  "data, mapping y flags de autocreación"
// @Success      200   {object}  dto.SuccessResponse{data=dto.ImportResult}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deals/import/create [post]
func (h *ImportHandler) Create(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var in dto.ImportCreateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.svc.Create(c.UserContext(), uid, in)
	if err != nil {
		return err
	}
	return ok(c, out)
}
