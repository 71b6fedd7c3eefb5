package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
	"github.com/jhoicas/syncdesk-api/internal/domain"
)

// AttachmentHandler archivos adjuntos a canciones, contactos, deals, pagos, facturas y gastos.
type AttachmentHandler struct {
	uc *usecase.AttachmentUseCase
}

func NewAttachmentHandler(uc *usecase.AttachmentUseCase) *AttachmentHandler {
	return &AttachmentHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir adjunto
// @Description  Extensiones permitidas: pdf doc docx txt jpg jpeg png gif webp mp3 wav aiff flac m4a zip rar.
// @Description  El tamaño máximo lo fija UPLOAD_MAX_BYTES.
// @Tags         attachments
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file         formData  file    true   "Archivo"
// @Param        entityType   formData  string  true   "song|contact|deal|payment|invoice|expense"
// @Param        entityId     formData  string  true   "ID de la entidad"
// @Param        description  formData  string  false  "Descripción"
// @Success      201  {object}  dto.SuccessResponse{data=dto.AttachmentResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attachments [post]
func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
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

	in := dto.UploadAttachmentInput{
		EntityType:  c.FormValue("entityType"),
		EntityID:    c.FormValue("entityId"),
		Description: c.FormValue("description"),
		Filename:    fh.Filename,
		MimeType:    fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	out, err := h.uc.Upload(c.UserContext(), uid, in, f)
	if err != nil {
		return err
	}
	return created(c, out)
}

// List GET /api/attachments?entityType=deal&entityId=...
func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListByEntity(c.UserContext(), uid, c.Query("entityType"), c.Query("entityId"))
	if err != nil {
		return err
	}
	return ok(c, out)
}

// Download GET /api/attachments/:id/download
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, rc, err := h.uc.Download(c.UserContext(), uid, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, a.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(a.Filename)))
	return c.SendStream(rc, int(a.Size))
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
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
