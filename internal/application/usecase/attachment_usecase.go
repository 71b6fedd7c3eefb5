package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/ports"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// AllowedAttachmentExtensions extensiones aceptadas en la subida.
var AllowedAttachmentExtensions = []string{
	"pdf", "doc", "docx", "txt", "jpg", "jpeg", "png", "gif", "webp",
	"mp3", "wav", "aiff", "flac", "m4a", "zip", "rar",
}

// AttachmentOwners repositorios para verificar que la entidad destino es del usuario.
type AttachmentOwners struct {
	Songs    repository.SongRepository
	Contacts repository.ContactRepository
	Deals    repository.DealRepository
	Payments repository.PaymentRepository
	Invoices repository.InvoiceRepository
	Expenses repository.ExpenseRepository
}

// AttachmentUseCase subida, listado, descarga y borrado de adjuntos.
type AttachmentUseCase struct {
	repo     repository.AttachmentRepository
	store    ports.FileStore
	owners   AttachmentOwners
	maxBytes int64
}

// NewAttachmentUseCase maxBytes <= 0 desactiva el límite.
func NewAttachmentUseCase(repo repository.AttachmentRepository, store ports.FileStore, owners AttachmentOwners, maxBytes int64) *AttachmentUseCase {
	return &AttachmentUseCase{repo: repo, store: store, owners: owners, maxBytes: maxBytes}
}

// Upload guarda el archivo y sus metadatos. Si falla la inserción se borra el archivo.
func (uc *AttachmentUseCase) Upload(ctx context.Context, userID string, in dto.UploadAttachmentInput, r io.Reader) (*dto.AttachmentResponse, error) {
	in.Filename = filepath.Base(strings.TrimSpace(in.Filename))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(in.Filename)), ".")
	if !allowedExtension(ext) {
		return nil, invalidField("file", "file type ."+ext+" is not allowed")
	}
	if uc.maxBytes > 0 && in.Size > uc.maxBytes {
		return nil, uc.tooLarge()
	}
	et := entity.AttachmentEntityType(in.EntityType)
	if err := uc.checkOwner(ctx, userID, et, in.EntityID); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	key := fmt.Sprintf("%s/%s.%s", userID, id, ext)
	stored, err := uc.store.Save(ctx, key, r, uc.maxBytes)
	if err != nil {
		if errors.Is(err, ports.ErrFileTooLarge) {
			return nil, uc.tooLarge()
		}
		return nil, fmt.Errorf("guardar adjunto: %w", err)
	}
	a := &entity.Attachment{
		ID:          id,
		UserID:      userID,
		EntityType:  et,
		EntityID:    in.EntityID,
		Filename:    in.Filename,
		MimeType:    in.MimeType,
		Size:        stored.Size,
		Checksum:    stored.Checksum,
		StorageKey:  stored.Key,
		Description: in.Description,
		CreatedAt:   now(),
	}
	if a.MimeType == "" {
		a.MimeType = "application/octet-stream"
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		_ = uc.store.Delete(ctx, stored.Key)
		return nil, err
	}
	return toAttachmentResponse(a), nil
}

func (uc *AttachmentUseCase) tooLarge() error {
	return invalidField("file", fmt.Sprintf("file exceeds the maximum size of %d bytes", uc.maxBytes))
}

// ListByEntity adjuntos de una entidad, más recientes primero.
func (uc *AttachmentUseCase) ListByEntity(ctx context.Context, userID, entityType, entityID string) ([]dto.AttachmentResponse, error) {
	et := entity.AttachmentEntityType(strings.TrimSpace(entityType))
	if !et.Valid() {
		return nil, invalidField("entityType", "must be one of: song contact deal payment invoice expense")
	}
	if strings.TrimSpace(entityID) == "" {
		return nil, invalidField("entityId", "is required")
	}
	list, err := uc.repo.ListByEntity(ctx, userID, et, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttachmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAttachmentResponse(a))
	}
	return out, nil
}

// Download devuelve los metadatos y el contenido; el llamador cierra el reader.
func (uc *AttachmentUseCase) Download(ctx context.Context, userID, id string) (*entity.Attachment, io.ReadCloser, error) {
	a, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := uc.store.Open(ctx, a.StorageKey)
	if err != nil {
		return nil, nil, notFound("Attachment file", err)
	}
	return a, rc, nil
}

// Delete borra metadatos y archivo. Un archivo ya ausente no es error.
func (uc *AttachmentUseCase) Delete(ctx context.Context, userID, id string) error {
	a, err := uc.get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return notFound("Attachment", err)
	}
	if err := uc.store.Delete(ctx, a.StorageKey); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}

func (uc *AttachmentUseCase) get(ctx context.Context, userID, id string) (*entity.Attachment, error) {
	a, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFoundError("Attachment")
	}
	return a, nil
}

func (uc *AttachmentUseCase) checkOwner(ctx context.Context, userID string, et entity.AttachmentEntityType, id string) error {
	var (
		found bool
		err   error
		name  string
	)
	switch et {
	case entity.AttachSong:
		name = "Song"
		var v *entity.Song
		v, err = uc.owners.Songs.GetByID(ctx, userID, id)
		found = v != nil
	case entity.AttachContact:
		name = "Contact"
		var v *entity.Contact
		v, err = uc.owners.Contacts.GetByID(ctx, userID, id)
		found = v != nil
	case entity.AttachDeal:
		name = "Deal"
		var v *entity.Deal
		v, err = uc.owners.Deals.GetByID(ctx, userID, id)
		found = v != nil
	case entity.AttachPayment:
		name = "Payment"
		var v *entity.Payment
		v, err = uc.owners.Payments.GetByID(ctx, userID, id)
		found = v != nil
	case entity.AttachInvoice:
		name = "Invoice"
		var v *entity.Invoice
		v, err = uc.owners.Invoices.GetByID(ctx, userID, id)
		found = v != nil
	case entity.AttachExpense:
		name = "Expense"
		var v *entity.Expense
		v, err = uc.owners.Expenses.GetByID(ctx, userID, id)
		found = v != nil
	default:
		return invalidField("entityType", "must be one of: song contact deal payment invoice expense")
	}
	if err != nil {
		return err
	}
	if !found {
		return domain.NewNotFoundError(name)
	}
	return nil
}

func allowedExtension(ext string) bool {
	for _, e := range AllowedAttachmentExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		ID:          a.ID,
		EntityType:  string(a.EntityType),
		EntityID:    a.EntityID,
		Filename:    a.Filename,
		MimeType:    a.MimeType,
		Size:        a.Size,
		Checksum:    a.Checksum,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}
