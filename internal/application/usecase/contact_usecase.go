package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// ContactUseCase casos de uso CRUD de contactos.
type ContactUseCase struct {
	repo repository.ContactRepository
}

func NewContactUseCase(repo repository.ContactRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

func (uc *ContactUseCase) Create(ctx context.Context, userID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	t := now()
	c := &entity.Contact{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Company:   in.Company,
		Role:      in.Role,
		Notes:     in.Notes,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

func (uc *ContactUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ContactResponse, error) {
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toContactResponse(c), nil
}

func (uc *ContactUseCase) get(ctx context.Context, userID, id string) (*entity.Contact, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("Contact")
	}
	return c, nil
}

func (uc *ContactUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Company != nil {
		c.Company = *in.Company
	}
	if in.Role != nil {
		c.Role = *in.Role
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.LastContactedAt != nil {
		c.LastContactedAt = in.LastContactedAt.Ptr()
	}
	c.UpdatedAt = now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, notFound("Contact", err)
	}
	return toContactResponse(c), nil
}

// List lista contactos con búsqueda por nombre, email o empresa.
func (uc *ContactUseCase) List(ctx context.Context, userID, search string, p dto.PageParams) (*dto.PageResult[dto.ContactResponse], error) {
	list, total, err := uc.repo.List(ctx, listFilter(userID, search, p))
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(c *entity.Contact) dto.ContactResponse { return *toContactResponse(c) }), nil
}

func (uc *ContactUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Contact", uc.repo.Delete(ctx, userID, id))
}

func toContactResponse(c *entity.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Company:         c.Company,
		Role:            c.Role,
		Notes:           c.Notes,
		LastContactedAt: c.LastContactedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
