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

// InvoiceUseCase facturas emitidas a contactos. Impuesto y total se recalculan en cada escritura.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	contacts repository.ContactRepository
	deals    repository.DealRepository
}

func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	contacts repository.ContactRepository,
	deals repository.DealRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, contacts: contacts, deals: deals}
}

func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := checkAmounts(in.Subtotal.IsNegative(), in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred)); err != nil {
		return nil, err
	}
	c, err := uc.contacts.GetByID(ctx, userID, in.ContactID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("Contact")
	}
	dealID := optString(in.DealID)
	if dealID != nil {
		if err := requireDeal(ctx, uc.deals, userID, *dealID); err != nil {
			return nil, err
		}
	}
	t := now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		UserID:        userID,
		DealID:        dealID,
		ContactID:     in.ContactID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		DueDate:       in.DueDate.Ptr(),
		Subtotal:      in.Subtotal,
		TaxRate:       in.TaxRate,
		Status:        entity.InvoiceStatus(in.Status),
		Notes:         in.Notes,
		CreatedAt:     t,
		UpdatedAt:     t,
	}
	if d := in.IssueDate.Ptr(); d != nil {
		inv.IssueDate = *d
	} else {
		inv.IssueDate = t
	}
	if inv.Status == "" {
		inv.Status = entity.InvoiceDraft
	}
	inv.Recalculate()
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

func checkAmounts(badSubtotal, badRate bool) error {
	if badSubtotal {
		return invalidField("subtotal", "must not be negative")
	}
	if badRate {
		return invalidField("taxRate", "must be between 0 and 100")
	}
	return nil
}

func (uc *InvoiceUseCase) GetByID(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Get devuelve la entidad (la usan los generadores de documentos).
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewNotFoundError("Invoice")
	}
	return inv, nil
}

func (uc *InvoiceUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.InvoiceNumber != nil {
		inv.InvoiceNumber = strings.TrimSpace(*in.InvoiceNumber)
	}
	if d := in.IssueDate.Ptr(); d != nil {
		inv.IssueDate = *d
	}
	if in.DueDate != nil {
		inv.DueDate = in.DueDate.Ptr()
	}
	if in.Subtotal != nil {
		inv.Subtotal = *in.Subtotal
	}
	if in.TaxRate != nil {
		inv.TaxRate = *in.TaxRate
	}
	if err := checkAmounts(inv.Subtotal.IsNegative(), inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(hundred)); err != nil {
		return nil, err
	}
	if in.Status != nil {
		inv.Status = entity.InvoiceStatus(*in.Status)
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	inv.Recalculate()
	inv.UpdatedAt = now()
	if err := uc.invoices.Update(ctx, inv); err != nil {
		return nil, notFound("Invoice", err)
	}
	return toInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) List(ctx context.Context, userID, search, status string, p dto.PageParams) (*dto.PageResult[dto.InvoiceResponse], error) {
	st := entity.InvoiceStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, invalidField("status", "must be one of: draft sent paid overdue cancelled")
	}
	list, total, err := uc.invoices.List(ctx, listFilter(userID, search, p), st)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(i *entity.Invoice) dto.InvoiceResponse { return *toInvoiceResponse(i) }), nil
}

func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Invoice", uc.invoices.Delete(ctx, userID, id))
}

func toInvoiceResponse(i *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            i.ID,
		DealID:        i.DealID,
		ContactID:     i.ContactID,
		InvoiceNumber: i.InvoiceNumber,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Subtotal:      i.Subtotal,
		TaxRate:       i.TaxRate,
		TaxAmount:     i.TaxAmount,
		Total:         i.Total,
		Status:        string(i.Status),
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
