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

// PaymentUseCase cobros de los deals.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	deals    repository.DealRepository
}

func NewPaymentUseCase(payments repository.PaymentRepository, deals repository.DealRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, deals: deals}
}

// Create registra un cobro. Un pago marcado como pagado sin fecha toma la fecha actual.
func (uc *PaymentUseCase) Create(ctx context.Context, userID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, invalidField("amount", "must be greater than 0")
	}
	if err := requireDeal(ctx, uc.deals, userID, in.DealID); err != nil {
		return nil, err
	}
	t := now()
	p := &entity.Payment{
		ID:        uuid.New().String(),
		UserID:    userID,
		DealID:    in.DealID,
		Amount:    in.Amount,
		DueDate:   in.DueDate.Ptr(),
		PaidDate:  in.PaidDate.Ptr(),
		Status:    entity.PaymentStatus(strings.TrimSpace(in.Status)),
		Method:    in.Method,
		Notes:     in.Notes,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if p.Status == "" {
		p.Status = entity.PaymentPending
	}
	settlePaidDate(p)
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

func (uc *PaymentUseCase) GetByID(ctx context.Context, userID, id string) (*dto.PaymentResponse, error) {
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

func (uc *PaymentUseCase) get(ctx context.Context, userID, id string) (*entity.Payment, error) {
	p, err := uc.payments.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("Payment")
	}
	return p, nil
}

func (uc *PaymentUseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, invalidField("amount", "must be greater than 0")
		}
		p.Amount = *in.Amount
	}
	if in.DueDate != nil {
		p.DueDate = in.DueDate.Ptr()
	}
	if in.PaidDate != nil {
		p.PaidDate = in.PaidDate.Ptr()
	}
	if in.Status != nil {
		p.Status = entity.PaymentStatus(*in.Status)
	}
	if in.Method != nil {
		p.Method = *in.Method
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	settlePaidDate(p)
	p.UpdatedAt = now()
	if err := uc.payments.Update(ctx, p); err != nil {
		return nil, notFound("Payment", err)
	}
	return toPaymentResponse(p), nil
}

// PaymentListFilter filtros opcionales del listado.
type PaymentListFilter struct {
	Search string
	DealID string
	Status string
}

func (uc *PaymentUseCase) List(ctx context.Context, userID string, f PaymentListFilter, p dto.PageParams) (*dto.PageResult[dto.PaymentResponse], error) {
	status := entity.PaymentStatus(strings.TrimSpace(f.Status))
	if status != "" && !status.Valid() {
		return nil, invalidField("status", "must be one of: pending paid overdue")
	}
	list, total, err := uc.payments.List(ctx, repository.PaymentFilter{
		ListFilter: listFilter(userID, f.Search, p),
		DealID:     f.DealID,
		Status:     status,
	})
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(p *entity.Payment) dto.PaymentResponse { return *toPaymentResponse(p) }), nil
}

func (uc *PaymentUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Payment", uc.payments.Delete(ctx, userID, id))
}

func settlePaidDate(p *entity.Payment) {
	if p.Status == entity.PaymentPaid && p.PaidDate == nil {
		t := now()
		p.PaidDate = &t
	}
}

func requireDeal(ctx context.Context, deals repository.DealRepository, userID, dealID string) error {
	d, err := deals.GetByID(ctx, userID, dealID)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.NewNotFoundError("Deal")
	}
	return nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:              p.ID,
		DealID:          p.DealID,
		Amount:          p.Amount,
		DueDate:         p.DueDate,
		PaidDate:        p.PaidDate,
		Status:          string(p.Status),
		EffectiveStatus: string(p.EffectiveStatus(now())),
		Method:          p.Method,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
