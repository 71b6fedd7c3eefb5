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

type ExpenseUseCase struct {
	expenses repository.ExpenseRepository
	deals    repository.DealRepository
}

func NewExpenseUseCase(expenses repository.ExpenseRepository, deals repository.DealRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses, deals: deals}
}

func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, invalidField("amount", "must be greater than 0")
	}
	dealID := optString(in.DealID)
	if dealID != nil {
		if err := requireDeal(ctx, uc.deals, userID, *dealID); err != nil {
			return nil, err
		}
	}
	t := now()
	e := &entity.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Category:    entity.ExpenseCategory(in.Category),
		DealID:      dealID,
		Vendor:      in.Vendor,
		Notes:       in.Notes,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if d := in.ExpenseDate.Ptr(); d != nil {
		e.ExpenseDate = *d
	} else {
		e.ExpenseDate = t
	}
	if e.Category == "" {
		e.Category = entity.ExpenseOther
	}
	if err := uc.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

func (uc *ExpenseUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

func (uc *ExpenseUseCase) get(ctx context.Context, userID, id string) (*entity.Expense, error) {
	e, err := uc.expenses.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NewNotFoundError("Expense")
	}
	return e, nil
}

func (uc *ExpenseUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	e, err := uc.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, invalidField("amount", "must be greater than 0")
		}
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = entity.ExpenseCategory(*in.Category)
	}
	if d := in.ExpenseDate.Ptr(); d != nil {
		e.ExpenseDate = *d
	}
	if in.DealID != nil {
		e.DealID = optString(*in.DealID)
		if e.DealID != nil {
			if err := requireDeal(ctx, uc.deals, userID, *e.DealID); err != nil {
				return nil, err
			}
		}
	}
	if in.Vendor != nil {
		e.Vendor = *in.Vendor
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	e.UpdatedAt = now()
	if err := uc.expenses.Update(ctx, e); err != nil {
		return nil, notFound("Expense", err)
	}
	return toExpenseResponse(e), nil
}

func (uc *ExpenseUseCase) List(ctx context.Context, userID, search, category string, p dto.PageParams) (*dto.PageResult[dto.ExpenseResponse], error) {
	cat := entity.ExpenseCategory(strings.TrimSpace(category))
	if cat != "" && !cat.Valid() {
		return nil, invalidField("category", "must be one of: legal marketing production software travel royalties other")
	}
	list, total, err := uc.expenses.List(ctx, listFilter(userID, search, p), cat)
	if err != nil {
		return nil, err
	}
	return toPage(list, total, func(e *entity.Expense) dto.ExpenseResponse { return *toExpenseResponse(e) }), nil
}

func (uc *ExpenseUseCase) Delete(ctx context.Context, userID, id string) error {
	return notFound("Expense", uc.expenses.Delete(ctx, userID, id))
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
		ExpenseDate: e.ExpenseDate,
		DealID:      e.DealID,
		Vendor:      e.Vendor,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
