package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" validate:"omitempty,oneof=legal marketing production software travel royalties other"`
	ExpenseDate *FlexTime       `json:"expenseDate"`
	DealID      string          `json:"dealId" validate:"omitempty,uuid"`
	Vendor      string          `json:"vendor" validate:"max=200"`
	Notes       string          `json:"notes"`
}

type UpdateExpenseRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category" validate:"omitempty,oneof=legal marketing production software travel royalties other"`
	ExpenseDate *FlexTime        `json:"expenseDate"`
	DealID      *string          `json:"dealId" validate:"omitempty,uuid"`
	Vendor      *string          `json:"vendor" validate:"omitempty,max=200"`
	Notes       *string          `json:"notes"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	ExpenseDate time.Time       `json:"expenseDate"`
	DealID      *string         `json:"dealId"`
	Vendor      string          `json:"vendor"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
