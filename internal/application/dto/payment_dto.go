package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	DealID   string          `json:"dealId" validate:"required,uuid"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  *FlexTime       `json:"dueDate"`
	PaidDate *FlexTime       `json:"paidDate"`
	Status   string          `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Method   string          `json:"method" validate:"max=50"`
	Notes    string          `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	DueDate  *FlexTime        `json:"dueDate"`
	PaidDate *FlexTime        `json:"paidDate"`
	Status   *string          `json:"status" validate:"omitempty,oneof=pending paid overdue"`
	Method   *string          `json:"method" validate:"omitempty,max=50"`
	Notes    *string          `json:"notes"`
}

type PaymentResponse struct {
	ID              string          `json:"id"`
	DealID          string          `json:"dealId"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         *time.Time      `json:"dueDate"`
	PaidDate        *time.Time      `json:"paidDate"`
	Status          string          `json:"status"`
	EffectiveStatus string          `json:"effectiveStatus"`
	Method          string          `json:"method"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
