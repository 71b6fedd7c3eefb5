package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	DealID        string          `json:"dealId" validate:"omitempty,uuid"`
	ContactID     string          `json:"contactId" validate:"required,uuid"`
	InvoiceNumber string          `json:"invoiceNumber" validate:"required,max=50"`
	IssueDate     *FlexTime       `json:"issueDate"`
	DueDate       *FlexTime       `json:"dueDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Status        string          `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         string          `json:"notes"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string          `json:"invoiceNumber" validate:"omitempty,min=1,max=50"`
	IssueDate     *FlexTime        `json:"issueDate"`
	DueDate       *FlexTime        `json:"dueDate"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	TaxRate       *decimal.Decimal `json:"taxRate"`
	Status        *string          `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Notes         *string          `json:"notes"`
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	DealID        *string         `json:"dealId"`
	ContactID     string          `json:"contactId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
