package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de la factura.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Valid indica si el estado pertenece a la enumeración.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice factura emitida a un contacto, opcionalmente ligada a un deal.
// TaxAmount y Total se recalculan con Recalculate al crear o editar.
type Invoice struct {
	ID            string
	UserID        string
	DealID        *string
	ContactID     string
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       *time.Time
	Subtotal      decimal.Decimal
	TaxRate       decimal.Decimal // porcentaje, ej. 20 = 20%
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Status        InvoiceStatus
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate TaxAmount = Subtotal × TaxRate / 100, Total = Subtotal + TaxAmount (redondeo a 2).
func (i *Invoice) Recalculate() {
	i.TaxAmount = i.Subtotal.Mul(i.TaxRate).Div(decimal.NewFromInt(100)).Round(2)
	i.Total = i.Subtotal.Add(i.TaxAmount).Round(2)
}
