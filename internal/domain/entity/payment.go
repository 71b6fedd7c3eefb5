package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de cobro.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Valid indica si el estado pertenece a la enumeración.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// Payment cobro asociado a un deal.
type Payment struct {
	ID        string
	UserID    string
	DealID    string
	Amount    decimal.Decimal
	DueDate   *time.Time
	PaidDate  *time.Time
	Status    PaymentStatus
	Method    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveStatus trata como vencido un pago pendiente cuya fecha límite ya pasó.
func (p *Payment) EffectiveStatus(now time.Time) PaymentStatus {
	if p.Status == PaymentPending && p.DueDate != nil && p.DueDate.Before(now) {
		return PaymentOverdue
	}
	return p.Status
}

// PaidOnTime true si el pago se cobró sin pasar la fecha límite (o no tenía fecha límite).
func (p *Payment) PaidOnTime() bool {
	if p.Status != PaymentPaid {
		return false
	}
	if p.DueDate == nil || p.PaidDate == nil {
		return true
	}
	return !p.PaidDate.After(*p.DueDate)
}
