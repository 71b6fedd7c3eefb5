package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categoría de gasto.
type ExpenseCategory string

const (
	ExpenseLegal      ExpenseCategory = "legal"
	ExpenseMarketing  ExpenseCategory = "marketing"
	ExpenseProduction ExpenseCategory = "production"
	ExpenseSoftware   ExpenseCategory = "software"
	ExpenseTravel     ExpenseCategory = "travel"
	ExpenseRoyalties  ExpenseCategory = "royalties"
	ExpenseOther      ExpenseCategory = "other"
)

// Valid indica si la categoría pertenece a la enumeración.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseLegal, ExpenseMarketing, ExpenseProduction, ExpenseSoftware, ExpenseTravel, ExpenseRoyalties, ExpenseOther:
		return true
	}
	return false
}

type Expense struct {
	ID          string
	UserID      string
	Description string
	Amount      decimal.Decimal
	Category    ExpenseCategory
	ExpenseDate time.Time
	DealID      *string
	Vendor      string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
