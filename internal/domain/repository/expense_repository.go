package repository

import (
	"context"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, userID, id string) (*entity.Expense, error)
	List(ctx context.Context, f ListFilter, category entity.ExpenseCategory) ([]*entity.Expense, int, error)
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, userID, id string) error
}
