package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/syncdesk-api/internal/domain"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, user_id, description, amount, category, expense_date, deal_id, vendor, notes, created_at, updated_at`

type ExpenseRepo struct {
	q Querier
}

func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

func scanExpense(row rowScanner) (*entity.Expense, error) {
	var (
		e   entity.Expense
		cat string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &cat, &e.ExpenseDate, &e.DealID, &e.Vendor,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Category = entity.ExpenseCategory(cat)
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	_, err := r.q.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.UserID, e.Description, e.Amount, string(e.Category), e.ExpenseDate, e.DealID, e.Vendor, e.Notes,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) List(ctx context.Context, f repository.ListFilter, category entity.ExpenseCategory) ([]*entity.Expense, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("category", string(category))
	w.search(f.Search, "description", "vendor")
	total, err := count(ctx, r.q, "expenses", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + expenseColumns + ` FROM expenses` + w.String() + ` ORDER BY expense_date DESC` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE expenses SET description = $3, amount = $4, category = $5, expense_date = $6, deal_id = $7,
			vendor = $8, notes = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`,
		e.UserID, e.ID, e.Description, e.Amount, string(e.Category), e.ExpenseDate, e.DealID, e.Vendor, e.Notes,
		e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
