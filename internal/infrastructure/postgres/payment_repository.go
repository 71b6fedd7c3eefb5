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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, user_id, deal_id, amount, due_date, paid_date, status, method, notes, created_at, updated_at`

// PaymentRepo implementación de PaymentRepository.
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row rowScanner) (*entity.Payment, error) {
	var (
		p      entity.Payment
		status string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.DealID, &p.Amount, &p.DueDate, &p.PaidDate, &status, &p.Method,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = entity.PaymentStatus(status)
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.DealID, p.Amount, p.DueDate, p.PaidDate, string(p.Status), p.Method, p.Notes,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByID(ctx context.Context, userID, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 AND id = $2`, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// List con status=overdue incluye también los pendientes con fecha límite vencida.
func (r *PaymentRepo) List(ctx context.Context, f repository.PaymentFilter) ([]*entity.Payment, int, error) {
	w := newWhere(f.UserID)
	w.eqIf("deal_id", f.DealID)
	switch f.Status {
	case "":
	case entity.PaymentOverdue:
		w.cond("(status = 'overdue' OR (status = 'pending' AND due_date < now()))")
	case entity.PaymentPending:
		w.cond("status = 'pending' AND (due_date IS NULL OR due_date >= now())")
	default:
		w.eq("status", string(f.Status))
	}
	w.search(f.Search, "method", "notes")
	total, err := count(ctx, r.q, "payments", w)
	if err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + paymentColumns + ` FROM payments` + w.String() +
		` ORDER BY due_date NULLS LAST, created_at DESC` + w.page(f.Limit, f.Offset)
	list, err := r.query(ctx, query, w.args...)
	return list, total, err
}

func (r *PaymentRepo) ListAll(ctx context.Context, userID string) ([]*entity.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PaymentRepo) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PaymentRepo) Update(ctx context.Context, p *entity.Payment) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE payments SET deal_id = $3, amount = $4, due_date = $5, paid_date = $6, status = $7, method = $8,
			notes = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`,
		p.UserID, p.ID, p.DealID, p.Amount, p.DueDate, p.PaidDate, string(p.Status), p.Method, p.Notes, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PaymentRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM payments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
