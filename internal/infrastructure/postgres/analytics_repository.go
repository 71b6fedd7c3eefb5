package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetTotals cuenta catálogo, contactos y deals y suma los cobros por estado efectivo.
// Un pago pendiente con fecha límite pasada se cuenta como vencido.
func (r *AnalyticsRepo) GetTotals(ctx context.Context, userID string) (*repository.DashboardTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM songs    WHERE user_id = $1)                                              AS songs,
	    (SELECT COUNT(*) FROM contacts WHERE user_id = $1)                                              AS contacts,
	    (SELECT COUNT(*) FROM deals    WHERE user_id = $1)                                              AS deals,
	    (SELECT COALESCE(SUM(amount), 0) FROM payments
	      WHERE user_id = $1 AND status = 'paid')                                                       AS total_revenue,
	    (SELECT COALESCE(SUM(amount), 0) FROM payments
	      WHERE user_id = $1 AND status = 'pending' AND (due_date IS NULL OR due_date >= now()))        AS pending_amount,
	    (SELECT COALESCE(SUM(amount), 0) FROM payments
	      WHERE user_id = $1 AND (status = 'overdue' OR (status = 'pending' AND due_date < now())))      AS overdue_amount`

	var t repository.DashboardTotals
	if err := r.q.QueryRow(ctx, query, userID).Scan(
		&t.Songs,
		&t.Contacts,
		&t.Deals,
		&t.TotalRevenue,
		&t.PendingAmount,
		&t.OverdueAmount,
	); err != nil {
		return nil, fmt.Errorf("analytics.GetTotals: %w", err)
	}
	return &t, nil
}

// CountDealsByStatus agrupa por el valor almacenado; la normalización de etiquetas la hace el caso de uso.
func (r *AnalyticsRepo) CountDealsByStatus(ctx context.Context, userID string) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*), COALESCE(SUM(total_fee), 0)
	FROM deals
	WHERE user_id = $1
	GROUP BY status
	ORDER BY status`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountDealsByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count, &row.Value); err != nil {
			return nil, fmt.Errorf("analytics.CountDealsByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
