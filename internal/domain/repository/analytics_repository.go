package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusCount conteo de deals por etapa.
type StatusCount struct {
	Status string
	Count  int
	Value  decimal.Decimal
}

// DashboardTotals totales del resumen del dashboard.
type DashboardTotals struct {
	Songs         int
	Contacts      int
	Deals         int
	TotalRevenue  decimal.Decimal // pagos cobrados
	PendingAmount decimal.Decimal // pendientes no vencidos
	OverdueAmount decimal.Decimal // vencidos o pendientes con fecha pasada
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
// Las métricas avanzadas se calculan en la capa de aplicación a partir de los listados completos.
type AnalyticsRepository interface {
	GetTotals(ctx context.Context, userID string) (*DashboardTotals, error)
	CountDealsByStatus(ctx context.Context, userID string) ([]StatusCount, error)
}
