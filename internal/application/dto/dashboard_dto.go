package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBreakdownDTO deals por etapa.
type StatusBreakdownDTO struct {
	Status string          `json:"status"`
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Value  decimal.Decimal `json:"value"`
}

// DashboardSummaryDTO respuesta de GET /dashboard.
type DashboardSummaryDTO struct {
	TotalSongs    int                  `json:"totalSongs"`
	TotalContacts int                  `json:"totalContacts"`
	TotalDeals    int                  `json:"totalDeals"`
	ActiveDeals   int                  `json:"activeDeals"`
	TotalRevenue  decimal.Decimal      `json:"totalRevenue"`
	PendingAmount decimal.Decimal      `json:"pendingAmount"`
	OverdueAmount decimal.Decimal      `json:"overdueAmount"`
	DealsByStatus []StatusBreakdownDTO `json:"dealsByStatus"`
	RecentDeals   []DealResponse       `json:"recentDeals"`
}

// MonthlyRevenueDTO total cobrado en un mes ("2026-01").
type MonthlyRevenueDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// RevenueAnalyticsDTO ingresos cobrados por período y crecimiento porcentual.
type RevenueAnalyticsDTO struct {
	CurrentMonth    decimal.Decimal     `json:"currentMonth"`
	PreviousMonth   decimal.Decimal     `json:"previousMonth"`
	MonthGrowth     float64             `json:"monthGrowth"`
	CurrentQuarter  decimal.Decimal     `json:"currentQuarter"`
	PreviousQuarter decimal.Decimal     `json:"previousQuarter"`
	QuarterGrowth   float64             `json:"quarterGrowth"`
	CurrentYear     decimal.Decimal     `json:"currentYear"`
	PreviousYear    decimal.Decimal     `json:"previousYear"`
	YearGrowth      float64             `json:"yearGrowth"`
	Monthly         []MonthlyRevenueDTO `json:"monthly"`
}

// PipelineStageDTO estadísticas de una etapa.
type PipelineStageDTO struct {
	Status             string          `json:"status"`
	Label              string          `json:"label"`
	Count              int             `json:"count"`
	TotalValue         decimal.Decimal `json:"totalValue"`
	AverageDaysInStage float64         `json:"averageDaysInStage"`
}

// DealPerformanceDTO rendimiento del pipeline.
type DealPerformanceDTO struct {
	TotalDeals             int                `json:"totalDeals"`
	CompletedDeals         int                `json:"completedDeals"`
	ConversionRate         float64            `json:"conversionRate"`
	AverageDealValue       decimal.Decimal    `json:"averageDealValue"`
	AverageTimeToCloseDays float64            `json:"averageTimeToCloseDays"`
	Pipeline               []PipelineStageDTO `json:"pipeline"`
}

// TopSongDTO canción por valor total de deals.
type TopSongDTO struct {
	SongID     string          `json:"songId"`
	Title      string          `json:"title"`
	Artist     string          `json:"artist"`
	DealCount  int             `json:"dealCount"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// AdvancedMetricsDTO respuesta de GET /dashboard/advanced-metrics.
type AdvancedMetricsDTO struct {
	Revenue  RevenueAnalyticsDTO `json:"revenue"`
	Deals    DealPerformanceDTO  `json:"deals"`
	TopSongs []TopSongDTO        `json:"topSongs"`
}

// SmartAlertDTO alerta derivada de los datos.
type SmartAlertDTO struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Priority         string     `json:"priority"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	EntityType       string     `json:"entityType,omitempty"`
	EntityID         string     `json:"entityId,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	SuggestedActions []string   `json:"suggestedActions"`
}
