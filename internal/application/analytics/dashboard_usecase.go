// Package analytics contiene los casos de uso del dashboard: resumen, métricas avanzadas,
// alertas y puntuación de relaciones con clientes. Todo se recalcula en cada petición.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/application/usecase"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
	"github.com/jhoicas/syncdesk-api/internal/domain/scoring"
)

const dashboardRecentDeals = 5 // deals recientes en el widget del dashboard

// Repos puertos de lectura que usa el dashboard.
type Repos struct {
	Analytics repository.AnalyticsRepository
	Songs     repository.SongRepository
	Contacts  repository.ContactRepository
	Deals     repository.DealRepository
	Payments  repository.PaymentRepository
	Pitches   repository.PitchRepository
	Events    repository.CalendarEventRepository
}

// DashboardUseCase agrega métricas de negocio a partir de las tablas del usuario.
type DashboardUseCase struct {
	repos Repos
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos Repos) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

// GetSummary totales, deals por etapa y deals recientes.
//
// Tres llamadas en paralelo:
//  1. GetTotals            → conteos y montos
//  2. CountDealsByStatus   → deals por etapa
//  3. Deals.List(limit 5)  → deals recientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		totals *repository.DashboardTotals
		err    error
	}
	type statusResult struct {
		rows []repository.StatusCount
		err  error
	}
	type recentResult struct {
		deals []*entity.Deal
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	statusCh := make(chan statusResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		t, err := uc.repos.Analytics.GetTotals(ctx, userID)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.repos.Analytics.CountDealsByStatus(ctx, userID)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		deals, _, err := uc.repos.Deals.List(ctx, repository.DealFilter{
			ListFilter: repository.ListFilter{UserID: userID, Limit: dashboardRecentDeals},
		})
		recentCh <- recentResult{deals, err}
	}()

	totals := <-totalsCh
	status := <-statusCh
	recent := <-recentCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: deals por etapa: %w", status.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: deals recientes: %w", recent.err)
	}

	t := totals.totals
	byStatus := StatusBreakdown(status.rows)
	out := &dto.DashboardSummaryDTO{
		TotalSongs:    t.Songs,
		TotalContacts: t.Contacts,
		TotalDeals:    t.Deals,
		ActiveDeals:   activeDeals(byStatus),
		TotalRevenue:  t.TotalRevenue.Round(2),
		PendingAmount: t.PendingAmount.Round(2),
		OverdueAmount: t.OverdueAmount.Round(2),
		DealsByStatus: byStatus,
		RecentDeals:   make([]dto.DealResponse, 0, len(recent.deals)),
	}
	for _, d := range recent.deals {
		out.RecentDeals = append(out.RecentDeals, *usecase.ToDealResponse(d))
	}
	return out, nil
}

// StatusBreakdown completa todas las etapas del pipeline (con cero) en orden canónico.
// Estados almacenados con variantes ("new request") se agregan a su valor canónico.
func StatusBreakdown(rows []repository.StatusCount) []dto.StatusBreakdownDTO {
	counts := make(map[entity.DealStatus]*dto.StatusBreakdownDTO, len(entity.PipelineStatuses))
	out := make([]dto.StatusBreakdownDTO, 0, len(entity.PipelineStatuses))
	for _, s := range entity.PipelineStatuses {
		counts[s] = &dto.StatusBreakdownDTO{Status: string(s), Label: s.Label(), Value: decimal.Zero}
	}
	for _, r := range rows {
		st, ok := entity.NormalizeDealStatus(r.Status)
		if !ok {
			continue
		}
		c := counts[st]
		c.Count += r.Count
		c.Value = c.Value.Add(r.Value)
	}
	for _, s := range entity.PipelineStatuses {
		out = append(out, *counts[s])
	}
	return out
}

// activeDeals suma las etapas abiertas del desglose ya normalizado.
func activeDeals(byStatus []dto.StatusBreakdownDTO) int {
	n := 0
	for _, s := range byStatus {
		if entity.DealStatus(s.Status).IsOpen() {
			n += s.Count
		}
	}
	return n
}

// GetAdvancedMetrics ingresos, rendimiento del pipeline y canciones top.
func (uc *DashboardUseCase) GetAdvancedMetrics(ctx context.Context, userID string) (*dto.AdvancedMetricsDTO, error) {
	snap, err := uc.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AdvancedMetrics(snap, uc.now()), nil
}

// GetSmartAlerts alertas priorizadas.
func (uc *DashboardUseCase) GetSmartAlerts(ctx context.Context, userID string) ([]dto.SmartAlertDTO, error) {
	snap, err := uc.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SmartAlerts(snap, uc.now()), nil
}

// GetClientRelationships puntuación por contacto.
func (uc *DashboardUseCase) GetClientRelationships(ctx context.Context, userID string) ([]scoring.Relationship, error) {
	snap, err := uc.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ClientRelationships(snap, uc.now()), nil
}

// loadSnapshot carga en paralelo todas las colecciones del usuario.
func (uc *DashboardUseCase) loadSnapshot(ctx context.Context, userID string) (*Snapshot, error) {
	snap := &Snapshot{}
	loads := []struct {
		name string
		fn   func() error
	}{
		{"canciones", func() (err error) { snap.Songs, err = uc.repos.Songs.ListAll(ctx, userID); return }},
		{"contactos", func() (err error) { snap.Contacts, err = uc.repos.Contacts.ListAll(ctx, userID); return }},
		{"deals", func() (err error) { snap.Deals, err = uc.repos.Deals.ListAll(ctx, userID); return }},
		{"pagos", func() (err error) { snap.Payments, err = uc.repos.Payments.ListAll(ctx, userID); return }},
		{"pitches", func() (err error) { snap.Pitches, err = uc.repos.Pitches.ListAll(ctx, userID); return }},
		{"eventos", func() (err error) { snap.Events, err = uc.repos.Events.ListAll(ctx, userID); return }},
	}

	// Cada goroutine escribe un campo distinto del snapshot; se lee solo tras recibir todos los resultados.
	errCh := make(chan error, len(loads))
	for _, l := range loads {
		l := l
		go func() {
			if err := l.fn(); err != nil {
				errCh <- fmt.Errorf("dashboard: %s: %w", l.name, err)
				return
			}
			errCh <- nil
		}()
	}
	var firstErr error
	for range loads {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return snap, nil
}
