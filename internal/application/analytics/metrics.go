package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

const topSongsLimit = 5

// Growth variación porcentual redondeada a 1 decimal. Con período anterior en cero:
// 100 si hubo ingresos en el actual, 0 si tampoco.
func Growth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	g, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return g
}

// revenueDate fecha contable de un pago cobrado.
func revenueDate(p *entity.Payment) time.Time {
	if p.PaidDate != nil {
		return *p.PaidDate
	}
	return p.UpdatedAt
}

func quarterStart(t time.Time) time.Time {
	m := ((int(t.Month())-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, t.Location())
}

// RevenueAnalytics totales cobrados de mes, trimestre y año frente al período anterior,
// más la serie mensual del año en curso.
func RevenueAnalytics(payments []*entity.Payment, now time.Time) dto.RevenueAnalyticsDTO {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	qStart := quarterStart(now)
	prevQStart := qStart.AddDate(0, -3, 0)
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	prevYearStart := yearStart.AddDate(-1, 0, 0)

	sum := func(from, to time.Time) decimal.Decimal {
		total := decimal.Zero
		for _, p := range payments {
			if p.Status != entity.PaymentPaid {
				continue
			}
			d := revenueDate(p)
			if !d.Before(from) && d.Before(to) {
				total = total.Add(p.Amount)
			}
		}
		return total.Round(2)
	}

	end := now.Add(time.Nanosecond)
	out := dto.RevenueAnalyticsDTO{
		CurrentMonth:    sum(monthStart, end),
		PreviousMonth:   sum(prevMonthStart, monthStart),
		CurrentQuarter:  sum(qStart, end),
		PreviousQuarter: sum(prevQStart, qStart),
		CurrentYear:     sum(yearStart, end),
		PreviousYear:    sum(prevYearStart, yearStart),
	}
	out.MonthGrowth = Growth(out.CurrentMonth, out.PreviousMonth)
	out.QuarterGrowth = Growth(out.CurrentQuarter, out.PreviousQuarter)
	out.YearGrowth = Growth(out.CurrentYear, out.PreviousYear)

	out.Monthly = make([]dto.MonthlyRevenueDTO, 0, int(now.Month()))
	for m := yearStart; !m.After(monthStart); m = m.AddDate(0, 1, 0) {
		out.Monthly = append(out.Monthly, dto.MonthlyRevenueDTO{
			Month: m.Format("2006-01"),
			Total: sum(m, m.AddDate(0, 1, 0)),
		})
	}
	return out
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// DealPerformance conversión, valor medio, tiempo medio de cierre y estadísticas por etapa.
func DealPerformance(deals []*entity.Deal, now time.Time) dto.DealPerformanceDTO {
	out := dto.DealPerformanceDTO{TotalDeals: len(deals), AverageDealValue: decimal.Zero}

	feeSum, feeCount := decimal.Zero, 0
	closeDays, closeCount := 0.0, 0
	type stageAgg struct {
		count    int
		value    decimal.Decimal
		days     float64
		daysSeen int
	}
	stages := make(map[entity.DealStatus]*stageAgg, len(entity.PipelineStatuses))
	for _, s := range entity.PipelineStatuses {
		stages[s] = &stageAgg{value: decimal.Zero}
	}

	for _, d := range deals {
		if d.Status == entity.StatusCompleted {
			out.CompletedDeals++
			if d.CompletedDate != nil {
				closeDays += daysSince(d.CreatedAt, *d.CompletedDate)
				closeCount++
			}
		}
		if d.TotalFee.Valid {
			feeSum = feeSum.Add(d.TotalFee.Decimal)
			feeCount++
		}
		if agg, ok := stages[d.Status]; ok {
			agg.count++
			agg.value = agg.value.Add(d.FeeValue())
		}
		// Días por etapa a partir de fechas consecutivas; la etapa actual abierta cuenta hasta now.
		h := d.StageHistory()
		for i, e := range h {
			var end time.Time
			switch {
			case i+1 < len(h):
				end = h[i+1].EnteredAt
			case e.Status == d.Status && d.Status.IsOpen():
				end = now
			default:
				continue
			}
			if agg, ok := stages[e.Status]; ok {
				agg.days += daysSince(e.EnteredAt, end)
				agg.daysSeen++
			}
		}
	}

	if out.TotalDeals > 0 {
		out.ConversionRate = round1(float64(out.CompletedDeals) / float64(out.TotalDeals) * 100)
	}
	if feeCount > 0 {
		out.AverageDealValue = feeSum.Div(decimal.NewFromInt(int64(feeCount))).Round(2)
	}
	if closeCount > 0 {
		out.AverageTimeToCloseDays = round1(closeDays / float64(closeCount))
	}
	out.Pipeline = make([]dto.PipelineStageDTO, 0, len(entity.PipelineStatuses))
	for _, s := range entity.PipelineStatuses {
		agg := stages[s]
		st := dto.PipelineStageDTO{
			Status:     string(s),
			Label:      s.Label(),
			Count:      agg.count,
			TotalValue: agg.value.Round(2),
		}
		if agg.daysSeen > 0 {
			st.AverageDaysInStage = round1(agg.days / float64(agg.daysSeen))
		}
		out.Pipeline = append(out.Pipeline, st)
	}
	return out
}

// TopSongs canciones ordenadas por valor total de sus deals (desempate por número de deals y título).
func TopSongs(deals []*entity.Deal, songs []*entity.Song, limit int) []dto.TopSongDTO {
	byID := make(map[string]*entity.Song, len(songs))
	for _, s := range songs {
		byID[s.ID] = s
	}
	agg := make(map[string]*dto.TopSongDTO)
	for _, d := range deals {
		t, ok := agg[d.SongID]
		if !ok {
			t = &dto.TopSongDTO{SongID: d.SongID, TotalValue: decimal.Zero}
			if s := byID[d.SongID]; s != nil {
				t.Title, t.Artist = s.Title, s.Artist
			}
			agg[d.SongID] = t
		}
		t.DealCount++
		t.TotalValue = t.TotalValue.Add(d.FeeValue())
	}
	out := make([]dto.TopSongDTO, 0, len(agg))
	for _, t := range agg {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalValue.Cmp(out[j].TotalValue); c != 0 {
			return c > 0
		}
		if out[i].DealCount != out[j].DealCount {
			return out[i].DealCount > out[j].DealCount
		}
		return out[i].Title < out[j].Title
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AdvancedMetrics combina las tres secciones.
func AdvancedMetrics(s *Snapshot, now time.Time) *dto.AdvancedMetricsDTO {
	return &dto.AdvancedMetricsDTO{
		Revenue:  RevenueAnalytics(s.Payments, now),
		Deals:    DealPerformance(s.Deals, now),
		TopSongs: TopSongs(s.Deals, s.Songs, topSongsLimit),
	}
}
