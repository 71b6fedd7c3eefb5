package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/analytics"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

func TestGrowth(t *testing.T) {
	tests := []struct {
		cur, prev int64
		want      float64
	}{
		{0, 0, 0},
		{100, 0, 100},
		{150, 100, 50},
		{50, 100, -50},
		{1, 3, -66.7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, analytics.Growth(dec(tt.cur), dec(tt.prev)), "%d vs %d", tt.cur, tt.prev)
	}
}

func TestRevenueAnalytics(t *testing.T) {
	payments := []*entity.Payment{
		{Status: entity.PaymentPaid, Amount: dec(1000), PaidDate: ptr(day(2026, 5, 3))},
		{Status: entity.PaymentPaid, Amount: dec(500), PaidDate: ptr(day(2026, 4, 10))},
		{Status: entity.PaymentPaid, Amount: dec(200), PaidDate: ptr(day(2026, 2, 1))},
		{Status: entity.PaymentPaid, Amount: dec(300), PaidDate: ptr(day(2025, 6, 1))},
		{Status: entity.PaymentPending, Amount: dec(999), DueDate: ptr(day(2026, 5, 1))},
	}
	r := analytics.RevenueAnalytics(payments, now)

	assert.True(t, r.CurrentMonth.Equal(dec(1000)), r.CurrentMonth.String())
	assert.True(t, r.PreviousMonth.Equal(dec(500)))
	assert.Equal(t, 100.0, r.MonthGrowth)
	assert.True(t, r.CurrentQuarter.Equal(dec(1500)))
	assert.True(t, r.PreviousQuarter.Equal(dec(200)))
	assert.Equal(t, 650.0, r.QuarterGrowth)
	assert.True(t, r.CurrentYear.Equal(dec(1700)))
	assert.True(t, r.PreviousYear.Equal(dec(300)))
	assert.Equal(t, 466.7, r.YearGrowth)

	require.Len(t, r.Monthly, 5)
	assert.Equal(t, "2026-01", r.Monthly[0].Month)
	assert.Equal(t, "2026-05", r.Monthly[4].Month)
	assert.True(t, r.Monthly[4].Total.Equal(dec(1000)))
	assert.True(t, r.Monthly[2].Total.IsZero())
}

func TestDealPerformance(t *testing.T) {
	deals := []*entity.Deal{
		{Status: entity.StatusCompleted, CreatedAt: day(2026, 1, 1), CompletedDate: ptr(day(2026, 1, 31)), TotalFee: fee(3000)},
		{Status: entity.StatusQuoted, CreatedAt: day(2026, 5, 5), QuotedDate: ptr(day(2026, 5, 10)), TotalFee: fee(1000)},
		{Status: entity.StatusNewRequest, CreatedAt: day(2026, 5, 13).Add(12 * time.Hour)},
	}
	p := analytics.DealPerformance(deals, now)

	assert.Equal(t, 3, p.TotalDeals)
	assert.Equal(t, 1, p.CompletedDeals)
	assert.Equal(t, 33.3, p.ConversionRate)
	assert.True(t, p.AverageDealValue.Equal(dec(2000)), p.AverageDealValue.String())
	assert.Equal(t, 30.0, p.AverageTimeToCloseDays)

	require.Len(t, p.Pipeline, len(entity.PipelineStatuses))
	byStatus := map[string]int{}
	for i, s := range p.Pipeline {
		byStatus[s.Status] = i
	}
	nr := p.Pipeline[byStatus["new_request"]]
	assert.Equal(t, "New Request", nr.Label)
	assert.Equal(t, 1, nr.Count)
	assert.Equal(t, 12.3, nr.AverageDaysInStage)

	q := p.Pipeline[byStatus["quoted"]]
	assert.Equal(t, 1, q.Count)
	assert.True(t, q.TotalValue.Equal(dec(1000)))
	assert.Equal(t, 5.5, q.AverageDaysInStage)

	c := p.Pipeline[byStatus["completed"]]
	assert.Equal(t, 1, c.Count)
	assert.Zero(t, c.AverageDaysInStage)
}

func TestDealPerformance_Empty(t *testing.T) {
	p := analytics.DealPerformance(nil, now)
	assert.Zero(t, p.ConversionRate)
	assert.True(t, p.AverageDealValue.IsZero())
	assert.Len(t, p.Pipeline, len(entity.PipelineStatuses))
}

func TestTopSongs(t *testing.T) {
	songs := []*entity.Song{{ID: "s1", Title: "One"}, {ID: "s2", Title: "Two"}, {ID: "s3", Title: "Three"}}
	deals := []*entity.Deal{
		{SongID: "s1", TotalFee: fee(1000)},
		{SongID: "s1", TotalFee: fee(500)},
		{SongID: "s2", TotalFee: fee(2000)},
		{SongID: "s3"},
	}
	top := analytics.TopSongs(deals, songs, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Two", top[0].Title)
	assert.Equal(t, "One", top[1].Title)
	assert.Equal(t, 2, top[1].DealCount)
	assert.True(t, top[1].TotalValue.Equal(dec(1500)))
}
