package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/syncdesk-api/internal/application/analytics"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/repository"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeAnalytics struct {
	totals *repository.DashboardTotals
	rows   []repository.StatusCount
	err    error
}

func (f *fakeAnalytics) GetTotals(context.Context, string) (*repository.DashboardTotals, error) {
	return f.totals, f.err
}

func (f *fakeAnalytics) CountDealsByStatus(context.Context, string) ([]repository.StatusCount, error) {
	return f.rows, nil
}

type fakeDeals struct {
	repository.DealRepository
	deals   []*entity.Deal
	gotUser string
	limit   int
}

func (f *fakeDeals) List(_ context.Context, flt repository.DealFilter) ([]*entity.Deal, int, error) {
	f.gotUser, f.limit = flt.UserID, flt.Limit
	return f.deals, len(f.deals), nil
}

func (f *fakeDeals) ListAll(context.Context, string) ([]*entity.Deal, error) { return f.deals, nil }

type fakeSongs struct {
	repository.SongRepository
	err error
}

func (f *fakeSongs) ListAll(context.Context, string) ([]*entity.Song, error) { return nil, f.err }

type fakeContacts struct{ repository.ContactRepository }

func (fakeContacts) ListAll(context.Context, string) ([]*entity.Contact, error) { return nil, nil }

type fakePayments struct{ repository.PaymentRepository }

func (fakePayments) ListAll(context.Context, string) ([]*entity.Payment, error) { return nil, nil }

type fakePitches struct{ repository.PitchRepository }

func (fakePitches) ListAll(context.Context, string) ([]*entity.Pitch, error) { return nil, nil }

type fakeEvents struct{ repository.CalendarEventRepository }

func (fakeEvents) ListAll(context.Context, string) ([]*entity.CalendarEvent, error) { return nil, nil }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestStatusBreakdown_ZeroFillsAndNormalizes(t *testing.T) {
	out := analytics.StatusBreakdown([]repository.StatusCount{
		{Status: "new_request", Count: 2, Value: dec(100)},
		{Status: "New Request", Count: 1, Value: dec(50)},
		{Status: "completed", Count: 4, Value: dec(9000)},
		{Status: "archived", Count: 7},
	})
	require.Len(t, out, len(entity.PipelineStatuses))
	for i, s := range entity.PipelineStatuses {
		assert.Equal(t, string(s), out[i].Status)
	}
	assert.Equal(t, 3, out[0].Count)
	assert.True(t, out[0].Value.Equal(dec(150)))

	total := 0
	for _, s := range out {
		total += s.Count
	}
	assert.Equal(t, 7, total, "los estados desconocidos se descartan")
}

func TestGetSummary(t *testing.T) {
	deals := &fakeDeals{deals: []*entity.Deal{
		{ID: "d1", ProjectName: "Trailer", Status: entity.StatusQuoted, CreatedAt: day(2026, 5, 1), QuotedDate: ptr(day(2026, 5, 2)), TotalFee: fee(1200)},
	}}
	uc := analytics.NewDashboardUseCase(analytics.Repos{
		Analytics: &fakeAnalytics{
			totals: &repository.DashboardTotals{
				Songs: 12, Contacts: 4, Deals: 1,
				TotalRevenue: dec(5000), PendingAmount: dec(1200), OverdueAmount: dec(0),
			},
			rows: []repository.StatusCount{{Status: "quoted", Count: 1, Value: dec(1200)}},
		},
		Deals: deals,
	})

	sum, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", deals.gotUser)
	assert.Equal(t, 5, deals.limit)
	assert.Equal(t, 12, sum.TotalSongs)
	assert.Equal(t, 1, sum.ActiveDeals)
	assert.True(t, sum.TotalRevenue.Equal(dec(5000)))
	require.Len(t, sum.RecentDeals, 1)
	assert.Equal(t, "Quoted", sum.RecentDeals[0].StatusLabel)
	assert.Len(t, sum.DealsByStatus, len(entity.PipelineStatuses))
}

func TestGetSummary_ActiveDealsUseNormalizedStatus(t *testing.T) {
	uc := analytics.NewDashboardUseCase(analytics.Repos{
		Analytics: &fakeAnalytics{
			totals: &repository.DashboardTotals{Deals: 6},
			rows: []repository.StatusCount{
				{Status: "Completed", Count: 2},
				{Status: "not used", Count: 1},
				{Status: "Quoted", Count: 2},
				{Status: "out-for-signature", Count: 1},
			},
		},
		Deals: &fakeDeals{},
	})

	sum, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.ActiveDeals)
	completed := 0
	for _, s := range sum.DealsByStatus {
		if s.Status == string(entity.StatusCompleted) {
			completed = s.Count
		}
	}
	assert.Equal(t, 2, completed)
}

func TestGetSummary_TotalsError(t *testing.T) {
	boom := errors.New("db caída")
	uc := analytics.NewDashboardUseCase(analytics.Repos{
		Analytics: &fakeAnalytics{err: boom},
		Deals:     &fakeDeals{},
	})
	_, err := uc.GetSummary(context.Background(), "user-1")
	assert.ErrorIs(t, err, boom)
}

func TestGetAdvancedMetrics_LoadError(t *testing.T) {
	boom := errors.New("timeout")
	uc := analytics.NewDashboardUseCase(analytics.Repos{
		Songs:    &fakeSongs{err: boom},
		Contacts: fakeContacts{},
		Deals:    &fakeDeals{},
		Payments: fakePayments{},
		Pitches:  fakePitches{},
		Events:   fakeEvents{},
	})
	_, err := uc.GetAdvancedMetrics(context.Background(), "user-1")
	assert.ErrorIs(t, err, boom)

	_, err = uc.GetSmartAlerts(context.Background(), "user-1")
	assert.ErrorIs(t, err, boom)
}

func TestGetClientRelationships(t *testing.T) {
	uc := analytics.NewDashboardUseCase(analytics.Repos{
		Songs:    &fakeSongs{},
		Contacts: fakeContacts{},
		Deals:    &fakeDeals{},
		Payments: fakePayments{},
		Pitches:  fakePitches{},
		Events:   fakeEvents{},
	})
	rels, err := uc.GetClientRelationships(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, rels)
}
