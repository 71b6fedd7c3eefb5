package scoring_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/scoring"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return now.AddDate(0, 0, -n) }

func ptr(t time.Time) *time.Time { return &t }

func paid(amount int64, due, paidOn time.Time) *entity.Payment {
	return &entity.Payment{Amount: decimal.NewFromInt(amount), Status: entity.PaymentPaid, DueDate: ptr(due), PaidDate: ptr(paidOn)}
}

func TestClassifyPaymentHistory(t *testing.T) {
	tests := []struct {
		name     string
		payments []*entity.Payment
		want     scoring.PaymentHistory
	}{
		{"sin historial", nil, scoring.HistoryFair},
		{"todo a tiempo", []*entity.Payment{paid(100, daysAgo(10), daysAgo(12)), paid(100, daysAgo(5), daysAgo(5))}, scoring.HistoryExcellent},
		{"3 de 4 a tiempo", []*entity.Payment{
			paid(100, daysAgo(40), daysAgo(41)), paid(100, daysAgo(30), daysAgo(31)),
			paid(100, daysAgo(20), daysAgo(21)), paid(100, daysAgo(10), daysAgo(2)),
		}, scoring.HistoryGood},
		{"pendiente vencido", []*entity.Payment{
			paid(100, daysAgo(10), daysAgo(12)),
			{Amount: decimal.NewFromInt(50), Status: entity.PaymentPending, DueDate: ptr(daysAgo(3))},
		}, scoring.HistoryFair},
		{"mayoría tarde", []*entity.Payment{
			paid(100, daysAgo(40), daysAgo(30)), paid(100, daysAgo(30), daysAgo(1)),
			{Status: entity.PaymentOverdue},
		}, scoring.HistoryPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, _ := scoring.ClassifyPaymentHistory(tt.payments, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_Formula(t *testing.T) {
	contact := &entity.Contact{ID: "c1", Name: "Ana", Company: "Trailer House"}
	deals := []*entity.Deal{
		{CreatedAt: daysAgo(5)}, {CreatedAt: daysAgo(20)}, {CreatedAt: daysAgo(200)},
	}
	payments := []*entity.Payment{paid(25000, daysAgo(10), daysAgo(11))}

	rel := scoring.Score(scoring.Input{Contact: contact, Deals: deals, Payments: payments, Interactions: []time.Time{daysAgo(1)}}, now)

	// deals 3×5=15, revenue 25000/50000×35=17.5, excellent 25, 3 interacciones → 7.5
	assert.Equal(t, 15.0, rel.Breakdown.Deals)
	assert.InDelta(t, 17.5, rel.Breakdown.Revenue, 0.0001)
	assert.Equal(t, 25.0, rel.Breakdown.PaymentRecord)
	assert.InDelta(t, 7.5, rel.Breakdown.Communication, 0.0001)
	assert.Equal(t, 65, rel.Score)
	assert.Equal(t, scoring.TierHealthy, rel.Tier)
	assert.Equal(t, scoring.FrequencyMedium, rel.CommunicationFrequency)
	assert.Equal(t, "25000", rel.TotalRevenue.String())
	assert.Empty(t, rel.RiskFlags)
	assert.Equal(t, daysAgo(1), *rel.LastInteraction)
}

func TestScore_CapsAndRiskFlags(t *testing.T) {
	contact := &entity.Contact{ID: "c2", Name: "Bo"}
	deals := []*entity.Deal{{CreatedAt: daysAgo(400)}}
	payments := []*entity.Payment{{Amount: decimal.NewFromInt(1000), Status: entity.PaymentOverdue}}

	rel := scoring.Score(scoring.Input{Contact: contact, Deals: deals, Payments: payments}, now)

	assert.Equal(t, scoring.HistoryPoor, rel.PaymentHistory)
	assert.Equal(t, scoring.FrequencyNone, rel.CommunicationFrequency)
	assert.Equal(t, 5, rel.Score)
	assert.Equal(t, scoring.TierAtRisk, rel.Tier)
	assert.ElementsMatch(t, []string{
		scoring.RiskOverduePayments, scoring.RiskNoRecentContact, scoring.RiskSingleDeal, scoring.RiskDeclining,
	}, rel.RiskFlags)
}

func TestScore_MaximumIs100(t *testing.T) {
	var deals []*entity.Deal
	for i := 0; i < 8; i++ {
		deals = append(deals, &entity.Deal{CreatedAt: daysAgo(i + 1)})
	}
	payments := []*entity.Payment{paid(90000, daysAgo(3), daysAgo(4))}
	rel := scoring.Score(scoring.Input{Contact: &entity.Contact{}, Deals: deals, Payments: payments}, now)
	assert.Equal(t, 100, rel.Score)
	assert.Equal(t, scoring.TierStrong, rel.Tier)
}

func TestRank(t *testing.T) {
	rels := []scoring.Relationship{{ContactName: "b", Score: 50}, {ContactName: "a", Score: 50}, {ContactName: "c", Score: 90}}
	scoring.Rank(rels)
	assert.Equal(t, []string{"c", "a", "b"}, []string{rels[0].ContactName, rels[1].ContactName, rels[2].ContactName})
}
