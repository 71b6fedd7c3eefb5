// Package scoring calcula la puntuación de relación con cada contacto.
//
// Fórmula (0–100, redondeada):
//
//	deals          min(deals, 5) × 5                         máx 25
//	ingresos       min(ingresos_cobrados / 50 000, 1) × 35   máx 35
//	historial      excellent 25 · good 18 · fair 10 · poor 0 máx 25
//	comunicación   min(interacciones_90d, 6) / 6 × 15        máx 15
//
// Historial de pagos: liquidados = pagados + vencidos (un pendiente con fecha límite pasada cuenta
// como vencido); tasa = pagados a tiempo / liquidados. excellent si tasa ≥ 0.9 sin vencidos,
// good si tasa ≥ 0.75, fair si tasa ≥ 0.5 o si no hay historial, poor en otro caso.
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// PaymentHistory clasificación del historial de cobros.
type PaymentHistory string

const (
	HistoryExcellent PaymentHistory = "excellent"
	HistoryGood      PaymentHistory = "good"
	HistoryFair      PaymentHistory = "fair"
	HistoryPoor      PaymentHistory = "poor"
)

// Frequency frecuencia de comunicación en la ventana de 90 días.
type Frequency string

const (
	FrequencyHigh   Frequency = "high"
	FrequencyMedium Frequency = "medium"
	FrequencyLow    Frequency = "low"
	FrequencyNone   Frequency = "none"
)

// Tier nivel de la relación según la puntuación.
type Tier string

const (
	TierStrong     Tier = "strong"
	TierHealthy    Tier = "healthy"
	TierDeveloping Tier = "developing"
	TierAtRisk     Tier = "at_risk"
)

// Flags de riesgo.
const (
	RiskOverduePayments = "overdue_payments"
	RiskNoRecentContact = "no_recent_contact"
	RiskSingleDeal      = "single_deal"
	RiskDeclining       = "declining"
)

const (
	interactionWindow = 90 * 24 * time.Hour
	decliningWindow   = 180 * 24 * time.Hour
	revenueCeiling    = 50000
)

// Input datos de un contacto. Interactions incluye pitches y eventos; las fechas de creación
// de deals y LastContactedAt se cuentan automáticamente.
type Input struct {
	Contact      *entity.Contact
	Deals        []*entity.Deal
	Payments     []*entity.Payment
	Interactions []time.Time
}

// Breakdown puntos por componente.
type Breakdown struct {
	Deals         float64 `json:"deals"`
	Revenue       float64 `json:"revenue"`
	PaymentRecord float64 `json:"paymentHistory"`
	Communication float64 `json:"communication"`
}

// Relationship resultado para un contacto.
type Relationship struct {
	ContactID              string          `json:"contactId"`
	ContactName            string          `json:"contactName"`
	Company                string          `json:"company"`
	DealCount              int             `json:"dealCount"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	PaymentHistory         PaymentHistory  `json:"paymentHistory"`
	OnTimeRate             float64         `json:"onTimeRate"`
	CommunicationFrequency Frequency       `json:"communicationFrequency"`
	RecentInteractions     int             `json:"recentInteractions"`
	LastInteraction        *time.Time      `json:"lastInteraction,omitempty"`
	Score                  int             `json:"score"`
	Tier                   Tier            `json:"tier"`
	RiskFlags              []string        `json:"riskFlags"`
	Breakdown              Breakdown       `json:"breakdown"`
}

// ClassifyPaymentHistory devuelve la clasificación, la tasa de puntualidad y los vencidos.
func ClassifyPaymentHistory(payments []*entity.Payment, now time.Time) (PaymentHistory, float64, int) {
	var onTime, settled, overdue int
	for _, p := range payments {
		switch p.EffectiveStatus(now) {
		case entity.PaymentPaid:
			settled++
			if p.PaidOnTime() {
				onTime++
			}
		case entity.PaymentOverdue:
			settled++
			overdue++
		}
	}
	if settled == 0 {
		return HistoryFair, 0, 0
	}
	rate := float64(onTime) / float64(settled)
	switch {
	case rate >= 0.9 && overdue == 0:
		return HistoryExcellent, rate, overdue
	case rate >= 0.75:
		return HistoryGood, rate, overdue
	case rate >= 0.5:
		return HistoryFair, rate, overdue
	}
	return HistoryPoor, rate, overdue
}

// ClassifyFrequency traduce el número de interacciones recientes.
func ClassifyFrequency(n int) Frequency {
	switch {
	case n >= 6:
		return FrequencyHigh
	case n >= 3:
		return FrequencyMedium
	case n >= 1:
		return FrequencyLow
	}
	return FrequencyNone
}

// TierFor nivel según la puntuación.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierStrong
	case score >= 60:
		return TierHealthy
	case score >= 40:
		return TierDeveloping
	}
	return TierAtRisk
}

func historyPoints(h PaymentHistory) float64 {
	switch h {
	case HistoryExcellent:
		return 25
	case HistoryGood:
		return 18
	case HistoryFair:
		return 10
	}
	return 0
}

// Score aplica la fórmula del paquete. Es determinista para un mismo now.
func Score(in Input, now time.Time) Relationship {
	rel := Relationship{DealCount: len(in.Deals), TotalRevenue: decimal.Zero, RiskFlags: []string{}}
	if in.Contact != nil {
		rel.ContactID = in.Contact.ID
		rel.ContactName = in.Contact.Name
		rel.Company = in.Contact.Company
	}

	for _, p := range in.Payments {
		if p.Status == entity.PaymentPaid {
			rel.TotalRevenue = rel.TotalRevenue.Add(p.Amount)
		}
	}

	history, rate, overdue := ClassifyPaymentHistory(in.Payments, now)
	rel.PaymentHistory = history
	rel.OnTimeRate = math.Round(rate*100) / 100

	var moments []time.Time
	moments = append(moments, in.Interactions...)
	var recentDeals, olderDeals int
	for _, d := range in.Deals {
		moments = append(moments, d.CreatedAt)
		if now.Sub(d.CreatedAt) <= decliningWindow {
			recentDeals++
		} else {
			olderDeals++
		}
	}
	if in.Contact != nil && in.Contact.LastContactedAt != nil {
		moments = append(moments, *in.Contact.LastContactedAt)
	}
	for _, m := range moments {
		if m.After(now) {
			continue
		}
		if now.Sub(m) <= interactionWindow {
			rel.RecentInteractions++
		}
		if rel.LastInteraction == nil || m.After(*rel.LastInteraction) {
			t := m
			rel.LastInteraction = &t
		}
	}
	rel.CommunicationFrequency = ClassifyFrequency(rel.RecentInteractions)

	revenue, _ := rel.TotalRevenue.Float64()
	rel.Breakdown = Breakdown{
		Deals:         float64(min(rel.DealCount, 5)) * 5,
		Revenue:       math.Min(revenue/revenueCeiling, 1) * 35,
		PaymentRecord: historyPoints(history),
		Communication: float64(min(rel.RecentInteractions, 6)) / 6 * 15,
	}
	if rel.Breakdown.Revenue < 0 {
		rel.Breakdown.Revenue = 0
	}
	total := rel.Breakdown.Deals + rel.Breakdown.Revenue + rel.Breakdown.PaymentRecord + rel.Breakdown.Communication
	rel.Score = int(math.Round(total))
	rel.Tier = TierFor(rel.Score)

	if overdue > 0 {
		rel.RiskFlags = append(rel.RiskFlags, RiskOverduePayments)
	}
	if rel.RecentInteractions == 0 {
		rel.RiskFlags = append(rel.RiskFlags, RiskNoRecentContact)
	}
	if rel.DealCount == 1 {
		rel.RiskFlags = append(rel.RiskFlags, RiskSingleDeal)
	}
	if recentDeals == 0 && olderDeals > 0 {
		rel.RiskFlags = append(rel.RiskFlags, RiskDeclining)
	}
	return rel
}

// Rank ordena por puntuación descendente y nombre ascendente.
func Rank(rels []Relationship) {
	sort.SliceStable(rels, func(i, j int) bool {
		if rels[i].Score != rels[j].Score {
			return rels[i].Score > rels[j].Score
		}
		return rels[i].ContactName < rels[j].ContactName
	})
}
