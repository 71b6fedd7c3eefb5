package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// Prioridades de alerta, de mayor a menor.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Tipos de alerta.
const (
	AlertPaymentOverdue  = "payment_overdue"
	AlertPaymentDueSoon  = "payment_due_soon"
	AlertPitchFollowUp   = "pitch_follow_up"
	AlertDealIdle        = "deal_idle"
	AlertAirDateUpcoming = "air_date_upcoming"
	AlertLowConversion   = "low_conversion"
)

const (
	paymentDueWindow     = 7 * 24 * time.Hour
	airDateWindow        = 14 * 24 * time.Hour
	idleThresholdDays    = 30
	lowConversionRate    = 20.0
	lowConversionMinimum = 10
)

var priorityRank = map[string]int{PriorityUrgent: 0, PriorityHigh: 1, PriorityMedium: 2, PriorityLow: 3}

// SmartAlerts deriva las alertas accionables, ordenadas por prioridad y luego por fecha.
func SmartAlerts(s *Snapshot, now time.Time) []dto.SmartAlertDTO {
	deals := s.dealsByID()
	project := func(dealID string) string {
		if d := deals[dealID]; d != nil {
			return d.ProjectName
		}
		return "unknown deal"
	}
	alerts := make([]dto.SmartAlertDTO, 0)
	add := func(a dto.SmartAlertDTO) {
		a.ID = a.Type + ":" + a.EntityID
		alerts = append(alerts, a)
	}

	for _, p := range s.Payments {
		if p.Status == entity.PaymentPaid || p.DueDate == nil {
			continue
		}
		due := *p.DueDate
		switch {
		case p.EffectiveStatus(now) == entity.PaymentOverdue:
			add(dto.SmartAlertDTO{
				Type:             AlertPaymentOverdue,
				Priority:         PriorityUrgent,
				Title:            "Overdue payment",
				Message:          fmt.Sprintf("Payment of %s for %q is %d days overdue", p.Amount.StringFixed(2), project(p.DealID), int(daysSince(due, now))),
				EntityType:       "payment",
				EntityID:         p.ID,
				Date:             &due,
				SuggestedActions: []string{"Send a payment reminder", "Mark as paid if already received"},
			})
		case !due.After(now.Add(paymentDueWindow)):
			add(dto.SmartAlertDTO{
				Type:             AlertPaymentDueSoon,
				Priority:         PriorityHigh,
				Title:            "Payment due soon",
				Message:          fmt.Sprintf("Payment of %s for %q is due on %s", p.Amount.StringFixed(2), project(p.DealID), due.Format("2006-01-02")),
				EntityType:       "payment",
				EntityID:         p.ID,
				Date:             &due,
				SuggestedActions: []string{"Confirm invoice was sent"},
			})
		}
	}

	for _, p := range s.Pitches {
		if !p.FollowUpDue(now) {
			continue
		}
		fu := *p.FollowUpDate
		add(dto.SmartAlertDTO{
			Type:             AlertPitchFollowUp,
			Priority:         PriorityMedium,
			Title:            "Pitch follow-up due",
			Message:          fmt.Sprintf("Follow up on the pitch for %q", project(p.DealID)),
			EntityType:       "pitch",
			EntityID:         p.ID,
			Date:             &fu,
			SuggestedActions: []string{"Send a follow-up email", "Mark as no response"},
		})
	}

	completed := 0
	for _, d := range s.Deals {
		if d.Status == entity.StatusCompleted {
			completed++
		}
		if d.Status.IsOpen() {
			entered := d.CurrentStageEnteredAt()
			if days := int(daysSince(entered, now)); days > idleThresholdDays {
				add(dto.SmartAlertDTO{
					Type:             AlertDealIdle,
					Priority:         PriorityMedium,
					Title:            "Deal needs attention",
					Message:          fmt.Sprintf("%q has been in %s for %d days", d.ProjectName, d.Status.Label(), days),
					EntityType:       "deal",
					EntityID:         d.ID,
					Date:             &entered,
					SuggestedActions: []string{"Contact the client", "Update the deal status"},
				})
			}
		}
		if d.AirDate != nil && d.Status != entity.StatusNotUsed {
			air := *d.AirDate
			if !air.Before(now) && !air.After(now.Add(airDateWindow)) {
				add(dto.SmartAlertDTO{
					Type:             AlertAirDateUpcoming,
					Priority:         PriorityHigh,
					Title:            "Air date approaching",
					Message:          fmt.Sprintf("%q airs on %s", d.ProjectName, air.Format("2006-01-02")),
					EntityType:       "deal",
					EntityID:         d.ID,
					Date:             &air,
					SuggestedActions: []string{"Confirm the license is signed", "Check payment status"},
				})
			}
		}
	}

	if n := len(s.Deals); n >= lowConversionMinimum {
		rate := float64(completed) / float64(n) * 100
		if rate < lowConversionRate {
			add(dto.SmartAlertDTO{
				Type:             AlertLowConversion,
				Priority:         PriorityLow,
				Title:            "Low conversion rate",
				Message:          fmt.Sprintf("Only %.1f%% of %d deals have been completed", rate, n),
				SuggestedActions: []string{"Review pricing", "Follow up on quoted deals"},
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := priorityRank[alerts[i].Priority], priorityRank[alerts[j].Priority]
		if ri != rj {
			return ri < rj
		}
		di, dj := alerts[i].Date, alerts[j].Date
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return di.Before(*dj)
	})
	return alerts
}
