package analytics

import (
	"time"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
	"github.com/jhoicas/syncdesk-api/internal/domain/scoring"
)

// ClientRelationships puntuación de cada contacto, ordenada de mayor a menor.
// Interacciones: pitches de sus deals y eventos de calendario ya ocurridos con el contacto.
func ClientRelationships(s *Snapshot, now time.Time) []scoring.Relationship {
	dealsByContact := make(map[string][]*entity.Deal)
	contactByDeal := make(map[string]string, len(s.Deals))
	for _, d := range s.Deals {
		dealsByContact[d.ContactID] = append(dealsByContact[d.ContactID], d)
		contactByDeal[d.ID] = d.ContactID
	}
	paymentsByContact := make(map[string][]*entity.Payment)
	for _, p := range s.Payments {
		if c, ok := contactByDeal[p.DealID]; ok {
			paymentsByContact[c] = append(paymentsByContact[c], p)
		}
	}
	interactions := make(map[string][]time.Time)
	for _, p := range s.Pitches {
		if c, ok := contactByDeal[p.DealID]; ok {
			interactions[c] = append(interactions[c], p.SubmissionDate)
		}
	}
	for _, e := range s.Events {
		if e.ContactID != nil && !e.StartsAt.After(now) {
			interactions[*e.ContactID] = append(interactions[*e.ContactID], e.StartsAt)
		}
	}

	out := make([]scoring.Relationship, 0, len(s.Contacts))
	for _, c := range s.Contacts {
		out = append(out, scoring.Score(scoring.Input{
			Contact:      c,
			Deals:        dealsByContact[c.ID],
			Payments:     paymentsByContact[c.ID],
			Interactions: interactions[c.ID],
		}, now))
	}
	scoring.Rank(out)
	return out
}
