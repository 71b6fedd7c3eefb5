package analytics

import (
	"time"

	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// Snapshot datos completos del usuario sobre los que se calculan las métricas.
type Snapshot struct {
	Songs    []*entity.Song
	Contacts []*entity.Contact
	Deals    []*entity.Deal
	Payments []*entity.Payment
	Pitches  []*entity.Pitch
	Events   []*entity.CalendarEvent
}

func (s *Snapshot) dealsByID() map[string]*entity.Deal {
	m := make(map[string]*entity.Deal, len(s.Deals))
	for _, d := range s.Deals {
		m[d.ID] = d
	}
	return m
}

func daysSince(from, to time.Time) float64 {
	if to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24
}
