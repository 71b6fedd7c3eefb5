package entity

import "time"

// PitchStatus estado de una propuesta.
type PitchStatus string

const (
	PitchPending    PitchStatus = "pending"
	PitchResponded  PitchStatus = "responded"
	PitchNoResponse PitchStatus = "no_response"
)

// Valid indica si el estado pertenece a la enumeración.
func (s PitchStatus) Valid() bool {
	switch s {
	case PitchPending, PitchResponded, PitchNoResponse:
		return true
	}
	return false
}

// Pitch propuesta de una canción para una oportunidad concreta; se sigue aparte del Deal.
type Pitch struct {
	ID             string
	UserID         string
	DealID         string
	SubmissionDate time.Time
	Status         PitchStatus
	FollowUpDate   *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FollowUpDue true si sigue pendiente y la fecha de seguimiento ya llegó.
func (p *Pitch) FollowUpDue(now time.Time) bool {
	return p.Status == PitchPending && p.FollowUpDate != nil && !p.FollowUpDate.After(now)
}
