package entity

import "time"

// CalendarEventType tipo de evento.
type CalendarEventType string

const (
	EventAirDate  CalendarEventType = "air_date"
	EventDeadline CalendarEventType = "deadline"
	EventMeeting  CalendarEventType = "meeting"
	EventFollowUp CalendarEventType = "follow_up"
	EventOther    CalendarEventType = "other"
)

func (t CalendarEventType) Valid() bool {
	switch t {
	case EventAirDate, EventDeadline, EventMeeting, EventFollowUp, EventOther:
		return true
	}
	return false
}

type CalendarEvent struct {
	ID        string
	UserID    string
	Title     string
	EventType CalendarEventType
	StartsAt  time.Time
	EndsAt    *time.Time
	AllDay    bool
	DealID    *string
	ContactID *string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
