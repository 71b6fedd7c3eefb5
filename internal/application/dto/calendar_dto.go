package dto

import "time"

type CreateCalendarEventRequest struct {
	Title     string    `json:"title" validate:"required,max=300"`
	EventType string    `json:"eventType" validate:"omitempty,oneof=air_date deadline meeting follow_up other"`
	StartsAt  *FlexTime `json:"startsAt" validate:"required"`
	EndsAt    *FlexTime `json:"endsAt"`
	AllDay    bool      `json:"allDay"`
	DealID    string    `json:"dealId" validate:"omitempty,uuid"`
	ContactID string    `json:"contactId" validate:"omitempty,uuid"`
	Notes     string    `json:"notes"`
}

type UpdateCalendarEventRequest struct {
	Title     *string   `json:"title" validate:"omitempty,min=1,max=300"`
	EventType *string   `json:"eventType" validate:"omitempty,oneof=air_date deadline meeting follow_up other"`
	StartsAt  *FlexTime `json:"startsAt"`
	EndsAt    *FlexTime `json:"endsAt"`
	AllDay    *bool     `json:"allDay"`
	DealID    *string   `json:"dealId" validate:"omitempty,uuid"`
	ContactID *string   `json:"contactId" validate:"omitempty,uuid"`
	Notes     *string   `json:"notes"`
}

type CalendarEventResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	EventType string     `json:"eventType"`
	StartsAt  time.Time  `json:"startsAt"`
	EndsAt    *time.Time `json:"endsAt"`
	AllDay    bool       `json:"allDay"`
	DealID    *string    `json:"dealId"`
	ContactID *string    `json:"contactId"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
