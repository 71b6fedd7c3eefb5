package entity

import "time"

// Contact persona con la que se negocian licencias (supervisores musicales, agencias, productoras).
type Contact struct {
	ID              string
	UserID          string
	Name            string
	Email           string
	Phone           string
	Company         string
	Role            string
	Notes           string
	LastContactedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
