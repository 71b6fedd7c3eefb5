package dto

import "time"

// CreateContactRequest entrada para crear un contacto.
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=254"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=200"`
	Role    string `json:"role" validate:"max=100"`
	Notes   string `json:"notes"`
}

// UpdateContactRequest actualización parcial.
type UpdateContactRequest struct {
	Name            *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Email           *string   `json:"email" validate:"omitempty,email,max=254"`
	Phone           *string   `json:"phone" validate:"omitempty,max=50"`
	Company         *string   `json:"company" validate:"omitempty,max=200"`
	Role            *string   `json:"role" validate:"omitempty,max=100"`
	Notes           *string   `json:"notes"`
	LastContactedAt *FlexTime `json:"lastContactedAt"`
}

// ContactResponse salida de un contacto.
type ContactResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Company         string     `json:"company"`
	Role            string     `json:"role"`
	Notes           string     `json:"notes"`
	LastContactedAt *time.Time `json:"lastContactedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
