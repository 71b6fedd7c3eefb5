package dto

import "time"

type CreatePitchRequest struct {
	DealID         string    `json:"dealId" validate:"required,uuid"`
	SubmissionDate *FlexTime `json:"submissionDate"`
	Status         string    `json:"status" validate:"omitempty,oneof=pending responded no_response"`
	FollowUpDate   *FlexTime `json:"followUpDate"`
	Notes          string    `json:"notes"`
}

type UpdatePitchRequest struct {
	SubmissionDate *FlexTime `json:"submissionDate"`
	Status         *string   `json:"status" validate:"omitempty,oneof=pending responded no_response"`
	FollowUpDate   *FlexTime `json:"followUpDate"`
	Notes          *string   `json:"notes"`
}

type PitchResponse struct {
	ID             string     `json:"id"`
	DealID         string     `json:"dealId"`
	SubmissionDate time.Time  `json:"submissionDate"`
	Status         string     `json:"status"`
	FollowUpDate   *time.Time `json:"followUpDate"`
	FollowUpDue    bool       `json:"followUpDue"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
